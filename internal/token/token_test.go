package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewService("test-secret")

	raw, err := svc.Issue("acc-42", "pro@example.com", "provider")
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := svc.Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, "acc-42", claims.AccountID())
	assert.Equal(t, "pro@example.com", claims.Email)
	assert.Equal(t, "provider", claims.Role)

	expiry := claims.ExpiresAt.Time
	assert.WithinDuration(t, time.Now().Add(TokenTTL), expiry, time.Minute)
}

func TestValidateMalformed(t *testing.T) {
	svc := NewService("test-secret")

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Validate(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	issued, err := NewService("secret-one").Issue("acc-1", "a@x.com", "provider")
	require.NoError(t, err)

	_, err = NewService("secret-two").Validate(issued)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpired(t *testing.T) {
	svc := NewService("test-secret")

	claims := &Claims{
		Email: "a@x.com",
		Role:  "provider",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "acc-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Validate(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateMissingSubject(t *testing.T) {
	svc := NewService("test-secret")

	claims := &Claims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Validate(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
