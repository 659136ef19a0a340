package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Fatima-ez-zahraa/rappelv2/internal/entity"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/repository"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUsecaseForTest(accounts *MockAccountRepository, m *MockMailer) *AuthUsecase {
	logger, _ := zap.NewDevelopment()
	return NewAuthUsecase(accounts, token.NewService("test-secret"), m, logger)
}

func TestAuthUsecase_Signup(t *testing.T) {
	ctx := context.Background()
	input := SignupInput{
		Email:     "New.User@Example.COM ",
		Password:  "s3cret!",
		FirstName: "Marie",
		LastName:  "Durand",
	}

	t.Run("CreatesUnverifiedAccountWithCodeAndToken", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		m := new(MockMailer)
		uc := newAuthUsecaseForTest(accounts, m)

		var created *entity.Account
		accounts.On("Create", ctx, mock.AnythingOfType("*entity.Account")).Run(func(args mock.Arguments) {
			created = args.Get(1).(*entity.Account)
		}).Return(nil).Once()
		m.On("SendActivationEmail", "new.user@example.com", "Marie Durand", mock.AnythingOfType("string")).Return(nil).Once()

		result, err := uc.Signup(ctx, input)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "new.user@example.com", created.Email)
		assert.Equal(t, entity.RoleProvider, created.Role)
		assert.False(t, created.IsVerified)
		assert.Len(t, created.VerificationCode, 6)
		assert.NotEqual(t, input.Password, created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte(input.Password)))
		assert.NotEmpty(t, result.Token)
		assert.True(t, result.EmailSent)
		accounts.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("DuplicateEmailSurfaces", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		m := new(MockMailer)
		uc := newAuthUsecaseForTest(accounts, m)

		accounts.On("Create", ctx, mock.AnythingOfType("*entity.Account")).Return(repository.ErrDuplicateEmail).Once()

		result, err := uc.Signup(ctx, input)

		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
		assert.Nil(t, result)
		m.AssertNotCalled(t, "SendActivationEmail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("EmailFailureIsSoftWarning", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		m := new(MockMailer)
		uc := newAuthUsecaseForTest(accounts, m)

		accounts.On("Create", ctx, mock.AnythingOfType("*entity.Account")).Return(nil).Once()
		m.On("SendActivationEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

		result, err := uc.Signup(ctx, input)

		require.NoError(t, err)
		assert.False(t, result.EmailSent)
		assert.NotEmpty(t, result.Token)
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)

	t.Run("UnverifiedAccountRejectedBeforePasswordCheck", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		uc := newAuthUsecaseForTest(accounts, new(MockMailer))

		accounts.On("GetByEmail", ctx, "p@example.com").Return(&entity.Account{
			ID: "acc-1", Email: "p@example.com", Password: string(hash), IsVerified: false,
		}, nil).Once()

		result, err := uc.Login(ctx, "p@example.com", "totally-wrong")

		assert.ErrorIs(t, err, ErrAccountNotVerified)
		assert.Nil(t, result)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		uc := newAuthUsecaseForTest(accounts, new(MockMailer))

		accounts.On("GetByEmail", ctx, "p@example.com").Return(&entity.Account{
			ID: "acc-1", Email: "p@example.com", Password: string(hash), IsVerified: true,
		}, nil).Once()

		result, err := uc.Login(ctx, "p@example.com", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, result)
	})

	t.Run("UnknownEmailPassesThrough", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		uc := newAuthUsecaseForTest(accounts, new(MockMailer))

		accounts.On("GetByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrAccountNotFound).Once()

		result, err := uc.Login(ctx, "nobody@example.com", "whatever")

		assert.ErrorIs(t, err, repository.ErrAccountNotFound)
		assert.Nil(t, result)
	})

	t.Run("SuccessIssuesFreshToken", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		uc := newAuthUsecaseForTest(accounts, new(MockMailer))

		accounts.On("GetByEmail", ctx, "p@example.com").Return(&entity.Account{
			ID: "acc-1", Email: "p@example.com", Password: string(hash), Role: entity.RoleProvider, IsVerified: true,
		}, nil).Once()

		result, err := uc.Login(ctx, "P@Example.com", "correct-horse")

		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "acc-1", result.Account.ID)
	})
}

func TestAuthUsecase_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownEmailIndistinguishableFromWrongCode", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		uc := newAuthUsecaseForTest(accounts, new(MockMailer))

		accounts.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrAccountNotFound).Once()

		result, err := uc.Verify(ctx, "ghost@example.com", "123456")

		assert.ErrorIs(t, err, ErrInvalidCode)
		assert.Nil(t, result)
	})

	t.Run("WrongCodeLeavesAccountUntouched", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		uc := newAuthUsecaseForTest(accounts, new(MockMailer))

		accounts.On("GetByEmail", ctx, "p@example.com").Return(&entity.Account{
			ID: "acc-1", Email: "p@example.com", VerificationCode: "654321",
		}, nil).Once()

		result, err := uc.Verify(ctx, "p@example.com", "123456")

		assert.ErrorIs(t, err, ErrInvalidCode)
		assert.Nil(t, result)
		accounts.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything)
	})

	t.Run("CorrectCodeActivatesAndIssuesToken", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		uc := newAuthUsecaseForTest(accounts, new(MockMailer))

		accounts.On("GetByEmail", ctx, "p@example.com").Return(&entity.Account{
			ID: "acc-1", Email: "p@example.com", Role: entity.RoleProvider, VerificationCode: "123456",
		}, nil).Once()
		accounts.On("MarkVerified", ctx, "acc-1").Return(nil).Once()

		result, err := uc.Verify(ctx, "p@example.com", "123456")

		require.NoError(t, err)
		assert.True(t, result.Account.IsVerified)
		assert.Empty(t, result.Account.VerificationCode)
		assert.NotEmpty(t, result.Token)
		accounts.AssertExpectations(t)
	})
}

func TestAuthUsecase_ResendActivation(t *testing.T) {
	ctx := context.Background()

	t.Run("AlreadyVerifiedNeverMutates", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		m := new(MockMailer)
		uc := newAuthUsecaseForTest(accounts, m)

		accounts.On("GetByEmail", ctx, "p@example.com").Return(&entity.Account{
			ID: "acc-1", Email: "p@example.com", IsVerified: true,
		}, nil).Once()

		sent, err := uc.ResendActivation(ctx, "p@example.com")

		assert.ErrorIs(t, err, ErrAlreadyVerified)
		assert.False(t, sent)
		accounts.AssertNotCalled(t, "SetVerificationCode", mock.Anything, mock.Anything, mock.Anything)
		m.AssertNotCalled(t, "SendActivationEmail", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NewCodeCommittedEvenWhenSendFails", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		m := new(MockMailer)
		uc := newAuthUsecaseForTest(accounts, m)

		accounts.On("GetByEmail", ctx, "p@example.com").Return(&entity.Account{
			ID: "acc-1", Email: "p@example.com", FirstName: "Marie", LastName: "Durand",
		}, nil).Once()
		accounts.On("SetVerificationCode", ctx, "acc-1", mock.AnythingOfType("string")).Return(nil).Once()
		m.On("SendActivationEmail", "p@example.com", "Marie Durand", mock.AnythingOfType("string")).Return(errors.New("smtp down")).Once()

		sent, err := uc.ResendActivation(ctx, "p@example.com")

		assert.NoError(t, err)
		assert.False(t, sent)
		accounts.AssertExpectations(t)
	})

	t.Run("Success", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		m := new(MockMailer)
		uc := newAuthUsecaseForTest(accounts, m)

		accounts.On("GetByEmail", ctx, "p@example.com").Return(&entity.Account{
			ID: "acc-1", Email: "p@example.com",
		}, nil).Once()
		accounts.On("SetVerificationCode", ctx, "acc-1", mock.AnythingOfType("string")).Return(nil).Once()
		m.On("SendActivationEmail", "p@example.com", mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()

		sent, err := uc.ResendActivation(ctx, "p@example.com")

		assert.NoError(t, err)
		assert.True(t, sent)
	})
}

func TestAuthUsecase_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("FiltersNonWhitelistedFields", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		uc := newAuthUsecaseForTest(accounts, new(MockMailer))

		accounts.On("UpdateFields", ctx, "acc-1", map[string]interface{}{
			"first_name": "Paul",
			"city":       "Lyon",
		}).Return(nil).Once()
		accounts.On("GetByID", ctx, "acc-1").Return(&entity.Account{ID: "acc-1", FirstName: "Paul"}, nil).Once()

		account, err := uc.UpdateProfile(ctx, "acc-1", map[string]interface{}{
			"first_name": "Paul",
			"city":       "Lyon",
			"role":       "admin",
			"email":      "evil@example.com",
			"password":   "hack",
		})

		require.NoError(t, err)
		assert.Equal(t, "Paul", account.FirstName)
		accounts.AssertExpectations(t)
	})

	t.Run("EmptyEffectiveSetIsNoOpSuccess", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		uc := newAuthUsecaseForTest(accounts, new(MockMailer))

		accounts.On("GetByID", ctx, "acc-1").Return(&entity.Account{ID: "acc-1"}, nil).Once()

		account, err := uc.UpdateProfile(ctx, "acc-1", map[string]interface{}{"role": "admin"})

		require.NoError(t, err)
		assert.Equal(t, "acc-1", account.ID)
		accounts.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthUsecase_AdminOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("NonAdminForbidden", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		uc := newAuthUsecaseForTest(accounts, new(MockMailer))

		_, err := uc.AdminListAccounts(ctx, entity.RoleProvider)
		assert.ErrorIs(t, err, ErrAdminRequired)

		err = uc.AdminUpdateRole(ctx, entity.RoleProvider, "acc-1", entity.RoleAdmin)
		assert.ErrorIs(t, err, ErrAdminRequired)

		accounts.AssertNotCalled(t, "List", mock.Anything)
		accounts.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AdminAllowed", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		uc := newAuthUsecaseForTest(accounts, new(MockMailer))

		accounts.On("List", ctx).Return([]*entity.Account{{ID: "acc-1"}}, nil).Once()
		accounts.On("UpdateRole", ctx, "acc-1", entity.RoleAdmin).Return(nil).Once()

		list, err := uc.AdminListAccounts(ctx, entity.RoleAdmin)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		err = uc.AdminUpdateRole(ctx, entity.RoleAdmin, "acc-1", entity.RoleAdmin)
		assert.NoError(t, err)
		accounts.AssertExpectations(t)
	})
}
