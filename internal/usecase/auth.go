package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/Fatima-ez-zahraa/rappelv2/internal/entity"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/mailer"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/repository"
	"github.com/Fatima-ez-zahraa/rappelv2/internal/token"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// accountUpdatableFields is the profile-update whitelist. Keys outside it are
// silently ignored, not rejected.
var accountUpdatableFields = map[string]bool{
	"first_name":    true,
	"last_name":     true,
	"company_name":  true,
	"siret":         true,
	"legal_form":    true,
	"creation_year": true,
	"address":       true,
	"zip":           true,
	"city":          true,
	"phone":         true,
	"sectors":       true,
	"description":   true,
	"zone":          true,
}

// AuthUsecase drives the account lifecycle: signup, verification, login and
// profile management.
type AuthUsecase struct {
	accounts AccountRepository
	tokens   *token.Service
	mailer   mailer.Mailer
	logger   *zap.Logger
}

func NewAuthUsecase(accounts AccountRepository, tokens *token.Service, m mailer.Mailer, logger *zap.Logger) *AuthUsecase {
	return &AuthUsecase{
		accounts: accounts,
		tokens:   tokens,
		mailer:   m,
		logger:   logger.Named("AuthUsecase"),
	}
}

type SignupInput struct {
	Email        string
	Password     string
	FirstName    string
	LastName     string
	Siret        string
	CompanyName  string
	CreationYear string
	Address      string
	Zip          string
	City         string
	Phone        string
	LegalForm    string
	Sectors      []string
}

// SignupResult carries the soft-warning flag for the activation email: the
// account commit is never rolled back when dispatch fails.
type SignupResult struct {
	Account   *entity.Account
	Token     string
	EmailSent bool
}

type SessionResult struct {
	Account *entity.Account
	Token   string
}

// Signup creates an unverified provider account, issues a session token so
// the caller can enter the pending-verification experience, and dispatches
// the activation code.
func (u *AuthUsecase) Signup(ctx context.Context, in SignupInput) (*SignupResult, error) {
	code, err := generateVerificationCode()
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	sectors := in.Sectors
	if sectors == nil {
		sectors = []string{}
	}

	account := &entity.Account{
		ID:               uuid.NewString(),
		Email:            normalizeEmail(in.Email),
		Password:         string(hash),
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Siret:            in.Siret,
		CompanyName:      in.CompanyName,
		Role:             entity.RoleProvider,
		CreationYear:     in.CreationYear,
		Address:          in.Address,
		Zip:              in.Zip,
		City:             in.City,
		Phone:            in.Phone,
		Sectors:          sectors,
		LegalForm:        in.LegalForm,
		VerificationCode: code,
		IsVerified:       false,
	}

	if err := u.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	tok, err := u.tokens.Issue(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, err
	}

	emailSent := true
	if err := u.mailer.SendActivationEmail(account.Email, account.FirstName+" "+account.LastName, code); err != nil {
		u.logger.Warn("Activation email dispatch failed, account committed",
			zap.String("accountID", account.ID), zap.Error(err))
		emailSent = false
	}

	return &SignupResult{Account: account, Token: tok, EmailSent: emailSent}, nil
}

// Login authenticates a verified account. The unverified case is reported
// before the password check so the client can route to the verification flow.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*SessionResult, error) {
	account, err := u.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if !account.IsVerified {
		return nil, ErrAccountNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tok, err := u.tokens.Issue(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, err
	}
	return &SessionResult{Account: account, Token: tok}, nil
}

// Verify activates an account when the supplied code matches the stored one
// exactly. An unknown email is indistinguishable from a wrong code.
func (u *AuthUsecase) Verify(ctx context.Context, email, code string) (*SessionResult, error) {
	account, err := u.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}

	if account.VerificationCode == "" || account.VerificationCode != code {
		return nil, ErrInvalidCode
	}

	if err := u.accounts.MarkVerified(ctx, account.ID); err != nil {
		return nil, err
	}
	account.IsVerified = true
	account.VerificationCode = ""

	tok, err := u.tokens.Issue(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, err
	}

	u.logger.Info("Account activated", zap.String("accountID", account.ID))
	return &SessionResult{Account: account, Token: tok}, nil
}

// ResendActivation replaces the stored code and re-dispatches the activation
// email. The new code is committed even when dispatch fails.
func (u *AuthUsecase) ResendActivation(ctx context.Context, email string) (bool, error) {
	account, err := u.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false, err
	}

	if account.IsVerified {
		return false, ErrAlreadyVerified
	}

	code, err := generateVerificationCode()
	if err != nil {
		return false, err
	}
	if err := u.accounts.SetVerificationCode(ctx, account.ID, code); err != nil {
		return false, err
	}

	if err := u.mailer.SendActivationEmail(account.Email, account.FirstName+" "+account.LastName, code); err != nil {
		u.logger.Warn("Activation email re-dispatch failed",
			zap.String("accountID", account.ID), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (u *AuthUsecase) GetProfile(ctx context.Context, accountID string) (*entity.Account, error) {
	return u.accounts.GetByID(ctx, accountID)
}

// UpdateProfile applies the whitelisted subset of fields. An update with no
// whitelisted key is a no-op success, mirroring the read-back contract.
func (u *AuthUsecase) UpdateProfile(ctx context.Context, accountID string, fields map[string]interface{}) (*entity.Account, error) {
	filtered := make(map[string]interface{})
	for k, v := range fields {
		if accountUpdatableFields[k] {
			filtered[k] = v
		}
	}

	if len(filtered) > 0 {
		if err := u.accounts.UpdateFields(ctx, accountID, filtered); err != nil {
			return nil, err
		}
	}
	return u.accounts.GetByID(ctx, accountID)
}

// AdminListAccounts returns every account for the admin dashboard.
func (u *AuthUsecase) AdminListAccounts(ctx context.Context, callerRole string) ([]*entity.Account, error) {
	if callerRole != entity.RoleAdmin {
		return nil, ErrAdminRequired
	}
	return u.accounts.List(ctx)
}

func (u *AuthUsecase) AdminUpdateRole(ctx context.Context, callerRole, accountID, role string) error {
	if callerRole != entity.RoleAdmin {
		return ErrAdminRequired
	}
	return u.accounts.UpdateRole(ctx, accountID, role)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateVerificationCode returns a random zero-padded 6-digit code.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
