package usecase

import "errors"

var (
	// ErrInvalidCredentials is returned on a password mismatch.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountNotVerified signals that login must wait for email
	// verification; the HTTP layer adds a requiresVerification flag.
	ErrAccountNotVerified = errors.New("account requires email verification")
	// ErrInvalidCode is returned when a verification attempt does not match
	// the stored code exactly. An unknown email yields the same error.
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrAlreadyVerified rejects a resend for an already-activated account.
	ErrAlreadyVerified = errors.New("account already verified")
	// ErrNoValidFields rejects an update whose keys are all outside the
	// whitelist.
	ErrNoValidFields = errors.New("no valid fields to update")
	// ErrAdminRequired guards the admin-only operations.
	ErrAdminRequired = errors.New("admin role required")
)
