package model

import "github.com/Laisky/errors/v2"

// Error taxonomy. Controllers map these to HTTP status codes at the edge;
// everything else propagates them wrapped.
var (
	// ErrNotFound no matching record
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated no or invalid session/key
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden authenticated, but not the owner
	ErrForbidden = errors.New("access denied")
	// ErrInvalidPasskey wrong or missing passkey for a passkey-gated file
	ErrInvalidPasskey = errors.New("invalid passkey")
	// ErrConflict uniqueness violation surfaced by the store
	ErrConflict = errors.New("already exists")
	// ErrInvalidCredentials indicates the login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError bad input shape, size or enum value.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// NewValidationError build a validation error with the given reason.
func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
