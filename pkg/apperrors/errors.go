package apperrors

import "fmt"

var (
	// tokens
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token has expired")
	ErrTokenNotFound        = fmt.Errorf("token not found")
	ErrTokenIsNotRefresh    = fmt.Errorf("token is not a refresh token")
	ErrTokenIsNotAccess     = fmt.Errorf("token is not an access token")

	// auth
	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("malformed authorization header")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUnauthorized       = fmt.Errorf("unauthorized")

	// request context
	ErrUserIDNotFoundInContext = fmt.Errorf("user id not found in request context")

	// common
	ErrNotFound   = fmt.Errorf("record not found")
	ErrBadRequest = fmt.Errorf("bad request")

	// approval workflow: the entry exists but is no longer pending,
	// so the reviewer is acting on stale state.
	ErrConflict = fmt.Errorf("entry is not in a pending state")
)

// FormatError marks a CSV batch whose header row is unusable. It is fatal
// for the whole upload: no row of such a file is ever processed.
type FormatError struct {
	Message string
}

func (e *FormatError) Error() string { return e.Message }

func NewFormatError(format string, args ...interface{}) error {
	return &FormatError{Message: fmt.Sprintf(format, args...)}
}

// InvalidInputError carries a user-facing validation message.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// StoreError wraps a persistence failure that interrupted a batch
// submission. Completed tells the caller how many rows had already been
// written before the failure; those rows are not rolled back.
type StoreError struct {
	Completed int
	Total     int
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store write failed after %d of %d entries: %v", e.Completed, e.Total, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
