package service

import "errors"

var (
	// ErrNotFound covers every ownership-scoped lookup miss. A record that
	// exists but belongs to someone else is reported the same way, so the
	// response never leaks whether the id exists at all.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when a record is visible but the operation
	// crosses an ownership boundary, e.g. adding another user's recipe to
	// your own group.
	ErrForbidden = errors.New("forbidden")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("username or email already in use")
)

// ValidationError reports a missing or malformed field. The message is shown
// to the end user verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}
