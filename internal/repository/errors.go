package repository

// NotFoundError is an error type for when a resource is not found.
type NotFoundError struct {
	message string
	err     error
}

// Error returns the error message.
func (e NotFoundError) Error() string {
	return e.message
}

// Unwrap exposes the domain sentinel, if any, so callers can use errors.Is.
func (e NotFoundError) Unwrap() error {
	return e.err
}

// NewNotFoundError creates a NotFoundError wrapping err, which may be nil.
func NewNotFoundError(message string, err error) NotFoundError {
	return NotFoundError{message: message, err: err}
}
