package store

import "errors"

// ValidationError reports input rejected before any mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError reports an operation on a task ID the store does not hold.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return "Task not found"
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is, or wraps, a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// ErrTitleRequired returns the error for a missing or blank title.
func ErrTitleRequired() error {
	return &ValidationError{Field: "title", Message: "Title is required"}
}
