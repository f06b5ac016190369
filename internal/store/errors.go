package store

import "errors"

// ErrNotFound is returned when an id or ISBN does not resolve to a record.
var ErrNotFound = errors.New("not found")

// ValidationError carries a caller-facing message for a rejected field value,
// unrecognized field or violated constraint.
type ValidationError struct {
	msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string {
	return e.msg
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
