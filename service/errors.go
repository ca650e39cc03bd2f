package service

import (
	"errors"
	"fmt"
)

// ValidationError is a rejected request whose message is safe to show the user
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// invalidErr wraps a domain error so errors.Is still matches it
func invalidErr(err error) error {
	return &ValidationError{Message: err.Error(), Err: err}
}

// IsValidationError reports whether err is a user facing rejection
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
