package service

import (
	"errors"
	"fmt"
)

// ValidationError reports bad user input. Handlers answer it with 400.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrNutritionUnavailable is returned when no nutrition provider is configured.
var ErrNutritionUnavailable = errors.New("nutrition lookup is not configured")
