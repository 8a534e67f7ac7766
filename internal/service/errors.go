package service

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrValidation marks client errors: missing or malformed input. Wrapped
	// errors carry the human-readable detail.
	ErrValidation = errors.New("validation failed")

	ErrInvalidEmail = fmt.Errorf("%w: valid email is required", ErrValidation)
	ErrInvalidDate  = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func missingField(name string) error {
	return fmt.Errorf("%w: missing required field: %s", ErrValidation, name)
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}
