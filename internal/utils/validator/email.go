package validator

import (
	"errors"
	"regexp"
	"strings"

	customErrors "github.com/abisalde/povertyline-client/internal/errors"
)

var (
	emailRegex      = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	ErrInvalidEmail = errors.New("invalid email format")
	ErrEmptyEmail   = errors.New("email is required")
)

func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return customErrors.Validation(ErrEmptyEmail)
	}
	if !emailRegex.MatchString(email) {
		return customErrors.Validation(ErrInvalidEmail)
	}
	return nil
}
