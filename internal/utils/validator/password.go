package validator

import (
	"errors"
	"regexp"

	customErrors "github.com/abisalde/povertyline-client/internal/errors"
)

var (
	ErrShortPassword         = errors.New("password must be at least 8 characters long")
	ErrorPasswordCombination = errors.New("password must contain one uppercase, one lowercase and one number")
	ErrSamePassword          = errors.New("new password must be different from the current password")

	upperRegex = regexp.MustCompile(`[A-Z]`)
	lowerRegex = regexp.MustCompile(`[a-z]`)
	digitRegex = regexp.MustCompile(`[0-9]`)
)

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return customErrors.Validation(ErrShortPassword)
	}
	if !upperRegex.MatchString(password) || !lowerRegex.MatchString(password) || !digitRegex.MatchString(password) {
		return customErrors.Validation(ErrorPasswordCombination)
	}
	return nil
}

func ValidatePasswordChange(current, next string) error {
	if current == next {
		return customErrors.Validation(ErrSamePassword)
	}
	return ValidatePassword(next)
}
