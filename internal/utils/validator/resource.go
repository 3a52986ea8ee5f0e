package validator

import (
	"errors"
	"strings"

	customErrors "github.com/abisalde/povertyline-client/internal/errors"
	"github.com/abisalde/povertyline-client/internal/model"
)

var (
	ErrMissingRejectionReason = errors.New("Rejection reason is required when rejecting a resource")
	ErrInvalidReviewStatus    = errors.New("status must be approved or rejected")
	ErrMissingTitle           = errors.New("title is required")
	ErrInvalidCategory        = errors.New("category is not recognised")
	ErrShortName              = errors.New("name must be between 2 and 100 characters")
)

// ValidateReview blocks a rejection without a reason before it is sent.
func ValidateReview(input model.ApprovalInput) error {
	switch input.Status {
	case model.ResourceStatusApproved:
		return nil
	case model.ResourceStatusRejected:
		if strings.TrimSpace(input.RejectionReason) == "" {
			return customErrors.Validation(ErrMissingRejectionReason)
		}
		return nil
	}
	return customErrors.Validation(ErrInvalidReviewStatus)
}

func ValidateResource(input model.ResourceInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return customErrors.Validation(ErrMissingTitle)
	}
	if !input.Category.IsValid() {
		return customErrors.Validation(ErrInvalidCategory)
	}
	return nil
}

func ValidateRegistration(input model.RegisterInput) error {
	if n := len(strings.TrimSpace(input.Name)); n < 2 || n > 100 {
		return customErrors.Validation(ErrShortName)
	}
	if err := ValidateEmail(input.Email); err != nil {
		return err
	}
	return ValidatePassword(input.Password)
}
