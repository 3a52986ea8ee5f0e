package validator

import (
	"testing"

	customErrors "github.com/abisalde/povertyline-client/internal/errors"
	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"a@b.com", false},
		{"  Jane.Doe@Example.org ", false},
		{"", true},
		{"not-an-email", true},
		{"missing@tld", true},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, customErrors.ErrorTypeValidation, customErrors.TypeOf(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{name: "valid", password: "Secret123"},
		{name: "too short", password: "Se1", want: ErrShortPassword},
		{name: "no upper", password: "secret123", want: ErrorPasswordCombination},
		{name: "no lower", password: "SECRET123", want: ErrorPasswordCombination},
		{name: "no digit", password: "SecretSecret", want: ErrorPasswordCombination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want.Error(), err.Error())
		})
	}
}

func TestValidatePasswordChange(t *testing.T) {
	assert.Error(t, ValidatePasswordChange("Secret123", "Secret123"))
	assert.NoError(t, ValidatePasswordChange("Secret123", "Secret456"))
}

func TestValidateReview(t *testing.T) {
	tests := []struct {
		name    string
		input   model.ApprovalInput
		wantErr bool
	}{
		{name: "approve without reason", input: model.ApprovalInput{Status: model.ResourceStatusApproved}},
		{name: "reject with reason", input: model.ApprovalInput{Status: model.ResourceStatusRejected, RejectionReason: "Duplicate"}},
		{name: "reject with blank reason", input: model.ApprovalInput{Status: model.ResourceStatusRejected, RejectionReason: "   "}, wantErr: true},
		{name: "pending is not a review", input: model.ApprovalInput{Status: model.ResourceStatusPending}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReview(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateResource(t *testing.T) {
	assert.NoError(t, ValidateResource(model.ResourceInput{Title: "Pantry", Category: model.CategoryFood}))
	assert.Error(t, ValidateResource(model.ResourceInput{Title: " ", Category: model.CategoryFood}))
	assert.Error(t, ValidateResource(model.ResourceInput{Title: "Pantry", Category: "toys"}))
}

func TestValidateRegistration(t *testing.T) {
	assert.NoError(t, ValidateRegistration(model.RegisterInput{Name: "Ada", Email: "a@b.com", Password: "Secret123"}))
	assert.Error(t, ValidateRegistration(model.RegisterInput{Name: "A", Email: "a@b.com", Password: "Secret123"}))
	assert.Error(t, ValidateRegistration(model.RegisterInput{Name: "Ada", Email: "bad", Password: "Secret123"}))
	assert.Error(t, ValidateRegistration(model.RegisterInput{Name: "Ada", Email: "a@b.com", Password: "weak"}))
}
