package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorType
	}{
		{http.StatusBadRequest, ErrorTypeValidation},
		{http.StatusConflict, ErrorTypeValidation},
		{http.StatusUnauthorized, ErrorTypeUnauthenticated},
		{http.StatusForbidden, ErrorTypeForbidden},
		{http.StatusNotFound, ErrorTypeNotFound},
		{http.StatusInternalServerError, ErrorTypeInternalServerError},
		{http.StatusBadGateway, ErrorTypeInternalServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, TypeForStatus(tt.status))
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "server message wins", err: FromStatus(401, "Invalid email or password"), want: "Invalid email or password"},
		{name: "status without body uses fallback", err: FromStatus(500, ""), want: "Login failed"},
		{name: "transport failure uses fallback", err: Transport(stdErrors.New("dial tcp: refused")), want: "Login failed"},
		{name: "wrapped api error", err: fmt.Errorf("login: %w", FromStatus(403, "Account is inactive or suspended")), want: "Account is inactive or suspended"},
		{name: "typed client error keeps text", err: ErrNotAuthenticated, want: "User not authenticated"},
		{name: "internal typed error uses fallback", err: InternalServerError("boom"), want: "Login failed"},
		{name: "plain error uses fallback", err: stdErrors.New("boom"), want: "Login failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err, "Login failed"))
		})
	}
}

func TestAPIError_Classification(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", FromStatus(http.StatusUnauthorized, ""))

	assert.True(t, IsUnauthenticated(err))
	assert.Equal(t, ErrorTypeUnauthenticated, TypeOf(err))
	assert.Equal(t, "wrapped: Unauthorized", err.Error())
	assert.False(t, IsUnauthenticated(nil))
	assert.Equal(t, ErrorTypeValidation, TypeOf(ValidationError("bad %s", "input")))
}
