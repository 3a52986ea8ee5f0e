package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	customErrors "github.com/abisalde/povertyline-client/internal/errors"
	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/pkg/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userTable map[int64]model.UserSummary

func (u userTable) GetUser(id int64) (model.UserSummary, error) {
	user, ok := u[id]
	if !ok {
		return model.UserSummary{}, errors.New("not found")
	}
	return user, nil
}

func testApp(t *testing.T, required bool, roles ...model.Role) (*fiber.App, *jwt.Issuer) {
	t.Helper()
	issuer, err := jwt.NewIssuer("middleware-secret")
	require.NoError(t, err)

	users := userTable{
		1: {ID: 1, Name: "Ursula", Role: model.RoleUser, Status: model.UserStatusActive},
		2: {ID: 2, Name: "Alex", Role: model.RoleAdmin, Status: model.UserStatusActive},
		3: {ID: 3, Name: "Sam", Role: model.RoleUser, Status: model.UserStatusSuspended},
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	handlers := []fiber.Handler{Authenticate(issuer, users, required)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(user.Name)
	})
	app.Get("/", handlers...)
	return app, issuer
}

func get(t *testing.T, app *fiber.App, header string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(fiber.HeaderAuthorization, header)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	buf := make([]byte, 512)
	n, _ := resp.Body.Read(buf)
	return resp.StatusCode, string(buf[:n])
}

func bearer(t *testing.T, issuer *jwt.Issuer, userID int64) string {
	t.Helper()
	token, err := issuer.GenerateToken(userID, "", jwt.TokenTypeAccess, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthenticate(t *testing.T) {
	app, issuer := testApp(t, true)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, `{"error":"Missing Authorization Header"}`},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, `{"error":"Authorization header must use the Bearer scheme"}`},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, ""},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized, `{"error":"Invalid token"}`},
		{"unknown user", bearer(t, issuer, 99), http.StatusUnauthorized, `{"error":"User not found"}`},
		{"suspended user", bearer(t, issuer, 3), http.StatusForbidden, `{"error":"Account is inactive or suspended"}`},
		{"active user", bearer(t, issuer, 1), http.StatusOK, "Ursula"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, app, tt.header)
			assert.Equal(t, tt.status, status)
			if tt.body != "" {
				assert.Equal(t, tt.body, body)
			}
		})
	}
}

func TestAuthenticateOptional(t *testing.T) {
	app, issuer := testApp(t, false)

	status, body := get(t, app, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "anonymous", body)

	status, body = get(t, app, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "anonymous", body)

	status, body = get(t, app, bearer(t, issuer, 2))
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Alex", body)
}

func TestRequireRoles(t *testing.T) {
	app, issuer := testApp(t, true, model.RoleProvider)

	status, body := get(t, app, bearer(t, issuer, 1))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, `{"error":"Unauthorized access"}`, body)

	status, body = get(t, app, bearer(t, issuer, 2))
	assert.Equal(t, http.StatusOK, status, "admins pass every role check")
	assert.Equal(t, "Alex", body)
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"fiber error", fiber.NewError(fiber.StatusConflict, "Email already registered"), http.StatusConflict, "Email already registered"},
		{"validation", customErrors.ValidationError("title is required"), http.StatusBadRequest, "title is required"},
		{"not found", customErrors.NewTypedError("gone", customErrors.ErrorTypeNotFound), http.StatusNotFound, "gone"},
		{"internal typed", customErrors.InternalServerError("db down"), http.StatusInternalServerError, "Internal Server Error"},
		{"plain", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.msg, body["error"])
		})
	}
}

func TestRequestContextSetsRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestContext)
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get(RequestIDHeader))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}
