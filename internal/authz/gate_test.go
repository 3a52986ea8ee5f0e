package authz

import (
	"testing"

	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedState struct{ user *model.UserSummary }

func (f fixedState) State() store.State {
	var s store.State
	s.Auth.User = f.user
	s.Auth.IsAuthenticated = f.user != nil
	return s
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		authed  bool
		role    model.Role
		allowed []model.Role
		want    Decision
	}{
		{"anonymous", false, model.RoleAdmin, []model.Role{model.RoleAdmin}, RedirectToLogin},
		{"anonymous open route", false, "", nil, RedirectToLogin},
		{"any role", true, model.RoleUser, nil, Render},
		{"role missing", true, model.RoleUser, []model.Role{model.RoleAdmin}, RedirectToUnauthorized},
		{"role allowed", true, model.RoleAdmin, []model.Role{model.RoleAdmin}, Render},
		{"one of many", true, model.RoleProvider, []model.Role{model.RoleProvider, model.RoleAdmin}, Render},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.authed, tt.role, tt.allowed))
		})
	}
}

func TestGuard_Check(t *testing.T) {
	user := &model.UserSummary{ID: 1, Role: model.RoleUser}
	provider := &model.UserSummary{ID: 2, Role: model.RoleProvider}
	admin := &model.UserSummary{ID: 3, Role: model.RoleAdmin}

	tests := []struct {
		name     string
		user     *model.UserSummary
		location string
		want     Decision
		redirect string
	}{
		{"root redirects", nil, "/", Redirect, LoginPath},
		{"public login", nil, "/login", Render, ""},
		{"reset token", nil, "/reset-password/abc123", Render, ""},
		{"reset without token", nil, "/reset-password", NotFound, ""},
		{"dashboard anonymous", nil, "/dashboard", RedirectToLogin, LoginPath},
		{"dashboard user", user, "/dashboard", Render, ""},
		{"resources user", user, "/resources", RedirectToUnauthorized, UnauthorizedPath},
		{"resources provider", provider, "/resources?status=pending", Render, ""},
		{"admin provider", provider, "/admin", RedirectToUnauthorized, UnauthorizedPath},
		{"admin admin", admin, "/admin/", Render, ""},
		{"unknown", admin, "/nowhere", NotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewGuard(fixedState{user: tt.user}).Check(tt.location)
			assert.Equal(t, tt.want, out.Decision, out.Decision.String())
			assert.Equal(t, tt.redirect, out.Redirect)
			assert.Equal(t, tt.location, out.From)
		})
	}
}

func TestAfterLogin(t *testing.T) {
	out := NewGuard(fixedState{}).Check("/admin?tab=pending")
	require.Equal(t, RedirectToLogin, out.Decision)
	assert.Equal(t, "/admin?tab=pending", AfterLogin(out))

	assert.Equal(t, DefaultLanding, AfterLogin(Outcome{}))
	assert.Equal(t, DefaultLanding, AfterLogin(Outcome{Decision: Render, From: "/profile"}))
}
