package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"

	customErrors "github.com/abisalde/povertyline-client/internal/errors"
	"github.com/abisalde/povertyline-client/internal/model"
	"golang.org/x/sync/singleflight"
)

// SessionStore is the durable session the auth adapter reads and writes.
type SessionStore interface {
	TokenSource
	Save(ctx context.Context, token string, user *model.UserSummary) error
	RefreshUser(ctx context.Context, user *model.UserSummary) error
	User(ctx context.Context) (*model.UserSummary, error)
	Clear(ctx context.Context) error
}

type AuthAPI struct {
	client  *Client
	session SessionStore
	group   singleflight.Group
}

func NewAuthAPI(client *Client, session SessionStore) *AuthAPI {
	return &AuthAPI{client: client, session: session}
}

func (a *AuthAPI) Register(ctx context.Context, input model.RegisterInput) (*model.AuthResponse, error) {
	return a.authenticate(ctx, "/auth/register", input)
}

func (a *AuthAPI) Login(ctx context.Context, input model.LoginInput) (*model.AuthResponse, error) {
	return a.authenticate(ctx, "/auth/login", input)
}

func (a *AuthAPI) authenticate(ctx context.Context, path string, body any) (*model.AuthResponse, error) {
	var out model.AuthResponse
	if err := a.client.do(ctx, request{method: http.MethodPost, path: path, body: body, anonymous: true}, &out); err != nil {
		return nil, err
	}
	if out.Token == "" || out.User == nil {
		return nil, missingField("token or user")
	}
	if err := a.session.Save(ctx, out.Token, out.User); err != nil {
		return nil, customErrors.InternalServerError("failed to persist session: %v", err)
	}
	return &out, nil
}

// Logout only touches local state; the API keeps no server-side session.
func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

// CurrentUser resolves the signed-in user. It returns (nil, nil) without a
// network call when no token is stored, and clears the session and returns
// (nil, nil) when the API rejects the token. Concurrent callers share one
// request.
func (a *AuthAPI) CurrentUser(ctx context.Context) (*model.UserSummary, error) {
	token, err := a.session.Token(ctx)
	if err != nil {
		return nil, customErrors.Transport(err)
	}
	if token == "" {
		return nil, nil
	}

	v, err, _ := a.group.Do("auth/me", func() (any, error) {
		var out model.UserEnvelope
		err := a.client.do(ctx, request{method: http.MethodGet, path: "/auth/me"}, &out)
		if customErrors.IsUnauthenticated(err) {
			if clearErr := a.session.Clear(ctx); clearErr != nil {
				log.Printf("failed to clear rejected session: %v", clearErr)
			}
			return (*model.UserSummary)(nil), nil
		}
		if err != nil {
			return nil, err
		}
		if out.User == nil {
			return nil, missingField("user")
		}
		if err := a.session.RefreshUser(ctx, out.User); err != nil {
			log.Printf("failed to refresh cached user: %v", err)
		}
		return out.User, nil
	})
	if err != nil {
		return nil, err
	}
	user, _ := v.(*model.UserSummary)
	return user, nil
}

func (a *AuthAPI) ChangePassword(ctx context.Context, input model.ChangePasswordInput) (*model.MessageResponse, error) {
	var out model.MessageResponse
	err := a.client.do(ctx, request{method: http.MethodPost, path: "/auth/change-password", body: input}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) RequestPasswordReset(ctx context.Context, email string) (*model.MessageResponse, error) {
	var out model.MessageResponse
	err := a.client.do(ctx, request{
		method:    http.MethodPost,
		path:      "/auth/reset-password",
		body:      model.PasswordResetRequest{Email: email},
		anonymous: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) ResetPassword(ctx context.Context, token, newPassword string) (*model.MessageResponse, error) {
	var out model.MessageResponse
	err := a.client.do(ctx, request{
		method:    http.MethodPost,
		path:      fmt.Sprintf("/auth/reset-password/%s", url.PathEscape(token)),
		body:      model.PasswordResetInput{NewPassword: newPassword},
		anonymous: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// StoredUser returns the cached user without a network call.
func (a *AuthAPI) StoredUser(ctx context.Context) (*model.UserSummary, error) {
	return a.session.User(ctx)
}

func (a *AuthAPI) HasRole(ctx context.Context, role model.Role) bool {
	user, err := a.session.User(ctx)
	return err == nil && user.HasRole(role)
}
