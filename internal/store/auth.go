package store

import (
	"context"
	"log"

	"github.com/abisalde/povertyline-client/internal/model"
)

func (s *Store) Register(ctx context.Context, input model.RegisterInput) (*model.AuthResponse, error) {
	return run(ctx, s, AuthRegister, nil, "Registration failed", func(ctx context.Context) (*model.AuthResponse, error) {
		return s.deps.Auth.Register(ctx, input)
	})
}

func (s *Store) Login(ctx context.Context, input model.LoginInput) (*model.AuthResponse, error) {
	return run(ctx, s, AuthLogin, nil, "Login failed", func(ctx context.Context) (*model.AuthResponse, error) {
		return s.deps.Auth.Login(ctx, input)
	})
}

// Logout never fails: a storage error is logged and the in-memory state is
// cleared regardless.
func (s *Store) Logout(ctx context.Context) {
	if s.deps.Auth != nil {
		if err := s.deps.Auth.Logout(ctx); err != nil {
			log.Printf("⚠️ Failed to clear stored session: %v", err)
		}
	}
	s.Dispatch(Action{Type: AuthLogout, Phase: PhaseFulfilled})
}

// GetCurrentUser revalidates the stored session. A nil user with a nil
// error means there is no session.
func (s *Store) GetCurrentUser(ctx context.Context) (*model.UserSummary, error) {
	return run(ctx, s, AuthGetCurrentUser, nil, "Failed to get user data", func(ctx context.Context) (*model.UserSummary, error) {
		return s.deps.Auth.CurrentUser(ctx)
	})
}

func (s *Store) ChangePassword(ctx context.Context, input model.ChangePasswordInput) (*model.MessageResponse, error) {
	return run(ctx, s, AuthChangePassword, nil, "Failed to change password", func(ctx context.Context) (*model.MessageResponse, error) {
		return s.deps.Auth.ChangePassword(ctx, input)
	})
}

func (s *Store) RequestPasswordReset(ctx context.Context, email string) (*model.MessageResponse, error) {
	return run(ctx, s, AuthRequestPasswordReset, nil, "Failed to request password reset", func(ctx context.Context) (*model.MessageResponse, error) {
		return s.deps.Auth.RequestPasswordReset(ctx, email)
	})
}

func (s *Store) ResetPassword(ctx context.Context, token, newPassword string) (*model.MessageResponse, error) {
	return run(ctx, s, AuthResetPassword, nil, "Failed to reset password", func(ctx context.Context) (*model.MessageResponse, error) {
		return s.deps.Auth.ResetPassword(ctx, token, newPassword)
	})
}

func (s *Store) ResetAuth() {
	s.Dispatch(Action{Type: AuthReset})
}

func reduceAuth(s *State, a Action) {
	auth := &s.Auth

	switch a.Type {
	case AuthReset:
		auth.clearMessages()
		return
	case AuthLogout:
		clearSession(s)
		return
	}

	switch a.Phase {
	case PhasePending:
		auth.begin()
	case PhaseRejected:
		auth.fail(a.Error)
		if a.Type == AuthLogin || a.Type == AuthRegister {
			auth.User = nil
			auth.IsAuthenticated = false
		}
	case PhaseFulfilled:
		auth.settle()
		switch a.Type {
		case AuthLogin, AuthRegister:
			resp, _ := a.Payload.(*model.AuthResponse)
			if resp == nil {
				return
			}
			auth.User = resp.User
			auth.IsAuthenticated = resp.User != nil
			auth.Message = resp.Message
		case AuthGetCurrentUser:
			user, _ := a.Payload.(*model.UserSummary)
			auth.User = user
			auth.IsAuthenticated = user != nil
		case AuthChangePassword, AuthRequestPasswordReset, AuthResetPassword:
			if resp, ok := a.Payload.(*model.MessageResponse); ok && resp != nil {
				auth.Message = resp.Message
			}
		}
	}
}

// clearSession drops everything tied to the signed-in user. In-flight
// counters survive so a late response still settles its slice.
func clearSession(s *State) {
	s.Auth = AuthState{OpState: OpState{inflight: s.Auth.inflight, IsLoading: s.Auth.inflight > 0}}

	s.Profile = ProfileState{OpState: OpState{inflight: s.Profile.inflight, IsLoading: s.Profile.inflight > 0}}
	s.touch(sliceProfile)

	s.Admin.Users = nil
	s.Admin.AllIDs = nil
	s.Admin.PendingIDs = nil
	s.Admin.AllLoaded = false
	s.Admin.Success = false
	s.Admin.clearMessages()
	s.touch(sliceAdmin)

	s.Resources.MineIDs = nil
	s.Resources.AllIDs = nil
	if s.Resources.Active == ViewMine || s.Resources.Active == ViewAll {
		s.Resources.Active = ViewNone
		s.Resources.Count = 0
	}
	s.Resources.clearMessages()
	s.touch(sliceResources)

	s.compact()
}
