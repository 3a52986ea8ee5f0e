package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/internal/storage"
	"github.com/abisalde/povertyline-client/pkg/jwt"
)

const (
	TokenKey = "token"
	UserKey  = "user"
)

// SessionManager persists the signed-in session: the bearer token and the
// cached user record, always written and cleared together.
type SessionManager struct {
	store storage.Storage
}

// NewSessionManager creates a new session manager on top of durable storage
func NewSessionManager(store storage.Storage) *SessionManager {
	return &SessionManager{store: store}
}

// Save writes the token and user in one storage call
func (sm *SessionManager) Save(ctx context.Context, token string, user *model.UserSummary) error {
	if token == "" || user == nil {
		return fmt.Errorf("session requires both token and user")
	}

	userData, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal session user: %w", err)
	}

	if err := sm.store.SetMany(ctx, map[string]string{
		TokenKey: token,
		UserKey:  string(userData),
	}); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// RefreshUser overwrites the cached user while keeping the current token
func (sm *SessionManager) RefreshUser(ctx context.Context, user *model.UserSummary) error {
	token, err := sm.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("no session to refresh")
	}
	return sm.Save(ctx, token, user)
}

// Token returns the stored bearer token, or "" when there is no usable one.
// An expired JWT clears the whole session.
func (sm *SessionManager) Token(ctx context.Context) (string, error) {
	token, err := sm.store.Get(ctx, TokenKey)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session token: %w", err)
	}

	if jwt.IsExpired(token) {
		log.Println("Stored session token has expired, clearing session")
		if err := sm.Clear(ctx); err != nil {
			return "", err
		}
		return "", nil
	}
	return token, nil
}

// User returns the cached user record, or nil when none is stored
func (sm *SessionManager) User(ctx context.Context) (*model.UserSummary, error) {
	data, err := sm.store.Get(ctx, UserKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session user: %w", err)
	}

	var user model.UserSummary
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session user: %w", err)
	}
	return &user, nil
}

// Load returns the persisted session. A token without a user, or the
// reverse, is treated as no session and cleared.
func (sm *SessionManager) Load(ctx context.Context) (string, *model.UserSummary, error) {
	token, err := sm.Token(ctx)
	if err != nil {
		return "", nil, err
	}
	user, err := sm.User(ctx)
	if err != nil {
		log.Printf("Discarding unreadable session user: %v", err)
		return "", nil, sm.Clear(ctx)
	}

	if token == "" || user == nil {
		if token != "" || user != nil {
			return "", nil, sm.Clear(ctx)
		}
		return "", nil, nil
	}
	return token, user, nil
}

// HasRole checks the cached user's role without a network call
func (sm *SessionManager) HasRole(ctx context.Context, role model.Role) bool {
	user, err := sm.User(ctx)
	if err != nil {
		return false
	}
	return user.HasRole(role)
}

// Clear removes the token and user together
func (sm *SessionManager) Clear(ctx context.Context) error {
	if err := sm.store.Delete(ctx, TokenKey, UserKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
