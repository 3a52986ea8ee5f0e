package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	customErrors "github.com/abisalde/povertyline-client/internal/errors"
	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/internal/storage"
	"github.com/abisalde/povertyline-client/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*httptest.Server
	hits atomic.Int32
	last *http.Request
	body map[string]any
}

func newTestServer(t *testing.T, handler http.HandlerFunc) *testServer {
	t.Helper()
	ts := &testServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.hits.Add(1)
		ts.last = r
		ts.body = nil
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&ts.body)
		}
		handler(w, r)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func setup(t *testing.T, handler http.HandlerFunc) (*testServer, *Client, *session.SessionManager) {
	t.Helper()
	ts := newTestServer(t, handler)
	sessions := session.NewSessionManager(storage.NewMemoryStorage())
	client, err := NewClient(ts.URL+"/api", sessions)
	require.NoError(t, err)
	return ts, client, sessions
}

var ada = &model.UserSummary{ID: 7, Name: "Ada", Email: "a@b.com", Role: model.RoleProvider, Status: model.UserStatusActive}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient("  ", nil)
	assert.ErrorIs(t, err, customErrors.ErrMissingBaseURL)
}

func TestAuthAPI_LoginPersistsSession(t *testing.T) {
	ts, client, sessions := setup(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"message": "Login successful", "token": "tok-1", "user": ada})
	})
	ctx := context.Background()
	require.NoError(t, sessions.Save(ctx, "stale", ada))

	out, err := NewAuthAPI(client, sessions).Login(ctx, model.LoginInput{Email: "a@b.com", Password: "Secret123"})
	require.NoError(t, err)

	assert.Equal(t, "Login successful", out.Message)
	assert.Equal(t, "/api/auth/login", ts.last.URL.Path)
	assert.Empty(t, ts.last.Header.Get("Authorization"))
	assert.NotEmpty(t, ts.last.Header.Get(RequestIDHeader))
	assert.Equal(t, "a@b.com", ts.body["email"])

	token, user, err := sessions.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, ada, user)
}

func TestAuthAPI_LoginFailureKeepsHookQuiet(t *testing.T) {
	_, client, sessions := setup(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	})
	var fired atomic.Bool
	client.OnUnauthorized(func(context.Context) { fired.Store(true) })

	_, err := NewAuthAPI(client, sessions).Login(context.Background(), model.LoginInput{Email: "a@b.com", Password: "nope"})
	require.Error(t, err)

	assert.Equal(t, "Invalid email or password", err.Error())
	assert.Equal(t, customErrors.ErrorTypeUnauthenticated, customErrors.TypeOf(err))
	assert.False(t, fired.Load())
}

func TestAuthAPI_CurrentUser(t *testing.T) {
	t.Run("no token short-circuits", func(t *testing.T) {
		ts, client, sessions := setup(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"user": ada})
		})

		user, err := NewAuthAPI(client, sessions).CurrentUser(context.Background())
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.Equal(t, int32(0), ts.hits.Load())
	})

	t.Run("success refreshes cached user", func(t *testing.T) {
		renamed := *ada
		renamed.Name = "Ada L."
		ts, client, sessions := setup(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"user": renamed})
		})
		ctx := context.Background()
		require.NoError(t, sessions.Save(ctx, "tok", ada))

		user, err := NewAuthAPI(client, sessions).CurrentUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Ada L.", user.Name)
		assert.Equal(t, "Bearer tok", ts.last.Header.Get("Authorization"))

		cached, err := sessions.User(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Ada L.", cached.Name)
	})

	t.Run("401 clears session and fires hook", func(t *testing.T) {
		_, client, sessions := setup(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Token has expired"})
		})
		var fired atomic.Int32
		client.OnUnauthorized(func(context.Context) { fired.Add(1) })
		ctx := context.Background()
		require.NoError(t, sessions.Save(ctx, "tok", ada))

		user, err := NewAuthAPI(client, sessions).CurrentUser(ctx)
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.Equal(t, int32(1), fired.Load())

		token, cached, err := sessions.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)
		assert.Nil(t, cached)
	})

	t.Run("server error keeps session", func(t *testing.T) {
		_, client, sessions := setup(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		ctx := context.Background()
		require.NoError(t, sessions.Save(ctx, "tok", ada))

		_, err := NewAuthAPI(client, sessions).CurrentUser(ctx)
		require.Error(t, err)
		assert.Equal(t, "Failed to get user data", customErrors.UserMessage(err, "Failed to get user data"))

		token, _, err := sessions.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tok", token)
	})
}

func TestAuthAPI_PasswordFlows(t *testing.T) {
	ts, client, sessions := setup(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "ok"})
	})
	auth := NewAuthAPI(client, sessions)
	ctx := context.Background()

	_, err := auth.RequestPasswordReset(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "/api/auth/reset-password", ts.last.URL.Path)
	assert.Equal(t, "a@b.com", ts.body["email"])

	_, err = auth.ResetPassword(ctx, "reset-token", "Secret456")
	require.NoError(t, err)
	assert.Equal(t, "/api/auth/reset-password/reset-token", ts.last.URL.Path)
	assert.Equal(t, "Secret456", ts.body["new_password"])

	_, err = auth.ChangePassword(ctx, model.ChangePasswordInput{CurrentPassword: "Secret123", NewPassword: "Secret456"})
	require.NoError(t, err)
	assert.Equal(t, "/api/auth/change-password", ts.last.URL.Path)
	assert.Equal(t, "Secret123", ts.body["current_password"])
}

func TestProfileAPI(t *testing.T) {
	t.Run("no stored user makes no request", func(t *testing.T) {
		ts, client, sessions := setup(t, func(w http.ResponseWriter, r *http.Request) {})

		_, err := NewProfileAPI(client, sessions).CurrentProfile(context.Background())
		assert.ErrorIs(t, err, customErrors.ErrNotAuthenticated)
		assert.Equal(t, int32(0), ts.hits.Load())
	})

	t.Run("update targets stored user id", func(t *testing.T) {
		ts, client, sessions := setup(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"message": "Profile updated successfully",
				"profile": map[string]any{"user_id": 7, "city": "Austin", "needs": `["food"]`, "completion_percentage": 84, "is_complete": true},
			})
		})
		ctx := context.Background()
		require.NoError(t, sessions.Save(ctx, "tok", ada))

		city := "Austin"
		out, err := NewProfileAPI(client, sessions).UpdateProfile(ctx, model.ProfileUpdate{City: &city})
		require.NoError(t, err)

		assert.Equal(t, http.MethodPut, ts.last.Method)
		assert.Equal(t, "/api/profiles/7", ts.last.URL.Path)
		assert.Equal(t, "Austin", ts.body["city"])
		assert.Equal(t, model.StringList{"food"}, out.Profile.Needs)
		assert.True(t, out.Profile.IsComplete)
	})

	t.Run("all profiles sends completion filter", func(t *testing.T) {
		ts, client, sessions := setup(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"profiles": []any{}, "count": 0})
		})

		_, err := NewProfileAPI(client, sessions).AllProfiles(context.Background(), model.ProfileFilters{CompletionStatus: "complete"})
		require.NoError(t, err)
		assert.Equal(t, "complete", ts.last.URL.Query().Get("completion_status"))
	})
}

func TestResourceAPI_Queries(t *testing.T) {
	ts, client, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"resources": nil, "count": 0})
	})
	resources := NewResourceAPI(client)
	ctx := context.Background()
	filters := model.ResourceFilters{Category: model.CategoryFood, Location: "Austin", Search: "pantry", Status: model.ResourceStatusPending, ProviderID: 3}

	out, err := resources.List(ctx, filters)
	require.NoError(t, err)
	assert.NotNil(t, out.Resources)
	q := ts.last.URL.Query()
	assert.Equal(t, "/api/resources", ts.last.URL.Path)
	assert.Equal(t, "food", q.Get("category"))
	assert.Equal(t, "Austin", q.Get("location"))
	assert.Equal(t, "pantry", q.Get("search"))
	assert.Empty(t, q.Get("status"))

	_, err = resources.Mine(ctx, filters)
	require.NoError(t, err)
	q = ts.last.URL.Query()
	assert.Equal(t, "/api/resources/my", ts.last.URL.Path)
	assert.Equal(t, "pending", q.Get("status"))
	assert.Empty(t, q.Get("provider_id"))

	_, err = resources.All(ctx, filters)
	require.NoError(t, err)
	assert.Equal(t, "/api/resources/all", ts.last.URL.Path)
	assert.Equal(t, "3", ts.last.URL.Query().Get("provider_id"))

	_, err = resources.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pending", ts.last.URL.Query().Get("status"))
}

func TestResourceAPI_Review(t *testing.T) {
	ts, client, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Rejection reason is required when rejecting a resource"})
	})

	_, err := NewResourceAPI(client).Review(context.Background(), 7, model.ApprovalInput{Status: model.ResourceStatusRejected})
	require.Error(t, err)

	assert.Equal(t, "/api/resources/7/approval", ts.last.URL.Path)
	assert.Equal(t, "", ts.body["rejection_reason"])
	assert.Equal(t, "Rejection reason is required when rejecting a resource", err.Error())
	assert.Equal(t, customErrors.ErrorTypeValidation, customErrors.TypeOf(err))
}

func TestResourceAPI_InvalidID(t *testing.T) {
	ts, client, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {})
	resources := NewResourceAPI(client)

	_, err := resources.Get(context.Background(), 0)
	assert.ErrorIs(t, err, customErrors.ErrInvalidID)
	_, err = resources.Delete(context.Background(), -1)
	assert.ErrorIs(t, err, customErrors.ErrInvalidID)
	assert.Equal(t, int32(0), ts.hits.Load())
}

func TestAdminAPI(t *testing.T) {
	ts, client, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]any{"users": []any{ada}, "count": 1})
		default:
			writeJSON(w, http.StatusOK, map[string]any{"message": "User updated successfully", "user": ada})
		}
	})
	admin := NewAdminAPI(client, nil)
	ctx := context.Background()

	users, err := admin.Users(ctx, model.UserFilters{Role: model.RoleProvider})
	require.NoError(t, err)
	assert.Len(t, users.Users, 1)
	assert.Equal(t, "provider", ts.last.URL.Query().Get("role"))

	_, err = admin.ChangeUserStatus(ctx, 7, model.UserStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, ts.last.Method)
	assert.Equal(t, "/api/users/7/status", ts.last.URL.Path)
	assert.Equal(t, "suspended", ts.body["status"])

	name := "Ada"
	_, err = admin.UpdateUser(ctx, 7, model.UserUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, ts.last.Method)
	assert.NotContains(t, ts.body, "role")

	_, err = admin.Pending(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/api/resources/all", ts.last.URL.Path)
}

func TestClient_RateLimitHonoursContext(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"resources": []any{}, "count": 0})
	})
	client, err := NewClient(ts.URL, nil, WithRateLimit(0.001, 1))
	require.NoError(t, err)
	resources := NewResourceAPI(client)

	_, err = resources.List(context.Background(), model.ResourceFilters{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = resources.List(ctx, model.ResourceFilters{})
	require.Error(t, err)
	assert.Equal(t, int32(1), ts.hits.Load())
}

func TestClient_UndecodableErrorBodyUsesFallback(t *testing.T) {
	_, client, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>oops</html>"))
	})

	_, err := NewResourceAPI(client).List(context.Background(), model.ResourceFilters{})
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch resources", customErrors.UserMessage(err, "Failed to fetch resources"))
}
