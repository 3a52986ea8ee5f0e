package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewIssuer("test-secret-key-12345")
	require.NoError(t, err)

	token, err := issuer.GenerateToken(42, "provider", TokenTypeAccess, time.Hour)
	require.NoError(t, err)

	claims, err := issuer.ValidateToken(token, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "provider", claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

func TestIssuer_ValidateToken_Failures(t *testing.T) {
	issuer, err := NewIssuer("test-secret-key-12345")
	require.NoError(t, err)
	other, err := NewIssuer("another-secret")
	require.NoError(t, err)

	expired, err := issuer.GenerateToken(1, "user", TokenTypeAccess, -time.Minute)
	require.NoError(t, err)
	foreign, err := other.GenerateToken(1, "user", TokenTypeAccess, time.Hour)
	require.NoError(t, err)
	reset, err := issuer.GenerateToken(1, "user", TokenTypeReset, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "expired", token: expired, want: ErrExpiredToken},
		{name: "wrong secret", token: foreign, want: ErrInvalidToken},
		{name: "garbage", token: "not.a.jwt", want: ErrInvalidToken},
		{name: "wrong type", token: reset, want: ErrInvalidTokenType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.ValidateToken(tt.token, TokenTypeAccess)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIssuer_RejectsUnknownType(t *testing.T) {
	issuer, err := NewIssuer("secret")
	require.NoError(t, err)

	_, err = issuer.GenerateToken(1, "user", "refresh", time.Hour)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestNewIssuer_SecretFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewIssuer("")
	assert.ErrorIs(t, err, ErrSecretNotConfigured)

	t.Setenv("JWT_SECRET", "from-env")
	issuer, err := NewIssuer("")
	require.NoError(t, err)
	assert.Equal(t, []byte("from-env"), issuer.secret)
}

func TestIsExpired(t *testing.T) {
	issuer, err := NewIssuer("secret")
	require.NoError(t, err)

	live, err := issuer.GenerateToken(1, "user", TokenTypeAccess, time.Hour)
	require.NoError(t, err)
	dead, err := issuer.GenerateToken(1, "user", TokenTypeAccess, -time.Hour)
	require.NoError(t, err)

	assert.False(t, IsExpired(live))
	assert.True(t, IsExpired(dead))
	assert.False(t, IsExpired("opaque-session-token"))

	ttl, ok := GetTokenRemainingTTL(live)
	assert.True(t, ok)
	assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 5)
}
