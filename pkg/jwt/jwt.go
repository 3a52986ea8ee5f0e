package jwt

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	customErrors "github.com/abisalde/povertyline-client/internal/errors"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

const (
	TokenTypeAccess = "access"
	TokenTypeReset  = "reset"

	issuer = "povertyline-api"
)

var (
	ErrSecretNotConfigured = customErrors.NewTypedError("JWT secret not configured", customErrors.ErrorTypeInternalServerError)
	ErrInvalidToken        = customErrors.NewTypedError("Invalid token", customErrors.ErrorTypeUnauthenticated)
	ErrExpiredToken        = customErrors.NewTypedError("Token has expired", customErrors.ErrorTypeUnauthenticated)
	ErrInvalidTokenType    = customErrors.NewTypedError("Invalid token type", customErrors.ErrorTypeUnauthenticated)
)

func GetJWTSecret() (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", ErrSecretNotConfigured
	}
	return secret, nil
}

// Issuer signs and verifies HS256 tokens with one shared secret.
type Issuer struct {
	secret []byte
}

// NewIssuer falls back to JWT_SECRET when secret is empty.
func NewIssuer(secret string) (*Issuer, error) {
	if secret == "" {
		env, err := GetJWTSecret()
		if err != nil {
			return nil, err
		}
		secret = env
	}
	return &Issuer{secret: []byte(secret)}, nil
}

func (i *Issuer) GenerateToken(userID int64, role, tokenType string, expiration time.Duration) (string, error) {
	if tokenType != TokenTypeAccess && tokenType != TokenTypeReset {
		return "", ErrInvalidTokenType
	}

	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (i *Issuer) ValidateToken(tokenString string, tokenType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Type != tokenType {
		return nil, ErrInvalidTokenType
	}

	return claims, nil
}

// GetTokenRemainingTTL reads exp without verifying the signature. It
// returns ok=false when the token is not a JWT or carries no expiry.
func GetTokenRemainingTTL(tokenString string) (ttl time.Duration, ok bool) {
	claims := &jwt.RegisteredClaims{}
	_, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims)
	if err != nil || claims.ExpiresAt == nil {
		return 0, false
	}
	return time.Until(claims.ExpiresAt.Time), true
}

// IsExpired reports whether a token's exp claim has passed. Opaque tokens
// are never reported as expired.
func IsExpired(tokenString string) bool {
	ttl, ok := GetTokenRemainingTTL(tokenString)
	return ok && ttl <= 0
}
