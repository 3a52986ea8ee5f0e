package verification

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

var ErrEmptySecret = errors.New("token hash secret is empty")

// TokenHasher derives the at-rest form of single-use tokens, so a dump of
// the token table cannot be replayed.
type TokenHasher struct {
	secret []byte
}

func NewTokenHasher(secret []byte) (*TokenHasher, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return &TokenHasher{secret: append([]byte(nil), secret...)}, nil
}

// NewRandomTokenHasher keys the hasher with 32 random bytes. Hashes do not
// survive a restart.
func NewRandomTokenHasher() (*TokenHasher, error) {
	secret := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, secret); err != nil {
		return nil, fmt.Errorf("failed to generate token secret: %w", err)
	}
	return &TokenHasher{secret: secret}, nil
}

func (h *TokenHasher) HashToken(token string) string {
	mac := hmac.New(sha256.New, h.secret)
	mac.Write([]byte(token))
	return base64.URLEncoding.EncodeToString(mac.Sum(nil))
}

func (h *TokenHasher) VerifyTokenHash(token, storedHash string) bool {
	return subtle.ConstantTimeCompare([]byte(h.HashToken(token)), []byte(storedHash)) == 1
}
