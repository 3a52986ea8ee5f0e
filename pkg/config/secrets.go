package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var ErrSecretNotFound = errors.New("secret not found")

// SecretProvider defines the interface for retrieving secrets
type SecretProvider interface {
	GetSecret(ctx context.Context, key string) (string, error)
}

// EnvironmentSecretProvider reads secrets from environment variables
type EnvironmentSecretProvider struct{}

func (e *EnvironmentSecretProvider) GetSecret(ctx context.Context, key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
	}
	return value, nil
}

// FileSecretProvider reads secrets from files (e.g., Kubernetes secrets)
type FileSecretProvider struct {
	secretsDir string
}

func NewFileSecretProvider(secretsDir string) *FileSecretProvider {
	return &FileSecretProvider{
		secretsDir: secretsDir,
	}
}

func (f *FileSecretProvider) GetSecret(ctx context.Context, key string) (string, error) {
	data, err := os.ReadFile(filepath.Join(f.secretsDir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
		}
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
	}
	return value, nil
}

// ChainSecretProvider asks each provider in turn and returns the first hit.
type ChainSecretProvider []SecretProvider

func (c ChainSecretProvider) GetSecret(ctx context.Context, key string) (string, error) {
	for _, p := range c {
		value, err := p.GetSecret(ctx, key)
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, ErrSecretNotFound) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
}

// CachedSecretProvider wraps another provider with caching
type CachedSecretProvider struct {
	provider      SecretProvider
	cache         sync.Map
	cacheDuration time.Duration
}

type cachedSecret struct {
	value     string
	fetchedAt time.Time
}

func NewCachedSecretProvider(provider SecretProvider, cacheDuration time.Duration) *CachedSecretProvider {
	return &CachedSecretProvider{
		provider:      provider,
		cacheDuration: cacheDuration,
	}
}

func (c *CachedSecretProvider) GetSecret(ctx context.Context, key string) (string, error) {
	if cached, ok := c.cache.Load(key); ok {
		cs := cached.(cachedSecret)
		if time.Since(cs.fetchedAt) < c.cacheDuration {
			return cs.value, nil
		}
	}

	value, err := c.provider.GetSecret(ctx, key)
	if err != nil {
		return "", err
	}

	c.cache.Store(key, cachedSecret{
		value:     value,
		fetchedAt: time.Now(),
	})
	return value, nil
}

// DefaultSecretProvider prefers files under secretsDir, when it exists, and
// falls back to the environment.
func DefaultSecretProvider(secretsDir string) SecretProvider {
	if secretsDir != "" {
		if info, err := os.Stat(secretsDir); err == nil && info.IsDir() {
			log.Printf("Using file-based secrets from %s", secretsDir)
			return NewCachedSecretProvider(ChainSecretProvider{
				NewFileSecretProvider(secretsDir),
				&EnvironmentSecretProvider{},
			}, time.Hour)
		}
	}

	log.Println("Using environment variables for secrets (development mode)")
	return &EnvironmentSecretProvider{}
}
