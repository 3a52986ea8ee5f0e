package client

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/abisalde/povertyline-client/internal/api"
	"github.com/abisalde/povertyline-client/internal/authz"
	"github.com/abisalde/povertyline-client/internal/configs"
	"github.com/abisalde/povertyline-client/internal/mockapi"
	"github.com/abisalde/povertyline-client/internal/storage"
	"github.com/abisalde/povertyline-client/internal/store"
	"github.com/abisalde/povertyline-client/pkg/config"
	"github.com/abisalde/povertyline-client/pkg/jwt"
	"github.com/abisalde/povertyline-client/pkg/mail"
	"github.com/abisalde/povertyline-client/pkg/session"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	AppEnv string
}

// App is everything a front end needs: the store to dispatch against, the
// gate to check navigation with and the adapters behind them.
type App struct {
	Config  *configs.Config
	Storage storage.Storage
	Session *session.SessionManager
	Client  *api.Client
	Store   *store.Store
	Guard   *authz.Guard
}

func (a *App) Close() error {
	return a.Storage.Close()
}

func InitConfig() (*configs.Config, *AppConfig, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	env := os.Getenv("APP_ENV")

	var cfg *configs.Config
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		cfg, err = configs.LoadFrom(dir, env)
	} else {
		cfg, err = configs.Load(env)
	}
	if err != nil {
		return nil, nil, err
	}

	return cfg, &AppConfig{AppEnv: env}, nil
}

func SetupStorage(cfg *configs.Config) (storage.Storage, error) {
	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return storage.New(ctxWithTimeout, cfg)
}

// SetupClient builds the store on top of durable storage and points the
// transport's 401 hook at it.
func SetupClient(ctx context.Context, cfg *configs.Config, durable storage.Storage, nav store.Navigator) (*App, error) {
	sessions := session.NewSessionManager(durable)

	opts := []api.Option{api.WithTimeout(cfg.API.Timeout)}
	if cfg.API.RequestsPerSecond > 0 {
		opts = append(opts, api.WithRateLimit(cfg.API.RequestsPerSecond, cfg.API.Burst))
	}

	client, err := api.NewClient(cfg.API.BaseURL, sessions, opts...)
	if err != nil {
		return nil, err
	}

	resources := api.NewResourceAPI(client)
	st := store.New(ctx, store.Dependencies{
		Auth:      api.NewAuthAPI(client, sessions),
		Profiles:  api.NewProfileAPI(client, sessions),
		Resources: resources,
		Admin:     api.NewAdminAPI(client, resources),
		Session:   sessions,
		Navigator: nav,
	})
	client.OnUnauthorized(st.HandleUnauthorized)

	return &App{
		Config:  cfg,
		Storage: durable,
		Session: sessions,
		Client:  client,
		Store:   st,
		Guard:   authz.NewGuard(st),
	}, nil
}

const devJWTSecret = "povertyline-dev-secret"

func SetupMockAPI(ctx context.Context, cfg *configs.Config, appEnv string) (*mockapi.Server, error) {
	secret, err := resolveJWTSecret(ctx, cfg, appEnv)
	if err != nil {
		return nil, err
	}

	issuer, err := jwt.NewIssuer(secret)
	if err != nil {
		return nil, err
	}

	repo := mockapi.NewRepository()
	if cfg.MockAPI.Seed {
		if err := mockapi.Seed(repo, 24, time.Now().UnixNano()); err != nil {
			return nil, err
		}
	}

	return mockapi.New(repo, mockapi.Options{
		Issuer:    issuer,
		TokenTTL:  cfg.MockAPI.TokenTTL,
		AppEnv:    appEnv,
		AccessLog: true,
		Mailer:    mail.NewMailerService(cfg),
	}), nil
}

func resolveJWTSecret(ctx context.Context, cfg *configs.Config, appEnv string) (string, error) {
	if cfg.MockAPI.JWTSecret != "" {
		return cfg.MockAPI.JWTSecret, nil
	}

	secret, err := config.DefaultSecretProvider(cfg.MockAPI.SecretsDir).GetSecret(ctx, "JWT_SECRET")
	switch {
	case err == nil:
		return secret, nil
	case errors.Is(err, config.ErrSecretNotFound) && appEnv != "production":
		log.Println("⚠️ JWT_SECRET not set, signing mock tokens with the development secret")
		return devJWTSecret, nil
	}
	return "", err
}
