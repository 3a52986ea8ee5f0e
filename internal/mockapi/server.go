// Package mockapi is an in-memory stand-in for the PovertyLine REST API,
// used by the CLI in development and by integration tests.
package mockapi

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/abisalde/povertyline-client/internal/middleware"
	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/pkg/jwt"
	"github.com/abisalde/povertyline-client/pkg/mail"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

const (
	defaultTokenTTL = time.Hour
	defaultResetURL = "http://localhost:3000/reset-password"
)

type Options struct {
	Issuer   *jwt.Issuer
	TokenTTL time.Duration
	AppEnv   string
	// AccessLog enables fiber's request logger.
	AccessLog bool
	// Mailer delivers password reset links. Defaults to the log.
	Mailer mail.Mailer
	// ResetURL prefixes the token in reset links.
	ResetURL string
}

type Server struct {
	app      *fiber.App
	repo     *Repository
	issuer   *jwt.Issuer
	tokenTTL time.Duration
	mailer   mail.Mailer
	resetURL string
}

func New(repo *Repository, opts Options) *Server {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if opts.Mailer == nil {
		opts.Mailer = mail.LogMailer{}
	}
	if opts.ResetURL == "" {
		opts.ResetURL = defaultResetURL
	}
	s := &Server{
		repo:     repo,
		issuer:   opts.Issuer,
		tokenTTL: opts.TokenTTL,
		mailer:   opts.Mailer,
		resetURL: strings.TrimRight(opts.ResetURL, "/"),
	}

	app := fiber.New(fiber.Config{
		AppName:       "PovertyLine Mock API",
		CaseSensitive: true,
		ErrorHandler:  middleware.ErrorHandler,
	})

	app.Use(func(c *fiber.Ctx) error {
		if c.UserContext() == nil {
			c.SetUserContext(context.Background())
		}
		return c.Next()
	})
	app.Use(middleware.RequestContext)

	app.Use(healthcheck.New(healthcheck.Config{
		LivenessProbe: func(c *fiber.Ctx) bool {
			return true
		},
		LivenessEndpoint: "/health",
	}))

	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${ip}]:${port} ${status} - ${method} ${path}\n",
		}))
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000,http://localhost:5173",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-Id",
	}))

	s.registerRoutes(app)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Not found",
		})
	})

	if opts.AppEnv != "production" {
		log.Println("🧪 Mock API routes registered under /api")
	}

	s.app = app
	return s
}

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Repository() *Repository { return s.repo }

func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

func (s *Server) Shutdown() error { return s.app.Shutdown() }

func (s *Server) registerRoutes(app *fiber.App) {
	required := middleware.Authenticate(s.issuer, s.repo, true)
	optional := middleware.Authenticate(s.issuer, s.repo, false)
	adminOnly := middleware.RequireRoles(model.RoleAdmin)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", s.register)
	authGroup.Post("/login", s.login)
	authGroup.Get("/me", required, s.me)
	authGroup.Post("/change-password", required, s.changePassword)
	authGroup.Post("/reset-password", s.requestPasswordReset)
	authGroup.Post("/reset-password/:token", s.resetPassword)

	api.Get("/profile", required, s.currentProfile)
	api.Put("/profile", required, s.updateCurrentProfile)
	api.Get("/profiles", required, adminOnly, s.listProfiles)
	api.Get("/profiles/:id<int>", required, s.getProfile)
	api.Put("/profiles/:id<int>", required, s.updateProfile)

	api.Get("/resources", s.listPublicResources)
	api.Get("/resources/all", required, adminOnly, s.listAllResources)
	api.Get("/resources/my", required, s.listMyResources)
	api.Post("/resources", required, middleware.RequireRoles(model.RoleProvider, model.RoleAdmin), s.createResource)
	api.Get("/resources/:id<int>", optional, s.getResource)
	api.Put("/resources/:id<int>", required, s.updateResource)
	api.Delete("/resources/:id<int>", required, s.deleteResource)
	api.Post("/resources/:id<int>/approval", required, adminOnly, s.reviewResource)

	api.Get("/users", required, adminOnly, s.listUsers)
	api.Get("/users/:id<int>", required, s.getUser)
	api.Put("/users/:id<int>", required, s.updateUser)
	api.Patch("/users/:id<int>/status", required, adminOnly, s.changeUserStatus)
}
