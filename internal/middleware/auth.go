package middleware

import (
	"errors"
	"strings"

	customErrors "github.com/abisalde/povertyline-client/internal/errors"
	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

const currentUserKey = "currentUser"

type UserLookup interface {
	GetUser(id int64) (model.UserSummary, error)
}

// Authenticate resolves the bearer token into the current user. With
// required=false a missing or bad token leaves the request anonymous.
func Authenticate(issuer *jwt.Issuer, users UserLookup, required bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := stripToken(c)
		if err != nil {
			if !required {
				return c.Next()
			}
			return unauthorized(c, err.Error())
		}

		claims, err := issuer.ValidateToken(tokenString, jwt.TokenTypeAccess)
		if err != nil {
			if !required {
				return c.Next()
			}
			return unauthorized(c, err.Error())
		}

		user, err := users.GetUser(claims.UserID)
		if err != nil {
			if !required {
				return c.Next()
			}
			return unauthorized(c, "User not found")
		}

		if user.Status != model.UserStatusActive {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Account is inactive or suspended",
			})
		}

		c.Locals(currentUserKey, &user)
		return c.Next()
	}
}

// RequireRoles admits only users holding one of roles.
func RequireRoles(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthorized(c, customErrors.ErrNotAuthenticated.Error())
		}
		if !hasRequiredRole(user.Role, roles) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Unauthorized access",
			})
		}
		return c.Next()
	}
}

func CurrentUser(c *fiber.Ctx) *model.UserSummary {
	if user, ok := c.Locals(currentUserKey).(*model.UserSummary); ok {
		return user
	}
	return nil
}

func IsAdmin(c *fiber.Ctx) bool {
	return CurrentUser(c).HasRole(model.RoleAdmin)
}

func hasRequiredRole(userRole model.Role, allowed []model.Role) bool {
	if userRole == model.RoleAdmin {
		return true
	}
	for _, r := range allowed {
		if r == userRole {
			return true
		}
	}
	return false
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
	})
}

func stripToken(c *fiber.Ctx) (string, error) {
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authHeader == "" {
		return "", errors.New("Missing Authorization Header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		token := strings.TrimSpace(parts[1])
		if token == "" {
			return "", errors.New("Token missing after Bearer")
		}
		return token, nil
	}

	return "", errors.New("Authorization header must use the Bearer scheme")
}
