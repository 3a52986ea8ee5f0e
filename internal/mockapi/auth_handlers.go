package mockapi

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/abisalde/povertyline-client/internal/middleware"
	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/internal/utils/validator"
	"github.com/abisalde/povertyline-client/pkg/jwt"
	"github.com/abisalde/povertyline-client/pkg/password"
	"github.com/gofiber/fiber/v2"
)

func badRequest(message string) error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func bindJSON(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return badRequest("Invalid request body")
	}
	return nil
}

func (s *Server) issueToken(user model.UserSummary) (string, error) {
	return s.issuer.GenerateToken(user.ID, string(user.Role), jwt.TokenTypeAccess, s.tokenTTL)
}

func (s *Server) register(c *fiber.Ctx) error {
	var input model.RegisterInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}
	if err := validator.ValidateRegistration(input); err != nil {
		return err
	}
	if input.Role == "" {
		input.Role = model.RoleUser
	}
	if !input.Role.IsValid() {
		return badRequest("Role must be one of user, provider, admin")
	}

	hash, err := password.HashPassword(input.Password)
	if err != nil {
		return err
	}

	user, err := s.repo.CreateUser(input.Name, input.Email, hash, input.Role)
	if errors.Is(err, ErrEmailTaken) {
		return fiber.NewError(fiber.StatusConflict, "Email already registered")
	}
	if err != nil {
		return err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return err
	}

	log.Printf("👤 Registered %s as %s", user.Email, user.Role)
	return c.Status(fiber.StatusCreated).JSON(model.AuthResponse{
		Message: "User registered successfully",
		Token:   token,
		User:    &user,
	})
}

func (s *Server) login(c *fiber.Ctx) error {
	var input model.LoginInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return badRequest("Email and password are required")
	}

	user, hash, err := s.repo.Credentials(input.Email)
	if err != nil || password.CheckPasswordHash(input.Password, hash) != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}
	if user.Status != model.UserStatusActive {
		return fiber.NewError(fiber.StatusForbidden, "Account is inactive or suspended")
	}

	s.repo.TouchLogin(user.ID)
	user, _ = s.repo.GetUser(user.ID)

	token, err := s.issueToken(user)
	if err != nil {
		return err
	}

	return c.JSON(model.AuthResponse{
		Message: "Login successful",
		Token:   token,
		User:    &user,
	})
}

func (s *Server) me(c *fiber.Ctx) error {
	return c.JSON(model.UserEnvelope{User: middleware.CurrentUser(c)})
}

func (s *Server) changePassword(c *fiber.Ctx) error {
	var input model.ChangePasswordInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}
	user := middleware.CurrentUser(c)

	hash, err := s.repo.PasswordHash(user.ID)
	if err != nil {
		return err
	}
	if password.CheckPasswordHash(input.CurrentPassword, hash) != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Current password is incorrect")
	}
	if err := validator.ValidatePassword(input.NewPassword); err != nil {
		return err
	}

	next, err := password.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.SetPassword(user.ID, next); err != nil {
		return err
	}
	return c.JSON(model.MessageResponse{Message: "Password changed successfully"})
}

func (s *Server) requestPasswordReset(c *fiber.Ctx) error {
	var input model.PasswordResetRequest
	if err := bindJSON(c, &input); err != nil {
		return err
	}
	if strings.TrimSpace(input.Email) == "" {
		return badRequest("Email is required")
	}

	if token, ok := s.repo.IssueResetToken(input.Email); ok {
		body := fmt.Sprintf("Use the link below to choose a new password. It expires in 24 hours.\n\n%s/%s", s.resetURL, token)
		if err := s.mailer.SendPlainTextEmail(c.UserContext(), input.Email, "Reset your PovertyLine password", body); err != nil {
			log.Printf("❌ Failed to send reset email to %s: %v", input.Email, err)
		}
	}

	return c.JSON(model.MessageResponse{
		Message: "If the email exists, a password reset link has been sent",
	})
}

func (s *Server) resetPassword(c *fiber.Ctx) error {
	var input model.PasswordResetInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}
	if err := validator.ValidatePassword(input.NewPassword); err != nil {
		return err
	}

	userID, err := s.repo.ConsumeResetToken(c.Params("token"))
	if err != nil {
		return badRequest("Invalid or expired reset token")
	}

	hash, err := password.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	if err := s.repo.SetPassword(userID, hash); err != nil {
		return err
	}
	return c.JSON(model.MessageResponse{Message: "Password has been reset successfully"})
}
