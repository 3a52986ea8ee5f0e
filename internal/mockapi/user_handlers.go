package mockapi

import (
	"errors"
	"fmt"

	"github.com/abisalde/povertyline-client/internal/middleware"
	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/internal/utils/validator"
	"github.com/gofiber/fiber/v2"
)

func userError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	case errors.Is(err, ErrEmailTaken):
		return fiber.NewError(fiber.StatusConflict, "Email already in use")
	}
	return err
}

func (s *Server) listUsers(c *fiber.Ctx) error {
	users := s.repo.ListUsers(model.UserFilters{
		Role:   model.Role(c.Query("role")),
		Status: model.UserStatus(c.Query("status")),
	})
	return c.JSON(model.UserList{Users: users, Count: len(users)})
}

func (s *Server) getUser(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := ownerOrAdmin(c, id); err != nil {
		return err
	}
	user, err := s.repo.GetUser(id)
	if err != nil {
		return userError(err)
	}
	return c.JSON(model.UserEnvelope{User: &user})
}

func (s *Server) updateUser(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := ownerOrAdmin(c, id); err != nil {
		return err
	}

	var input model.UserUpdate
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	admin := middleware.IsAdmin(c)
	if input.Role != nil {
		if !admin {
			return fiber.NewError(fiber.StatusForbidden, "Only admins can change user roles")
		}
		if !input.Role.IsValid() {
			return badRequest("Role must be one of user, provider, admin")
		}
	}
	if input.Status != nil {
		if !admin {
			return fiber.NewError(fiber.StatusForbidden, "Only admins can change user status")
		}
		if !input.Status.IsValid() {
			return badRequest("Status must be one of active, inactive, suspended")
		}
	}
	if input.Email != nil {
		if err := validator.ValidateEmail(*input.Email); err != nil {
			return err
		}
	}

	user, err := s.repo.UpdateUser(id, input)
	if err != nil {
		return userError(err)
	}
	return c.JSON(model.UserEnvelope{Message: "User updated successfully", User: &user})
}

func (s *Server) changeUserStatus(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var input model.UserStatusInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}
	if !input.Status.IsValid() {
		return badRequest("Status must be one of active, inactive, suspended")
	}

	user, err := s.repo.UpdateUser(id, model.UserUpdate{Status: &input.Status})
	if err != nil {
		return userError(err)
	}
	return c.JSON(model.UserEnvelope{
		Message: fmt.Sprintf("User status changed to %s", user.Status),
		User:    &user,
	})
}
