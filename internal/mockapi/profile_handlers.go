package mockapi

import (
	"errors"

	"github.com/abisalde/povertyline-client/internal/middleware"
	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/gofiber/fiber/v2"
)

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, badRequest("Invalid id")
	}
	return int64(id), nil
}

// ownerOrAdmin rejects callers that are neither the owner nor an admin.
func ownerOrAdmin(c *fiber.Ctx, ownerID int64) error {
	user := middleware.CurrentUser(c)
	if user == nil || (user.ID != ownerID && !user.HasRole(model.RoleAdmin)) {
		return fiber.NewError(fiber.StatusForbidden, "Unauthorized access")
	}
	return nil
}

func profileError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Profile not found")
	}
	return err
}

func (s *Server) currentProfile(c *fiber.Ctx) error {
	p, err := s.repo.GetProfile(middleware.CurrentUser(c).ID)
	if err != nil {
		return profileError(err)
	}
	return c.JSON(model.ProfileEnvelope{Profile: p})
}

func (s *Server) updateCurrentProfile(c *fiber.Ctx) error {
	return s.saveProfile(c, middleware.CurrentUser(c).ID)
}

func (s *Server) getProfile(c *fiber.Ctx) error {
	userID, err := pathID(c)
	if err != nil {
		return err
	}
	if err := ownerOrAdmin(c, userID); err != nil {
		return err
	}
	p, err := s.repo.GetProfile(userID)
	if err != nil {
		return profileError(err)
	}
	return c.JSON(model.ProfileEnvelope{Profile: p})
}

func (s *Server) updateProfile(c *fiber.Ctx) error {
	userID, err := pathID(c)
	if err != nil {
		return err
	}
	if err := ownerOrAdmin(c, userID); err != nil {
		return err
	}
	return s.saveProfile(c, userID)
}

func (s *Server) saveProfile(c *fiber.Ctx, userID int64) error {
	var input model.ProfileUpdate
	if err := bindJSON(c, &input); err != nil {
		return err
	}
	p, err := s.repo.UpdateProfile(userID, input)
	if err != nil {
		return profileError(err)
	}
	return c.JSON(model.ProfileEnvelope{Message: "Profile updated successfully", Profile: p})
}

func (s *Server) listProfiles(c *fiber.Ctx) error {
	profiles := s.repo.ListProfiles(c.Query("completion_status"))
	return c.JSON(model.ProfileList{Profiles: profiles, Count: len(profiles)})
}
