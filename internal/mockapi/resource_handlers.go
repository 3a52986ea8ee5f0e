package mockapi

import (
	"errors"
	"strconv"
	"strings"

	"github.com/abisalde/povertyline-client/internal/middleware"
	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/internal/utils/validator"
	"github.com/gofiber/fiber/v2"
)

func resourceError(err error) error {
	if errors.Is(err, ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Resource not found")
	}
	return err
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func resourceList(c *fiber.Ctx, resources []model.Resource) error {
	return c.JSON(model.ResourceList{Resources: resources, Count: len(resources)})
}

func (s *Server) listPublicResources(c *fiber.Ctx) error {
	category := model.Category(c.Query("category"))
	location := c.Query("location")
	search := c.Query("search")

	return resourceList(c, s.repo.ListResources(func(r model.Resource) bool {
		if r.Status != model.ResourceStatusApproved {
			return false
		}
		if category != "" && r.Category != category {
			return false
		}
		if location != "" && !containsFold(r.Location, location) {
			return false
		}
		if search != "" && !containsFold(r.Title, search) && !containsFold(r.Description, search) {
			return false
		}
		return true
	}))
}

func scopedFilter(c *fiber.Ctx) func(model.Resource) bool {
	status := model.ResourceStatus(c.Query("status"))
	category := model.Category(c.Query("category"))
	providerID, _ := strconv.ParseInt(c.Query("provider_id"), 10, 64)

	return func(r model.Resource) bool {
		if status != "" && r.Status != status {
			return false
		}
		if category != "" && r.Category != category {
			return false
		}
		if providerID != 0 && r.ProviderID != providerID {
			return false
		}
		return true
	}
}

func (s *Server) listAllResources(c *fiber.Ctx) error {
	return resourceList(c, s.repo.ListResources(scopedFilter(c)))
}

func (s *Server) listMyResources(c *fiber.Ctx) error {
	userID := middleware.CurrentUser(c).ID
	keep := scopedFilter(c)
	return resourceList(c, s.repo.ListResources(func(r model.Resource) bool {
		return r.ProviderID == userID && keep(r)
	}))
}

func applyResourceInput(r *model.Resource, in model.ResourceInput) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&r.Title, in.Title)
	set(&r.Description, in.Description)
	if in.Category != "" {
		r.Category = in.Category
	}
	set(&r.Location, in.Location)
	set(&r.Address, in.Address)
	set(&r.City, in.City)
	set(&r.State, in.State)
	set(&r.ZipCode, in.ZipCode)
	set(&r.ContactName, in.ContactName)
	set(&r.ContactPhone, in.ContactPhone)
	set(&r.ContactEmail, in.ContactEmail)
	set(&r.StartDate, in.StartDate)
	set(&r.EndDate, in.EndDate)
	set(&r.AdditionalInfo, in.AdditionalInfo)
	if in.Requirements != nil {
		r.Requirements = model.NewStringList(in.Requirements...)
	}
}

func (s *Server) createResource(c *fiber.Ctx) error {
	var input model.ResourceInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}
	if err := validator.ValidateResource(input); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	res := model.Resource{
		ProviderID:   user.ID,
		ProviderName: user.Name,
		Status:       model.ResourceStatusPending,
	}
	applyResourceInput(&res, input)

	created := s.repo.CreateResource(res)
	return c.Status(fiber.StatusCreated).JSON(model.ResourceEnvelope{
		Message:  "Resource created successfully",
		Resource: &created,
	})
}

func (s *Server) getResource(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	res, err := s.repo.GetResource(id)
	if err != nil {
		return resourceError(err)
	}

	if res.Status != model.ResourceStatusApproved {
		user := middleware.CurrentUser(c)
		if user == nil || (user.ID != res.ProviderID && !user.HasRole(model.RoleAdmin)) {
			return fiber.NewError(fiber.StatusForbidden, "Resource not available")
		}
	}
	return c.JSON(model.ResourceEnvelope{Resource: &res})
}

func (s *Server) updateResource(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	existing, err := s.repo.GetResource(id)
	if err != nil {
		return resourceError(err)
	}
	if err := ownerOrAdmin(c, existing.ProviderID); err != nil {
		return err
	}

	var input model.ResourceInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}
	if input.Category != "" && !input.Category.IsValid() {
		return badRequest(validator.ErrInvalidCategory.Error())
	}

	admin := middleware.IsAdmin(c)
	updated, err := s.repo.UpdateResource(id, func(r *model.Resource) {
		applyResourceInput(r, input)
		if r.Status == model.ResourceStatusApproved && !admin {
			r.Status = model.ResourceStatusPending
			r.ApprovedAt, r.ApprovedBy = "", 0
		}
	})
	if err != nil {
		return resourceError(err)
	}
	return c.JSON(model.ResourceEnvelope{Message: "Resource updated successfully", Resource: &updated})
}

func (s *Server) reviewResource(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if _, err := s.repo.GetResource(id); err != nil {
		return resourceError(err)
	}

	var input model.ApprovalInput
	if err := bindJSON(c, &input); err != nil {
		return err
	}

	var message string
	switch input.Status {
	case model.ResourceStatusApproved:
		message = "Resource approved successfully"
	case model.ResourceStatusRejected:
		if err := validator.ValidateReview(input); err != nil {
			return err
		}
		message = "Resource rejected successfully"
	default:
		return badRequest("Invalid status")
	}

	reviewer := middleware.CurrentUser(c).ID
	now := s.repo.timestamp()
	updated, err := s.repo.UpdateResource(id, func(r *model.Resource) {
		r.Status = input.Status
		if input.Status == model.ResourceStatusApproved {
			r.RejectionReason = ""
			r.ApprovedAt, r.ApprovedBy = now, reviewer
			return
		}
		r.RejectionReason = strings.TrimSpace(input.RejectionReason)
		r.ApprovedAt, r.ApprovedBy = "", 0
	})
	if err != nil {
		return resourceError(err)
	}
	return c.JSON(model.ResourceEnvelope{Message: message, Resource: &updated})
}

func (s *Server) deleteResource(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	existing, err := s.repo.GetResource(id)
	if err != nil {
		return resourceError(err)
	}
	if err := ownerOrAdmin(c, existing.ProviderID); err != nil {
		return err
	}
	if err := s.repo.DeleteResource(id); err != nil {
		return resourceError(err)
	}
	return c.JSON(model.MessageResponse{Message: "Resource deleted successfully"})
}
