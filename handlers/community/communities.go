package community

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sabyskool/api/services"
	"github.com/sabyskool/api/utils/middleware"
	"github.com/sabyskool/api/utils/response"
	"github.com/sabyskool/api/utils/validation"
)

// CommunityHandler handles community CRUD and membership requests
type CommunityHandler struct {
	service   *services.CommunityService
	validator *validation.Validator
}

func NewCommunityHandler(service *services.CommunityService) *CommunityHandler {
	return &CommunityHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateCommunityRequest represents a community creation request
type CreateCommunityRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=255"`
	Slug        string `json:"slug" validate:"required,min=2,max=100"`
	Description string `json:"description"`
}

// Create handles community creation. The caller becomes the owner and its
// first member.
func (h *CommunityHandler) Create(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req CreateCommunityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Slug = strings.ToLower(strings.TrimSpace(req.Slug))

	community, err := h.service.CreateCommunity(c.Context(), user.ID, req.Name, req.Slug, req.Description)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "UNIQUE") {
			return response.Conflict(c, "A community with this slug already exists")
		}
		return response.InternalServerError(c, "Failed to create community")
	}

	return response.Created(c, community)
}

// Get returns a single community by ID
func (h *CommunityHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid community ID")
	}

	community, err := h.service.GetCommunity(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Community not found")
	}

	return response.Success(c, community)
}

// Join adds the authenticated user to a community. Joining twice is a no-op.
func (h *CommunityHandler) Join(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid community ID")
	}

	if _, err := h.service.GetCommunity(c.Context(), uint(id)); err != nil {
		return response.NotFound(c, "Community not found")
	}

	if err := h.service.Join(c.Context(), user.ID, uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to join community")
	}

	return response.SuccessWithMessage(c, "Joined community", nil)
}

// ListMembers returns all memberships of a community
func (h *CommunityHandler) ListMembers(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid community ID")
	}

	members, err := h.service.ListMembers(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}

	return response.Success(c, members)
}
