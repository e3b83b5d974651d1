package professor

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sabyskool/api/model"
	"github.com/sabyskool/api/utils/response"
	"github.com/sabyskool/api/utils/validation"
)

// ProfessorHandler handles AI professor CRUD. All mutating routes are
// creator-gated at the router level.
type ProfessorHandler struct {
	db        *gorm.DB
	validator *validation.Validator
}

func NewProfessorHandler(db *gorm.DB) *ProfessorHandler {
	return &ProfessorHandler{
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateProfessorRequest represents a professor creation request
type CreateProfessorRequest struct {
	CommunityID uint                   `json:"community_id" validate:"required"`
	Name        string                 `json:"name" validate:"required,min=2,max=255"`
	Subject     string                 `json:"subject" validate:"max=255"`
	Personality string                 `json:"personality"`
	Model       string                 `json:"model" validate:"max=100"`
	AvatarGlyph string                 `json:"avatar_glyph" validate:"max=16"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// UpdateProfessorRequest represents a professor update request. Nil fields
// are left untouched.
type UpdateProfessorRequest struct {
	Name        *string                `json:"name,omitempty"`
	Subject     *string                `json:"subject,omitempty"`
	Personality *string                `json:"personality,omitempty"`
	Model       *string                `json:"model,omitempty"`
	AvatarGlyph *string                `json:"avatar_glyph,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// Create handles professor creation
func (h *ProfessorHandler) Create(c *fiber.Ctx) error {
	var req CreateProfessorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var community model.Community
	if err := h.db.First(&community, req.CommunityID).Error; err != nil {
		return response.NotFound(c, "Community not found")
	}

	prof := model.AIProfessor{
		CommunityID: req.CommunityID,
		Name:        req.Name,
		Subject:     req.Subject,
		Personality: req.Personality,
		Model:       req.Model,
		AvatarGlyph: req.AvatarGlyph,
		Metadata:    datatypes.JSONMap(req.Metadata),
	}
	if err := h.db.Create(&prof).Error; err != nil {
		return response.InternalServerError(c, "Failed to create professor")
	}

	return response.Created(c, prof)
}

// List returns all professors of a community
func (h *ProfessorHandler) List(c *fiber.Ctx) error {
	communityID := c.QueryInt("community_id")
	if communityID <= 0 {
		return response.BadRequest(c, "community_id query parameter is required")
	}

	var professors []model.AIProfessor
	if err := h.db.Where("community_id = ?", communityID).
		Order("created_at ASC").
		Find(&professors).Error; err != nil {
		return response.InternalServerError(c, "Failed to list professors")
	}

	return response.Success(c, professors)
}

// Get returns a single professor by ID
func (h *ProfessorHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid professor ID")
	}

	var prof model.AIProfessor
	if err := h.db.First(&prof, id).Error; err != nil {
		return response.NotFound(c, "Professor not found")
	}

	return response.Success(c, prof)
}

// Update handles professor updates
func (h *ProfessorHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid professor ID")
	}

	var prof model.AIProfessor
	if err := h.db.First(&prof, id).Error; err != nil {
		return response.NotFound(c, "Professor not found")
	}

	var req UpdateProfessorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name != nil {
		prof.Name = *req.Name
	}
	if req.Subject != nil {
		prof.Subject = *req.Subject
	}
	if req.Personality != nil {
		prof.Personality = *req.Personality
	}
	if req.Model != nil {
		prof.Model = *req.Model
	}
	if req.AvatarGlyph != nil {
		prof.AvatarGlyph = *req.AvatarGlyph
	}
	if req.Metadata != nil {
		prof.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := h.db.Save(&prof).Error; err != nil {
		return response.InternalServerError(c, "Failed to update professor")
	}

	return response.Success(c, prof)
}

// Delete soft-deletes a professor. Existing forum messages keep their
// professor reference.
func (h *ProfessorHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid professor ID")
	}

	result := h.db.Delete(&model.AIProfessor{}, id)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete professor")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Professor not found")
	}

	return response.NoContent(c)
}
