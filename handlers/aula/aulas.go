package aula

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sabyskool/api/model"
	"github.com/sabyskool/api/services"
	"github.com/sabyskool/api/utils/response"
	"github.com/sabyskool/api/utils/validation"
)

// AulaHandler handles aula CRUD and professor assignment
type AulaHandler struct {
	service   *services.AulaService
	content   *services.ContentService
	db        *gorm.DB
	validator *validation.Validator
}

func NewAulaHandler(db *gorm.DB, service *services.AulaService, content *services.ContentService) *AulaHandler {
	return &AulaHandler{
		service:   service,
		content:   content,
		db:        db,
		validator: validation.NewValidator(),
	}
}

// CreateAulaRequest represents an aula creation request
type CreateAulaRequest struct {
	CommunityID   uint     `json:"community_id" validate:"required"`
	Name          string   `json:"name" validate:"required,min=2,max=255"`
	Description   string   `json:"description"`
	VideoURL      string   `json:"video_url"`
	Schema        string   `json:"schema"`
	ExamQuestions []string `json:"exam_questions"`
	IsActive      bool     `json:"is_active"`
}

// UpdateAulaRequest represents an aula update request
type UpdateAulaRequest struct {
	Name          string   `json:"name" validate:"required,min=2,max=255"`
	Description   string   `json:"description"`
	VideoURL      string   `json:"video_url"`
	Schema        string   `json:"schema"`
	ExamQuestions []string `json:"exam_questions"`
	IsActive      bool     `json:"is_active"`
}

// Create handles aula creation
func (h *AulaHandler) Create(c *fiber.Ctx) error {
	var req CreateAulaRequest
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

	aula := model.Aula{
		CommunityID:   req.CommunityID,
		Name:          req.Name,
		Description:   req.Description,
		VideoURL:      req.VideoURL,
		Schema:        req.Schema,
		ExamQuestions: model.StringList(req.ExamQuestions),
		IsActive:      req.IsActive,
	}
	if err := h.service.CreateAula(c.Context(), &aula); err != nil {
		return response.InternalServerError(c, "Failed to create aula")
	}

	return response.Created(c, aula)
}

// List returns all aulas of a community
func (h *AulaHandler) List(c *fiber.Ctx) error {
	communityID := c.QueryInt("community_id")
	if communityID <= 0 {
		return response.BadRequest(c, "community_id query parameter is required")
	}

	aulas, err := h.service.ListAulas(c.Context(), uint(communityID))
	if err != nil {
		return response.InternalServerError(c, "Failed to list aulas")
	}

	return response.Success(c, aulas)
}

// Get returns a single aula, including its professor assignment
func (h *AulaHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid aula ID")
	}

	aula, err := h.service.GetAula(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Aula not found")
	}

	return response.Success(c, aula)
}

// Update handles aula updates
func (h *AulaHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid aula ID")
	}

	var req UpdateAulaRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	aula, err := h.service.UpdateAula(c.Context(), uint(id), services.AulaUpdate{
		Name:          req.Name,
		Description:   req.Description,
		VideoURL:      req.VideoURL,
		Schema:        req.Schema,
		ExamQuestions: model.StringList(req.ExamQuestions),
		IsActive:      req.IsActive,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Aula not found")
		}
		return response.InternalServerError(c, "Failed to update aula")
	}

	return response.Success(c, aula)
}

// Delete soft-deletes an aula
func (h *AulaHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid aula ID")
	}

	if _, err := h.service.GetAula(c.Context(), uint(id)); err != nil {
		return response.NotFound(c, "Aula not found")
	}

	if err := h.service.DeleteAula(c.Context(), uint(id)); err != nil {
		return response.InternalServerError(c, "Failed to delete aula")
	}

	return response.NoContent(c)
}

// AssignProfessorRequest represents a professor assignment request. A nil
// professor_id clears the assignment.
type AssignProfessorRequest struct {
	ProfessorID *uint `json:"professor_id"`
}

// AssignProfessor replaces the aula's professor assignment. The previous
// assignment, if any, is removed rather than patched.
func (h *AulaHandler) AssignProfessor(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid aula ID")
	}

	var req AssignProfessorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	aula, err := h.service.GetAula(c.Context(), uint(id))
	if err != nil {
		return response.NotFound(c, "Aula not found")
	}

	if req.ProfessorID != nil {
		var prof model.AIProfessor
		if err := h.db.First(&prof, *req.ProfessorID).Error; err != nil {
			return response.NotFound(c, "Professor not found")
		}
		if prof.CommunityID != aula.CommunityID {
			return response.BadRequest(c, "Professor belongs to a different community")
		}
	}

	if err := h.service.AssignProfessor(c.Context(), uint(id), req.ProfessorID); err != nil {
		return response.InternalServerError(c, "Failed to assign professor")
	}

	updated, err := h.service.GetAula(c.Context(), uint(id))
	if err != nil {
		return response.InternalServerError(c, "Failed to reload aula")
	}

	return response.Success(c, updated)
}
