package classroom

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sabyskool/api/model"
	"github.com/sabyskool/api/services"
	"github.com/sabyskool/api/utils/response"
	"github.com/sabyskool/api/utils/validation"
)

// ClassroomHandler handles course modules and the video-lesson pipeline
type ClassroomHandler struct {
	db        *gorm.DB
	pipeline  *services.LessonPipelineService
	validator *validation.Validator
}

func NewClassroomHandler(db *gorm.DB, pipeline *services.LessonPipelineService) *ClassroomHandler {
	return &ClassroomHandler{
		db:        db,
		pipeline:  pipeline,
		validator: validation.NewValidator(),
	}
}

// CreateModuleRequest represents a module creation request
type CreateModuleRequest struct {
	CommunityID uint   `json:"community_id" validate:"required"`
	Title       string `json:"title" validate:"required,min=2,max=255"`
	Position    int    `json:"position"`
}

// UpdateModuleRequest represents a module update request
type UpdateModuleRequest struct {
	Title    string `json:"title" validate:"required,min=2,max=255"`
	Position int    `json:"position"`
}

// CreateModule handles course module creation
func (h *ClassroomHandler) CreateModule(c *fiber.Ctx) error {
	var req CreateModuleRequest
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

	module := model.CourseModule{
		CommunityID: req.CommunityID,
		Title:       req.Title,
		Position:    req.Position,
	}
	if err := h.db.Create(&module).Error; err != nil {
		return response.InternalServerError(c, "Failed to create module")
	}

	return response.Created(c, module)
}

// ListModules returns a community's modules ordered by position
func (h *ClassroomHandler) ListModules(c *fiber.Ctx) error {
	communityID := c.QueryInt("community_id")
	if communityID <= 0 {
		return response.BadRequest(c, "community_id query parameter is required")
	}

	var modules []model.CourseModule
	if err := h.db.Where("community_id = ?", communityID).
		Order("position ASC, id ASC").
		Preload("Lessons").
		Find(&modules).Error; err != nil {
		return response.InternalServerError(c, "Failed to list modules")
	}

	return response.Success(c, modules)
}

// UpdateModule handles module updates
func (h *ClassroomHandler) UpdateModule(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid module ID")
	}

	var module model.CourseModule
	if err := h.db.First(&module, id).Error; err != nil {
		return response.NotFound(c, "Module not found")
	}

	var req UpdateModuleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	module.Title = req.Title
	module.Position = req.Position
	if err := h.db.Save(&module).Error; err != nil {
		return response.InternalServerError(c, "Failed to update module")
	}

	return response.Success(c, module)
}

// DeleteModule soft-deletes a module
func (h *ClassroomHandler) DeleteModule(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid module ID")
	}

	result := h.db.Delete(&model.CourseModule{}, id)
	if result.Error != nil {
		return response.InternalServerError(c, "Failed to delete module")
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Module not found")
	}

	return response.NoContent(c)
}
