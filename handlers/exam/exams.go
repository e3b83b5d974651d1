package exam

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sabyskool/api/model"
	"github.com/sabyskool/api/services"
	"github.com/sabyskool/api/utils/middleware"
	"github.com/sabyskool/api/utils/response"
)

// ExamHandler handles self-reported exam score submissions
type ExamHandler struct {
	db      *gorm.DB
	service *services.ExamService
}

func NewExamHandler(db *gorm.DB, service *services.ExamService) *ExamHandler {
	return &ExamHandler{db: db, service: service}
}

// SubmitExamRequest represents an exam submission. Scores are self-reported
// on a 0-10 scale; answers are kept for the creator's review only.
type SubmitExamRequest struct {
	Score   int                    `json:"score"`
	Answers map[string]interface{} `json:"answers,omitempty"`
}

// Submit records or replaces the student's exam result for an aula. One row
// per student per aula; resubmitting overwrites.
func (h *ExamHandler) Submit(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	aulaID, err := c.ParamsInt("id")
	if err != nil || aulaID <= 0 {
		return response.BadRequest(c, "Invalid aula ID")
	}

	var aula model.Aula
	if err := h.db.First(&aula, aulaID).Error; err != nil {
		return response.NotFound(c, "Aula not found")
	}

	var req SubmitExamRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	submission, err := h.service.SubmitExam(c.Context(), uint(aulaID), user.ID, req.Score, req.Answers)
	if err != nil {
		if strings.Contains(err.Error(), "score") {
			return response.BadRequest(c, "Score must be between 0 and 10")
		}
		return response.InternalServerError(c, "Failed to submit exam")
	}

	return response.Success(c, submission)
}

// Get returns the authenticated student's submission for an aula
func (h *ExamHandler) Get(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	aulaID, err := c.ParamsInt("id")
	if err != nil || aulaID <= 0 {
		return response.BadRequest(c, "Invalid aula ID")
	}

	submission, err := h.service.GetSubmission(c.Context(), uint(aulaID), user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "No submission found")
		}
		return response.InternalServerError(c, "Failed to fetch submission")
	}

	return response.Success(c, submission)
}
