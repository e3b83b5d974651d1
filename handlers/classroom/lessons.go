package classroom

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/sabyskool/api/model"
	"github.com/sabyskool/api/services"
	"github.com/sabyskool/api/services/openai"
	"github.com/sabyskool/api/utils/response"
)

// ProcessLesson accepts a multipart video upload and runs the full lesson
// pipeline: store the media, transcribe it, synthesize summary, outline and
// quiz, and persist the result. The request blocks until the lesson is ready.
func (h *ClassroomHandler) ProcessLesson(c *fiber.Ctx) error {
	if h.pipeline == nil {
		return response.ServiceUnavailable(c, "Lesson processing is not configured")
	}

	moduleID, err := strconv.Atoi(c.FormValue("module_id"))
	if err != nil || moduleID <= 0 {
		return response.BadRequest(c, "module_id form field is required")
	}

	var module model.CourseModule
	if err := h.db.First(&module, moduleID).Error; err != nil {
		return response.NotFound(c, "Module not found")
	}

	title := c.FormValue("title")
	if title == "" {
		return response.BadRequest(c, "Title is required")
	}

	fileHeader, err := c.FormFile("video")
	if err != nil {
		return response.BadRequest(c, "Video file is required")
	}
	if fileHeader.Size > openai.MaxAudioBytes {
		return response.Error(c, fiber.StatusRequestEntityTooLarge, "Video exceeds the 25 MiB limit", "FILE_TOO_LARGE")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	video, err := io.ReadAll(file)
	if err != nil {
		return response.InternalServerError(c, "Failed to read uploaded file")
	}

	lesson, err := h.pipeline.ProcessLessonVideo(c.Context(), uint(moduleID), title, fileHeader.Filename, video)
	if err != nil {
		return h.pipelineErrorResponse(c, err)
	}

	return response.Created(c, lesson)
}

// pipelineErrorResponse maps pipeline failures onto HTTP responses. Provider
// messages are surfaced verbatim so creators can see what the upstream said.
func (h *ClassroomHandler) pipelineErrorResponse(c *fiber.Ctx, err error) error {
	if errors.Is(err, openai.ErrAudioTooLarge) {
		return response.Error(c, fiber.StatusRequestEntityTooLarge, "Video exceeds the 25 MiB limit", "FILE_TOO_LARGE")
	}
	if errors.Is(err, services.ErrAPIKeyNotConfigured) {
		return response.ServiceUnavailable(c, "Lesson processing is not configured")
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return response.Error(c, fiber.StatusBadGateway, apiErr.Message, "PROVIDER_ERROR")
	}

	var pipeErr *services.PipelineError
	if errors.As(err, &pipeErr) {
		return response.Error(c, fiber.StatusBadGateway, pipeErr.Error(), "PIPELINE_ERROR")
	}

	return response.InternalServerError(c, "Failed to process lesson")
}

// GetLesson returns a single lesson with its synthesized content
func (h *ClassroomHandler) GetLesson(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid lesson ID")
	}

	var lesson model.Lesson
	if err := h.db.First(&lesson, id).Error; err != nil {
		return response.NotFound(c, "Lesson not found")
	}

	return response.Success(c, lesson)
}

// GetLessonQuiz returns the quizzes generated for a lesson
func (h *ClassroomHandler) GetLessonQuiz(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid lesson ID")
	}

	var lesson model.Lesson
	if err := h.db.First(&lesson, id).Error; err != nil {
		return response.NotFound(c, "Lesson not found")
	}

	var quizzes []model.Quiz
	if err := h.db.Where("lesson_id = ?", id).Find(&quizzes).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch quiz")
	}

	return response.Success(c, quizzes)
}
