package aula

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sabyskool/api/services"
	"github.com/sabyskool/api/services/openai"
	"github.com/sabyskool/api/utils/response"
)

// GenerateContentRequest carries the transcript to synthesize aula content
// from
type GenerateContentRequest struct {
	Transcript string `json:"transcript" validate:"required"`
}

// GenerateContent synthesizes a summary, study schema and exam questions
// from a transcript. The result is returned to the caller for review; it is
// persisted only when the creator saves the aula.
func (h *AulaHandler) GenerateContent(c *fiber.Ctx) error {
	var req GenerateContentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Transcript == "" {
		return response.BadRequest(c, "Transcript is required")
	}

	content, err := h.content.GenerateAulaContent(c.Context(), req.Transcript)
	if err != nil {
		if errors.Is(err, services.ErrAPIKeyNotConfigured) {
			return response.ServiceUnavailable(c, "Content generation is not configured")
		}
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return response.Error(c, fiber.StatusBadGateway, apiErr.Message, "PROVIDER_ERROR")
		}
		var malformed *services.MalformedResponseError
		if errors.As(err, &malformed) {
			return response.Error(c, fiber.StatusBadGateway, "Content generation returned an invalid result", "MALFORMED_RESPONSE")
		}
		return response.InternalServerError(c, "Failed to generate content")
	}

	return response.Success(c, content)
}
