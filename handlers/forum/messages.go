package forum

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/sabyskool/api/model"
	"github.com/sabyskool/api/services"
	"github.com/sabyskool/api/utils/middleware"
	"github.com/sabyskool/api/utils/response"
)

// ForumHandler handles aula forum and cafeteria messages
type ForumHandler struct {
	db    *gorm.DB
	tutor *services.TutorService
	feed  *services.MessageFeed
}

func NewForumHandler(db *gorm.DB, tutor *services.TutorService, feed *services.MessageFeed) *ForumHandler {
	return &ForumHandler{db: db, tutor: tutor, feed: feed}
}

// SendMessageRequest represents a message posting request
type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
	Kind    string `json:"kind,omitempty"` // "forum" (default) or "cafeteria"
}

// SendMessage posts a message to an aula. Forum messages trigger the AI
// professor; the response only ever carries the student's own message, the
// professor's answer arrives through the feed or the next list call.
func (h *ForumHandler) SendMessage(c *fiber.Ctx) error {
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

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Content == "" {
		return response.BadRequest(c, "Message content is required")
	}

	kind := model.MessageKindForum
	if req.Kind != "" {
		kind = model.MessageKind(req.Kind)
		if kind != model.MessageKindForum && kind != model.MessageKindCafeteria {
			return response.BadRequest(c, "Invalid message kind")
		}
	}

	msg, err := h.tutor.SendMessage(c.Context(), uint(aulaID), user.ID, kind, req.Content)
	if err != nil {
		return response.InternalServerError(c, "Failed to post message")
	}

	return response.Created(c, msg)
}

// ListMessages returns an aula's messages in insertion order, optionally
// filtered by kind
func (h *ForumHandler) ListMessages(c *fiber.Ctx) error {
	aulaID, err := c.ParamsInt("id")
	if err != nil || aulaID <= 0 {
		return response.BadRequest(c, "Invalid aula ID")
	}

	var aula model.Aula
	if err := h.db.First(&aula, aulaID).Error; err != nil {
		return response.NotFound(c, "Aula not found")
	}

	var kind model.MessageKind
	if k := c.Query("kind"); k != "" {
		kind = model.MessageKind(k)
		if kind != model.MessageKindForum && kind != model.MessageKindCafeteria {
			return response.BadRequest(c, "Invalid message kind")
		}
	}

	messages, err := h.tutor.ListMessages(c.Context(), uint(aulaID), kind)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch messages")
	}

	return response.Success(c, messages)
}
