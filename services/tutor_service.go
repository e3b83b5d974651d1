package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/sabyskool/api/model"
	"github.com/sabyskool/api/services/openai"
	"gorm.io/gorm"
)

// TutorService posts student messages to an aula's forum and, when the aula
// has an AI professor assigned, generates the professor's reply.
//
// The student's insert is the source of truth for "message sent". The AI
// reply is a best-effort side effect: any failure in that leg (missing key,
// network error, provider error) is logged and swallowed, never surfaced to
// the student, and never rolls back the human message.
type TutorService struct {
	db         *gorm.DB
	chatClient *openai.Client
	feed       *MessageFeed
	enableAI   bool
}

// NewTutorService creates a tutor service. An empty API key disables AI
// replies; messages still post.
func NewTutorService(db *gorm.DB, openaiKey string) *TutorService {
	service := &TutorService{
		db:       db,
		enableAI: false,
	}

	if openaiKey != "" {
		service.chatClient = openai.NewClient(openai.Config{
			APIKey:  openaiKey,
			BaseURL: openai.OpenAIBaseURL,
		})
		service.enableAI = true
	} else {
		log.Println("Warning: OPENAI_API_KEY not set. AI professor replies will be disabled.")
	}

	return service
}

// NewTutorServiceWithClient wires an explicit chat client, used by tests
func NewTutorServiceWithClient(db *gorm.DB, client *openai.Client) *TutorService {
	return &TutorService{
		db:         db,
		chatClient: client,
		enableAI:   client != nil,
	}
}

// SetFeed attaches the realtime message feed
func (s *TutorService) SetFeed(feed *MessageFeed) {
	s.feed = feed
}

// SendMessage posts a message to an aula's log. Forum messages go through
// the AI professor flow; cafeteria messages are plain inserts.
func (s *TutorService) SendMessage(ctx context.Context, aulaID, studentID uint, kind model.MessageKind, content string) (*model.ForumMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("message content is empty")
	}

	// The human message is inserted first and unconditionally, regardless of
	// whether an AI professor exists or its call succeeds.
	authorID := studentID
	userMsg := model.ForumMessage{
		AulaID:   aulaID,
		Kind:     kind,
		AuthorID: &authorID,
		Content:  content,
	}

	if err := s.db.WithContext(ctx).Create(&userMsg).Error; err != nil {
		return nil, fmt.Errorf("failed to post message: %w", err)
	}

	s.feed.PublishMessage(ctx, &userMsg)

	if kind == model.MessageKindForum {
		s.respondAsProfessor(ctx, aulaID, content)
	}

	return &userMsg, nil
}

// respondAsProfessor runs the AI leg of a forum turn. It never returns an
// error: every failure is logged and absorbed here.
func (s *TutorService) respondAsProfessor(ctx context.Context, aulaID uint, studentMessage string) {
	// Point lookup; no assignment means no AI involvement, not an error
	var assignment model.ProfessorAssignment
	err := s.db.WithContext(ctx).Preload("Professor").
		Where("aula_id = ?", aulaID).
		First(&assignment).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("AI professor lookup failed for aula %d: %v", aulaID, err)
		}
		return
	}

	if !s.enableAI {
		log.Printf("AI professor assigned to aula %d but no API key is configured, skipping reply", aulaID)
		return
	}

	var aula model.Aula
	if err := s.db.WithContext(ctx).First(&aula, aulaID).Error; err != nil {
		log.Printf("AI professor aula load failed for aula %d: %v", aulaID, err)
		return
	}

	prof := assignment.Professor
	systemPrompt := buildProfessorPrompt(&prof, &aula)

	reply, err := s.chatClient.SimpleCompletion(ctx, systemPrompt, studentMessage,
		openai.WithModel(prof.ModelOrDefault()))
	if err != nil {
		log.Printf("AI professor reply failed for aula %d: %v", aulaID, err)
		return
	}

	aiMsg := model.ForumMessage{
		AulaID:      aulaID,
		Kind:        model.MessageKindForum,
		ProfessorID: &prof.ID,
		Content:     reply,
	}

	if err := s.db.WithContext(ctx).Create(&aiMsg).Error; err != nil {
		log.Printf("AI professor message insert failed for aula %d: %v", aulaID, err)
		return
	}

	s.feed.PublishMessage(ctx, &aiMsg)
}

// buildProfessorPrompt grounds the professor persona in the aula's stored
// context. The schema text is included verbatim; there is no token-budget
// trimming.
func buildProfessorPrompt(prof *model.AIProfessor, aula *model.Aula) string {
	materia := prof.Subject
	if materia == "" {
		materia = "la materia"
	}
	esquema := aula.Schema
	if esquema == "" {
		esquema = "No hay esquema disponible."
	}

	return fmt.Sprintf(`Eres %s, un experto en %s.
Tu personalidad es: %s.
Estás asistiendo a un alumno en el aula virtual "Saby University".

CONTEXTO DE LA CLASE:
Nombre: %s
Descripción: %s
Esquema/Contenido: %s

INSTRUCCIONES:
- Responde de forma concisa pero útil.
- Usa el contexto de la clase para dar respuestas precisas.
- Si no sabes algo basado en el contexto, usa tu conocimiento general pero mantente fiel a tu personalidad.
- Habla en español de forma académica pero cercana.`,
		prof.Name, materia, prof.Personality,
		aula.Name, aula.Description, esquema)
}

// ListMessages returns an aula's messages in insertion order, optionally
// filtered by kind
func (s *TutorService) ListMessages(ctx context.Context, aulaID uint, kind model.MessageKind) ([]model.ForumMessage, error) {
	query := s.db.WithContext(ctx).
		Preload("Author").Preload("Professor").
		Where("aula_id = ?", aulaID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var messages []model.ForumMessage
	if err := query.Order("created_at ASC, id ASC").Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	return messages, nil
}
