package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/sabyskool/api/model"
	"github.com/sabyskool/api/services/openai"
)

const (
	// LessonQuizSize is the number of multiple-choice questions requested
	// for a video lesson quiz
	LessonQuizSize = 10
	// AulaQuestionCount is the number of assessment questions requested for
	// a manually authored aula
	AulaQuestionCount = 5
	// QuizOptionCount is the number of options per quiz question
	QuizOptionCount = 4

	synthesisTimeout = 120 * time.Second
)

// GeneratedLesson is the synthesizer output for the video-lesson pipeline
type GeneratedLesson struct {
	Summary string              `json:"summary"`
	Outline []model.OutlineItem `json:"outline"`
	Quiz    model.QuizQuestions `json:"quiz"`
}

// GeneratedAulaContent is the synthesizer output for the manual-aula helper:
// a short summary, a free-text schema and a fixed set of assessment questions
type GeneratedAulaContent struct {
	Summary   string   `json:"summary"`
	Schema    string   `json:"schema"`
	Questions []string `json:"questions"`
}

// ContentService turns transcript text into structured course content. The
// two output shapes are produced by different providers (the video-lesson
// pipeline uses DeepSeek, the manual-aula helper uses OpenAI) but share one
// prompt/complete/parse path.
type ContentService struct {
	lessonClient *openai.Client
	aulaClient   *openai.Client
}

// NewContentService creates a content service from the configured provider
// keys. A missing key leaves the corresponding flow disabled; invoking it is
// a configuration error, not a silent no-op.
func NewContentService(deepseekKey, openaiKey string) *ContentService {
	s := &ContentService{}

	if deepseekKey != "" {
		s.lessonClient = openai.NewClient(openai.Config{
			APIKey:  deepseekKey,
			BaseURL: openai.DeepSeekBaseURL,
			Model:   "deepseek-chat",
			Timeout: synthesisTimeout,
		})
	} else {
		log.Println("Warning: DEEPSEEK_API_KEY not set. Lesson content generation will be unavailable.")
	}

	if openaiKey != "" {
		s.aulaClient = openai.NewClient(openai.Config{
			APIKey:  openaiKey,
			BaseURL: openai.OpenAIBaseURL,
			Model:   "gpt-4o-mini",
			Timeout: synthesisTimeout,
		})
	} else {
		log.Println("Warning: OPENAI_API_KEY not set. Aula content generation will be unavailable.")
	}

	return s
}

// NewContentServiceWithClients wires explicit provider clients, used by tests
func NewContentServiceWithClients(lessonClient, aulaClient *openai.Client) *ContentService {
	return &ContentService{
		lessonClient: lessonClient,
		aulaClient:   aulaClient,
	}
}

const lessonSystemPrompt = "You are a specialized AI educational assistant for premium communities."

const aulaSystemPrompt = "You are a specialized educational assistant for Saby University."

// GenerateLessonContent asks the model for a summary, a timestamped outline
// and a quiz for the given transcript
func (s *ContentService) GenerateLessonContent(ctx context.Context, transcript string) (*GeneratedLesson, error) {
	if s.lessonClient == nil {
		return nil, ErrAPIKeyNotConfigured
	}

	prompt := fmt.Sprintf(`Analyze the following transcript from a video masterclass and generate:
1. A detailed summary.
2. A structured outline with key concepts.
3. A quiz with %d challenging multiple-choice questions (0-10 score).

Return ONLY a JSON object with this structure:
{
  "summary": "...",
  "outline": [{"time": "...", "concept": "...", "detail": "..."}],
  "quiz": [{"question": "...", "options": ["...", "...", "...", "..."], "correct_answer": 0}]
}

Transcript:
%s`, LessonQuizSize, transcript)

	var result GeneratedLesson
	if err := s.completeJSON(ctx, s.lessonClient, lessonSystemPrompt, prompt, &result); err != nil {
		return nil, err
	}

	if err := validateGeneratedLesson(&result); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	return &result, nil
}

// GenerateAulaContent asks the model for the short summary / schema /
// assessment questions bundle used by the manual aula editor
func (s *ContentService) GenerateAulaContent(ctx context.Context, transcript string) (*GeneratedAulaContent, error) {
	if s.aulaClient == nil {
		return nil, ErrAPIKeyNotConfigured
	}

	prompt := fmt.Sprintf(`Analyze the following transcript from a video lesson and generate:
1. A detailed summary (max 500 characters).
2. A structured outline/schema with key concepts.
3. A list of %d assessment questions for a level test.

Return ONLY a JSON object with this structure:
{
  "summary": "...",
  "schema": "...",
  "questions": ["...", "...", "...", "...", "..."]
}

Transcript:
%s`, AulaQuestionCount, transcript)

	var result GeneratedAulaContent
	if err := s.completeJSON(ctx, s.aulaClient, aulaSystemPrompt, prompt, &result); err != nil {
		return nil, err
	}

	if err := validateGeneratedAulaContent(&result); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	return &result, nil
}

// completeJSON runs one system+user exchange in JSON output mode and decodes
// the returned content into out
func (s *ContentService) completeJSON(ctx context.Context, client *openai.Client, systemPrompt, userPrompt string, out interface{}) error {
	content, err := client.SimpleCompletion(ctx, systemPrompt, userPrompt, openai.WithJSONResponse())
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(content), out); err != nil {
		return &MalformedResponseError{Raw: content, Err: err}
	}

	return nil
}

func validateGeneratedLesson(g *GeneratedLesson) error {
	if g.Summary == "" {
		return fmt.Errorf("summary is empty")
	}
	for i, item := range g.Outline {
		if item.Concept == "" {
			return fmt.Errorf("outline item %d has no concept", i)
		}
	}
	if len(g.Quiz) != LessonQuizSize {
		return fmt.Errorf("expected %d quiz questions, got %d", LessonQuizSize, len(g.Quiz))
	}
	for i, q := range g.Quiz {
		if q.Question == "" {
			return fmt.Errorf("quiz question %d is empty", i)
		}
		if len(q.Options) != QuizOptionCount {
			return fmt.Errorf("quiz question %d has %d options, expected %d", i, len(q.Options), QuizOptionCount)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= QuizOptionCount {
			return fmt.Errorf("quiz question %d has correct_answer %d out of range", i, q.CorrectAnswer)
		}
	}
	return nil
}

func validateGeneratedAulaContent(g *GeneratedAulaContent) error {
	if g.Summary == "" {
		return fmt.Errorf("summary is empty")
	}
	if g.Schema == "" {
		return fmt.Errorf("schema is empty")
	}
	if len(g.Questions) != AulaQuestionCount {
		return fmt.Errorf("expected %d questions, got %d", AulaQuestionCount, len(g.Questions))
	}
	for i, q := range g.Questions {
		if q == "" {
			return fmt.Errorf("question %d is empty", i)
		}
	}
	return nil
}
