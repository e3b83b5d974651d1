package services

import (
	"context"
	"fmt"
	"log"
	"path"

	"github.com/google/uuid"
	"github.com/sabyskool/api/model"
	"gorm.io/gorm"
)

// MediaUploader is the slice of the object store the pipeline needs
type MediaUploader interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// Transcriber converts media bytes into transcript text
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)
}

// LessonSynthesizer turns a transcript into a structured lesson bundle
type LessonSynthesizer interface {
	GenerateLessonContent(ctx context.Context, transcript string) (*GeneratedLesson, error)
}

// LessonPipelineService runs the upload → transcribe → synthesize → persist
// flow for one lesson video. Stages run strictly in sequence; nothing is
// pipelined. Concurrent runs for the same module may interleave freely.
type LessonPipelineService struct {
	db          *gorm.DB
	media       MediaUploader
	transcriber Transcriber
	synthesizer LessonSynthesizer
}

// NewLessonPipelineService creates a lesson pipeline service
func NewLessonPipelineService(db *gorm.DB, media MediaUploader, transcriber Transcriber, synthesizer LessonSynthesizer) *LessonPipelineService {
	return &LessonPipelineService{
		db:          db,
		media:       media,
		transcriber: transcriber,
		synthesizer: synthesizer,
	}
}

// ProcessLessonVideo uploads the video, derives lesson content from it and
// persists the lesson with its quiz. Any stage failure after a successful
// upload comes back as a PipelineError; the uploaded blob is removed on a
// best-effort basis so failed runs do not leak objects.
func (s *LessonPipelineService) ProcessLessonVideo(ctx context.Context, moduleID uint, title, filename string, video []byte) (*model.Lesson, error) {
	key := fmt.Sprintf("lessons/%s%s", uuid.New().String(), path.Ext(filename))

	videoURL, err := s.media.UploadBytes(ctx, key, video, "video/mp4")
	if err != nil {
		return nil, fmt.Errorf("failed to upload lesson video: %w", err)
	}

	transcript, err := s.transcriber.Transcribe(ctx, video, filename)
	if err != nil {
		s.cleanupUpload(ctx, key)
		return nil, &PipelineError{Stage: "transcription", Err: err}
	}

	generated, err := s.synthesizer.GenerateLessonContent(ctx, transcript)
	if err != nil {
		s.cleanupUpload(ctx, key)
		return nil, &PipelineError{Stage: "content generation", Err: err}
	}

	lesson := model.Lesson{
		ModuleID:   moduleID,
		Title:      title,
		VideoURL:   videoURL,
		StorageKey: key,
		Content: model.LessonContent{
			Summary:       generated.Summary,
			Outline:       generated.Outline,
			Transcription: transcript,
		},
	}

	// Lesson and quiz land together or not at all
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&lesson).Error; err != nil {
			return fmt.Errorf("failed to save lesson: %w", err)
		}

		quiz := model.Quiz{
			LessonID:  lesson.ID,
			Questions: generated.Quiz,
		}
		if err := tx.Create(&quiz).Error; err != nil {
			return fmt.Errorf("failed to save quiz: %w", err)
		}

		return nil
	})
	if err != nil {
		s.cleanupUpload(ctx, key)
		return nil, &PipelineError{Stage: "persistence", Err: err}
	}

	return &lesson, nil
}

// cleanupUpload removes the blob a failed run left behind. Failure here is
// logged only; the pipeline error stays the one the caller sees.
func (s *LessonPipelineService) cleanupUpload(ctx context.Context, key string) {
	if err := s.media.Delete(ctx, key); err != nil {
		log.Printf("Warning: failed to clean up uploaded media %s: %v", key, err)
	}
}

// GetLesson fetches one lesson by id
func (s *LessonPipelineService) GetLesson(ctx context.Context, id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := s.db.WithContext(ctx).First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// GetLessonQuiz fetches the quiz rows for a lesson
func (s *LessonPipelineService) GetLessonQuiz(ctx context.Context, lessonID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	if err := s.db.WithContext(ctx).Where("lesson_id = ?", lessonID).Find(&quizzes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch quiz: %w", err)
	}
	return quizzes, nil
}
