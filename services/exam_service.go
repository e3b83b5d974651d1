package services

import (
	"context"
	"fmt"

	"github.com/sabyskool/api/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExamService stores student self-assessments. The score comes from the
// student, not from the quiz answer key — "autoevaluación" is deliberately
// self-reported and this service does not grade.
type ExamService struct {
	db *gorm.DB
}

// NewExamService creates a new exam service
func NewExamService(db *gorm.DB) *ExamService {
	return &ExamService{db: db}
}

// SubmitExam upserts the student's submission for an aula: one row per
// student per aula, resubmission replaces score and answers.
func (s *ExamService) SubmitExam(ctx context.Context, aulaID, studentID uint, score int, answers map[string]interface{}) (*model.ExamSubmission, error) {
	if score < 0 || score > 10 {
		return nil, fmt.Errorf("score must be between 0 and 10")
	}

	submission := model.ExamSubmission{
		AulaID:    aulaID,
		StudentID: studentID,
		Score:     score,
		Answers:   datatypes.JSONMap(answers),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "aula_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "answers", "updated_at"}),
	}).Create(&submission).Error
	if err != nil {
		return nil, fmt.Errorf("failed to submit exam: %w", err)
	}

	// Re-read so an update path returns the persisted row, not the insert
	// attempt's zero id
	var saved model.ExamSubmission
	err = s.db.WithContext(ctx).
		Where("aula_id = ? AND student_id = ?", aulaID, studentID).
		First(&saved).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load submission: %w", err)
	}

	return &saved, nil
}

// GetSubmission returns a student's submission for an aula, if any
func (s *ExamService) GetSubmission(ctx context.Context, aulaID, studentID uint) (*model.ExamSubmission, error) {
	var submission model.ExamSubmission
	err := s.db.WithContext(ctx).
		Where("aula_id = ? AND student_id = ?", aulaID, studentID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}
