package model

import (
	"time"

	"gorm.io/datatypes"
)

// ExamSubmission is a student's self-assessment for one aula. The score is
// reported by the student (0-10), not computed from the quiz answer key.
// One row per student per aula; resubmitting replaces the previous one.
type ExamSubmission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	AulaID    uint      `gorm:"not null;uniqueIndex:idx_exam_aula_student" json:"aula_id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_exam_aula_student" json:"student_id"`
	Score     int       `gorm:"not null" json:"score"`
	Answers   datatypes.JSONMap `gorm:"type:jsonb;default:'{}'" json:"answers"` // question index -> free-text answer

	// Relationships
	Aula    Aula `gorm:"foreignKey:AulaID;constraint:OnDelete:CASCADE" json:"-"`
	Student User `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
}

// TableName specifies the table name for ExamSubmission
func (ExamSubmission) TableName() string {
	return "exam_submissions"
}
