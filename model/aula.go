package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// StringList is a custom type for storing an ordered list of strings as JSONB
type StringList []string

// Scan implements the sql.Scanner interface for reading from database
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal StringList value")
	}

	if len(bytes) == 0 {
		*l = StringList{}
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Value implements the driver.Valuer interface for writing to database
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return []byte("[]"), nil // Return empty JSON array instead of nil
	}
	return json.Marshal(l)
}

// Aula is a virtual classroom inside a community. Its Schema field holds the
// free-text grounding context fed to the AI professor; it may be hand-written
// or produced by the content synthesizer, and the two provenances are not
// distinguished once stored.
type Aula struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	CommunityID   uint           `gorm:"not null;index" json:"community_id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	VideoURL      string         `gorm:"type:text" json:"video_url"`
	Schema        string         `gorm:"type:text" json:"schema"`
	ExamQuestions StringList     `gorm:"type:jsonb" json:"exam_questions"`
	IsActive      bool           `gorm:"default:false" json:"is_active"`

	// Relationships
	Community  Community            `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE" json:"-"`
	Assignment *ProfessorAssignment `gorm:"foreignKey:AulaID" json:"assignment,omitempty"`
	Messages   []ForumMessage       `gorm:"foreignKey:AulaID;constraint:OnDelete:CASCADE" json:"-"`
	Exams      []ExamSubmission     `gorm:"foreignKey:AulaID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Aula
func (Aula) TableName() string {
	return "aulas"
}
