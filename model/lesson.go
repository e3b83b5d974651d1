package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// CourseModule groups lessons inside a community's classroom area
type CourseModule struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	CommunityID uint           `gorm:"not null;index" json:"community_id"`
	Title       string         `gorm:"not null" json:"title"`
	Position    int            `gorm:"default:0" json:"position"`

	// Relationships
	Community Community `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE" json:"-"`
	Lessons   []Lesson  `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"lessons,omitempty"`
}

// TableName specifies the table name for CourseModule
func (CourseModule) TableName() string {
	return "course_modules"
}

// OutlineItem is one timestamped entry of a lesson outline
type OutlineItem struct {
	Time    string `json:"time"`
	Concept string `json:"concept"`
	Detail  string `json:"detail"`
}

// LessonContent is the synthesized bundle stored with a lesson. It is not
// versioned: re-processing the same lesson overwrites it.
type LessonContent struct {
	Summary       string        `json:"summary"`
	Outline       []OutlineItem `json:"outline"`
	Transcription string        `json:"transcription"`
}

// Scan implements the sql.Scanner interface for reading from database
func (c *LessonContent) Scan(value interface{}) error {
	if value == nil {
		*c = LessonContent{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal LessonContent value")
	}

	if len(bytes) == 0 {
		*c = LessonContent{}
		return nil
	}

	return json.Unmarshal(bytes, c)
}

// Value implements the driver.Valuer interface for writing to database
func (c LessonContent) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Lesson is a processed video lesson belonging to a course module
type Lesson struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	ModuleID   uint           `gorm:"not null;index" json:"module_id"`
	Title      string         `gorm:"not null" json:"title"`
	VideoURL   string         `gorm:"type:text" json:"video_url"`
	StorageKey string         `gorm:"type:varchar(255)" json:"-"` // object key in the media bucket
	Content    LessonContent  `gorm:"type:jsonb" json:"content"`

	// Relationships
	Module  CourseModule `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"-"`
	Quizzes []Quiz       `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"quizzes,omitempty"`
}

// TableName specifies the table name for Lesson
func (Lesson) TableName() string {
	return "lessons"
}

// QuizQuestion is one multiple-choice question with exactly four options.
// CorrectAnswer indexes into Options.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// QuizQuestions is a custom type for storing quiz questions as JSONB
type QuizQuestions []QuizQuestion

// Scan implements the sql.Scanner interface for reading from database
func (q *QuizQuestions) Scan(value interface{}) error {
	if value == nil {
		*q = QuizQuestions{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal QuizQuestions value")
	}

	return json.Unmarshal(bytes, q)
}

// Value implements the driver.Valuer interface for writing to database
func (q QuizQuestions) Value() (driver.Value, error) {
	if len(q) == 0 {
		return []byte("[]"), nil // Return empty JSON array instead of nil
	}
	return json.Marshal(q)
}

// Quiz holds the generated questions for one lesson. Storage allows several
// quizzes per lesson but the pipeline currently writes exactly one.
type Quiz struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	LessonID  uint          `gorm:"not null;index" json:"lesson_id"`
	Questions QuizQuestions `gorm:"type:jsonb" json:"questions"`

	// Relationships
	Lesson Lesson `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Quiz
func (Quiz) TableName() string {
	return "quizzes"
}
