package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultProfessorModel is used when a professor has no model configured.
// It is the cheapest chat-completion tier of the default provider.
const DefaultProfessorModel = "gpt-4o-mini"

// AIProfessor is a creator-configured AI persona that answers student
// questions in aula forums
type AIProfessor struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	CommunityID uint           `gorm:"not null;index" json:"community_id"`
	Name        string         `gorm:"not null" json:"name"`
	Subject     string         `gorm:"type:varchar(255)" json:"subject"`
	Personality string         `gorm:"type:text" json:"personality"` // free-text persona instructions
	Model       string         `gorm:"type:varchar(100)" json:"model"`
	AvatarGlyph string         `gorm:"type:varchar(16)" json:"avatar_glyph"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb;default:'{}'" json:"metadata,omitempty"`

	// Relationships
	Community   Community             `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE" json:"-"`
	Assignments []ProfessorAssignment `gorm:"foreignKey:ProfessorID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for AIProfessor
func (AIProfessor) TableName() string {
	return "ai_professors"
}

// ModelOrDefault returns the configured model identifier, falling back to
// the default tier when none is set
func (p *AIProfessor) ModelOrDefault() string {
	if p.Model == "" {
		return DefaultProfessorModel
	}
	return p.Model
}

// ProfessorAssignment binds a professor to an aula. An aula has at most one
// assignment; updates replace the row wholesale rather than patching it.
type ProfessorAssignment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	AulaID      uint      `gorm:"not null;uniqueIndex" json:"aula_id"`
	ProfessorID uint      `gorm:"not null;index" json:"professor_id"`

	// Relationships
	Aula      Aula        `gorm:"foreignKey:AulaID;constraint:OnDelete:CASCADE" json:"-"`
	Professor AIProfessor `gorm:"foreignKey:ProfessorID;constraint:OnDelete:CASCADE" json:"professor,omitempty"`
}

// TableName specifies the table name for ProfessorAssignment
func (ProfessorAssignment) TableName() string {
	return "professor_assignments"
}
