package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// MessageKind separates aula forum threads from the community-wide cafeteria chat
type MessageKind string

const (
	MessageKindForum     MessageKind = "forum"
	MessageKindCafeteria MessageKind = "cafeteria"
)

// ErrMessageAuthorship is returned when a message does not have exactly one
// of AuthorID / ProfessorID set
var ErrMessageAuthorship = errors.New("message must have exactly one of author_id or professor_id")

// ForumMessage is one entry in an aula's append-only message log. A message
// is written either by a human (AuthorID) or by an AI professor
// (ProfessorID) — exactly one of the two, never both, never neither.
// Messages are never edited or deleted.
type ForumMessage struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time   `json:"created_at"`
	AulaID      uint        `gorm:"not null;index" json:"aula_id"`
	Kind        MessageKind `gorm:"type:varchar(20);not null;default:'forum';index" json:"kind"`
	AuthorID    *uint       `gorm:"index" json:"author_id,omitempty"`
	ProfessorID *uint       `gorm:"index" json:"professor_id,omitempty"`
	Content     string      `gorm:"type:text;not null" json:"content"`

	// Relationships
	Aula      Aula         `gorm:"foreignKey:AulaID;constraint:OnDelete:CASCADE" json:"-"`
	Author    *User        `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Professor *AIProfessor `gorm:"foreignKey:ProfessorID" json:"professor,omitempty"`
}

// TableName specifies the table name for ForumMessage
func (ForumMessage) TableName() string {
	return "forum_messages"
}

// IsAI reports whether the message was written by an AI professor
func (m *ForumMessage) IsAI() bool {
	return m.ProfessorID != nil
}

// BeforeCreate enforces the authorship invariant before any insert
func (m *ForumMessage) BeforeCreate(tx *gorm.DB) error {
	if (m.AuthorID == nil) == (m.ProfessorID == nil) {
		return ErrMessageAuthorship
	}
	return nil
}
