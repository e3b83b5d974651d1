package model

import (
	"time"

	"gorm.io/gorm"
)

// GlobalRole is the platform-wide role a user picks during onboarding.
// It is resolved once at login, embedded in the JWT claims and passed
// down explicitly; handlers never re-query it.
type GlobalRole string

const (
	RoleCreator     GlobalRole = "creator"
	RoleParticipant GlobalRole = "participant"
)

// Valid reports whether the role is one of the closed set
func (r GlobalRole) Valid() bool {
	return r == RoleCreator || r == RoleParticipant
}

// User represents a registered user in the system
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // Never expose password in JSON
	Name         string         `gorm:"not null" json:"name"`
	GlobalRole   GlobalRole     `gorm:"type:varchar(20);default:'participant'" json:"global_role"`
	TokenVersion int            `gorm:"default:0" json:"-"` // Increment to invalidate all user tokens

	// Relationships
	Memberships     []Membership     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"memberships,omitempty"`
	ForumMessages   []ForumMessage   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	ExamSubmissions []ExamSubmission `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	TokenBlacklist  []JWTTokenBlacklist `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
