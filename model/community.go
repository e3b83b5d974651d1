package model

import (
	"time"

	"gorm.io/gorm"
)

// Community represents a creator-owned learning community
type Community struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`

	// Relationships
	Owner      User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members    []Membership  `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Aulas      []Aula        `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE" json:"aulas,omitempty"`
	Professors []AIProfessor `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE" json:"professors,omitempty"`
	Modules    []CourseModule `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE" json:"modules,omitempty"`
}

// TableName specifies the table name for Community
func (Community) TableName() string {
	return "communities"
}

// MembershipRole is the role of a user inside one community
type MembershipRole string

const (
	MembershipRoleOwner  MembershipRole = "owner"
	MembershipRoleMember MembershipRole = "member"
)

// Membership links a user to a community
type Membership struct {
	UserID      uint           `gorm:"primaryKey" json:"user_id"`
	CommunityID uint           `gorm:"primaryKey" json:"community_id"`
	Role        MembershipRole `gorm:"type:varchar(20);default:'member'" json:"role"`
	JoinedAt    time.Time      `gorm:"autoCreateTime" json:"joined_at"`

	// Relationships
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Community Community `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for Membership
func (Membership) TableName() string {
	return "memberships"
}
