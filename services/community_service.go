package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sabyskool/api/model"
	"gorm.io/gorm"
)

// CommunityService manages communities and memberships
type CommunityService struct {
	db *gorm.DB
}

// NewCommunityService creates a new community service
func NewCommunityService(db *gorm.DB) *CommunityService {
	return &CommunityService{db: db}
}

// CreateCommunity creates a community and enrolls its creator as the first
// member with the owner role
func (s *CommunityService) CreateCommunity(ctx context.Context, ownerID uint, name, slug, description string) (*model.Community, error) {
	community := model.Community{
		OwnerID:     ownerID,
		Name:        name,
		Slug:        slug,
		Description: description,
	}

	if err := s.db.WithContext(ctx).Create(&community).Error; err != nil {
		return nil, fmt.Errorf("failed to create community: %w", err)
	}

	membership := model.Membership{
		UserID:      ownerID,
		CommunityID: community.ID,
		Role:        model.MembershipRoleOwner,
	}
	if err := s.db.WithContext(ctx).Create(&membership).Error; err != nil {
		return nil, fmt.Errorf("failed to create owner membership: %w", err)
	}

	return &community, nil
}

// GetCommunity fetches one community
func (s *CommunityService) GetCommunity(ctx context.Context, id uint) (*model.Community, error) {
	var community model.Community
	if err := s.db.WithContext(ctx).First(&community, id).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

// ListMembers returns a community's memberships with their users
func (s *CommunityService) ListMembers(ctx context.Context, communityID uint) ([]model.Membership, error) {
	var members []model.Membership
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("community_id = ?", communityID).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch members: %w", err)
	}
	return members, nil
}

// Join enrolls a user as a member of a community. Joining twice is a no-op.
func (s *CommunityService) Join(ctx context.Context, userID, communityID uint) error {
	var existing model.Membership
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND community_id = ?", userID, communityID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	membership := model.Membership{
		UserID:      userID,
		CommunityID: communityID,
		Role:        model.MembershipRoleMember,
	}
	if err := s.db.WithContext(ctx).Create(&membership).Error; err != nil {
		return fmt.Errorf("failed to join community: %w", err)
	}
	return nil
}
