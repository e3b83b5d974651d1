package services

import (
	"context"
	"fmt"

	"github.com/sabyskool/api/model"
	"gorm.io/gorm"
)

// AulaService manages aulas and their professor assignments
type AulaService struct {
	db *gorm.DB
}

// NewAulaService creates a new aula service
func NewAulaService(db *gorm.DB) *AulaService {
	return &AulaService{db: db}
}

// CreateAula creates a new aula in a community
func (s *AulaService) CreateAula(ctx context.Context, aula *model.Aula) error {
	if err := s.db.WithContext(ctx).Create(aula).Error; err != nil {
		return fmt.Errorf("failed to create aula: %w", err)
	}
	return nil
}

// GetAula fetches one aula with its professor assignment
func (s *AulaService) GetAula(ctx context.Context, id uint) (*model.Aula, error) {
	var aula model.Aula
	err := s.db.WithContext(ctx).
		Preload("Assignment.Professor").
		First(&aula, id).Error
	if err != nil {
		return nil, err
	}
	return &aula, nil
}

// ListAulas returns the aulas of a community
func (s *AulaService) ListAulas(ctx context.Context, communityID uint) ([]model.Aula, error) {
	var aulas []model.Aula
	err := s.db.WithContext(ctx).
		Preload("Assignment.Professor").
		Where("community_id = ?", communityID).
		Order("created_at ASC").
		Find(&aulas).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch aulas: %w", err)
	}
	return aulas, nil
}

// AulaUpdate carries the editable aula fields
type AulaUpdate struct {
	Name          string
	Description   string
	VideoURL      string
	Schema        string
	ExamQuestions model.StringList
	IsActive      bool
}

// UpdateAula replaces the editable fields of an aula
func (s *AulaService) UpdateAula(ctx context.Context, id uint, update AulaUpdate) (*model.Aula, error) {
	var aula model.Aula
	if err := s.db.WithContext(ctx).First(&aula, id).Error; err != nil {
		return nil, err
	}

	aula.Name = update.Name
	aula.Description = update.Description
	aula.VideoURL = update.VideoURL
	aula.Schema = update.Schema
	aula.ExamQuestions = update.ExamQuestions
	aula.IsActive = update.IsActive

	if err := s.db.WithContext(ctx).Save(&aula).Error; err != nil {
		return nil, fmt.Errorf("failed to update aula: %w", err)
	}
	return &aula, nil
}

// DeleteAula soft-deletes an aula
func (s *AulaService) DeleteAula(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&model.Aula{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete aula: %w", err)
	}
	return nil
}

// AssignProfessor replaces an aula's professor assignment wholesale. Any
// existing assignment rows are cleared first; a nil professor id just
// clears. The aula is left with at most one assignment.
func (s *AulaService) AssignProfessor(ctx context.Context, aulaID uint, professorID *uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("aula_id = ?", aulaID).
			Delete(&model.ProfessorAssignment{}).Error; err != nil {
			return fmt.Errorf("failed to clear professor assignment: %w", err)
		}

		if professorID == nil {
			return nil
		}

		assignment := model.ProfessorAssignment{
			AulaID:      aulaID,
			ProfessorID: *professorID,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return fmt.Errorf("failed to assign professor: %w", err)
		}
		return nil
	})
}
