package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabyskool/api/model"
)

func TestAssignProfessorReplacesAssignment(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "creator@example.com", model.RoleCreator)
	community := seedCommunity(t, db, user.ID)
	aula := seedAula(t, db, community.ID)
	first := seedProfessor(t, db, community.ID)
	second := seedProfessor(t, db, community.ID)

	service := NewAulaService(db)
	ctx := context.Background()

	require.NoError(t, service.AssignProfessor(ctx, aula.ID, &first.ID))
	require.NoError(t, service.AssignProfessor(ctx, aula.ID, &second.ID))

	// The old assignment is gone, not accumulated
	var assignments []model.ProfessorAssignment
	require.NoError(t, db.Where("aula_id = ?", aula.ID).Find(&assignments).Error)
	require.Len(t, assignments, 1)
	assert.Equal(t, second.ID, assignments[0].ProfessorID)

	loaded, err := service.GetAula(ctx, aula.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Assignment)
	assert.Equal(t, second.ID, loaded.Assignment.ProfessorID)
	assert.Equal(t, "Profesora Ana", loaded.Assignment.Professor.Name)
}

func TestAssignProfessorNilClears(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "creator@example.com", model.RoleCreator)
	community := seedCommunity(t, db, user.ID)
	aula := seedAula(t, db, community.ID)
	prof := seedProfessor(t, db, community.ID)

	service := NewAulaService(db)
	ctx := context.Background()

	require.NoError(t, service.AssignProfessor(ctx, aula.ID, &prof.ID))
	require.NoError(t, service.AssignProfessor(ctx, aula.ID, nil))

	var count int64
	require.NoError(t, db.Model(&model.ProfessorAssignment{}).Where("aula_id = ?", aula.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateAulaReplacesEditableFields(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "creator@example.com", model.RoleCreator)
	community := seedCommunity(t, db, user.ID)
	aula := seedAula(t, db, community.ID)

	service := NewAulaService(db)

	updated, err := service.UpdateAula(context.Background(), aula.ID, AulaUpdate{
		Name:          "Advanced Grammar",
		Description:   "second course",
		Schema:        "Unit 1: subjunctive",
		ExamQuestions: model.StringList{"q1", "q2"},
		IsActive:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Advanced Grammar", updated.Name)
	assert.Equal(t, model.StringList{"q1", "q2"}, updated.ExamQuestions)
	assert.True(t, updated.IsActive)
}

func TestDeleteAulaIsSoft(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "creator@example.com", model.RoleCreator)
	community := seedCommunity(t, db, user.ID)
	aula := seedAula(t, db, community.ID)

	service := NewAulaService(db)
	ctx := context.Background()

	require.NoError(t, service.DeleteAula(ctx, aula.ID))

	_, err := service.GetAula(ctx, aula.ID)
	assert.Error(t, err)

	// Row still exists for the retention job to purge later
	var count int64
	require.NoError(t, db.Unscoped().Model(&model.Aula{}).Where("id = ?", aula.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
