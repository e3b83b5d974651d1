package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabyskool/api/model"
)

func TestSubmitExamUpsertsOneRow(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "student@example.com", model.RoleParticipant)
	community := seedCommunity(t, db, user.ID)
	aula := seedAula(t, db, community.ID)

	service := NewExamService(db)
	ctx := context.Background()

	first, err := service.SubmitExam(ctx, aula.ID, user.ID, 6, map[string]interface{}{"1": "respuesta uno"})
	require.NoError(t, err)
	assert.Equal(t, 6, first.Score)

	// Resubmission replaces the score instead of adding a row
	second, err := service.SubmitExam(ctx, aula.ID, user.ID, 9, map[string]interface{}{"1": "mejor respuesta"})
	require.NoError(t, err)
	assert.Equal(t, 9, second.Score)

	var count int64
	require.NoError(t, db.Model(&model.ExamSubmission{}).
		Where("aula_id = ? AND student_id = ?", aula.ID, user.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	saved, err := service.GetSubmission(ctx, aula.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, saved.Score)
}

func TestSubmitExamValidatesScoreRange(t *testing.T) {
	db := newTestDB(t)
	service := NewExamService(db)

	_, err := service.SubmitExam(context.Background(), 1, 1, 11, nil)
	assert.Error(t, err)

	_, err = service.SubmitExam(context.Background(), 1, 1, -1, nil)
	assert.Error(t, err)
}

func TestSubmitExamSeparateStudents(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice@example.com", model.RoleParticipant)
	bob := seedUser(t, db, "bob@example.com", model.RoleParticipant)
	community := seedCommunity(t, db, alice.ID)
	aula := seedAula(t, db, community.ID)

	service := NewExamService(db)
	ctx := context.Background()

	_, err := service.SubmitExam(ctx, aula.ID, alice.ID, 7, nil)
	require.NoError(t, err)
	_, err = service.SubmitExam(ctx, aula.ID, bob.ID, 4, nil)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.ExamSubmission{}).Where("aula_id = ?", aula.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
