package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabyskool/api/model"
)

func TestSendMessageWithoutAssignmentPersistsHumanMessage(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "student@example.com", model.RoleParticipant)
	community := seedCommunity(t, db, user.ID)
	aula := seedAula(t, db, community.ID)

	client := newFakeChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no provider call expected without an assignment")
	})
	service := NewTutorServiceWithClient(db, client)

	msg, err := service.SendMessage(context.Background(), aula.ID, user.ID, model.MessageKindForum, "Hola, tengo una duda")
	require.NoError(t, err)
	require.NotNil(t, msg.AuthorID)
	assert.Equal(t, user.ID, *msg.AuthorID)

	var messages []model.ForumMessage
	require.NoError(t, db.Where("aula_id = ?", aula.ID).Find(&messages).Error)
	assert.Len(t, messages, 1)
}

func TestSendMessageForumCreatesProfessorReply(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "student@example.com", model.RoleParticipant)
	community := seedCommunity(t, db, user.ID)
	aula := seedAula(t, db, community.ID)
	prof := seedProfessor(t, db, community.ID)
	seedAssignment(t, db, aula.ID, prof.ID)

	client := newFakeChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(chatReply(t, "Claro, el subjuntivo se usa para expresar deseo."))
	})
	service := NewTutorServiceWithClient(db, client)

	_, err := service.SendMessage(context.Background(), aula.ID, user.ID, model.MessageKindForum, "¿Cuándo se usa el subjuntivo?")
	require.NoError(t, err)

	var messages []model.ForumMessage
	require.NoError(t, db.Where("aula_id = ?", aula.ID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error)
	require.Len(t, messages, 2)

	assert.False(t, messages[0].IsAI())
	assert.Equal(t, "¿Cuándo se usa el subjuntivo?", messages[0].Content)

	assert.True(t, messages[1].IsAI())
	require.NotNil(t, messages[1].ProfessorID)
	assert.Equal(t, prof.ID, *messages[1].ProfessorID)
	assert.Nil(t, messages[1].AuthorID)
	assert.Equal(t, "Claro, el subjuntivo se usa para expresar deseo.", messages[1].Content)
}

func TestSendMessageSurvivesProviderError(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "student@example.com", model.RoleParticipant)
	community := seedCommunity(t, db, user.ID)
	aula := seedAula(t, db, community.ID)
	prof := seedProfessor(t, db, community.ID)
	seedAssignment(t, db, aula.ID, prof.ID)

	client := newFakeChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": {"message": "The server had an error", "type": "server_error"}}`))
	})
	service := NewTutorServiceWithClient(db, client)

	msg, err := service.SendMessage(context.Background(), aula.ID, user.ID, model.MessageKindForum, "Hola")
	require.NoError(t, err)
	require.NotNil(t, msg)

	// The human message lands even though the AI leg failed
	var messages []model.ForumMessage
	require.NoError(t, db.Where("aula_id = ?", aula.ID).Find(&messages).Error)
	require.Len(t, messages, 1)
	assert.False(t, messages[0].IsAI())
}

func TestSendMessageWithoutKeySkipsAI(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "student@example.com", model.RoleParticipant)
	community := seedCommunity(t, db, user.ID)
	aula := seedAula(t, db, community.ID)
	prof := seedProfessor(t, db, community.ID)
	seedAssignment(t, db, aula.ID, prof.ID)

	service := NewTutorService(db, "")

	_, err := service.SendMessage(context.Background(), aula.ID, user.ID, model.MessageKindForum, "Hola")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.ForumMessage{}).Where("aula_id = ?", aula.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSendMessageCafeteriaSkipsProfessor(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "student@example.com", model.RoleParticipant)
	community := seedCommunity(t, db, user.ID)
	aula := seedAula(t, db, community.ID)
	prof := seedProfessor(t, db, community.ID)
	seedAssignment(t, db, aula.ID, prof.ID)

	client := newFakeChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("cafeteria messages must not reach the provider")
	})
	service := NewTutorServiceWithClient(db, client)

	_, err := service.SendMessage(context.Background(), aula.ID, user.ID, model.MessageKindCafeteria, "¿Alguien quiere estudiar juntos?")
	require.NoError(t, err)

	var messages []model.ForumMessage
	require.NoError(t, db.Where("aula_id = ?", aula.ID).Find(&messages).Error)
	require.Len(t, messages, 1)
	assert.Equal(t, model.MessageKindCafeteria, messages[0].Kind)
}

func TestSendMessageRejectsEmptyContent(t *testing.T) {
	db := newTestDB(t)
	service := NewTutorService(db, "")

	_, err := service.SendMessage(context.Background(), 1, 1, model.MessageKindForum, "   ")
	assert.Error(t, err)
}

func TestListMessagesOrderAndKindFilter(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "student@example.com", model.RoleParticipant)
	community := seedCommunity(t, db, user.ID)
	aula := seedAula(t, db, community.ID)

	service := NewTutorService(db, "")
	ctx := context.Background()

	_, err := service.SendMessage(ctx, aula.ID, user.ID, model.MessageKindForum, "primera")
	require.NoError(t, err)
	_, err = service.SendMessage(ctx, aula.ID, user.ID, model.MessageKindCafeteria, "segunda")
	require.NoError(t, err)
	_, err = service.SendMessage(ctx, aula.ID, user.ID, model.MessageKindForum, "tercera")
	require.NoError(t, err)

	all, err := service.ListMessages(ctx, aula.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "primera", all[0].Content)
	assert.Equal(t, "segunda", all[1].Content)
	assert.Equal(t, "tercera", all[2].Content)

	forum, err := service.ListMessages(ctx, aula.ID, model.MessageKindForum)
	require.NoError(t, err)
	require.Len(t, forum, 2)
	assert.Equal(t, "primera", forum[0].Content)
	assert.Equal(t, "tercera", forum[1].Content)
}

func TestForumMessageAuthorshipInvariant(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "student@example.com", model.RoleParticipant)
	community := seedCommunity(t, db, user.ID)
	aula := seedAula(t, db, community.ID)
	prof := seedProfessor(t, db, community.ID)

	// Neither author nor professor
	err := db.Create(&model.ForumMessage{
		AulaID:  aula.ID,
		Kind:    model.MessageKindForum,
		Content: "orphan",
	}).Error
	assert.ErrorIs(t, err, model.ErrMessageAuthorship)

	// Both author and professor
	err = db.Create(&model.ForumMessage{
		AulaID:      aula.ID,
		Kind:        model.MessageKindForum,
		AuthorID:    &user.ID,
		ProfessorID: &prof.ID,
		Content:     "two parents",
	}).Error
	assert.ErrorIs(t, err, model.ErrMessageAuthorship)
}
