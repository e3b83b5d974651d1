package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sabyskool/api/model"
	"github.com/sabyskool/api/services/openai"
)

// newTestDB opens an isolated in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Community{},
		&model.Membership{},
		&model.CourseModule{},
		&model.Lesson{},
		&model.Quiz{},
		&model.AIProfessor{},
		&model.ProfessorAssignment{},
		&model.Aula{},
		&model.ForumMessage{},
		&model.ExamSubmission{},
		&model.JWTTokenBlacklist{},
	))

	return db
}

// newFakeChatClient points an openai client at a local test server
func newFakeChatClient(t *testing.T, handler http.HandlerFunc) *openai.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return openai.NewClient(openai.Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})
}

// chatReply builds a chat completion response whose first choice carries the
// given content
func chatReply(t *testing.T, content string) []byte {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"id":    "chatcmpl-test",
		"model": "test-model",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	})
	require.NoError(t, err)
	return body
}

func seedUser(t *testing.T, db *gorm.DB, email string, role model.GlobalRole) *model.User {
	t.Helper()

	user := model.User{
		Email:        email,
		PasswordHash: "x",
		Name:         "Test User",
		GlobalRole:   role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedCommunity(t *testing.T, db *gorm.DB, ownerID uint) *model.Community {
	t.Helper()

	community := model.Community{
		OwnerID: ownerID,
		Name:    "Test Community",
		Slug:    fmt.Sprintf("test-community-%d", ownerID),
	}
	require.NoError(t, db.Create(&community).Error)
	return &community
}

func seedAula(t *testing.T, db *gorm.DB, communityID uint) *model.Aula {
	t.Helper()

	aula := model.Aula{
		CommunityID: communityID,
		Name:        "Spanish Grammar",
		Schema:      "Unit 1: verb conjugation",
		IsActive:    true,
	}
	require.NoError(t, db.Create(&aula).Error)
	return &aula
}

func seedProfessor(t *testing.T, db *gorm.DB, communityID uint) *model.AIProfessor {
	t.Helper()

	prof := model.AIProfessor{
		CommunityID: communityID,
		Name:        "Profesora Ana",
		Subject:     "Spanish",
		Personality: "patient and encouraging",
	}
	require.NoError(t, db.Create(&prof).Error)
	return &prof
}

func seedAssignment(t *testing.T, db *gorm.DB, aulaID, professorID uint) {
	t.Helper()

	require.NoError(t, db.Create(&model.ProfessorAssignment{
		AulaID:      aulaID,
		ProfessorID: professorID,
	}).Error)
}
