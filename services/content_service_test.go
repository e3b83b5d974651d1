package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabyskool/api/model"
)

func validLessonJSON(t *testing.T) string {
	t.Helper()

	quiz := make([]model.QuizQuestion, LessonQuizSize)
	for i := range quiz {
		quiz[i] = model.QuizQuestion{
			Question:      fmt.Sprintf("Question %d", i+1),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % QuizOptionCount,
		}
	}

	body, err := json.Marshal(GeneratedLesson{
		Summary: "A lesson on verb conjugation.",
		Outline: []model.OutlineItem{
			{Time: "00:00", Concept: "Introduction", Detail: "Course overview"},
			{Time: "05:30", Concept: "Present tense", Detail: "Regular verbs"},
		},
		Quiz: quiz,
	})
	require.NoError(t, err)
	return string(body)
}

func TestGenerateLessonContent(t *testing.T) {
	client := newFakeChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// JSON output mode must be requested
		format, ok := req["response_format"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "json_object", format["type"])

		w.Header().Set("Content-Type", "application/json")
		w.Write(chatReply(t, validLessonJSON(t)))
	})
	service := NewContentServiceWithClients(client, nil)

	result, err := service.GenerateLessonContent(context.Background(), "hola clase, hoy vamos a conjugar verbos")
	require.NoError(t, err)

	assert.Equal(t, "A lesson on verb conjugation.", result.Summary)
	assert.Len(t, result.Outline, 2)
	assert.Len(t, result.Quiz, LessonQuizSize)
	for _, q := range result.Quiz {
		assert.Len(t, q.Options, QuizOptionCount)
		assert.GreaterOrEqual(t, q.CorrectAnswer, 0)
		assert.Less(t, q.CorrectAnswer, QuizOptionCount)
	}
}

func TestGenerateLessonContentMalformedJSON(t *testing.T) {
	client := newFakeChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(chatReply(t, "this is not json"))
	})
	service := NewContentServiceWithClients(client, nil)

	_, err := service.GenerateLessonContent(context.Background(), "transcript")
	require.Error(t, err)

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "this is not json", malformed.Raw)
}

func TestGenerateLessonContentWrongQuizSize(t *testing.T) {
	short, err := json.Marshal(GeneratedLesson{
		Summary: "short",
		Quiz: model.QuizQuestions{
			{Question: "only one", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 0},
		},
	})
	require.NoError(t, err)

	client := newFakeChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(chatReply(t, string(short)))
	})
	service := NewContentServiceWithClients(client, nil)

	_, err = service.GenerateLessonContent(context.Background(), "transcript")

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestGenerateLessonContentWithoutKey(t *testing.T) {
	service := NewContentService("", "")

	_, err := service.GenerateLessonContent(context.Background(), "transcript")
	assert.ErrorIs(t, err, ErrAPIKeyNotConfigured)

	_, err = service.GenerateAulaContent(context.Background(), "transcript")
	assert.ErrorIs(t, err, ErrAPIKeyNotConfigured)
}

func TestGenerateAulaContent(t *testing.T) {
	payload, err := json.Marshal(GeneratedAulaContent{
		Summary:   "Short summary of the class.",
		Schema:    "Unit 1: greetings\nUnit 2: numbers",
		Questions: []string{"q1", "q2", "q3", "q4", "q5"},
	})
	require.NoError(t, err)

	client := newFakeChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(chatReply(t, string(payload)))
	})
	service := NewContentServiceWithClients(nil, client)

	result, err := service.GenerateAulaContent(context.Background(), "transcript")
	require.NoError(t, err)

	assert.Equal(t, "Short summary of the class.", result.Summary)
	assert.NotEmpty(t, result.Schema)
	assert.Len(t, result.Questions, AulaQuestionCount)
}

func TestGenerateAulaContentWrongQuestionCount(t *testing.T) {
	payload, err := json.Marshal(GeneratedAulaContent{
		Summary:   "summary",
		Schema:    "schema",
		Questions: []string{"q1", "q2"},
	})
	require.NoError(t, err)

	client := newFakeChatClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(chatReply(t, string(payload)))
	})
	service := NewContentServiceWithClients(nil, client)

	_, err = service.GenerateAulaContent(context.Background(), "transcript")

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}
