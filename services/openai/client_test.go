package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "test-model",
	})
}

func TestChatCompletionRequestShape(t *testing.T) {
	var captured ChatRequest
	var authHeader string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ChatResponse{
			Choices: []ChatChoice{{Message: Message{Role: "assistant", Content: "hi"}}},
		})
	})

	resp, err := client.ChatCompletion(context.Background(), []Message{
		{Role: "system", Content: "be helpful"},
		{Role: "user", Content: "hello"},
	}, WithJSONResponse(), WithModel("override-model"))
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "override-model", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
	assert.Equal(t, "hi", resp.ExtractContent())
}

func TestChatCompletionParsesErrorEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "Rate limit reached", "type": "tokens", "code": "rate_limit_exceeded"}}`))
	})

	_, err := client.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "Rate limit reached", apiErr.Message)
	assert.Equal(t, "rate_limit_exceeded", apiErr.Code)
}

func TestChatCompletionNonEnvelopeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	_, err := client.ChatCompletion(context.Background(), []Message{{Role: "user", Content: "hi"}})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream exploded", apiErr.Message)
}

func TestSimpleCompletion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ChatResponse{
			Choices: []ChatChoice{{Message: Message{Role: "assistant", Content: "respuesta"}}},
		})
	})

	content, err := client.SimpleCompletion(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, "respuesta", content)
}

func TestTranscribeMultipartShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/audio/transcriptions", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))

		assert.Equal(t, DefaultTranscriptionModel, r.FormValue("model"))
		assert.Equal(t, "json", r.FormValue("response_format"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "clase.mp4", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TranscriptionResponse{Text: "hola a todos"})
	})

	text, err := client.Transcribe(context.Background(), []byte("fake-media"), "clase.mp4")
	require.NoError(t, err)
	assert.Equal(t, "hola a todos", text)
}

func TestTranscribeRejectsOversizedMedia(t *testing.T) {
	client := NewClient(Config{APIKey: "test-key"})

	oversized := make([]byte, MaxAudioBytes+1)
	_, err := client.Transcribe(context.Background(), oversized, "big.mp4")
	assert.ErrorIs(t, err, ErrAudioTooLarge)
}

func TestTranscribeSurfacesProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"message": "Invalid file format", "type": "invalid_request_error"}}`))
	})

	_, err := client.Transcribe(context.Background(), []byte("x"), "broken.xyz")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid file format", apiErr.Message)
}
