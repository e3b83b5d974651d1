package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const (
	// DefaultTranscriptionTimeout bounds speech-to-text requests, which run
	// longer than chat completions
	DefaultTranscriptionTimeout = 60 * time.Second
	// DefaultTranscriptionModel is the default speech-to-text model
	DefaultTranscriptionModel = "whisper-large-v3-turbo"
	// MaxAudioBytes is the provider's hard cap on uploaded media
	MaxAudioBytes = 25 << 20
)

// ErrAudioTooLarge is returned before any network call when the media
// exceeds the provider cap
var ErrAudioTooLarge = fmt.Errorf("audio exceeds the %d MiB provider limit", MaxAudioBytes>>20)

// TranscriptionResponse represents the JSON transcription result
type TranscriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe sends the media bytes to the provider's speech-to-text endpoint
// as a single multipart request and returns the transcript text. There is no
// chunking for long media; oversized input is rejected up front.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if len(audio) > MaxAudioBytes {
		return "", ErrAudioTooLarge
	}
	if filename == "" {
		filename = "audio.mp3"
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("failed to write file content: %w", err)
	}

	if err := writer.WriteField("model", DefaultTranscriptionModel); err != nil {
		return "", fmt.Errorf("failed to write model field: %w", err)
	}
	if err := writer.WriteField("response_format", "json"); err != nil {
		return "", fmt.Errorf("failed to write response_format field: %w", err)
	}

	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	url := c.baseURL + "/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", parseAPIError(resp.StatusCode, respBody)
	}

	var result TranscriptionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}

	return result.Text, nil
}
