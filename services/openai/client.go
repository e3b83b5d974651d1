// Package openai implements a client for OpenAI-compatible chat completion
// and speech-to-text APIs. OpenAI, Groq and DeepSeek all speak this wire
// format, so one client covers the three providers the platform uses.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// OpenAIBaseURL is the OpenAI API base URL
	OpenAIBaseURL = "https://api.openai.com/v1"
	// GroqBaseURL is the Groq OpenAI-compatible API base URL
	GroqBaseURL = "https://api.groq.com/openai/v1"
	// DeepSeekBaseURL is the DeepSeek API base URL
	DeepSeekBaseURL = "https://api.deepseek.com/v1"

	// DefaultChatTimeout bounds chat completion requests
	DefaultChatTimeout = 30 * time.Second
	// DefaultChatModel is the default chat completion model
	DefaultChatModel = "gpt-4o-mini"
)

// Client handles OpenAI-compatible API interactions for one provider
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	model      string
}

// Config holds configuration for the client
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Model   string
}

// NewClient creates a new OpenAI-compatible API client
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = OpenAIBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultChatTimeout
	}
	if config.Model == "" {
		config.Model = DefaultChatModel
	}

	return &Client{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		model: config.Model,
	}
}

// APIError represents a provider error envelope. The provider's message is
// carried verbatim.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Type       string `json:"type,omitempty"`
	Code       string `json:"code,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("provider error (status %d)", e.StatusCode)
	}
	return e.Message
}

// errorEnvelope mirrors the {"error": {...}} wrapper providers return
type errorEnvelope struct {
	Error *APIError `json:"error"`
}

// parseAPIError decodes a non-success response body into an APIError,
// falling back to the raw body when it is not the expected envelope
func parseAPIError(statusCode int, body []byte) *APIError {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		envelope.Error.StatusCode = statusCode
		return envelope.Error
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    string(body),
	}
}

// Message represents a message in a chat completion exchange
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// ResponseFormat selects the provider's output mode
type ResponseFormat struct {
	Type string `json:"type"` // "text" or "json_object"
}

// ChatRequest represents a chat completion request
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatChoice represents a choice in the chat completion response
type ChatChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// ChatUsage represents token usage information
type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse represents a chat completion response
type ChatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   ChatUsage    `json:"usage"`
}

// ExtractContent returns the content of the first choice
func (r *ChatResponse) ExtractContent() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}

// ChatOption is a function that modifies the chat request
type ChatOption func(*ChatRequest)

// WithModel overrides the client's default model for one request
func WithModel(model string) ChatOption {
	return func(req *ChatRequest) {
		if model != "" {
			req.Model = model
		}
	}
}

// WithTemperature sets the temperature for the request
func WithTemperature(temp float64) ChatOption {
	return func(req *ChatRequest) {
		req.Temperature = temp
	}
}

// WithMaxTokens sets the max tokens for the request
func WithMaxTokens(tokens int) ChatOption {
	return func(req *ChatRequest) {
		req.MaxTokens = tokens
	}
}

// WithJSONResponse requests the provider's JSON output mode
func WithJSONResponse() ChatOption {
	return func(req *ChatRequest) {
		req.ResponseFormat = &ResponseFormat{Type: "json_object"}
	}
}

// ChatCompletion sends a chat completion request
func (c *Client) ChatCompletion(ctx context.Context, messages []Message, options ...ChatOption) (*ChatResponse, error) {
	req := ChatRequest{
		Model:    c.model,
		Messages: messages,
	}

	for _, opt := range options {
		opt(&req)
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, respBody)
	}

	var result ChatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &result, nil
}

// SimpleCompletion is a convenience method for a single system+user exchange
func (c *Client) SimpleCompletion(ctx context.Context, systemPrompt, userPrompt string, options ...ChatOption) (string, error) {
	messages := []Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	}

	resp, err := c.ChatCompletion(ctx, messages, options...)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from chat completion API")
	}

	return resp.Choices[0].Message.Content, nil
}
