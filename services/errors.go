package services

import (
	"errors"
	"fmt"
)

// ErrAPIKeyNotConfigured is returned by content generation when the provider
// key is absent. The tutoring flow never returns it: there a missing key
// just disables the AI reply.
var ErrAPIKeyNotConfigured = errors.New("AI provider API key is not configured")

// MalformedResponseError is returned when a provider call succeeds but the
// body does not parse into the expected JSON shape. It is never retried and
// there is no partial recovery: the schema is meant to be enforced by the
// provider's JSON output mode.
type MalformedResponseError struct {
	Raw string
	Err error
}

// Error implements the error interface
func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed AI response: %v", e.Err)
}

// Unwrap returns the underlying parse/validation error
func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// PipelineError wraps a failure of any stage of the lesson processing
// pipeline after the media upload succeeded
type PipelineError struct {
	Stage string
	Err   error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	return fmt.Sprintf("lesson processing failed at %s: %v", e.Stage, e.Err)
}

// Unwrap returns the stage's error
func (e *PipelineError) Unwrap() error {
	return e.Err
}
