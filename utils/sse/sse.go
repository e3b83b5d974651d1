package sse

import (
	"bufio"
	"encoding/json"
	"fmt"
)

// Event represents a server-sent event written to a streaming response.
type Event struct {
	// Event is the SSE event type (e.g., "message", "error").
	// If empty, no "event:" line will be written.
	Event string

	// Data is the payload to send (JSON-encoded unless already a string).
	Data interface{}

	// ID is an optional event ID for reconnection support.
	ID string

	// Retry is an optional reconnection time in milliseconds.
	Retry int
}

// Send writes an SSE event to the given writer and flushes immediately.
func Send(w *bufio.Writer, event Event) error {
	if event.ID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", event.ID); err != nil {
			return fmt.Errorf("failed to write event ID: %w", err)
		}
	}

	if event.Retry > 0 {
		if _, err := fmt.Fprintf(w, "retry: %d\n", event.Retry); err != nil {
			return fmt.Errorf("failed to write retry: %w", err)
		}
	}

	if event.Event != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", event.Event); err != nil {
			return fmt.Errorf("failed to write event type: %w", err)
		}
	}

	var dataStr string
	switch v := event.Data.(type) {
	case string:
		dataStr = v
	case []byte:
		dataStr = string(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal event data: %w", err)
		}
		dataStr = string(data)
	}

	if _, err := fmt.Fprintf(w, "data: %s\n\n", dataStr); err != nil {
		return fmt.Errorf("failed to write event data: %w", err)
	}

	return w.Flush()
}

// SendMessage sends a "message" event carrying a newly posted forum message.
func SendMessage(w *bufio.Writer, data interface{}) error {
	return Send(w, Event{Event: "message", Data: data})
}

// SendError sends an error event.
func SendError(w *bufio.Writer, err error) error {
	return Send(w, Event{
		Event: "error",
		Data: map[string]interface{}{
			"type":    "error",
			"message": err.Error(),
		},
	})
}
