package forum

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sabyskool/api/model"
	"github.com/sabyskool/api/utils/response"
	"github.com/sabyskool/api/utils/sse"
)

const streamHeartbeat = 30 * time.Second

// StreamMessages streams an aula's message inserts over SSE. Each event
// carries the persisted message as published by the feed; clients replay
// history through the list endpoint and then follow the stream.
func (h *ForumHandler) StreamMessages(c *fiber.Ctx) error {
	aulaID, err := c.ParamsInt("id")
	if err != nil || aulaID <= 0 {
		return response.BadRequest(c, "Invalid aula ID")
	}

	var aula model.Aula
	if err := h.db.First(&aula, aulaID).Error; err != nil {
		return response.NotFound(c, "Aula not found")
	}

	// The subscription must outlive this handler; the stream writer below
	// runs after the request context is gone.
	pubsub, err := h.feed.SubscribeMessages(context.Background(), uint(aulaID))
	if err != nil {
		return response.ServiceUnavailable(c, "Realtime feed is not available")
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // Disable nginx buffering

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer pubsub.Close()

		ch := pubsub.Channel()
		heartbeat := time.NewTicker(streamHeartbeat)
		defer heartbeat.Stop()

		for {
			select {
			case m, ok := <-ch:
				if !ok {
					return
				}
				if err := sse.SendMessage(w, m.Payload); err != nil {
					return
				}
			case <-heartbeat.C:
				// Comment line keeps idle proxies from closing the stream
				if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})

	return nil
}
