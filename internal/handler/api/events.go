package api

import (
	"io"
	"net/http"
	"time"

	"table-booking/internal/domain/event"

	"github.com/gin-gonic/gin"
)

const keepAliveInterval = 25 * time.Second

// EventSource is satisfied by realtime.Hub.
type EventSource interface {
	Subscribe() (<-chan event.Event, func())
}

type EventsHandler struct {
	source EventSource
}

func NewEventsHandler(source EventSource) *EventsHandler {
	return &EventsHandler{source: source}
}

// @Summary Live reservation events
// @Description Server-sent events. The SSE event name is the event type and data is the JSON envelope. No replay: re-fetch after reconnecting.
// @Tags events
// @Produce text/event-stream
// @Success 200 {object} event.Event
// @Router /events [get]
func (h *EventsHandler) Stream(c *gin.Context) {
	events, cancel := h.source.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case e, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(e.Type.String(), e)
			return true
		case <-ticker.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			return true
		}
	})
}
