package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/syncro4/taskboard/internal/api/metrics"
	"github.com/syncro4/taskboard/internal/core/domain"
)

const heartbeatInterval = 25 * time.Second

// ChangeSource hands out change subscriptions.
type ChangeSource interface {
	Subscribe() (<-chan domain.Change, func())
}

// EventHandler streams store changes to clients as server-sent events so a
// view can re-render after every mutation.
type EventHandler struct {
	source    ChangeSource
	heartbeat time.Duration
}

func NewEventHandler(source ChangeSource) *EventHandler {
	return &EventHandler{source: source, heartbeat: heartbeatInterval}
}

type changeEvent struct {
	Op        string        `json:"op"`
	Slots     []domain.Slot `json:"slots"`
	At        time.Time     `json:"at"`
	Persisted bool          `json:"persisted"`
}

// Stream handles GET /v1/events.
//
// @Summary      Stream board changes
// @Tags         events
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200
// @Failure      401  {object}  errorResponse
// @Router       /v1/events [get]
func (h *EventHandler) Stream(c echo.Context) error {
	if _, err := currentSession(c); err != nil {
		return err
	}

	changes, cancel := h.source.Subscribe()
	defer cancel()
	metrics.StreamSubscribers.Inc()
	defer metrics.StreamSubscribers.Dec()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			data, err := json.Marshal(changeEvent{
				Op:        change.Op,
				Slots:     change.Slots,
				At:        change.At,
				Persisted: change.FlushErr == nil,
			})
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(res, "event: change\ndata: %s\n\n", data); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
