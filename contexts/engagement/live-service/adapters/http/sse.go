package httpadapter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"leadrail/contexts/engagement/live-service/application"
)

const heartbeatInterval = 25 * time.Second

type Handler struct {
	Hub    *application.Hub
	Logger *slog.Logger
}

// StreamPartitionEvents serves one SSE subscription. It blocks until the
// client disconnects; each broadcast on the partition becomes one
// `event:`/`data:` frame, with comment-line heartbeats keeping proxies from
// idling the connection out.
func (h Handler) StreamPartitionEvents(w http.ResponseWriter, r *http.Request, partitionID int64, sessionID string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	events, cancel := h.Hub.Subscribe(partitionID, sessionID)
	defer cancel()

	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("live subscriber connected",
		"event", "live_sse_connected",
		"module", "engagement/live-service",
		"layer", "adapter",
		"partition_id", partitionID,
		"session_id", sessionID,
	)

	_, _ = fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			_, _ = fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case event, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(event.Payload)
			if err != nil {
				logger.Warn("live event encode failed",
					"event", "live_sse_encode_failed",
					"module", "engagement/live-service",
					"layer", "adapter",
					"partition_id", partitionID,
					"event_name", event.Name,
					"error", err.Error(),
				)
				continue
			}
			_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, payload)
			flusher.Flush()
		}
	}
}
