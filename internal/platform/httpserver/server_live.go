package httpserver

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

func (s *Server) registerLiveRoutes() {
	s.mux.HandleFunc("GET /api/v1/partitions/{partition_id}/events", s.handleStreamPartitionEvents)
}

// handleStreamPartitionEvents godoc
// @Summary      Subscribe to live partition events over SSE
// @Tags         live
// @Produce      text/event-stream
// @Param        partition_id  path    int     true   "Partition ID"
// @Param        X-Org-Id      header  string  true   "Organization ID"
// @Param        X-Session-Id  header  string  false  "Session identifier, generated when absent"
// @Success      200  {string}  string  "event stream"
// @Router       /api/v1/partitions/{partition_id}/events [get]
func (s *Server) handleStreamPartitionEvents(w http.ResponseWriter, r *http.Request) {
	orgID, ok := s.requireOrg(w, r)
	if !ok {
		return
	}
	partitionID, ok := pathInt64(w, r, "partition_id", writeRecordBadRequest)
	if !ok {
		return
	}

	// Tenant scoping: only partitions the org owns may be subscribed to.
	if _, err := s.partitions.Handler.GetPartitionHandler(r.Context(), orgID, partitionID); err != nil {
		s.writePartitionDomainError(w, err)
		return
	}

	sessionID := strings.TrimSpace(r.Header.Get("X-Session-Id"))
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	s.live.Handler.StreamPartitionEvents(w, r, partitionID, sessionID)
}
