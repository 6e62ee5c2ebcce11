package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	automationservice "leadrail/contexts/engagement/automation-service"
	liveservice "leadrail/contexts/engagement/live-service"
	partitionservice "leadrail/contexts/sales-core/partition-service"
	recordservice "leadrail/contexts/sales-core/record-service"
	recorderrors "leadrail/contexts/sales-core/record-service/domain/errors"
	recordhttp "leadrail/contexts/sales-core/record-service/transport/http"
	planservice "leadrail/contexts/tenant-core/plan-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "leadrail/internal/platform/httpserver/docs"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	enableSwagger bool
	records       recordservice.Module
	partitions    partitionservice.Module
	plans         planservice.Module
	automation    automationservice.Module
	live          liveservice.Module
}

func New(
	records recordservice.Module,
	partitions partitionservice.Module,
	plans planservice.Module,
	automation automationservice.Module,
	live liveservice.Module,
	logger *slog.Logger,
	addr string,
	enableSwagger bool,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		enableSwagger: enableSwagger,
		records:       records,
		partitions:    partitions,
		plans:         plans,
		automation:    automation,
		live:          live,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	if s.enableSwagger {
		s.mux.Handle("/swagger/", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	s.mux.HandleFunc("POST /api/v1/partitions/{partition_id}/records", s.handleCreateRecord)
	s.mux.HandleFunc("GET /api/v1/partitions/{partition_id}/records", s.handleListRecords)
	s.mux.HandleFunc("GET /api/v1/records/{record_id}", s.handleGetRecord)

	s.registerPartitionRoutes()
	s.registerPlanRoutes()
	s.registerAutomationRoutes()
	s.registerLiveRoutes()
}

// handleCreateRecord godoc
// @Summary      Create a record in a partition
// @Tags         records
// @Accept       json
// @Produce      json
// @Param        partition_id  path      int                          true  "Partition ID"
// @Param        X-Org-Id      header    string                       true  "Organization ID"
// @Param        X-Session-Id  header    string                       false "Originating live session"
// @Param        request       body      http.CreateRecordRequest     true  "Record fields"
// @Success      200  {object}  http.CreateRecordResponse
// @Failure      400  {object}  http.ErrorResponse
// @Failure      403  {object}  http.ErrorResponse
// @Failure      409  {object}  http.ErrorResponse
// @Router       /api/v1/partitions/{partition_id}/records [post]
func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	orgID, ok := s.requireOrg(w, r)
	if !ok {
		return
	}
	partitionID, ok := pathInt64(w, r, "partition_id", writeRecordBadRequest)
	if !ok {
		return
	}

	var req recordhttp.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRecordBadRequest(w, "request body must be valid JSON")
		return
	}

	resp, err := s.records.Handler.CreateRecordHandler(
		r.Context(),
		orgID,
		partitionID,
		r.Header.Get("X-Session-Id"),
		req,
	)
	if err != nil {
		s.writeRecordDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetRecord godoc
// @Summary      Fetch one record
// @Tags         records
// @Produce      json
// @Param        record_id  path    string  true  "Record ID"
// @Param        X-Org-Id   header  string  true  "Organization ID"
// @Success      200  {object}  http.GetRecordResponse
// @Failure      404  {object}  http.ErrorResponse
// @Router       /api/v1/records/{record_id} [get]
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	orgID, ok := s.requireOrg(w, r)
	if !ok {
		return
	}
	resp, err := s.records.Handler.GetRecordHandler(r.Context(), orgID, r.PathValue("record_id"))
	if err != nil {
		s.writeRecordDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleListRecords godoc
// @Summary      List records in a partition
// @Tags         records
// @Produce      json
// @Param        partition_id  path    int     true   "Partition ID"
// @Param        X-Org-Id      header  string  true   "Organization ID"
// @Param        limit         query   int     false  "Page size"
// @Param        offset        query   int     false  "Page offset"
// @Success      200  {object}  http.ListRecordsResponse
// @Failure      404  {object}  http.ErrorResponse
// @Router       /api/v1/partitions/{partition_id}/records [get]
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	orgID, ok := s.requireOrg(w, r)
	if !ok {
		return
	}
	partitionID, ok := pathInt64(w, r, "partition_id", writeRecordBadRequest)
	if !ok {
		return
	}

	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	resp, err := s.records.Handler.ListRecordsHandler(r.Context(), orgID, partitionID, limit, offset)
	if err != nil {
		s.writeRecordDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// writeRecordDomainError maps record failures onto the response envelope.
// Plan-limit and duplicate failures carry their display data; anything
// unrecognized collapses to a generic 500 so storage errors never leak.
func (s *Server) writeRecordDomainError(w http.ResponseWriter, err error) {
	var planErr *recorderrors.PlanLimitError
	if errors.As(err, &planErr) {
		writeJSON(w, http.StatusForbidden, recordhttp.ErrorResponse{
			Error:           planErr.Error(),
			UpgradeRequired: true,
			Limit:           planErr.Limit,
		})
		return
	}
	var dupErr *recorderrors.DuplicateError
	if errors.As(err, &dupErr) {
		writeJSON(w, http.StatusConflict, recordhttp.ErrorResponse{
			Error: dupErr.Error(),
			Field: dupErr.Field,
			Value: dupErr.Value,
		})
		return
	}

	switch {
	case errors.Is(err, recorderrors.ErrPartitionNotFound),
		errors.Is(err, recorderrors.ErrRecordNotFound),
		errors.Is(err, recorderrors.ErrOrganizationNotFound):
		writeJSON(w, http.StatusNotFound, recordhttp.ErrorResponse{Error: err.Error()})
	case errors.Is(err, recorderrors.ErrInvalidRecordInput):
		writeJSON(w, http.StatusBadRequest, recordhttp.ErrorResponse{Error: err.Error()})
	default:
		s.logger.Error("record endpoint failed",
			"event", "http_record_endpoint_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeJSON(w, http.StatusInternalServerError, recordhttp.ErrorResponse{Error: "internal server error"})
	}
}

func writeRecordBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, recordhttp.ErrorResponse{Error: message})
}

func (s *Server) requireOrg(w http.ResponseWriter, r *http.Request) (string, bool) {
	orgID := strings.TrimSpace(r.Header.Get("X-Org-Id"))
	if orgID == "" {
		writeJSON(w, http.StatusUnauthorized, recordhttp.ErrorResponse{Error: "X-Org-Id header is required"})
		return "", false
	}
	return orgID, true
}

func pathInt64(w http.ResponseWriter, r *http.Request, name string, writeErr func(http.ResponseWriter, string)) (int64, bool) {
	value, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || value <= 0 {
		writeErr(w, name+" must be a positive integer")
		return 0, false
	}
	return value, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
