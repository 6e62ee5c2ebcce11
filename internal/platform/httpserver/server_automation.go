package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	automationerrors "leadrail/contexts/engagement/automation-service/domain/errors"
	automationhttp "leadrail/contexts/engagement/automation-service/transport/http"
)

func (s *Server) registerAutomationRoutes() {
	s.mux.HandleFunc("POST /api/v1/templates", s.handleCreateTemplate)
	s.mux.HandleFunc("GET /api/v1/partitions/{partition_id}/templates", s.handleListTemplates)
}

// handleCreateTemplate godoc
// @Summary      Create an outbound message template
// @Tags         automation
// @Accept       json
// @Produce      json
// @Param        X-Org-Id  header    string                          true  "Organization ID"
// @Param        request   body      http.CreateTemplateRequest      true  "Template"
// @Success      200  {object}  http.TemplateResponse
// @Failure      400  {object}  http.ErrorResponse
// @Router       /api/v1/templates [post]
func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	orgID, ok := s.requireOrg(w, r)
	if !ok {
		return
	}
	var req automationhttp.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAutomationBadRequest(w, "request body must be valid JSON")
		return
	}
	resp, err := s.automation.Handler.CreateTemplateHandler(r.Context(), orgID, req)
	if err != nil {
		s.writeAutomationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	orgID, ok := s.requireOrg(w, r)
	if !ok {
		return
	}
	partitionID, ok := pathInt64(w, r, "partition_id", writeAutomationBadRequest)
	if !ok {
		return
	}
	resp, err := s.automation.Handler.ListTemplatesHandler(r.Context(), orgID, partitionID)
	if err != nil {
		s.writeAutomationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeAutomationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, automationerrors.ErrTemplateNotFound):
		writeJSON(w, http.StatusNotFound, automationhttp.ErrorResponse{Error: err.Error()})
	case errors.Is(err, automationerrors.ErrInvalidTemplateInput),
		errors.Is(err, automationerrors.ErrUnknownChannel),
		errors.Is(err, automationerrors.ErrUnknownTriggerType):
		writeJSON(w, http.StatusBadRequest, automationhttp.ErrorResponse{Error: err.Error()})
	default:
		s.logger.Error("automation endpoint failed",
			"event", "http_automation_endpoint_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeJSON(w, http.StatusInternalServerError, automationhttp.ErrorResponse{Error: "internal server error"})
	}
}

func writeAutomationBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, automationhttp.ErrorResponse{Error: message})
}
