package httpserver

import (
	"errors"
	"net/http"

	planerrors "leadrail/contexts/tenant-core/plan-service/domain/errors"
	planhttp "leadrail/contexts/tenant-core/plan-service/transport/http"
)

func (s *Server) registerPlanRoutes() {
	s.mux.HandleFunc("GET /api/v1/plan", s.handleGetPlan)
}

// handleGetPlan godoc
// @Summary      Fetch the organization's subscribed plan and limits
// @Tags         plans
// @Produce      json
// @Param        X-Org-Id  header  string  true  "Organization ID"
// @Success      200  {object}  http.PlanResponse
// @Failure      404  {object}  http.ErrorResponse
// @Router       /api/v1/plan [get]
func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	orgID, ok := s.requireOrg(w, r)
	if !ok {
		return
	}
	resp, err := s.plans.Handler.GetPlanHandler(r.Context(), orgID)
	if err != nil {
		s.writePlanDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writePlanDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, planerrors.ErrPlanNotFound),
		errors.Is(err, planerrors.ErrSubscriptionNotFound):
		writeJSON(w, http.StatusNotFound, planhttp.ErrorResponse{Error: err.Error()})
	default:
		s.logger.Error("plan endpoint failed",
			"event", "http_plan_endpoint_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeJSON(w, http.StatusInternalServerError, planhttp.ErrorResponse{Error: "internal server error"})
	}
}
