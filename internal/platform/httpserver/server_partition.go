package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	partitionerrors "leadrail/contexts/sales-core/partition-service/domain/errors"
	partitionhttp "leadrail/contexts/sales-core/partition-service/transport/http"
)

func (s *Server) registerPartitionRoutes() {
	s.mux.HandleFunc("POST /api/v1/partitions", s.handleCreatePartition)
	s.mux.HandleFunc("GET /api/v1/partitions/{partition_id}", s.handleGetPartition)
	s.mux.HandleFunc("GET /api/v1/workspaces/{workspace_id}/partitions", s.handleListPartitions)
	s.mux.HandleFunc("PUT /api/v1/partitions/{partition_id}/distribution", s.handleUpdateDistribution)
	s.mux.HandleFunc("PUT /api/v1/partitions/{partition_id}/duplicate-check-field", s.handleSetDuplicateCheckField)
	s.mux.HandleFunc("POST /api/v1/field-definitions", s.handleAddFieldDefinition)
	s.mux.HandleFunc("GET /api/v1/workspaces/{workspace_id}/field-definitions", s.handleListFieldDefinitions)
}

// handleCreatePartition godoc
// @Summary      Create a partition in a workspace
// @Tags         partitions
// @Accept       json
// @Produce      json
// @Param        X-Org-Id  header    string                            true  "Organization ID"
// @Param        request   body      http.CreatePartitionRequest       true  "Partition"
// @Success      200  {object}  http.PartitionResponse
// @Failure      400  {object}  http.ErrorResponse
// @Router       /api/v1/partitions [post]
func (s *Server) handleCreatePartition(w http.ResponseWriter, r *http.Request) {
	orgID, ok := s.requireOrg(w, r)
	if !ok {
		return
	}
	var req partitionhttp.CreatePartitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePartitionBadRequest(w, "request body must be valid JSON")
		return
	}
	resp, err := s.partitions.Handler.CreatePartitionHandler(r.Context(), orgID, req)
	if err != nil {
		s.writePartitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetPartition godoc
// @Summary      Fetch one partition with its distribution settings
// @Tags         partitions
// @Produce      json
// @Param        partition_id  path    int     true  "Partition ID"
// @Param        X-Org-Id      header  string  true  "Organization ID"
// @Success      200  {object}  http.PartitionResponse
// @Failure      404  {object}  http.ErrorResponse
// @Router       /api/v1/partitions/{partition_id} [get]
func (s *Server) handleGetPartition(w http.ResponseWriter, r *http.Request) {
	orgID, ok := s.requireOrg(w, r)
	if !ok {
		return
	}
	partitionID, ok := pathInt64(w, r, "partition_id", writePartitionBadRequest)
	if !ok {
		return
	}
	resp, err := s.partitions.Handler.GetPartitionHandler(r.Context(), orgID, partitionID)
	if err != nil {
		s.writePartitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPartitions(w http.ResponseWriter, r *http.Request) {
	orgID, ok := s.requireOrg(w, r)
	if !ok {
		return
	}
	workspaceID, ok := pathInt64(w, r, "workspace_id", writePartitionBadRequest)
	if !ok {
		return
	}
	resp, err := s.partitions.Handler.ListPartitionsHandler(r.Context(), orgID, workspaceID)
	if err != nil {
		s.writePartitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleUpdateDistribution godoc
// @Summary      Update a partition's round-robin distribution settings
// @Tags         partitions
// @Accept       json
// @Produce      json
// @Param        partition_id  path      int                                 true  "Partition ID"
// @Param        X-Org-Id      header    string                              true  "Organization ID"
// @Param        request       body      http.UpdateDistributionRequest      true  "Distribution settings"
// @Success      200  {object}  http.PartitionResponse
// @Failure      400  {object}  http.ErrorResponse
// @Router       /api/v1/partitions/{partition_id}/distribution [put]
func (s *Server) handleUpdateDistribution(w http.ResponseWriter, r *http.Request) {
	orgID, ok := s.requireOrg(w, r)
	if !ok {
		return
	}
	partitionID, ok := pathInt64(w, r, "partition_id", writePartitionBadRequest)
	if !ok {
		return
	}
	var req partitionhttp.UpdateDistributionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePartitionBadRequest(w, "request body must be valid JSON")
		return
	}
	resp, err := s.partitions.Handler.UpdateDistributionHandler(r.Context(), orgID, partitionID, req)
	if err != nil {
		s.writePartitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSetDuplicateCheckField(w http.ResponseWriter, r *http.Request) {
	orgID, ok := s.requireOrg(w, r)
	if !ok {
		return
	}
	partitionID, ok := pathInt64(w, r, "partition_id", writePartitionBadRequest)
	if !ok {
		return
	}
	var req partitionhttp.SetDuplicateCheckFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePartitionBadRequest(w, "request body must be valid JSON")
		return
	}
	resp, err := s.partitions.Handler.SetDuplicateCheckFieldHandler(r.Context(), orgID, partitionID, req)
	if err != nil {
		s.writePartitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddFieldDefinition(w http.ResponseWriter, r *http.Request) {
	orgID, ok := s.requireOrg(w, r)
	if !ok {
		return
	}
	var req partitionhttp.AddFieldDefinitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePartitionBadRequest(w, "request body must be valid JSON")
		return
	}
	resp, err := s.partitions.Handler.AddFieldDefinitionHandler(r.Context(), orgID, req)
	if err != nil {
		s.writePartitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListFieldDefinitions(w http.ResponseWriter, r *http.Request) {
	orgID, ok := s.requireOrg(w, r)
	if !ok {
		return
	}
	workspaceID, ok := pathInt64(w, r, "workspace_id", writePartitionBadRequest)
	if !ok {
		return
	}
	resp, err := s.partitions.Handler.ListFieldDefinitionsHandler(r.Context(), orgID, workspaceID)
	if err != nil {
		s.writePartitionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writePartitionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, partitionerrors.ErrWorkspaceNotFound),
		errors.Is(err, partitionerrors.ErrPartitionNotFound):
		writeJSON(w, http.StatusNotFound, partitionhttp.ErrorResponse{Error: err.Error()})
	case errors.Is(err, partitionerrors.ErrInvalidPartitionInput),
		errors.Is(err, partitionerrors.ErrDistributionRangeInvalid),
		errors.Is(err, partitionerrors.ErrInvalidFieldDefinition),
		errors.Is(err, partitionerrors.ErrDuplicateCheckFieldInvalid):
		writeJSON(w, http.StatusBadRequest, partitionhttp.ErrorResponse{Error: err.Error()})
	case errors.Is(err, partitionerrors.ErrFieldDefinitionExists):
		writeJSON(w, http.StatusConflict, partitionhttp.ErrorResponse{Error: err.Error()})
	default:
		s.logger.Error("partition endpoint failed",
			"event", "http_partition_endpoint_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"error", err.Error(),
		)
		writeJSON(w, http.StatusInternalServerError, partitionhttp.ErrorResponse{Error: "internal server error"})
	}
}

func writePartitionBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, partitionhttp.ErrorResponse{Error: message})
}
