package httpserver

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	automationservice "leadrail/contexts/engagement/automation-service"
	automationmemory "leadrail/contexts/engagement/automation-service/adapters/memory"
	liveservice "leadrail/contexts/engagement/live-service"
	partitionservice "leadrail/contexts/sales-core/partition-service"
	partitionmemory "leadrail/contexts/sales-core/partition-service/adapters/memory"
	recordservice "leadrail/contexts/sales-core/record-service"
	recordmemory "leadrail/contexts/sales-core/record-service/adapters/memory"
	recorderrors "leadrail/contexts/sales-core/record-service/domain/errors"
	recordhttp "leadrail/contexts/sales-core/record-service/transport/http"
	planservice "leadrail/contexts/tenant-core/plan-service"
	planmemory "leadrail/contexts/tenant-core/plan-service/adapters/memory"
)

func newTestServer(enableSwagger bool) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(
		recordservice.NewInMemoryModule(recordmemory.Seed{}, recordservice.Dependencies{Logger: logger}),
		partitionservice.NewInMemoryModule(partitionmemory.Seed{}, logger),
		planservice.NewInMemoryModule(planmemory.Seed{}, logger),
		automationservice.NewInMemoryModule(automationmemory.Seed{}, automationservice.Dependencies{Logger: logger}),
		liveservice.NewModule(nil, logger),
		logger,
		":0",
		enableSwagger,
	)
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) recordhttp.ErrorResponse {
	t.Helper()
	var body recordhttp.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestWriteRecordDomainErrorStatusMapping(t *testing.T) {
	s := newTestServer(false)

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"partition not found", recorderrors.ErrPartitionNotFound, http.StatusNotFound},
		{"record not found", recorderrors.ErrRecordNotFound, http.StatusNotFound},
		{"invalid input", recorderrors.ErrInvalidRecordInput, http.StatusBadRequest},
		{"plan limit", &recorderrors.PlanLimitError{Resource: "records", Limit: 5}, http.StatusForbidden},
		{"duplicate", &recorderrors.DuplicateError{Field: "phone", Value: "010"}, http.StatusConflict},
		{"distribution misconfigured", recorderrors.ErrDistributionConfig, http.StatusInternalServerError},
		{"storage failure", fmt.Errorf("pq: relation \"records\" does not exist"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.writeRecordDomainError(rec, tc.err)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestWriteRecordDomainErrorHidesServerErrors(t *testing.T) {
	s := newTestServer(false)

	rec := httptest.NewRecorder()
	s.writeRecordDomainError(rec, recorderrors.ErrDistributionConfig)
	body := decodeErrorBody(t, rec)
	if body.Error != "internal server error" {
		t.Fatalf("error body = %q, want generic message", body.Error)
	}

	rec = httptest.NewRecorder()
	s.writeRecordDomainError(rec, fmt.Errorf("pq: connection refused"))
	body = decodeErrorBody(t, rec)
	if strings.Contains(body.Error, "pq:") {
		t.Fatalf("error body leaked storage detail: %q", body.Error)
	}
}

func TestSwaggerMountGatedByFlag(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)

	rec := httptest.NewRecorder()
	newTestServer(false).mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("swagger disabled: status = %d, want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	newTestServer(true).mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("swagger enabled: status = %d, want 200", rec.Code)
	}
}
