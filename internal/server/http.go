package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/groblegark/kforms/internal/model"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *FormsServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/schemas/{recordType}/{tenantId}", s.handleGetSchema)
	mux.HandleFunc("POST /v1/schemas/{recordType}/{tenantId}", s.handleAddField)
	mux.HandleFunc("DELETE /v1/schemas/{recordType}/{tenantId}", s.handleRemoveField)
	mux.HandleFunc("GET /v1/forms", s.handleListForms)
	mux.HandleFunc("POST /v1/forms", s.handleCreateForm)
	mux.HandleFunc("GET /v1/records/{recordType}/{tenantId}", s.handleListRecords)
	mux.HandleFunc("POST /v1/records/{recordType}/{tenantId}", s.handleCreateRecord)
	mux.HandleFunc("GET /v1/records/{recordType}/{tenantId}/{id}", s.handleGetRecord)
	mux.HandleFunc("PATCH /v1/records/{recordType}/{tenantId}/{id}", s.handleUpdateRecord)
	mux.HandleFunc("DELETE /v1/records/{recordType}/{tenantId}/{id}", s.handleDeleteRecord)
	mux.HandleFunc("GET /v1/events", s.handleListEvents)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return AuthMiddleware(authToken, RecoveryMiddleware(mux))
}

// handleHealth handles GET /v1/health.
func (s *FormsServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListEvents handles GET /v1/events?customerId=&recordType=.
func (s *FormsServer) handleListEvents(w http.ResponseWriter, r *http.Request) {
	tenantID := r.URL.Query().Get("customerId")
	if tenantID == "" {
		writeError(w, http.StatusBadRequest, "customerId is required")
		return
	}

	evts, err := s.store.GetEvents(r.Context(), tenantID, r.URL.Query().Get("recordType"))
	if err != nil {
		slog.Error("failed to list events", "tenant", tenantID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}
	if evts == nil {
		evts = []*model.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": evts})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDomainError maps a service-layer error to an HTTP response:
// validation and input errors to 400, not-found to 404, and everything
// else to an opaque 500 with the detail logged only.
func writeDomainError(w http.ResponseWriter, err error, fallback string) {
	var (
		ve *model.ValidationError
		ie inputError
		ne notFoundError
	)
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.As(err, &ie):
		writeError(w, http.StatusBadRequest, ie.Error())
	case errors.As(err, &ne):
		writeError(w, http.StatusNotFound, ne.Error())
	default:
		slog.Error(fallback, "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}
