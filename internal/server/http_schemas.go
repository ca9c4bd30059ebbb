package server

import (
	"encoding/json"
	"net/http"

	"github.com/groblegark/kforms/internal/model"
)

// handleGetSchema handles GET /v1/schemas/{recordType}/{tenantId}.
func (s *FormsServer) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	recordType := r.PathValue("recordType")
	tenantID := r.PathValue("tenantId")

	schema, err := s.getSchema(r.Context(), tenantID, recordType)
	if err != nil {
		writeDomainError(w, err, "failed to get schema")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"schema": schema})
}

// handleAddField handles POST /v1/schemas/{recordType}/{tenantId}.
func (s *FormsServer) handleAddField(w http.ResponseWriter, r *http.Request) {
	recordType := r.PathValue("recordType")
	tenantID := r.PathValue("tenantId")

	var in model.FieldInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	schema, err := s.addField(r.Context(), tenantID, recordType, in)
	if err != nil {
		writeDomainError(w, err, "failed to add field")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"schema": schema})
}

// handleRemoveField handles DELETE /v1/schemas/{recordType}/{tenantId}.
// The field name comes from the fieldName query parameter or, failing
// that, a {"fieldName": ...} request body.
func (s *FormsServer) handleRemoveField(w http.ResponseWriter, r *http.Request) {
	recordType := r.PathValue("recordType")
	tenantID := r.PathValue("tenantId")

	fieldName := r.URL.Query().Get("fieldName")
	if fieldName == "" {
		var body struct {
			FieldName string `json:"fieldName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			fieldName = body.FieldName
		}
	}

	schema, err := s.removeField(r.Context(), tenantID, recordType, fieldName)
	if err != nil {
		writeDomainError(w, err, "failed to remove field")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"schema": schema})
}
