package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/groblegark/kforms/internal/model"
)

// handleCreateRecord handles POST /v1/records/{recordType}/{tenantId}.
func (s *FormsServer) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	recordType := r.PathValue("recordType")
	tenantID := r.PathValue("tenantId")

	var in model.Record
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	in.TenantID = tenantID
	in.RecordType = recordType

	rec, err := s.createRecord(r.Context(), &in)
	if err != nil {
		writeDomainError(w, err, "failed to create record")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"record": rec})
}

// handleListRecords handles GET /v1/records/{recordType}/{tenantId}?limit=&offset=.
func (s *FormsServer) handleListRecords(w http.ResponseWriter, r *http.Request) {
	recordType := r.PathValue("recordType")
	tenantID := r.PathValue("tenantId")

	filter := model.RecordFilter{Limit: 100}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = n
	}

	records, total, err := s.listRecords(r.Context(), tenantID, recordType, filter)
	if err != nil {
		writeDomainError(w, err, "failed to list records")
		return
	}
	if records == nil {
		records = []*model.Record{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"records": records, "total": total})
}

// handleGetRecord handles GET /v1/records/{recordType}/{tenantId}/{id}.
func (s *FormsServer) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.getRecord(r.Context(), r.PathValue("tenantId"), r.PathValue("recordType"), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err, "failed to get record")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"record": rec})
}

// handleUpdateRecord handles PATCH /v1/records/{recordType}/{tenantId}/{id}.
// Only the attributes present in the body are replaced.
func (s *FormsServer) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	var patch struct {
		Name   *string         `json:"name"`
		URI    *string         `json:"uri"`
		Fields json.RawMessage `json:"fields"`
	}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := s.getRecord(r.Context(), r.PathValue("tenantId"), r.PathValue("recordType"), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err, "failed to update record")
		return
	}

	if patch.Name != nil {
		rec.Name = *patch.Name
	}
	if patch.URI != nil {
		rec.URI = *patch.URI
	}
	if patch.Fields != nil {
		rec.Fields = patch.Fields
	}

	rec, err = s.updateRecord(r.Context(), rec)
	if err != nil {
		writeDomainError(w, err, "failed to update record")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"record": rec})
}

// handleDeleteRecord handles DELETE /v1/records/{recordType}/{tenantId}/{id}.
func (s *FormsServer) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	err := s.deleteRecord(r.Context(), r.PathValue("tenantId"), r.PathValue("recordType"), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err, "failed to delete record")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
