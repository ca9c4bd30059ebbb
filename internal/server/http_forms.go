package server

import (
	"encoding/json"
	"net/http"

	"github.com/groblegark/kforms/internal/model"
)

// handleListForms handles GET /v1/forms?customerId=.
func (s *FormsServer) handleListForms(w http.ResponseWriter, r *http.Request) {
	tenantID := r.URL.Query().Get("customerId")

	forms, err := s.listForms(r.Context(), tenantID)
	if err != nil {
		writeDomainError(w, err, "failed to list forms")
		return
	}
	if forms == nil {
		forms = []*model.Form{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"forms": forms})
}

// handleCreateForm handles POST /v1/forms.
func (s *FormsServer) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	var in model.Form
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form, err := s.createForm(r.Context(), &in)
	if err != nil {
		writeDomainError(w, err, "failed to create form")
		return
	}

	// The registration is the response body, unwrapped.
	writeJSON(w, http.StatusOK, form)
}
