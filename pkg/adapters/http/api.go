package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type createSessionRequest struct {
	Schema string `json:"schema"`
}

type submitFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// ListSchemas handles GET /api/schemas.
func (s *Server) ListSchemas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Host.Schemas())
}

// CreateSession handles POST /api/sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	resp, err := s.Host.Create(r.Context(), body.Schema)
	if err != nil {
		s.fail(w, "CreateSession", err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// GetSession handles GET /api/sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	resp, err := s.Host.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, "GetSession", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SubmitField handles POST /api/sessions/{id}/fields.
// A rejected value answers 422 with the unchanged pass and a notice.
func (s *Server) SubmitField(w http.ResponseWriter, r *http.Request) {
	var body submitFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	resp, err := s.Host.Submit(r.Context(), chi.URLParam(r, "id"), body.Field, body.Value)
	if err != nil {
		s.fail(w, "SubmitField", err)
		return
	}
	status := http.StatusOK
	if resp.Notice != "" {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

// DeleteSession handles DELETE /api/sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Host.Invalidate(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, "DeleteSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	}
	writeError(w, status, err)
}
