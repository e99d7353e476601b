package http

import (
	"errors"
	"net/http"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/render"
)

// Query-string keywords of the form protocol.
const (
	paramSession = "sessionid"
	paramSchema  = "schema"
	paramField   = "field"
	paramValue   = "value"
)

// Form handles GET /. With no session it opens one for the requested (or default)
// schema; with a session and a field it submits value; otherwise it re-renders.
func (s *Server) Form(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var (
		resp *domain.Response
		err  error
	)
	if !q.Has(paramSession) {
		name := q.Get(paramSchema)
		if name == "" {
			name = s.pickSchema()
		}
		if name == "" {
			s.message(w, http.StatusBadRequest, "no schema selected")
			return
		}
		resp, err = s.Host.Create(ctx, name)
	} else if field := q.Get(paramField); field != "" {
		resp, err = s.Host.Submit(ctx, q.Get(paramSession), field, q.Get(paramValue))
	} else {
		resp, err = s.Host.Get(ctx, q.Get(paramSession))
	}

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionNotFound):
			s.message(w, http.StatusNotFound, "invalid session")
		case errors.Is(err, domain.ErrUnknownSchema):
			s.message(w, http.StatusNotFound, "unknown schema")
		default:
			s.logger.Error("Form request failed", "err", err)
			s.message(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	page := render.Page{
		Title:     resp.Schema,
		Action:    r.URL.Path,
		SessionID: resp.SessionID,
		Notice:    resp.Notice,
	}
	if resp.Target != nil {
		page.Field = resp.Target.Field
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.RenderPage(s.Pages, w, page, resp.Ops); err != nil {
		s.logger.Error("Page render failed", "session_id", resp.SessionID, "err", err)
	}
}

// pickSchema falls back to the default schema, or to the only one registered.
func (s *Server) pickSchema() string {
	if s.defaultSchema != "" {
		return s.defaultSchema
	}
	if infos := s.Host.Schemas(); len(infos) == 1 {
		return infos[0].Name
	}
	return ""
}

func (s *Server) message(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.Pages.Execute(w, render.TemplateMessage, render.Message{Title: "arbor", Message: msg}); err != nil {
		s.logger.Error("Message render failed", "err", err)
	}
}
