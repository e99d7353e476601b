// Package http is the HTTP gateway of the form engine.
//
// It serves two protocols over the same ports.SessionHost:
//
//   - GET /?sessionid=&field=&value=&schema= returns the current pass as an HTML page.
//     Without a sessionid a new session is opened; the form posts its answer back to
//     the same URL.
//   - A JSON API under /api, described by the OpenAPI document at /openapi.yaml.
//     Requests are validated against that document before they reach a handler.
//
// Session changes are streamed to subscribers as server-sent events when the engine's
// OnChange hook is bound to StreamManager.Publish.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/render"
)

// Server binds a SessionHost to HTTP.
type Server struct {
	Host    ports.SessionHost
	Streams *StreamManager
	Pages   *render.Cache

	defaultSchema string
	metrics       http.Handler
	logger        *slog.Logger
	apiVersion    string
	validate      func(http.Handler) http.Handler
}

// Option configures the Server.
type Option func(*Server)

// WithStreams shares a StreamManager, typically the one bound to the engine's OnChange hook.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithPages replaces the template cache.
func WithPages(c *render.Cache) Option {
	return func(s *Server) {
		s.Pages = c
	}
}

// WithDefaultSchema sets the schema opened by GET / when the query names none.
func WithDefaultSchema(name string) Option {
	return func(s *Server) {
		s.defaultSchema = name
	}
}

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer builds a Server, parsing the page templates and the OpenAPI document.
func NewServer(host ports.SessionHost, opts ...Option) (*Server, error) {
	s := &Server{Host: host}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager(s.logger)
	}
	if s.Pages == nil {
		pages, err := render.NewCache()
		if err != nil {
			return nil, err
		}
		s.Pages = pages
	}

	doc, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	s.apiVersion = doc.Info.Version
	router, err := newSpecRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build OpenAPI router: %w", err)
	}
	s.validate = requestValidator(router)
	return s, nil
}

// NewHandler is shorthand for NewServer followed by Handler.
func NewHandler(host ports.SessionHost, opts ...Option) (http.Handler, error) {
	s, err := NewServer(host, opts...)
	if err != nil {
		return nil, err
	}
	return s.Handler(), nil
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(s.validate)

		r.Get("/", s.Form)
		r.Get("/health", s.GetHealth)
		r.Get("/info", s.GetInfo)

		r.Route("/api", func(r chi.Router) {
			r.Get("/schemas", s.ListSchemas)
			r.Post("/sessions", s.CreateSession)
			r.Route("/sessions/{id}", func(r chi.Router) {
				r.Get("/", s.GetSession)
				r.Delete("/", s.DeleteSession)
				r.Post("/fields", s.SubmitField)
				r.Get("/events", s.SubscribeEvents)
			})
		})
	})
	return r
}

// Serve runs handler on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "address", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logger.Info("Shutdown signal received, stopping HTTP server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>arbor API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "arbor-http",
		"version":     strings.TrimSpace(arbor.Version),
		"api_version": s.apiVersion,
	})
}

// statusFor maps host errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrUnknownSchema):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
