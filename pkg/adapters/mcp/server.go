// Package mcp exposes form sessions as Model Context Protocol tools so an agent can
// fill a form one field at a time.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/aretw0/arbor/pkg/render"
)

// SchemasURI is the resource listing the registered schemas.
const SchemasURI = "arbor://schemas"

// FormResponse mirrors the JSON API response and adds a Markdown rendering of the pass.
type FormResponse struct {
	domain.Response
	Markdown string `json:"markdown" jsonschema_description:"The current pass rendered as Markdown"`
}

// SchemaList is the result of list_schemas.
type SchemaList struct {
	Schemas []registry.Info `json:"schemas" jsonschema_description:"Registered schemas"`
}

type startArgs struct {
	Schema string `json:"schema"`
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
}

type submitArgs struct {
	SessionID string `json:"session_id"`
	Field     string `json:"field"`
	Value     string `json:"value"`
}

// Server wraps a SessionHost and exposes it as an MCP Server.
type Server struct {
	host      ports.SessionHost
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(host ports.SessionHost, opts ...Option) *Server {
	s := &Server{
		host:      host,
		mcpServer: server.NewMCPServer("arbor-mcp", strings.TrimSpace(arbor.Version), server.WithToolCapabilities(false)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_schemas",
		mcp.WithDescription("List the forms that can be started."),
		mcp.WithOutputSchema[SchemaList](),
	), mcp.NewStructuredToolHandler(s.handleListSchemas))

	s.mcpServer.AddTool(mcp.NewTool("start_form",
		mcp.WithDescription("Start a new form session. The result names the one field to fill next."),
		mcp.WithString("schema", mcp.Required(), mcp.Description("Name of the schema to fill")),
		mcp.WithOutputSchema[FormResponse](),
	), mcp.NewStructuredToolHandler(s.handleStart))

	s.mcpServer.AddTool(mcp.NewTool("get_form",
		mcp.WithDescription("Show the current state of a form session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session returned by start_form")),
		mcp.WithOutputSchema[FormResponse](),
	), mcp.NewStructuredToolHandler(s.handleGet))

	s.mcpServer.AddTool(mcp.NewTool("submit_field",
		mcp.WithDescription("Answer the pending field of a form session. Choice fields take one of the offered codes. A rejected answer is explained in notice."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session returned by start_form")),
		mcp.WithString("field", mcp.Required(), mcp.Description("The pending field, as given in target.field")),
		mcp.WithString("value", mcp.Required(), mcp.Description("The answer: an option code for choices, free text for entries")),
		mcp.WithOutputSchema[FormResponse](),
	), mcp.NewStructuredToolHandler(s.handleSubmit))

	s.mcpServer.AddTool(mcp.NewTool("cancel_form",
		mcp.WithDescription("Discard a form session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to discard")),
	), mcp.NewTypedToolHandler(s.handleCancel))
}

func (s *Server) handleListSchemas(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (SchemaList, error) {
	return SchemaList{Schemas: s.host.Schemas()}, nil
}

func (s *Server) handleStart(ctx context.Context, request mcp.CallToolRequest, args startArgs) (FormResponse, error) {
	resp, err := s.host.Create(ctx, args.Schema)
	if err != nil {
		return FormResponse{}, fmt.Errorf("start failed: %w", err)
	}
	return wrap(resp), nil
}

func (s *Server) handleGet(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (FormResponse, error) {
	resp, err := s.host.Get(ctx, args.SessionID)
	if err != nil {
		return FormResponse{}, fmt.Errorf("get failed: %w", err)
	}
	return wrap(resp), nil
}

func (s *Server) handleSubmit(ctx context.Context, request mcp.CallToolRequest, args submitArgs) (FormResponse, error) {
	resp, err := s.host.Submit(ctx, args.SessionID, args.Field, args.Value)
	if err != nil {
		return FormResponse{}, fmt.Errorf("submit failed: %w", err)
	}
	if resp.Notice != "" {
		s.logger.Debug("MCP Submit: Input rejected", "session_id", args.SessionID, "field", args.Field, "notice", resp.Notice)
	}
	return wrap(resp), nil
}

func (s *Server) handleCancel(ctx context.Context, request mcp.CallToolRequest, args sessionArgs) (*mcp.CallToolResult, error) {
	if err := s.host.Invalidate(ctx, args.SessionID); err != nil {
		return mcp.NewToolResultErrorf("cancel failed: %v", err), nil
	}
	return mcp.NewToolResultText("session " + args.SessionID + " cancelled"), nil
}

func wrap(resp *domain.Response) FormResponse {
	return FormResponse{Response: *resp, Markdown: render.Markdown(resp.Ops)}
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(SchemasURI, "Registered schemas",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.host.Schemas())
		if err != nil {
			return nil, fmt.Errorf("failed to encode schemas: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      SchemasURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
