package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/registry"
)

// SessionHost is the driving port used by gateways (HTTP, MCP, terminal).
// Implementations serialise every call per session.
type SessionHost interface {
	// Create opens a session for the named schema and runs its first pass.
	Create(ctx context.Context, schema string) (*domain.Response, error)
	// Get re-renders a session without changing it.
	Get(ctx context.Context, sessionID string) (*domain.Response, error)
	// Submit applies value to field and runs the next pass. Rejected input is
	// reported in Response.Notice, not as an error.
	Submit(ctx context.Context, sessionID, field, value string) (*domain.Response, error)
	// Invalidate removes the session. Unknown sessions are not an error.
	Invalidate(ctx context.Context, sessionID string) error
	// Schemas lists the registered schemas.
	Schemas() []registry.Info
}
