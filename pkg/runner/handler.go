package runner

import (
	"context"

	"github.com/aretw0/arbor/pkg/domain"
)

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents one pass, including any notice about a rejected answer.
	Output(ctx context.Context, resp *domain.Response) error

	// Input reads the answer for the pending field.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message to the user (e.g. session id, completion).
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer is a function that transforms Markdown before it is written.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)
