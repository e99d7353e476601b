package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// Runner handles the answer loop of a form session using the provided IO.
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on Stdin/Stdout.
	Handler IOHandler

	// Logger is used for internal debug logging.
	Logger *slog.Logger

	// Headless suppresses system messages.
	Headless bool

	// Signals, when set, is consulted before treating an input error as fatal.
	Signals *SignalManager
}

// New creates a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(nil, nil)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	return r
}

// Start creates a session for schema and runs it.
func (r *Runner) Start(ctx context.Context, host ports.SessionHost, schema string) (*domain.Response, error) {
	resp, err := host.Create(ctx, schema)
	if err != nil {
		return nil, err
	}
	r.system(ctx, fmt.Sprintf("session %s", resp.SessionID))
	return r.loop(ctx, host, resp)
}

// Run resumes an existing session until it completes, the input is exhausted or ctx
// is cancelled. Exhausted input is not an error: the last response is returned and
// the session stays resumable.
func (r *Runner) Run(ctx context.Context, host ports.SessionHost, sessionID string) (*domain.Response, error) {
	resp, err := host.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return r.loop(ctx, host, resp)
}

func (r *Runner) loop(ctx context.Context, host ports.SessionHost, resp *domain.Response) (*domain.Response, error) {
	for {
		if err := r.Handler.Output(ctx, resp); err != nil {
			return resp, fmt.Errorf("output failed: %w", err)
		}
		if resp.Complete || resp.Target == nil {
			r.Logger.Debug("form complete", "session_id", resp.SessionID)
			r.system(ctx, "form complete")
			return resp, nil
		}

		answer, err := r.Handler.Input(ctx)
		if err != nil {
			if r.Signals != nil {
				r.Signals.CheckRace()
				if r.Signals.Context().Err() != nil {
					return resp, context.Canceled
				}
			}
			if ctx.Err() != nil {
				return resp, ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				r.Logger.Debug("input exhausted", "session_id", resp.SessionID, "pending", resp.Target.Field)
				return resp, nil
			}
			return resp, fmt.Errorf("input failed: %w", err)
		}

		next, err := host.Submit(ctx, resp.SessionID, resp.Target.Field, answer)
		if err != nil {
			return resp, err
		}
		if next.Notice != "" {
			r.Logger.Debug("answer rejected", "field", resp.Target.Field, "notice", next.Notice)
		}
		resp = next
	}
}

func (r *Runner) system(ctx context.Context, msg string) {
	if r.Headless {
		return
	}
	if err := r.Handler.SystemOutput(ctx, msg); err != nil {
		r.Logger.Warn("system output failed", "err", err)
	}
}
