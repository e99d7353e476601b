package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/runner"
)

const reloadBackoff = 2 * time.Second

// RunWatch runs a form from --dir and reloads the schemas whenever a document changes.
// The session is kept in the store across reloads and resumed against the new schema;
// when its values no longer fit, a fresh session is started.
func RunWatch(ctx context.Context, opts RunOptions, stdio IO) error {
	logger := createLogger(opts.Debug)
	tui.PrintBanner(stdio.Out, arbor.Version)

	b, err := OpenBackend(opts.Options)
	if err != nil {
		return err
	}
	defer b.Close()

	signals := runner.NewSignalManager(ctx)
	defer signals.Stop()

	// One handler for every iteration so a single goroutine reads the input.
	handler := newHandler(opts, stdio, isTerminal(stdio.Out))
	w := &watcher{opts: opts, stdio: stdio, backend: b, handler: handler, logger: logger, sessionID: opts.SessionID}

	logger.Info("Starting watcher", "dir", opts.Dir)
	fmt.Fprintf(stdio.Out, ">>> Watching '%s'.\n", opts.Dir)
	for w.iterate(signals.Context()) {
		logger.Info("Watcher restarting")
	}
	return nil
}

type watcher struct {
	opts      RunOptions
	stdio     IO
	backend   *Backend
	handler   runner.IOHandler
	logger    *slog.Logger
	sessionID string
}

type runResult struct {
	resp *domain.Response
	err  error
}

// iterate runs the form once and reports whether the watcher should start again.
func (w *watcher) iterate(parent context.Context) bool {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	eng, src, err := createEngine(ctx, w.opts.Options, w.backend, w.logger, domain.LifecycleHooks{})
	if err != nil {
		w.logger.Error("Engine initialization failed", "err", err)
		fmt.Fprintf(w.stdio.Out, ">>> %v\n", err)
		select {
		case <-parent.Done():
			return false
		case <-time.After(reloadBackoff):
			return true
		}
	}

	changes, err := src.Watch(ctx)
	if err != nil {
		w.logger.Warn("Watch unavailable", "err", err)
	}

	r := runner.New(runner.WithInputHandler(w.handler), runner.WithLogger(w.logger))
	done := make(chan runResult, 1)
	go func() {
		resp, err := w.run(ctx, r, eng)
		done <- runResult{resp, err}
	}()

	select {
	case <-parent.Done():
		<-done
		fmt.Fprintf(w.stdio.Out, "\n>>> Interrupted. Resume with --session %s\n", w.sessionID)
		return false
	case id, ok := <-changes:
		cancel()
		<-done
		if !ok {
			return false
		}
		fmt.Fprintf(w.stdio.Out, "\n>>> Change detected in '%s'.\n", id)
		return true
	case res := <-done:
		if res.err != nil && !errors.Is(res.err, context.Canceled) {
			w.logger.Error("Runtime error", "err", res.err)
			fmt.Fprintf(w.stdio.Out, ">>> %v\n", res.err)
		}
		if res.resp != nil && res.resp.Complete {
			// Completed forms start over on the next change.
			w.sessionID = ""
		}
		fmt.Fprintln(w.stdio.Out, ">>> Waiting for changes...")
		select {
		case <-parent.Done():
			return false
		case _, ok := <-changes:
			return ok
		}
	}
}

func (w *watcher) run(ctx context.Context, r *runner.Runner, eng *arbor.Engine) (*domain.Response, error) {
	if w.sessionID != "" {
		resp, err := r.Run(ctx, eng, w.sessionID)
		if err == nil || errors.Is(err, context.Canceled) {
			return resp, err
		}
		w.logger.Warn("Session could not be resumed, starting over", "session_id", w.sessionID, "err", err)
		_ = eng.Invalidate(ctx, w.sessionID)
	}

	name, err := pickSchema(eng, w.opts.Schema)
	if err != nil {
		return nil, err
	}
	resp, err := eng.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	w.sessionID = resp.SessionID
	fmt.Fprintf(w.stdio.Out, ">>> Session '%s' active.\n", resp.SessionID)
	return r.Run(ctx, eng, resp.SessionID)
}
