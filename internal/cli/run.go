package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/runner"
)

// IO bundles the streams used by interactive commands.
type IO struct {
	In  io.Reader
	Out io.Writer
}

// StdIO returns the process streams.
func StdIO() IO {
	return IO{In: os.Stdin, Out: os.Stdout}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Execute handles the 'run' command logic, dispatching to Session or Watch mode.
func Execute(ctx context.Context, opts RunOptions, stdio IO) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if opts.Watch {
		return RunWatch(ctx, opts, stdio)
	}
	return RunSession(ctx, opts, stdio)
}

// RunSession fills one form from stdio. Interrupts and exhausted input end the
// command without error and leave the session resumable.
func RunSession(ctx context.Context, opts RunOptions, stdio IO) error {
	logger := createLogger(opts.Debug)
	interactive := !opts.JSON && !opts.Headless && isTerminal(stdio.Out)

	if interactive {
		tui.PrintBanner(stdio.Out, arbor.Version)
	}

	b, err := OpenBackend(opts.Options)
	if err != nil {
		return err
	}
	defer b.Close()

	eng, _, err := createEngine(ctx, opts.Options, b, logger, domain.LifecycleHooks{})
	if err != nil {
		return err
	}

	signals := runner.NewSignalManager(ctx)
	defer signals.Stop()

	r := runner.New(
		runner.WithInputHandler(newHandler(opts, stdio, interactive)),
		runner.WithLogger(logger),
		runner.WithHeadless(opts.Headless),
		runner.WithSignals(signals),
	)

	resp, err := start(signals.Context(), r, eng, opts)
	return finish(stdio, opts, resp, err)
}

func newHandler(opts RunOptions, stdio IO, interactive bool) runner.IOHandler {
	if opts.JSON {
		return runner.NewJSONHandler(stdio.In, stdio.Out)
	}
	var hopts []runner.TextHandlerOption
	if interactive {
		hopts = append(hopts, runner.WithTextHandlerRenderer(tui.NewRenderer()))
	}
	return runner.NewTextHandler(stdio.In, stdio.Out, hopts...)
}

// start resumes --session when it names a stored session and creates a new one
// otherwise. --fresh discards the stored session first.
func start(ctx context.Context, r *runner.Runner, eng *arbor.Engine, opts RunOptions) (*domain.Response, error) {
	if opts.SessionID != "" {
		if opts.Fresh {
			if err := eng.Invalidate(ctx, opts.SessionID); err != nil {
				return nil, err
			}
		} else {
			resp, err := r.Run(ctx, eng, opts.SessionID)
			if !errors.Is(err, domain.ErrSessionNotFound) {
				return resp, err
			}
		}
	}

	name, err := pickSchema(eng, opts.Schema)
	if err != nil {
		return nil, err
	}
	return r.Start(ctx, eng, name)
}

// pickSchema returns name, or the only registered schema when name is empty.
func pickSchema(eng *arbor.Engine, name string) (string, error) {
	if name != "" {
		return name, nil
	}
	infos := eng.Schemas()
	if len(infos) != 1 {
		names := make([]string, len(infos))
		for i, info := range infos {
			names[i] = info.Name
		}
		return "", fmt.Errorf("several schemas are registered, choose one with --schema: %v", names)
	}
	return infos[0].Name, nil
}

func finish(stdio IO, opts RunOptions, resp *domain.Response, err error) error {
	if errors.Is(err, context.Canceled) {
		if !opts.Headless && !opts.JSON && resp != nil {
			fmt.Fprintf(stdio.Out, "\n>>> Interrupted. Resume with --session %s\n", resp.SessionID)
		}
		return nil
	}
	if err != nil {
		return err
	}
	if resp != nil && !resp.Complete && !opts.Headless && !opts.JSON {
		fmt.Fprintf(stdio.Out, ">>> Input closed. Resume with --session %s\n", resp.SessionID)
	}
	return nil
}
