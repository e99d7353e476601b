package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/registry"
)

// Validate compiles every configured schema and lists them on out.
func Validate(ctx context.Context, opts Options, out io.Writer) ([]registry.Info, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	b := &Backend{}
	eng, _, err := createEngine(ctx, opts, b, createLogger(opts.Debug), domain.LifecycleHooks{})
	if err != nil {
		return nil, err
	}
	infos := eng.Schemas()
	for _, info := range infos {
		fmt.Fprintf(out, "- %s: %s\n", info.Name, info.Description)
	}
	return infos, nil
}
