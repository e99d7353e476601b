package ports

import (
	"context"

	"github.com/aretw0/arbor/pkg/dsl"
)

// SchemaSource supplies schema definitions declared outside Go code.
type SchemaSource interface {
	// Definitions returns every definition the source holds.
	Definitions(ctx context.Context) ([]*dsl.Definition, error)
}

// Watchable is implemented by sources that can report changes to their definitions.
type Watchable interface {
	// Watch emits the ID of each changed document until ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
