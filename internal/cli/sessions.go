package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// ListSessions prints the stored session IDs.
func ListSessions(ctx context.Context, opts Options, out io.Writer) error {
	b, err := OpenBackend(opts)
	if err != nil {
		return err
	}
	defer b.Close()

	ids, err := b.Store.List(ctx)
	if err != nil {
		return fmt.Errorf("error listing sessions: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(out, "No sessions found.")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(out, "- "+id)
	}
	return nil
}

// InspectSession prints the stored state of a session as indented JSON.
func InspectSession(ctx context.Context, opts Options, sessionID string, out io.Writer) error {
	b, err := OpenBackend(opts)
	if err != nil {
		return err
	}
	defer b.Close()

	state, err := b.Store.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("error loading session '%s': %w", sessionID, err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}

// RemoveSessions deletes every named session, reporting each outcome.
func RemoveSessions(ctx context.Context, opts Options, ids []string, out io.Writer) error {
	b, err := OpenBackend(opts)
	if err != nil {
		return err
	}
	defer b.Close()

	failed := 0
	for _, id := range ids {
		if err := b.Store.Delete(ctx, id); err != nil {
			fmt.Fprintf(out, "Error removing '%s': %v\n", id, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "Removed session '%s'\n", id)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d sessions could not be removed", failed, len(ids))
	}
	return nil
}
