// Package worker applies expense mutation events to a sheet mirror.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"expenses/internal/events"
	"expenses/internal/sheets"
)

type MirrorWorker struct {
	mirror sheets.Mirror
}

func New(mirror sheets.Mirror) *MirrorWorker {
	return &MirrorWorker{mirror: mirror}
}

// Handle applies one mutation message to the mirror. Unknown message types
// are logged and acknowledged so they are not redelivered forever.
func (w *MirrorWorker) Handle(ctx context.Context, msg *events.MutationMessage) error {
	switch msg.Type {
	case events.MutationRecorded:
		e, err := msg.Expense()
		if err != nil {
			return fmt.Errorf("decode recorded expense: %w", err)
		}
		if err := w.mirror.Append(ctx, e); err != nil {
			return fmt.Errorf("mirror append: %w", err)
		}
		return nil
	case events.MutationDeleted:
		if err := w.mirror.Remove(ctx, msg.ID); err != nil {
			return fmt.Errorf("mirror remove: %w", err)
		}
		return nil
	case events.MutationCleared:
		if err := w.mirror.Clear(ctx); err != nil {
			return fmt.Errorf("mirror clear: %w", err)
		}
		return nil
	default:
		slog.WarnContext(ctx, "Skipping unknown mutation type", "type", msg.Type)
		return nil
	}
}
