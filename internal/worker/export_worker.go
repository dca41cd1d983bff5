// Package worker contains the background consumer that drains the
// ledger export queue into the external sheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"finsight/internal/ledger"
)

// ExportWorker appends consumed ledger entries to the configured
// sheet.
type ExportWorker struct {
	appender ledger.Appender
}

func NewExportWorker(appender ledger.Appender) *ExportWorker {
	return &ExportWorker{appender: appender}
}

// HandleEntry processes a single ledger entry from the queue.
// Returning an error requeues the entry.
func (w *ExportWorker) HandleEntry(ctx context.Context, entry ledger.Entry) error {
	if strings.TrimSpace(entry.UserID) == "" {
		// Unattributable rows are dropped rather than requeued forever.
		slog.WarnContext(ctx, "Dropping ledger entry without user", "kind", entry.Kind)
		return nil
	}

	ref, err := w.appender.Append(ctx, entry)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}

	slog.InfoContext(ctx, "Exported ledger entry",
		"kind", entry.Kind,
		"user_id", entry.UserID,
		"amount", entry.Amount,
		"row_ref", ref)

	return nil
}
