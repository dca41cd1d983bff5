// Package ledger defines the export pipeline for record writes: every
// created record becomes an Entry that is published to a queue and
// eventually appended to an external ledger sheet.
package ledger

import (
	"context"
	"time"
)

// Record kinds carried by an Entry.
const (
	KindSalary      = "salary"
	KindExpense     = "expense"
	KindTransaction = "transaction"
	KindBudget      = "budget"
	KindGoal        = "goal"
)

// Entry is one row of the exported ledger.
type Entry struct {
	UserID      string    `json:"user_id"`
	Kind        string    `json:"kind"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category,omitempty"`
	Date        string    `json:"date,omitempty"` // YYYY-MM-DD
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type (
	// Publisher hands an entry to the export queue.
	Publisher interface {
		PublishEntry(ctx context.Context, entry Entry) error
	}

	// Appender writes an entry to the external ledger and returns a
	// reference to the appended row.
	Appender interface {
		Append(ctx context.Context, entry Entry) (rowRef string, err error)
	}
)
