package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"finsight/internal/ledger"
	"finsight/internal/ledger/memory"
)

type failingAppender struct {
	err error
}

func (f *failingAppender) Append(context.Context, ledger.Entry) (string, error) {
	return "", f.err
}

func TestExportWorker_HandleEntry(t *testing.T) {
	store := memory.New()
	w := NewExportWorker(store)

	entry := ledger.Entry{
		UserID:    "u1",
		Kind:      ledger.KindTransaction,
		Amount:    "12.30",
		Category:  "Groceries",
		Date:      "2025-06-15",
		CreatedAt: time.Now().UTC(),
	}

	if err := w.HandleEntry(context.Background(), entry); err != nil {
		t.Fatalf("HandleEntry() error = %v", err)
	}

	got := store.Entries()
	if len(got) != 1 {
		t.Fatalf("appended entries = %d, want 1", len(got))
	}
	if got[0].UserID != "u1" || got[0].Kind != ledger.KindTransaction {
		t.Errorf("appended entry = %+v", got[0])
	}
}

func TestExportWorker_HandleEntry_MissingUser(t *testing.T) {
	store := memory.New()
	w := NewExportWorker(store)

	err := w.HandleEntry(context.Background(), ledger.Entry{Kind: ledger.KindGoal, Amount: "100"})
	if err != nil {
		t.Fatalf("HandleEntry() error = %v, want nil for entry without user", err)
	}
	if len(store.Entries()) != 0 {
		t.Error("entry without user should not be appended")
	}
}

func TestExportWorker_HandleEntry_AppendError(t *testing.T) {
	appendErr := errors.New("sheet unavailable")
	w := NewExportWorker(&failingAppender{err: appendErr})

	err := w.HandleEntry(context.Background(), ledger.Entry{
		UserID: "u1",
		Kind:   ledger.KindSalary,
		Amount: "2500",
	})
	if !errors.Is(err, appendErr) {
		t.Fatalf("HandleEntry() error = %v, want wrapped %v", err, appendErr)
	}
}
