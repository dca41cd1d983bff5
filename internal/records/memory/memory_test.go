package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finsight/internal/core"
)

func TestStoreScopesByUser(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	alice := &core.Transaction{
		UserID:          "alice",
		Amount:          decimal.NewFromInt(100),
		Type:            core.TypeExpense,
		Category:        "Food",
		TransactionDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := store.CreateTransaction(ctx, alice); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if alice.ID == 0 {
		t.Error("expected assigned ID")
	}

	got, err := store.Transactions(ctx, "alice")
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(got) != 1 || got[0].Category != "Food" {
		t.Errorf("unexpected rows: %+v", got)
	}

	other, err := store.Transactions(ctx, "bob")
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if other == nil || len(other) != 0 {
		t.Errorf("expected empty non-nil slice for unknown user, got %#v", other)
	}
}

func TestStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	goal := &core.Goal{UserID: "alice", Title: "Car", TargetAmount: decimal.NewFromInt(5000)}
	if err := store.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	first, _ := store.Goals(ctx, "alice")
	first[0].Title = "mutated"

	second, _ := store.Goals(ctx, "alice")
	if second[0].Title != "Car" {
		t.Errorf("store row mutated through returned slice: %+v", second[0])
	}
}
