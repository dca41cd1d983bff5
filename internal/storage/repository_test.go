package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finsight/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "finsight.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSalaryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	rec := &core.SalaryRecord{
		UserID:       "alice",
		Amount:       decimal.RequireFromString("50000.50"),
		ReceivedDate: time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC),
		SalaryMonth:  "2024-06",
		IsBonus:      true,
		Description:  "June salary plus bonus",
	}
	if err := repo.CreateSalary(ctx, rec); err != nil {
		t.Fatalf("CreateSalary: %v", err)
	}
	if rec.ID == 0 {
		t.Error("expected assigned ID")
	}

	got, err := repo.Salaries(ctx, "alice")
	if err != nil {
		t.Fatalf("Salaries: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if !got[0].Amount.Equal(rec.Amount) {
		t.Errorf("Amount = %s, want %s", got[0].Amount, rec.Amount)
	}
	if !got[0].ReceivedDate.Equal(rec.ReceivedDate) {
		t.Errorf("ReceivedDate = %v, want %v", got[0].ReceivedDate, rec.ReceivedDate)
	}
	if got[0].SalaryMonth != "2024-06" || !got[0].IsBonus {
		t.Errorf("row = %+v", got[0])
	}
}

func TestTransactionRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	txn := &core.Transaction{
		UserID:          "alice",
		Amount:          decimal.RequireFromString("129.99"),
		Type:            core.TypeExpense,
		Category:        "Food",
		TransactionDate: time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC),
	}
	if err := repo.CreateTransaction(ctx, txn); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	got, err := repo.Transactions(ctx, "alice")
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].Type != core.TypeExpense || !got[0].Amount.Equal(txn.Amount) {
		t.Errorf("row = %+v", got[0])
	}
}

func TestReadsScopedByUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if err := repo.CreateLegacyExpense(ctx, &core.LegacyExpense{
		UserID:      "alice",
		Amount:      decimal.NewFromInt(100),
		Category:    "Food",
		ExpenseDate: time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("CreateLegacyExpense: %v", err)
	}

	got, err := repo.LegacyExpenses(ctx, "bob")
	if err != nil {
		t.Fatalf("LegacyExpenses: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice for other user, got %#v", got)
	}
}

func TestBudgetAndGoalRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	if err := repo.CreateBudget(ctx, &core.Budget{
		UserID:       "alice",
		Category:     "Food",
		MonthlyLimit: decimal.NewFromInt(1000),
		CurrentSpent: decimal.NewFromInt(250),
	}); err != nil {
		t.Fatalf("CreateBudget: %v", err)
	}
	if err := repo.CreateGoal(ctx, &core.Goal{
		UserID:        "alice",
		Title:         "Emergency fund",
		TargetAmount:  decimal.NewFromInt(30000),
		CurrentAmount: decimal.NewFromInt(7500),
	}); err != nil {
		t.Fatalf("CreateGoal: %v", err)
	}

	budgets, err := repo.Budgets(ctx, "alice")
	if err != nil {
		t.Fatalf("Budgets: %v", err)
	}
	if len(budgets) != 1 || budgets[0].MonthlyLimit.String() != "1000" {
		t.Errorf("budgets = %+v", budgets)
	}

	goals, err := repo.Goals(ctx, "alice")
	if err != nil {
		t.Fatalf("Goals: %v", err)
	}
	if len(goals) != 1 || goals[0].Title != "Emergency fund" {
		t.Errorf("goals = %+v", goals)
	}
}
