package insights

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finsight/internal/core"
	"finsight/internal/reconcile"
	"finsight/internal/records"
	"finsight/internal/records/memory"
)

type stubGenerator struct {
	reply string
	err   error

	lastPrompt string
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

type failingStore struct {
	records.Store
}

func (failingStore) Transactions(context.Context, string) ([]core.Transaction, error) {
	return nil, errors.New("connection refused")
}

func seedScenario(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }
	amt := decimal.RequireFromString

	if err := store.CreateSalary(ctx, &core.SalaryRecord{
		UserID: "alice", Amount: amt("50000"), ReceivedDate: day(28), SalaryMonth: "2024-06",
	}); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateTransaction(ctx, &core.Transaction{
		UserID: "alice", Amount: amt("50500"), Type: core.TypeIncome, TransactionDate: day(28),
	}); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateTransaction(ctx, &core.Transaction{
		UserID: "alice", Amount: amt("2000"), Type: core.TypeExpense, Category: "Food", TransactionDate: day(6),
	}); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateLegacyExpense(ctx, &core.LegacyExpense{
		UserID: "alice", Amount: amt("2000"), Category: "Food", ExpenseDate: day(5),
	}); err != nil {
		t.Fatal(err)
	}
	return store
}

func TestGenerateInsights(t *testing.T) {
	gen := &stubGenerator{reply: validReply}
	svc := NewService(seedScenario(t), gen, reconcile.DefaultConfig())

	got, err := svc.GenerateInsights(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GenerateInsights: %v", err)
	}

	if len(got.Insights) != InsightCount {
		t.Errorf("got %d insights, want %d", len(got.Insights), InsightCount)
	}
	if got.Summary.TotalIncome != 50000 {
		t.Errorf("TotalIncome = %d, want 50000", got.Summary.TotalIncome)
	}
	if got.Summary.TotalExpenses != 2000 {
		t.Errorf("TotalExpenses = %d, want 2000", got.Summary.TotalExpenses)
	}
	if got.Summary.NetSavings != 48000 {
		t.Errorf("NetSavings = %d, want 48000", got.Summary.NetSavings)
	}
	if got.Summary.SavingsRate != 96.0 {
		t.Errorf("SavingsRate = %v, want 96.0", got.Summary.SavingsRate)
	}
	if got.Debug.DuplicatesRemoved != 1 {
		t.Errorf("DuplicatesRemoved = %d, want 1", got.Debug.DuplicatesRemoved)
	}

	if !strings.Contains(gen.lastPrompt, `"totalIncome":50000`) {
		t.Error("prompt should embed the serialized summary figures")
	}
}

func TestGenerateInsightsRejectsMalformedReply(t *testing.T) {
	gen := &stubGenerator{reply: `[{"type":"positive","title":"only one","description":"d","metric":"1"}]`}
	svc := NewService(seedScenario(t), gen, reconcile.DefaultConfig())

	_, err := svc.GenerateInsights(context.Background(), "alice")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
}

func TestGenerateInsightsPropagatesGeneratorError(t *testing.T) {
	gen := &stubGenerator{err: &GenerationError{Reason: "timeout", Retryable: true}}
	svc := NewService(seedScenario(t), gen, reconcile.DefaultConfig())

	_, err := svc.GenerateInsights(context.Background(), "alice")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if !genErr.Retryable {
		t.Error("retryable flag lost in propagation")
	}
}

func TestGenerateInsightsFetchFailureIsFatal(t *testing.T) {
	gen := &stubGenerator{reply: validReply}
	svc := NewService(failingStore{Store: memory.NewStore()}, gen, reconcile.DefaultConfig())

	_, err := svc.GenerateInsights(context.Background(), "alice")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fetchErr.Source != "transactions" {
		t.Errorf("Source = %q, want transactions", fetchErr.Source)
	}
	if gen.lastPrompt != "" {
		t.Error("generator must not be called after a fetch failure")
	}
}

func TestSummarizeEmptyUser(t *testing.T) {
	svc := NewService(memory.NewStore(), &stubGenerator{reply: validReply}, reconcile.DefaultConfig())

	got, err := svc.Summarize(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got.TotalIncome != 0 || got.TotalExpenses != 0 || got.SavingsRate != 0 {
		t.Errorf("expected zero summary, got %+v", got)
	}
}
