package insights

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"finsight/internal/core"
	"finsight/internal/reconcile"
	"finsight/internal/records"
)

// Service runs the full insight pipeline: fan-out fetch of the five
// record sets, reconciliation, prompt generation and reply validation.
// Requests are stateless; per-user isolation comes from scoping every
// read with the user ID.
type Service struct {
	store     records.Reader
	generator Generator
	cfg       reconcile.Config
}

func NewService(store records.Reader, generator Generator, cfg reconcile.Config) *Service {
	return &Service{store: store, generator: generator, cfg: cfg}
}

// Response is the insight pipeline output.
type Response struct {
	Insights []Insight             `json:"insights"`
	Summary  core.FinancialSummary `json:"summary"`
	Debug    core.DataQuality      `json:"debug"`
}

// Summarize fetches and reconciles a user's records without calling
// the generator.
func (s *Service) Summarize(ctx context.Context, userID string) (core.FinancialSummary, error) {
	inputs, err := s.fetch(ctx, userID)
	if err != nil {
		return core.FinancialSummary{}, err
	}
	return reconcile.Summarize(inputs, s.cfg), nil
}

// GenerateInsights produces the four-insight response for a user. Any
// fetch failure aborts the whole request before aggregation, and a
// malformed generator reply is rejected rather than repaired.
func (s *Service) GenerateInsights(ctx context.Context, userID string) (*Response, error) {
	inputs, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := reconcile.Summarize(inputs, s.cfg)
	slog.InfoContext(ctx, "Records reconciled",
		"user_id", userID,
		"income_source", summary.DataQuality.IncomeSource,
		"duplicates_removed", summary.DataQuality.DuplicatesRemoved)

	prompt, err := BuildPrompt(summary)
	if err != nil {
		return nil, &GenerationError{Reason: "build prompt", Err: err}
	}

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	items, err := ParseInsights(raw)
	if err != nil {
		return nil, err
	}

	return &Response{
		Insights: items,
		Summary:  summary,
		Debug:    summary.DataQuality,
	}, nil
}

// fetch issues the five independent reads concurrently and joins
// before aggregation. The first failure cancels the rest.
func (s *Service) fetch(ctx context.Context, userID string) (reconcile.Inputs, error) {
	var in reconcile.Inputs

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.store.Salaries(ctx, userID)
		if err != nil {
			return &FetchError{Source: "salary records", Err: err}
		}
		in.Salaries = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.LegacyExpenses(ctx, userID)
		if err != nil {
			return &FetchError{Source: "legacy expenses", Err: err}
		}
		in.LegacyExpenses = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.Transactions(ctx, userID)
		if err != nil {
			return &FetchError{Source: "transactions", Err: err}
		}
		in.Transactions = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.Budgets(ctx, userID)
		if err != nil {
			return &FetchError{Source: "budgets", Err: err}
		}
		in.Budgets = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.store.Goals(ctx, userID)
		if err != nil {
			return &FetchError{Source: "goals", Err: err}
		}
		in.Goals = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return reconcile.Inputs{}, err
	}
	return in, nil
}
