// Package memory provides an in-process record store, used for tests
// and for running without a database.
package memory

import (
	"context"
	"sync"

	"finsight/internal/core"
	"finsight/internal/records"
)

var _ records.Store = (*Store)(nil)

type Store struct {
	mu     sync.RWMutex
	nextID int64

	salaries     map[string][]core.SalaryRecord
	expenses     map[string][]core.LegacyExpense
	transactions map[string][]core.Transaction
	budgets      map[string][]core.Budget
	goals        map[string][]core.Goal
}

func NewStore() *Store {
	return &Store{
		salaries:     make(map[string][]core.SalaryRecord),
		expenses:     make(map[string][]core.LegacyExpense),
		transactions: make(map[string][]core.Transaction),
		budgets:      make(map[string][]core.Budget),
		goals:        make(map[string][]core.Goal),
	}
}

func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) CreateSalary(_ context.Context, record *core.SalaryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = s.allocID()
	s.salaries[record.UserID] = append(s.salaries[record.UserID], *record)
	return nil
}

func (s *Store) CreateLegacyExpense(_ context.Context, expense *core.LegacyExpense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	expense.ID = s.allocID()
	s.expenses[expense.UserID] = append(s.expenses[expense.UserID], *expense)
	return nil
}

func (s *Store) CreateTransaction(_ context.Context, txn *core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	txn.ID = s.allocID()
	s.transactions[txn.UserID] = append(s.transactions[txn.UserID], *txn)
	return nil
}

func (s *Store) CreateBudget(_ context.Context, budget *core.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	budget.ID = s.allocID()
	s.budgets[budget.UserID] = append(s.budgets[budget.UserID], *budget)
	return nil
}

func (s *Store) CreateGoal(_ context.Context, goal *core.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	goal.ID = s.allocID()
	s.goals[goal.UserID] = append(s.goals[goal.UserID], *goal)
	return nil
}

func (s *Store) Salaries(_ context.Context, userID string) ([]core.SalaryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRows(s.salaries[userID]), nil
}

func (s *Store) LegacyExpenses(_ context.Context, userID string) ([]core.LegacyExpense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRows(s.expenses[userID]), nil
}

func (s *Store) Transactions(_ context.Context, userID string) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRows(s.transactions[userID]), nil
}

func (s *Store) Budgets(_ context.Context, userID string) ([]core.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRows(s.budgets[userID]), nil
}

func (s *Store) Goals(_ context.Context, userID string) ([]core.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRows(s.goals[userID]), nil
}

// copyRows returns a non-nil copy so callers cannot mutate the store
// and absent users read as an empty list.
func copyRows[T any](rows []T) []T {
	out := make([]T, len(rows))
	copy(out, rows)
	return out
}
