package records

import (
	"context"

	"finsight/internal/core"
)

// Ports for record storage. Readers return an empty slice, never an
// error, when a user has no rows.
type (
	Reader interface {
		Salaries(ctx context.Context, userID string) ([]core.SalaryRecord, error)
		LegacyExpenses(ctx context.Context, userID string) ([]core.LegacyExpense, error)
		Transactions(ctx context.Context, userID string) ([]core.Transaction, error)
		Budgets(ctx context.Context, userID string) ([]core.Budget, error)
		Goals(ctx context.Context, userID string) ([]core.Goal, error)
	}

	Writer interface {
		CreateSalary(ctx context.Context, record *core.SalaryRecord) error
		CreateLegacyExpense(ctx context.Context, expense *core.LegacyExpense) error
		CreateTransaction(ctx context.Context, txn *core.Transaction) error
		CreateBudget(ctx context.Context, budget *core.Budget) error
		CreateGoal(ctx context.Context, goal *core.Goal) error
	}

	Store interface {
		Reader
		Writer
	}
)
