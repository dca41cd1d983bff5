package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"finsight/internal/core"
	"finsight/internal/records"
)

const dateLayout = "2006-01-02"

var _ records.Store = (*SQLiteRepository)(nil)

// SQLiteRepository persists the five record types. Amounts are stored
// as TEXT and pass through core.ValidateAmount on scan, so a corrupted
// row degrades to a zero amount instead of failing the read.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) CreateSalary(ctx context.Context, record *core.SalaryRecord) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO salary_records (user_id, amount, received_date, salary_month, is_bonus, description)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.UserID,
		record.Amount.String(),
		record.ReceivedDate.Format(dateLayout),
		record.SalaryMonth,
		record.IsBonus,
		record.Description,
	)
	if err != nil {
		return fmt.Errorf("insert salary record: %w", err)
	}
	record.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("salary record id: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) CreateLegacyExpense(ctx context.Context, expense *core.LegacyExpense) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO legacy_expenses (user_id, amount, category, expense_date, description)
		 VALUES (?, ?, ?, ?, ?)`,
		expense.UserID,
		expense.Amount.String(),
		expense.Category,
		expense.ExpenseDate.Format(dateLayout),
		expense.Description,
	)
	if err != nil {
		return fmt.Errorf("insert legacy expense: %w", err)
	}
	expense.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("legacy expense id: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, txn *core.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (user_id, amount, type, category, transaction_date, description)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		txn.UserID,
		txn.Amount.String(),
		string(txn.Type),
		txn.Category,
		txn.TransactionDate.Format(dateLayout),
		txn.Description,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	txn.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("transaction id: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) CreateBudget(ctx context.Context, budget *core.Budget) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (user_id, category, monthly_limit, current_spent)
		 VALUES (?, ?, ?, ?)`,
		budget.UserID,
		budget.Category,
		budget.MonthlyLimit.String(),
		budget.CurrentSpent.String(),
	)
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	budget.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("budget id: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) CreateGoal(ctx context.Context, goal *core.Goal) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (user_id, title, target_amount, current_amount)
		 VALUES (?, ?, ?, ?)`,
		goal.UserID,
		goal.Title,
		goal.TargetAmount.String(),
		goal.CurrentAmount.String(),
	)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	goal.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("goal id: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Salaries(ctx context.Context, userID string) ([]core.SalaryRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, amount, received_date, salary_month, is_bonus, description
		 FROM salary_records WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query salary records: %w", err)
	}
	defer rows.Close()

	out := []core.SalaryRecord{}
	for rows.Next() {
		var rec core.SalaryRecord
		var amount, received string
		if err := rows.Scan(&rec.ID, &rec.UserID, &amount, &received, &rec.SalaryMonth, &rec.IsBonus, &rec.Description); err != nil {
			return nil, fmt.Errorf("scan salary record: %w", err)
		}
		rec.Amount = core.ValidateAmount(amount)
		rec.ReceivedDate = parseDate(received)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate salary records: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) LegacyExpenses(ctx context.Context, userID string) ([]core.LegacyExpense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, amount, category, expense_date, description
		 FROM legacy_expenses WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query legacy expenses: %w", err)
	}
	defer rows.Close()

	out := []core.LegacyExpense{}
	for rows.Next() {
		var exp core.LegacyExpense
		var amount, date string
		if err := rows.Scan(&exp.ID, &exp.UserID, &amount, &exp.Category, &date, &exp.Description); err != nil {
			return nil, fmt.Errorf("scan legacy expense: %w", err)
		}
		exp.Amount = core.ValidateAmount(amount)
		exp.ExpenseDate = parseDate(date)
		out = append(out, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legacy expenses: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Transactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, amount, type, category, transaction_date, description
		 FROM transactions WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	out := []core.Transaction{}
	for rows.Next() {
		var txn core.Transaction
		var amount, txnType, date string
		if err := rows.Scan(&txn.ID, &txn.UserID, &amount, &txnType, &txn.Category, &date, &txn.Description); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txn.Amount = core.ValidateAmount(amount)
		txn.Type = core.TransactionType(txnType)
		txn.TransactionDate = parseDate(date)
		out = append(out, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Budgets(ctx context.Context, userID string) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, category, monthly_limit, current_spent
		 FROM budgets WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	out := []core.Budget{}
	for rows.Next() {
		var b core.Budget
		var limit, spent string
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &limit, &spent); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.MonthlyLimit = core.ValidateAmount(limit)
		b.CurrentSpent = core.ValidateAmount(spent)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Goals(ctx context.Context, userID string) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, target_amount, current_amount
		 FROM goals WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	out := []core.Goal{}
	for rows.Next() {
		var g core.Goal
		var target, current string
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &target, &current); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.TargetAmount = core.ValidateAmount(target)
		g.CurrentAmount = core.ValidateAmount(current)
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return out, nil
}

// parseDate tolerates malformed stored dates the same way amounts are
// tolerated: a bad value reads as the zero time rather than an error.
func parseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
