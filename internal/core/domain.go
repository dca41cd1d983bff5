package core

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// TypeIncome marks a transaction that adds money.
	TypeIncome TransactionType = "income"
	// TypeExpense marks a transaction that removes money.
	TypeExpense TransactionType = "expense"
)

// DefaultCategory is assigned to records whose category is blank.
const DefaultCategory = "Other"

type (
	TransactionType string

	// SalaryRecord is one salary or bonus payment event.
	SalaryRecord struct {
		ID           int64           `json:"id"`
		UserID       string          `json:"user_id"`
		Amount       decimal.Decimal `json:"amount"`
		ReceivedDate time.Time       `json:"received_date"`
		SalaryMonth  string          `json:"salary_month"` // YYYY-MM
		IsBonus      bool            `json:"is_bonus"`
		Description  string          `json:"description,omitempty"`
	}

	// LegacyExpense is an expense from the older category-only entry
	// path, pre-dating the unified transaction model.
	LegacyExpense struct {
		ID          int64           `json:"id"`
		UserID      string          `json:"user_id"`
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"`
		ExpenseDate time.Time       `json:"expense_date"`
		Description string          `json:"description,omitempty"`
	}

	// Transaction is the unified income-or-expense record that
	// supersedes the separate salary and expense tables. It may
	// duplicate a LegacyExpense when the same event was entered twice.
	Transaction struct {
		ID              int64           `json:"id"`
		UserID          string          `json:"user_id"`
		Amount          decimal.Decimal `json:"amount"`
		Type            TransactionType `json:"type"`
		Category        string          `json:"category"`
		TransactionDate time.Time       `json:"transaction_date"`
		Description     string          `json:"description,omitempty"`
	}

	Budget struct {
		ID           int64           `json:"id"`
		UserID       string          `json:"user_id"`
		Category     string          `json:"category"`
		MonthlyLimit decimal.Decimal `json:"monthly_limit"`
		CurrentSpent decimal.Decimal `json:"current_spent"`
	}

	Goal struct {
		ID            int64           `json:"id"`
		UserID        string          `json:"user_id"`
		Title         string          `json:"title"`
		TargetAmount  decimal.Decimal `json:"target_amount"`
		CurrentAmount decimal.Decimal `json:"current_amount"`
	}
)

var (
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidSalaryMonth = errors.New("invalid salary month")
	ErrZeroDate           = errors.New("date cannot be zero")
	ErrEmptyTitle         = errors.New("empty title")
	ErrEmptyCategory      = errors.New("empty category")
)

var salaryMonthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// NormalizeCategory trims whitespace and maps blank categories to
// DefaultCategory. Every category entering aggregation passes through
// here so that duplicate comparison and grouping agree.
func NormalizeCategory(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultCategory
	}
	return s
}

func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

func (r SalaryRecord) Validate() error {
	if r.ReceivedDate.IsZero() {
		return ErrZeroDate
	}
	if !salaryMonthPattern.MatchString(r.SalaryMonth) {
		return ErrInvalidSalaryMonth
	}
	return nil
}

func (e LegacyExpense) Validate() error {
	if e.ExpenseDate.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.TransactionDate.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}
