// Package reconcile merges the two overlapping record sources (salary
// records plus legacy expenses on one side, unified transactions on
// the other) into a single FinancialSummary. Summarize is pure: it
// does no I/O and cannot fail, since malformed amounts are zeroed on
// entry.
package reconcile

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"finsight/internal/core"
)

// Income source labels reported in DataQuality.
const (
	SourceSalary       = "salary"
	SourceTransactions = "transactions"
	SourceMax          = "max"
)

var oneHundred = decimal.NewFromInt(100)

// Inputs carries the five per-user record sets. Order is irrelevant;
// missing data is an empty slice.
type Inputs struct {
	Salaries       []core.SalaryRecord
	LegacyExpenses []core.LegacyExpense
	Transactions   []core.Transaction
	Budgets        []core.Budget
	Goals          []core.Goal
}

// expenseRow is an expense after source merging, category normalized
// and amount coerced.
type expenseRow struct {
	amount   decimal.Decimal
	category string
	date     time.Time
}

// Summarize reconciles the inputs into a FinancialSummary under the
// given thresholds.
//
// Income: salary records are the primary source. When they sum to
// zero, transaction income is used instead. When both are present and
// disagree by more than max(salaryIncome*DiscrepancyPct,
// DiscrepancyFloor), the larger total wins so that the presumably more
// complete source is never silently lost.
//
// Expenses: transaction expenses are always kept. A legacy expense is
// dropped as a duplicate when some transaction expense matches it on
// amount (difference below AmountTolerance), normalized category
// (exact, case-sensitive) and date (within DateWindow). Non-matching
// legacy expenses are kept.
func Summarize(in Inputs, cfg Config) core.FinancialSummary {
	salaryIncome := decimal.Zero
	for _, s := range in.Salaries {
		salaryIncome = salaryIncome.Add(core.ValidateAmount(s.Amount))
	}

	transactionIncome := decimal.Zero
	var txnExpenses []expenseRow
	for _, t := range in.Transactions {
		amount := core.ValidateAmount(t.Amount)
		switch t.Type {
		case core.TypeIncome:
			transactionIncome = transactionIncome.Add(amount)
		case core.TypeExpense:
			txnExpenses = append(txnExpenses, expenseRow{
				amount:   amount,
				category: core.NormalizeCategory(t.Category),
				date:     t.TransactionDate,
			})
		}
	}

	totalIncome, incomeSource, method := reconcileIncome(salaryIncome, transactionIncome, cfg)

	expenses, duplicates := dedupeExpenses(in.LegacyExpenses, txnExpenses, cfg)

	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.amount)
	}

	netSavings := totalIncome.Sub(totalExpenses)
	savingsRate := 0.0
	if totalIncome.IsPositive() {
		savingsRate = core.RoundRate(netSavings.Div(totalIncome).Mul(oneHundred))
	}

	return core.FinancialSummary{
		TotalIncome:       core.RoundWhole(totalIncome),
		TotalExpenses:     core.RoundWhole(totalExpenses),
		NetSavings:        core.RoundWhole(netSavings),
		SavingsRate:       savingsRate,
		CategoryBreakdown: breakdown(expenses, cfg.TopCategories),
		BudgetStatus:      budgetStatus(in.Budgets),
		GoalProgress:      goalProgress(in.Goals),
		DataQuality: core.DataQuality{
			SalaryRecords:     len(in.Salaries),
			LegacyExpenses:    len(in.LegacyExpenses),
			Transactions:      len(in.Transactions),
			DuplicatesRemoved: duplicates,
			IncomeSource:      incomeSource,
			Method:            method,
		},
	}
}

func reconcileIncome(salary, transaction decimal.Decimal, cfg Config) (decimal.Decimal, string, string) {
	if salary.IsZero() {
		return transaction, SourceTransactions, "no salary records, transaction income used as fallback"
	}

	threshold := decimal.Max(salary.Mul(cfg.DiscrepancyPct), cfg.DiscrepancyFloor)
	if transaction.Sub(salary).Abs().GreaterThan(threshold) {
		return decimal.Max(salary, transaction), SourceMax,
			"income sources diverged beyond threshold, larger total kept"
	}
	return salary, SourceSalary, "salary records primary, transaction income within tolerance"
}

// dedupeExpenses keeps every transaction expense and appends only the
// legacy expenses that match none of them. The pairwise scan is fine
// for per-user volumes.
func dedupeExpenses(legacy []core.LegacyExpense, txns []expenseRow, cfg Config) ([]expenseRow, int) {
	merged := make([]expenseRow, len(txns))
	copy(merged, txns)

	duplicates := 0
	for _, l := range legacy {
		row := expenseRow{
			amount:   core.ValidateAmount(l.Amount),
			category: core.NormalizeCategory(l.Category),
			date:     l.ExpenseDate,
		}
		if matchesAny(row, txns, cfg) {
			duplicates++
			continue
		}
		merged = append(merged, row)
	}
	return merged, duplicates
}

func matchesAny(l expenseRow, txns []expenseRow, cfg Config) bool {
	for _, t := range txns {
		if l.amount.Sub(t.amount).Abs().LessThan(cfg.AmountTolerance) &&
			l.category == t.category &&
			withinWindow(l.date, t.date, cfg.DateWindow) {
			return true
		}
	}
	return false
}

func withinWindow(a, b time.Time, window time.Duration) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= window
}

// breakdown groups expenses by category, drops non-positive sums, and
// returns the top-n categories by amount, ties broken by name so the
// output is deterministic.
func breakdown(expenses []expenseRow, top int) []core.CategoryAmount {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		totals[e.category] = totals[e.category].Add(e.amount)
	}

	rows := make([]core.CategoryAmount, 0, len(totals))
	for category, sum := range totals {
		if !sum.IsPositive() {
			continue
		}
		amount, _ := sum.Float64()
		rows = append(rows, core.CategoryAmount{Category: category, Amount: amount})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount != rows[j].Amount {
			return rows[i].Amount > rows[j].Amount
		}
		return rows[i].Category < rows[j].Category
	})

	if len(rows) > top {
		rows = rows[:top]
	}
	return rows
}

func budgetStatus(budgets []core.Budget) []core.BudgetStatus {
	var out []core.BudgetStatus
	for _, b := range budgets {
		limit := core.ValidateAmount(b.MonthlyLimit)
		if !limit.IsPositive() {
			continue
		}
		spent := core.ValidateAmount(b.CurrentSpent)
		out = append(out, core.BudgetStatus{
			Category:   core.NormalizeCategory(b.Category),
			Spent:      core.RoundWhole(spent),
			Limit:      core.RoundWhole(limit),
			Percentage: core.RoundWhole(spent.Div(limit).Mul(oneHundred)),
		})
	}
	return out
}

func goalProgress(goals []core.Goal) []core.GoalProgress {
	var out []core.GoalProgress
	for _, g := range goals {
		target := core.ValidateAmount(g.TargetAmount)
		if !target.IsPositive() {
			continue
		}
		current := core.ValidateAmount(g.CurrentAmount)
		out = append(out, core.GoalProgress{
			Title:    g.Title,
			Progress: core.RoundWhole(current.Div(target).Mul(oneHundred)),
			Current:  core.RoundWhole(current),
			Target:   core.RoundWhole(target),
		})
	}
	return out
}
