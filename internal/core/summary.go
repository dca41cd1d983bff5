package core

// FinancialSummary is the reconciled view of a user's finances.
// Headline figures are whole currency units; the savings rate keeps
// one decimal place.
type FinancialSummary struct {
	TotalIncome       int64            `json:"totalIncome"`
	TotalExpenses     int64            `json:"totalExpenses"`
	NetSavings        int64            `json:"netSavings"`
	SavingsRate       float64          `json:"savingsRate"`
	CategoryBreakdown []CategoryAmount `json:"categoryBreakdown"`
	BudgetStatus      []BudgetStatus   `json:"budgetStatus"`
	GoalProgress      []GoalProgress   `json:"goalProgress"`
	DataQuality       DataQuality      `json:"dataQuality"`
}

// CategoryAmount is one row of the expense breakdown, highest first.
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type BudgetStatus struct {
	Category   string `json:"category"`
	Spent      int64  `json:"spent"`
	Limit      int64  `json:"limit"`
	Percentage int64  `json:"percentage"`
}

type GoalProgress struct {
	Title    string `json:"title"`
	Progress int64  `json:"progress"`
	Current  int64  `json:"current"`
	Target   int64  `json:"target"`
}

// DataQuality records how the two overlapping data sources were
// reconciled, for diagnostics.
type DataQuality struct {
	SalaryRecords     int    `json:"salaryRecords"`
	LegacyExpenses    int    `json:"legacyExpenses"`
	Transactions      int    `json:"transactions"`
	DuplicatesRemoved int    `json:"duplicatesRemoved"`
	IncomeSource      string `json:"incomeSource"`
	Method            string `json:"method"`
}
