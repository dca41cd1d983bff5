package reconcile

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Config tunes the reconciliation thresholds. The defaults encode the
// product policy; Validate guards against a misconfigured override
// silently merging unrelated records.
type Config struct {
	// DiscrepancyPct is the fraction of salary income above which the
	// two income sources are judged materially inconsistent.
	DiscrepancyPct decimal.Decimal

	// DiscrepancyFloor is the minimum absolute discrepancy, in
	// currency units, regardless of how small the salary income is.
	DiscrepancyFloor decimal.Decimal

	// AmountTolerance is the maximum amount difference (exclusive)
	// for two expense records to count as the same event.
	AmountTolerance decimal.Decimal

	// DateWindow is the maximum date distance for two expense records
	// to count as the same event.
	DateWindow time.Duration

	// TopCategories caps the category breakdown length.
	TopCategories int
}

// DefaultConfig returns the standard reconciliation thresholds:
// a 10% income discrepancy with a floor of 1000 units, expense
// duplicates within 1 unit and 7 days, and a 6-row breakdown.
func DefaultConfig() Config {
	return Config{
		DiscrepancyPct:   decimal.NewFromFloat(0.10),
		DiscrepancyFloor: decimal.NewFromInt(1000),
		AmountTolerance:  decimal.NewFromInt(1),
		DateWindow:       7 * 24 * time.Hour,
		TopCategories:    6,
	}
}

func (c Config) Validate() error {
	if c.DiscrepancyPct.IsNegative() {
		return fmt.Errorf("discrepancy percentage cannot be negative: %s", c.DiscrepancyPct)
	}
	if c.DiscrepancyFloor.IsNegative() {
		return fmt.Errorf("discrepancy floor cannot be negative: %s", c.DiscrepancyFloor)
	}
	if c.AmountTolerance.IsNegative() {
		return fmt.Errorf("amount tolerance cannot be negative: %s", c.AmountTolerance)
	}
	if c.DateWindow < 0 {
		return fmt.Errorf("date window cannot be negative: %s", c.DateWindow)
	}
	if c.TopCategories < 1 {
		return fmt.Errorf("top categories must be at least 1: %d", c.TopCategories)
	}
	return nil
}
