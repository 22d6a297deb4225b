package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ripplepay/ripple/internal/id"
	"github.com/ripplepay/ripple/internal/model"
)

// Integrity checks run over stored expenses.
const (
	CheckAmount   = "amount"
	CheckCategory = "category"
	CheckMood     = "mood"
	CheckMetrics  = "metrics"
	CheckID       = "id"
)

// IntegrityError describes a single stored expense that breaks a ledger rule.
type IntegrityError struct {
	Check       string
	ExpenseID   string
	Description string
}

func (e IntegrityError) Error() string {
	return fmt.Sprintf("%s [%s]: %s", e.Check, e.ExpenseID, e.Description)
}

// Recomputer derives metrics for an amount. *metrics.Engine satisfies it.
type Recomputer interface {
	Compute(amount decimal.Decimal) (model.Metrics, error)
}

// ValidateRecords checks stored expenses: positive amounts, known category and
// mood, well-formed unique IDs dated on the expense's UTC day, and, when
// engine is non-nil, derived metrics that match a fresh computation.
func ValidateRecords(records []model.ExpenseRecord, engine Recomputer) []IntegrityError {
	var errs []IntegrityError
	seen := make(map[string]bool, len(records))

	for _, rec := range records {
		if !rec.Amount.IsPositive() {
			errs = append(errs, IntegrityError{
				Check:       CheckAmount,
				ExpenseID:   rec.ID,
				Description: fmt.Sprintf("amount %s is not positive", rec.Amount),
			})
		}

		if !rec.Category.Valid() {
			errs = append(errs, IntegrityError{
				Check:       CheckCategory,
				ExpenseID:   rec.ID,
				Description: fmt.Sprintf("unknown category %q", rec.Category),
			})
		}

		if !rec.Mood.Valid() {
			errs = append(errs, IntegrityError{
				Check:       CheckMood,
				ExpenseID:   rec.ID,
				Description: fmt.Sprintf("unknown mood %q", rec.Mood),
			})
		}

		if engine != nil && rec.Amount.IsPositive() {
			want, err := engine.Compute(rec.Amount)
			if err == nil && !metricsEqual(want, rec.Metrics) {
				errs = append(errs, IntegrityError{
					Check:     CheckMetrics,
					ExpenseID: rec.ID,
					Description: fmt.Sprintf("stored metrics (ripple %d, delay %d, stress %d, saving %s) differ from recomputed (ripple %d, delay %d, stress %d, saving %s)",
						rec.RippleScore, rec.GoalDelay, rec.StressImpact, rec.SavingSuggestion,
						want.RippleScore, want.GoalDelay, want.StressImpact, want.SavingSuggestion),
				})
			}
		}

		day, _, err := id.ParseExpenseID(rec.ID)
		switch {
		case err != nil:
			errs = append(errs, IntegrityError{
				Check:       CheckID,
				ExpenseID:   rec.ID,
				Description: err.Error(),
			})
		case seen[rec.ID]:
			errs = append(errs, IntegrityError{
				Check:       CheckID,
				ExpenseID:   rec.ID,
				Description: "duplicate expense ID",
			})
		case id.DayKey(day) != id.DayKey(rec.Timestamp):
			errs = append(errs, IntegrityError{
				Check:       CheckID,
				ExpenseID:   rec.ID,
				Description: fmt.Sprintf("ID day does not match timestamp %s", rec.Timestamp.UTC().Format("2006-01-02")),
			})
		}
		seen[rec.ID] = true
	}

	return errs
}

func metricsEqual(a, b model.Metrics) bool {
	return a.RippleScore == b.RippleScore &&
		a.GoalDelay == b.GoalDelay &&
		a.StressImpact == b.StressImpact &&
		a.SavingSuggestion.Equal(b.SavingSuggestion)
}
