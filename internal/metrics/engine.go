package metrics

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/ripplepay/ripple/internal/model"
)

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// Engine derives ripple metrics from expense amounts under a fixed profile.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	profile Profile
}

// NewEngine validates p and returns an Engine bound to it.
func NewEngine(p Profile) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Engine{profile: p}, nil
}

// Profile returns the profile the engine was built with.
func (e *Engine) Profile() Profile {
	return e.profile
}

// RippleScore returns amount as a whole percentage of the monthly budget.
// Amounts above the budget score above 100.
func (e *Engine) RippleScore(amount decimal.Decimal) int64 {
	n, _ := roundQuo(amount.Mul(hundred), e.profile.MonthlyBudget)
	return n
}

// GoalDelay returns how many days of the daily saving goal amount represents.
func (e *Engine) GoalDelay(amount decimal.Decimal) int64 {
	n, _ := roundQuo(amount, e.profile.DailySavingGoal)
	return n
}

// StressImpact classifies amount as high stress when it exceeds the threshold.
func (e *Engine) StressImpact(amount decimal.Decimal) model.StressLevel {
	if amount.GreaterThan(e.profile.StressThreshold) {
		return model.StressHigh
	}
	return model.StressLow
}

// SavingSuggestion returns the cost of repeating the purchase SavingMultiplier times.
func (e *Engine) SavingSuggestion(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(e.profile.SavingMultiplier))
}

// Compute validates amount and derives all four metrics from it.
func (e *Engine) Compute(amount decimal.Decimal) (model.Metrics, error) {
	if err := ValidateAmount(amount); err != nil {
		return model.Metrics{}, err
	}
	return e.compute(amount)
}

// Stamp validates a draft and returns the record it becomes. The record has
// no ID until a store assigns one.
func (e *Engine) Stamp(d model.Draft) (model.ExpenseRecord, error) {
	if verrs := ValidateDraft(d); len(verrs) > 0 {
		return model.ExpenseRecord{}, fmt.Errorf("validation failed: %w", verrs)
	}
	m, err := e.compute(d.Amount)
	if err != nil {
		verrs := ValidationErrors{{Field: "amount", Description: err.Error(), Err: err}}
		return model.ExpenseRecord{}, fmt.Errorf("validation failed: %w", verrs)
	}
	return model.ExpenseRecord{
		Amount:    d.Amount,
		Category:  d.Category,
		Mood:      d.Mood,
		Reason:    d.Reason,
		Timestamp: d.Timestamp,
		Metrics:   m,
	}, nil
}

// compute derives the metrics, failing when a whole-number metric would not
// fit in an int64 under this profile.
func (e *Engine) compute(amount decimal.Decimal) (model.Metrics, error) {
	ripple, okRipple := roundQuo(amount.Mul(hundred), e.profile.MonthlyBudget)
	delay, okDelay := roundQuo(amount, e.profile.DailySavingGoal)
	if !okRipple || !okDelay {
		return model.Metrics{}, fmt.Errorf("%w: %s overflows the derived metrics", ErrAmountTooLarge, amount)
	}
	return model.Metrics{
		RippleScore:      ripple,
		GoalDelay:        delay,
		StressImpact:     e.StressImpact(amount),
		SavingSuggestion: e.SavingSuggestion(amount),
	}, nil
}

// roundQuo returns num/den rounded half away from zero. den must be positive.
// The quotient is never materialized as a fraction, so ties are exact.
// Results outside int64 saturate and report false.
func roundQuo(num, den decimal.Decimal) (int64, bool) {
	if num.IsNegative() {
		n, ok := roundQuo(num.Neg(), den)
		return -n, ok
	}
	q, r := num.QuoRem(den, 0)
	if r.Mul(two).GreaterThanOrEqual(den) {
		q = q.Add(decimal.NewFromInt(1))
	}
	if !q.BigInt().IsInt64() {
		return math.MaxInt64, false
	}
	return q.IntPart(), true
}
