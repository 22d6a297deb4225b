package metrics

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidProfile is returned when a budget profile cannot drive the engine.
var ErrInvalidProfile = errors.New("invalid budget profile")

// Profile holds the budget constants the metrics are computed against.
type Profile struct {
	MonthlyBudget    decimal.Decimal
	DailySavingGoal  decimal.Decimal
	StressThreshold  decimal.Decimal // amounts strictly above this are high stress
	SavingMultiplier int64
}

// DefaultProfile returns the stock profile: 30000 monthly budget, 1000 daily
// saving goal, 500 stress threshold, five repeated purchases.
func DefaultProfile() Profile {
	return Profile{
		MonthlyBudget:    decimal.NewFromInt(30000),
		DailySavingGoal:  decimal.NewFromInt(1000),
		StressThreshold:  decimal.NewFromInt(500),
		SavingMultiplier: 5,
	}
}

// Validate checks that the profile yields defined metrics for every valid amount.
func (p Profile) Validate() error {
	if !p.MonthlyBudget.IsPositive() {
		return fmt.Errorf("%w: monthly budget must be positive, got %s", ErrInvalidProfile, p.MonthlyBudget)
	}
	if !p.DailySavingGoal.IsPositive() {
		return fmt.Errorf("%w: daily saving goal must be positive, got %s", ErrInvalidProfile, p.DailySavingGoal)
	}
	if p.StressThreshold.IsNegative() {
		return fmt.Errorf("%w: stress threshold must not be negative, got %s", ErrInvalidProfile, p.StressThreshold)
	}
	if p.SavingMultiplier < 1 {
		return fmt.Errorf("%w: saving multiplier must be at least 1, got %d", ErrInvalidProfile, p.SavingMultiplier)
	}
	return nil
}
