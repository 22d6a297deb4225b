package metrics

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ripplepay/ripple/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newDefaultEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultProfile())
	require.NoError(t, err)
	return e
}

func TestRippleScore(t *testing.T) {
	e := newDefaultEngine(t)
	tests := []struct {
		amount string
		want   int64
	}{
		{"0", 0},
		{"15000", 50},
		{"15001", 50},
		{"2000", 7},
		{"30000", 100},
		{"45000", 150}, // not clamped
		{"149.99", 0},
		{"150", 1},  // 0.5 rounds up
		{"450", 2},  // 1.5 rounds up
		{"750", 3},  // 2.5 rounds away from zero, not to even
		{"749.99", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, e.RippleScore(dec(tt.amount)), "RippleScore(%s)", tt.amount)
	}
}

func TestGoalDelay(t *testing.T) {
	e := newDefaultEngine(t)
	tests := []struct {
		amount string
		want   int64
	}{
		{"0", 0},
		{"499.99", 0},
		{"500", 1},
		{"1500", 2},
		{"2000", 2},
		{"2500", 3}, // half-even would give 2
		{"120000", 120},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, e.GoalDelay(dec(tt.amount)), "GoalDelay(%s)", tt.amount)
	}
}

func TestStressImpact(t *testing.T) {
	e := newDefaultEngine(t)
	assert.Equal(t, model.StressLow, e.StressImpact(dec("0")))
	assert.Equal(t, model.StressLow, e.StressImpact(dec("500")))
	assert.Equal(t, model.StressHigh, e.StressImpact(dec("500.01")))
	assert.Equal(t, model.StressHigh, e.StressImpact(dec("100000")))
}

func TestSavingSuggestion(t *testing.T) {
	e := newDefaultEngine(t)
	for _, amount := range []string{"0", "1", "149.99", "2000", "0.01"} {
		got := e.SavingSuggestion(dec(amount))
		assert.True(t, got.Equal(dec(amount).Mul(decimal.NewFromInt(5))), "SavingSuggestion(%s) = %s", amount, got)
	}
}

func TestNonNegativeProperties(t *testing.T) {
	e := newDefaultEngine(t)
	for _, amount := range []string{"0", "0.01", "1", "499", "500", "501", "29999.99", "1000000", "1e30"} {
		a := dec(amount)
		assert.GreaterOrEqual(t, e.RippleScore(a), int64(0))
		assert.GreaterOrEqual(t, e.GoalDelay(a), int64(0))
		assert.Contains(t, []model.StressLevel{model.StressLow, model.StressHigh}, e.StressImpact(a))
	}
}

func TestCompute_EndToEnd(t *testing.T) {
	e := newDefaultEngine(t)
	m, err := e.Compute(dec("2000"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), m.RippleScore)
	assert.Equal(t, int64(2), m.GoalDelay)
	assert.Equal(t, model.StressHigh, m.StressImpact)
	assert.True(t, m.SavingSuggestion.Equal(dec("10000")))
}

func TestCompute_RejectsNonPositive(t *testing.T) {
	e := newDefaultEngine(t)
	for _, amount := range []string{"0", "-1", "-0.01"} {
		_, err := e.Compute(dec(amount))
		require.Error(t, err, "amount %s", amount)
		assert.ErrorIs(t, err, ErrNonPositiveAmount)
	}
}

func TestCustomProfile(t *testing.T) {
	e, err := NewEngine(Profile{
		MonthlyBudget:    dec("10000"),
		DailySavingGoal:  dec("250"),
		StressThreshold:  dec("100"),
		SavingMultiplier: 3,
	})
	require.NoError(t, err)

	m, err := e.Compute(dec("2000"))
	require.NoError(t, err)
	assert.Equal(t, int64(20), m.RippleScore)
	assert.Equal(t, int64(8), m.GoalDelay)
	assert.Equal(t, model.StressHigh, m.StressImpact)
	assert.True(t, m.SavingSuggestion.Equal(dec("6000")))

	// The default profile is unaffected.
	def := newDefaultEngine(t)
	assert.Equal(t, int64(7), def.RippleScore(dec("2000")))
}

func TestNewEngine_InvalidProfile(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Profile)
	}{
		{"zero budget", func(p *Profile) { p.MonthlyBudget = decimal.Zero }},
		{"negative goal", func(p *Profile) { p.DailySavingGoal = dec("-1") }},
		{"negative threshold", func(p *Profile) { p.StressThreshold = dec("-5") }},
		{"zero multiplier", func(p *Profile) { p.SavingMultiplier = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			tt.mutate(&p)
			_, err := NewEngine(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}

func TestStamp(t *testing.T) {
	e := newDefaultEngine(t)
	ts := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC)

	rec, err := e.Stamp(model.Draft{
		Amount:    dec("2000"),
		Category:  model.CategoryShopping,
		Mood:      model.MoodStressed,
		Reason:    "new shoes",
		Timestamp: ts,
	})
	require.NoError(t, err)
	assert.Empty(t, rec.ID)
	assert.Equal(t, model.CategoryShopping, rec.Category)
	assert.Equal(t, model.MoodStressed, rec.Mood)
	assert.Equal(t, "new shoes", rec.Reason)
	assert.Equal(t, ts, rec.Timestamp)
	assert.Equal(t, int64(7), rec.RippleScore)
	assert.Equal(t, int64(2), rec.GoalDelay)
	assert.Equal(t, model.StressHigh, rec.StressImpact)
	assert.True(t, rec.SavingSuggestion.Equal(dec("10000")))
}

func TestStamp_CollectsAllErrors(t *testing.T) {
	e := newDefaultEngine(t)
	_, err := e.Stamp(model.Draft{
		Amount:   dec("-3"),
		Category: "Rent",
		Mood:     "bored",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.ErrorIs(t, err, ErrNonPositiveAmount)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.ErrorIs(t, err, ErrUnknownMood)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 3)
}

func TestAmountTooLarge(t *testing.T) {
	e := newDefaultEngine(t)

	_, err := ParseAmount("1e30")
	assert.ErrorIs(t, err, ErrAmountTooLarge)

	_, err = e.Compute(dec("1e30"))
	assert.ErrorIs(t, err, ErrAmountTooLarge)

	_, err = e.Stamp(model.Draft{Amount: dec("1e30"), Category: model.CategoryFood, Mood: model.MoodHappy})
	assert.ErrorIs(t, err, ErrAmountTooLarge)

	m, err := e.Compute(MaxAmount)
	require.NoError(t, err)
	assert.Equal(t, int64(3333333333333), m.RippleScore)
	assert.Equal(t, int64(1000000000000), m.GoalDelay)
}

func TestAmountOverflowsProfile(t *testing.T) {
	e, err := NewEngine(Profile{
		MonthlyBudget:    dec("30000"),
		DailySavingGoal:  dec("0.0000000001"),
		StressThreshold:  dec("500"),
		SavingMultiplier: 5,
	})
	require.NoError(t, err)

	_, err = e.Compute(dec("1000000000000"))
	assert.ErrorIs(t, err, ErrAmountTooLarge)

	_, err = e.Stamp(model.Draft{Amount: dec("1000000000000"), Category: model.CategoryFood, Mood: model.MoodHappy})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAmountTooLarge)
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "amount", verrs[0].Field)

	// The bare metric saturates instead of wrapping negative.
	assert.Equal(t, int64(math.MaxInt64), e.GoalDelay(dec("1000000000000")))
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount(" 2000.50 ")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("2000.5")))

	for _, bad := range []string{"", "abc", "NaN", "12,50"} {
		_, err := ParseAmount(bad)
		assert.ErrorIs(t, err, ErrNonFiniteAmount, "input %q", bad)
	}
	_, err = ParseAmount("0")
	assert.ErrorIs(t, err, ErrNonPositiveAmount)
}
