package insights

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ripplepay/ripple/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rec(c model.Category, amount string) model.ExpenseRecord {
	return model.ExpenseRecord{Category: c, Amount: dec(amount)}
}

func TestTotalSpent(t *testing.T) {
	assert.True(t, TotalSpent(nil).IsZero())
	assert.True(t, TotalSpent([]model.ExpenseRecord{}).IsZero())

	got := TotalSpent([]model.ExpenseRecord{
		rec(model.CategoryFood, "100"),
		rec(model.CategoryTravel, "250"),
	})
	assert.True(t, got.Equal(dec("350")), "got %s", got)
}

func TestTotalSpent_NoFloatDrift(t *testing.T) {
	records := make([]model.ExpenseRecord, 10)
	for i := range records {
		records[i] = rec(model.CategorySnacking, "0.1")
	}
	assert.Equal(t, "1", TotalSpent(records).String())
}

func TestTotalRippleAndStress(t *testing.T) {
	assert.Equal(t, int64(0), TotalRippleScore(nil))
	assert.Equal(t, int64(0), TotalStressScore(nil))

	records := []model.ExpenseRecord{
		{Amount: dec("2000"), Category: model.CategoryFood, Metrics: model.Metrics{RippleScore: 7, StressImpact: model.StressHigh}},
		{Amount: dec("300"), Category: model.CategoryFood, Metrics: model.Metrics{RippleScore: 1, StressImpact: model.StressLow}},
		{Amount: dec("45000"), Category: model.CategoryTravel, Metrics: model.Metrics{RippleScore: 150, StressImpact: model.StressHigh}},
	}
	assert.Equal(t, int64(158), TotalRippleScore(records))
	assert.Equal(t, int64(5), TotalStressScore(records))
}

func TestCategoryBreakdown(t *testing.T) {
	assert.Empty(t, CategoryBreakdown(nil))

	b := CategoryBreakdown([]model.ExpenseRecord{
		rec(model.CategoryFood, "1000"),
		rec(model.CategoryFood, "500"),
		rec(model.CategoryShopping, "300"),
	})
	require.Len(t, b, 2)
	assert.Equal(t, model.CategoryFood, b[0].Category)
	assert.Equal(t, model.CategoryShopping, b[1].Category)
	assert.True(t, b[0].Amount.Equal(dec("1500")))
	assert.True(t, b[1].Amount.Equal(dec("300")))
}

func TestCategoryBreakdown_FirstSeenOrder(t *testing.T) {
	b := CategoryBreakdown([]model.ExpenseRecord{
		rec(model.CategoryImpulse, "10"),
		rec(model.CategoryFood, "20"),
		rec(model.CategoryImpulse, "30"),
		rec(model.CategoryUtilities, "40"),
	})
	var order []model.Category
	for _, ct := range b {
		order = append(order, ct.Category)
	}
	assert.Equal(t, []model.Category{model.CategoryImpulse, model.CategoryFood, model.CategoryUtilities}, order)
}

func TestDominantCategory(t *testing.T) {
	tests := []struct {
		name    string
		records []model.ExpenseRecord
		want    model.Category
		amount  string
	}{
		{"empty", nil, model.CategoryNone, "0"},
		{"single", []model.ExpenseRecord{rec(model.CategoryTravel, "80")}, model.CategoryTravel, "80"},
		{
			"tie keeps first seen",
			[]model.ExpenseRecord{rec(model.CategoryFood, "100"), rec(model.CategoryShopping, "100")},
			model.CategoryFood, "100",
		},
		{
			"tie keeps first seen regardless of label",
			[]model.ExpenseRecord{rec(model.CategoryShopping, "100"), rec(model.CategoryFood, "100")},
			model.CategoryShopping, "100",
		},
		{
			"summed category wins",
			[]model.ExpenseRecord{
				rec(model.CategoryShopping, "700"),
				rec(model.CategoryFood, "400"),
				rec(model.CategoryFood, "400"),
			},
			model.CategoryFood, "800",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DominantCategory(tt.records)
			assert.Equal(t, tt.want, got.Category)
			assert.True(t, got.Amount.Equal(dec(tt.amount)), "amount %s", got.Amount)
		})
	}
}

func TestDominantCategoryPercentage(t *testing.T) {
	assert.True(t, DominantCategoryPercentage(nil).IsZero(), "empty input has a defined zero share")

	got := DominantCategoryPercentage([]model.ExpenseRecord{
		rec(model.CategoryFood, "1000"),
		rec(model.CategoryFood, "500"),
		rec(model.CategoryShopping, "300"),
	})
	assert.Equal(t, "83.3", got.String())

	got = DominantCategoryPercentage([]model.ExpenseRecord{rec(model.CategoryOther, "42")})
	assert.True(t, got.Equal(dec("100")))
}

func TestDominantCategoryPercentage_ZeroTotal(t *testing.T) {
	// Zero amounts never pass validation but may appear in hand-edited data.
	got := DominantCategoryPercentage([]model.ExpenseRecord{rec(model.CategoryFood, "0")})
	assert.True(t, got.IsZero())
}

func TestPatternMessage(t *testing.T) {
	for _, c := range []model.Category{
		model.CategoryFood,
		model.CategoryShopping,
		model.CategoryEntertainment,
		model.CategoryImpulse,
		model.CategoryOther,
	} {
		msg, ok := PatternMessage(c)
		assert.True(t, ok, "%s should have a message", c)
		assert.NotEmpty(t, msg)
	}

	for _, c := range []model.Category{
		model.CategoryTravel,
		model.CategorySnacking,
		model.CategoryUtilities,
		model.CategoryNone,
	} {
		msg, ok := PatternMessage(c)
		assert.False(t, ok, "%s should have no message", c)
		assert.Empty(t, msg)
	}

	msg, _ := PatternMessage(model.CategoryFood)
	assert.Contains(t, msg, "meal planning")
}
