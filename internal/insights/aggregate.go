package insights

import (
	"github.com/shopspring/decimal"

	"github.com/ripplepay/ripple/internal/model"
)

var hundred = decimal.NewFromInt(100)

// CategoryTotal is the summed amount spent in one category.
type CategoryTotal struct {
	Category model.Category
	Amount   decimal.Decimal
}

// Breakdown holds per-category totals in order of first appearance.
// Categories with no records are absent.
type Breakdown []CategoryTotal

// TotalSpent sums the amounts of records.
func TotalSpent(records []model.ExpenseRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}

// TotalRippleScore sums the ripple scores of records.
func TotalRippleScore(records []model.ExpenseRecord) int64 {
	var total int64
	for _, r := range records {
		total += r.RippleScore
	}
	return total
}

// TotalStressScore sums the stress impacts of records.
func TotalStressScore(records []model.ExpenseRecord) int64 {
	var total int64
	for _, r := range records {
		total += int64(r.StressImpact)
	}
	return total
}

// CategoryBreakdown folds records into per-category totals.
func CategoryBreakdown(records []model.ExpenseRecord) Breakdown {
	var b Breakdown
	index := make(map[model.Category]int)
	for _, r := range records {
		i, seen := index[r.Category]
		if !seen {
			index[r.Category] = len(b)
			b = append(b, CategoryTotal{Category: r.Category, Amount: r.Amount})
			continue
		}
		b[i].Amount = b[i].Amount.Add(r.Amount)
	}
	return b
}

// DominantCategory returns the category with the largest total. A later
// category only replaces the current leader when strictly larger, so ties go
// to the category seen first. Empty input yields CategoryNone with a zero amount.
func DominantCategory(records []model.ExpenseRecord) CategoryTotal {
	return dominant(CategoryBreakdown(records))
}

func dominant(b Breakdown) CategoryTotal {
	best := CategoryTotal{Category: model.CategoryNone, Amount: decimal.Zero}
	for _, ct := range b {
		if ct.Amount.GreaterThan(best.Amount) {
			best = ct
		}
	}
	return best
}

// DominantCategoryPercentage returns the dominant category's share of total
// spending, rounded to one decimal place. It is zero when nothing was spent.
func DominantCategoryPercentage(records []model.ExpenseRecord) decimal.Decimal {
	return share(DominantCategory(records).Amount, TotalSpent(records))
}

// share returns part as a percentage of total with one decimal place.
func share(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).DivRound(total, 1)
}
