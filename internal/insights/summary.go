package insights

import (
	"github.com/shopspring/decimal"

	"github.com/ripplepay/ripple/internal/model"
)

// CategoryShare is a category total with its percentage of all spending.
type CategoryShare struct {
	CategoryTotal
	Percentage decimal.Decimal // one decimal place
}

// Summary is the insights view over one snapshot of records.
type Summary struct {
	Count              int
	TotalSpent         decimal.Decimal
	TotalRippleScore   int64
	TotalStressScore   int64
	Breakdown          []CategoryShare
	Dominant           CategoryTotal
	DominantPercentage decimal.Decimal
	Pattern            string
	HasPattern         bool
}

// Empty reports whether the summary was built from no records.
func (s Summary) Empty() bool {
	return s.Count == 0
}

// Summarize computes every insight over records, treated as a complete snapshot.
func Summarize(records []model.ExpenseRecord) Summary {
	total := TotalSpent(records)
	breakdown := CategoryBreakdown(records)
	dom := dominant(breakdown)

	shares := make([]CategoryShare, len(breakdown))
	for i, ct := range breakdown {
		shares[i] = CategoryShare{CategoryTotal: ct, Percentage: share(ct.Amount, total)}
	}

	pattern, ok := PatternMessage(dom.Category)

	return Summary{
		Count:              len(records),
		TotalSpent:         total,
		TotalRippleScore:   TotalRippleScore(records),
		TotalStressScore:   TotalStressScore(records),
		Breakdown:          shares,
		Dominant:           dom,
		DominantPercentage: share(dom.Amount, total),
		Pattern:            pattern,
		HasPattern:         ok,
	}
}
