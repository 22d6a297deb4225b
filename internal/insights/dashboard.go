package insights

import (
	"github.com/shopspring/decimal"

	"github.com/ripplepay/ripple/internal/model"
)

// DashboardView is the budget overview shown on the home screen.
type DashboardView struct {
	MonthlyBudget    decimal.Decimal
	TotalSpent       decimal.Decimal
	BudgetLeft       decimal.Decimal // negative once the budget is overspent
	SpentPercentage  decimal.Decimal // one decimal place, may exceed 100
	BarPercentage    decimal.Decimal // SpentPercentage capped at 100
	TotalRippleScore int64
	Count            int
}

// Dashboard computes the budget overview for records against monthlyBudget.
func Dashboard(records []model.ExpenseRecord, monthlyBudget decimal.Decimal) DashboardView {
	spent := TotalSpent(records)
	pct := share(spent, monthlyBudget)
	return DashboardView{
		MonthlyBudget:    monthlyBudget,
		TotalSpent:       spent,
		BudgetLeft:       monthlyBudget.Sub(spent),
		SpentPercentage:  pct,
		BarPercentage:    decimal.Min(pct, hundred),
		TotalRippleScore: TotalRippleScore(records),
		Count:            len(records),
	}
}
