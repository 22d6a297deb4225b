package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/ripplepay/ripple/internal/insights"
	"github.com/ripplepay/ripple/internal/model"
)

const barWidth = 20

// money formats an amount with thousands separators, e.g. ₹2,000 or ₹120.5.
// The digits come straight from the decimal, so large amounts stay exact.
func money(currency string, d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	s := sign + currency + humanize.BigComma(whole.BigInt())
	if frac := d.Sub(whole); !frac.IsZero() {
		s += strings.TrimPrefix(frac.String(), "0")
	}
	return s
}

// bar draws pct (0..100) as a fixed-width text gauge.
func bar(pct decimal.Decimal) string {
	filled := int(pct.Mul(decimal.NewFromInt(barWidth)).Div(decimal.NewFromInt(100)).Round(0).IntPart())
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func renderResult(w io.Writer, currency string, multiplier int64, rec model.ExpenseRecord) {
	fmt.Fprintln(w, "Your Ripple Effect")
	fmt.Fprintf(w, "  %s  %s %s (%s)\n", rec.ID, rec.Category, money(currency, rec.Amount), rec.Mood)
	if rec.Reason != "" {
		fmt.Fprintf(w, "  %q\n", rec.Reason)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Goal Delay:     %d days\n", rec.GoalDelay)
	fmt.Fprintf(w, "  Budget Impact:  %d%%\n", rec.RippleScore)
	fmt.Fprintf(w, "  Stress Impact:  %s\n", rec.StressImpact)
	fmt.Fprintf(w, "  Better Choice:  %s (skip %d similar purchases)\n",
		money(currency, rec.SavingSuggestion), multiplier)
}

func renderDashboard(w io.Writer, currency string, v insights.DashboardView) {
	fmt.Fprintf(w, "Monthly Budget Left:  %s of %s\n", money(currency, v.BudgetLeft), money(currency, v.MonthlyBudget))
	fmt.Fprintf(w, "  %s %s%% spent\n", bar(v.BarPercentage), v.SpentPercentage.StringFixed(1))
	fmt.Fprintf(w, "Total Ripple Impact:  %d\n", v.TotalRippleScore)
	fmt.Fprintf(w, "  score across %d expenses\n", v.Count)
}

func renderInsights(w io.Writer, currency string, s insights.Summary) {
	if s.Empty() {
		fmt.Fprintln(w, "No expenses recorded yet.")
		return
	}

	fmt.Fprintf(w, "Total Stress Score:      %d\n", s.TotalStressScore)
	fmt.Fprintf(w, "Biggest Ripple Category: %s (%s%% of spending)\n",
		s.Dominant.Category, s.DominantPercentage.StringFixed(1))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Spending by Category")
	for _, cs := range s.Breakdown {
		fmt.Fprintf(w, "  %-14s %12s  %s %5s%%\n",
			cs.Category, money(currency, cs.Amount), bar(cs.Percentage), cs.Percentage.StringFixed(1))
	}
	fmt.Fprintln(w)

	if s.HasPattern {
		fmt.Fprintln(w, s.Pattern)
	} else {
		fmt.Fprintf(w, "No pattern message for %s.\n", s.Dominant.Category)
	}
}

func renderList(w io.Writer, currency string, recs []model.ExpenseRecord) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No expenses recorded yet.")
		return
	}
	fmt.Fprintf(w, "%-12s  %-10s  %-13s  %12s  %-11s  %6s  %5s  %-6s\n",
		"ID", "DATE", "CATEGORY", "AMOUNT", "MOOD", "RIPPLE", "DELAY", "STRESS")
	for _, r := range recs {
		fmt.Fprintf(w, "%-12s  %-10s  %-13s  %12s  %-11s  %5d%%  %4dd  %-6s\n",
			r.ID, r.Timestamp.Format("2006-01-02"), r.Category, money(currency, r.Amount),
			r.Mood, r.RippleScore, r.GoalDelay, r.StressImpact)
	}
}
