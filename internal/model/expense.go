package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StressLevel is the binary stress classification of an expense.
type StressLevel int

const (
	StressLow  StressLevel = 1
	StressHigh StressLevel = 2
)

// String returns the label shown in views: "High" or "Low".
func (s StressLevel) String() string {
	if s == StressHigh {
		return "High"
	}
	return "Low"
}

// Draft is a purchase as entered, before any metrics are derived.
type Draft struct {
	Amount    decimal.Decimal
	Category  Category
	Mood      Mood
	Reason    string    // optional
	Timestamp time.Time // zero = stamp at recording time
}

// Metrics are the values derived from an expense amount.
// All four are computed together from the amount alone.
type Metrics struct {
	RippleScore      int64 // percent of monthly budget, not clamped
	GoalDelay        int64 // days
	StressImpact     StressLevel
	SavingSuggestion decimal.Decimal
}

// ExpenseRecord is one logged purchase with its derived metrics.
type ExpenseRecord struct {
	ID        string // assigned by the store, "YYYYMMDD-NNN"
	Amount    decimal.Decimal
	Category  Category
	Mood      Mood
	Reason    string
	Timestamp time.Time
	Metrics
}
