package metrics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ripplepay/ripple/internal/model"
)

var (
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrNonFiniteAmount   = errors.New("amount must be a finite number")
	ErrAmountTooLarge    = errors.New("amount is too large")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrUnknownMood       = errors.New("unknown mood")
)

// ValidationError describes one rejected field of a draft.
type ValidationError struct {
	Field       string
	Description string
	Err         error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

func (e ValidationError) Unwrap() error { return e.Err }

// ValidationErrors collects every problem found in a draft.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, ve := range v {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, ve := range v {
		errs[i] = ve
	}
	return errs
}

// MaxAmount is the largest single expense accepted.
var MaxAmount = decimal.New(1, 15)

// ValidateAmount rejects zero, negative and implausibly large amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w, got %s", ErrNonPositiveAmount, amount)
	}
	if amount.GreaterThan(MaxAmount) {
		return fmt.Errorf("%w, got %s (limit %s)", ErrAmountTooLarge, amount, MaxAmount)
	}
	return nil
}

// ParseAmount parses a decimal string such as "2000" or "149.50".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrNonFiniteAmount, s)
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Decimal{}, err
	}
	return d, nil
}

// ValidateDraft checks every caller-supplied field of d.
func ValidateDraft(d model.Draft) ValidationErrors {
	var errs ValidationErrors

	if err := ValidateAmount(d.Amount); err != nil {
		errs = append(errs, ValidationError{
			Field:       "amount",
			Description: err.Error(),
			Err:         err,
		})
	}
	if !d.Category.Valid() {
		errs = append(errs, ValidationError{
			Field:       "category",
			Description: fmt.Sprintf("%q is not a known category", d.Category),
			Err:         ErrUnknownCategory,
		})
	}
	if !d.Mood.Valid() {
		errs = append(errs, ValidationError{
			Field:       "mood",
			Description: fmt.Sprintf("%q is not a known mood", d.Mood),
			Err:         ErrUnknownMood,
		})
	}

	return errs
}
