package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ripplepay/ripple/internal/insights"
	"github.com/ripplepay/ripple/internal/logger"
	"github.com/ripplepay/ripple/internal/metrics"
	"github.com/ripplepay/ripple/internal/model"
)

// DefaultLimit is how many recent expenses make up a snapshot.
const DefaultLimit = 50

// ErrNoExpenses is returned by Latest when nothing has been recorded.
var ErrNoExpenses = errors.New("no expenses recorded")

// Store persists stamped expenses. Append assigns the record ID; Recent
// returns the newest records first.
type Store interface {
	Append(ctx context.Context, rec model.ExpenseRecord) (model.ExpenseRecord, error)
	Recent(ctx context.Context, limit int) ([]model.ExpenseRecord, error)
}

// Tracker records expenses through the metrics engine and serves views over
// snapshots of the store.
type Tracker struct {
	engine *metrics.Engine
	store  Store
	limit  int
	now    func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLimit sets the snapshot size. Values <= 0 mean unbounded.
func WithLimit(n int) Option {
	return func(t *Tracker) { t.limit = n }
}

// WithClock overrides the time source used to stamp drafts without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New creates a Tracker.
func New(engine *metrics.Engine, store Store, opts ...Option) *Tracker {
	t := &Tracker{
		engine: engine,
		store:  store,
		limit:  DefaultLimit,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Record stamps d with metrics, stores it and returns the stored record.
func (t *Tracker) Record(ctx context.Context, d model.Draft) (model.ExpenseRecord, error) {
	log := logger.FromContext(ctx)

	if d.Timestamp.IsZero() {
		d.Timestamp = t.now()
	}

	rec, err := t.engine.Stamp(d)
	if err != nil {
		log.Debug().Err(err).Str("amount", d.Amount.String()).Msg("expense rejected")
		return model.ExpenseRecord{}, err
	}

	stored, err := t.store.Append(ctx, rec)
	if err != nil {
		log.Error().Err(err).Str("category", string(rec.Category)).Msg("failed to store expense")
		return model.ExpenseRecord{}, fmt.Errorf("storing expense: %w", err)
	}

	log.Info().
		Str("expense_id", stored.ID).
		Str("category", string(stored.Category)).
		Str("amount", stored.Amount.String()).
		Int64("ripple_score", stored.RippleScore).
		Int64("goal_delay", stored.GoalDelay).
		Int("stress_impact", int(stored.StressImpact)).
		Msg("expense recorded")

	return stored, nil
}

// Snapshot returns the most recent expenses, newest first.
func (t *Tracker) Snapshot(ctx context.Context) ([]model.ExpenseRecord, error) {
	recs, err := t.store.Recent(ctx, t.limit)
	if err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}
	return recs, nil
}

// Latest returns the most recent expense.
func (t *Tracker) Latest(ctx context.Context) (model.ExpenseRecord, error) {
	recs, err := t.store.Recent(ctx, 1)
	if err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("loading expenses: %w", err)
	}
	if len(recs) == 0 {
		return model.ExpenseRecord{}, ErrNoExpenses
	}
	return recs[0], nil
}

// Summary computes insights over a fresh snapshot.
func (t *Tracker) Summary(ctx context.Context) (insights.Summary, error) {
	recs, err := t.Snapshot(ctx)
	if err != nil {
		return insights.Summary{}, err
	}
	return insights.Summarize(recs), nil
}

// Dashboard computes the budget overview over a fresh snapshot.
func (t *Tracker) Dashboard(ctx context.Context) (insights.DashboardView, error) {
	recs, err := t.Snapshot(ctx)
	if err != nil {
		return insights.DashboardView{}, err
	}
	return insights.Dashboard(recs, t.engine.Profile().MonthlyBudget), nil
}
