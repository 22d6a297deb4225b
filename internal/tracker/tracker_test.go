package tracker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ripplepay/ripple/internal/ledger"
	"github.com/ripplepay/ripple/internal/metrics"
	"github.com/ripplepay/ripple/internal/model"
)

// memStore implements Store for testing.
type memStore struct {
	records []model.ExpenseRecord
	err     error
}

func (m *memStore) Append(_ context.Context, rec model.ExpenseRecord) (model.ExpenseRecord, error) {
	if m.err != nil {
		return model.ExpenseRecord{}, m.err
	}
	rec.ID = fmt.Sprintf("mem-%d", len(m.records)+1)
	m.records = append(m.records, rec)
	return rec, nil
}

func (m *memStore) Recent(_ context.Context, limit int) ([]model.ExpenseRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := append([]model.ExpenseRecord(nil), m.records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTracker(t *testing.T, store Store, opts ...Option) *Tracker {
	t.Helper()
	e, err := metrics.NewEngine(metrics.DefaultProfile())
	require.NoError(t, err)
	return New(e, store, opts...)
}

func TestRecord(t *testing.T) {
	store := &memStore{}
	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	tr := newTracker(t, store, WithClock(fixedClock(now)))

	rec, err := tr.Record(context.Background(), model.Draft{
		Amount:   dec("2000"),
		Category: model.CategoryFood,
		Mood:     model.MoodHappy,
	})
	require.NoError(t, err)
	assert.Equal(t, "mem-1", rec.ID)
	assert.True(t, now.Equal(rec.Timestamp), "zero timestamp stamped from clock")
	assert.Equal(t, int64(7), rec.RippleScore)
	assert.Equal(t, int64(2), rec.GoalDelay)
	assert.Equal(t, model.StressHigh, rec.StressImpact)
	assert.True(t, rec.SavingSuggestion.Equal(dec("10000")))
	require.Len(t, store.records, 1)
}

func TestRecord_KeepsGivenTimestamp(t *testing.T) {
	store := &memStore{}
	tr := newTracker(t, store, WithClock(fixedClock(time.Now())))
	ts := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	rec, err := tr.Record(context.Background(), model.Draft{
		Amount: dec("10"), Category: model.CategoryFood, Mood: model.MoodHappy, Timestamp: ts,
	})
	require.NoError(t, err)
	assert.True(t, ts.Equal(rec.Timestamp))
}

func TestRecord_InvalidDraftNotStored(t *testing.T) {
	store := &memStore{}
	tr := newTracker(t, store)

	_, err := tr.Record(context.Background(), model.Draft{
		Amount: dec("0"), Category: model.CategoryFood, Mood: model.MoodHappy,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, metrics.ErrNonPositiveAmount)
	assert.Empty(t, store.records)
}

func TestRecord_StoreFailure(t *testing.T) {
	boom := errors.New("disk full")
	tr := newTracker(t, &memStore{err: boom})

	_, err := tr.Record(context.Background(), model.Draft{
		Amount: dec("10"), Category: model.CategoryFood, Mood: model.MoodHappy,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestSnapshotLimit(t *testing.T) {
	store := &memStore{}
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := newTracker(t, store, WithLimit(3))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := tr.Record(ctx, model.Draft{
			Amount: dec("10"), Category: model.CategoryFood, Mood: model.MoodHappy,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	snap, err := tr.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 3)
	assert.Equal(t, "mem-5", snap[0].ID)
}

func TestSnapshot_DefaultLimit(t *testing.T) {
	store := &memStore{}
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := newTracker(t, store)
	ctx := context.Background()

	for i := 0; i < DefaultLimit+5; i++ {
		_, err := tr.Record(ctx, model.Draft{
			Amount: dec("1"), Category: model.CategoryFood, Mood: model.MoodHappy,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	snap, err := tr.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap, DefaultLimit)
}

func TestLatest(t *testing.T) {
	store := &memStore{}
	tr := newTracker(t, store)
	ctx := context.Background()

	_, err := tr.Latest(ctx)
	assert.ErrorIs(t, err, ErrNoExpenses)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = tr.Record(ctx, model.Draft{Amount: dec("1"), Category: model.CategoryFood, Mood: model.MoodHappy, Timestamp: base})
	require.NoError(t, err)
	_, err = tr.Record(ctx, model.Draft{Amount: dec("2"), Category: model.CategoryTravel, Mood: model.MoodHappy, Timestamp: base.Add(time.Hour)})
	require.NoError(t, err)

	latest, err := tr.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryTravel, latest.Category)
}

func TestSummaryAndDashboard(t *testing.T) {
	store := &memStore{}
	tr := newTracker(t, store)
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// Most recent first: Shopping, Food 500, Food 1000.
	for i, d := range []model.Draft{
		{Amount: dec("1000"), Category: model.CategoryFood, Mood: model.MoodHappy},
		{Amount: dec("500"), Category: model.CategoryFood, Mood: model.MoodNeutral},
		{Amount: dec("300"), Category: model.CategoryShopping, Mood: model.MoodStressed},
	} {
		d.Timestamp = base.Add(time.Duration(i) * time.Hour)
		_, err := tr.Record(ctx, d)
		require.NoError(t, err)
	}

	s, err := tr.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, s.TotalSpent.Equal(dec("1800")))
	assert.Equal(t, model.CategoryFood, s.Dominant.Category)
	assert.Equal(t, "83.3", s.DominantPercentage.String())
	assert.Equal(t, int64(4), s.TotalStressScore) // 2 + 1 + 1

	view, err := tr.Dashboard(ctx)
	require.NoError(t, err)
	assert.True(t, view.BudgetLeft.Equal(dec("28200")))
	assert.Equal(t, "6", view.SpentPercentage.String())
}

func TestWithLedgerStore(t *testing.T) {
	tr := newTracker(t, ledger.NewService(t.TempDir()),
		WithClock(fixedClock(time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC))))
	ctx := context.Background()

	rec, err := tr.Record(ctx, model.Draft{Amount: dec("2000"), Category: model.CategoryImpulse, Mood: model.MoodOverwhelmed})
	require.NoError(t, err)
	assert.Equal(t, "20250115-001", rec.ID)

	latest, err := tr.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, latest.ID)
	assert.Equal(t, model.CategoryImpulse, latest.Category)
}
