package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ripplepay/ripple/internal/id"
	"github.com/ripplepay/ripple/internal/logger"
	"github.com/ripplepay/ripple/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps expenses in a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and migrates it.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append assigns the next ID for the expense's day and inserts the row.
func (s *SQLiteStore) Append(ctx context.Context, rec model.ExpenseRecord) (model.ExpenseRecord, error) {
	if rec.Timestamp.IsZero() {
		return model.ExpenseRecord{}, errors.New("expense has no timestamp")
	}
	rec.Timestamp = rec.Timestamp.UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	ids, err := dayIDs(ctx, tx, rec.Timestamp)
	if err != nil {
		return model.ExpenseRecord{}, err
	}
	rec.ID = id.FormatExpenseID(rec.Timestamp, id.NextSeq(ids, rec.Timestamp))

	_, err = tx.ExecContext(ctx, `INSERT INTO expenses
		(expense_id, timestamp, amount, category, mood, reason, ripple_score, goal_delay, stress_impact, saving_suggestion)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Timestamp.UnixNano(),
		rec.Amount.String(),
		string(rec.Category),
		string(rec.Mood),
		rec.Reason,
		rec.RippleScore,
		rec.GoalDelay,
		int(rec.StressImpact),
		rec.SavingSuggestion.String(),
	)
	if err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("insert expense: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("commit expense: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Debug().Str("expense_id", rec.ID).Msg("expense saved to sqlite")

	return rec, nil
}

// Recent returns up to limit expenses, most recent first. limit <= 0 returns all.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]model.ExpenseRecord, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}

	rows, err := s.db.QueryContext(ctx, `SELECT
		expense_id, timestamp, amount, category, mood, reason, ripple_score, goal_delay, stress_impact, saving_suggestion
		FROM expenses ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent expenses: %w", err)
	}
	defer rows.Close()

	var records []model.ExpenseRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return records, nil
}

func dayIDs(ctx context.Context, tx *sql.Tx, ts time.Time) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT expense_id FROM expenses WHERE expense_id LIKE ?`, id.DayKey(ts)+"-%")
	if err != nil {
		return nil, fmt.Errorf("query day ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan expense id: %w", err)
		}
		ids = append(ids, s)
	}
	return ids, rows.Err()
}

func scanRecord(rows *sql.Rows) (model.ExpenseRecord, error) {
	var (
		rec            model.ExpenseRecord
		nanos          int64
		amount, saving string
		category, mood string
		stress         int
	)
	if err := rows.Scan(&rec.ID, &nanos, &amount, &category, &mood, &rec.Reason,
		&rec.RippleScore, &rec.GoalDelay, &stress, &saving); err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("scan expense: %w", err)
	}

	var err error
	rec.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("parsing amount %q of %s: %w", amount, rec.ID, err)
	}
	rec.SavingSuggestion, err = decimal.NewFromString(saving)
	if err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("parsing saving_suggestion %q of %s: %w", saving, rec.ID, err)
	}
	rec.Timestamp = time.Unix(0, nanos).UTC()
	rec.Category = model.Category(category)
	rec.Mood = model.Mood(mood)
	rec.StressImpact = model.StressLevel(stress)

	return rec, nil
}
