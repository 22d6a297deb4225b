package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ripplepay/ripple/internal/id"
	"github.com/ripplepay/ripple/internal/logger"
	"github.com/ripplepay/ripple/internal/model"
)

const fileName = "expenses.csv"

// Service stores expenses as month-partitioned CSV files under a repo root:
// <root>/<YYYY>/<MM>/expenses.csv.
type Service struct {
	repoRoot string
}

// NewService creates a ledger Service rooted at repoRoot.
func NewService(repoRoot string) *Service {
	return &Service{repoRoot: repoRoot}
}

// Append assigns the next ID for the expense's day, validates the record and
// appends it to its month's expenses.csv. Stored rows are never rewritten.
func (s *Service) Append(ctx context.Context, rec model.ExpenseRecord) (model.ExpenseRecord, error) {
	if rec.Timestamp.IsZero() {
		return model.ExpenseRecord{}, errors.New("expense has no timestamp")
	}
	ts := rec.Timestamp.UTC()
	rec.Timestamp = ts
	year, month := ts.Year(), int(ts.Month())

	existing, err := s.ReadMonth(year, month)
	if err != nil {
		return model.ExpenseRecord{}, err
	}

	ids := make([]string, len(existing))
	for i, e := range existing {
		ids[i] = e.ID
	}
	rec.ID = id.FormatExpenseID(ts, id.NextSeq(ids, ts))

	if ierrs := ValidateRecords([]model.ExpenseRecord{rec}, nil); len(ierrs) > 0 {
		msgs := make([]string, len(ierrs))
		for i, ie := range ierrs {
			msgs[i] = ie.Error()
		}
		return model.ExpenseRecord{}, fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	// Append to the month file (create dir + header if new).
	path := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("opening ledger: %w", err)
	}

	if isNew {
		err = WriteRecords(f, []model.ExpenseRecord{rec})
	} else {
		err = AppendRecords(f, []model.ExpenseRecord{rec})
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("closing ledger: %w", cerr)
	}
	if err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("appending expense: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Debug().Str("expense_id", rec.ID).Str("path", path).Msg("expense appended to ledger")

	return rec, nil
}

// ReadMonth reads all expenses for a given year/month in file order.
func (s *Service) ReadMonth(year, month int) ([]model.ExpenseRecord, error) {
	return readFile(s.monthPath(year, month))
}

// ReadAll reads every month file, oldest month first, rows in file order.
func (s *Service) ReadAll() ([]model.ExpenseRecord, error) {
	pattern := filepath.Join(s.repoRoot, "[0-9][0-9][0-9][0-9]", "[0-9][0-9]", fileName)
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("listing ledger files: %w", err)
	}
	sort.Strings(paths)

	var all []model.ExpenseRecord
	for _, p := range paths {
		recs, err := readFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, recs...)
	}
	return all, nil
}

// Recent returns up to limit expenses, most recent first. Expenses sharing a
// timestamp are ordered latest-appended first. limit <= 0 returns all.
func (s *Service) Recent(_ context.Context, limit int) ([]model.ExpenseRecord, error) {
	all, err := s.ReadAll()
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Check runs ValidateRecords over the whole ledger.
func (s *Service) Check(engine Recomputer) ([]IntegrityError, error) {
	all, err := s.ReadAll()
	if err != nil {
		return nil, err
	}
	return ValidateRecords(all, engine), nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.repoRoot, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), fileName)
}

func readFile(path string) ([]model.ExpenseRecord, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	recs, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return recs, nil
}
