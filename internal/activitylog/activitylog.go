package activitylog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Actions written by the CLI.
const (
	ActionInit   = "init"
	ActionAdd    = "add_expense"
	ActionImport = "import_expenses"
)

// Entry is one row of the activity log.
type Entry struct {
	Timestamp  time.Time
	Action     string
	Details    string
	ExpenseID  string
	CommitHash string
}

// Header is the CSV header for activity-log.csv.
const Header = "timestamp,action,details,expense_id,commit_hash"

// Path is the log location relative to the repo root.
const Path = "logs/activity-log.csv"

const (
	numFields     = 5
	colTimestamp  = 0
	colAction     = 1
	colDetails    = 2
	colExpenseID  = 3
	colCommitHash = 4
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.UTC().Format(time.RFC3339)
	row[colAction] = e.Action
	row[colDetails] = e.Details
	row[colExpenseID] = e.ExpenseID
	row[colCommitHash] = e.CommitHash
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(row []string) (Entry, error) {
	if len(row) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	ts, err := time.Parse(time.RFC3339, row[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", row[colTimestamp], err)
	}

	return Entry{
		Timestamp:  ts,
		Action:     row[colAction],
		Details:    row[colDetails],
		ExpenseID:  row[colExpenseID],
		CommitHash: row[colCommitHash],
	}, nil
}

// Append adds entries to the repo's activity log, creating it with a header
// on first use.
func Append(repoRoot string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	path := filepath.Join(repoRoot, Path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	_, statErr := os.Stat(path)
	needsHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns every entry in the repo's activity log, or nil if there is none.
func Read(repoRoot string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(repoRoot, Path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity log CSV: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, row := range rows[1:] {
		e, err := UnmarshalEntry(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
