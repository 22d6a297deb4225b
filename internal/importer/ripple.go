package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ripplepay/ripple/internal/metrics"
	"github.com/ripplepay/ripple/internal/model"
)

// Import files use the native expense CSV:
//
//	date,amount,category,mood,reason
//
// The header is optional. mood and reason may be empty; mood defaults to happy.
const header = "date,amount,category,mood,reason"

const (
	dayFormat = "2006-01-02"
	minFields = 3
	colDate   = 0
	colAmount = 1
	colCat    = 2
	colMood   = 3
	colReason = 4
)

// Parse reads an import CSV and returns its drafts in file order.
func Parse(r io.Reader) ([]model.Draft, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading expense CSV: %w", err)
	}

	first := 1
	if len(records) > 0 && isHeader(records[0]) {
		records = records[1:]
		first = 2
	}

	var drafts []model.Draft
	for i, rec := range records {
		if blank(rec) {
			continue
		}
		d, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+first, err)
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// Write emits drafts in the import format, header first. Parse reads the
// output back to the same drafts.
func Write(w io.Writer, drafts []model.Draft) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, d := range drafts {
		row := []string{formatDate(d.Timestamp), d.Amount.String(), string(d.Category), string(d.Mood), d.Reason}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing expense CSV: %w", err)
	}
	return nil
}

func parseRow(rec []string) (model.Draft, error) {
	if len(rec) < minFields {
		return model.Draft{}, fmt.Errorf("expected at least %d fields, got %d", minFields, len(rec))
	}

	date, err := parseDate(strings.TrimSpace(rec[colDate]))
	if err != nil {
		return model.Draft{}, fmt.Errorf("parsing date %q: %w", rec[colDate], err)
	}

	amount, err := metrics.ParseAmount(rec[colAmount])
	if err != nil {
		return model.Draft{}, fmt.Errorf("parsing amount %q: %w", rec[colAmount], err)
	}

	cat, ok := model.ParseCategory(rec[colCat])
	if !ok {
		return model.Draft{}, fmt.Errorf("parsing category %q: %w", rec[colCat], metrics.ErrUnknownCategory)
	}

	mood := model.MoodHappy
	if v := field(rec, colMood); v != "" {
		m, ok := model.ParseMood(v)
		if !ok {
			return model.Draft{}, fmt.Errorf("parsing mood %q: %w", v, metrics.ErrUnknownMood)
		}
		mood = m
	}

	return model.Draft{
		Amount:    amount,
		Category:  cat,
		Mood:      mood,
		Reason:    field(rec, colReason),
		Timestamp: date,
	}, nil
}

// parseDate accepts a plain day (midnight UTC) or a full RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dayFormat, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.New("want YYYY-MM-DD or RFC3339")
	}
	return t, nil
}

func formatDate(t time.Time) string {
	if t.Equal(t.UTC().Truncate(24 * time.Hour)) {
		return t.UTC().Format(dayFormat)
	}
	return t.Format(time.RFC3339Nano)
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func isHeader(rec []string) bool {
	return len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "date")
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
