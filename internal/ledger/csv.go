package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ripplepay/ripple/internal/model"
)

// Header is the CSV header for expenses.csv.
const Header = "expense_id,timestamp,amount,category,mood,reason,ripple_score,goal_delay,stress_impact,saving_suggestion"

const (
	numFields    = 10
	colID        = 0
	colTimestamp = 1
	colAmount    = 2
	colCategory  = 3
	colMood      = 4
	colReason    = 5
	colRipple    = 6
	colGoalDelay = 7
	colStress    = 8
	colSaving    = 9
)

// ReadRecords reads all expenses from an expenses.csv reader.
func ReadRecords(r io.Reader) ([]model.ExpenseRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading expenses CSV: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	// Skip header row.
	var records []model.ExpenseRecord
	for i, row := range rows[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteRecords writes expenses to w, including the header.
func WriteRecords(w io.Writer, records []model.ExpenseRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return writeRows(cw, records)
}

// AppendRecords appends expenses to an existing expenses.csv writer (no header).
func AppendRecords(w io.Writer, records []model.ExpenseRecord) error {
	return writeRows(csv.NewWriter(w), records)
}

func writeRows(cw *csv.Writer, records []model.ExpenseRecord) error {
	for i, rec := range records {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing rows: %w", err)
	}
	return nil
}

// MarshalRecord converts an ExpenseRecord to a CSV row.
func MarshalRecord(rec model.ExpenseRecord) []string {
	row := make([]string, numFields)
	row[colID] = rec.ID
	row[colTimestamp] = rec.Timestamp.UTC().Format(time.RFC3339Nano)
	row[colAmount] = rec.Amount.String()
	row[colCategory] = string(rec.Category)
	row[colMood] = string(rec.Mood)
	row[colReason] = rec.Reason
	row[colRipple] = strconv.FormatInt(rec.RippleScore, 10)
	row[colGoalDelay] = strconv.FormatInt(rec.GoalDelay, 10)
	row[colStress] = strconv.Itoa(int(rec.StressImpact))
	row[colSaving] = rec.SavingSuggestion.String()
	return row
}

// UnmarshalRecord converts a CSV row to an ExpenseRecord. Category and mood
// are taken verbatim; Check reports unknown values.
func UnmarshalRecord(row []string) (model.ExpenseRecord, error) {
	if len(row) != numFields {
		return model.ExpenseRecord{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	ts, err := time.Parse(time.RFC3339Nano, row[colTimestamp])
	if err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("parsing timestamp %q: %w", row[colTimestamp], err)
	}

	amount, err := decimal.NewFromString(row[colAmount])
	if err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("parsing amount %q: %w", row[colAmount], err)
	}

	ripple, err := strconv.ParseInt(row[colRipple], 10, 64)
	if err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("parsing ripple_score %q: %w", row[colRipple], err)
	}

	delay, err := strconv.ParseInt(row[colGoalDelay], 10, 64)
	if err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("parsing goal_delay %q: %w", row[colGoalDelay], err)
	}

	stress, err := strconv.Atoi(row[colStress])
	if err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("parsing stress_impact %q: %w", row[colStress], err)
	}

	saving, err := decimal.NewFromString(row[colSaving])
	if err != nil {
		return model.ExpenseRecord{}, fmt.Errorf("parsing saving_suggestion %q: %w", row[colSaving], err)
	}

	return model.ExpenseRecord{
		ID:        row[colID],
		Amount:    amount,
		Category:  model.Category(row[colCategory]),
		Mood:      model.Mood(row[colMood]),
		Reason:    row[colReason],
		Timestamp: ts,
		Metrics: model.Metrics{
			RippleScore:      ripple,
			GoalDelay:        delay,
			StressImpact:     model.StressLevel(stress),
			SavingSuggestion: saving,
		},
	}, nil
}
