package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dayLayout = "20060102"

// FormatExpenseID returns an expense ID like "20250115-003" for the seq'th
// expense recorded on the day of t (in UTC).
func FormatExpenseID(t time.Time, seq int) string {
	return fmt.Sprintf("%s-%03d", t.UTC().Format(dayLayout), seq)
}

// ParseExpenseID splits "20250115-003" into its day (UTC midnight) and sequence.
func ParseExpenseID(id string) (day time.Time, seq int, err error) {
	datePart, seqPart, ok := strings.Cut(id, "-")
	if !ok {
		return time.Time{}, 0, fmt.Errorf("invalid expense ID format: %q", id)
	}

	day, err = time.Parse(dayLayout, datePart)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid date in expense ID %q: %w", id, err)
	}

	seq, err = strconv.Atoi(seqPart)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid sequence in expense ID %q: %w", id, err)
	}
	if seq < 1 {
		return time.Time{}, 0, fmt.Errorf("invalid sequence in expense ID %q: must be positive", id)
	}

	return day, seq, nil
}

// DayKey returns the "YYYYMMDD" prefix shared by all IDs of t's day.
func DayKey(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// NextSeq returns the sequence that follows the highest one used on t's day
// among ids. Malformed IDs are ignored.
func NextSeq(ids []string, t time.Time) int {
	key := DayKey(t)
	maxSeq := 0
	for _, existing := range ids {
		if !strings.HasPrefix(existing, key+"-") {
			continue
		}
		_, seq, err := ParseExpenseID(existing)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1
}
