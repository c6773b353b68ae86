package core

import (
	"fmt"
	"time"
)

// ValidateDateRange rejects an inverted window. Called once per run before
// any record is touched; an inverted range is a configuration error, never
// a per-record failure.
func ValidateDateRange(start, end time.Time) error {
	if dateOnly(start).After(dateOnly(end)) {
		return fmt.Errorf("%w: %s > %s", ErrInvertedDateRange,
			start.Format("02.01.2006"), end.Format("02.01.2006"))
	}
	return nil
}

// FilterByDateRange keeps the line items fulfilled within [start, end],
// inclusive on both bounds. Only the calendar date is compared; time of day
// is ignored.
func FilterByDateRange(items []LineItem, start, end time.Time) []LineItem {
	s := dateOnly(start)
	e := dateOnly(end)

	kept := make([]LineItem, 0, len(items))
	for _, item := range items {
		d := dateOnly(item.FulfilledAt)
		if d.Before(s) || d.After(e) {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// dateOnly truncates a timestamp to its calendar date as written, so a line
// fulfilled late in the evening still counts on that day regardless of the
// export's UTC offset.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
