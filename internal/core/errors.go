package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Configuration errors abort a run before any record is processed.
var (
	ErrNegativeTariff    = errors.New("tariff rates must be non-negative")
	ErrInvertedDateRange = errors.New("start date is after end date")
)

// ErrUnfulfilled marks a record with no fulfillment timestamp. Such rows are
// not invalid input; they are unfulfilled lines outside the scope of a
// fulfillment invoice, dropped and counted separately.
var ErrUnfulfilled = errors.New("record has no fulfillment timestamp")

// ValidationPolicy controls what happens to records that fail normalization.
// Either way the full pass completes first, so every bad row is reported at
// once rather than one per run.
type ValidationPolicy string

const (
	// SkipInvalid drops failing records and surfaces them as warnings.
	SkipInvalid ValidationPolicy = "skip"
	// AbortRun fails the run with the collected batch of record errors.
	AbortRun ValidationPolicy = "abort"
)

// ParsePolicy maps a config string onto a ValidationPolicy.
func ParsePolicy(value string) (ValidationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(SkipInvalid):
		return SkipInvalid, nil
	case string(AbortRun):
		return AbortRun, nil
	default:
		return "", fmt.Errorf("unknown validation policy %q (want %q or %q)", value, SkipInvalid, AbortRun)
	}
}

// RecordError describes one export row that failed normalization.
type RecordError struct {
	Row    int
	Field  string
	Value  string
	Reason string
}

func (e RecordError) Error() string {
	return fmt.Sprintf("row %d: %s %q: %s", e.Row, e.Field, e.Value, e.Reason)
}

// RecordErrors is the batch of row failures collected over one full pass.
type RecordErrors []RecordError

func (e RecordErrors) Error() string {
	if len(e) == 0 {
		return "no record errors"
	}
	msgs := make([]string, len(e))
	for i, re := range e {
		msgs[i] = re.Error()
	}
	return fmt.Sprintf("%d invalid record(s):\n  %s", len(e), strings.Join(msgs, "\n  "))
}

// InvariantViolationError reports an order whose TOTAL row disagrees with an
// independent sum of its lines. It signals a bug in the allocator, never bad
// input, and is always fatal.
type InvariantViolationError struct {
	OrderID  string
	Field    string
	Stored   decimal.Decimal
	Computed decimal.Decimal
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("order %s: %s invariant violated: total row has %s, lines sum to %s",
		e.OrderID, e.Field, e.Stored.StringFixed(2), e.Computed.StringFixed(2))
}
