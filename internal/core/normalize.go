package core

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// fulfillmentTimeLayouts are tried in order when parsing a fulfillment
// timestamp. The first matches the order export's native format.
var fulfillmentTimeLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006",
}

// ParseFulfillmentTime parses a non-empty fulfillment timestamp, trying each
// accepted layout in order.
func ParseFulfillmentTime(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	for _, layout := range fulfillmentTimeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized timestamp format")
}

// Normalize turns one raw export row into a LineItem. It trims the order id
// and identity fields, parses the fulfillment timestamp, and coerces the
// quantity to a positive integer. A row that fails any of these gets a
// RecordError naming the row, field, and reason; the run is not affected.
// A row with an empty fulfillment timestamp returns ErrUnfulfilled instead.
func Normalize(raw RawRecord) (LineItem, error) {
	orderID := strings.TrimSpace(raw.OrderID)
	if orderID == "" {
		return LineItem{}, RecordError{Row: raw.Row, Field: "order id", Value: raw.OrderID, Reason: "must not be empty"}
	}

	if strings.TrimSpace(raw.FulfilledAt) == "" {
		return LineItem{}, ErrUnfulfilled
	}
	fulfilledAt, err := ParseFulfillmentTime(raw.FulfilledAt)
	if err != nil {
		return LineItem{}, RecordError{Row: raw.Row, Field: "fulfilled at", Value: raw.FulfilledAt, Reason: err.Error()}
	}

	qty, err := strconv.Atoi(strings.TrimSpace(raw.Quantity))
	if err != nil {
		return LineItem{}, RecordError{Row: raw.Row, Field: "quantity", Value: raw.Quantity, Reason: "must be an integer"}
	}
	if qty <= 0 {
		return LineItem{}, RecordError{Row: raw.Row, Field: "quantity", Value: raw.Quantity, Reason: "must be positive"}
	}

	return LineItem{
		OrderID:           orderID,
		SKU:               strings.TrimSpace(raw.SKU),
		Quantity:          qty,
		ProductTitle:      strings.TrimSpace(raw.ProductTitle),
		FulfilledAt:       fulfilledAt,
		Price:             strings.TrimSpace(raw.Price),
		FulfillmentStatus: strings.TrimSpace(raw.FulfillmentStatus),
		FinancialStatus:   strings.TrimSpace(raw.FinancialStatus),
	}, nil
}

// NormalizeResult is the outcome of normalizing one whole export.
type NormalizeResult struct {
	Items       []LineItem
	Unfulfilled int          // rows dropped for having no fulfillment timestamp
	Errors      RecordErrors // rows that failed validation
}

// NormalizeAll normalizes every record. The pass always runs to completion
// so the caller sees every bad row at once: under AbortRun the collected
// batch is returned as the error, under SkipInvalid it is returned in the
// result for the caller to report as warnings.
func NormalizeAll(records []RawRecord, policy ValidationPolicy) (*NormalizeResult, error) {
	result := &NormalizeResult{Items: make([]LineItem, 0, len(records))}

	for _, raw := range records {
		item, err := Normalize(raw)
		if err != nil {
			if errors.Is(err, ErrUnfulfilled) {
				result.Unfulfilled++
				continue
			}
			var re RecordError
			if errors.As(err, &re) {
				result.Errors = append(result.Errors, re)
				continue
			}
			return nil, err
		}
		result.Items = append(result.Items, item)
	}

	if policy == AbortRun && len(result.Errors) > 0 {
		return nil, result.Errors
	}
	return result, nil
}
