package core_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment-invoicer/internal/core"
)

func TestNormalize_FieldHandling(t *testing.T) {
	tests := []struct {
		name      string
		raw       core.RawRecord
		wantErr   bool
		wantField string
	}{
		{
			name: "valid row",
			raw: core.RawRecord{
				Row: 2, OrderID: " #1001 ", SKU: "SKU-TS", Quantity: "2",
				ProductTitle: "T-Shirt", FulfilledAt: "2025-01-15 10:30:00 +0100",
			},
			wantErr: false,
		},
		{
			name:      "empty order id",
			raw:       core.RawRecord{Row: 3, OrderID: "   ", Quantity: "1", FulfilledAt: "2025-01-15"},
			wantErr:   true,
			wantField: "order id",
		},
		{
			name:      "unparseable date",
			raw:       core.RawRecord{Row: 4, OrderID: "#1001", Quantity: "1", FulfilledAt: "last tuesday"},
			wantErr:   true,
			wantField: "fulfilled at",
		},
		{
			name:      "non-numeric quantity",
			raw:       core.RawRecord{Row: 5, OrderID: "#1001", Quantity: "two", FulfilledAt: "2025-01-15"},
			wantErr:   true,
			wantField: "quantity",
		},
		{
			name:      "zero quantity",
			raw:       core.RawRecord{Row: 6, OrderID: "#1001", Quantity: "0", FulfilledAt: "2025-01-15"},
			wantErr:   true,
			wantField: "quantity",
		},
		{
			name:      "negative quantity",
			raw:       core.RawRecord{Row: 7, OrderID: "#1001", Quantity: "-3", FulfilledAt: "2025-01-15"},
			wantErr:   true,
			wantField: "quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := core.Normalize(tt.raw)

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if item.OrderID != "#1001" {
					t.Errorf("order id not trimmed: %q", item.OrderID)
				}
				return
			}

			var re core.RecordError
			if !errors.As(err, &re) {
				t.Fatalf("expected RecordError, got %T: %v", err, err)
			}
			if re.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, re.Field)
			}
			if re.Row != tt.raw.Row {
				t.Errorf("expected row %d, got %d", tt.raw.Row, re.Row)
			}
		})
	}
}

func TestNormalize_EmptyTimestampIsUnfulfilled(t *testing.T) {
	_, err := core.Normalize(core.RawRecord{Row: 2, OrderID: "#1001", Quantity: "1", FulfilledAt: "  "})
	if !errors.Is(err, core.ErrUnfulfilled) {
		t.Fatalf("expected ErrUnfulfilled, got %v", err)
	}
}

func TestParseFulfillmentTime_Layouts(t *testing.T) {
	tests := []struct {
		value string
		want  string // calendar date as 2006-01-02
	}{
		{"2025-01-15 10:30:00 +0100", "2025-01-15"},
		{"2025-01-15T10:30:00Z", "2025-01-15"},
		{"2025-01-15 10:30:00", "2025-01-15"},
		{"2025-01-15", "2025-01-15"},
		{"15.01.2025", "2025-01-15"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			ts, err := core.ParseFulfillmentTime(tt.value)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := ts.Format("2006-01-02"); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNormalizeAll_SkipPolicyCollectsAllErrors(t *testing.T) {
	records := []core.RawRecord{
		{Row: 2, OrderID: "#1001", Quantity: "1", FulfilledAt: "2025-01-15"},
		{Row: 3, OrderID: "", Quantity: "1", FulfilledAt: "2025-01-15"},
		{Row: 4, OrderID: "#1002", Quantity: "x", FulfilledAt: "2025-01-15"},
		{Row: 5, OrderID: "#1003", Quantity: "1", FulfilledAt: ""},
		{Row: 6, OrderID: "#1004", Quantity: "2", FulfilledAt: "2025-01-16"},
	}

	result, err := core.NormalizeAll(records, core.SkipInvalid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(result.Items))
	}
	if result.Unfulfilled != 1 {
		t.Errorf("expected 1 unfulfilled row, got %d", result.Unfulfilled)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 record errors, got %d", len(result.Errors))
	}
	// Both bad rows must be reported, not just the first.
	if result.Errors[0].Row != 3 || result.Errors[1].Row != 4 {
		t.Errorf("expected errors for rows 3 and 4, got rows %d and %d",
			result.Errors[0].Row, result.Errors[1].Row)
	}
}

func TestNormalizeAll_AbortPolicyReturnsBatch(t *testing.T) {
	records := []core.RawRecord{
		{Row: 2, OrderID: "#1001", Quantity: "1", FulfilledAt: "2025-01-15"},
		{Row: 3, OrderID: "", Quantity: "1", FulfilledAt: "2025-01-15"},
		{Row: 4, OrderID: "#1002", Quantity: "0", FulfilledAt: "2025-01-15"},
	}

	_, err := core.NormalizeAll(records, core.AbortRun)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var batch core.RecordErrors
	if !errors.As(err, &batch) {
		t.Fatalf("expected RecordErrors, got %T: %v", err, err)
	}
	if len(batch) != 2 {
		t.Errorf("expected both bad rows in the batch, got %d", len(batch))
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		value   string
		want    core.ValidationPolicy
		wantErr bool
	}{
		{"skip", core.SkipInvalid, false},
		{"abort", core.AbortRun, false},
		{" Skip ", core.SkipInvalid, false},
		{"", core.SkipInvalid, false},
		{"explode", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := core.ParsePolicy(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNormalize_KeepsCalendarDateOfExportOffset(t *testing.T) {
	item, err := core.Normalize(core.RawRecord{
		Row: 2, OrderID: "#1001", Quantity: "1",
		FulfilledAt: "2025-01-31 23:45:00 -0700",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 1, 31, 23, 45, 0, 0, time.FixedZone("", -7*3600))
	if !item.FulfilledAt.Equal(want) {
		t.Errorf("expected %v, got %v", want, item.FulfilledAt)
	}
}
