package app

import (
	"github.com/shopspring/decimal"

	"fulfillment-invoicer/internal/core"
)

// CostRow is one row of the Cost Calculation table: a costed line item or,
// when IsTotal is set, the order's synthetic TOTAL row. TOTAL rows carry the
// marker in ProductTitle and no SKU or quantity, and renderers give them a
// distinguishing style.
type CostRow struct {
	OrderID      string
	ProductTitle string
	SKU          string
	Quantity     int
	SKUCost      decimal.Decimal
	PieceCost    decimal.Decimal
	LineTotal    decimal.Decimal
	IsTotal      bool
}

// TotalMarker is the ProductTitle of a TOTAL row.
const TotalMarker = "TOTAL"

// RunStats counts what happened to the export's rows at each stage.
type RunStats struct {
	RowsRead        int
	Unfulfilled     int // dropped: no fulfillment timestamp
	InvalidRows     int // dropped or fatal per the validation policy
	RowsInWindow    int
	Orders          int
	ProtectionLines int
	BillableLines   int
}

// ProcessResult carries the four output tables plus run diagnostics.
type ProcessResult struct {
	// All Orders: normalized, date-filtered line items, ungrouped, in
	// source order, protection lines included.
	AllOrders []core.LineItem

	// Without Protection: the same sequence minus protection lines.
	WithoutProtection []core.LineItem

	// Cost Calculation: costed lines interleaved with per-order TOTAL rows.
	CostRows []CostRow

	// Per-order summary table, in first-seen order.
	OrderSummaries []core.OrderSummary

	// Final Invoice: the grand roll-up by tariff component.
	Invoice core.InvoiceSummary

	// Tariff echoes the rates the run used, for renderers that show them.
	Tariff core.Tariff

	Stats    RunStats
	Warnings core.RecordErrors // rows skipped under SkipInvalid
}
