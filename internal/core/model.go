package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is one row of the order export as handed over by the reader,
// before any validation. All fields are the raw cell text. Row is the
// 1-based source row number (the header is row 1) used in error messages.
type RawRecord struct {
	Row               int
	OrderID           string
	SKU               string
	Quantity          string
	ProductTitle      string
	FulfilledAt       string
	Price             string
	FulfillmentStatus string
	FinancialStatus   string
}

// LineItem is a normalized export row. Immutable once built; each pipeline
// stage derives a new slice instead of mutating an earlier one.
type LineItem struct {
	OrderID           string
	SKU               string
	Quantity          int
	ProductTitle      string
	FulfilledAt       time.Time
	Price             string // line-item price, passed through untouched
	FulfillmentStatus string
	FinancialStatus   string
	IsProtection      bool // set by Classify; excluded from all cost math
}

// Order is the ordered set of line items sharing one order id. Line sequence
// is preserved from the source and never re-sorted: the allocator's
// first-SKU decision depends on it.
type Order struct {
	ID    string
	Lines []LineItem
}

// Tariff holds the three allocation rates applied uniformly to every order
// in one run. Validated once up front, then shared read-only.
type Tariff struct {
	FirstSKUCost      decimal.Decimal
	SubsequentSKUCost decimal.Decimal
	PerPieceCost      decimal.Decimal
}

// SKURole records which tier of the tariff a billable line's SKU charge
// came from.
type SKURole string

const (
	RoleFirstSKU      SKURole = "FIRST_SKU"
	RoleSubsequentSKU SKURole = "SUBSEQUENT_SKU"
	RoleRepeatSKU     SKURole = "REPEAT_SKU"
)

// CostedLineItem is a billable line item with its allocated costs.
type CostedLineItem struct {
	LineItem
	Role          SKURole
	SKUCost       decimal.Decimal
	PieceCost     decimal.Decimal
	LineTotalCost decimal.Decimal
}

// CostTotals is the synthetic TOTAL row appended after an order's costed
// lines. It carries no SKU or product identity, only the summed components.
type CostTotals struct {
	SKUCost       decimal.Decimal
	PieceCost     decimal.Decimal
	LineTotalCost decimal.Decimal
}

// OrderCosting is the allocator's output for one order: the billable lines
// in source sequence plus the TOTAL row. Orders with no billable lines get
// an all-zero TOTAL row rather than no row, so downstream consumers see one
// TOTAL per order unconditionally.
type OrderCosting struct {
	OrderID string
	Lines   []CostedLineItem
	Total   CostTotals
}

// OrderSummary is one row of the per-order summary table. Pieces, SKU
// counts, and the concatenated lists cover billable lines only.
type OrderSummary struct {
	OrderID        string
	TotalPieces    int
	DistinctSKUs   int
	Products       string // billable product titles in source sequence
	SKUs           string // distinct billable SKUs in first-seen sequence
	OrderTotalCost decimal.Decimal
}

// InvoiceSummary is the grand roll-up for the whole run, broken down by
// tariff component. Counts are carried alongside the totals so a renderer
// can show count, rate and amount per component.
type InvoiceSummary struct {
	Orders             int
	FirstSKUCount      int
	SubsequentSKUCount int
	TotalPieces        int
	FirstSKUTotal      decimal.Decimal
	SubsequentSKUTotal decimal.Decimal
	PieceTotal         decimal.Decimal
	GrandTotal         decimal.Decimal
}

// RunSummary bundles the aggregator's two outputs.
type RunSummary struct {
	Orders  []OrderSummary
	Invoice InvoiceSummary
}
