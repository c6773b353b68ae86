package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"fulfillment-invoicer/internal/core"
)

type invoicerService struct {
	logger zerolog.Logger
}

// NewService constructs the pipeline service behind ApplicationService.
func NewService(logger zerolog.Logger) ApplicationService {
	return &invoicerService{logger: logger}
}

// ProcessExport runs the pipeline stages left to right. Each stage produces
// a new slice; nothing mutates a prior stage's output.
func (s *invoicerService) ProcessExport(ctx context.Context, req ProcessRequest) (*ProcessResult, error) {
	if err := req.Tariff.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tariff: %w", err)
	}
	if err := core.ValidateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, fmt.Errorf("invalid date range: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	policy := req.OnInvalid
	if policy == "" {
		policy = core.SkipInvalid
	}

	normalized, err := core.NormalizeAll(req.Records, policy)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize export: %w", err)
	}
	for _, re := range normalized.Errors {
		s.logger.Warn().
			Int("row", re.Row).
			Str("field", re.Field).
			Str("value", re.Value).
			Msg(re.Reason)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filtered := core.FilterByDateRange(normalized.Items, req.StartDate, req.EndDate)
	classified := core.Classify(filtered, req.ProtectionLabels)
	orders := core.GroupByOrder(classified)
	costings := core.AllocateAll(orders, req.Tariff)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary, err := core.Aggregate(costings)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate costings: %w", err)
	}

	result := &ProcessResult{
		AllOrders:         classified,
		WithoutProtection: core.WithoutProtection(classified),
		CostRows:          buildCostRows(costings),
		OrderSummaries:    summary.Orders,
		Invoice:           summary.Invoice,
		Tariff:            req.Tariff,
		Warnings:          normalized.Errors,
		Stats: RunStats{
			RowsRead:     len(req.Records),
			Unfulfilled:  normalized.Unfulfilled,
			InvalidRows:  len(normalized.Errors),
			RowsInWindow: len(classified),
			Orders:       len(orders),
		},
	}
	for _, item := range classified {
		if item.IsProtection {
			result.Stats.ProtectionLines++
		} else {
			result.Stats.BillableLines++
		}
	}

	s.logger.Debug().
		Int("rows_read", result.Stats.RowsRead).
		Int("unfulfilled", result.Stats.Unfulfilled).
		Int("invalid", result.Stats.InvalidRows).
		Int("in_window", result.Stats.RowsInWindow).
		Int("orders", result.Stats.Orders).
		Int("protection_lines", result.Stats.ProtectionLines).
		Str("grand_total", result.Invoice.GrandTotal.StringFixed(2)).
		Msg("export processed")

	return result, nil
}

// buildCostRows flattens per-order costings into the Cost Calculation table,
// appending each order's TOTAL row after its costed lines.
func buildCostRows(costings []core.OrderCosting) []CostRow {
	rows := make([]CostRow, 0, len(costings)*2)
	for _, costing := range costings {
		for _, line := range costing.Lines {
			rows = append(rows, CostRow{
				OrderID:      line.OrderID,
				ProductTitle: line.ProductTitle,
				SKU:          line.SKU,
				Quantity:     line.Quantity,
				SKUCost:      line.SKUCost,
				PieceCost:    line.PieceCost,
				LineTotal:    line.LineTotalCost,
			})
		}
		rows = append(rows, CostRow{
			OrderID:      costing.OrderID,
			ProductTitle: TotalMarker,
			SKUCost:      costing.Total.SKUCost,
			PieceCost:    costing.Total.PieceCost,
			LineTotal:    costing.Total.LineTotalCost,
			IsTotal:      true,
		})
	}
	return rows
}
