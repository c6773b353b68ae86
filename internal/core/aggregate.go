package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Aggregate rolls per-order costings into the order summary table and the
// run's invoice summary. Summaries come out in the same sequence the
// costings came in, which the grouper made first-seen order.
//
// Every order's TOTAL row is cross-checked against an independent sum of its
// lines. A mismatch means the allocator is broken, so it fails the run with
// an InvariantViolationError instead of papering over the difference.
func Aggregate(costings []OrderCosting) (*RunSummary, error) {
	summary := &RunSummary{
		Orders:  make([]OrderSummary, 0, len(costings)),
		Invoice: InvoiceSummary{Orders: len(costings)},
	}

	for _, costing := range costings {
		var skuSum, pieceSum, totalSum decimal.Decimal
		pieces := 0
		titles := make([]string, 0, len(costing.Lines))
		skus := make([]string, 0, len(costing.Lines))
		seenSKUs := make(map[string]struct{}, len(costing.Lines))

		for _, line := range costing.Lines {
			skuSum = skuSum.Add(line.SKUCost)
			pieceSum = pieceSum.Add(line.PieceCost)
			totalSum = totalSum.Add(line.LineTotalCost)
			pieces += line.Quantity
			titles = append(titles, line.ProductTitle)
			if _, seen := seenSKUs[line.SKU]; !seen {
				seenSKUs[line.SKU] = struct{}{}
				skus = append(skus, line.SKU)
			}

			switch line.Role {
			case RoleFirstSKU:
				summary.Invoice.FirstSKUCount++
			case RoleSubsequentSKU:
				summary.Invoice.SubsequentSKUCount++
			}
		}

		if err := checkTotals(costing, skuSum, pieceSum, totalSum); err != nil {
			return nil, err
		}

		summary.Orders = append(summary.Orders, OrderSummary{
			OrderID:        costing.OrderID,
			TotalPieces:    pieces,
			DistinctSKUs:   len(seenSKUs),
			Products:       strings.Join(titles, ", "),
			SKUs:           strings.Join(skus, ", "),
			OrderTotalCost: totalSum,
		})

		summary.Invoice.TotalPieces += pieces
		summary.Invoice.FirstSKUTotal = summary.Invoice.FirstSKUTotal.Add(skuOfRole(costing, RoleFirstSKU))
		summary.Invoice.SubsequentSKUTotal = summary.Invoice.SubsequentSKUTotal.Add(skuOfRole(costing, RoleSubsequentSKU))
		summary.Invoice.PieceTotal = summary.Invoice.PieceTotal.Add(pieceSum)
		summary.Invoice.GrandTotal = summary.Invoice.GrandTotal.Add(totalSum)
	}

	return summary, nil
}

// checkTotals compares an order's stored TOTAL row against independently
// recomputed sums, component by component.
func checkTotals(costing OrderCosting, skuSum, pieceSum, totalSum decimal.Decimal) error {
	checks := []struct {
		field    string
		stored   decimal.Decimal
		computed decimal.Decimal
	}{
		{"SKU cost", costing.Total.SKUCost, skuSum},
		{"piece cost", costing.Total.PieceCost, pieceSum},
		{"line total", costing.Total.LineTotalCost, totalSum},
	}
	for _, c := range checks {
		if !c.stored.Equal(c.computed) {
			return &InvariantViolationError{
				OrderID:  costing.OrderID,
				Field:    c.field,
				Stored:   c.stored,
				Computed: c.computed,
			}
		}
	}
	return nil
}

// skuOfRole sums the SKU charges of one role within an order.
func skuOfRole(costing OrderCosting, role SKURole) decimal.Decimal {
	var sum decimal.Decimal
	for _, line := range costing.Lines {
		if line.Role == role {
			sum = sum.Add(line.SKUCost)
		}
	}
	return sum
}
