package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Validate rejects negative rates. Zero rates are allowed; a zero rate just
// makes that tariff component free.
func (t Tariff) Validate() error {
	rates := []struct {
		name string
		rate decimal.Decimal
	}{
		{"first SKU cost", t.FirstSKUCost},
		{"subsequent SKU cost", t.SubsequentSKUCost},
		{"per piece cost", t.PerPieceCost},
	}
	for _, r := range rates {
		if r.rate.IsNegative() {
			return fmt.Errorf("%w: %s is %s", ErrNegativeTariff, r.name, r.rate.String())
		}
	}
	return nil
}

// AllocateOrder prices one order's lines, walking them in source sequence.
// The first billable line is charged the first-SKU rate. After that, each
// billable line with a SKU not yet charged within this order is charged the
// subsequent-SKU rate; a SKU already charged costs nothing again. Every
// billable line is also charged the per-piece rate times its quantity.
// Protection lines carry no cost at all and are not emitted as costed rows.
//
// Walk order decides which line gets the first-SKU rate, so reordering an
// order's lines changes the allocation. That sensitivity is intended: the
// tariff rewards order-level SKU diversity as the order was placed.
func AllocateOrder(order Order, tariff Tariff) OrderCosting {
	costing := OrderCosting{OrderID: order.ID}
	seenSKUs := make(map[string]struct{})
	firstCharged := false

	for _, item := range order.Lines {
		if item.IsProtection {
			continue
		}

		var role SKURole
		var skuCost decimal.Decimal
		_, seen := seenSKUs[item.SKU]
		switch {
		case !firstCharged:
			role = RoleFirstSKU
			skuCost = tariff.FirstSKUCost
			firstCharged = true
			seenSKUs[item.SKU] = struct{}{}
		case !seen:
			role = RoleSubsequentSKU
			skuCost = tariff.SubsequentSKUCost
			seenSKUs[item.SKU] = struct{}{}
		default:
			role = RoleRepeatSKU // pieces only
		}

		pieceCost := tariff.PerPieceCost.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lineTotal := skuCost.Add(pieceCost)

		costing.Lines = append(costing.Lines, CostedLineItem{
			LineItem:      item,
			Role:          role,
			SKUCost:       skuCost,
			PieceCost:     pieceCost,
			LineTotalCost: lineTotal,
		})
		costing.Total.SKUCost = costing.Total.SKUCost.Add(skuCost)
		costing.Total.PieceCost = costing.Total.PieceCost.Add(pieceCost)
		costing.Total.LineTotalCost = costing.Total.LineTotalCost.Add(lineTotal)
	}
	return costing
}

// AllocateAll prices every order independently. SKU state never crosses an
// order boundary: the same SKU in two orders is charged in both.
func AllocateAll(orders []Order, tariff Tariff) []OrderCosting {
	costings := make([]OrderCosting, len(orders))
	for i, order := range orders {
		costings[i] = AllocateOrder(order, tariff)
	}
	return costings
}
