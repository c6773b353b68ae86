package xlsxout

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"fulfillment-invoicer/internal/app"
	"fulfillment-invoicer/internal/core"
)

var lineItemHeaders = []string{
	"Name",
	"Fulfilled at",
	"Fulfillment Status",
	"Financial Status",
	"Lineitem quantity",
	"Lineitem name",
	"Lineitem sku",
	"Total",
}

func writeLineItems(f *excelize.File, st styles, sheet string, items []core.LineItem) error {
	if err := setHeaders(f, sheet, lineItemHeaders); err != nil {
		return err
	}
	widths := newSheetWidths(lineItemHeaders)

	for i, item := range items {
		row := i + 2
		values := []any{
			item.OrderID,
			item.FulfilledAt,
			item.FulfillmentStatus,
			item.FinancialStatus,
			item.Quantity,
			item.ProductTitle,
			item.SKU,
			item.Price,
		}
		for col, v := range values {
			if err := f.SetCellValue(sheet, cell(col+1, row), v); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
			}
		}
		widths.fit(0, item.OrderID)
		widths.fit(2, item.FulfillmentStatus)
		widths.fit(3, item.FinancialStatus)
		widths.fit(4, strconv.Itoa(item.Quantity))
		widths.fit(5, item.ProductTitle)
		widths.fit(6, item.SKU)
		widths.fit(7, item.Price)
	}

	lastRow := len(items) + 1
	if len(items) > 0 {
		if err := f.SetCellStyle(sheet, cell(2, 2), cell(2, lastRow), st.date); err != nil {
			return fmt.Errorf("failed to style %s dates: %w", sheet, err)
		}
	}
	if err := decorate(f, st, sheet, widths, lastRow); err != nil {
		return err
	}
	// The timestamp format needs a fixed width regardless of content.
	return f.SetColWidth(sheet, "B", "B", fulfilledAtWidth)
}

var costHeaders = []string{
	"Name",
	"Lineitem quantity",
	"Lineitem name",
	"Lineitem sku",
	"Piece Cost",
	"SKU Cost",
	"Line Total Cost",
}

func writeCostRows(f *excelize.File, st styles, rows []app.CostRow) error {
	sheet := SheetCostCalculation
	if err := setHeaders(f, sheet, costHeaders); err != nil {
		return err
	}
	widths := newSheetWidths(costHeaders)

	for i, r := range rows {
		rowNum := i + 2
		if err := f.SetCellValue(sheet, cell(1, rowNum), r.OrderID); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, rowNum, err)
		}
		// TOTAL rows have no quantity of their own.
		if !r.IsTotal {
			if err := f.SetCellValue(sheet, cell(2, rowNum), r.Quantity); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", sheet, rowNum, err)
			}
		}
		if err := f.SetCellValue(sheet, cell(3, rowNum), r.ProductTitle); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, rowNum, err)
		}
		if err := f.SetCellValue(sheet, cell(4, rowNum), r.SKU); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, rowNum, err)
		}
		if err := setMoney(f, st, sheet, cell(5, rowNum), r.PieceCost, r.IsTotal); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, rowNum, err)
		}
		if err := setMoney(f, st, sheet, cell(6, rowNum), r.SKUCost, r.IsTotal); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, rowNum, err)
		}
		if err := setMoney(f, st, sheet, cell(7, rowNum), r.LineTotal, r.IsTotal); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, rowNum, err)
		}
		if r.IsTotal {
			if err := f.SetCellStyle(sheet, cell(1, rowNum), cell(4, rowNum), st.bold); err != nil {
				return fmt.Errorf("failed to style %s row %d: %w", sheet, rowNum, err)
			}
		}

		widths.fit(0, r.OrderID)
		widths.fit(1, strconv.Itoa(r.Quantity))
		widths.fit(2, r.ProductTitle)
		widths.fit(3, r.SKU)
		widths.fit(4, r.PieceCost.StringFixed(2))
		widths.fit(5, r.SKUCost.StringFixed(2))
		widths.fit(6, r.LineTotal.StringFixed(2))
	}

	return decorate(f, st, sheet, widths, len(rows)+1)
}

var summaryHeaders = []string{
	"Name",
	"Total Pieces",
	"Distinct SKUs",
	"Products",
	"SKUs",
	"Order Total Cost",
}

func writeOrderSummaries(f *excelize.File, st styles, result *app.ProcessResult) error {
	sheet := SheetOrderSummary
	if err := setHeaders(f, sheet, summaryHeaders); err != nil {
		return err
	}
	widths := newSheetWidths(summaryHeaders)

	for i, s := range result.OrderSummaries {
		row := i + 2
		values := []any{s.OrderID, s.TotalPieces, s.DistinctSKUs, s.Products, s.SKUs}
		for col, v := range values {
			if err := f.SetCellValue(sheet, cell(col+1, row), v); err != nil {
				return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
			}
		}
		if err := setMoney(f, st, sheet, cell(6, row), s.OrderTotalCost, false); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
		}

		widths.fit(0, s.OrderID)
		widths.fit(1, strconv.Itoa(s.TotalPieces))
		widths.fit(2, strconv.Itoa(s.DistinctSKUs))
		widths.fit(3, s.Products)
		widths.fit(4, s.SKUs)
		widths.fit(5, s.OrderTotalCost.StringFixed(2))
	}

	return decorate(f, st, sheet, widths, len(result.OrderSummaries)+1)
}

var invoiceHeaders = []string{"Position", "Count", "Rate", "Amount"}

func writeInvoice(f *excelize.File, st styles, result *app.ProcessResult) error {
	sheet := SheetFinalInvoice
	if err := setHeaders(f, sheet, invoiceHeaders); err != nil {
		return err
	}
	widths := newSheetWidths(invoiceHeaders)

	inv := result.Invoice
	tariff := result.Tariff

	positions := []struct {
		name   string
		count  int
		rate   decimal.Decimal
		amount decimal.Decimal
	}{
		{"First SKU", inv.FirstSKUCount, tariff.FirstSKUCost, inv.FirstSKUTotal},
		{"Subsequent SKU", inv.SubsequentSKUCount, tariff.SubsequentSKUCost, inv.SubsequentSKUTotal},
		{"Pieces", inv.TotalPieces, tariff.PerPieceCost, inv.PieceTotal},
	}

	if err := f.SetCellValue(sheet, "A2", "Orders"); err != nil {
		return fmt.Errorf("failed to write %s: %w", sheet, err)
	}
	if err := f.SetCellValue(sheet, "B2", inv.Orders); err != nil {
		return fmt.Errorf("failed to write %s: %w", sheet, err)
	}
	widths.fit(1, strconv.Itoa(inv.Orders))

	for i, p := range positions {
		row := i + 3
		if err := f.SetCellValue(sheet, cell(1, row), p.name); err != nil {
			return fmt.Errorf("failed to write %s: %w", sheet, err)
		}
		if err := f.SetCellValue(sheet, cell(2, row), p.count); err != nil {
			return fmt.Errorf("failed to write %s: %w", sheet, err)
		}
		if err := setMoney(f, st, sheet, cell(3, row), p.rate, false); err != nil {
			return fmt.Errorf("failed to write %s: %w", sheet, err)
		}
		if err := setMoney(f, st, sheet, cell(4, row), p.amount, false); err != nil {
			return fmt.Errorf("failed to write %s: %w", sheet, err)
		}
		widths.fit(0, p.name)
		widths.fit(1, strconv.Itoa(p.count))
		widths.fit(2, p.rate.StringFixed(2))
		widths.fit(3, p.amount.StringFixed(2))
	}

	totalRow := len(positions) + 3
	if err := f.SetCellValue(sheet, cell(1, totalRow), app.TotalMarker); err != nil {
		return fmt.Errorf("failed to write %s: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, cell(1, totalRow), cell(3, totalRow), st.bold); err != nil {
		return fmt.Errorf("failed to style %s: %w", sheet, err)
	}
	if err := setMoney(f, st, sheet, cell(4, totalRow), inv.GrandTotal, true); err != nil {
		return fmt.Errorf("failed to write %s: %w", sheet, err)
	}
	widths.fit(3, inv.GrandTotal.StringFixed(2))

	return decorate(f, st, sheet, widths, totalRow)
}
