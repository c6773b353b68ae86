// Package xlsxout renders a processing result into a styled workbook.
package xlsxout

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"fulfillment-invoicer/internal/app"
)

// Sheet names, one per output table.
const (
	SheetAllOrders         = "All Orders"
	SheetWithoutProtection = "Without Protection"
	SheetCostCalculation   = "Cost Calculation"
	SheetOrderSummary      = "Order Summary"
	SheetFinalInvoice      = "Final Invoice"
)

const fulfilledAtFormat = "DD.MM.YYYY HH:MM"

// fulfilledAtWidth matches the width the timestamp format needs.
const fulfilledAtWidth = 20

type styles struct {
	header    int
	money     int
	date      int
	bold      int
	boldMoney int
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	if st.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return st, err
	}
	if st.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return st, err
	}
	// Built-in format 2 is "0.00".
	if st.money, err = f.NewStyle(&excelize.Style{NumFmt: 2}); err != nil {
		return st, err
	}
	if st.boldMoney, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: 2}); err != nil {
		return st, err
	}
	dateFmt := fulfilledAtFormat
	if st.date, err = f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt}); err != nil {
		return st, err
	}
	return st, nil
}

// Write renders the result into a new workbook with one sheet per table.
func Write(result *app.ProcessResult) (*excelize.File, error) {
	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("failed to build styles: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetAllOrders); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, name := range []string{SheetWithoutProtection, SheetCostCalculation, SheetOrderSummary, SheetFinalInvoice} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	if err := writeLineItems(f, st, SheetAllOrders, result.AllOrders); err != nil {
		return nil, err
	}
	if err := writeLineItems(f, st, SheetWithoutProtection, result.WithoutProtection); err != nil {
		return nil, err
	}
	if err := writeCostRows(f, st, result.CostRows); err != nil {
		return nil, err
	}
	if err := writeOrderSummaries(f, st, result); err != nil {
		return nil, err
	}
	if err := writeInvoice(f, st, result); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// WriteFile renders the result and saves the workbook to path.
func WriteFile(result *app.ProcessResult, path string) error {
	f, err := Write(result)
	if err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return f.Close()
}

// cell returns the A1-style name for 1-based column and row.
func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func colName(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return name
}

// sheetWidths accumulates the widest content per column so columns can be
// sized to max content length plus padding.
type sheetWidths []float64

func newSheetWidths(headers []string) sheetWidths {
	w := make(sheetWidths, len(headers))
	for i, h := range headers {
		w.fit(i, h)
	}
	return w
}

func (w sheetWidths) fit(col int, content string) {
	if l := float64(len(content)); l > w[col] {
		w[col] = l
	}
}

// decorate applies the shared sheet chrome: bold header, frozen top row,
// auto filter over the used range, and the accumulated column widths.
func decorate(f *excelize.File, st styles, sheet string, widths sheetWidths, lastRow int) error {
	lastCol := colName(len(widths))

	if err := f.SetCellStyle(sheet, "A1", cell(len(widths), 1), st.header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}
	if lastRow < 1 {
		lastRow = 1
	}
	if err := f.AutoFilter(sheet, fmt.Sprintf("A1:%s%d", lastCol, lastRow), nil); err != nil {
		return fmt.Errorf("failed to add auto filter: %w", err)
	}
	for i, width := range widths {
		if err := f.SetColWidth(sheet, colName(i+1), colName(i+1), width+2); err != nil {
			return fmt.Errorf("failed to size column: %w", err)
		}
	}
	return nil
}

func setHeaders(f *excelize.File, sheet string, headers []string) error {
	for i, h := range headers {
		if err := f.SetCellValue(sheet, cell(i+1, 1), h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	return nil
}

func setMoney(f *excelize.File, st styles, sheet, ref string, amount decimal.Decimal, bold bool) error {
	if err := f.SetCellValue(sheet, ref, amount.InexactFloat64()); err != nil {
		return err
	}
	style := st.money
	if bold {
		style = st.boldMoney
	}
	return f.SetCellStyle(sheet, ref, ref, style)
}
