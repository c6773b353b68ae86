// Package csvin reads order export CSVs into raw records for the pipeline.
package csvin

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fulfillment-invoicer/internal/core"
)

// Export column names. The reader matches them exactly after trimming.
const (
	colName              = "Name"
	colFulfilledAt       = "Fulfilled at"
	colQuantity          = "Lineitem quantity"
	colLineitemName      = "Lineitem name"
	colSKU               = "Lineitem sku"
	colTotal             = "Total"
	colFulfillmentStatus = "Fulfillment Status"
	colFinancialStatus   = "Financial Status"
)

// requiredColumns must all be present in the header. The status columns are
// optional; exports without them just produce blank status fields.
var requiredColumns = []string{
	colName, colFulfilledAt, colQuantity, colLineitemName, colSKU, colTotal,
}

// ReadResult is the parsed export plus read-level counts.
type ReadResult struct {
	Records  []core.RawRecord
	RowsRead int
}

// Read parses an order export. Rows are returned in file order with their
// 1-based source row numbers (the header is row 1). Short rows are padded:
// a missing trailing cell reads as empty. After reading, the fulfillment
// timestamp and status columns are forward-filled per order, because exports
// populate them only on an order's first line.
func Read(r io.Reader) (*ReadResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("export is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := mapHeader(header)
	if missing := missingColumns(index); len(missing) > 0 {
		return nil, fmt.Errorf("export is missing required columns: %s", strings.Join(missing, ", "))
	}

	result := &ReadResult{}
	row := 1
	for {
		row++
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row, err)
		}

		cell := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		result.Records = append(result.Records, core.RawRecord{
			Row:               row,
			OrderID:           cell(colName),
			SKU:               cell(colSKU),
			Quantity:          cell(colQuantity),
			ProductTitle:      cell(colLineitemName),
			FulfilledAt:       cell(colFulfilledAt),
			Price:             cell(colTotal),
			FulfillmentStatus: cell(colFulfillmentStatus),
			FinancialStatus:   cell(colFinancialStatus),
		})
	}
	result.RowsRead = len(result.Records)

	forwardFill(result.Records)
	return result, nil
}

// ReadFile opens and parses the export at path.
func ReadFile(path string) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// mapHeader indexes columns by their trimmed names. A UTF-8 BOM on the first
// cell is stripped; some export tools prepend one.
func mapHeader(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		index[strings.TrimSpace(name)] = i
	}
	return index
}

func missingColumns(index map[string]int) []string {
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// forwardFill propagates the fulfillment timestamp and status fields from
// the most recent non-empty row of the same order to later empty rows, in
// file order.
func forwardFill(records []core.RawRecord) {
	type carried struct {
		fulfilledAt       string
		fulfillmentStatus string
		financialStatus   string
	}
	last := make(map[string]*carried)

	for i := range records {
		key := strings.TrimSpace(records[i].OrderID)
		c, ok := last[key]
		if !ok {
			c = &carried{}
			last[key] = c
		}

		fill(&records[i].FulfilledAt, &c.fulfilledAt)
		fill(&records[i].FulfillmentStatus, &c.fulfillmentStatus)
		fill(&records[i].FinancialStatus, &c.financialStatus)
	}
}

// fill copies the carried value into an empty field, or refreshes the
// carried value from a non-empty one.
func fill(field, carried *string) {
	if strings.TrimSpace(*field) == "" {
		*field = *carried
		return
	}
	*carried = *field
}
