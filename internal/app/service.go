package app

import "context"

// ApplicationService is the single interface all adapters (CLI, watcher,
// workbook renderer) call. It decouples presentation and file I/O from the
// engine. Implementations must contain no fmt.Println, no prompting, and no
// display logic of any kind.
type ApplicationService interface {
	// ProcessExport runs the full pipeline over one export: normalize the
	// raw records, filter them to the date window, classify protection
	// lines, group into orders, allocate tariff costs, and aggregate the
	// order and invoice summaries. The request's records must be in source
	// order; the allocator's first-SKU decision depends on it.
	ProcessExport(ctx context.Context, req ProcessRequest) (*ProcessResult, error)
}
