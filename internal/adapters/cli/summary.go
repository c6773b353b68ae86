package cli

import (
	"fmt"
	"strings"

	"fulfillment-invoicer/internal/app"
)

func printRunSummary(result *app.ProcessResult, outputPath string) {
	stats := result.Stats
	inv := result.Invoice

	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  %-58s\n", "FULFILLMENT INVOICE")
	fmt.Printf("  Output : %s\n", outputPath)
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  Rows read        : %6d\n", stats.RowsRead)
	fmt.Printf("  Unfulfilled      : %6d\n", stats.Unfulfilled)
	fmt.Printf("  Invalid rows     : %6d\n", stats.InvalidRows)
	fmt.Printf("  Rows in window   : %6d\n", stats.RowsInWindow)
	fmt.Printf("  Protection lines : %6d\n", stats.ProtectionLines)
	fmt.Printf("  Billable lines   : %6d\n", stats.BillableLines)
	fmt.Printf("  Orders           : %6d\n", stats.Orders)
	fmt.Println(strings.Repeat("-", 62))
	fmt.Printf("  %-20s %8s %10s %12s\n", "POSITION", "COUNT", "RATE", "AMOUNT")
	fmt.Println(strings.Repeat("-", 62))
	fmt.Printf("  %-20s %8d %10s %12s\n", "First SKU",
		inv.FirstSKUCount, result.Tariff.FirstSKUCost.StringFixed(2), inv.FirstSKUTotal.StringFixed(2))
	fmt.Printf("  %-20s %8d %10s %12s\n", "Subsequent SKU",
		inv.SubsequentSKUCount, result.Tariff.SubsequentSKUCost.StringFixed(2), inv.SubsequentSKUTotal.StringFixed(2))
	fmt.Printf("  %-20s %8d %10s %12s\n", "Pieces",
		inv.TotalPieces, result.Tariff.PerPieceCost.StringFixed(2), inv.PieceTotal.StringFixed(2))
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  %-20s %8s %10s %12s\n", "TOTAL", "", "", inv.GrandTotal.StringFixed(2))
	fmt.Println(strings.Repeat("=", 62))
}
