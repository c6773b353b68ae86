package core_test

import (
	"errors"
	"testing"

	"fulfillment-invoicer/internal/core"

	"github.com/shopspring/decimal"
)

func testTariff() core.Tariff {
	return core.Tariff{
		FirstSKUCost:      decimal.RequireFromString("1.50"),
		SubsequentSKUCost: decimal.RequireFromString("0.75"),
		PerPieceCost:      decimal.RequireFromString("0.25"),
	}
}

func assertMoney(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if got.StringFixed(2) != want {
		t.Errorf("%s: expected %s, got %s", label, want, got.StringFixed(2))
	}
}

func TestTariff_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tariff  core.Tariff
		wantErr bool
	}{
		{"all positive", testTariff(), false},
		{"all zero", core.Tariff{}, false},
		{
			"negative first SKU cost",
			core.Tariff{FirstSKUCost: decimal.RequireFromString("-1.50")},
			true,
		},
		{
			"negative subsequent SKU cost",
			core.Tariff{SubsequentSKUCost: decimal.RequireFromString("-0.75")},
			true,
		},
		{
			"negative per piece cost",
			core.Tariff{PerPieceCost: decimal.RequireFromString("-0.01")},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tariff.Validate()
			if tt.wantErr {
				if !errors.Is(err, core.ErrNegativeTariff) {
					t.Errorf("expected ErrNegativeTariff, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAllocateOrder_ThreeTierExample(t *testing.T) {
	// Order A1: SKU-X qty 2, SKU-Y qty 1, SKU-X qty 1. The first line gets
	// the first-SKU rate, the new SKU the subsequent rate, the repeat only
	// its pieces.
	order := core.Order{ID: "A1", Lines: []core.LineItem{
		{OrderID: "A1", SKU: "SKU-X", Quantity: 2},
		{OrderID: "A1", SKU: "SKU-Y", Quantity: 1},
		{OrderID: "A1", SKU: "SKU-X", Quantity: 1},
	}}

	costing := core.AllocateOrder(order, testTariff())

	if len(costing.Lines) != 3 {
		t.Fatalf("expected 3 costed lines, got %d", len(costing.Lines))
	}

	wantLines := []struct {
		role    core.SKURole
		sku     string
		piece   string
		total   string
		skuCost string
	}{
		{core.RoleFirstSKU, "SKU-X", "0.50", "2.00", "1.50"},
		{core.RoleSubsequentSKU, "SKU-Y", "0.25", "1.00", "0.75"},
		{core.RoleRepeatSKU, "SKU-X", "0.25", "0.25", "0.00"},
	}
	for i, want := range wantLines {
		line := costing.Lines[i]
		if line.Role != want.role {
			t.Errorf("line %d: expected role %s, got %s", i, want.role, line.Role)
		}
		if line.SKU != want.sku {
			t.Errorf("line %d: expected SKU %s, got %s", i, want.sku, line.SKU)
		}
		assertMoney(t, "sku cost", line.SKUCost, want.skuCost)
		assertMoney(t, "piece cost", line.PieceCost, want.piece)
		assertMoney(t, "line total", line.LineTotalCost, want.total)
	}

	assertMoney(t, "total sku cost", costing.Total.SKUCost, "2.25")
	assertMoney(t, "total piece cost", costing.Total.PieceCost, "1.00")
	assertMoney(t, "total line cost", costing.Total.LineTotalCost, "3.25")
}

func TestAllocateAll_WholeExport(t *testing.T) {
	// Four orders, including a protection line and a single-item order.
	items := []core.LineItem{
		{OrderID: "#1001", Quantity: 1, ProductTitle: "T-Shirt", SKU: "SKU-TS"},
		{OrderID: "#1001", Quantity: 2, ProductTitle: "Mug", SKU: "SKU-MUG"},
		{OrderID: "#1002", Quantity: 3, ProductTitle: "T-Shirt", SKU: "SKU-TS"},
		{OrderID: "#1003", Quantity: 1, ProductTitle: "Hoodie", SKU: "SKU-HOOD"},
		{OrderID: "#1003", Quantity: 1, ProductTitle: "Sticker", SKU: "SKU-STICK"},
		{OrderID: "#1003", Quantity: 1, ProductTitle: "Package protection", SKU: "INS-01", IsProtection: true},
		{OrderID: "#1004", Quantity: 1, ProductTitle: "Single-Item", SKU: "SKU-SINGLE"},
	}

	costings := core.AllocateAll(core.GroupByOrder(items), testTariff())

	if len(costings) != 4 {
		t.Fatalf("expected 4 order costings, got %d", len(costings))
	}

	// Piece and SKU costs per billable line, in source sequence.
	wantPiece := []string{"0.25", "0.50", "0.75", "0.25", "0.25", "0.25"}
	wantSKU := []string{"1.50", "0.75", "1.50", "1.50", "0.75", "1.50"}
	i := 0
	for _, costing := range costings {
		for _, line := range costing.Lines {
			assertMoney(t, "piece cost "+line.SKU, line.PieceCost, wantPiece[i])
			assertMoney(t, "sku cost "+line.SKU, line.SKUCost, wantSKU[i])
			i++
		}
	}
	if i != 6 {
		t.Errorf("expected 6 billable lines across the run, got %d", i)
	}

	// The protection line never shows up as a costed row.
	for _, costing := range costings {
		for _, line := range costing.Lines {
			if line.IsProtection {
				t.Errorf("protection line emitted as costed row in %s", costing.OrderID)
			}
		}
	}

	// The same SKU is charged the first-SKU rate in both orders it leads.
	assertMoney(t, "#1002 total", costings[1].Total.LineTotalCost, "2.25")
	assertMoney(t, "#1004 total", costings[3].Total.LineTotalCost, "1.75")
}

func TestAllocateOrder_RepeatSKUStaysFreeAfterNewSKU(t *testing.T) {
	// A SKU's first occurrence alone decides its charge. Seeing a different
	// new SKU in between does not re-open it.
	order := core.Order{ID: "#1", Lines: []core.LineItem{
		{OrderID: "#1", SKU: "A", Quantity: 1},
		{OrderID: "#1", SKU: "B", Quantity: 1},
		{OrderID: "#1", SKU: "A", Quantity: 1},
		{OrderID: "#1", SKU: "B", Quantity: 1},
	}}

	costing := core.AllocateOrder(order, testTariff())

	wantRoles := []core.SKURole{core.RoleFirstSKU, core.RoleSubsequentSKU, core.RoleRepeatSKU, core.RoleRepeatSKU}
	for i, want := range wantRoles {
		if costing.Lines[i].Role != want {
			t.Errorf("line %d: expected role %s, got %s", i, want, costing.Lines[i].Role)
		}
	}
	assertMoney(t, "total sku cost", costing.Total.SKUCost, "2.25")
}

func TestAllocateOrder_ProtectionOnlyOrderGetsZeroTotal(t *testing.T) {
	order := core.Order{ID: "#9", Lines: []core.LineItem{
		{OrderID: "#9", SKU: "INS-01", Quantity: 1, ProductTitle: "Package protection", IsProtection: true},
	}}

	costing := core.AllocateOrder(order, testTariff())

	if len(costing.Lines) != 0 {
		t.Errorf("expected no costed lines, got %d", len(costing.Lines))
	}
	// The TOTAL row still exists, with all components zero.
	assertMoney(t, "total sku cost", costing.Total.SKUCost, "0.00")
	assertMoney(t, "total piece cost", costing.Total.PieceCost, "0.00")
	assertMoney(t, "total line cost", costing.Total.LineTotalCost, "0.00")
}

func TestAllocateOrder_ReorderingMovesFirstSKUCharge(t *testing.T) {
	forward := core.Order{ID: "#1", Lines: []core.LineItem{
		{OrderID: "#1", SKU: "A", Quantity: 1},
		{OrderID: "#1", SKU: "B", Quantity: 1},
	}}
	reversed := core.Order{ID: "#1", Lines: []core.LineItem{
		{OrderID: "#1", SKU: "B", Quantity: 1},
		{OrderID: "#1", SKU: "A", Quantity: 1},
	}}

	f := core.AllocateOrder(forward, testTariff())
	r := core.AllocateOrder(reversed, testTariff())

	if f.Lines[0].SKU != "A" || f.Lines[0].Role != core.RoleFirstSKU {
		t.Errorf("forward: expected A charged first, got %s as %s", f.Lines[0].SKU, f.Lines[0].Role)
	}
	if r.Lines[0].SKU != "B" || r.Lines[0].Role != core.RoleFirstSKU {
		t.Errorf("reversed: expected B charged first, got %s as %s", r.Lines[0].SKU, r.Lines[0].Role)
	}
	// Totals agree even though the charged line moved.
	if !f.Total.LineTotalCost.Equal(r.Total.LineTotalCost) {
		t.Errorf("totals diverged: %s vs %s",
			f.Total.LineTotalCost.StringFixed(2), r.Total.LineTotalCost.StringFixed(2))
	}
}

func TestAllocateOrder_RoleCountsPerDistinctSKU(t *testing.T) {
	// An order with n distinct billable SKUs has exactly one first-SKU line
	// and n-1 subsequent lines; every other billable line is a repeat.
	order := core.Order{ID: "#1", Lines: []core.LineItem{
		{OrderID: "#1", SKU: "A", Quantity: 1},
		{OrderID: "#1", SKU: "B", Quantity: 2},
		{OrderID: "#1", SKU: "A", Quantity: 1},
		{OrderID: "#1", SKU: "C", Quantity: 1},
		{OrderID: "#1", SKU: "B", Quantity: 3},
		{OrderID: "#1", SKU: "C", Quantity: 1},
	}}

	costing := core.AllocateOrder(order, testTariff())

	counts := map[core.SKURole]int{}
	for _, line := range costing.Lines {
		counts[line.Role]++
		assertMoney(t, "piece cost", line.PieceCost,
			decimal.RequireFromString("0.25").Mul(decimal.NewFromInt(int64(line.Quantity))).StringFixed(2))
	}
	if counts[core.RoleFirstSKU] != 1 {
		t.Errorf("expected exactly 1 first-SKU line, got %d", counts[core.RoleFirstSKU])
	}
	if counts[core.RoleSubsequentSKU] != 2 {
		t.Errorf("expected 2 subsequent-SKU lines for 3 distinct SKUs, got %d", counts[core.RoleSubsequentSKU])
	}
	if counts[core.RoleRepeatSKU] != 3 {
		t.Errorf("expected 3 repeat lines, got %d", counts[core.RoleRepeatSKU])
	}
}
