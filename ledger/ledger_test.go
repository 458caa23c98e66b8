package ledger

import (
	"regexp"
	"testing"
	"time"

	"po-backend/models"
)

func openItem(qty, net float64) models.LineItem {
	return models.LineItem{
		Po:       "4500010431",
		Pn:       "MAT001",
		Line:     "12",
		PoLine:   "4500010431/12",
		Qty:      qty,
		NetPrice: net,
	}
}

func TestApplyShipmentFull(t *testing.T) {
	open := openItem(10, 2.5)

	res, err := ApplyShipment(open, 10, ShipmentMeta{TrackingNo: "TRK-1"}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Full {
		t.Error("shipping the whole quantity should be a full shipment")
	}
	if res.RemainingQty != 0 {
		t.Errorf("remaining qty = %v, want 0", res.RemainingQty)
	}
	if res.Closed.Qty != 10 {
		t.Errorf("closed qty = %v, want 10", res.Closed.Qty)
	}
	if res.Closed.TotalPrice != 25.00 {
		t.Errorf("closed total = %v, want 25.00", res.Closed.TotalPrice)
	}
	if res.Closed.TrackingNo != "TRK-1" {
		t.Errorf("tracking no = %q, want TRK-1", res.Closed.TrackingNo)
	}
}

func TestApplyShipmentPartial(t *testing.T) {
	open := openItem(10, 2.5)

	res, err := ApplyShipment(open, 3, ShipmentMeta{}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Full {
		t.Error("partial quantity should not report a full shipment")
	}
	if res.RemainingQty != 7 {
		t.Errorf("remaining qty = %v, want 7", res.RemainingQty)
	}
	if res.Open.Qty != 7 {
		t.Errorf("open qty = %v, want 7", res.Open.Qty)
	}
	if res.Open.TotalPrice != 17.50 {
		t.Errorf("open total = %v, want 17.50", res.Open.TotalPrice)
	}
	if res.Closed.Qty != 3 {
		t.Errorf("closed qty = %v, want 3", res.Closed.Qty)
	}
	if res.Closed.TotalPrice != 7.50 {
		t.Errorf("closed total = %v, want 7.50", res.Closed.TotalPrice)
	}
}

func TestApplyShipmentInvalidQuantity(t *testing.T) {
	open := openItem(5, 1)

	for _, qty := range []float64{0, -1, 5.01, 100} {
		if _, err := ApplyShipment(open, qty, ShipmentMeta{}, time.Now()); err != ErrInvalidQuantity {
			t.Errorf("qty %v: err = %v, want ErrInvalidQuantity", qty, err)
		}
	}
}

func TestApplyShipmentBatchNo(t *testing.T) {
	open := openItem(4, 1)
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	res, err := ApplyShipment(open, 2, ShipmentMeta{}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pattern := regexp.MustCompile(`^SHIP-20260115-[0-9A-F]{8}$`)
	if !pattern.MatchString(res.BatchNo) {
		t.Errorf("generated batch no %q does not match SHIP-<date>-<random8>", res.BatchNo)
	}
	if res.Closed.ShipmentBatchNo != res.BatchNo {
		t.Error("closed record should carry the generated batch no")
	}

	// A caller-supplied batch number wins over generation.
	res, err = ApplyShipment(open, 2, ShipmentMeta{BatchNo: "SHIP-20260101-AAAA1111"}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BatchNo != "SHIP-20260101-AAAA1111" {
		t.Errorf("batch no = %q, want caller-supplied value", res.BatchNo)
	}
}

func TestApplyReturn(t *testing.T) {
	closed := openItem(6, 3)
	closed.ShipmentBatchNo = "SHIP-20260101-AAAA1111"

	// Partial return keeps a reduced closed record.
	res, err := ApplyReturn(closed, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Full {
		t.Error("partial return reported as full")
	}
	if res.Closed.Qty != 4 {
		t.Errorf("surviving closed qty = %v, want 4", res.Closed.Qty)
	}
	if res.Closed.TotalPrice != 12.00 {
		t.Errorf("surviving closed total = %v, want 12.00", res.Closed.TotalPrice)
	}

	if res.ReturnedQty != 2 {
		t.Errorf("partial returned qty = %v, want 2", res.ReturnedQty)
	}

	// Returning everything (or more) is a full return; the quantity
	// credited back is clamped to what the closed record holds.
	for _, qty := range []float64{6, 7, 100} {
		res, err = ApplyReturn(closed, qty)
		if err != nil {
			t.Fatalf("qty %v: unexpected error: %v", qty, err)
		}
		if !res.Full {
			t.Errorf("qty %v: expected full return", qty)
		}
		if res.ReturnedQty != 6 {
			t.Errorf("qty %v: returned qty = %v, want 6", qty, res.ReturnedQty)
		}
	}

	if _, err := ApplyReturn(closed, 0); err != ErrInvalidQuantity {
		t.Errorf("zero return qty: err = %v, want ErrInvalidQuantity", err)
	}
	if _, err := ApplyReturn(closed, -2); err != ErrInvalidQuantity {
		t.Errorf("negative return qty: err = %v, want ErrInvalidQuantity", err)
	}
}

func TestReopenedRecordStripsBatch(t *testing.T) {
	closed := openItem(6, 3)
	closed.ID = 42
	closed.ShipmentBatchNo = "SHIP-20260101-AAAA1111"

	open := ReopenedRecord(closed, 2)
	if open.ShipmentBatchNo != "" {
		t.Error("reopened record must not keep the shipment batch no")
	}
	if open.ID != 0 {
		t.Error("reopened record must not reuse the closed row id")
	}
	if open.Qty != 2 || open.TotalPrice != 6.00 {
		t.Errorf("reopened qty/total = %v/%v, want 2/6.00", open.Qty, open.TotalPrice)
	}
	if open.PoLine != closed.PoLine {
		t.Error("reopened record must keep the composite key")
	}
}

// Quantity conservation: for any mix of ship and return operations the
// open quantity plus the sum of closed quantities equals the original
// ordered quantity.
func TestQuantityConservation(t *testing.T) {
	const original = 20.0
	now := time.Now()

	open := openItem(original, 1.25)
	var closedSet []models.LineItem

	sum := func() float64 {
		total := open.Qty
		for _, c := range closedSet {
			total += c.Qty
		}
		return total
	}

	ship := func(qty float64) {
		t.Helper()
		res, err := ApplyShipment(open, qty, ShipmentMeta{}, now)
		if err != nil {
			t.Fatalf("ship %v: %v", qty, err)
		}
		closedSet = append(closedSet, res.Closed)
		if res.Full {
			open.Qty = 0
		} else {
			open = res.Open
		}
		if got := sum(); got != original {
			t.Fatalf("after ship %v: open+closed = %v, want %v", qty, got, original)
		}
	}

	// Mirrors the persistence flow: the open side is always credited with
	// the quantity ApplyReturn says was moved, never the raw request.
	ret := func(idx int, qty float64) {
		t.Helper()
		res, err := ApplyReturn(closedSet[idx], qty)
		if err != nil {
			t.Fatalf("return %v: %v", qty, err)
		}
		if res.Full {
			closedSet = append(closedSet[:idx], closedSet[idx+1:]...)
		} else {
			closedSet[idx] = res.Closed
		}
		open = IncrementOpen(open, res.ReturnedQty)
		if got := sum(); got != original {
			t.Fatalf("after return %v: open+closed = %v, want %v", qty, got, original)
		}
	}

	ship(5)
	ship(3)
	ret(0, 2)
	ship(7)
	ret(1, 3) // full return of the 3-unit shipment
	ship(4)
	ret(0, 5) // over-return of the remaining 3-unit closed record
}

func TestPlanFreight(t *testing.T) {
	closed := openItem(6, 3)
	closed.ShipmentBatchNo = "SHIP-20260101-AAAA1111"
	noBatch := openItem(6, 3)
	cost := 250.0

	tests := []struct {
		name     string
		closed   models.LineItem
		override string
		cost     *float64
		full     bool
		want     FreightPlan
	}{
		{"no new cost plans nothing", closed, "SHIP-20260202-BBBB2222", nil, false, FreightPlan{}},
		{"stored batch, partial return", closed, "", &cost, false, FreightPlan{BatchNo: "SHIP-20260101-AAAA1111", UpdateSurvivor: true}},
		{"stored batch, full return", closed, "", &cost, true, FreightPlan{BatchNo: "SHIP-20260101-AAAA1111"}},
		{"override wins over stored batch", closed, "SHIP-20260202-BBBB2222", &cost, false, FreightPlan{BatchNo: "SHIP-20260202-BBBB2222", UpdateSurvivor: true}},
		{"no batch anywhere, partial still re-prices survivor", noBatch, "", &cost, false, FreightPlan{UpdateSurvivor: true}},
	}
	for _, tc := range tests {
		if got := PlanFreight(tc.closed, tc.override, tc.cost, tc.full); got != tc.want {
			t.Errorf("%s: PlanFreight = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestRoundTotal(t *testing.T) {
	tests := []struct {
		qty, net, want float64
	}{
		{10, 2.5, 25.00},
		{3, 0.333, 1.00},
		{7, 1.4285, 10.00},
		{2, 0, 0},
		{2, -5, 0},
		{0.5, 9.99, 5.00},
	}
	for _, tc := range tests {
		if got := RoundTotal(tc.qty, tc.net); got != tc.want {
			t.Errorf("RoundTotal(%v, %v) = %v, want %v", tc.qty, tc.net, got, tc.want)
		}
	}
}
