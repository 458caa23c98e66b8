// Package ledger holds the quantity-movement rules for purchase-order
// line items: shipping moves quantity from an open record to a closed
// record, returning moves it back. Every operation keeps the total
// quantity of a logical line unchanged; persistence is the repository's
// job.
package ledger

import (
	"errors"
	"math"
	"strings"
	"time"

	"po-backend/models"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrRecordNotFound  = errors.New("record not found")
)

// ShipmentMeta carries the logistics fields merged into the closed record
// at shipment time.
type ShipmentMeta struct {
	TrackingNo   string
	ShippingMode string
	ShippingCost *float64
	// BatchNo groups co-shipped lines. Empty means generate a fresh one.
	BatchNo string
}

// ShipmentResult reports which branch a shipment took.
type ShipmentResult struct {
	Full         bool
	Closed       models.LineItem
	Open         models.LineItem
	RemainingQty float64
	BatchNo      string
}

// ApplyShipment computes the record movement for shipping qty units of an
// open record. On a full shipment the open record is to be deleted; on a
// partial one Result.Open carries the reduced open record. The caller
// persists both sides in one transaction.
func ApplyShipment(open models.LineItem, qty float64, meta ShipmentMeta, now time.Time) (ShipmentResult, error) {
	if qty <= 0 || qty > open.Qty {
		return ShipmentResult{}, ErrInvalidQuantity
	}

	closed := open
	closed.ID = 0
	closed.Qty = qty
	closed.TotalPrice = RoundTotal(qty, open.NetPrice)

	if meta.TrackingNo != "" {
		closed.TrackingNo = meta.TrackingNo
	}
	if meta.ShippingMode != "" {
		// Both mode columns are set; the table allow-list keeps whichever
		// one the target family actually has.
		closed.ShippingMode = meta.ShippingMode
		closed.WfszShippingMode = meta.ShippingMode
	}
	if meta.ShippingCost != nil {
		// Only the numeric value is stored; any "shared:" marker is a UI
		// concern and never reaches the database.
		closed.ShippingCost = *meta.ShippingCost
	}

	batchNo := meta.BatchNo
	if batchNo == "" {
		batchNo = NewBatchNo(now)
	}
	closed.ShipmentBatchNo = batchNo

	result := ShipmentResult{
		Closed:  closed,
		BatchNo: batchNo,
	}

	if qty >= open.Qty {
		result.Full = true
		result.RemainingQty = 0
		return result, nil
	}

	open.Qty -= qty
	open.TotalPrice = RoundTotal(open.Qty, open.NetPrice)
	result.Open = open
	result.RemainingQty = open.Qty
	return result, nil
}

// ReturnResult reports the outcome of returning qty units of a closed
// record.
type ReturnResult struct {
	Full bool
	// ReturnedQty is the quantity actually moved back to the open table.
	// Requests above the closed quantity are clamped to it, so a full
	// return never credits the open side with more than was shipped.
	ReturnedQty float64
	// Closed is the surviving closed record on a partial return.
	Closed models.LineItem
}

// ApplyReturn computes the closed-side outcome of a return. qty at or
// above the closed quantity is a full return (delete the closed record);
// otherwise the closed record survives with reduced quantity.
func ApplyReturn(closed models.LineItem, qty float64) (ReturnResult, error) {
	if qty <= 0 {
		return ReturnResult{}, ErrInvalidQuantity
	}

	if qty >= closed.Qty {
		return ReturnResult{Full: true, ReturnedQty: closed.Qty}, nil
	}

	closed.Qty -= qty
	closed.TotalPrice = RoundTotal(closed.Qty, closed.NetPrice)
	return ReturnResult{ReturnedQty: qty, Closed: closed}, nil
}

// IncrementOpen folds a returned quantity into an existing open record.
func IncrementOpen(open models.LineItem, qty float64) models.LineItem {
	open.Qty += qty
	open.TotalPrice = RoundTotal(open.Qty, open.NetPrice)
	return open
}

// ReopenedRecord synthesizes a new open record from a closed record when
// the logical line no longer exists in the open table. The shipment batch
// number stays behind with the closed set.
func ReopenedRecord(closed models.LineItem, qty float64) models.LineItem {
	open := closed
	open.ID = 0
	open.ShipmentBatchNo = ""
	open.Qty = qty
	open.TotalPrice = RoundTotal(qty, closed.NetPrice)
	return open
}

// FreightPlan lists the shipping-cost writes a return carrying a new
// freight cost must make.
type FreightPlan struct {
	// BatchNo selects the sibling closed records that take the new cost.
	// Empty means no batch is known and nothing propagates.
	BatchNo string
	// UpdateSurvivor is set on a partial return: the reduced closed
	// record stays in the batch, so it takes the new cost as well.
	UpdateSurvivor bool
}

// PlanFreight decides how a new shipping cost spreads across a shipment
// batch during a return. A caller-supplied batch number overrides the
// record's stored one; with no new cost there is nothing to plan.
func PlanFreight(closed models.LineItem, overrideBatch string, newCost *float64, fullReturn bool) FreightPlan {
	if newCost == nil {
		return FreightPlan{}
	}
	batch := overrideBatch
	if batch == "" {
		batch = closed.ShipmentBatchNo
	}
	return FreightPlan{BatchNo: batch, UpdateSurvivor: !fullReturn}
}

// RoundTotal recomputes a line total as qty * netPrice rounded to two
// decimals. A missing or non-positive net price yields zero, matching the
// stored records that never had pricing.
func RoundTotal(qty, netPrice float64) float64 {
	if netPrice <= 0 {
		return 0
	}
	return math.Round(qty*netPrice*100) / 100
}

// NewBatchNo mints a shipment batch token: SHIP-<date>-<8 uppercase hex>.
func NewBatchNo(now time.Time) string {
	return "SHIP-" + now.Format("20060102") + "-" + strings.ToUpper(uuid.NewString()[:8])
}
