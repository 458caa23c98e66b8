package repositories

import (
	"errors"
	"fmt"
	"time"

	"po-backend/controllers/helpers"
	"po-backend/controllers/idgen"
	"po-backend/ledger"
	"po-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShipmentRepository struct {
	DB *gorm.DB
}

func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{DB: db}
}

// ShipRequest describes one shipment of an open record. The record is
// addressed by po_line when the caller has it, otherwise by (po, pn).
type ShipRequest struct {
	Po           string
	Pn           string
	PoLine       string
	Qty          float64
	TrackingNo   string
	ShippingMode string
	ShippingCost *float64
	// BatchNo lets a multi-line shipment share one batch; empty means a
	// fresh one is generated.
	BatchNo   string
	UserEmail string
}

type ShipOutcome struct {
	Full         bool    `json:"full_shipment"`
	ShipmentQty  float64 `json:"shipment_qty"`
	RemainingQty float64 `json:"remaining_qty"`
	BatchNo      string  `json:"shipment_batch_no"`
}

// Ship moves quantity from an open record into the closed table. All
// writes happen in one transaction; the open row is locked for the
// read-modify-write so two concurrent shipments cannot both consume the
// same quantity.
func (r *ShipmentRepository) Ship(kind models.TableKind, req ShipRequest) (*ShipOutcome, error) {
	if !kind.IsOpen() {
		return nil, fmt.Errorf("invalid source table: %s", kind)
	}

	tx := r.DB.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", tx.Error)
	}
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			panic(rec)
		}
	}()

	var open models.LineItem
	query := tx.Table(kind.TableName()).Clauses(clause.Locking{Strength: "UPDATE"})
	if req.PoLine != "" {
		query = query.Where("po_line = ?", req.PoLine)
	} else {
		query = query.Where("po = ? AND pn = ?", req.Po, req.Pn)
	}
	if err := query.First(&open).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrRecordNotFound
		}
		return nil, err
	}

	result, err := ledger.ApplyShipment(open, req.Qty, ledger.ShipmentMeta{
		TrackingNo:   req.TrackingNo,
		ShippingMode: req.ShippingMode,
		ShippingCost: req.ShippingCost,
		BatchNo:      req.BatchNo,
	}, time.Now())
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	target := kind.Closed()
	closed := result.Closed
	closed.ID = idgen.GenerateID()
	closed.CreatedAt = time.Now()

	if err := tx.Table(target.TableName()).Select(target.Columns()).Create(&closed).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to insert into %s: %w", target, err)
	}

	if result.Full {
		if err := tx.Table(kind.TableName()).Where("po_line = ?", open.PoLine).Delete(&models.LineItem{}).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to delete open record: %w", err)
		}
	} else {
		updates := map[string]interface{}{
			"qty":         result.Open.Qty,
			"total_price": result.Open.TotalPrice,
			"update_at":   time.Now(),
		}
		if err := tx.Table(kind.TableName()).Where("po_line = ?", open.PoLine).Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to update open record: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	operation := "shipment_full_shipment"
	if !result.Full {
		operation = "shipment_partial_shipment"
	}
	helpers.InsertOperationLog(r.DB, req.UserEmail, kind.TableName(), operation, map[string]interface{}{
		"source_table":      kind.TableName(),
		"target_table":      target.TableName(),
		"po":                open.Po,
		"pn":                open.Pn,
		"po_line":           open.PoLine,
		"shipment_qty":      req.Qty,
		"remaining_qty":     result.RemainingQty,
		"shipment_batch_no": result.BatchNo,
	})

	return &ShipOutcome{
		Full:         result.Full,
		ShipmentQty:  req.Qty,
		RemainingQty: result.RemainingQty,
		BatchNo:      result.BatchNo,
	}, nil
}

// ReturnRequest describes returning quantity from a closed record,
// addressed by its row id.
type ReturnRequest struct {
	RecordID int64
	Qty      float64
	// NewShippingCost, when set, is propagated to every closed record in
	// the same shipment batch.
	NewShippingCost *float64
	// BatchNo overrides the record's stored batch number for the cost
	// propagation (UI-driven flows pass it explicitly).
	BatchNo   string
	UserEmail string
}

type ReturnOutcome struct {
	Full        bool    `json:"full_return"`
	ReturnedQty float64 `json:"return_qty"`
}

// Return moves quantity from a closed record back to the open table. The
// open counterpart is incremented when it still exists and recreated from
// the closed record otherwise. One transaction covers the open upsert,
// the closed delete/update and the batch cost propagation.
func (r *ShipmentRepository) Return(kind models.TableKind, req ReturnRequest) (*ReturnOutcome, error) {
	if !kind.IsClosed() {
		return nil, fmt.Errorf("invalid closed table: %s", kind)
	}
	if req.Qty <= 0 {
		return nil, ledger.ErrInvalidQuantity
	}

	tx := r.DB.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", tx.Error)
	}
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			panic(rec)
		}
	}()

	var closed models.LineItem
	err := tx.Table(kind.TableName()).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", req.RecordID).
		First(&closed).Error
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrRecordNotFound
		}
		return nil, err
	}

	result, err := ledger.ApplyReturn(closed, req.Qty)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// The open side is credited with the clamped quantity, never the raw
	// request: an over-return is a full return of what was shipped.
	openKind := kind.Open()
	var open models.LineItem
	err = tx.Table(openKind.TableName()).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("po_line = ?", closed.PoLine).
		First(&open).Error

	switch {
	case err == nil:
		updated := ledger.IncrementOpen(open, result.ReturnedQty)
		updates := map[string]interface{}{
			"qty":         updated.Qty,
			"total_price": updated.TotalPrice,
			"update_at":   time.Now(),
		}
		if err := tx.Table(openKind.TableName()).Where("po_line = ?", closed.PoLine).Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to update open record: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		reopened := ledger.ReopenedRecord(closed, result.ReturnedQty)
		reopened.ID = idgen.GenerateID()
		reopened.CreatedAt = time.Now()
		if err := tx.Table(openKind.TableName()).Select(openKind.Columns()).Create(&reopened).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to recreate open record: %w", err)
		}
	default:
		tx.Rollback()
		return nil, err
	}

	// Freight propagation runs before the closed record is deleted or
	// reduced so the batch lookup still sees it.
	plan := ledger.PlanFreight(closed, req.BatchNo, req.NewShippingCost, result.Full)
	if plan.BatchNo != "" {
		updates := map[string]interface{}{
			"shipping_cost": *req.NewShippingCost,
			"update_at":     time.Now(),
		}
		if err := tx.Table(kind.TableName()).
			Where("shipment_batch_no = ? AND id <> ?", plan.BatchNo, closed.ID).
			Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to update batch shipping cost: %w", err)
		}
	}

	if result.Full {
		if err := tx.Table(kind.TableName()).Where("id = ?", closed.ID).Delete(&models.LineItem{}).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to delete closed record: %w", err)
		}
	} else {
		updates := map[string]interface{}{
			"qty":         result.Closed.Qty,
			"total_price": result.Closed.TotalPrice,
			"update_at":   time.Now(),
		}
		if plan.UpdateSurvivor {
			updates["shipping_cost"] = *req.NewShippingCost
		}
		if err := tx.Table(kind.TableName()).Where("id = ?", closed.ID).Updates(updates).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to update closed record: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	helpers.InsertOperationLog(r.DB, req.UserEmail, kind.TableName(), "return_shipment", map[string]interface{}{
		"closed_table":      kind.TableName(),
		"source_table":      openKind.TableName(),
		"po_line":           closed.PoLine,
		"return_qty":        result.ReturnedQty,
		"new_shipping_cost": req.NewShippingCost,
	})

	return &ReturnOutcome{Full: result.Full, ReturnedQty: result.ReturnedQty}, nil
}

// FindClosedRecords backs the report reconciler: matches from wf_closed
// first, then non_wf_closed, newest rows first within each table.
func (r *ShipmentRepository) FindClosedRecords(po, line, material string) ([]models.LineItem, error) {
	var results []models.LineItem
	for _, kind := range models.ClosedTableKinds() {
		var items []models.LineItem
		err := r.DB.Table(kind.TableName()).
			Where("po = ? AND line = ? AND pn = ?", po, line, material).
			Order("id DESC").
			Find(&items).Error
		if err != nil {
			return nil, err
		}
		results = append(results, items...)
	}
	return results, nil
}
