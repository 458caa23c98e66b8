package repositories

import (
	"fmt"
	"time"

	"po-backend/controllers/idgen"
	"po-backend/ledger"
	"po-backend/models"

	"gorm.io/gorm"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) GetAll(kind models.TableKind) ([]models.LineItem, error) {
	var items []models.LineItem
	if err := r.DB.Table(kind.TableName()).Order("po_line").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CheckDuplicates returns the po_line keys among the candidates that
// already exist in the kind's table. Import flows show these to the user
// before anything is written.
func (r *TableRepository) CheckDuplicates(kind models.TableKind, items []models.LineItem) ([]string, error) {
	keys := make([]string, 0, len(items))
	for _, item := range items {
		if item.PoLine != "" {
			keys = append(keys, item.PoLine)
		}
	}
	if len(keys) == 0 {
		return []string{}, nil
	}

	var existing []string
	err := r.DB.Table(kind.TableName()).
		Where("po_line IN ?", keys).
		Pluck("po_line", &existing).Error
	if err != nil {
		return nil, err
	}
	if existing == nil {
		existing = []string{}
	}
	return existing, nil
}

// InsertWithCheck inserts candidate rows, skipping any whose po_line is
// already present. Total price is recomputed from qty and net price; the
// skipped keys are reported back.
func (r *TableRepository) InsertWithCheck(kind models.TableKind, items []models.LineItem) (int, []string, error) {
	duplicates, err := r.CheckDuplicates(kind, items)
	if err != nil {
		return 0, nil, err
	}
	seen := make(map[string]bool, len(duplicates))
	for _, key := range duplicates {
		seen[key] = true
	}

	tx := r.DB.Begin()
	if tx.Error != nil {
		return 0, nil, fmt.Errorf("failed to start transaction: %w", tx.Error)
	}
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
			panic(rec)
		}
	}()

	inserted := 0
	for _, item := range items {
		if item.PoLine == "" || seen[item.PoLine] {
			continue
		}
		seen[item.PoLine] = true

		item.ID = idgen.GenerateID()
		item.TotalPrice = ledger.RoundTotal(item.Qty, item.NetPrice)
		item.CreatedAt = time.Now()
		if err := tx.Table(kind.TableName()).Select(kind.Columns()).Create(&item).Error; err != nil {
			tx.Rollback()
			return 0, nil, fmt.Errorf("failed to insert %s: %w", item.PoLine, err)
		}
		inserted++
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return 0, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, duplicates, nil
}

// UpdateRow applies a partial update addressed by po_line. Unknown fields
// and fields the kind's table does not carry are dropped rather than
// rejected, matching how spreadsheet-shaped payloads arrive.
func (r *TableRepository) UpdateRow(kind models.TableKind, poLine string, fields map[string]interface{}) error {
	updates := make(map[string]interface{}, len(fields))
	for name, value := range fields {
		if name == "id" || name == "po_line" || name == "created_at" {
			continue
		}
		if kind.HasColumn(name) {
			updates[name] = value
		}
	}
	if qty, ok := updates["qty"]; ok {
		if qtyF, okF := toFloat(qty); okF {
			var current models.LineItem
			if err := r.DB.Table(kind.TableName()).Where("po_line = ?", poLine).First(&current).Error; err == nil {
				net := current.NetPrice
				if raw, ok := updates["net_price"]; ok {
					if netF, okN := toFloat(raw); okN {
						net = netF
					}
				}
				updates["total_price"] = ledger.RoundTotal(qtyF, net)
			}
		}
	}
	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields for %s", kind)
	}
	updates["update_at"] = time.Now()

	result := r.DB.Table(kind.TableName()).Where("po_line = ?", poLine).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ledger.ErrRecordNotFound
	}
	return nil
}

func (r *TableRepository) DeleteRow(kind models.TableKind, poLine string) error {
	result := r.DB.Table(kind.TableName()).Where("po_line = ?", poLine).Delete(&models.LineItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ledger.ErrRecordNotFound
	}
	return nil
}

// GetLogs lists audit records, newest first, optionally filtered by table
// and operation.
func (r *TableRepository) GetLogs(tableName, operation string, limit int) ([]models.OperationLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query := r.DB.Model(&models.OperationLog{}).Order("created_at DESC").Limit(limit)
	if tableName != "" {
		query = query.Where("table_name = ?", tableName)
	}
	if operation != "" {
		query = query.Where("operation = ?", operation)
	}

	var logs []models.OperationLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
