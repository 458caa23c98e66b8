package models

import "time"

// OperationLog is an append-only audit record for table mutations and
// shipment operations. RecordData holds the operation payload as JSON.
type OperationLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserEmail  string    `json:"user_email" gorm:"size:100;index"`
	Table      string    `json:"table_name" gorm:"column:table_name;size:50;index"`
	Operation  string    `json:"operation" gorm:"size:50"`
	RecordData string    `json:"record_data" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}

func (OperationLog) TableName() string { return "po_records" }
