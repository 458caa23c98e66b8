package helpers

import (
	"encoding/json"
	"fmt"
	"time"

	"po-backend/models"

	"gorm.io/gorm"
)

// InsertOperationLog appends an audit record for a table mutation. Logging
// must never fail the primary operation; failures are printed and dropped.
func InsertOperationLog(db *gorm.DB, userEmail, tableName, operation string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		fmt.Println("Failed to encode operation log payload:", err)
		data = []byte("{}")
	}

	logEntry := models.OperationLog{
		UserEmail:  userEmail,
		Table:      tableName,
		Operation:  operation,
		RecordData: string(data),
		CreatedAt:  time.Now(),
	}

	if err := db.Create(&logEntry).Error; err != nil {
		fmt.Println("Failed to insert operation log:", err)
	}
}
