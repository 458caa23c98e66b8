package models

import "testing"

// Audit rows live in their own table; the table a mutation touched is
// payload, carried in a separate column on the same record.
func TestOperationLogTableName(t *testing.T) {
	entry := OperationLog{Table: "wf_open", Operation: "insert_rows"}
	if got := entry.TableName(); got != "po_records" {
		t.Errorf("audit table = %q, want po_records", got)
	}
	if entry.Table != "wf_open" {
		t.Errorf("subject table = %q, want wf_open", entry.Table)
	}
}
