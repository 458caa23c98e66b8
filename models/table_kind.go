package models

import "fmt"

// TableKind identifies one of the four purchase-order tables. Request
// payloads carry the table name as a string; it is parsed exactly once at
// the API boundary and carried as a TableKind from there on.
type TableKind int

const (
	WfOpen TableKind = iota
	WfClosed
	NonWfOpen
	NonWfClosed
)

var kindNames = map[TableKind]string{
	WfOpen:      "wf_open",
	WfClosed:    "wf_closed",
	NonWfOpen:   "non_wf_open",
	NonWfClosed: "non_wf_closed",
}

// ParseTableKind resolves a table name from a request into a TableKind.
func ParseTableKind(name string) (TableKind, error) {
	for kind, n := range kindNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown table: %s", name)
}

func (k TableKind) String() string { return kindNames[k] }

// TableName is the physical table the kind maps to.
func (k TableKind) TableName() string { return kindNames[k] }

func (k TableKind) IsOpen() bool { return k == WfOpen || k == NonWfOpen }

func (k TableKind) IsClosed() bool { return !k.IsOpen() }

// Closed returns the closed counterpart of an open kind (identity for
// closed kinds).
func (k TableKind) Closed() TableKind {
	switch k {
	case WfOpen:
		return WfClosed
	case NonWfOpen:
		return NonWfClosed
	}
	return k
}

// Open returns the open counterpart of a closed kind (identity for open
// kinds).
func (k TableKind) Open() TableKind {
	switch k {
	case WfClosed:
		return WfOpen
	case NonWfClosed:
		return NonWfOpen
	}
	return k
}

// Columns shared by all four tables.
var baseColumns = []string{
	"id", "po", "pn", "line", "po_line", "description",
	"qty", "net_price", "total_price",
	"po_placed_date", "comment", "record_no",
	"shipping_cost", "tracking_no", "so_number",
	"latest_departure_date", "eta_wfsz", "company", "created_at",
}

// Per-family columns. These encode the real schema differences between the
// WF and non-WF tables; there is no runtime schema probing.
var kindColumns = map[TableKind][]string{
	WfOpen:      {"req_date_wf", "purchaser", "wfnl_eta", "wfsz_shipping_mode", "chinese_name", "unit"},
	WfClosed:    {"req_date_wf", "purchaser", "wfnl_eta", "wfsz_shipping_mode", "chinese_name", "unit", "shipment_batch_no"},
	NonWfOpen:   {"req_date", "eta", "shipping_mode", "yes_not_paid", "qc_result"},
	NonWfClosed: {"req_date", "eta", "shipping_mode", "yes_not_paid", "purchaser", "shipment_batch_no"},
}

// Columns is the writable column allow-list for the kind. Inserts filter
// through this so a WF-only field never leaks into a non-WF table and the
// shipment batch number never lands in an open table. update_at is left to
// the database default.
func (k TableKind) Columns() []string {
	cols := make([]string, 0, len(baseColumns)+len(kindColumns[k]))
	cols = append(cols, baseColumns...)
	cols = append(cols, kindColumns[k]...)
	return cols
}

// HasColumn reports whether the kind's table carries the column.
func (k TableKind) HasColumn(name string) bool {
	for _, c := range k.Columns() {
		if c == name {
			return true
		}
	}
	return false
}

// AllTableKinds lists the kinds in a stable order, open tables first.
func AllTableKinds() []TableKind {
	return []TableKind{WfOpen, NonWfOpen, WfClosed, NonWfClosed}
}

// ClosedTableKinds lists the two closed kinds in lookup order.
func ClosedTableKinds() []TableKind {
	return []TableKind{WfClosed, NonWfClosed}
}
