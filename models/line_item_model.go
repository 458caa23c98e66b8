package models

import (
	"time"
)

// LineItem is the superset of the four purchase-order tables. The WF and
// non-WF families share most columns but not all; which fields are writable
// for a given table is decided by TableKind.Columns, not by the struct.
type LineItem struct {
	ID                  int64      `json:"id" gorm:"column:id;primaryKey;autoIncrement:false"`
	Po                  string     `json:"po" gorm:"column:po;size:50"`
	Pn                  string     `json:"pn" gorm:"column:pn;size:50"`
	Line                string     `json:"line" gorm:"column:line;size:50"`
	PoLine              string     `json:"po_line" gorm:"column:po_line;size:100;index"`
	Description         string     `json:"description" gorm:"column:description;type:text"`
	Qty                 float64    `json:"qty" gorm:"column:qty"`
	NetPrice            float64    `json:"net_price" gorm:"column:net_price"`
	TotalPrice          float64    `json:"total_price" gorm:"column:total_price"`
	ReqDateWf           *time.Time `json:"req_date_wf" gorm:"column:req_date_wf"`
	ReqDate             *time.Time `json:"req_date" gorm:"column:req_date"`
	PoPlacedDate        *time.Time `json:"po_placed_date" gorm:"column:po_placed_date"`
	Purchaser           string     `json:"purchaser" gorm:"column:purchaser;size:100"`
	WfnlEta             *time.Time `json:"wfnl_eta" gorm:"column:wfnl_eta"`
	Eta                 *time.Time `json:"eta" gorm:"column:eta"`
	EtaWfsz             *time.Time `json:"eta_wfsz" gorm:"column:eta_wfsz"`
	WfszShippingMode    string     `json:"wfsz_shipping_mode" gorm:"column:wfsz_shipping_mode;size:100"`
	ShippingMode        string     `json:"shipping_mode" gorm:"column:shipping_mode;size:100"`
	Comment             string     `json:"comment" gorm:"column:comment;type:text"`
	RecordNo            string     `json:"record_no" gorm:"column:record_no;size:100"`
	ShippingCost        float64    `json:"shipping_cost" gorm:"column:shipping_cost"`
	TrackingNo          string     `json:"tracking_no" gorm:"column:tracking_no;size:100"`
	SoNumber            string     `json:"so_number" gorm:"column:so_number;size:50"`
	LatestDepartureDate *time.Time `json:"latest_departure_date" gorm:"column:latest_departure_date"`
	ChineseName         string     `json:"chinese_name" gorm:"column:chinese_name;size:100"`
	Unit                string     `json:"unit" gorm:"column:unit;size:20"`
	QcResult            string     `json:"qc_result" gorm:"column:qc_result;size:50"`
	YesNotPaid          string     `json:"yes_not_paid" gorm:"column:yes_not_paid;size:10"`
	Company             string     `json:"company" gorm:"column:company;size:100"`
	ShipmentBatchNo     string     `json:"shipment_batch_no" gorm:"column:shipment_batch_no;size:50"`
	CreatedAt           time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdateAt            time.Time  `json:"update_at" gorm:"column:update_at"`
}
