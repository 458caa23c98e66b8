package excel

import (
	"fmt"
	"strings"
	"time"

	"po-backend/models"

	"github.com/xuri/excelize/v2"
)

// ClosedFinder looks up closed line items matching a report row's parsed
// key. The repository backs this with the two closed tables; tests supply
// an in-memory implementation.
type ClosedFinder interface {
	FindClosedRecords(po, line, material string) ([]models.LineItem, error)
}

// RowDetail summarizes one successfully reconciled report row.
type RowDetail struct {
	Row          int    `json:"row"`
	Po           string `json:"po"`
	Line         string `json:"line"`
	Material     string `json:"material"`
	RecordsCount int    `json:"records_count"`
}

// SyncResult is the outcome of one reconciliation pass. Errors is always
// present and empty when every processed row succeeded; a row failure
// never aborts the pass.
type SyncResult struct {
	UpdatedRows int         `json:"updated_rows"`
	Details     []RowDetail `json:"details"`
	Errors      []string    `json:"errors"`
	FilePath    string      `json:"file_path"`
}

// ReportSyncProcessor reconciles an uploaded report workbook against the
// closed line-item tables.
type ReportSyncProcessor struct {
	Finder ClosedFinder
}

func NewReportSyncProcessor(finder ClosedFinder) *ReportSyncProcessor {
	return &ReportSyncProcessor{Finder: finder}
}

// Process walks every data row of the report's active sheet, looks up
// closed records by (PO, Line, PN), appends their tracking numbers to the
// Comments cell and writes the computed reply-by date into the Reply cell.
// The workbook is saved back to the same path.
func (p *ReportSyncProcessor) Process(path string) (*SyncResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty worksheet: %s", sheet)
	}

	idx := NewHeaderIndex(rows[0])
	cols := make(map[string]int, 5)
	for _, name := range []string{"Material", "PurchaseOrder", "Comments", "Reply", "Request"} {
		col, ok := idx.Column(name)
		if !ok {
			return nil, fmt.Errorf("missing required column: %s", name)
		}
		cols[name] = col
	}

	result := &SyncResult{
		Details:  []RowDetail{},
		Errors:   []string{},
		FilePath: path,
	}

	for i := 1; i < len(rows); i++ {
		rowNum := i + 1
		material := cellAt(rows[i], cols["Material"])
		poLineStr := cellAt(rows[i], cols["PurchaseOrder"])

		// Rows without both key columns are not report lines.
		if material == "" || poLineStr == "" {
			continue
		}

		po, line, err := ParsePOLine(poLineStr)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid PurchaseOrder format: %s", rowNum, poLineStr))
			continue
		}

		records, err := p.Finder.FindClosedRecords(po, line, material)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		if len(records) == 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: no matching closed record (PO=%s, Line=%s, PN=%s)", rowNum, po, line, material))
			continue
		}

		trackingNos := make([]string, 0, len(records))
		for _, r := range records {
			if r.TrackingNo != "" {
				trackingNos = append(trackingNos, r.TrackingNo)
			}
		}

		comments := cellAt(rows[i], cols["Comments"])
		if updated := appendComments(comments, trackingNos); updated != comments {
			cell, _ := excelize.CoordinatesToCellName(cols["Comments"], rowNum)
			f.SetCellValue(sheet, cell, updated)
		}

		if eta, ok := extractETAFromRecords(records); ok {
			cell, _ := excelize.CoordinatesToCellName(cols["Reply"], rowNum)
			f.SetCellValue(sheet, cell, FormatShortDate(eta))
		}

		result.Details = append(result.Details, RowDetail{
			Row:          rowNum,
			Po:           po,
			Line:         line,
			Material:     material,
			RecordsCount: len(records),
		})
	}

	result.UpdatedRows = len(result.Details)

	if err := f.Save(); err != nil {
		return nil, fmt.Errorf("failed to save workbook: %w", err)
	}
	return result, nil
}

// extractETAFromRecords picks the reply-by date for a row. Tracking-number
// annotations win across all matched records; the record-number annotation
// of the first record that has one is the fallback. Dates from different
// matches are never merged.
func extractETAFromRecords(records []models.LineItem) (time.Time, bool) {
	for _, r := range records {
		if r.TrackingNo == "" {
			continue
		}
		if d, found := ExtractETAFromText(r.TrackingNo); found {
			return d, true
		}
	}
	for _, r := range records {
		if r.RecordNo == "" {
			continue
		}
		return ExtractETAFromText(r.RecordNo)
	}
	return time.Time{}, false
}

// appendComments adds tracking numbers that are not already present in the
// comment text, joined with "; ". Re-running over an already updated
// comment is a no-op.
func appendComments(current string, trackingNos []string) string {
	out := current
	for _, tn := range trackingNos {
		if tn == "" || strings.Contains(out, tn) {
			continue
		}
		out = strings.TrimLeft(out+"; "+tn, "; ")
	}
	return out
}

// cellAt reads a 1-based column from a GetRows row, tolerating the short
// rows excelize returns when trailing cells are empty.
func cellAt(row []string, col int) string {
	if col-1 < len(row) {
		return strings.TrimSpace(row[col-1])
	}
	return ""
}
