package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ExcelSyncProcessor reconciles an order report against a source workbook
// uploaded in the same request, with no database involved. The source
// sheet is a WF Closed or Non-WF Closed export whose headers vary between
// producers ("PO/Line" vs "PN/Line", trailing spaces).
type ExcelSyncProcessor struct{}

func NewExcelSyncProcessor() *ExcelSyncProcessor {
	return &ExcelSyncProcessor{}
}

// sourceRecord is one row of the source sheet keyed by header. Headers
// with trailing whitespace are stored under both the raw and trimmed name.
type sourceRecord map[string]string

func (r sourceRecord) get(names ...string) string {
	for _, n := range names {
		if v, ok := r[n]; ok && v != "" {
			return v
		}
	}
	return ""
}

// ProcessTwoFiles updates the order report's Comments and Reply columns
// from matching rows of the source workbook, then saves the order report
// in place.
func (p *ExcelSyncProcessor) ProcessTwoFiles(orderPath, sourcePath, orderSheet, sourceSheet string) (*SyncResult, error) {
	orderWb, err := excelize.OpenFile(orderPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open order report: %w", err)
	}
	defer orderWb.Close()

	sourceWb, err := excelize.OpenFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	defer sourceWb.Close()

	if idx, _ := orderWb.GetSheetIndex(orderSheet); idx < 0 {
		return nil, fmt.Errorf("missing worksheet in order report: %s", orderSheet)
	}
	if idx, _ := sourceWb.GetSheetIndex(sourceSheet); idx < 0 {
		return nil, fmt.Errorf("missing worksheet in source file: %s", sourceSheet)
	}

	sourceData, err := parseSourceSheet(sourceWb, sourceSheet)
	if err != nil {
		return nil, err
	}
	if len(sourceData) == 0 {
		return nil, fmt.Errorf("no data rows in source sheet: %s", sourceSheet)
	}

	rows, err := orderWb.GetRows(orderSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read order report rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty worksheet: %s", orderSheet)
	}

	idx := NewHeaderIndex(rows[0])
	cols := make(map[string]int, 4)
	for _, name := range []string{"Material", "PurchaseOrder", "Reply"} {
		col, ok := idx.Column(name)
		if !ok {
			return nil, fmt.Errorf("order report missing column: %s", name)
		}
		cols[name] = col
	}

	// Comments is created after the last header when the report lacks it.
	commentsCol, ok := idx.Column("Comments")
	if !ok {
		commentsCol = len(rows[0]) + 1
		cell, _ := excelize.CoordinatesToCellName(commentsCol, 1)
		orderWb.SetCellValue(orderSheet, cell, "Comments")
	}
	cols["Comments"] = commentsCol

	result := &SyncResult{
		Details:  []RowDetail{},
		Errors:   []string{},
		FilePath: orderPath,
	}

	for i := 1; i < len(rows); i++ {
		rowNum := i + 1
		material := cellAt(rows[i], cols["Material"])
		poLineStr := cellAt(rows[i], cols["PurchaseOrder"])
		if material == "" || poLineStr == "" {
			continue
		}

		po, line, err := ParsePOLine(poLineStr)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: invalid PurchaseOrder format: %s", rowNum, poLineStr))
			continue
		}

		record := findSourceRecord(sourceData, po, line, material)
		if record == nil {
			continue
		}

		if trackingNo := strings.TrimSpace(record.get("Tracking No")); trackingNo != "" {
			comments := cellAt(rows[i], cols["Comments"])
			if updated := appendComments(comments, []string{trackingNo}); updated != comments {
				cell, _ := excelize.CoordinatesToCellName(cols["Comments"], rowNum)
				orderWb.SetCellValue(orderSheet, cell, updated)
			}
		}

		if eta, ok := sourceETA(record); ok {
			cell, _ := excelize.CoordinatesToCellName(cols["Reply"], rowNum)
			orderWb.SetCellValue(orderSheet, cell, FormatShortDate(eta))
		}

		result.Details = append(result.Details, RowDetail{
			Row:          rowNum,
			Po:           po,
			Line:         line,
			Material:     material,
			RecordsCount: 1,
		})
	}

	result.UpdatedRows = len(result.Details)

	if err := orderWb.Save(); err != nil {
		return nil, fmt.Errorf("failed to save order report: %w", err)
	}
	return result, nil
}

func parseSourceSheet(wb *excelize.File, sheet string) ([]sourceRecord, error) {
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read source rows: %w", err)
	}
	if len(rows) < 2 {
		return []sourceRecord{}, nil
	}

	headers := rows[0]
	data := make([]sourceRecord, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		record := make(sourceRecord, len(headers))
		empty := true
		for col, header := range headers {
			if header == "" {
				continue
			}
			var value string
			if col < len(rows[i]) {
				value = rows[i][col]
			}
			record[header] = value
			if trimmed := strings.TrimRight(header, " "); trimmed != header {
				record[trimmed] = value
			}
			if value != "" {
				empty = false
			}
		}
		if !empty {
			data = append(data, record)
		}
	}
	return data, nil
}

// findSourceRecord matches by the source row's own composite key plus
// part number. Some producers label the key column "PN/Line" instead of
// "PO/Line"; both carry the same PO/line composite.
func findSourceRecord(data []sourceRecord, po, line, material string) sourceRecord {
	for _, record := range data {
		composite := strings.TrimSpace(record.get("PN/Line", "PO/Line"))
		if composite == "" {
			continue
		}
		srcPo, srcLine, err := ParsePOLine(composite)
		if err != nil {
			continue
		}
		srcPn := strings.TrimSpace(record.get("PN", "PN "))
		if srcPo == po && srcLine == line && srcPn == strings.TrimSpace(material) {
			return record
		}
	}
	return nil
}

// sourceETA resolves the reply-by date for a matched source row: a
// structured "ETA WFSZ" date cell wins, the free-text "Record No"
// annotation is the fallback.
func sourceETA(record sourceRecord) (eta time.Time, ok bool) {
	if raw := strings.TrimSpace(record.get("ETA WFSZ")); raw != "" {
		if d, parsed := parseDateCell(raw); parsed {
			return ETAFromDate(d), true
		}
	}
	if recordNo := record.get("Record No"); recordNo != "" {
		return ExtractETAFromText(recordNo)
	}
	return time.Time{}, false
}
