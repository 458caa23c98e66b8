package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	_, err := f.NewSheet(sheet)
	require.NoError(t, err)
	require.NoError(t, f.DeleteSheet("Sheet1"))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), sheet+".xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestExcelSyncTwoFiles(t *testing.T) {
	orderPath := writeWorkbook(t, "Order Report", [][]interface{}{
		{"Material", "PurchaseOrder", "Reply", "Comments"},
		{"MAT001", "PO001/1", "", ""},
		{"MAT002", "PO002/5", "", ""},
		{"MAT003", "PO003/9", "", ""},
	})

	// Source sheet uses the "PN/Line" header variant and a trailing space
	// on "PN ", both of which real exports produce.
	sourcePath := writeWorkbook(t, "WF Closed", [][]interface{}{
		{"PN ", "PN/Line", "Tracking No", "ETA WFSZ", "Record No"},
		{"MAT001", "PO001/1", "TRK-100", "2025-01-15", ""},
		{"MAT002", "PO002/5", "TRK-200", "", "ETA Rotterdam: 1/10/26; Boat Name:CMA CGM PALAIS"},
	})

	result, err := NewExcelSyncProcessor().ProcessTwoFiles(orderPath, sourcePath, "Order Report", "WF Closed")
	require.NoError(t, err)

	assert.Equal(t, 2, result.UpdatedRows)
	assert.Empty(t, result.Errors)

	f, err := excelize.OpenFile(orderPath)
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue("Order Report", cell)
		require.NoError(t, err)
		return v
	}

	// Row 2: structured ETA date cell + 7 days.
	assert.Equal(t, "1/22/25", get("C2"))
	assert.Equal(t, "TRK-100", get("D2"))

	// Row 3: ETA extracted from the Record No annotation.
	assert.Equal(t, "1/17/26", get("C3"))
	assert.Equal(t, "TRK-200", get("D3"))

	// Row 4 has no source match and stays untouched.
	assert.Equal(t, "", get("C4"))
	assert.Equal(t, "", get("D4"))
}

func TestExcelSyncCreatesCommentsColumn(t *testing.T) {
	orderPath := writeWorkbook(t, "Order Report", [][]interface{}{
		{"Material", "PurchaseOrder", "Reply"},
		{"MAT001", "PO001/1", ""},
	})
	sourcePath := writeWorkbook(t, "WF Closed", [][]interface{}{
		{"PN", "PO/Line", "Tracking No"},
		{"MAT001", "PO001/1", "TRK-300"},
	})

	result, err := NewExcelSyncProcessor().ProcessTwoFiles(orderPath, sourcePath, "Order Report", "WF Closed")
	require.NoError(t, err)
	assert.Equal(t, 1, result.UpdatedRows)

	f, err := excelize.OpenFile(orderPath)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Order Report", "D1")
	require.NoError(t, err)
	assert.Equal(t, "Comments", header)

	comment, err := f.GetCellValue("Order Report", "D2")
	require.NoError(t, err)
	assert.Equal(t, "TRK-300", comment)
}

func TestExcelSyncMissingSheet(t *testing.T) {
	orderPath := writeWorkbook(t, "Order Report", [][]interface{}{
		{"Material", "PurchaseOrder", "Reply"},
	})
	sourcePath := writeWorkbook(t, "Non-WF Closed", [][]interface{}{
		{"PN", "PO/Line"},
		{"MAT001", "PO001/1"},
	})

	_, err := NewExcelSyncProcessor().ProcessTwoFiles(orderPath, sourcePath, "Order Report", "WF Closed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WF Closed")
}
