package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetNames lists the worksheets of a workbook in tab order, so a caller
// can pick the order and source sheets before a two-file sync.
func SheetNames(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return f.GetSheetList(), nil
}
