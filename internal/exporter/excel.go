package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook streams the tables as an Excel workbook, one sheet per
// table, with a bold header row.
func WriteWorkbook(out io.Writer, tables []Table) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, table := range tables {
		sheet := table.Name
		if i == 0 {
			// excelize creates "Sheet1" by default; rename it
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
			}
		}

		if err := f.SetSheetRow(sheet, "A1", &table.Headers); err != nil {
			return fmt.Errorf("failed to write headers for %s: %w", sheet, err)
		}

		lastCol, err := excelize.ColumnNumberToName(len(table.Headers))
		if err == nil && len(table.Headers) > 0 {
			f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)
		}

		for r, row := range table.Rows {
			cellRow := make([]interface{}, len(row))
			for c, v := range row {
				cellRow[c] = v
			}
			axis, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell for %s row %d: %w", sheet, r, err)
			}
			if err := f.SetSheetRow(sheet, axis, &cellRow); err != nil {
				return fmt.Errorf("failed to write row %d for %s: %w", r, sheet, err)
			}
		}
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteWorkbookFile writes the workbook to a file path
func WriteWorkbookFile(path string, tables []Table) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteWorkbook(f, tables)
}
