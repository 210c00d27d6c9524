package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook writes every table as one sheet of a single XLSX file.
func WriteWorkbook(path string, tables []Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("no tables to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	for _, t := range tables {
		if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", t.Name, err)
		}

		header := make([]interface{}, len(t.Columns))
		for i, col := range t.Columns {
			header[i] = col
		}
		if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
			return fmt.Errorf("failed to write header of %s: %w", t.Name, err)
		}

		for i, row := range t.Rows {
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return err
			}
			values := make([]interface{}, len(row))
			for j, v := range row {
				values[j] = v
			}
			if err := f.SetSheetRow(t.Name, cell, &values); err != nil {
				return fmt.Errorf("failed to write row %d of %s: %w", i, t.Name, err)
			}
		}
	}

	// Drop the default sheet unless a table claimed its name.
	hasDefault := false
	for _, t := range tables {
		if t.Name == "Sheet1" {
			hasDefault = true
		}
	}
	if !hasDefault {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
