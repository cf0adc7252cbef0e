package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"eduplatform/platform"
)

// WriteXLSX writes the snapshot to a workbook with one sheet per
// collection. The snapshot is validated first; on validation failure no
// file is written.
func WriteXLSX(snap *platform.Snapshot, filename string) error {
	if err := Validate(snap); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, tbl := range tables(snap) {
		if i == 0 {
			// Reuse the default sheet for the first table.
			if err := f.SetSheetName("Sheet1", tbl.name); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(tbl.name); err != nil {
				return fmt.Errorf("failed to create sheet %s: %w", tbl.name, err)
			}
		}
		if err := writeSheet(f, tbl); err != nil {
			return err
		}
	}

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, tbl table) error {
	header := make([]interface{}, len(tbl.headers))
	for i, h := range tbl.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(tbl.name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header for %s: %w", tbl.name, err)
	}
	for i, row := range tbl.rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(tbl.name, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", tbl.name, err)
		}
	}
	return nil
}
