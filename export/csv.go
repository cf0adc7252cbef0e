package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"eduplatform/platform"
)

// WriteCSV writes one CSV file per collection, named by lowercasing the
// collection name and appending it to the prefix (prefix "out_" yields
// "out_users.csv" and so on). The snapshot is validated first; on
// validation failure no file is written.
func WriteCSV(snap *platform.Snapshot, prefix string) error {
	if err := Validate(snap); err != nil {
		return err
	}

	for _, tbl := range tables(snap) {
		filename := prefix + strings.ToLower(tbl.name) + ".csv"
		if err := writeCSVFile(filename, tbl); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVFile(filename string, tbl table) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(tbl.headers); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", filename, err)
	}
	for _, row := range tbl.rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", filename, err)
		}
	}
	w.Flush()
	return w.Error()
}
