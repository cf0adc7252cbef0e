package export

import (
	"fmt"
	"os"
	"path/filepath"

	"eduplatform/platform"
)

// FileExporter writes snapshots to a directory in all three formats.
// It satisfies platform.Exporter, so it can be installed as the
// registry's automatic export sink.
type FileExporter struct {
	// Dir receives auto_export.xlsx, auto_export.sql and the
	// auto_export_*.csv family.
	Dir string
}

// NewFileExporter creates the target directory if needed.
func NewFileExporter(dir string) (*FileExporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &FileExporter{Dir: dir}, nil
}

// Export validates the snapshot and writes it in every format. The
// first failure aborts the whole export.
func (e *FileExporter) Export(snap *platform.Snapshot) error {
	if err := WriteXLSX(snap, filepath.Join(e.Dir, "auto_export.xlsx")); err != nil {
		return err
	}
	if err := WriteCSV(snap, filepath.Join(e.Dir, "auto_export_")); err != nil {
		return err
	}
	return WriteSQL(snap, filepath.Join(e.Dir, "auto_export.sql"))
}

var _ platform.Exporter = (*FileExporter)(nil)
