package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// ExportDir receives manually requested export files.
	ExportDir string
	// AutoExportDir receives files written by the automatic export hook.
	AutoExportDir string
	// AutoExport enables the automatic export after assignment and
	// grade inserts.
	AutoExport bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		ExportDir:     os.Getenv("EDU_EXPORT_DIR"),
		AutoExportDir: os.Getenv("EDU_AUTO_EXPORT_DIR"),
		AutoExport:    os.Getenv("EDU_AUTO_EXPORT") != "false",
	}

	if config.ExportDir == "" {
		config.ExportDir = "eduplatform_dataset_files"
	}
	if config.AutoExportDir == "" {
		config.AutoExportDir = "auto_exported_files"
	}

	return config, nil
}
