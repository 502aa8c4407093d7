// Package persistence reads and writes ordered record sequences as CSV
// (master data, exports) and YAML (the conference dataset). Loading and
// saving without an intervening change reproduces the records exactly:
// same keys, same order, same values.
package persistence

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/constants"
	"github.com/agentstation/confmap/pkg/errors"
)

// Format is a supported file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".yml", ".yaml":
		return FormatYAML, nil
	default:
		return "", errors.NewValidationError("path", path, "unsupported file extension, expected .csv, .yml or .yaml")
	}
}

// Load reads the records stored at path, choosing the format by extension.
func Load(path string) ([]conferences.Record, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	if format == FormatCSV {
		return LoadCSV(path)
	}
	return LoadYAML(path)
}

// Save writes records to path, choosing the format by extension.
func Save(path string, records []conferences.Record) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if format == FormatCSV {
		return SaveCSV(path, records)
	}
	return SaveYAML(path, records)
}

// writeFile replaces path atomically: the data is written to a temporary
// file in the same directory and renamed over the target.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.WrapIO("move", path, err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return data, nil
}
