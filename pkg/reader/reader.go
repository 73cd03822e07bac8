package reader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/sunlightware/data-cleansing-agent/pkg/models"
)

// File is one statement file materialized as raw rows with its
// original header names.
type File struct {
	Path    string
	Headers []string
	Rows    []models.RawRow
}

// Reader discovers statement files and materializes them into raw
// rows. It understands CSV and legacy XLS exports.
type Reader struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Reader {
	return &Reader{logger: logger}
}

// Discover lists the statement files under dir. A `transactions`
// subfolder is preferred when present; files whose names mention
// categories or budgets are definition files, not statements.
func (r *Reader) Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path %s is not a directory", dir)
	}

	searchDir := filepath.Join(dir, "transactions")
	if _, err := os.Stat(searchDir); err != nil {
		r.logger.Debug("no transactions subfolder, using directory directly", "dir", dir)
		searchDir = dir
	}

	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", searchDir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if !strings.HasSuffix(name, ".csv") && !strings.HasSuffix(name, ".xls") {
			continue
		}
		if strings.Contains(name, "category") || strings.Contains(name, "budget") {
			continue
		}
		paths = append(paths, filepath.Join(searchDir, entry.Name()))
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no statement files found in %s", searchDir)
	}

	r.logger.Info("discovered statement files", "dir", searchDir, "count", len(paths))
	return paths, nil
}

// ReadFile materializes one statement file, dispatching on extension.
func (r *Reader) ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls":
		return r.readXLS(data, path)
	default:
		return r.readCSV(data, path)
	}
}

func (r *Reader) readCSV(data []byte, path string) (*File, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv %s is empty", path)
	}

	return r.buildFile(records, path), nil
}

func (r *Reader) buildFile(records [][]string, path string) *File {
	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	source := filepath.Base(path)
	rows := make([]models.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		values := make(map[string]string, len(headers))
		empty := true
		for i, header := range headers {
			if i >= len(record) {
				continue
			}
			cell := strings.TrimSpace(record[i])
			values[header] = cell
			if cell != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, models.RawRow{Values: values, SourceFile: source})
	}

	r.logger.Debug("read statement file", "file", source, "rows", len(rows))
	return &File{Path: path, Headers: headers, Rows: rows}
}

// ReadRecords returns the raw CSV records of a definition file
// (category or budget lists) without any row mapping.
func (r *Reader) ReadRecords(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv %s: %w", path, err)
	}
	return records, nil
}
