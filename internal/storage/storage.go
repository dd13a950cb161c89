// Package storage reads and writes table snapshots as JSON and CSV.
// File writes are atomic: data goes to a temp file that is then renamed
// over the destination.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoHeader is returned when a CSV source has no header record.
var ErrNoHeader = errors.New("csv has no header row")

// Format names an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// FormatFromPath picks the encoding from a file extension, defaulting to
// JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatJSON
}

// Sheet is a header plus rows of already formatted cells.
type Sheet struct {
	Header []string
	Rows   [][]string
}

// SaveJSON atomically writes data as JSON to the specified path.
// It ensures the parent directory exists, writes to a temp file,
// then renames to the final path for atomic operation.
func SaveJSON(path string, data any) error {
	return saveAtomic(path, func(w io.Writer) error {
		return WriteJSON(w, data)
	})
}

// LoadJSON reads JSON from the specified path into dest.
// Returns os.ErrNotExist if file doesn't exist (caller should handle).
func LoadJSON(path string, dest any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// WriteJSON writes data as indented JSON followed by a newline.
func WriteJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// SaveCSV atomically writes a sheet as CSV to the specified path.
func SaveCSV(path string, s Sheet) error {
	return saveAtomic(path, func(w io.Writer) error {
		return WriteCSV(w, s)
	})
}

// WriteCSV writes the header and rows as CSV records.
func WriteCSV(w io.Writer, s Sheet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(s.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// ReadCSV reads a sheet whose first record is the header. Rows may be
// shorter or longer than the header.
func ReadCSV(r io.Reader) (Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return Sheet{}, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return Sheet{}, ErrNoHeader
	}
	return Sheet{Header: records[0], Rows: records[1:]}, nil
}

// LoadCSV reads a sheet from the specified path.
func LoadCSV(path string) (Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sheet{}, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func saveAtomic(path string, write func(io.Writer) error) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tempPath := path + ".tmp"
	f, err := os.OpenFile(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tempPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tempPath)
		return err
	}

	return os.Rename(tempPath, path)
}
