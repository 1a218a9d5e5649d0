// Package records reads and writes grid records as JSONL, JSON or CSV.
package records

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/maruel/gridstore/internal/grid"
)

// ErrUnsupportedFormat is returned for files whose extension is not .jsonl,
// .ndjson, .json or .csv.
var ErrUnsupportedFormat = errors.New("unsupported records format")

// Format is a records file encoding.
type Format string

const (
	// JSONL holds one JSON object per line.
	JSONL Format = "jsonl"
	// JSON holds a single array of objects.
	JSON Format = "json"
	// CSV holds a header line naming the fields, then one record per line.
	CSV Format = "csv"
)

// maxLine bounds a single JSONL record.
const maxLine = 16 << 20

// FormatOf returns the format matching a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return JSONL, nil
	case ".json":
		return JSON, nil
	case ".csv":
		return CSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads every record of a file. The format follows the extension.
func Load(path string) ([]grid.Record, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path) //nolint:gosec // User-specified data path
	if err != nil {
		return nil, fmt.Errorf("failed to open records file %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	recs, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// Read decodes records from r.
func Read(r io.Reader, format Format) ([]grid.Record, error) {
	switch format {
	case JSONL:
		return readJSONL(r)
	case JSON:
		var recs []grid.Record
		if err := json.NewDecoder(r).Decode(&recs); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to unmarshal records: %w", err)
		}
		return recs, nil
	case CSV:
		return readCSV(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

func readJSONL(r io.Reader) ([]grid.Record, error) {
	var recs []grid.Record
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLine)
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec grid.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record on line %d: %w", n, err)
		}
		recs = append(recs, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return recs, nil
}

// readCSV keeps every field as a string. Empty fields are left out so the
// column default applies.
func readCSV(r io.Reader) ([]grid.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	var recs []grid.Record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return recs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		rec := make(grid.Record, len(header))
		for i, name := range header {
			if fields[i] != "" {
				rec[name] = fields[i]
			}
		}
		recs = append(recs, rec)
	}
}

// WriteJSONL writes one record per line.
func WriteJSONL(w io.Writer, recs []grid.Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range recs {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		if _, err := bw.Write(data); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write newline: %w", err)
		}
	}
	return bw.Flush()
}
