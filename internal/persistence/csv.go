package persistence

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/errors"
)

// LoadCSV reads a CSV file with a header row. Every row becomes a record
// with the header's keys in header order and the cells as strings.
func LoadCSV(path string) ([]conferences.Record, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	records, err := DecodeCSV(bytes.NewReader(data))
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}
	return records, nil
}

// DecodeCSV decodes CSV with a header row from r.
func DecodeCSV(r io.Reader) ([]conferences.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return []conferences.Record{}, nil
	}
	if err != nil {
		return nil, err
	}
	// a UTF-8 byte order mark sticks to the first column name
	if len(header) > 0 {
		header[0] = string(bytes.TrimPrefix([]byte(header[0]), []byte("\ufeff")))
	}

	records := []conferences.Record{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		var rec conferences.Record
		for i, key := range header {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			rec.Set(key, value)
		}
		records = append(records, rec)
	}
	return records, nil
}

// SaveCSV writes records as CSV. The header is the union of all keys in
// first-seen order; a record missing a key gets an empty cell.
func SaveCSV(path string, records []conferences.Record) error {
	data, err := EncodeCSV(records)
	if err != nil {
		return errors.WrapParse("csv", path, err)
	}
	return writeFile(path, data)
}

// EncodeCSV encodes records as CSV with a header row.
func EncodeCSV(records []conferences.Record) ([]byte, error) {
	header := Columns(records)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	row := make([]string, len(header))
	for _, rec := range records {
		for i, key := range header {
			row[i] = rec.String(key)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Columns returns the union of the records' keys in first-seen order.
func Columns(records []conferences.Record) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, rec := range records {
		for _, key := range rec.Keys() {
			if !seen[key] {
				seen[key] = true
				cols = append(cols, key)
			}
		}
	}
	return cols
}
