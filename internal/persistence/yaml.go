package persistence

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/errors"
)

// LoadYAML reads a YAML sequence of mappings, keeping key order.
func LoadYAML(path string) ([]conferences.Record, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	records, err := DecodeYAML(data)
	if err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return records, nil
}

// DecodeYAML decodes a YAML sequence of mappings. An empty document is an
// empty sequence.
func DecodeYAML(data []byte) ([]conferences.Record, error) {
	var rows []yaml.MapSlice
	if err := yaml.UnmarshalWithOptions(data, &rows, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	records := make([]conferences.Record, 0, len(rows))
	for _, row := range rows {
		var rec conferences.Record
		for _, item := range row {
			rec.Set(fmt.Sprint(item.Key), item.Value)
		}
		records = append(records, rec)
	}
	return records, nil
}

// SaveYAML writes records as a YAML sequence of mappings in record order.
func SaveYAML(path string, records []conferences.Record) error {
	data, err := EncodeYAML(records)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	return writeFile(path, data)
}

// EncodeYAML encodes records as a YAML sequence of mappings.
func EncodeYAML(records []conferences.Record) ([]byte, error) {
	rows := make([]yaml.MapSlice, 0, len(records))
	for _, rec := range records {
		row := make(yaml.MapSlice, 0, rec.Len())
		for _, it := range rec.Items() {
			row = append(row, yaml.MapItem{Key: it.Key, Value: it.Value})
		}
		rows = append(rows, row)
	}
	return yaml.MarshalWithOptions(rows, yaml.Indent(2), yaml.IndentSequence(false))
}
