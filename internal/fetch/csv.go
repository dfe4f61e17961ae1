package fetch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Table is a CSV artifact parsed with header-row inference. Record values
// are float64 for numeric-looking fields, string otherwise, and nil for
// empty fields.
type Table struct {
	Headers []string
	Records []map[string]any
}

func ParseTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header row: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	table := &Table{Headers: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		row := make(map[string]any, len(header))
		for i, name := range header {
			if i >= len(record) {
				row[name] = nil
				continue
			}
			row[name] = coerce(record[i])
		}
		table.Records = append(table.Records, row)
	}

	return table, nil
}

func coerce(field string) any {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}
	if n, err := strconv.ParseFloat(field, 64); err == nil {
		return n
	}
	return field
}
