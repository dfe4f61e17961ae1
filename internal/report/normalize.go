package report

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gridironlabs/leaguedash/internal/fetch"
)

// Normalize maps a raw payload into the canonical row set for a report
// type. It is a total function: unrecognized shapes, error envelopes,
// and missing fields degrade to defaults rather than failing. Running it
// twice on the same payload yields the same row set.
func Normalize(p fetch.Payload, t Type) RowSet {
	sc := SchemaFor(t)
	if sc.Type == "" {
		slog.Warn("Unknown report type", "report", string(t))
		return RowSet{}
	}

	if p.CSV != nil {
		return conform(sc, fromTable(sc, p.CSV))
	}

	value := unwrap(p.JSON)
	if value == nil {
		return RowSet{}
	}

	for _, v := range variantsFor(t) {
		if v.match(value) {
			return conform(sc, v.rows(sc, value))
		}
	}

	slog.Warn("Unrecognized payload shape", "report", string(t))
	return RowSet{}
}

// unwrap strips the league-platform {fetched_at, data} envelope. An
// error envelope (fetched_at + error, no data) unwraps to nil.
func unwrap(value any) any {
	m, ok := value.(map[string]any)
	if !ok {
		return value
	}
	if _, ok := m["fetched_at"]; !ok {
		return value
	}
	if data, ok := m["data"]; ok {
		return data
	}
	return nil
}

// conform guarantees the schema's field-presence contract: every column
// exists on every row, and Key is derived from the identity column.
func conform(sc Schema, rows RowSet) RowSet {
	for i := range rows {
		if rows[i].Num == nil {
			rows[i].Num = make(map[string]float64)
		}
		if rows[i].Text == nil {
			rows[i].Text = make(map[string]string)
		}
		for _, col := range sc.Columns {
			if col.Numeric {
				if _, ok := rows[i].Num[col.Name]; !ok {
					rows[i].Num[col.Name] = 0
				}
			} else {
				if v, ok := rows[i].Text[col.Name]; !ok || v == "" {
					rows[i].Text[col.Name] = Placeholder
				}
			}
		}
		rows[i].Key = Fold(rows[i].Text[sc.Key])
	}
	return rows
}

// rowFromMap resolves each schema column against a flat upstream object,
// trying the canonical name first, then declared aliases, matching
// loosely on case and underscores.
func rowFromMap(sc Schema, m map[string]any) Row {
	row := Row{
		Num:  make(map[string]float64),
		Text: make(map[string]string),
	}
	for _, col := range sc.Columns {
		value, ok := lookup(m, col.keys())
		if !ok || value == nil {
			continue
		}
		if col.Numeric {
			if n, ok := toNumber(value); ok {
				row.Num[col.Name] = n
			}
		} else {
			row.Text[col.Name] = toString(value)
		}
	}
	return row
}

func fromTable(sc Schema, table *fetch.Table) RowSet {
	rows := make(RowSet, 0, len(table.Records))
	for _, record := range table.Records {
		rows = append(rows, rowFromMap(sc, record))
	}
	return rows
}

func lookup(m map[string]any, keys []string) (any, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			return v, true
		}
	}
	for _, key := range keys {
		folded := foldKey(key)
		for name, v := range m {
			if foldKey(name) == folded {
				return v, true
			}
		}
	}
	return nil, false
}

func foldKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "")
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return ""
	}
}

func asMap(value any) (map[string]any, bool) {
	m, ok := value.(map[string]any)
	return m, ok
}

func asSlice(value any) ([]any, bool) {
	s, ok := value.([]any)
	return s, ok
}

// itemsUnder finds the first array under one of the given keys, or the
// value itself when it is already an array.
func itemsUnder(value any, keys ...string) ([]any, bool) {
	if s, ok := asSlice(value); ok {
		return s, true
	}
	m, ok := asMap(value)
	if !ok {
		return nil, false
	}
	for _, key := range keys {
		if s, ok := asSlice(m[key]); ok {
			return s, true
		}
	}
	return nil, false
}

func firstMap(items []any) (map[string]any, bool) {
	if len(items) == 0 {
		return nil, false
	}
	return asMap(items[0])
}
