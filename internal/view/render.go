package view

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/gridironlabs/leaguedash/internal/derive"
	"github.com/gridironlabs/leaguedash/internal/report"
)

// Cell is one rendered table cell. Color is set only for heat-mapped
// columns.
type Cell struct {
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
}

// Table is the display structure for one rendered report. Renderers
// never mutate the row set they read; same rows and state always yield
// the same table.
type Table struct {
	Title     string   `json:"title"`
	Headers   []string `json:"headers"`
	Rows      [][]Cell `json:"rows"`
	NoResults bool     `json:"noResults"`
}

// Series is one numeric dataset of a chart.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Color  string    `json:"color"`
}

type Chart struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

const noResultsText = "No matching rows"

// Visible applies the state's position filter and search to a row set,
// then its sort key. The input set is never modified.
func Visible(sc report.Schema, rows report.RowSet, st State) report.RowSet {
	out := make(report.RowSet, 0, len(rows))
	for _, row := range rows {
		if st.Position != "" && sc.HasPosition() &&
			!strings.EqualFold(row.Label("position"), st.Position) {
			continue
		}
		if st.Search != "" && !fuzzy.MatchFold(st.Search, row.Label(sc.Key)) {
			continue
		}
		out = append(out, row)
	}
	if st.SortKey != "" {
		out = derive.SortChain(out, []string{st.SortKey})
	}
	return out
}

// RenderTable serializes the visible rows into a table. Heat-map scales
// are recomputed over the visible set, so filtering reshapes the colors.
// An empty visible set yields the explicit no-results row.
func RenderTable(sc report.Schema, rows report.RowSet, st State) Table {
	visible := Visible(sc, rows, st)

	table := Table{Title: sc.Title}
	for _, col := range sc.Columns {
		table.Headers = append(table.Headers, col.Title)
	}

	if len(visible) == 0 {
		table.NoResults = true
		table.Rows = [][]Cell{{{Text: noResultsText}}}
		return table
	}

	scales := make(map[string]derive.Scale)
	for _, col := range sc.Columns {
		if col.Heat {
			scales[col.Name] = derive.NewScale(visible, col.Name, col.LowerIsBetter)
		}
	}

	for _, row := range visible {
		cells := make([]Cell, 0, len(sc.Columns))
		for _, col := range sc.Columns {
			cells = append(cells, renderCell(col, row, scales))
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

func renderCell(col report.Column, row report.Row, scales map[string]derive.Scale) Cell {
	if !col.Numeric {
		return Cell{Text: row.Label(col.Name)}
	}
	v, _ := row.Number(col.Name)
	cell := Cell{Text: formatNumber(v, col.Precision)}
	if scale, ok := scales[col.Name]; ok {
		cell.Color = scale.Color(v)
	}
	return cell
}

func formatNumber(v float64, precision int) string {
	return fmt.Sprintf("%.*f", precision, v)
}

// RenderChart builds one series per chart-flagged column over the
// visible rows, labeled by the identity column.
func RenderChart(sc report.Schema, rows report.RowSet, st State) Chart {
	visible := Visible(sc, rows, st)

	chart := Chart{Title: sc.Title}
	for _, row := range visible {
		chart.Labels = append(chart.Labels, row.Label(sc.Key))
	}

	i := 0
	for _, col := range sc.Columns {
		if !col.Chart {
			continue
		}
		series := Series{
			Name:  col.Title,
			Color: seriesColor(i),
		}
		for _, row := range visible {
			v, _ := row.Number(col.Name)
			series.Values = append(series.Values, v)
		}
		chart.Series = append(chart.Series, series)
		i++
	}
	return chart
}

func seriesColor(i int) string {
	return fmt.Sprintf("hsl(%d, 65%%, 50%%)", (i*67)%360)
}
