package view

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/gridironlabs/leaguedash/internal/report"
)

// CompareRow is one stat line of the side-by-side table.
type CompareRow struct {
	Stat   string  `json:"stat"`
	A      float64 `json:"a"`
	B      float64 `json:"b"`
	AShare float64 `json:"aShare"`
}

// Comparison is the player-comparison widget output: a side-by-side stat
// table plus a composition chart of each stat's share. A failed lookup
// on either side yields the zero Comparison, never an error.
type Comparison struct {
	Found   bool         `json:"found"`
	PlayerA string       `json:"playerA,omitempty"`
	PlayerB string       `json:"playerB,omitempty"`
	Rows    []CompareRow `json:"rows,omitempty"`
	Chart   Chart        `json:"chart,omitempty"`
}

const lookupThreshold = 0.7

// Compare looks both identities up in the row set and renders their
// numeric columns side by side.
func Compare(sc report.Schema, rows report.RowSet, nameA, nameB string) Comparison {
	a, okA := bestMatch(sc, rows, nameA)
	b, okB := bestMatch(sc, rows, nameB)
	if !okA || !okB {
		return Comparison{}
	}

	cmp := Comparison{
		Found:   true,
		PlayerA: a.Label(sc.Key),
		PlayerB: b.Label(sc.Key),
	}
	cmp.Chart = Chart{
		Title: cmp.PlayerA + " vs " + cmp.PlayerB,
		Series: []Series{
			{Name: cmp.PlayerA, Color: seriesColor(0)},
			{Name: cmp.PlayerB, Color: seriesColor(1)},
		},
	}

	for _, col := range sc.Columns {
		if !col.Numeric {
			continue
		}
		av, _ := a.Number(col.Name)
		bv, _ := b.Number(col.Name)
		cmp.Rows = append(cmp.Rows, CompareRow{
			Stat:   col.Title,
			A:      av,
			B:      bv,
			AShare: share(av, bv),
		})
		cmp.Chart.Labels = append(cmp.Chart.Labels, col.Title)
		cmp.Chart.Series[0].Values = append(cmp.Chart.Series[0].Values, av)
		cmp.Chart.Series[1].Values = append(cmp.Chart.Series[1].Values, bv)
	}
	return cmp
}

func share(a, b float64) float64 {
	if a+b == 0 {
		return 0.5
	}
	return a / (a + b)
}

// bestMatch finds the closest row by Levenshtein similarity over the
// identity column, requiring a minimum similarity to count as found.
func bestMatch(sc report.Schema, rows report.RowSet, name string) (report.Row, bool) {
	if strings.TrimSpace(name) == "" {
		return report.Row{}, false
	}

	var best report.Row
	bestScore := -1.0
	needle := strings.ToLower(name)

	for _, row := range rows {
		candidate := strings.ToLower(row.Label(sc.Key))
		distance := fuzzy.LevenshteinDistance(needle, candidate)
		maxLen := float64(max(len(needle), len(candidate)))
		if maxLen == 0 {
			continue
		}
		similarity := 1 - float64(distance)/maxLen
		if similarity > lookupThreshold && similarity > bestScore {
			bestScore = similarity
			best = row
		}
	}

	return best, bestScore >= 0
}
