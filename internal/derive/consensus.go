package derive

import (
	"fmt"
	"strings"

	"github.com/gridironlabs/leaguedash/internal/report"
)

// minGamesPlayed is the sample-size floor for per-position reductions;
// players with 8 or fewer games are too noisy to headline.
const minGamesPlayed = 8

// Statement is one derived consensus line combining already-computed
// metrics, e.g. "Top overall value: Josh Allen (VORP 8.41)".
type Statement struct {
	Label  string  `json:"label"`
	Player string  `json:"player"`
	Detail string  `json:"detail"`
	Value  float64 `json:"value"`
}

func (s Statement) String() string {
	return fmt.Sprintf("%s: %s (%s)", s.Label, s.Player, s.Detail)
}

// TopOverallValue is the first row of the value-ranked set.
func TopOverallValue(vorp report.RowSet) (Statement, bool) {
	ranked := SortChain(vorp, []string{"-vorp", "-ppg"})
	if len(ranked) == 0 {
		return Statement{}, false
	}
	top := ranked[0]
	v, _ := top.Number("vorp")
	return Statement{
		Label:  "Top overall value",
		Player: top.Label("player"),
		Detail: fmt.Sprintf("VORP %.2f", v),
		Value:  v,
	}, true
}

// MostConsistentAt picks the highest consistency percentage at a
// position among players over the sample-size threshold.
func MostConsistentAt(consistency report.RowSet, position string) (Statement, bool) {
	row, ok := maxAt(consistency, position, "consistencyPct")
	if !ok {
		return Statement{}, false
	}
	v, _ := row.Number("consistencyPct")
	return Statement{
		Label:  fmt.Sprintf("Most consistent %s", position),
		Player: row.Label("player"),
		Detail: fmt.Sprintf("%.1f%% of games above threshold", v),
		Value:  v,
	}, true
}

// HighestVolatilityAt picks the largest scoring dispersion at a position
// under the same sample-size filter.
func HighestVolatilityAt(consistency report.RowSet, position string) (Statement, bool) {
	row, ok := maxAt(consistency, position, "stdDev")
	if !ok {
		return Statement{}, false
	}
	v, _ := row.Number("stdDev")
	return Statement{
		Label:  fmt.Sprintf("Highest volatility %s", position),
		Player: row.Label("player"),
		Detail: fmt.Sprintf("±%.2f PPG week to week", v),
		Value:  v,
	}, true
}

func maxAt(rows report.RowSet, position, field string) (report.Row, bool) {
	var best report.Row
	found := false
	for _, row := range rows {
		if !strings.EqualFold(row.Label("position"), position) {
			continue
		}
		if gp, _ := row.Number("gamesPlayed"); gp <= minGamesPlayed {
			continue
		}
		v, ok := row.Number(field)
		if !ok {
			continue
		}
		if bv, _ := best.Number(field); !found || v > bv {
			best = row
			found = true
		}
	}
	return best, found
}

// Statements joins the value ranking and the consistency metrics by
// player identity into the dashboard's consensus summary.
func Statements(vorp, consistency report.RowSet) []Statement {
	var out []Statement

	if top, ok := TopOverallValue(vorp); ok {
		if match, ok := consistency.Find(top.Player); ok {
			pct, _ := match.Number("consistencyPct")
			top.Detail = fmt.Sprintf("%s, %.1f%% consistent", top.Detail, pct)
		}
		out = append(out, top)
	}

	for _, pos := range []string{"QB", "RB", "WR", "TE"} {
		if s, ok := MostConsistentAt(consistency, pos); ok {
			out = append(out, s)
		}
		if s, ok := HighestVolatilityAt(consistency, pos); ok {
			out = append(out, s)
		}
	}
	return out
}
