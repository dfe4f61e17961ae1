package report

import "strings"

// Type names one themed dataset served by the dashboard.
type Type string

const (
	Standings   Type = "standings"
	VORP        Type = "vorp"
	Consistency Type = "consistency"
	Matchups    Type = "matchups"
	Waiver      Type = "waiver"
	Rosters     Type = "rosters"
)

// Placeholder fills text columns that are absent upstream.
const Placeholder = "—"

// Row is the canonical record for one report entry. After normalization
// every column named by the report's schema is present: numeric columns
// default to 0, text columns to the placeholder marker.
type Row struct {
	// Key joins rows across reports by entity identity (case-folded
	// team or player name).
	Key  string
	Num  map[string]float64
	Text map[string]string
}

// RowSet is an ordered sequence of rows. Order is the normalizer's
// emission order and changes only by re-running the pipeline.
type RowSet []Row

// Number reports the value of a numeric column and whether it was set.
func (r Row) Number(name string) (float64, bool) {
	v, ok := r.Num[name]
	return v, ok
}

// Label reports the value of a text column, or the placeholder.
func (r Row) Label(name string) string {
	if v, ok := r.Text[name]; ok {
		return v
	}
	return Placeholder
}

// Find returns the first row whose key matches the folded name.
func (rs RowSet) Find(name string) (Row, bool) {
	key := Fold(name)
	for _, row := range rs {
		if row.Key == key {
			return row, true
		}
	}
	return Row{}, false
}

// Fold produces the join identity for an entity name.
func Fold(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
