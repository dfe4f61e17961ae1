package derive

import (
	"sort"
	"strings"

	"github.com/gridironlabs/leaguedash/internal/report"
)

// Compare orders two rows by the named field. Numeric fields compare
// numerically; everything else compares case-insensitively as text. A
// missing number sorts below any number. A leading '-' on the field name
// reverses direction.
func Compare(a, b report.Row, key string) int {
	key, reversed := strings.CutPrefix(key, "-")

	c := compareField(a, b, key)
	if reversed {
		return -c
	}
	return c
}

func compareField(a, b report.Row, key string) int {
	an, aok := a.Number(key)
	bn, bok := b.Number(key)
	switch {
	case aok && bok:
		if an < bn {
			return -1
		}
		if an > bn {
			return 1
		}
		return 0
	case aok:
		return 1
	case bok:
		return -1
	}

	at := strings.ToLower(textOrEmpty(a, key))
	bt := strings.ToLower(textOrEmpty(b, key))
	return strings.Compare(at, bt)
}

func textOrEmpty(r report.Row, key string) string {
	if v, ok := r.Text[key]; ok {
		return v
	}
	return ""
}

// SortChain stably sorts a copy of the row set by a tie-break chain;
// rows equal under the full chain keep their upstream order.
func SortChain(rows report.RowSet, chain []string) report.RowSet {
	if len(chain) == 0 {
		return rows
	}
	out := make(report.RowSet, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		for _, key := range chain {
			if c := Compare(out[i], out[j], key); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return out
}
