package bot

import (
	"fmt"
	"strings"

	"github.com/gridironlabs/leaguedash/internal/derive"
	"github.com/gridironlabs/leaguedash/internal/report"
	"github.com/gridironlabs/leaguedash/internal/view"
)

func FormatStandings(rows report.RowSet) string {
	var sb strings.Builder
	sb.WriteString("🏆 *Current Standings*\n\n")

	for i, row := range rows {
		wins, _ := row.Number("wins")
		losses, _ := row.Number("losses")
		ties, _ := row.Number("ties")
		pointsFor, _ := row.Number("pointsFor")
		pointsAgainst, _ := row.Number("pointsAgainst")

		sb.WriteString(fmt.Sprintf("%d. *%s*\n", i+1, row.Label("team")))
		sb.WriteString(fmt.Sprintf("   Record: %.0f-%.0f-%.0f\n", wins, losses, ties))
		sb.WriteString(fmt.Sprintf("   Points For: %.2f\n", pointsFor))
		sb.WriteString(fmt.Sprintf("   Points Against: %.2f\n\n", pointsAgainst))
	}

	if len(rows) == 0 {
		sb.WriteString("No standings data available yet.")
	}

	return sb.String()
}

func FormatConsensus(statements []derive.Statement) string {
	var sb strings.Builder
	sb.WriteString("📊 *Consensus Picks*\n\n")

	if len(statements) == 0 {
		sb.WriteString("No analysis data available yet.")
		return sb.String()
	}

	for _, s := range statements {
		sb.WriteString(fmt.Sprintf("• %s: *%s* (%s)\n", s.Label, s.Player, s.Detail))
	}

	return sb.String()
}

func FormatComparison(cmp view.Comparison) string {
	if !cmp.Found {
		return "🔍 Could not find both players in the latest analysis."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* vs *%s*\n", cmp.PlayerA, cmp.PlayerB))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")
	for _, row := range cmp.Rows {
		sb.WriteString(fmt.Sprintf("%s: %.2f - %.2f\n", row.Stat, row.A, row.B))
	}

	return sb.String()
}

// FormatDigest is the weekly scheduled message: standings plus consensus.
func FormatDigest(rows report.RowSet, statements []derive.Statement) string {
	return FormatStandings(rows) + "\n" + FormatConsensus(statements)
}
