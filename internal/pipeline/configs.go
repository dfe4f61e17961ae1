package pipeline

import (
	"github.com/gridironlabs/leaguedash/internal/fetch"
	"github.com/gridironlabs/leaguedash/internal/report"
)

// DefaultConfigs wires the analysis artifacts the producer pipeline
// publishes under docs/data.
func DefaultConfigs() []Config {
	return []Config{
		{
			Type: report.Standings,
			Resources: []fetch.Resource{
				{Name: "standings", Path: "/data/latest.json"},
				{Name: "status", Path: "/data/status.json", Optional: true},
			},
			Primary: "standings",
			Note:    "status",
		},
		{
			Type: report.VORP,
			Resources: []fetch.Resource{
				{Name: "vorp", Path: "/data/analysis/vorp_analysis.json"},
			},
			Primary: "vorp",
		},
		{
			Type: report.Consistency,
			Resources: []fetch.Resource{
				{Name: "consistency", Path: "/data/analysis/consistency_report.json"},
			},
			Primary: "consistency",
		},
		{
			Type: report.Matchups,
			Resources: []fetch.Resource{
				{Name: "matchups", Path: "/data/analysis/matchup_report.json"},
				{Name: "status", Path: "/data/status.json", Optional: true},
			},
			Primary: "matchups",
			Note:    "status",
		},
		{
			Type: report.Waiver,
			Resources: []fetch.Resource{
				{Name: "waiver", Path: "/data/analysis/waiver_wire_report.json"},
			},
			Primary: "waiver",
		},
		{
			Type: report.Rosters,
			Resources: []fetch.Resource{
				{Name: "rosters", Path: "/data/rosters.json"},
			},
			Primary: "rosters",
		},
	}
}
