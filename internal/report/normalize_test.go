package report_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/leaguedash/internal/fetch"
	"github.com/gridironlabs/leaguedash/internal/report"
)

func jsonPayload(t *testing.T, body string) fetch.Payload {
	t.Helper()
	var value any
	require.NoError(t, json.Unmarshal([]byte(body), &value))
	return fetch.Payload{Format: fetch.FormatJSON, JSON: value}
}

func TestNormalize_StandingsFlatRows(t *testing.T) {
	p := jsonPayload(t, `[
		{"team": "Far Far Away Knights", "wins": 2, "losses": 1, "pointsFor": 281, "pointsAgainst": 263},
		{"team": "Duloc Gingerbread Men", "wins": 2, "losses": 1, "pointsFor": 296, "pointsAgainst": 274}
	]`)

	rows := report.Normalize(p, report.Standings)
	require.Len(t, rows, 2)

	assert.Equal(t, "Far Far Away Knights", rows[0].Label("team"))
	wins, ok := rows[0].Number("wins")
	assert.True(t, ok)
	assert.Equal(t, 2.0, wins)
	ties, ok := rows[0].Number("ties")
	assert.True(t, ok, "absent numeric fields are present with defaults")
	assert.Equal(t, 0.0, ties)
}

func TestNormalize_StandingsEnvelope(t *testing.T) {
	p := jsonPayload(t, `{
		"fetched_at": "2025-10-07T12:00:00Z",
		"data": [{"team": "Dragon's Lair", "wins": 1, "losses": 2, "pointsFor": 248, "pointsAgainst": 303}]
	}`)

	rows := report.Normalize(p, report.Standings)
	require.Len(t, rows, 1)
	assert.Equal(t, "dragon's lair", rows[0].Key)
}

func TestNormalize_StandingsErrorEnvelope(t *testing.T) {
	p := jsonPayload(t, `{"fetched_at": "2025-10-07T12:00:00Z", "error": "status=401"}`)
	rows := report.Normalize(p, report.Standings)
	assert.Empty(t, rows)
}

func TestNormalize_StandingsESPNTeams(t *testing.T) {
	p := jsonPayload(t, `{
		"teams": [
			{"id": 4, "name": "UGF Pandas", "record": {"overall": {"wins": 10, "losses": 3, "ties": 0, "pointsFor": 1412.5, "pointsAgainst": 1200.25}}},
			{"id": 2, "location": "Coach", "nickname": "Dad", "record": {"overall": {"wins": 8, "losses": 5, "ties": 0, "pointsFor": 1300, "pointsAgainst": 1280}}}
		]
	}`)

	rows := report.Normalize(p, report.Standings)
	require.Len(t, rows, 2)

	assert.Equal(t, "UGF Pandas", rows[0].Label("team"))
	pf, _ := rows[0].Number("pointsFor")
	assert.Equal(t, 1412.5, pf)
	assert.Equal(t, "Coach Dad", rows[1].Label("team"), "location+nickname fallback")
}

func TestNormalize_StandingsStatPairs(t *testing.T) {
	p := jsonPayload(t, `{
		"entries": [
			{"team": "Beyond Cursed", "stats": [
				{"name": "Wins", "value": 7},
				{"name": "totalPointsFor", "value": 1111.5},
				{"name": "TotalPointsAgainst", "value": 1050}
			]}
		]
	}`)

	rows := report.Normalize(p, report.Standings)
	require.Len(t, rows, 1)

	wins, _ := rows[0].Number("wins")
	pf, _ := rows[0].Number("pointsFor")
	pa, _ := rows[0].Number("pointsAgainst")
	assert.Equal(t, 7.0, wins)
	assert.Equal(t, 1111.5, pf, "stat pairs match by case-insensitive key substring")
	assert.Equal(t, 1050.0, pa)
}

func TestNormalize_StandingsSortedByTieBreak(t *testing.T) {
	p := jsonPayload(t, `[
		{"team": "A", "wins": 10, "pointsFor": 1200},
		{"team": "B", "wins": 10, "pointsFor": 1300}
	]`)

	// Normalize preserves emission order; the pipeline applies the
	// schema's tie-break chain, exercised in the derive tests.
	rows := report.Normalize(p, report.Standings)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].Label("team"))
}

func TestNormalize_VORPPlayers(t *testing.T) {
	p := jsonPayload(t, `{
		"season": 2024,
		"players": [
			{"player_display_name": "Josh Allen", "position": "QB", "recent_team": "BUF", "games_played": 17, "ppg": 24.1, "vorp": 8.4},
			{"player_display_name": "Lamar Jackson", "position": "QB", "recent_team": "BAL", "games_played": 17, "ppg": 23.8, "vorp": 8.1}
		]
	}`)

	rows := report.Normalize(p, report.VORP)
	require.Len(t, rows, 2)

	assert.Equal(t, "josh allen", rows[0].Key)
	assert.Equal(t, "BUF", rows[0].Label("team"), "alias recent_team resolves to team")
	vorp, _ := rows[0].Number("vorp")
	assert.Equal(t, 8.4, vorp)
}

func TestNormalize_WaiverPositionBuckets(t *testing.T) {
	p := jsonPayload(t, `{
		"season": 2025, "week": 6,
		"positions": {
			"RB": [{"player_display_name": "Backup Back", "recent_team": "KC", "fantasy_points_custom": 21.3}],
			"QB": [{"player_display_name": "Streaming Quarterback", "recent_team": "NYJ", "fantasy_points_custom": 25.0}]
		}
	}`)

	rows := report.Normalize(p, report.Waiver)
	require.Len(t, rows, 2)

	assert.Equal(t, "QB", rows[0].Label("position"), "QB bucket emits before RB")
	assert.Equal(t, "Streaming Quarterback", rows[0].Label("player"))
	points, _ := rows[1].Number("points")
	assert.Equal(t, 21.3, points)
}

func TestNormalize_MatchupsESPNScoreboard(t *testing.T) {
	p := jsonPayload(t, `{
		"schedule": [
			{"winner": "HOME",
			 "home": {"teamId": 1, "totalPoints": 101.2, "totalPointsLive": 0, "totalProjectedPointsLive": 99.9},
			 "away": {"teamId": 4, "totalPoints": 88.8, "totalPointsLive": 90.1, "totalProjectedPointsLive": 91.0}}
		]
	}`)

	rows := report.Normalize(p, report.Matchups)
	require.Len(t, rows, 1)

	assert.Equal(t, "Team 1", rows[0].Label("homeTeam"))
	home, _ := rows[0].Number("homeScore")
	away, _ := rows[0].Number("awayScore")
	assert.Equal(t, 101.2, home, "falls back to totalPoints when live total is zero")
	assert.Equal(t, 90.1, away, "prefers live total when present")
	assert.Equal(t, "Final", rows[0].Label("status"))
}

func TestNormalize_RostersESPN(t *testing.T) {
	p := jsonPayload(t, `{
		"teams": [
			{"id": 5, "name": "Beyond Cursed", "roster": {"entries": [
				{"lineupSlotId": 0, "playerPoolEntry": {"appliedStatTotal": 288.4, "player": {"fullName": "Jalen Hurts", "defaultPositionId": 1}}},
				{"lineupSlotId": 20, "playerPoolEntry": {"appliedStatTotal": 104.0, "player": {"fullName": "Bench Guy", "defaultPositionId": 3}}}
			]}}
		]
	}`)

	rows := report.Normalize(p, report.Rosters)
	require.Len(t, rows, 2)

	assert.Equal(t, "Jalen Hurts", rows[0].Label("player"))
	assert.Equal(t, "QB", rows[0].Label("position"))
	assert.Equal(t, "QB", rows[0].Label("slot"))
	assert.Equal(t, "Beyond Cursed", rows[0].Label("team"))
	assert.Equal(t, "Bench", rows[1].Label("slot"))
}

func TestNormalize_RostersTeamLists(t *testing.T) {
	p := jsonPayload(t, `{
		"teams": [
			{"team_name": "UGF Pandas", "players": [
				{"name": "Derrick Henry", "position": "RB", "points": 202.2, "slot": "RB"}
			]}
		]
	}`)

	rows := report.Normalize(p, report.Rosters)
	require.Len(t, rows, 1)
	assert.Equal(t, "UGF Pandas", rows[0].Label("team"))
	assert.Equal(t, "Derrick Henry", rows[0].Label("player"))
}

func TestNormalize_CSVPayload(t *testing.T) {
	table, err := fetch.ParseTable(strings.NewReader(
		"player_display_name,position,recent_team,fantasy_points_custom\nWaiver Gem,WR,SEA,19.4\n"))
	require.NoError(t, err)

	rows := report.Normalize(fetch.Payload{Format: fetch.FormatCSV, CSV: table}, report.Waiver)
	require.Len(t, rows, 1)

	assert.Equal(t, "Waiver Gem", rows[0].Label("player"))
	points, _ := rows[0].Number("points")
	assert.Equal(t, 19.4, points)
}

func TestNormalize_UnknownShapeDegradesToEmpty(t *testing.T) {
	assert.NotPanics(t, func() {
		rows := report.Normalize(jsonPayload(t, `{"surprising": true}`), report.Standings)
		assert.Empty(t, rows)

		rows = report.Normalize(jsonPayload(t, `42`), report.VORP)
		assert.Empty(t, rows)

		rows = report.Normalize(fetch.Payload{}, report.Consistency)
		assert.Empty(t, rows)
	})
}

func TestNormalize_Idempotent(t *testing.T) {
	body := `{"players": [{"player_display_name": "Josh Allen", "position": "QB", "ppg": 24.1, "vorp": 8.4}]}`

	first := report.Normalize(jsonPayload(t, body), report.VORP)
	second := report.Normalize(jsonPayload(t, body), report.VORP)
	assert.Equal(t, first, second)

	// Re-running over the same decoded value must not mutate it.
	p := jsonPayload(t, body)
	third := report.Normalize(p, report.VORP)
	fourth := report.Normalize(p, report.VORP)
	assert.Equal(t, third, fourth)
}

func TestNormalize_TextDefaultsToPlaceholder(t *testing.T) {
	p := jsonPayload(t, `{"players": [{"player_display_name": "No Team Guy", "ppg": 10}]}`)

	rows := report.Normalize(p, report.VORP)
	require.Len(t, rows, 1)
	assert.Equal(t, report.Placeholder, rows[0].Label("team"))
	assert.Equal(t, report.Placeholder, rows[0].Label("position"))
}
