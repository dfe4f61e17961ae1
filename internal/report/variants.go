package report

import (
	"fmt"
	"sort"
	"strings"
)

// variant is one named upstream shape for a report type, selected by
// structural inspection. Variants are tried in registry order; the first
// match wins, so more specific shapes are listed first.
type variant struct {
	name  string
	match func(value any) bool
	rows  func(sc Schema, value any) RowSet
}

func variantsFor(t Type) []variant {
	return variants[t]
}

var variants = map[Type][]variant{
	Standings: {
		{name: "espn-mteam", match: matchESPNTeams, rows: standingsFromESPN},
		{name: "stat-pairs", match: matchStatPairs, rows: standingsFromStatPairs},
		{name: "team-rows", match: matchFlatRows("rows", "teams", "standings"), rows: flatRows("rows", "teams", "standings")},
	},
	VORP: {
		{name: "player-rows", match: matchFlatRows("players", "rows"), rows: flatRows("players", "rows")},
	},
	Consistency: {
		{name: "player-rows", match: matchFlatRows("players", "rows"), rows: flatRows("players", "rows")},
	},
	Matchups: {
		{name: "espn-scoreboard", match: matchESPNScoreboard, rows: matchupsFromESPN},
		{name: "matchup-rows", match: matchFlatRows("matchups", "rows", "schedule"), rows: flatRows("matchups", "rows", "schedule")},
	},
	Waiver: {
		{name: "position-buckets", match: matchPositionBuckets, rows: waiverFromBuckets},
		{name: "player-rows", match: matchFlatRows("players", "rows"), rows: flatRows("players", "rows")},
	},
	Rosters: {
		{name: "espn-mroster", match: matchESPNRosters, rows: rostersFromESPN},
		{name: "team-rosters", match: matchTeamRosters, rows: rostersFromTeams},
		{name: "player-rows", match: matchFlatRows("players", "rows"), rows: flatRows("players", "rows")},
	},
}

// matchFlatRows accepts a bare array of objects, or an object wrapping
// one under the given keys, whose elements are flat field maps.
func matchFlatRows(keys ...string) func(any) bool {
	return func(value any) bool {
		items, ok := itemsUnder(value, keys...)
		if !ok {
			return false
		}
		_, ok = firstMap(items)
		return ok
	}
}

func flatRows(keys ...string) func(Schema, any) RowSet {
	return func(sc Schema, value any) RowSet {
		items, _ := itemsUnder(value, keys...)
		rows := make(RowSet, 0, len(items))
		for _, item := range items {
			m, ok := asMap(item)
			if !ok {
				continue
			}
			rows = append(rows, rowFromMap(sc, m))
		}
		return rows
	}
}

// --- league-platform mTeam view ---

func matchESPNTeams(value any) bool {
	m, ok := asMap(value)
	if !ok {
		return false
	}
	items, ok := asSlice(m["teams"])
	if !ok {
		return false
	}
	team, ok := firstMap(items)
	if !ok {
		return false
	}
	_, ok = asMap(team["record"])
	return ok
}

func standingsFromESPN(sc Schema, value any) RowSet {
	m, _ := asMap(value)
	items, _ := asSlice(m["teams"])

	rows := make(RowSet, 0, len(items))
	for _, item := range items {
		team, ok := asMap(item)
		if !ok {
			continue
		}
		overall := nested(team, "record", "overall")
		row := Row{
			Text: map[string]string{"team": teamDisplayName(team)},
			Num: map[string]float64{
				"wins":          number(overall, "wins"),
				"losses":        number(overall, "losses"),
				"ties":          number(overall, "ties"),
				"pointsFor":     number(overall, "pointsFor"),
				"pointsAgainst": number(overall, "pointsAgainst"),
			},
		}
		rows = append(rows, row)
	}
	return rows
}

func teamDisplayName(team map[string]any) string {
	if name := toString(team["name"]); name != "" {
		return name
	}
	location := toString(team["location"])
	nickname := toString(team["nickname"])
	if location != "" || nickname != "" {
		return strings.TrimSpace(location + " " + nickname)
	}
	if id, ok := toNumber(team["id"]); ok {
		return fmt.Sprintf("Team %d", int(id))
	}
	return ""
}

// --- name/value stat-pair entries ---

func matchStatPairs(value any) bool {
	items, ok := itemsUnder(value, "entries")
	if !ok {
		return false
	}
	entry, ok := firstMap(items)
	if !ok {
		return false
	}
	_, ok = asSlice(entry["stats"])
	return ok
}

func standingsFromStatPairs(sc Schema, value any) RowSet {
	items, _ := itemsUnder(value, "entries")

	rows := make(RowSet, 0, len(items))
	for _, item := range items {
		entry, ok := asMap(item)
		if !ok {
			continue
		}
		name, _ := lookup(entry, []string{"team", "name", "teamName"})
		row := Row{
			Text: map[string]string{"team": toString(name)},
			Num:  make(map[string]float64),
		}
		for _, col := range sc.Columns {
			if !col.Numeric || col.StatKey == "" {
				continue
			}
			if v, ok := statValue(entry["stats"], col.StatKey); ok {
				row.Num[col.Name] = v
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// statValue scans a stat-pair array for an entry whose name contains the
// key, case-insensitively.
func statValue(stats any, key string) (float64, bool) {
	items, ok := asSlice(stats)
	if !ok {
		return 0, false
	}
	key = foldKey(key)
	for _, item := range items {
		pair, ok := asMap(item)
		if !ok {
			continue
		}
		name, _ := lookup(pair, []string{"name", "label", "stat"})
		if !strings.Contains(foldKey(toString(name)), key) {
			continue
		}
		if v, ok := toNumber(pair["value"]); ok {
			return v, true
		}
	}
	return 0, false
}

// --- league-platform mScoreboard view ---

func matchESPNScoreboard(value any) bool {
	m, ok := asMap(value)
	if !ok {
		return false
	}
	items, ok := asSlice(m["schedule"])
	if !ok {
		return false
	}
	match, ok := firstMap(items)
	if !ok {
		return false
	}
	_, ok = asMap(match["home"])
	return ok
}

func matchupsFromESPN(sc Schema, value any) RowSet {
	m, _ := asMap(value)
	items, _ := asSlice(m["schedule"])

	rows := make(RowSet, 0, len(items))
	for _, item := range items {
		match, ok := asMap(item)
		if !ok {
			continue
		}
		home, _ := asMap(match["home"])
		away, _ := asMap(match["away"])
		homeScore, homeProjected := sideScore(home)
		awayScore, awayProjected := sideScore(away)

		status := ""
		if winner := toString(match["winner"]); winner != "" && winner != "UNDECIDED" {
			status = "Final"
		}

		rows = append(rows, Row{
			Text: map[string]string{
				"homeTeam": sideName(home),
				"awayTeam": sideName(away),
				"status":   status,
			},
			Num: map[string]float64{
				"homeScore":     homeScore,
				"awayScore":     awayScore,
				"homeProjected": homeProjected,
				"awayProjected": awayProjected,
			},
		})
	}
	return rows
}

// sideScore prefers the live total when present, like the platform's own
// scoreboard does.
func sideScore(side map[string]any) (score, projected float64) {
	score = number(side, "totalPointsLive")
	if score == 0 {
		score = number(side, "totalPoints")
	}
	projected = number(side, "totalProjectedPointsLive")
	return score, projected
}

func sideName(side map[string]any) string {
	if name := toString(side["teamName"]); name != "" {
		return name
	}
	if id, ok := toNumber(side["teamId"]); ok {
		return fmt.Sprintf("Team %d", int(id))
	}
	return ""
}

// --- waiver position buckets ---

func matchPositionBuckets(value any) bool {
	m, ok := asMap(value)
	if !ok {
		return false
	}
	_, ok = asMap(m["positions"])
	return ok
}

var positionOrder = []string{"QB", "RB", "WR", "TE", "K", "DEF"}

func waiverFromBuckets(sc Schema, value any) RowSet {
	m, _ := asMap(value)
	buckets, _ := asMap(m["positions"])

	var rows RowSet
	for _, pos := range bucketOrder(buckets) {
		items, ok := asSlice(buckets[pos])
		if !ok {
			continue
		}
		for _, item := range items {
			entry, ok := asMap(item)
			if !ok {
				continue
			}
			row := rowFromMap(sc, entry)
			if row.Text == nil {
				row.Text = make(map[string]string)
			}
			row.Text["position"] = pos
			rows = append(rows, row)
		}
	}
	return rows
}

// bucketOrder keeps the familiar positional order and appends any
// unexpected buckets sorted, so emission order stays deterministic.
func bucketOrder(buckets map[string]any) []string {
	var order []string
	seen := make(map[string]bool)
	for _, pos := range positionOrder {
		if _, ok := buckets[pos]; ok {
			order = append(order, pos)
			seen[pos] = true
		}
	}
	var rest []string
	for pos := range buckets {
		if !seen[pos] {
			rest = append(rest, pos)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

// --- rosters ---

func matchTeamRosters(value any) bool {
	m, ok := asMap(value)
	if !ok {
		return false
	}
	items, ok := asSlice(m["teams"])
	if !ok {
		return false
	}
	team, ok := firstMap(items)
	if !ok {
		return false
	}
	if _, ok := asSlice(team["players"]); ok {
		return true
	}
	_, ok = asSlice(team["roster"])
	return ok
}

func rostersFromTeams(sc Schema, value any) RowSet {
	m, _ := asMap(value)
	items, _ := asSlice(m["teams"])

	var rows RowSet
	for _, item := range items {
		team, ok := asMap(item)
		if !ok {
			continue
		}
		teamName, _ := lookup(team, []string{"team", "team_name", "name"})
		players, ok := asSlice(team["players"])
		if !ok {
			players, _ = asSlice(team["roster"])
		}
		for _, p := range players {
			entry, ok := asMap(p)
			if !ok {
				continue
			}
			row := rowFromMap(sc, entry)
			if row.Text == nil {
				row.Text = make(map[string]string)
			}
			row.Text["team"] = toString(teamName)
			rows = append(rows, row)
		}
	}
	return rows
}

func matchESPNRosters(value any) bool {
	m, ok := asMap(value)
	if !ok {
		return false
	}
	items, ok := asSlice(m["teams"])
	if !ok {
		return false
	}
	team, ok := firstMap(items)
	if !ok {
		return false
	}
	roster, ok := asMap(team["roster"])
	if !ok {
		return false
	}
	_, ok = asSlice(roster["entries"])
	return ok
}

func rostersFromESPN(sc Schema, value any) RowSet {
	m, _ := asMap(value)
	items, _ := asSlice(m["teams"])

	var rows RowSet
	for _, item := range items {
		team, ok := asMap(item)
		if !ok {
			continue
		}
		roster, _ := asMap(team["roster"])
		entries, _ := asSlice(roster["entries"])
		for _, e := range entries {
			entry, ok := asMap(e)
			if !ok {
				continue
			}
			pool, _ := asMap(entry["playerPoolEntry"])
			player, _ := asMap(pool["player"])
			slot := lineupSlotName(int(number(entry, "lineupSlotId")))

			rows = append(rows, Row{
				Text: map[string]string{
					"player":   toString(player["fullName"]),
					"team":     teamDisplayName(team),
					"position": positionName(int(number(player, "defaultPositionId"))),
					"slot":     slot,
				},
				Num: map[string]float64{
					"points": number(pool, "appliedStatTotal"),
				},
			})
		}
	}
	return rows
}

var positionNames = map[int]string{
	1: "QB", 2: "RB", 3: "WR", 4: "TE", 5: "K", 16: "D/ST",
}

func positionName(id int) string {
	if pos, ok := positionNames[id]; ok {
		return pos
	}
	return ""
}

func lineupSlotName(id int) string {
	switch id {
	case 0:
		return "QB"
	case 2:
		return "RB"
	case 4:
		return "WR"
	case 6:
		return "TE"
	case 16:
		return "D/ST"
	case 17:
		return "K"
	case 20:
		return "Bench"
	case 21:
		return "IR"
	case 23:
		return "FLEX"
	default:
		return ""
	}
}

// --- shared nested helpers ---

func nested(m map[string]any, keys ...string) map[string]any {
	current := m
	for _, key := range keys {
		next, ok := asMap(current[key])
		if !ok {
			return map[string]any{}
		}
		current = next
	}
	return current
}

func number(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	n, _ := toNumber(m[key])
	return n
}
