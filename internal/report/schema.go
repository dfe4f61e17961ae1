package report

// Column declares one canonical field of a report row, the upstream
// names it may arrive under, and how it is displayed.
type Column struct {
	Name    string
	Title   string
	Aliases []string
	// StatKey matches entries in name/value stat-pair arrays by
	// case-insensitive substring.
	StatKey       string
	Numeric       bool
	Precision     int
	Heat          bool
	LowerIsBetter bool
	Chart         bool
}

func (c Column) keys() []string {
	return append([]string{c.Name}, c.Aliases...)
}

// Schema is the report-type configuration consumed by the shared
// pipeline: canonical columns, the identity column, and the tie-break
// chain applied after normalization (a leading '-' sorts descending).
type Schema struct {
	Type     Type
	Title    string
	Key      string
	Columns  []Column
	TieBreak []string
}

func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// HasPosition reports whether rows carry a position column, enabling the
// position filter.
func (s Schema) HasPosition() bool {
	_, ok := s.Column("position")
	return ok
}

var schemas = map[Type]Schema{
	Standings: {
		Type:  Standings,
		Title: "League Standings",
		Key:   "team",
		Columns: []Column{
			{Name: "team", Title: "Team", Aliases: []string{"teamName", "team_name", "name"}, StatKey: "team"},
			{Name: "wins", Title: "W", Numeric: true, StatKey: "wins", Chart: true},
			{Name: "losses", Title: "L", Numeric: true, StatKey: "loss"},
			{Name: "ties", Title: "T", Numeric: true, StatKey: "ties"},
			{Name: "pointsFor", Title: "PF", Aliases: []string{"points_for"}, StatKey: "pointsfor", Numeric: true, Heat: true, Chart: true},
			{Name: "pointsAgainst", Title: "PA", Aliases: []string{"points_against"}, StatKey: "pointsagainst", Numeric: true, Heat: true, LowerIsBetter: true, Chart: true},
		},
		TieBreak: []string{"-wins", "-pointsFor"},
	},
	VORP: {
		Type:  VORP,
		Title: "Value Over Replacement",
		Key:   "player",
		Columns: []Column{
			{Name: "player", Title: "Player", Aliases: []string{"player_display_name", "name", "fullName"}},
			{Name: "position", Title: "Pos"},
			{Name: "team", Title: "Team", Aliases: []string{"recent_team", "proTeam"}},
			{Name: "gamesPlayed", Title: "GP", Aliases: []string{"games_played"}, Numeric: true},
			{Name: "ppg", Title: "PPG", Numeric: true, Precision: 2, Heat: true, Chart: true},
			{Name: "vorp", Title: "VORP", Numeric: true, Precision: 2, Heat: true, Chart: true},
		},
		TieBreak: []string{"-vorp", "-ppg"},
	},
	Consistency: {
		Type:  Consistency,
		Title: "Consistency Report",
		Key:   "player",
		Columns: []Column{
			{Name: "player", Title: "Player", Aliases: []string{"player_display_name", "name", "fullName"}},
			{Name: "position", Title: "Pos"},
			{Name: "gamesPlayed", Title: "GP", Aliases: []string{"games_played"}, Numeric: true},
			{Name: "meanPPG", Title: "Mean PPG", Aliases: []string{"mean_ppg"}, Numeric: true, Precision: 2, Heat: true, Chart: true},
			{Name: "stdDev", Title: "Std Dev", Aliases: []string{"std_dev_ppg", "std_dev"}, Numeric: true, Precision: 2, Heat: true, LowerIsBetter: true, Chart: true},
			{Name: "consistencyPct", Title: "Consistency %", Aliases: []string{"consistency_pct"}, Numeric: true, Precision: 1, Heat: true, Chart: true},
			{Name: "floor", Title: "Floor", Aliases: []string{"floor_ppg"}, Numeric: true, Precision: 2},
			{Name: "ceiling", Title: "Ceiling", Aliases: []string{"ceiling_ppg"}, Numeric: true, Precision: 2},
		},
		TieBreak: []string{"position", "-consistencyPct", "-meanPPG"},
	},
	Matchups: {
		Type:  Matchups,
		Title: "Weekly Matchups",
		Key:   "homeTeam",
		Columns: []Column{
			{Name: "homeTeam", Title: "Home", Aliases: []string{"home_team"}},
			{Name: "awayTeam", Title: "Away", Aliases: []string{"away_team"}},
			{Name: "homeScore", Title: "Home Pts", Aliases: []string{"home_score"}, Numeric: true, Precision: 2, Chart: true},
			{Name: "awayScore", Title: "Away Pts", Aliases: []string{"away_score"}, Numeric: true, Precision: 2, Chart: true},
			{Name: "homeProjected", Title: "Home Proj", Aliases: []string{"home_projected"}, Numeric: true, Precision: 2},
			{Name: "awayProjected", Title: "Away Proj", Aliases: []string{"away_projected"}, Numeric: true, Precision: 2},
			{Name: "status", Title: "Status"},
		},
	},
	Waiver: {
		Type:  Waiver,
		Title: "Waiver Wire",
		Key:   "player",
		Columns: []Column{
			{Name: "player", Title: "Player", Aliases: []string{"player_display_name", "name", "fullName"}},
			{Name: "position", Title: "Pos"},
			{Name: "team", Title: "Team", Aliases: []string{"recent_team", "proTeam"}},
			{Name: "points", Title: "Points", Aliases: []string{"fantasy_points_custom", "fantasy_points"}, Numeric: true, Precision: 2, Heat: true, Chart: true},
		},
		TieBreak: []string{"position", "-points"},
	},
	Rosters: {
		Type:  Rosters,
		Title: "Team Rosters",
		Key:   "player",
		Columns: []Column{
			{Name: "player", Title: "Player", Aliases: []string{"player_display_name", "name", "fullName"}},
			{Name: "team", Title: "Fantasy Team", Aliases: []string{"fantasy_team", "team_name"}},
			{Name: "position", Title: "Pos"},
			{Name: "slot", Title: "Slot", Aliases: []string{"lineup_slot"}},
			{Name: "points", Title: "Points", Aliases: []string{"applied_total", "appliedStatTotal"}, Numeric: true, Precision: 2, Heat: true, Chart: true},
		},
		TieBreak: []string{"team"},
	},
}

// SchemaFor returns the declared schema for a report type.
func SchemaFor(t Type) Schema {
	return schemas[t]
}

// Types lists the report types in display order.
func Types() []Type {
	return []Type{Standings, VORP, Consistency, Matchups, Waiver, Rosters}
}
