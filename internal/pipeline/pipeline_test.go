package pipeline_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/leaguedash/internal/fetch"
	"github.com/gridironlabs/leaguedash/internal/pipeline"
	"github.com/gridironlabs/leaguedash/internal/report"
	"github.com/gridironlabs/leaguedash/internal/view"
)

const standingsBody = `{
	"fetched_at": "2025-10-07T12:00:00Z",
	"data": [
		{"team": "Far Far Away Knights", "wins": 2, "losses": 1, "pointsFor": 281, "pointsAgainst": 263},
		{"team": "Duloc Gingerbread Men", "wins": 2, "losses": 1, "pointsFor": 296, "pointsAgainst": 274},
		{"team": "Dragon's Lair", "wins": 1, "losses": 2, "pointsFor": 248, "pointsAgainst": 303}
	]
}`

const statusBody = `{"generated_utc": "2025-10-07T12:00:00Z", "notes": "ESPN league sync OK"}`

func artifactServer(t *testing.T, hits *atomic.Int64, bodies map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		body, ok := bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func standingsConfig() pipeline.Config {
	return pipeline.Config{
		Type: report.Standings,
		Resources: []fetch.Resource{
			{Name: "standings", Path: "/data/latest.json"},
			{Name: "status", Path: "/data/status.json", Optional: true},
		},
		Primary: "standings",
		Note:    "status",
	}
}

func TestSession_LoadToReady(t *testing.T) {
	srv := artifactServer(t, nil, map[string]string{
		"/data/latest.json": standingsBody,
		"/data/status.json": statusBody,
	})

	s := pipeline.NewSession(fetch.NewClient(srv.URL), standingsConfig())
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, pipeline.Ready, s.Status())
	assert.NoError(t, s.Err())
	assert.Equal(t, "ESPN league sync OK", s.Note())

	rows := s.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "Duloc Gingerbread Men", rows[0].Label("team"),
		"wins tie broken by points for")
	assert.Equal(t, "Dragon's Lair", rows[2].Label("team"))
}

func TestSession_RequiredFailureLeavesNoPartialTable(t *testing.T) {
	srv := artifactServer(t, nil, map[string]string{
		"/data/status.json": statusBody,
	})

	s := pipeline.NewSession(fetch.NewClient(srv.URL), standingsConfig())
	err := s.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, fetch.ErrResourceUnavailable)
	assert.ErrorContains(t, err, "standings")
	assert.Equal(t, pipeline.Failed, s.Status())
	assert.ErrorIs(t, s.Err(), fetch.ErrResourceUnavailable)
	assert.Empty(t, s.Rows())

	table := s.Apply(view.State{})
	assert.Empty(t, table.Rows, "failed sessions keep no partial table")
}

func TestSession_OptionalFailureStillLoads(t *testing.T) {
	srv := artifactServer(t, nil, map[string]string{
		"/data/latest.json": standingsBody,
	})

	s := pipeline.NewSession(fetch.NewClient(srv.URL), standingsConfig())
	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, pipeline.Ready, s.Status())
	assert.Empty(t, s.Note())
	assert.Len(t, s.Rows(), 3)
}

func TestSession_ApplyRerendersWithoutRefetch(t *testing.T) {
	var hits atomic.Int64
	srv := artifactServer(t, &hits, map[string]string{
		"/data/latest.json": standingsBody,
		"/data/status.json": statusBody,
	})

	s := pipeline.NewSession(fetch.NewClient(srv.URL), standingsConfig())
	require.NoError(t, s.Load(context.Background()))
	loaded := hits.Load()

	table := s.Apply(view.State{Search: "dragon"})
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Dragon's Lair", table.Rows[0][0].Text)

	table = s.Apply(view.State{Search: "no such team anywhere"})
	assert.True(t, table.NoResults)

	assert.Equal(t, loaded, hits.Load(), "view-state changes never re-fetch")
}

func TestSession_ApplyLatestStateWins(t *testing.T) {
	srv := artifactServer(t, nil, map[string]string{
		"/data/latest.json": standingsBody,
		"/data/status.json": statusBody,
	})

	s := pipeline.NewSession(fetch.NewClient(srv.URL), standingsConfig())
	require.NoError(t, s.Load(context.Background()))

	s.Apply(view.State{Search: "knights"})
	latest := s.Apply(view.State{Search: "duloc"})

	require.Len(t, latest.Rows, 1)
	assert.Equal(t, "Duloc Gingerbread Men", latest.Rows[0][0].Text)
	assert.Equal(t, latest, s.Apply(view.State{Search: "duloc"}))
}

func TestSession_ApplyBeforeLoadReturnsEmptyTable(t *testing.T) {
	srv := artifactServer(t, nil, nil)

	s := pipeline.NewSession(fetch.NewClient(srv.URL), standingsConfig())
	assert.Equal(t, pipeline.Idle, s.Status())

	table := s.Apply(view.State{Search: "anything"})
	assert.Empty(t, table.Rows)
}

func TestHub_EnsureFreshSkipsReloadInsideWindow(t *testing.T) {
	var hits atomic.Int64
	srv := artifactServer(t, &hits, map[string]string{
		"/data/latest.json": standingsBody,
		"/data/status.json": statusBody,
	})

	hub := pipeline.NewHub(fetch.NewClient(srv.URL), []pipeline.Config{standingsConfig()}, time.Hour)

	_, err := hub.EnsureFresh(context.Background(), report.Standings)
	require.NoError(t, err)
	loaded := hits.Load()

	_, err = hub.EnsureFresh(context.Background(), report.Standings)
	require.NoError(t, err)
	assert.Equal(t, loaded, hits.Load(), "fresh snapshot short-circuits the fetch")
}

func TestHub_EnsureFreshReloadsAfterFailure(t *testing.T) {
	bodies := map[string]string{"/data/status.json": statusBody}
	srv := artifactServer(t, nil, bodies)

	hub := pipeline.NewHub(fetch.NewClient(srv.URL), []pipeline.Config{standingsConfig()}, time.Hour)

	_, err := hub.EnsureFresh(context.Background(), report.Standings)
	require.ErrorIs(t, err, fetch.ErrResourceUnavailable)

	// Artifact appears; the next request must retry instead of caching
	// the failure.
	bodies["/data/latest.json"] = standingsBody
	s, err := hub.EnsureFresh(context.Background(), report.Standings)
	require.NoError(t, err)
	assert.Equal(t, pipeline.Ready, s.Status())
}

func TestHub_EnsureFreshUnknownReport(t *testing.T) {
	hub := pipeline.NewHub(fetch.NewClient("http://unused"), nil, time.Hour)
	_, err := hub.EnsureFresh(context.Background(), report.Standings)
	assert.Error(t, err)
}

func TestHub_Consensus(t *testing.T) {
	srv := artifactServer(t, nil, map[string]string{
		"/data/analysis/vorp_analysis.json": `{"season": 2024, "players": [
			{"player_display_name": "Josh Allen", "position": "QB", "games_played": 17, "ppg": 24.1, "vorp": 8.4}
		]}`,
		"/data/analysis/consistency_report.json": `{"analysis_seasons": [2022, 2023, 2024], "players": [
			{"player_display_name": "Josh Allen", "position": "QB", "games_played": 45,
			 "mean_ppg": 23.5, "std_dev_ppg": 6.1, "consistency_pct": 88.2}
		]}`,
	})

	configs := []pipeline.Config{
		{Type: report.VORP, Primary: "vorp",
			Resources: []fetch.Resource{{Name: "vorp", Path: "/data/analysis/vorp_analysis.json"}}},
		{Type: report.Consistency, Primary: "consistency",
			Resources: []fetch.Resource{{Name: "consistency", Path: "/data/analysis/consistency_report.json"}}},
	}
	hub := pipeline.NewHub(fetch.NewClient(srv.URL), configs, time.Hour)

	statements, err := hub.Consensus(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, statements)
	assert.Equal(t, "Josh Allen", statements[0].Player)
}

func TestDefaultConfigs_CoverEveryReportType(t *testing.T) {
	configs := pipeline.DefaultConfigs()

	seen := make(map[report.Type]bool, len(configs))
	for _, cfg := range configs {
		seen[cfg.Type] = true
		require.NotEmpty(t, cfg.Resources, string(cfg.Type))
		names := make(map[string]bool)
		for _, res := range cfg.Resources {
			names[res.Name] = true
		}
		assert.True(t, names[cfg.Primary], "primary resource is declared for %s", cfg.Type)
		if cfg.Note != "" {
			assert.True(t, names[cfg.Note], "note resource is declared for %s", cfg.Type)
		}
	}
	for _, typ := range report.Types() {
		assert.True(t, seen[typ], string(typ))
	}
}
