package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gridironlabs/leaguedash/internal/derive"
	"github.com/gridironlabs/leaguedash/internal/fetch"
	"github.com/gridironlabs/leaguedash/internal/report"
	"github.com/gridironlabs/leaguedash/internal/view"
)

// Status is the per-report session state. Ready self-loops on view-state
// changes (re-render only, no re-fetch); Failed is terminal until the
// next Load.
type Status int

const (
	Idle Status = iota
	Loading
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// Config wires one report through the shared pipeline: which resources
// to fetch and which one feeds the normalizer.
type Config struct {
	Type      report.Type
	Resources []fetch.Resource
	// Primary names the resource whose payload is normalized.
	Primary string
	// Note names an optional status resource whose envelope note is
	// surfaced on the page.
	Note string
}

// Session runs the fetch → normalize → derive → render pipeline for one
// report and re-renders on view-state changes from the in-memory rows.
type Session struct {
	client *fetch.Client
	cfg    Config
	schema report.Schema

	mu      sync.Mutex
	status  Status
	rows    report.RowSet
	state   view.State
	table   view.Table
	note    string
	loadErr error
	// gen invalidates in-flight renders for superseded view states;
	// only the latest generation's output is committed.
	gen uint64
}

func NewSession(client *fetch.Client, cfg Config) *Session {
	return &Session{
		client: client,
		cfg:    cfg,
		schema: report.SchemaFor(cfg.Type),
	}
}

// Load runs the full pipeline. A required-resource failure moves the
// session to Failed with one user-visible error and leaves no partial
// table behind.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	s.status = Loading
	s.loadErr = nil
	s.mu.Unlock()

	payloads, err := s.client.FetchAll(ctx, s.cfg.Resources)
	if err != nil {
		err = fmt.Errorf("loading %s report: %w", s.cfg.Type, err)
		slog.Error("Report load failed", "report", string(s.cfg.Type), "error", err)
		s.mu.Lock()
		s.status = Failed
		s.loadErr = err
		s.rows = nil
		s.table = view.Table{}
		s.mu.Unlock()
		return err
	}

	rows := report.Normalize(payloads[s.cfg.Primary], s.cfg.Type)
	rows = derive.SortChain(rows, s.schema.TieBreak)

	note := ""
	if s.cfg.Note != "" {
		note = statusNote(payloads[s.cfg.Note])
	}

	s.mu.Lock()
	s.rows = rows
	s.note = note
	s.status = Ready
	s.table = view.RenderTable(s.schema, rows, s.state)
	s.mu.Unlock()

	slog.Info("Report loaded", "report", string(s.cfg.Type), "rows", len(rows))
	return nil
}

// Apply commits a view-state change and re-renders from the in-memory
// rows. Renders for superseded states are discarded: when a newer Apply
// lands while this one renders, the newer table stays committed.
func (s *Session) Apply(st view.State) view.Table {
	s.mu.Lock()
	if s.status != Ready {
		table := s.table
		s.mu.Unlock()
		return table
	}
	s.gen++
	gen := s.gen
	rows := s.rows
	s.state = st
	s.mu.Unlock()

	table := view.RenderTable(s.schema, rows, st)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return s.table
	}
	s.table = table
	return table
}

// Chart renders the chart series for a view state without committing it.
func (s *Session) Chart(st view.State) view.Chart {
	s.mu.Lock()
	rows := s.rows
	s.mu.Unlock()
	return view.RenderChart(s.schema, rows, st)
}

// Compare renders the comparison widget over the current rows.
func (s *Session) Compare(a, b string) view.Comparison {
	s.mu.Lock()
	rows := s.rows
	s.mu.Unlock()
	return view.Compare(s.schema, rows, a, b)
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

func (s *Session) Rows() report.RowSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows
}

func (s *Session) Note() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.note
}

func (s *Session) Schema() report.Schema {
	return s.schema
}

// statusNote pulls the producer's note out of a status artifact, e.g.
// {"generated_utc": ..., "notes": "ESPN league sync OK"}.
func statusNote(p fetch.Payload) string {
	m, ok := p.JSON.(map[string]any)
	if !ok {
		return ""
	}
	if note, ok := m["notes"].(string); ok {
		return note
	}
	return ""
}
