package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/gridironlabs/leaguedash/internal/derive"
	"github.com/gridironlabs/leaguedash/internal/fetch"
	"github.com/gridironlabs/leaguedash/internal/report"
	"github.com/gridironlabs/leaguedash/internal/repository/memory"
)

// Hub owns one session per configured report plus the snapshot cache
// the scheduler refreshes into.
type Hub struct {
	sessions  map[report.Type]*Session
	order     []report.Type
	repo      *memory.Repository
	freshness time.Duration
}

func NewHub(client *fetch.Client, configs []Config, freshness time.Duration) *Hub {
	h := &Hub{
		sessions:  make(map[report.Type]*Session, len(configs)),
		repo:      memory.NewRepository(),
		freshness: freshness,
	}
	for _, cfg := range configs {
		h.sessions[cfg.Type] = NewSession(client, cfg)
		h.order = append(h.order, cfg.Type)
	}
	return h
}

func (h *Hub) Session(t report.Type) (*Session, bool) {
	s, ok := h.sessions[t]
	return s, ok
}

func (h *Hub) Types() []report.Type {
	return h.order
}

// EnsureFresh loads the report unless its snapshot is inside the
// freshness window, so view-state changes never trigger a re-fetch.
func (h *Hub) EnsureFresh(ctx context.Context, t report.Type) (*Session, error) {
	s, ok := h.sessions[t]
	if !ok {
		return nil, fmt.Errorf("unknown report: %s", t)
	}
	if h.repo.Fresh(t, h.freshness) && s.Status() == Ready {
		return s, nil
	}
	if err := s.Load(ctx); err != nil {
		return s, err
	}
	h.repo.Save(t, s.Rows())
	return s, nil
}

// RefreshAll re-runs the whole pipeline for every report; used by the
// fixed-interval auto-refresh job.
func (h *Hub) RefreshAll(ctx context.Context) {
	for _, t := range h.order {
		s := h.sessions[t]
		if err := s.Load(ctx); err != nil {
			continue
		}
		h.repo.Save(t, s.Rows())
	}
}

// Consensus joins the value ranking and consistency metrics into the
// dashboard's consensus statements.
func (h *Hub) Consensus(ctx context.Context) ([]derive.Statement, error) {
	vorp, err := h.EnsureFresh(ctx, report.VORP)
	if err != nil {
		return nil, err
	}
	consistency, err := h.EnsureFresh(ctx, report.Consistency)
	if err != nil {
		return nil, err
	}
	return derive.Statements(vorp.Rows(), consistency.Rows()), nil
}
