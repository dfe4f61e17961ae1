package memory

import (
	"sync"
	"time"

	"github.com/gridironlabs/leaguedash/internal/report"
)

// Snapshot is the last successfully normalized row set for a report.
type Snapshot struct {
	Rows      report.RowSet
	FetchedAt time.Time
}

type Repository struct {
	snapshots map[report.Type]Snapshot
	mu        sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{snapshots: make(map[report.Type]Snapshot)}
}

func (r *Repository) Save(t report.Type, rows report.RowSet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[t] = Snapshot{Rows: rows, FetchedAt: time.Now()}
}

func (r *Repository) Get(t report.Type) (Snapshot, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap, ok := r.snapshots[t]
	return snap, ok
}

// Fresh reports whether the stored snapshot is newer than the window.
func (r *Repository) Fresh(t report.Type, window time.Duration) bool {
	snap, ok := r.Get(t)
	return ok && time.Since(snap.FetchedAt) <= window
}
