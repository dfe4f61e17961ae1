package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gridironlabs/leaguedash/internal/report"
	"github.com/gridironlabs/leaguedash/internal/view"
)

func stateFromQuery(r *http.Request) view.State {
	q := r.URL.Query()
	return view.State{
		Search:   q.Get("q"),
		Position: q.Get("pos"),
		SortKey:  q.Get("sort"),
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var entries []indexEntry
	for _, t := range s.hub.Types() {
		entries = append(entries, indexEntry{
			Name:  string(t),
			Title: report.SchemaFor(t).Title,
		})
	}
	renderPage(w, "index", indexData{Reports: entries})
}

func (s *Server) handleReportPage(w http.ResponseWriter, r *http.Request) {
	t := report.Type(chi.URLParam(r, "report"))
	session, err := s.hub.EnsureFresh(r.Context(), t)
	if err != nil {
		if session == nil {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		renderPage(w, "error", errorData{
			Title:   report.SchemaFor(t).Title,
			Message: "Could not load report data. Try again after the next refresh.",
		})
		return
	}

	st := stateFromQuery(r)
	renderPage(w, "report", reportData{
		Name:  string(t),
		Table: session.Apply(st),
		State: st,
		Note:  session.Note(),
	})
}

func (s *Server) handleReportJSON(w http.ResponseWriter, r *http.Request) {
	t := report.Type(chi.URLParam(r, "report"))
	session, err := s.hub.EnsureFresh(r.Context(), t)
	if err != nil {
		if session == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown report"})
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "report data unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, session.Apply(stateFromQuery(r)))
}

func (s *Server) handleChartJSON(w http.ResponseWriter, r *http.Request) {
	t := report.Type(chi.URLParam(r, "report"))
	session, err := s.hub.EnsureFresh(r.Context(), t)
	if err != nil {
		if session == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown report"})
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "report data unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, session.Chart(stateFromQuery(r)))
}

// handleCompare serves the player-comparison widget. A name that misses
// the row set yields an empty comparison, not an error.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	t := report.Type(q.Get("report"))
	if t == "" {
		t = report.VORP
	}
	session, err := s.hub.EnsureFresh(r.Context(), t)
	if err != nil {
		if session == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown report"})
			return
		}
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "report data unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, session.Compare(q.Get("a"), q.Get("b")))
}

func (s *Server) handleConsensus(w http.ResponseWriter, r *http.Request) {
	statements, err := s.hub.Consensus(r.Context())
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "report data unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, statements)
}
