package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/gridironlabs/leaguedash/internal/bot"
	"github.com/gridironlabs/leaguedash/internal/pipeline"
	"github.com/gridironlabs/leaguedash/internal/report"
)

// Scheduler owns the fixed-interval artifact refresh and the weekly
// digest. sendMessage may be nil when the digest bot is not configured.
type Scheduler struct {
	s           gocron.Scheduler
	hub         *pipeline.Hub
	refresh     time.Duration
	sendMessage func(string) error
}

func NewScheduler(hub *pipeline.Hub, refresh time.Duration, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation("America/Chicago")
	if err != nil {
		slog.Error("Failed to load location", "error", err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		hub:         hub,
		refresh:     refresh,
		sendMessage: sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	// Auto-refresh: re-run the whole pipeline for every report.
	_, err := s.s.NewJob(
		gocron.DurationJob(s.refresh),
		gocron.NewTask(s.refreshReports),
	)
	if err != nil {
		return fmt.Errorf("failed to create refresh job: %w", err)
	}

	if s.sendMessage != nil {
		// Weekly digest - Tuesday 7:30, after Monday night wraps up.
		_, err = s.s.NewJob(
			gocron.WeeklyJob(1, gocron.NewWeekdays(time.Tuesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
			gocron.NewTask(s.sendDigest),
		)
		if err != nil {
			return fmt.Errorf("failed to create digest job: %w", err)
		}
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) refreshReports() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	s.hub.RefreshAll(ctx)
}

func (s *Scheduler) sendDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	standings, err := s.hub.EnsureFresh(ctx, report.Standings)
	if err != nil {
		slog.Error("Failed to get standings for digest", "error", err)
		return
	}
	statements, err := s.hub.Consensus(ctx)
	if err != nil {
		slog.Error("Failed to build consensus for digest", "error", err)
		return
	}

	if err := s.sendMessage(bot.FormatDigest(standings.Rows(), statements)); err != nil {
		slog.Error("Failed to send digest", "error", err)
	}
}
