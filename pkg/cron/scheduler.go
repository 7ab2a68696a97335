// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/paisebook/paisebook/internal/domain/currency"
)

// Scheduler pre-warms the exchange-rate cache on a daily schedule so
// imports rarely hit the network on their hot path.
type Scheduler struct {
	cron      *cron.Cron
	converter *currency.Service
	logger    *slog.Logger
}

// NewScheduler creates a new job scheduler.
func NewScheduler(converter *currency.Service, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:      c,
		converter: converter,
		logger:    logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	// Rate refresh: daily at 6:00 AM, well inside the 24h freshness window.
	_, err := s.cron.AddFunc("0 6 * * *", s.refreshRates)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.Int("jobs", len(s.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow triggers the rate refresh in the background (for admin use).
func (s *Scheduler) RunNow() {
	go s.refreshRates()
}

// RefreshNow runs the rate refresh synchronously, outside the schedule.
// One-shot runs call this instead of waiting for the cron entry.
func (s *Scheduler) RefreshNow() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	return s.converter.Refresh(ctx)
}

func (s *Scheduler) refreshRates() {
	s.logger.Info("refreshing exchange rates", slog.String("base", s.converter.BaseCurrency()))

	if err := s.RefreshNow(); err != nil {
		s.logger.Error("rate refresh failed", slog.Any("error", err))
		return
	}

	s.logger.Info("exchange rates refreshed")
}
