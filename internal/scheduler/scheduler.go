// Package scheduler wires the two batch jobs to cron: the valuation
// import runs first, the performance calculation after it, both daily.
// Ordering is a scheduling contract, not an in-process dependency; the
// calculator degrades gracefully when fresh valuations are missing.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/semaphore"

	"github.com/gcoelho/carteira-manager-backend/internal/config"
	"github.com/gcoelho/carteira-manager-backend/internal/model"
	"github.com/gcoelho/carteira-manager-backend/internal/service"
)

// ErrJobAlreadyRunning is returned by the manual triggers when the same
// job is still running from a previous trigger or cron fire.
var ErrJobAlreadyRunning = errors.New("job is already running")

// Scheduler owns the cron entries and the per-job overlap guards. Each
// job holds a weight-1 semaphore while running; a fire that cannot
// acquire it is skipped. Row-level upserts make overlap safe regardless,
// the guard just avoids wasted downloads.
type Scheduler struct {
	cron        *cron.Cron
	importer    *service.ImporterService
	performance *service.PerformanceService
	importCfg   config.ImportConfig
	schedCfg    config.SchedulerConfig
	logger      service.Logger

	importGuard *semaphore.Weighted
	perfGuard   *semaphore.Weighted
}

// New creates a Scheduler for the two pipeline jobs.
func New(
	importer *service.ImporterService,
	performance *service.PerformanceService,
	importCfg config.ImportConfig,
	schedCfg config.SchedulerConfig,
	logger service.Logger,
) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		importer:    importer,
		performance: performance,
		importCfg:   importCfg,
		schedCfg:    schedCfg,
		logger:      logger,
		importGuard: semaphore.NewWeighted(1),
		perfGuard:   semaphore.NewWeighted(1),
	}
}

// Start registers the cron entries and starts the scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedCfg.ImportSpec, s.runImport); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.schedCfg.PerformanceSpec, s.runPerformance); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Printf("scheduler: import at %q, performance at %q",
		s.schedCfg.ImportSpec, s.schedCfg.PerformanceSpec)

	return nil
}

// Stop stops the cron scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// TriggerImport runs the valuation import immediately, sharing the cron
// job's overlap guard. Returns ErrJobAlreadyRunning when an import is in
// flight.
func (s *Scheduler) TriggerImport(ctx context.Context) (model.ImportSummary, error) {
	if !s.importGuard.TryAcquire(1) {
		return model.ImportSummary{}, ErrJobAlreadyRunning
	}
	defer s.importGuard.Release(1)

	return s.importer.Run(ctx, time.Time{}, s.importCfg.MonthsBack)
}

// TriggerPerformance runs the performance calculation immediately,
// sharing the cron job's overlap guard.
func (s *Scheduler) TriggerPerformance(ctx context.Context) (model.CalculationSummary, error) {
	if !s.perfGuard.TryAcquire(1) {
		return model.CalculationSummary{}, ErrJobAlreadyRunning
	}
	defer s.perfGuard.Release(1)

	return s.performance.Run(ctx, time.Time{})
}

func (s *Scheduler) runImport() {
	summary, err := s.TriggerImport(context.Background())
	if err != nil {
		s.logger.Printf("scheduler: import failed: %v", err)
		return
	}
	s.logger.Printf("scheduler: import finished with status %s", summary.Status)
}

func (s *Scheduler) runPerformance() {
	summary, err := s.TriggerPerformance(context.Background())
	if err != nil {
		s.logger.Printf("scheduler: performance calculation failed: %v", err)
		return
	}
	s.logger.Printf("scheduler: performance calculation wrote %d records", summary.RecordsWritten)
}
