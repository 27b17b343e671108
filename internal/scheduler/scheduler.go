package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/WarenOdhiambo1/lead-magnet/internal/service"
)

// PredictionGenerator produces predictions for pending fixtures
type PredictionGenerator interface {
	GenerateUpcoming(ctx context.Context) (*service.GenerationReport, error)
}

// OpportunityFinder scans stored predictions against bookmaker prices
type OpportunityFinder interface {
	Scan(ctx context.Context) (*service.ScanReport, error)
}

// Scheduler manages the periodic prediction and scan jobs
type Scheduler struct {
	cron            *cron.Cron
	generator       PredictionGenerator
	finder          OpportunityFinder
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	jobTimeout      time.Duration
	gracefulTimeout time.Duration

	// jobs derive their context from ctx; Stop cancels it
	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler creates a new scheduler. Overlapping runs of the same job are
// skipped. A stopped scheduler cannot be started again.
func NewScheduler(generator PredictionGenerator, finder OpportunityFinder, logger *logrus.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(logger)
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		generator:       generator,
		finder:          finder,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		jobTimeout:      10 * time.Minute,
		gracefulTimeout: 30 * time.Second,
		ctx:             ctx,
		cancel:          cancel,
	}
}

// SchedulePredictions schedules prediction generation
func (s *Scheduler) SchedulePredictions(cronExpression string) error {
	return s.schedule(service.JobGeneratePredictions, cronExpression, s.runPredictions)
}

// ScheduleScan schedules the opportunity scan
func (s *Scheduler) ScheduleScan(cronExpression string) error {
	return s.schedule(service.JobScanOpportunities, cronExpression, s.runScan)
}

func (s *Scheduler) schedule(job, cronExpression string, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(cronExpression, fn)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{"job": job, "schedule": cronExpression}).Info("Scheduled job")

	return nil
}

func (s *Scheduler) runPredictions() {
	ctx, cancel := context.WithTimeout(s.ctx, s.jobTimeout)
	defer cancel()

	report, err := s.generator.GenerateUpcoming(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("job", service.JobGeneratePredictions).Error("Scheduled run failed")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"job":       service.JobGeneratePredictions,
		"run_id":    report.RunID,
		"generated": report.Generated,
		"failed":    report.Failed,
	}).Info("Scheduled run completed")
}

func (s *Scheduler) runScan() {
	ctx, cancel := context.WithTimeout(s.ctx, s.jobTimeout)
	defer cancel()

	report, err := s.finder.Scan(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("job", service.JobScanOpportunities).Error("Scheduled run failed")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"job":        service.JobScanOpportunities,
		"run_id":     report.RunID,
		"value_bets": report.ValueBets,
		"arbitrages": report.Arbitrages,
		"stored":     report.Stored,
	}).Info("Scheduled run completed")
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if s.ctx.Err() != nil {
		return fmt.Errorf("scheduler has been stopped")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop stops the scheduler and cancels running jobs, waiting up to the
// graceful timeout for them to return.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}
	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), s.gracefulTimeout)
	defer cancel()

	s.isRunning = false
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop timed out waiting for running jobs")
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() && (nextRun.IsZero() || entry.Next.Before(nextRun)) {
			nextRun = entry.Next
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		if entry := s.cron.Entry(jobID); entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}

// RemoveJob removes a scheduled job
func (s *Scheduler) RemoveJob(jobID cron.EntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot remove job while scheduler is running")
	}

	s.cron.Remove(jobID)
	for i, id := range s.jobIDs {
		if id == jobID {
			s.jobIDs = append(s.jobIDs[:i], s.jobIDs[i+1:]...)
			break
		}
	}
	s.logger.WithField("job_id", jobID).Info("Removed job")

	return nil
}
