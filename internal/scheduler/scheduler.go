// Package scheduler runs the periodic maintenance jobs: completing
// reservations whose interval has elapsed and purging expired refresh
// tokens.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/IlTetta/CoWorkSpace-sub001/internal/config"
	"github.com/IlTetta/CoWorkSpace-sub001/internal/logger"
)

// Completer is implemented by service.ReservationService.
type Completer interface {
	CompleteElapsed(ctx context.Context, limit int) (int, error)
}

// TokenPurger is implemented by repository.TokenRepo.
type TokenPurger interface {
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// jobTimeout bounds a single run of any job.
const jobTimeout = 2 * time.Minute

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron      *cron.Cron
	cfg       config.SchedulerConfig
	completer Completer
	tokens    TokenPurger
}

// New creates a scheduler firing on the wall clock of loc.  A run that is
// still going when its next tick arrives makes that tick a no-op.
func New(cfg config.SchedulerConfig, loc *time.Location, completer Completer, tokens TokenPurger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithSeconds(),
		cron.WithChain(cron.Recover(cron.PrintfLogger(logger.ErrorLogger)), cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	s := &Scheduler{cron: c, cfg: cfg, completer: completer, tokens: tokens}
	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) registerJobs() error {
	if s.completer != nil {
		if _, err := s.cron.AddFunc(s.cfg.Spec, s.CompleteReservations); err != nil {
			return err
		}
	}
	if s.tokens != nil && s.cfg.TokenPurgeSpec != "" {
		if _, err := s.cron.AddFunc(s.cfg.TokenPurgeSpec, s.PurgeTokens); err != nil {
			return err
		}
	}
	logger.InfoLogger.WithField("jobs", len(s.cron.Entries())).Info("cron jobs registered")
	return nil
}

// CompleteReservations moves elapsed confirmed reservations to completed.
func (s *Scheduler) CompleteReservations() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.completer.CompleteElapsed(ctx, s.cfg.BatchMax)
	if err != nil {
		logger.ErrorLogger.WithError(err).WithField("completed", n).Error("complete reservations job failed")
		return
	}
	if n > 0 {
		logger.InfoLogger.WithField("completed", n).Info("reservations completed")
	}
}

// PurgeTokens deletes refresh tokens that expired or were revoked more
// than a day ago.
func (s *Scheduler) PurgeTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.tokens.DeleteExpired(ctx, time.Now().UTC().Add(-24*time.Hour))
	if err != nil {
		logger.ErrorLogger.WithError(err).Error("purge tokens job failed")
		return
	}
	logger.DebugLogger.WithFields(logrus.Fields{"deleted": n}).Debug("refresh tokens purged")
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.InfoLogger.Info("cron scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish or ctx
// to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		logger.InfoLogger.Info("cron scheduler stopped")
	case <-ctx.Done():
		logger.ErrorLogger.Warn("cron scheduler stop timed out")
	}
}
