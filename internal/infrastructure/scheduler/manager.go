// Package scheduler runs periodic maintenance jobs using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	raffleUsecases "github.com/modorifa/rifas/internal/application/raffle/usecases"
	"github.com/modorifa/rifas/internal/shared/biztime"
	"github.com/modorifa/rifas/internal/shared/logger"
)

const defaultConsistencyInterval = 15 * time.Minute

// SchedulerManager owns the process wide gocron scheduler.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterConsistencyJob compares every raffle's cached sold counter with
// the live ticket count. The job only reports; repairs go through
// `rifas reconcile --repair` or the admin endpoint.
func (m *SchedulerManager) RegisterConsistencyJob(checker raffleUsecases.CheckConsistencyExecutor, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultConsistencyInterval
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			m.checkConsistency(ctx, checker)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("raffle", "consistency"),
		gocron.WithName("raffle-consistency-check"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered consistency job", "interval", interval.String())
	return nil
}

func (m *SchedulerManager) checkConsistency(ctx context.Context, checker raffleUsecases.CheckConsistencyExecutor) {
	startTime := biztime.NowUTC()

	result, err := checker.Execute(ctx, raffleUsecases.CheckConsistencyCommand{})
	if err != nil {
		m.logger.Errorw("consistency check failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	for _, d := range result.Drifts {
		m.logger.Warnw("raffle sold counter drift",
			"raffle_id", d.RaffleID,
			"cached", d.Cached,
			"live", d.Live,
		)
	}
	m.logger.Debugw("consistency check completed",
		"checked", result.Checked,
		"drifts", len(result.Drifts),
		"duration", time.Since(startTime),
	)
}

func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to finish.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")
	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
