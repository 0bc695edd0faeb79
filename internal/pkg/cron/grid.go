package cron

import (
	"context"
	"time"
)

// CacheSweeper drops expired memoized attendance grids.
type CacheSweeper interface {
	SweepCache(ctx context.Context) error
}

type GridJobs struct {
	sweeper       CacheSweeper
	sweepInterval time.Duration
}

func NewGridJobs(sweeper CacheSweeper, sweepInterval time.Duration) *GridJobs {
	return &GridJobs{sweeper: sweeper, sweepInterval: sweepInterval}
}

func (j *GridJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("sweep_attendance_grid_cache", j.sweepInterval, j.sweeper.SweepCache)
}
