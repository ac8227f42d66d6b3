package main

import (
	"context"
	"time"

	"tailorshop/internal/jobs"
	"tailorshop/internal/service"
	"tailorshop/pkg/logger"
)

func (app *Application) initJobs() error {
	interval := app.config.Roster.RetryInterval()
	if interval <= 0 {
		logger.InfoCtx(app.ctx, "Roster retry interval disabled, skipping background task registration")
		return nil
	}

	manager := jobs.NewManager(app.ctx)
	manager.Register(newRosterRetryJob(interval, app.rosterService))

	app.jobsManager = manager
	return nil
}

// rosterLoader is the part of the roster service the retry job needs
type rosterLoader interface {
	Status() (service.LoadStatus, error)
	Load(ctx context.Context) error
}

// rosterRetryJob reloads the roster while the last load failed.
// A healthy roster is left alone so local edits survive.
type rosterRetryJob struct {
	interval time.Duration
	roster   rosterLoader
}

func newRosterRetryJob(interval time.Duration, roster rosterLoader) jobs.Job {
	return &rosterRetryJob{interval: interval, roster: roster}
}

func (j *rosterRetryJob) Name() string {
	return "roster-retry"
}

func (j *rosterRetryJob) Interval() time.Duration {
	return j.interval
}

func (j *rosterRetryJob) Run(ctx context.Context) error {
	status, lastErr := j.roster.Status()
	if status != service.LoadStatusFailed {
		return nil
	}
	logger.InfoCtx(ctx, "retrying roster load after failure: %v", lastErr)
	return j.roster.Load(ctx)
}
