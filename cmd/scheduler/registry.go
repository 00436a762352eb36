package main

import (
	"log/slog"

	"arena-stats/internal/scheduler"
)

// SchedulerFunc represents a function that sets up a scheduled job.
// Accepts a Dependencies struct containing all available dependencies and a
// Scheduler interface. Returns a cleanup function and an error if scheduling
// fails.
type SchedulerFunc func(scheduler.Dependencies, scheduler.Scheduler) (func(), error)

// JobRegistry manages all scheduled jobs
type JobRegistry struct {
	log              *slog.Logger
	cleanups         []func()
	schedulers       []SchedulerFunc
	schedulerHandler *TaskScheduler
}

// NewJobRegistry creates a new job registry
func NewJobRegistry(log *slog.Logger) *JobRegistry {
	return &JobRegistry{
		log:        log,
		cleanups:   []func(){},
		schedulers: []SchedulerFunc{},
	}
}

// Register adds a scheduler function to the registry
func (r *JobRegistry) Register(schedulerFunc SchedulerFunc) {
	r.schedulers = append(r.schedulers, schedulerFunc)
}

// Start sets up all registered schedulers and begins running jobs
func (r *JobRegistry) Start(deps scheduler.Dependencies) error {
	var err error
	r.schedulerHandler, err = NewTaskScheduler(deps.JSContext, deps.Redis, deps.NATS, r.log)
	if err != nil {
		return err
	}

	for _, schedulerFunc := range r.schedulers {
		cleanup, err := schedulerFunc(deps, r.schedulerHandler)
		if err != nil {
			r.log.Error("failed to register scheduler", "error", err)
			// Continue with other schedulers even if one fails
			continue
		}
		r.cleanups = append(r.cleanups, cleanup)
	}

	if err := r.schedulerHandler.Start(); err != nil {
		return err
	}

	r.log.Info("job registry started", "schedulers", len(r.cleanups))
	return nil
}

// Stop stops all schedulers and cleans up
func (r *JobRegistry) Stop() {
	for _, cleanup := range r.cleanups {
		cleanup()
	}
	if r.schedulerHandler != nil {
		r.schedulerHandler.Stop()
	}
	r.log.Info("job registry stopped")
}
