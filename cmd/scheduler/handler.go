package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	natslib "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	redislib "github.com/redis/go-redis/v9"

	"arena-stats/internal/scheduler"
)

// TaskScheduler manages the static cron jobs that trigger background
// refreshes. Each job's handler publishes a JetStream message; the worker
// service does the actual work.
type TaskScheduler struct {
	scheduler   gocron.Scheduler
	jsContext   jetstream.JetStream
	redisClient *redislib.Client
	natsConn    *natslib.Conn
	log         *slog.Logger
	handlers    map[string]scheduler.TaskHandler
}

// NewTaskScheduler creates a new task scheduler for cron jobs
func NewTaskScheduler(jsContext jetstream.JetStream, redisClient *redislib.Client, natsConn *natslib.Conn, log *slog.Logger) (*TaskScheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &TaskScheduler{
		scheduler:   sched,
		jsContext:   jsContext,
		redisClient: redisClient,
		natsConn:    natsConn,
		log:         log,
		handlers:    make(map[string]scheduler.TaskHandler),
	}, nil
}

// RegisterHandler registers a task handler for a specific task type
func (s *TaskScheduler) RegisterHandler(taskType string, handler scheduler.TaskHandler) {
	s.handlers[taskType] = handler
}

// ScheduleCronJob schedules a recurring cron job for a task type
func (s *TaskScheduler) ScheduleCronJob(cronExpr string, taskType string) error {
	handler, exists := s.handlers[taskType]
	if !exists {
		return fmt.Errorf("no handler registered for task type: %s", taskType)
	}

	jobFunc := func() {
		ctx := context.Background()
		startTime := time.Now()
		jobID := fmt.Sprintf("cron-%s-%d", taskType, startTime.UnixNano())
		s.log.Info("cron job triggered", "job_id", jobID, "task_type", taskType, "cron_expr", cronExpr)

		if err := handler(ctx, nil); err != nil {
			s.log.Error("cron job handler failed", "job_id", jobID, "task_type", taskType, "error", err, "duration_ms", time.Since(startTime).Milliseconds())
		} else {
			s.log.Info("cron job handler completed", "job_id", jobID, "task_type", taskType, "duration_ms", time.Since(startTime).Milliseconds())
		}
	}

	_, err := s.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(jobFunc),
		gocron.WithTags("cron:"+taskType),
	)
	if err != nil {
		return err
	}

	s.log.Info("cron job scheduled", "task_type", taskType, "cron", cronExpr)
	return nil
}

// Start begins running scheduled jobs
func (s *TaskScheduler) Start() error {
	s.scheduler.Start()
	return nil
}

// Stop shuts down the scheduler, waiting for running jobs to finish
func (s *TaskScheduler) Stop() {
	if err := s.scheduler.Shutdown(); err != nil {
		s.log.Warn("scheduler shutdown error", "error", err)
	}
}
