package scheduler

import (
	"context"
	"encoding/json"
)

// TaskHandler defines a function that triggers a task
// data is the optional JSON-encoded data passed by the job
type TaskHandler func(ctx context.Context, data json.RawMessage) error

// Scheduler interface for task scheduling
type Scheduler interface {
	RegisterHandler(taskType string, handler TaskHandler)
	ScheduleCronJob(cronExpr string, taskType string) error
}
