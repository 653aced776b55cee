package tasks

import (
	"encoding/json"
	"time"

	"fitgrid/models"

	"github.com/hibiken/asynq"
)

const TypeScheduleReset = "schedule:reset"

// NewScheduleResetTask builds an asynq task that re-applies a schedule's
// template at fireAt. Staff use this to roll schedules over off-peak.
func NewScheduleResetTask(payload models.ResetTaskPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeScheduleReset, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
