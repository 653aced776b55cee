package cron

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"fitgrid/config"
	"fitgrid/models"
	"fitgrid/services/schedule"
	"fitgrid/services/tasks"

	"github.com/hibiken/asynq"
)

// InitResetWorker runs the async reset worker in background.
func InitResetWorker(schedSvc schedule.ScheduleService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeScheduleReset, handleResetTask(schedSvc))

	// Start async worker with retry logic
	go func() {
		log.Println("[ResetWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ResetWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ResetWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleResetTask(schedSvc schedule.ScheduleService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ResetTaskPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ResetWorker] Invalid payload: %v", err)
			return err
		}

		log.Printf("[ResetWorker] Applying scheduled reset for schedule %s", p.ScheduleID)

		if _, err := schedSvc.Reset(ctx, p.ScheduleID, ""); err != nil {
			// A deleted schedule is not worth retrying; contention is.
			if errors.Is(err, schedule.ErrScheduleNotFound) {
				log.Printf("[ResetWorker] Schedule %s no longer exists, dropping task", p.ScheduleID)
				return nil
			}
			log.Printf("[ResetWorker] Reset failed for schedule %s: %v", p.ScheduleID, err)
			return err
		}
		return nil
	}
}
