package queue

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/hibiken/asynq"
)

// maxRetry bounds delivery attempts; asynq backs off exponentially between them.
const maxRetry = 3

func EnqueueEmail(asynqClient *asynq.Client, payload EmailPayload) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeSendEmail, taskPayload)

	_, err = asynqClient.Enqueue(task, asynq.MaxRetry(maxRetry))
	if err != nil {
		return err
	}

	log.Printf("Email task scheduled: %s (%s)", payload.To, payload.Subject)
	return nil
}

// EnqueueDailyTask schedules one of the daily billing sweeps. The task ID is
// derived from the day, so re-registering the same sweep is a no-op instead
// of a duplicate.
func EnqueueDailyTask(asynqClient *asynq.Client, taskType, taskID string) error {
	task := asynq.NewTask(taskType, nil)

	_, err := asynqClient.Enqueue(task, asynq.TaskID(taskID), asynq.MaxRetry(maxRetry))
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			log.Printf("Task %s already scheduled, skipping", taskID)
			return nil
		}
		return err
	}

	log.Printf("Task scheduled: %s", taskID)
	return nil
}
