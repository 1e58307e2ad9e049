package job

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/reservapp/reservapp/internal/queue"
)

// BillingJobs places the daily billing sweeps on the task queue. Cron fires
// the methods; the day-scoped task IDs keep repeated registrations from
// queueing duplicates.
type BillingJobs struct {
	client *asynq.Client
}

func NewBillingJobs(client *asynq.Client) *BillingJobs {
	return &BillingJobs{client: client}
}

func (b *BillingJobs) EnqueuePaymentReminders() {
	taskID := fmt.Sprintf("%s:%s", queue.TaskTypePaymentReminders, time.Now().Format("2006-01-02"))
	if err := queue.EnqueueDailyTask(b.client, queue.TaskTypePaymentReminders, taskID); err != nil {
		slog.Info(err.Error())
	}
}

func (b *BillingJobs) EnqueueGraceSweep() {
	taskID := fmt.Sprintf("%s:%s", queue.TaskTypeGraceSweep, time.Now().Format("2006-01-02"))
	if err := queue.EnqueueDailyTask(b.client, queue.TaskTypeGraceSweep, taskID); err != nil {
		slog.Info(err.Error())
	}
}
