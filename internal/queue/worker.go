package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/reservapp/reservapp/internal/models"
)

// reminderWindow is how far ahead of the next billing date payment
// reminders go out.
const reminderWindow = 72 * time.Hour

func (j *Queue) HandleSendEmailTask(ctx context.Context, task *asynq.Task) error {
	var payload EmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	if err := j.es.Send(payload.To, payload.Subject, payload.Body); err != nil {
		log.Printf("Error sending email to %s: %v", payload.To, err)
		return err
	}

	return nil
}

// HandlePaymentRemindersTask emails every active subscriber whose next
// billing date falls inside the reminder window. Per-recipient failures are
// logged and do not fail the task.
func (j *Queue) HandlePaymentRemindersTask(ctx context.Context, task *asynq.Task) error {
	due, err := j.sr.ListDueForReminder(ctx, time.Now().Add(reminderWindow))
	if err != nil {
		return err
	}

	for _, row := range due {
		subject := "Recordatorio de pago - Reservapp"
		body := fmt.Sprintf(
			"Hola %s,<br><br>Tu suscripción al plan %s se renovará el %s. Asegúrate de tener fondos disponibles.<br><br>El equipo de Reservapp",
			row.UserName, row.PlanName, row.NextBillingDate.Format("02/01/2006"),
		)
		if err := j.es.Send(row.UserEmail, subject, body); err != nil {
			log.Printf("Error sending payment reminder to %s: %v", row.UserEmail, err)
		}
	}

	return nil
}

// HandleGraceSweepTask suspends past-due subscriptions whose grace period has
// elapsed and notifies their owners.
func (j *Queue) HandleGraceSweepTask(ctx context.Context, task *asynq.Task) error {
	expired, err := j.sr.ListGraceExpired(ctx, time.Now())
	if err != nil {
		return err
	}

	for _, row := range expired {
		if err := j.sr.UpdateStatus(ctx, row.SubscriptionID, models.SubscriptionStatusSuspended); err != nil {
			log.Printf("Error suspending subscription %d: %v", row.SubscriptionID, err)
			continue
		}

		subject := "Suscripción suspendida - Reservapp"
		body := fmt.Sprintf(
			"Hola %s,<br><br>Tu suscripción al plan %s fue suspendida por falta de pago. Regulariza tu pago para volver a reservar.<br><br>El equipo de Reservapp",
			row.UserName, row.PlanName,
		)
		if err := j.es.Send(row.UserEmail, subject, body); err != nil {
			log.Printf("Error sending suspension notice to %s: %v", row.UserEmail, err)
		}
	}

	return nil
}
