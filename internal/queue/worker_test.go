package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/reservapp/reservapp/internal/models"
	"github.com/reservapp/reservapp/internal/repository"
	"github.com/reservapp/reservapp/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentEmail struct {
	to      string
	subject string
}

type fakeEmailSender struct {
	sent []sentEmail
	err  error
}

func (f *fakeEmailSender) Send(to, subject, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{to: to, subject: subject})
	return nil
}

type fakeBillingRepo struct {
	repository.SubscriptionRepository
	due          []*transfer.BillingRow
	expired      []*transfer.BillingRow
	statusWrites map[int64]string
}

func (r *fakeBillingRepo) ListDueForReminder(_ context.Context, _ time.Time) ([]*transfer.BillingRow, error) {
	return r.due, nil
}

func (r *fakeBillingRepo) ListGraceExpired(_ context.Context, _ time.Time) ([]*transfer.BillingRow, error) {
	return r.expired, nil
}

func (r *fakeBillingRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	if r.statusWrites == nil {
		r.statusWrites = make(map[int64]string)
	}
	r.statusWrites[id] = status
	return nil
}

func TestHandleSendEmailTask(t *testing.T) {
	sender := &fakeEmailSender{}
	q := NewQueue(&fakeBillingRepo{}, sender)

	payload, err := json.Marshal(EmailPayload{To: "ana@example.com", Subject: "Hola", Body: "Cuerpo"})
	require.NoError(t, err)

	err = q.HandleSendEmailTask(context.Background(), asynq.NewTask(TaskTypeSendEmail, payload))
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ana@example.com", sender.sent[0].to)
}

func TestHandleSendEmailTaskFailureIsRetriable(t *testing.T) {
	sender := &fakeEmailSender{err: errors.New("smtp down")}
	q := NewQueue(&fakeBillingRepo{}, sender)

	payload, _ := json.Marshal(EmailPayload{To: "ana@example.com"})
	err := q.HandleSendEmailTask(context.Background(), asynq.NewTask(TaskTypeSendEmail, payload))
	assert.Error(t, err, "failed sends must be returned so the queue retries")
}

func TestHandlePaymentRemindersTask(t *testing.T) {
	sender := &fakeEmailSender{}
	repo := &fakeBillingRepo{due: []*transfer.BillingRow{
		{SubscriptionID: 1, UserEmail: "ana@example.com", UserName: "Ana", PlanName: "Mensual", NextBillingDate: time.Now().Add(24 * time.Hour)},
		{SubscriptionID: 2, UserEmail: "bruno@example.com", UserName: "Bruno", PlanName: "Anual", NextBillingDate: time.Now().Add(48 * time.Hour)},
	}}
	q := NewQueue(repo, sender)

	err := q.HandlePaymentRemindersTask(context.Background(), asynq.NewTask(TaskTypePaymentReminders, nil))
	require.NoError(t, err)

	require.Len(t, sender.sent, 2)
	assert.Equal(t, "ana@example.com", sender.sent[0].to)
	assert.Equal(t, "bruno@example.com", sender.sent[1].to)
}

func TestHandleGraceSweepTask(t *testing.T) {
	sender := &fakeEmailSender{}
	repo := &fakeBillingRepo{expired: []*transfer.BillingRow{
		{SubscriptionID: 7, UserEmail: "ana@example.com", UserName: "Ana", PlanName: "Mensual", GracePeriodEnd: time.Now().Add(-time.Hour)},
	}}
	q := NewQueue(repo, sender)

	err := q.HandleGraceSweepTask(context.Background(), asynq.NewTask(TaskTypeGraceSweep, nil))
	require.NoError(t, err)

	assert.Equal(t, models.SubscriptionStatusSuspended, repo.statusWrites[7])
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ana@example.com", sender.sent[0].to)
}

func TestHandleGraceSweepTaskNothingExpired(t *testing.T) {
	sender := &fakeEmailSender{}
	repo := &fakeBillingRepo{}
	q := NewQueue(repo, sender)

	err := q.HandleGraceSweepTask(context.Background(), asynq.NewTask(TaskTypeGraceSweep, nil))
	require.NoError(t, err)

	assert.Empty(t, repo.statusWrites)
	assert.Empty(t, sender.sent)
}

func TestEmailFailureDoesNotAbortSweep(t *testing.T) {
	sender := &fakeEmailSender{err: errors.New("smtp down")}
	repo := &fakeBillingRepo{expired: []*transfer.BillingRow{
		{SubscriptionID: 7, UserEmail: "ana@example.com", UserName: "Ana", PlanName: "Mensual"},
	}}
	q := NewQueue(repo, sender)

	err := q.HandleGraceSweepTask(context.Background(), asynq.NewTask(TaskTypeGraceSweep, nil))
	require.NoError(t, err)

	assert.Equal(t, models.SubscriptionStatusSuspended, repo.statusWrites[7], "suspension must land even when the notice fails")
}
