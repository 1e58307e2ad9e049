package queue

import (
	"github.com/reservapp/reservapp/internal/repository"
	"github.com/reservapp/reservapp/internal/service"
)

type Queue struct {
	sr repository.SubscriptionRepository
	es service.EmailSender
}

func NewQueue(sr repository.SubscriptionRepository, es service.EmailSender) *Queue {
	return &Queue{
		sr: sr,
		es: es,
	}
}

const (
	TaskTypeSendEmail        = "email:send"
	TaskTypePaymentReminders = "billing:payment_reminders"
	TaskTypeGraceSweep       = "billing:grace_sweep"
)

type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
