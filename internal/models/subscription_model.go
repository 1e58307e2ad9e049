package models

import (
	"database/sql"
	"time"
)

// Local subscription statuses. Transitions are plain column updates; the
// last reconciliation against the payment gateway wins.
const (
	SubscriptionStatusPending   = "pending"
	SubscriptionStatusActive    = "active"
	SubscriptionStatusPastDue   = "past_due"
	SubscriptionStatusSuspended = "suspended"
	SubscriptionStatusCancelled = "cancelled"
)

type Subscription struct {
	ID                 int64        `db:"id" json:"id"`
	UserID             int64        `db:"user_id" json:"user_id"`
	PlanID             int64        `db:"plan_id" json:"plan_id"`
	GatewayID          string       `db:"gateway_id" json:"gateway_id"`
	Status             string       `db:"status" json:"status"`
	CurrentPeriodStart time.Time    `db:"current_period_start" json:"current_period_start"`
	CurrentPeriodEnd   time.Time    `db:"current_period_end" json:"current_period_end"`
	NextBillingDate    time.Time    `db:"next_billing_date" json:"next_billing_date"`
	GracePeriodEnd     sql.NullTime `db:"grace_period_end" json:"grace_period_end"`
	CancelledAt        sql.NullTime `db:"cancelled_at" json:"cancelled_at"`
	CreatedAt          time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time    `db:"updated_at" json:"updated_at"`
}
