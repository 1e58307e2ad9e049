package transfer

import "time"

type CheckoutRequest struct {
	PlanID int64 `json:"plan_id"`
}

type CheckoutResponse struct {
	SubscriptionID int64  `json:"subscription_id"`
	InitPoint      string `json:"init_point"`
}

// ReconcileResult reports what a gateway sync did to a subscription.
type ReconcileResult struct {
	SubscriptionID int64  `json:"subscription_id"`
	OldStatus      string `json:"old_status"`
	NewStatus      string `json:"new_status"`
	Changed        bool   `json:"changed"`
}

type StatusOverrideRequest struct {
	SubscriptionID int64  `json:"subscription_id"`
	Status         string `json:"status"`
}

type ReconcileRequest struct {
	SubscriptionID int64 `json:"subscription_id"`
}

// BillingRow is a subscription joined with its owner and plan, used by the
// reminder and grace-period jobs to address emails.
type BillingRow struct {
	SubscriptionID  int64
	UserEmail       string
	UserName        string
	PlanName        string
	NextBillingDate time.Time
	GracePeriodEnd  time.Time
}

// PlanPricing is the slice of an active subscription needed for MRR.
type PlanPricing struct {
	PriceCents      int64
	BillingInterval string
}

// SubscriptionExportRow joins a subscription with its owner and plan for CSV export.
type SubscriptionExportRow struct {
	ID               int64
	UserEmail        string
	PlanName         string
	Status           string
	CurrentPeriodEnd time.Time
	NextBillingDate  time.Time
}

type DashboardMetrics struct {
	Users                 int64 `json:"users"`
	ActiveSubscriptions   int64 `json:"active_subscriptions"`
	PastDueSubscriptions  int64 `json:"past_due_subscriptions"`
	MRRCents              int64 `json:"mrr_cents"`
	ConfirmedReservations int64 `json:"confirmed_reservations"`
	CancelledReservations int64 `json:"cancelled_reservations"`
}
