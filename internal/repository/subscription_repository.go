package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/reservapp/reservapp/internal/models"
	"github.com/reservapp/reservapp/internal/transfer"
)

type SubscriptionRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Subscription, bool, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Subscription, bool, error)
	GetByGatewayID(ctx context.Context, gatewayID string) (*models.Subscription, bool, error)
	Create(ctx context.Context, subscription *models.Subscription) (int64, error)
	Update(ctx context.Context, subscription *models.Subscription) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountActiveByPlan(ctx context.Context, planID int64) (int64, error)
	ListActivePricing(ctx context.Context) ([]*transfer.PlanPricing, error)
	ListDueForReminder(ctx context.Context, until time.Time) ([]*transfer.BillingRow, error)
	ListGraceExpired(ctx context.Context, now time.Time) ([]*transfer.BillingRow, error)
	ListForExport(ctx context.Context, status string) ([]*transfer.SubscriptionExportRow, error)
}

type subscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

const subscriptionColumns = "id, user_id, plan_id, gateway_id, status, current_period_start, current_period_end, next_billing_date, grace_period_end, cancelled_at"

func (r *subscriptionRepository) scanOne(row *sql.Row) (*models.Subscription, bool, error) {
	var s models.Subscription
	err := row.Scan(&s.ID, &s.UserID, &s.PlanID, &s.GatewayID, &s.Status, &s.CurrentPeriodStart, &s.CurrentPeriodEnd, &s.NextBillingDate, &s.GracePeriodEnd, &s.CancelledAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &s, true, nil
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id int64) (*models.Subscription, bool, error) {
	query := "SELECT " + subscriptionColumns + " FROM subscriptions WHERE id = $1"
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *subscriptionRepository) GetByUserID(ctx context.Context, userID int64) (*models.Subscription, bool, error) {
	query := "SELECT " + subscriptionColumns + " FROM subscriptions WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1"
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

func (r *subscriptionRepository) GetByGatewayID(ctx context.Context, gatewayID string) (*models.Subscription, bool, error) {
	query := "SELECT " + subscriptionColumns + " FROM subscriptions WHERE gateway_id = $1"
	return r.scanOne(r.db.QueryRowContext(ctx, query, gatewayID))
}

func (r *subscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) (int64, error) {
	query := `
		INSERT INTO subscriptions (user_id, plan_id, gateway_id, status, current_period_start, current_period_end, next_billing_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		subscription.UserID, subscription.PlanID, subscription.GatewayID, subscription.Status,
		subscription.CurrentPeriodStart, subscription.CurrentPeriodEnd, subscription.NextBillingDate).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, subscription *models.Subscription) error {
	query := `
		UPDATE subscriptions
		SET status = $1,
			current_period_start = $2,
			current_period_end = $3,
			next_billing_date = $4,
			grace_period_end = $5,
			cancelled_at = $6,
			updated_at = $7
		WHERE id = $8
	`
	_, err := r.db.ExecContext(ctx, query,
		subscription.Status, subscription.CurrentPeriodStart, subscription.CurrentPeriodEnd,
		subscription.NextBillingDate, subscription.GracePeriodEnd, subscription.CancelledAt,
		time.Now(), subscription.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// UpdateStatus overwrites the status column directly. There is no transition
// guard: reconciliation and admin overrides may move any status to any other.
func (r *subscriptionRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := "UPDATE subscriptions SET status = $1, updated_at = $2 WHERE id = $3"
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *subscriptionRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM subscriptions WHERE status = $1", status).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

func (r *subscriptionRepository) CountActiveByPlan(ctx context.Context, planID int64) (int64, error) {
	var count int64
	query := "SELECT COUNT(*) FROM subscriptions WHERE plan_id = $1 AND status = $2"
	err := r.db.QueryRowContext(ctx, query, planID, models.SubscriptionStatusActive).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

func (r *subscriptionRepository) ListActivePricing(ctx context.Context) ([]*transfer.PlanPricing, error) {
	query := `
		SELECT p.price_cents, p.billing_interval
		FROM subscriptions s
		JOIN plans p ON p.id = s.plan_id
		WHERE s.status = $1
	`
	rows, err := r.db.QueryContext(ctx, query, models.SubscriptionStatusActive)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var pricing []*transfer.PlanPricing
	for rows.Next() {
		var p transfer.PlanPricing
		if err := rows.Scan(&p.PriceCents, &p.BillingInterval); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		pricing = append(pricing, &p)
	}
	return pricing, rows.Err()
}

func (r *subscriptionRepository) ListDueForReminder(ctx context.Context, until time.Time) ([]*transfer.BillingRow, error) {
	query := `
		SELECT s.id, u.email, u.name, p.name, s.next_billing_date
		FROM subscriptions s
		JOIN users u ON u.id = s.user_id
		JOIN plans p ON p.id = s.plan_id
		WHERE s.status = $1 AND s.next_billing_date <= $2
	`
	rows, err := r.db.QueryContext(ctx, query, models.SubscriptionStatusActive, until)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var due []*transfer.BillingRow
	for rows.Next() {
		var row transfer.BillingRow
		if err := rows.Scan(&row.SubscriptionID, &row.UserEmail, &row.UserName, &row.PlanName, &row.NextBillingDate); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		due = append(due, &row)
	}
	return due, rows.Err()
}

func (r *subscriptionRepository) ListGraceExpired(ctx context.Context, now time.Time) ([]*transfer.BillingRow, error) {
	query := `
		SELECT s.id, u.email, u.name, p.name, s.grace_period_end
		FROM subscriptions s
		JOIN users u ON u.id = s.user_id
		JOIN plans p ON p.id = s.plan_id
		WHERE s.status = $1 AND s.grace_period_end IS NOT NULL AND s.grace_period_end <= $2
	`
	rows, err := r.db.QueryContext(ctx, query, models.SubscriptionStatusPastDue, now)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var expired []*transfer.BillingRow
	for rows.Next() {
		var row transfer.BillingRow
		if err := rows.Scan(&row.SubscriptionID, &row.UserEmail, &row.UserName, &row.PlanName, &row.GracePeriodEnd); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		expired = append(expired, &row)
	}
	return expired, rows.Err()
}

func (r *subscriptionRepository) ListForExport(ctx context.Context, status string) ([]*transfer.SubscriptionExportRow, error) {
	query := `
		SELECT s.id, u.email, p.name, s.status, s.current_period_end, s.next_billing_date
		FROM subscriptions s
		JOIN users u ON u.id = s.user_id
		JOIN plans p ON p.id = s.plan_id
	`
	args := []any{}
	if status != "" {
		query += " WHERE s.status = $1"
		args = append(args, status)
	}
	query += " ORDER BY s.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var result []*transfer.SubscriptionExportRow
	for rows.Next() {
		var row transfer.SubscriptionExportRow
		if err := rows.Scan(&row.ID, &row.UserEmail, &row.PlanName, &row.Status, &row.CurrentPeriodEnd, &row.NextBillingDate); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		result = append(result, &row)
	}
	return result, rows.Err()
}
