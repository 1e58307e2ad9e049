package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/reservapp/reservapp/internal/models"
)

type PlanRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Plan, bool, error)
	List(ctx context.Context, activeOnly bool) ([]*models.Plan, error)
	Create(ctx context.Context, plan *models.Plan) (int64, error)
	Update(ctx context.Context, plan *models.Plan) error
	Remove(ctx context.Context, id int64) error
}

type planRepository struct {
	db *sql.DB
}

func NewPlanRepository(db *sql.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) GetByID(ctx context.Context, id int64) (*models.Plan, bool, error) {
	var plan models.Plan
	query := "SELECT id, name, description, price_cents, currency, billing_interval, features, late_penalty_rate, active FROM plans WHERE id = $1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&plan.ID, &plan.Name, &plan.Description, &plan.PriceCents, &plan.Currency, &plan.BillingInterval, pq.Array(&plan.Features), &plan.LatePenaltyRate, &plan.Active)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &plan, true, nil
}

func (r *planRepository) List(ctx context.Context, activeOnly bool) ([]*models.Plan, error) {
	query := "SELECT id, name, description, price_cents, currency, billing_interval, features, late_penalty_rate, active FROM plans ORDER BY price_cents"
	if activeOnly {
		query = "SELECT id, name, description, price_cents, currency, billing_interval, features, late_penalty_rate, active FROM plans WHERE active = true ORDER BY price_cents"
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var plans []*models.Plan
	for rows.Next() {
		var plan models.Plan
		if err := rows.Scan(&plan.ID, &plan.Name, &plan.Description, &plan.PriceCents, &plan.Currency, &plan.BillingInterval, pq.Array(&plan.Features), &plan.LatePenaltyRate, &plan.Active); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		plans = append(plans, &plan)
	}
	return plans, rows.Err()
}

func (r *planRepository) Create(ctx context.Context, plan *models.Plan) (int64, error) {
	query := "INSERT INTO plans (name, description, price_cents, currency, billing_interval, features, late_penalty_rate, active) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id"
	var id int64
	err := r.db.QueryRowContext(ctx, query, plan.Name, plan.Description, plan.PriceCents, plan.Currency, plan.BillingInterval, pq.Array(plan.Features), plan.LatePenaltyRate, plan.Active).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *planRepository) Update(ctx context.Context, plan *models.Plan) error {
	query := `
		UPDATE plans
		SET name = $1,
			description = $2,
			price_cents = $3,
			currency = $4,
			billing_interval = $5,
			features = $6,
			late_penalty_rate = $7,
			active = $8,
			updated_at = $9
		WHERE id = $10
	`
	_, err := r.db.ExecContext(ctx, query, plan.Name, plan.Description, plan.PriceCents, plan.Currency, plan.BillingInterval, pq.Array(plan.Features), plan.LatePenaltyRate, plan.Active, time.Now(), plan.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *planRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM plans WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
