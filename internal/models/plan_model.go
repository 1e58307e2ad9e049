package models

import "time"

const (
	BillingIntervalMonthly = "monthly"
	BillingIntervalYearly  = "yearly"
)

type Plan struct {
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description"`
	PriceCents      int64     `db:"price_cents" json:"price_cents"`
	Currency        string    `db:"currency" json:"currency"`
	BillingInterval string    `db:"billing_interval" json:"billing_interval"`
	Features        []string  `db:"features" json:"features"`
	LatePenaltyRate float64   `db:"late_penalty_rate" json:"late_penalty_rate"`
	Active          bool      `db:"active" json:"active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
