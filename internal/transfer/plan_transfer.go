package transfer

type PlanCreation struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	PriceCents      int64    `json:"price_cents"`
	Currency        string   `json:"currency"`
	BillingInterval string   `json:"billing_interval"`
	Features        []string `json:"features"`
	LatePenaltyRate float64  `json:"late_penalty_rate"`
	Active          bool     `json:"active"`
}

type PlanUpdate struct {
	ID int64 `json:"id"`
	PlanCreation
}

type PlanRemove struct {
	ID int64 `json:"id"`
}
