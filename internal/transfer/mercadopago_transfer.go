package transfer

import "time"

// Gateway preapproval statuses as MercadoPago reports them.
const (
	GatewayStatusPending    = "pending"
	GatewayStatusAuthorized = "authorized"
	GatewayStatusPaused     = "paused"
	GatewayStatusCancelled  = "cancelled"
)

type Preapproval struct {
	ID              string    `json:"id"`
	Status          string    `json:"status"`
	InitPoint       string    `json:"init_point"`
	PayerEmail      string    `json:"payer_email"`
	ExternalRef     string    `json:"external_reference"`
	NextPaymentDate time.Time `json:"next_payment_date"`
	DateCreated     time.Time `json:"date_created"`
}

type PreapprovalCreation struct {
	Reason            string          `json:"reason"`
	ExternalReference string          `json:"external_reference"`
	PayerEmail        string          `json:"payer_email"`
	BackURL           string          `json:"back_url"`
	AutoRecurring     MPAutoRecurring `json:"auto_recurring"`
}

type MPAutoRecurring struct {
	Frequency         int     `json:"frequency"`
	FrequencyType     string  `json:"frequency_type"`
	TransactionAmount float64 `json:"transaction_amount"`
	CurrencyID        string  `json:"currency_id"`
}

// WebhookNotification is the body MercadoPago posts on preapproval events.
type WebhookNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}
