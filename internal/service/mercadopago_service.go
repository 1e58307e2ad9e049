package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	config "github.com/reservapp/reservapp/configs"
	"github.com/reservapp/reservapp/internal/models"
	"github.com/reservapp/reservapp/internal/transfer"
)

// PaymentGateway is the subscription billing surface of MercadoPago used by
// the app. Tests substitute a fake.
type PaymentGateway interface {
	CreatePreapproval(ctx context.Context, payerEmail string, plan *models.Plan, externalRef string) (*transfer.Preapproval, error)
	GetPreapproval(ctx context.Context, id string) (*transfer.Preapproval, error)
	CancelPreapproval(ctx context.Context, id string) error
}

type mercadoPagoService struct {
	cfg    config.Config
	client *http.Client
}

func NewMercadoPagoService(cfg config.Config) PaymentGateway {
	return &mercadoPagoService{
		cfg:    cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (mp *mercadoPagoService) CreatePreapproval(ctx context.Context, payerEmail string, plan *models.Plan, externalRef string) (*transfer.Preapproval, error) {
	frequencyType := "months"
	frequency := 1
	if plan.BillingInterval == models.BillingIntervalYearly {
		frequency = 12
	}

	body := transfer.PreapprovalCreation{
		Reason:            fmt.Sprintf("Reservapp - %s", plan.Name),
		ExternalReference: externalRef,
		PayerEmail:        payerEmail,
		BackURL:           mp.cfg.FrontendURL,
		AutoRecurring: transfer.MPAutoRecurring{
			Frequency:         frequency,
			FrequencyType:     frequencyType,
			TransactionAmount: float64(plan.PriceCents) / 100,
			CurrencyID:        plan.Currency,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mp.cfg.MercadoPagoBaseURL+"/preapproval", bytes.NewReader(payload))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+mp.cfg.MercadoPagoToken)

	return mp.doPreapproval(req)
}

func (mp *mercadoPagoService) GetPreapproval(ctx context.Context, id string) (*transfer.Preapproval, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mp.cfg.MercadoPagoBaseURL+"/preapproval/"+id, nil)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+mp.cfg.MercadoPagoToken)

	return mp.doPreapproval(req)
}

func (mp *mercadoPagoService) CancelPreapproval(ctx context.Context, id string) error {
	payload := []byte(`{"status": "cancelled"}`)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, mp.cfg.MercadoPagoBaseURL+"/preapproval/"+id, bytes.NewReader(payload))
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+mp.cfg.MercadoPagoToken)

	_, err = mp.doPreapproval(req)
	return err
}

func (mp *mercadoPagoService) doPreapproval(req *http.Request) (*transfer.Preapproval, error) {
	resp, err := mp.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("mercadopago request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("error response from mercadopago: %s (status code: %d)", body, resp.StatusCode)
	}

	var preapproval transfer.Preapproval
	if err := json.NewDecoder(resp.Body).Decode(&preapproval); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to decode preapproval response: %v", err)
	}

	return &preapproval, nil
}
