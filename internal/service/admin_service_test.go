package service

import (
	"testing"

	"github.com/reservapp/reservapp/internal/models"
	"github.com/reservapp/reservapp/internal/transfer"
	"github.com/stretchr/testify/assert"
)

func TestCalculateMRRCents(t *testing.T) {
	assert.Equal(t, int64(0), calculateMRRCents(nil))

	pricing := []*transfer.PlanPricing{
		{PriceCents: 150000, BillingInterval: models.BillingIntervalMonthly},
		{PriceCents: 150000, BillingInterval: models.BillingIntervalMonthly},
		{PriceCents: 1200000, BillingInterval: models.BillingIntervalYearly},
	}

	// two monthly plans plus a yearly one normalized to a twelfth
	assert.Equal(t, int64(400000), calculateMRRCents(pricing))
}
