package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/reservapp/reservapp/internal/models"
	"github.com/reservapp/reservapp/internal/repository"
	"github.com/reservapp/reservapp/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExportUserRepo struct {
	repository.UserRepository
	users []*models.User
}

func (r *fakeExportUserRepo) List(_ context.Context, _ string) ([]*models.User, error) {
	return r.users, nil
}

type fakeExportSubRepo struct {
	repository.SubscriptionRepository
	rows []*transfer.SubscriptionExportRow
}

func (r *fakeExportSubRepo) ListForExport(_ context.Context, _ string) ([]*transfer.SubscriptionExportRow, error) {
	return r.rows, nil
}

func TestUsersCSVHeaderOnlyWhenEmpty(t *testing.T) {
	svc := NewExportService(&fakeExportUserRepo{}, &fakeExportSubRepo{})

	data, err := svc.UsersCSV(context.Background(), "nomatch")
	require.NoError(t, err)

	require.True(t, len(data) > 3, "must at least contain the BOM")
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	assert.Equal(t, "id,name,email,is_admin,created_at\n", string(data[3:]))
}

func TestSubscriptionsCSVHeaderOnlyWhenEmpty(t *testing.T) {
	svc := NewExportService(&fakeExportUserRepo{}, &fakeExportSubRepo{})

	data, err := svc.SubscriptionsCSV(context.Background(), "past_due")
	require.NoError(t, err)

	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	assert.Equal(t, "id,user_email,plan,status,current_period_end,next_billing_date\n", string(data[3:]))
}

func TestUsersCSVRows(t *testing.T) {
	svc := NewExportService(&fakeExportUserRepo{users: []*models.User{
		{ID: 1, Name: "Ana", Email: "ana@example.com", IsAdmin: true, CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Bruno", Email: "bruno@example.com", CreatedAt: time.Date(2025, 4, 2, 11, 0, 0, 0, time.UTC)},
	}}, &fakeExportSubRepo{})

	data, err := svc.UsersCSV(context.Background(), "")
	require.NoError(t, err)

	body := string(data[3:])
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "1,Ana,ana@example.com,true,2025-03-01T10:00:00Z", lines[1])
	assert.Equal(t, "2,Bruno,bruno@example.com,false,2025-04-02T11:00:00Z", lines[2])
}

func TestSubscriptionsCSVRows(t *testing.T) {
	periodEnd := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	svc := NewExportService(&fakeExportUserRepo{}, &fakeExportSubRepo{rows: []*transfer.SubscriptionExportRow{
		{ID: 7, UserEmail: "ana@example.com", PlanName: "Mensual", Status: "active", CurrentPeriodEnd: periodEnd, NextBillingDate: periodEnd},
	}})

	data, err := svc.SubscriptionsCSV(context.Background(), "active")
	require.NoError(t, err)

	assert.Contains(t, string(data), "7,ana@example.com,Mensual,active,2025-10-01T00:00:00Z,2025-10-01T00:00:00Z")
}
