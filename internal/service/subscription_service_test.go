package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/reservapp/reservapp/internal/models"
	"github.com/reservapp/reservapp/internal/repository"
	"github.com/reservapp/reservapp/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	preapproval *transfer.Preapproval
	err         error
	cancelled   []string
}

func (g *fakeGateway) CreatePreapproval(_ context.Context, _ string, _ *models.Plan, _ string) (*transfer.Preapproval, error) {
	return g.preapproval, g.err
}

func (g *fakeGateway) GetPreapproval(_ context.Context, _ string) (*transfer.Preapproval, error) {
	return g.preapproval, g.err
}

func (g *fakeGateway) CancelPreapproval(_ context.Context, id string) error {
	g.cancelled = append(g.cancelled, id)
	return g.err
}

type fakeSubscriptionRepo struct {
	repository.SubscriptionRepository
	sub     *models.Subscription
	updates []*models.Subscription
	created []*models.Subscription
}

func (r *fakeSubscriptionRepo) GetByID(_ context.Context, id int64) (*models.Subscription, bool, error) {
	if r.sub == nil || r.sub.ID != id {
		return nil, false, nil
	}
	return r.sub, true, nil
}

func (r *fakeSubscriptionRepo) GetByUserID(_ context.Context, userID int64) (*models.Subscription, bool, error) {
	if r.sub == nil || r.sub.UserID != userID {
		return nil, false, nil
	}
	return r.sub, true, nil
}

func (r *fakeSubscriptionRepo) GetByGatewayID(_ context.Context, gatewayID string) (*models.Subscription, bool, error) {
	if r.sub == nil || r.sub.GatewayID != gatewayID {
		return nil, false, nil
	}
	return r.sub, true, nil
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *models.Subscription) (int64, error) {
	r.created = append(r.created, sub)
	return 1, nil
}

func (r *fakeSubscriptionRepo) Update(_ context.Context, sub *models.Subscription) error {
	r.updates = append(r.updates, sub)
	return nil
}

func (r *fakeSubscriptionRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	if r.sub != nil && r.sub.ID == id {
		r.sub.Status = status
	}
	return nil
}

type fakePlanRepo struct {
	repository.PlanRepository
	plan *models.Plan
}

func (r *fakePlanRepo) GetByID(_ context.Context, id int64) (*models.Plan, bool, error) {
	if r.plan == nil || r.plan.ID != id {
		return nil, false, nil
	}
	return r.plan, true, nil
}

type fakeUserRepo struct {
	repository.UserRepository
	user *models.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, bool, error) {
	if r.user == nil || r.user.ID != id {
		return nil, false, nil
	}
	return r.user, true, nil
}

func newTestSubscription(status string) *models.Subscription {
	return &models.Subscription{
		ID:        7,
		UserID:    3,
		PlanID:    1,
		GatewayID: "mp-123",
		Status:    status,
	}
}

func newSubscriptionService(sub *models.Subscription, gw *fakeGateway) (SubscriptionService, *fakeSubscriptionRepo) {
	subRepo := &fakeSubscriptionRepo{sub: sub}
	planRepo := &fakePlanRepo{plan: &models.Plan{
		ID:              1,
		Name:            "Mensual",
		PriceCents:      150000,
		Currency:        "ARS",
		BillingInterval: models.BillingIntervalMonthly,
		Active:          true,
	}}
	userRepo := &fakeUserRepo{user: &models.User{ID: 3, Email: "ana@example.com"}}
	return NewSubscriptionService(userRepo, planRepo, subRepo, gw), subRepo
}

func TestReconcilePendingNeverChangesStatus(t *testing.T) {
	for _, status := range []string{
		models.SubscriptionStatusPending,
		models.SubscriptionStatusActive,
		models.SubscriptionStatusPastDue,
		models.SubscriptionStatusSuspended,
		models.SubscriptionStatusCancelled,
	} {
		sub := newTestSubscription(status)
		svc, subRepo := newSubscriptionService(sub, &fakeGateway{
			preapproval: &transfer.Preapproval{ID: "mp-123", Status: transfer.GatewayStatusPending},
		})

		result, err := svc.Reconcile(context.Background(), sub.ID)
		require.NoError(t, err)

		assert.False(t, result.Changed)
		assert.Equal(t, status, result.OldStatus)
		assert.Equal(t, status, result.NewStatus)
		assert.Empty(t, subRepo.updates, "pending must not write")
	}
}

func TestReconcileAuthorizedActivates(t *testing.T) {
	sub := newTestSubscription(models.SubscriptionStatusPastDue)
	sub.GracePeriodEnd = sql.NullTime{Time: time.Now(), Valid: true}
	sub.CancelledAt = sql.NullTime{Time: time.Now(), Valid: true}

	nextPayment := time.Now().AddDate(0, 1, 0).Truncate(time.Second)
	svc, subRepo := newSubscriptionService(sub, &fakeGateway{
		preapproval: &transfer.Preapproval{ID: "mp-123", Status: transfer.GatewayStatusAuthorized, NextPaymentDate: nextPayment},
	})

	result, err := svc.Reconcile(context.Background(), sub.ID)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Equal(t, models.SubscriptionStatusPastDue, result.OldStatus)
	assert.Equal(t, models.SubscriptionStatusActive, result.NewStatus)

	require.Len(t, subRepo.updates, 1)
	updated := subRepo.updates[0]
	assert.Equal(t, models.SubscriptionStatusActive, updated.Status)
	assert.Equal(t, nextPayment, updated.NextBillingDate)
	assert.False(t, updated.GracePeriodEnd.Valid, "grace period must be cleared")
	assert.False(t, updated.CancelledAt.Valid, "cancellation must be cleared")
}

func TestReconcilePausedSuspends(t *testing.T) {
	sub := newTestSubscription(models.SubscriptionStatusActive)
	svc, subRepo := newSubscriptionService(sub, &fakeGateway{
		preapproval: &transfer.Preapproval{ID: "mp-123", Status: transfer.GatewayStatusPaused},
	})

	result, err := svc.Reconcile(context.Background(), sub.ID)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Equal(t, models.SubscriptionStatusSuspended, result.NewStatus)
	require.Len(t, subRepo.updates, 1)
}

func TestReconcileCancelledSetsTimestampOnce(t *testing.T) {
	firstCancel := time.Now().Add(-48 * time.Hour).Truncate(time.Second)

	sub := newTestSubscription(models.SubscriptionStatusActive)
	sub.CancelledAt = sql.NullTime{Time: firstCancel, Valid: true}
	svc, subRepo := newSubscriptionService(sub, &fakeGateway{
		preapproval: &transfer.Preapproval{ID: "mp-123", Status: transfer.GatewayStatusCancelled},
	})

	result, err := svc.Reconcile(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	require.Len(t, subRepo.updates, 1)
	assert.Equal(t, firstCancel, subRepo.updates[0].CancelledAt.Time, "existing cancellation timestamp must not move")

	sub = newTestSubscription(models.SubscriptionStatusActive)
	svc, subRepo = newSubscriptionService(sub, &fakeGateway{
		preapproval: &transfer.Preapproval{ID: "mp-123", Status: transfer.GatewayStatusCancelled},
	})

	_, err = svc.Reconcile(context.Background(), sub.ID)
	require.NoError(t, err)
	require.Len(t, subRepo.updates, 1)
	assert.True(t, subRepo.updates[0].CancelledAt.Valid, "cancellation timestamp must be set")
}

func TestReconcileSkipsWriteWhenStatusMatches(t *testing.T) {
	sub := newTestSubscription(models.SubscriptionStatusActive)
	svc, subRepo := newSubscriptionService(sub, &fakeGateway{
		preapproval: &transfer.Preapproval{ID: "mp-123", Status: transfer.GatewayStatusAuthorized},
	})

	result, err := svc.Reconcile(context.Background(), sub.ID)
	require.NoError(t, err)

	assert.False(t, result.Changed)
	assert.Empty(t, subRepo.updates)
}

func TestReconcileGatewayFailure(t *testing.T) {
	sub := newTestSubscription(models.SubscriptionStatusActive)
	svc, subRepo := newSubscriptionService(sub, &fakeGateway{err: errors.New("gateway unreachable")})

	_, err := svc.Reconcile(context.Background(), sub.ID)
	require.Error(t, err)
	assert.Empty(t, subRepo.updates)
}

func TestReconcileUnknownSubscription(t *testing.T) {
	svc, _ := newSubscriptionService(nil, &fakeGateway{})

	_, err := svc.Reconcile(context.Background(), 99)
	assert.ErrorIs(t, err, ErrSubscriptionNotFound)
}

func TestCheckoutRejectsActiveSubscriber(t *testing.T) {
	sub := newTestSubscription(models.SubscriptionStatusActive)
	svc, _ := newSubscriptionService(sub, &fakeGateway{
		preapproval: &transfer.Preapproval{ID: "mp-999", InitPoint: "https://mp.test/init"},
	})

	_, err := svc.Checkout(context.Background(), 3, 1)
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestCheckoutCreatesPendingSubscription(t *testing.T) {
	svc, subRepo := newSubscriptionService(nil, &fakeGateway{
		preapproval: &transfer.Preapproval{ID: "mp-999", InitPoint: "https://mp.test/init"},
	})

	result, err := svc.Checkout(context.Background(), 3, 1)
	require.NoError(t, err)

	assert.Equal(t, "https://mp.test/init", result.InitPoint)
	require.Len(t, subRepo.created, 1)
	assert.Equal(t, models.SubscriptionStatusPending, subRepo.created[0].Status)
	assert.Equal(t, "mp-999", subRepo.created[0].GatewayID)
}

func TestOverrideStatusValidation(t *testing.T) {
	sub := newTestSubscription(models.SubscriptionStatusActive)
	svc, _ := newSubscriptionService(sub, &fakeGateway{})

	err := svc.OverrideStatus(context.Background(), sub.ID, "frozen")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	err = svc.OverrideStatus(context.Background(), sub.ID, models.SubscriptionStatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionStatusSuspended, sub.Status)
}
