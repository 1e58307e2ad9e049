package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/reservapp/reservapp/internal/models"
	"github.com/reservapp/reservapp/internal/repository"
	"github.com/reservapp/reservapp/internal/transfer"
)

var (
	ErrPlanNotFound         = errors.New("plan not found")
	ErrPlanInactive         = errors.New("plan is not available")
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrAlreadySubscribed    = errors.New("an active subscription already exists")
	ErrInvalidStatus        = errors.New("invalid subscription status")
)

type SubscriptionService interface {
	Checkout(ctx context.Context, userID, planID int64) (*transfer.CheckoutResponse, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Subscription, error)
	Reconcile(ctx context.Context, subscriptionID int64) (*transfer.ReconcileResult, error)
	ReconcileByGatewayID(ctx context.Context, gatewayID string) (*transfer.ReconcileResult, error)
	Cancel(ctx context.Context, userID int64) error
	OverrideStatus(ctx context.Context, subscriptionID int64, status string) error
}

type subscriptionService struct {
	u  repository.UserRepository
	p  repository.PlanRepository
	s  repository.SubscriptionRepository
	gw PaymentGateway
}

func NewSubscriptionService(
	u repository.UserRepository,
	p repository.PlanRepository,
	s repository.SubscriptionRepository,
	gw PaymentGateway) SubscriptionService {
	return &subscriptionService{
		u:  u,
		p:  p,
		s:  s,
		gw: gw,
	}
}

func (s *subscriptionService) Checkout(ctx context.Context, userID, planID int64) (*transfer.CheckoutResponse, error) {
	user, isExist, err := s.u.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return nil, ErrUserNotFound
	}

	plan, isExist, err := s.p.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return nil, ErrPlanNotFound
	}
	if !plan.Active {
		return nil, ErrPlanInactive
	}

	existing, hasSub, err := s.s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if hasSub && existing.Status == models.SubscriptionStatusActive {
		return nil, ErrAlreadySubscribed
	}

	externalRef := fmt.Sprintf("user:%d:plan:%d", userID, planID)
	preapproval, err := s.gw.CreatePreapproval(ctx, user.Email, plan, externalRef)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	subscription := &models.Subscription{
		UserID:             userID,
		PlanID:             planID,
		GatewayID:          preapproval.ID,
		Status:             models.SubscriptionStatusPending,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   periodEnd(now, plan.BillingInterval),
		NextBillingDate:    nextPayment(preapproval.NextPaymentDate, now, plan.BillingInterval),
	}

	subID, err := s.s.Create(ctx, subscription)
	if err != nil {
		return nil, err
	}

	return &transfer.CheckoutResponse{
		SubscriptionID: subID,
		InitPoint:      preapproval.InitPoint,
	}, nil
}

func (s *subscriptionService) GetByUserID(ctx context.Context, userID int64) (*models.Subscription, error) {
	subscription, isExist, err := s.s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return nil, ErrSubscriptionNotFound
	}
	return subscription, nil
}

// Reconcile fetches the gateway status for a subscription and maps it onto
// the local record:
//
//	authorized -> active (period dates reset, grace and cancellation cleared)
//	paused     -> suspended
//	cancelled  -> cancelled (cancellation timestamp set once)
//	pending    -> no change
//
// The record is written only when the mapped status differs from the stored
// one. The write is best-effort: it is not transactional with the gateway
// read, so drift between the two stores is possible.
func (s *subscriptionService) Reconcile(ctx context.Context, subscriptionID int64) (*transfer.ReconcileResult, error) {
	subscription, isExist, err := s.s.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return nil, ErrSubscriptionNotFound
	}

	return s.reconcile(ctx, subscription)
}

func (s *subscriptionService) ReconcileByGatewayID(ctx context.Context, gatewayID string) (*transfer.ReconcileResult, error) {
	subscription, isExist, err := s.s.GetByGatewayID(ctx, gatewayID)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return nil, ErrSubscriptionNotFound
	}

	return s.reconcile(ctx, subscription)
}

func (s *subscriptionService) reconcile(ctx context.Context, subscription *models.Subscription) (*transfer.ReconcileResult, error) {
	preapproval, err := s.gw.GetPreapproval(ctx, subscription.GatewayID)
	if err != nil {
		return nil, err
	}

	result := &transfer.ReconcileResult{
		SubscriptionID: subscription.ID,
		OldStatus:      subscription.Status,
		NewStatus:      subscription.Status,
	}

	var mapped string
	switch preapproval.Status {
	case transfer.GatewayStatusAuthorized:
		mapped = models.SubscriptionStatusActive
	case transfer.GatewayStatusPaused:
		mapped = models.SubscriptionStatusSuspended
	case transfer.GatewayStatusCancelled:
		mapped = models.SubscriptionStatusCancelled
	case transfer.GatewayStatusPending:
		return result, nil
	default:
		slog.Info("unknown gateway status", "status", preapproval.Status)
		return result, nil
	}

	if mapped == subscription.Status {
		return result, nil
	}

	subscription.Status = mapped
	switch mapped {
	case models.SubscriptionStatusActive:
		now := time.Now()
		plan, hasPlan, err := s.p.GetByID(ctx, subscription.PlanID)
		interval := models.BillingIntervalMonthly
		if err == nil && hasPlan {
			interval = plan.BillingInterval
		}
		subscription.CurrentPeriodStart = now
		subscription.NextBillingDate = nextPayment(preapproval.NextPaymentDate, now, interval)
		subscription.CurrentPeriodEnd = subscription.NextBillingDate
		subscription.GracePeriodEnd = sql.NullTime{}
		subscription.CancelledAt = sql.NullTime{}
	case models.SubscriptionStatusCancelled:
		if !subscription.CancelledAt.Valid {
			subscription.CancelledAt = sql.NullTime{Time: time.Now(), Valid: true}
		}
	}

	if err := s.s.Update(ctx, subscription); err != nil {
		return nil, err
	}

	result.NewStatus = mapped
	result.Changed = true
	return result, nil
}

func (s *subscriptionService) Cancel(ctx context.Context, userID int64) error {
	subscription, isExist, err := s.s.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if !isExist {
		return ErrSubscriptionNotFound
	}

	if subscription.GatewayID != "" {
		if err := s.gw.CancelPreapproval(ctx, subscription.GatewayID); err != nil {
			return err
		}
	}

	subscription.Status = models.SubscriptionStatusCancelled
	if !subscription.CancelledAt.Valid {
		subscription.CancelledAt = sql.NullTime{Time: time.Now(), Valid: true}
	}
	return s.s.Update(ctx, subscription)
}

// OverrideStatus lets an admin force any status onto a subscription. No
// transition rules apply.
func (s *subscriptionService) OverrideStatus(ctx context.Context, subscriptionID int64, status string) error {
	switch status {
	case models.SubscriptionStatusPending, models.SubscriptionStatusActive,
		models.SubscriptionStatusPastDue, models.SubscriptionStatusSuspended,
		models.SubscriptionStatusCancelled:
	default:
		return ErrInvalidStatus
	}

	_, isExist, err := s.s.GetByID(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if !isExist {
		return ErrSubscriptionNotFound
	}

	return s.s.UpdateStatus(ctx, subscriptionID, status)
}

func periodEnd(start time.Time, interval string) time.Time {
	if interval == models.BillingIntervalYearly {
		return start.AddDate(1, 0, 0)
	}
	return start.AddDate(0, 1, 0)
}

func nextPayment(gatewayDate, fallbackStart time.Time, interval string) time.Time {
	if !gatewayDate.IsZero() {
		return gatewayDate
	}
	return periodEnd(fallbackStart, interval)
}
