package service

import (
	"context"
	"errors"

	"github.com/reservapp/reservapp/internal/models"
	"github.com/reservapp/reservapp/internal/repository"
	"github.com/reservapp/reservapp/internal/transfer"
)

var (
	ErrPlanHasSubscriptions = errors.New("plan has active subscriptions")
	ErrInvalidInterval      = errors.New("invalid billing interval")
)

type PlanService interface {
	List(ctx context.Context, activeOnly bool) ([]*models.Plan, error)
	Create(ctx context.Context, creation *transfer.PlanCreation) (int64, error)
	Update(ctx context.Context, update *transfer.PlanUpdate) error
	Remove(ctx context.Context, id int64) error
}

type planService struct {
	p repository.PlanRepository
	s repository.SubscriptionRepository
}

func NewPlanService(p repository.PlanRepository, s repository.SubscriptionRepository) PlanService {
	return &planService{
		p: p,
		s: s,
	}
}

func (s *planService) List(ctx context.Context, activeOnly bool) ([]*models.Plan, error) {
	return s.p.List(ctx, activeOnly)
}

func (s *planService) Create(ctx context.Context, creation *transfer.PlanCreation) (int64, error) {
	if creation.BillingInterval != models.BillingIntervalMonthly && creation.BillingInterval != models.BillingIntervalYearly {
		return 0, ErrInvalidInterval
	}

	plan := &models.Plan{
		Name:            creation.Name,
		Description:     creation.Description,
		PriceCents:      creation.PriceCents,
		Currency:        creation.Currency,
		BillingInterval: creation.BillingInterval,
		Features:        creation.Features,
		LatePenaltyRate: creation.LatePenaltyRate,
		Active:          creation.Active,
	}

	return s.p.Create(ctx, plan)
}

func (s *planService) Update(ctx context.Context, update *transfer.PlanUpdate) error {
	if update.BillingInterval != models.BillingIntervalMonthly && update.BillingInterval != models.BillingIntervalYearly {
		return ErrInvalidInterval
	}

	_, isExist, err := s.p.GetByID(ctx, update.ID)
	if err != nil {
		return err
	}
	if !isExist {
		return ErrPlanNotFound
	}

	plan := &models.Plan{
		ID:              update.ID,
		Name:            update.Name,
		Description:     update.Description,
		PriceCents:      update.PriceCents,
		Currency:        update.Currency,
		BillingInterval: update.BillingInterval,
		Features:        update.Features,
		LatePenaltyRate: update.LatePenaltyRate,
		Active:          update.Active,
	}

	return s.p.Update(ctx, plan)
}

// Remove deletes a plan unless active subscriptions still reference it.
func (s *planService) Remove(ctx context.Context, id int64) error {
	_, isExist, err := s.p.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isExist {
		return ErrPlanNotFound
	}

	count, err := s.s.CountActiveByPlan(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrPlanHasSubscriptions
	}

	return s.p.Remove(ctx, id)
}
