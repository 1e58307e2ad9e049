package service

import (
	"context"

	"github.com/reservapp/reservapp/internal/models"
	"github.com/reservapp/reservapp/internal/repository"
	"github.com/reservapp/reservapp/internal/transfer"
)

type AdminService interface {
	DashboardMetrics(ctx context.Context) (*transfer.DashboardMetrics, error)
}

type adminService struct {
	u repository.UserRepository
	s repository.SubscriptionRepository
	r repository.ReservationRepository
}

func NewAdminService(
	u repository.UserRepository,
	s repository.SubscriptionRepository,
	r repository.ReservationRepository) AdminService {
	return &adminService{
		u: u,
		s: s,
		r: r,
	}
}

func (s *adminService) DashboardMetrics(ctx context.Context) (*transfer.DashboardMetrics, error) {
	users, err := s.u.Count(ctx)
	if err != nil {
		return nil, err
	}

	active, err := s.s.CountByStatus(ctx, models.SubscriptionStatusActive)
	if err != nil {
		return nil, err
	}

	pastDue, err := s.s.CountByStatus(ctx, models.SubscriptionStatusPastDue)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.r.CountByStatus(ctx, models.ReservationStatusConfirmed)
	if err != nil {
		return nil, err
	}

	cancelled, err := s.r.CountByStatus(ctx, models.ReservationStatusCancelled)
	if err != nil {
		return nil, err
	}

	pricing, err := s.s.ListActivePricing(ctx)
	if err != nil {
		return nil, err
	}

	return &transfer.DashboardMetrics{
		Users:                 users,
		ActiveSubscriptions:   active,
		PastDueSubscriptions:  pastDue,
		MRRCents:              calculateMRRCents(pricing),
		ConfirmedReservations: confirmed,
		CancelledReservations: cancelled,
	}, nil
}

// calculateMRRCents normalizes every active subscription to a monthly amount.
func calculateMRRCents(pricing []*transfer.PlanPricing) int64 {
	var total int64
	for _, p := range pricing {
		if p.BillingInterval == models.BillingIntervalYearly {
			total += p.PriceCents / 12
		} else {
			total += p.PriceCents
		}
	}
	return total
}
