package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/reservapp/reservapp/internal/models"
	"github.com/reservapp/reservapp/internal/repository"
	"github.com/reservapp/reservapp/internal/transfer"
)

// CancellationLeadTime is the minimum notice required to cancel a
// confirmed reservation.
const CancellationLeadTime = 24 * time.Hour

var (
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrNotReservationOwner  = errors.New("reservation belongs to another user")
	ErrReservationNotActive = errors.New("reservation is not confirmed")
	ErrCancellationTooLate  = errors.New("cancellation window has passed")
	ErrResourceNotFound     = errors.New("resource not found")
	ErrResourceUnavailable  = errors.New("resource is not available")
	ErrTimeSlotTaken        = errors.New("time slot already reserved")
	ErrInvalidTimeWindow    = errors.New("invalid reservation time window")
	ErrSubscriptionRequired = errors.New("active subscription required")
)

type ReservationService interface {
	Create(ctx context.Context, userID int64, creation *transfer.ReservationCreation) (*models.Reservation, error)
	List(ctx context.Context, userID int64) ([]*models.Reservation, error)
	Cancel(ctx context.Context, userID, reservationID int64) (*models.Reservation, error)
}

type reservationService struct {
	r  repository.ReservationRepository
	rs repository.ResourceRepository
	s  repository.SubscriptionRepository
}

func NewReservationService(
	r repository.ReservationRepository,
	rs repository.ResourceRepository,
	s repository.SubscriptionRepository) ReservationService {
	return &reservationService{
		r:  r,
		rs: rs,
		s:  s,
	}
}

func (s *reservationService) Create(ctx context.Context, userID int64, creation *transfer.ReservationCreation) (*models.Reservation, error) {
	startsAt, err := time.Parse(time.RFC3339, creation.StartsAt)
	if err != nil {
		return nil, ErrInvalidTimeWindow
	}
	endsAt, err := time.Parse(time.RFC3339, creation.EndsAt)
	if err != nil {
		return nil, ErrInvalidTimeWindow
	}
	if !endsAt.After(startsAt) || startsAt.Before(time.Now()) {
		return nil, ErrInvalidTimeWindow
	}

	subscription, hasSub, err := s.s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !hasSub || subscription.Status != models.SubscriptionStatusActive {
		return nil, ErrSubscriptionRequired
	}

	resource, isExist, err := s.rs.GetByID(ctx, creation.ResourceID)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return nil, ErrResourceNotFound
	}
	if !resource.Active {
		return nil, ErrResourceUnavailable
	}

	taken, err := s.r.HasOverlap(ctx, creation.ResourceID, startsAt, endsAt)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrTimeSlotTaken
	}

	code, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	reservation := &models.Reservation{
		UserID:     userID,
		ResourceID: creation.ResourceID,
		Code:       code,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		Status:     models.ReservationStatusConfirmed,
	}

	id, err := s.r.Create(ctx, reservation)
	if err != nil {
		return nil, err
	}
	reservation.ID = id

	return reservation, nil
}

func (s *reservationService) List(ctx context.Context, userID int64) ([]*models.Reservation, error) {
	return s.r.ListByUserID(ctx, userID)
}

// Cancel enforces the cancellation policy: the caller must own a confirmed
// reservation and there must be at least 24 hours before it starts.
func (s *reservationService) Cancel(ctx context.Context, userID, reservationID int64) (*models.Reservation, error) {
	reservation, isExist, err := s.r.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !isExist {
		return nil, ErrReservationNotFound
	}

	if reservation.UserID != userID {
		return nil, ErrNotReservationOwner
	}

	if reservation.Status != models.ReservationStatusConfirmed {
		return nil, ErrReservationNotActive
	}

	if time.Until(reservation.StartsAt) < CancellationLeadTime {
		return nil, ErrCancellationTooLate
	}

	if err := s.r.UpdateStatus(ctx, reservationID, models.ReservationStatusCancelled); err != nil {
		return nil, err
	}

	reservation.Status = models.ReservationStatusCancelled
	return reservation, nil
}
