package service

import (
	"context"
	"testing"
	"time"

	"github.com/reservapp/reservapp/internal/models"
	"github.com/reservapp/reservapp/internal/repository"
	"github.com/reservapp/reservapp/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReservationRepo struct {
	repository.ReservationRepository
	reservation  *models.Reservation
	overlap      bool
	statusWrites map[int64]string
	createdCount int
}

func (r *fakeReservationRepo) GetByID(_ context.Context, id int64) (*models.Reservation, bool, error) {
	if r.reservation == nil || r.reservation.ID != id {
		return nil, false, nil
	}
	return r.reservation, true, nil
}

func (r *fakeReservationRepo) Create(_ context.Context, _ *models.Reservation) (int64, error) {
	r.createdCount++
	return 42, nil
}

func (r *fakeReservationRepo) UpdateStatus(_ context.Context, id int64, status string) error {
	if r.statusWrites == nil {
		r.statusWrites = make(map[int64]string)
	}
	r.statusWrites[id] = status
	return nil
}

func (r *fakeReservationRepo) HasOverlap(_ context.Context, _ int64, _, _ time.Time) (bool, error) {
	return r.overlap, nil
}

type fakeResourceRepo struct {
	repository.ResourceRepository
	resource *models.Resource
}

func (r *fakeResourceRepo) GetByID(_ context.Context, id int64) (*models.Resource, bool, error) {
	if r.resource == nil || r.resource.ID != id {
		return nil, false, nil
	}
	return r.resource, true, nil
}

func newReservationFixture(reservation *models.Reservation, subStatus string, overlap bool) (ReservationService, *fakeReservationRepo) {
	resRepo := &fakeReservationRepo{reservation: reservation, overlap: overlap}
	resourceRepo := &fakeResourceRepo{resource: &models.Resource{ID: 5, Name: "Sala A", Capacity: 4, Active: true}}
	subRepo := &fakeSubscriptionRepo{}
	if subStatus != "" {
		subRepo.sub = &models.Subscription{ID: 1, UserID: 3, Status: subStatus}
	}
	return NewReservationService(resRepo, resourceRepo, subRepo), resRepo
}

func confirmedReservation(startsIn time.Duration) *models.Reservation {
	start := time.Now().Add(startsIn)
	return &models.Reservation{
		ID:         10,
		UserID:     3,
		ResourceID: 5,
		Code:       "abc123",
		StartsAt:   start,
		EndsAt:     start.Add(time.Hour),
		Status:     models.ReservationStatusConfirmed,
	}
}

func TestCancelInsideLeadTimeAlwaysFails(t *testing.T) {
	for _, startsIn := range []time.Duration{time.Hour, 12 * time.Hour, 23 * time.Hour, 23*time.Hour + 59*time.Minute} {
		svc, repo := newReservationFixture(confirmedReservation(startsIn), models.SubscriptionStatusActive, false)

		_, err := svc.Cancel(context.Background(), 3, 10)
		assert.ErrorIs(t, err, ErrCancellationTooLate, "start in %s", startsIn)
		assert.Empty(t, repo.statusWrites)
	}
}

func TestCancelWithEnoughNotice(t *testing.T) {
	svc, repo := newReservationFixture(confirmedReservation(48*time.Hour), models.SubscriptionStatusActive, false)

	reservation, err := svc.Cancel(context.Background(), 3, 10)
	require.NoError(t, err)

	assert.Equal(t, models.ReservationStatusCancelled, reservation.Status)
	assert.Equal(t, models.ReservationStatusCancelled, repo.statusWrites[10])
}

func TestCancelUnknownReservation(t *testing.T) {
	svc, _ := newReservationFixture(nil, models.SubscriptionStatusActive, false)

	_, err := svc.Cancel(context.Background(), 3, 10)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancelRequiresOwnership(t *testing.T) {
	svc, repo := newReservationFixture(confirmedReservation(48*time.Hour), models.SubscriptionStatusActive, false)

	_, err := svc.Cancel(context.Background(), 99, 10)
	assert.ErrorIs(t, err, ErrNotReservationOwner)
	assert.Empty(t, repo.statusWrites)
}

func TestCancelAlreadyCancelled(t *testing.T) {
	reservation := confirmedReservation(48 * time.Hour)
	reservation.Status = models.ReservationStatusCancelled
	svc, repo := newReservationFixture(reservation, models.SubscriptionStatusActive, false)

	_, err := svc.Cancel(context.Background(), 3, 10)
	assert.ErrorIs(t, err, ErrReservationNotActive)
	assert.Empty(t, repo.statusWrites)
}

func TestCreateReservation(t *testing.T) {
	svc, repo := newReservationFixture(nil, models.SubscriptionStatusActive, false)

	start := time.Now().Add(48 * time.Hour)
	reservation, err := svc.Create(context.Background(), 3, &transfer.ReservationCreation{
		ResourceID: 5,
		StartsAt:   start.Format(time.RFC3339),
		EndsAt:     start.Add(2 * time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), reservation.ID)
	assert.Equal(t, models.ReservationStatusConfirmed, reservation.Status)
	assert.NotEmpty(t, reservation.Code)
	assert.Equal(t, 1, repo.createdCount)
}

func TestCreateRequiresActiveSubscription(t *testing.T) {
	for _, subStatus := range []string{"", models.SubscriptionStatusPending, models.SubscriptionStatusPastDue, models.SubscriptionStatusSuspended, models.SubscriptionStatusCancelled} {
		svc, _ := newReservationFixture(nil, subStatus, false)

		start := time.Now().Add(48 * time.Hour)
		_, err := svc.Create(context.Background(), 3, &transfer.ReservationCreation{
			ResourceID: 5,
			StartsAt:   start.Format(time.RFC3339),
			EndsAt:     start.Add(time.Hour).Format(time.RFC3339),
		})
		assert.ErrorIs(t, err, ErrSubscriptionRequired, "subscription status %q", subStatus)
	}
}

func TestCreateRejectsOverlap(t *testing.T) {
	svc, _ := newReservationFixture(nil, models.SubscriptionStatusActive, true)

	start := time.Now().Add(48 * time.Hour)
	_, err := svc.Create(context.Background(), 3, &transfer.ReservationCreation{
		ResourceID: 5,
		StartsAt:   start.Format(time.RFC3339),
		EndsAt:     start.Add(time.Hour).Format(time.RFC3339),
	})
	assert.ErrorIs(t, err, ErrTimeSlotTaken)
}

func TestCreateRejectsBadWindow(t *testing.T) {
	svc, _ := newReservationFixture(nil, models.SubscriptionStatusActive, false)

	start := time.Now().Add(48 * time.Hour)

	cases := []transfer.ReservationCreation{
		{ResourceID: 5, StartsAt: "not-a-date", EndsAt: start.Format(time.RFC3339)},
		{ResourceID: 5, StartsAt: start.Format(time.RFC3339), EndsAt: start.Format(time.RFC3339)},
		{ResourceID: 5, StartsAt: start.Format(time.RFC3339), EndsAt: start.Add(-time.Hour).Format(time.RFC3339)},
		{ResourceID: 5, StartsAt: time.Now().Add(-time.Hour).Format(time.RFC3339), EndsAt: start.Format(time.RFC3339)},
	}

	for i, creation := range cases {
		_, err := svc.Create(context.Background(), 3, &creation)
		assert.ErrorIs(t, err, ErrInvalidTimeWindow, "case %d", i)
	}
}
