package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/reservapp/reservapp/internal/models"
)

type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Reservation, bool, error)
	Create(ctx context.Context, reservation *models.Reservation) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	ListByUserID(ctx context.Context, userID int64) ([]*models.Reservation, error)
	HasOverlap(ctx context.Context, resourceID int64, startsAt, endsAt time.Time) (bool, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*models.Reservation, bool, error) {
	var res models.Reservation
	query := "SELECT id, user_id, resource_id, code, starts_at, ends_at, status FROM reservations WHERE id = $1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&res.ID, &res.UserID, &res.ResourceID, &res.Code, &res.StartsAt, &res.EndsAt, &res.Status)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &res, true, nil
}

func (r *reservationRepository) Create(ctx context.Context, reservation *models.Reservation) (int64, error) {
	query := `
		INSERT INTO reservations (user_id, resource_id, code, starts_at, ends_at, status)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		reservation.UserID, reservation.ResourceID, reservation.Code,
		reservation.StartsAt, reservation.EndsAt, reservation.Status).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := "UPDATE reservations SET status = $1, updated_at = $2 WHERE id = $3"
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *reservationRepository) ListByUserID(ctx context.Context, userID int64) ([]*models.Reservation, error) {
	query := "SELECT id, user_id, resource_id, code, starts_at, ends_at, status FROM reservations WHERE user_id = $1 ORDER BY starts_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var reservations []*models.Reservation
	for rows.Next() {
		var res models.Reservation
		if err := rows.Scan(&res.ID, &res.UserID, &res.ResourceID, &res.Code, &res.StartsAt, &res.EndsAt, &res.Status); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		reservations = append(reservations, &res)
	}
	return reservations, rows.Err()
}

func (r *reservationRepository) HasOverlap(ctx context.Context, resourceID int64, startsAt, endsAt time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE resource_id = $1 AND status = $2 AND starts_at < $4 AND ends_at > $3
		)
	`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, resourceID, models.ReservationStatusConfirmed, startsAt, endsAt).Scan(&exists)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return exists, nil
}

func (r *reservationRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reservations WHERE status = $1", status).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}
