package models

import "time"

const (
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
)

type Reservation struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	ResourceID int64     `db:"resource_id" json:"resource_id"`
	Code       string    `db:"code" json:"code"`
	StartsAt   time.Time `db:"starts_at" json:"starts_at"`
	EndsAt     time.Time `db:"ends_at" json:"ends_at"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
