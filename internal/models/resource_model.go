package models

import "time"

// Resource is a bookable studio room.
type Resource struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Capacity    int       `db:"capacity" json:"capacity"`
	PhotoURL    string    `db:"photo_url" json:"photo_url"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
