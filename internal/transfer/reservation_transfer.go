package transfer

type ReservationCreation struct {
	ResourceID int64  `json:"resource_id"`
	StartsAt   string `json:"starts_at"`
	EndsAt     string `json:"ends_at"`
}

type ReservationCancel struct {
	ReservationID int64 `json:"reservation_id"`
}
