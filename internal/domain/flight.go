package domain

import "time"

// Flight is published and managed by a single owner. Codes are free-form,
// normalized to uppercase, and unique per owner rather than globally.
type Flight struct {
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"owner_id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	SeatCapacity  int       `json:"seat_capacity"`
	FromAirportID int64     `json:"from_airport_id"`
	ToAirportID   int64     `json:"to_airport_id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	PriceCents    int64     `json:"price_cents"`
	// AvailableSeats is derived as capacity minus the count of active
	// bookings, never stored as a mutable counter.
	AvailableSeats int       `json:"available_seats"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
