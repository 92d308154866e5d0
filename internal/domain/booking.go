package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Booking snapshots the flight route and times at creation so historical
// bookings stay stable even if the flight record later changes.
type Booking struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"user_id"`
	FlightID      int64         `json:"flight_id"`
	PNR           string        `json:"pnr"`
	FromAirportID int64         `json:"from_airport_id"`
	ToAirportID   int64         `json:"to_airport_id"`
	DepartureTime time.Time     `json:"departure_time"`
	ArrivalTime   time.Time     `json:"arrival_time"`
	AmountCents   int64         `json:"amount_cents"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Active reports whether the booking counts toward seat occupancy.
// Cancelled bookings never occupy a seat.
func (b *Booking) Active() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}
