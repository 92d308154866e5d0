// Package ledger owns the booking core: seat-availability accounting,
// PNR uniqueness and booking status transitions.
package ledger

import (
	"context"
	"fmt"
	"time"

	"flightdesk/internal/domain"
	"flightdesk/internal/kafka"
	"flightdesk/internal/logger"
	"flightdesk/internal/pnr"
	"flightdesk/internal/repository"
)

type LedgerUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	GetBookingByPNR(ctx context.Context, code string) (*domain.Booking, error)
	ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	ConfirmBooking(ctx context.Context, id int64) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id int64) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Booking, error)
	AvailableSeats(ctx context.Context, flightID int64) (int, error)
	CancelStalePendingPayments(ctx context.Context, olderThan time.Duration) ([]domain.Booking, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type LedgerService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	cache              Cache
	producer           Producer
	eventsTopic        string
	notificationsTopic string
	generatePNR        func() string
	pnrMaxAttempts     int
	log                *logger.Logger
}

type CreateBookingInput struct {
	UserID      int64 `json:"user_id"`
	FlightID    int64 `json:"flight_id"`
	AmountCents int64 `json:"amount_cents"`
}

type LedgerServiceOption func(*LedgerService)

func WithPNRGenerator(generate func() string) LedgerServiceOption {
	return func(s *LedgerService) {
		s.generatePNR = generate
	}
}

func WithPNRMaxAttempts(n int) LedgerServiceOption {
	return func(s *LedgerService) {
		s.pnrMaxAttempts = n
	}
}

// WithNotificationsTopic mirrors every booking event onto a second topic
// consumed by the notification worker.
func WithNotificationsTopic(topic string) LedgerServiceOption {
	return func(s *LedgerService) {
		s.notificationsTopic = topic
	}
}

func WithLogger(log *logger.Logger) LedgerServiceOption {
	return func(s *LedgerService) {
		s.log = log
	}
}

func NewLedgerService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	cache Cache,
	producer Producer,
	eventsTopic string,
	opts ...LedgerServiceOption,
) *LedgerService {
	service := &LedgerService{
		bookings:       bookings,
		flights:        flights,
		cache:          cache,
		producer:       producer,
		eventsTopic:    eventsTopic,
		generatePNR:    pnr.Generate,
		pnrMaxAttempts: 5,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking books one seat on the flight. The availability check here is
// advisory; the repository re-counts active bookings against capacity inside
// the insert transaction, so concurrent callers cannot oversell the flight.
func (s *LedgerService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.UserID <= 0 {
		return nil, domain.NewValidationError("user_id", "must be a positive number")
	}
	if input.AmountCents <= 0 {
		return nil, domain.NewValidationError("amount_cents", "must be a positive number")
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	if flight.AvailableSeats <= 0 {
		return nil, domain.ErrNoSeats
	}

	code, err := s.uniquePNR(ctx)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		UserID:        input.UserID,
		FlightID:      flight.ID,
		PNR:           code,
		FromAirportID: flight.FromAirportID,
		ToAirportID:   flight.ToAirportID,
		DepartureTime: flight.DepartureTime,
		ArrivalTime:   flight.ArrivalTime,
		AmountCents:   input.AmountCents,
		PaymentStatus: domain.PaymentStatusPending,
		Status:        domain.BookingStatusPending,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

func (s *LedgerService) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *LedgerService) GetBookingByPNR(ctx context.Context, code string) (*domain.Booking, error) {
	normalized := pnr.Normalize(code)
	if !pnr.IsValid(normalized) {
		return nil, domain.NewValidationError("pnr", "must be 6 to 12 alphanumeric characters")
	}
	return s.bookings.GetByPNR(ctx, normalized)
}

func (s *LedgerService) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// UpdateBookingStatus treats status assignment as a set operation rather
// than a strict state-machine edge check: setting the current status again
// is an accepted no-op, Cancelled is terminal, and Confirmed is never
// downgraded back to Pending.
func (s *LedgerService) UpdateBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status == status {
		return current, nil
	}
	if current.Status == domain.BookingStatusCancelled {
		return current, nil
	}
	if current.Status == domain.BookingStatusConfirmed && status == domain.BookingStatusPending {
		return current, nil
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	// Occupancy changes only when a booking leaves the active set.
	if current.Active() != updated.Active() {
		s.invalidate(ctx)
	}
	switch status {
	case domain.BookingStatusConfirmed:
		s.publish(ctx, kafka.EventBookingConfirmed, updated)
	case domain.BookingStatusCancelled:
		s.publish(ctx, kafka.EventBookingCancelled, updated)
	}
	return updated, nil
}

func (s *LedgerService) ConfirmBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.UpdateBookingStatus(ctx, id, domain.BookingStatusConfirmed)
}

func (s *LedgerService) CancelBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.UpdateBookingStatus(ctx, id, domain.BookingStatusCancelled)
}

// UpdatePaymentStatus is an unconditional overwrite, independent of the
// booking status.
func (s *LedgerService) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Booking, error) {
	return s.bookings.UpdatePaymentStatus(ctx, id, status)
}

// AvailableSeats is always re-derived: capacity minus the count of active
// bookings, clamped at zero.
func (s *LedgerService) AvailableSeats(ctx context.Context, flightID int64) (int, error) {
	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return 0, err
	}
	active, err := s.bookings.CountActive(ctx, flightID)
	if err != nil {
		return 0, err
	}
	seats := flight.SeatCapacity - active
	if seats < 0 {
		seats = 0
	}
	return seats, nil
}

// CancelStalePendingPayments cancels bookings whose payment has stayed
// Pending past the TTL. Run periodically by the worker.
func (s *LedgerService) CancelStalePendingPayments(ctx context.Context, olderThan time.Duration) ([]domain.Booking, error) {
	deadline := time.Now().Add(-olderThan)
	stale, err := s.bookings.ListPaymentPendingBefore(ctx, deadline)
	if err != nil {
		return nil, err
	}

	cancelled := make([]domain.Booking, 0, len(stale))
	for _, b := range stale {
		updated, err := s.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusCancelled)
		if err != nil {
			s.warnf("cancel stale booking %d: %v", b.ID, err)
			continue
		}
		cancelled = append(cancelled, *updated)
	}
	return cancelled, nil
}

// uniquePNR draws candidates until one is absent from storage. Generation
// alone is not trusted for uniqueness; the check against storage is what
// enforces it, and the unique index backstops the remaining race.
func (s *LedgerService) uniquePNR(ctx context.Context) (string, error) {
	for i := 0; i < s.pnrMaxAttempts; i++ {
		code := s.generatePNR()
		exists, err := s.bookings.PNRExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: pnr generation exhausted after %d attempts", domain.ErrDuplicateCode, s.pnrMaxAttempts)
}

func (s *LedgerService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.warnf("invalidate flights cache: %v", err)
	}
}

func (s *LedgerService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.eventsTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:          eventType,
		BookingID:     booking.ID,
		PNR:           booking.PNR,
		UserID:        booking.UserID,
		FlightID:      booking.FlightID,
		Status:        string(booking.Status),
		PaymentStatus: string(booking.PaymentStatus),
		AmountCents:   booking.AmountCents,
		OccurredAt:    time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.eventsTopic, booking.PNR, event); err != nil {
		s.warnf("publish %s for booking %s: %v", eventType, booking.PNR, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.PNR, event); err != nil {
			s.warnf("publish notification for booking %s: %v", booking.PNR, err)
		}
	}
}

func (s *LedgerService) warnf(format string, args ...interface{}) {
	if s.log != nil {
		s.log.Warnf("LEDGER", format, args...)
	}
}

var _ LedgerUseCase = (*LedgerService)(nil)
