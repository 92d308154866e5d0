package flights

import (
	"context"
	"time"

	"flightdesk/internal/domain"
	"flightdesk/internal/repository"
	"flightdesk/internal/validate"
)

type FlightUseCase interface {
	Create(ctx context.Context, input FlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, ownerID, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Flight, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	flights  repository.FlightRepository
	airports repository.AirportRepository
	cache    Cache
}

type FlightInput struct {
	OwnerID       int64     `json:"owner_id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	SeatCapacity  int       `json:"seat_capacity"`
	FromAirportID int64     `json:"from_airport_id"`
	ToAirportID   int64     `json:"to_airport_id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	PriceCents    int64     `json:"price_cents"`
}

func NewFlightService(flights repository.FlightRepository, airports repository.AirportRepository, cache Cache) *FlightService {
	return &FlightService{flights: flights, airports: airports, cache: cache}
}

func (s *FlightService) Create(ctx context.Context, input FlightInput) (*domain.Flight, error) {
	code, err := s.checkInput(ctx, input, 0)
	if err != nil {
		return nil, err
	}

	flight := &domain.Flight{
		OwnerID:       input.OwnerID,
		Code:          code,
		Name:          input.Name,
		SeatCapacity:  input.SeatCapacity,
		FromAirportID: input.FromAirportID,
		ToAirportID:   input.ToAirportID,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
		PriceCents:    input.PriceCents,
	}
	if err := s.flights.Create(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

// Update is restricted to the owning company; the uniqueness check excludes
// the flight itself so an unchanged code never reports a collision.
func (s *FlightService) Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error) {
	current, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.OwnerID != input.OwnerID {
		return nil, domain.ErrNotFound
	}

	code, err := s.checkInput(ctx, input, id)
	if err != nil {
		return nil, err
	}

	flight := &domain.Flight{
		ID:            id,
		OwnerID:       input.OwnerID,
		Code:          code,
		Name:          input.Name,
		SeatCapacity:  input.SeatCapacity,
		FromAirportID: input.FromAirportID,
		ToAirportID:   input.ToAirportID,
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.ArrivalTime,
		PriceCents:    input.PriceCents,
	}
	if err := s.flights.Update(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return s.flights.GetByID(ctx, id)
}

// Delete blocks while active bookings reference the flight; the repository
// enforces the guard and returns ErrActiveBookings.
func (s *FlightService) Delete(ctx context.Context, ownerID, id int64) error {
	current, err := s.flights.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	if err := s.flights.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.flights.GetByID(ctx, id)
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.flights.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Flight, error) {
	return s.flights.ListByOwner(ctx, ownerID)
}

// checkInput validates the fields the service owns and runs the per-owner
// code uniqueness check. It returns the normalized code.
func (s *FlightService) checkInput(ctx context.Context, input FlightInput, excludeID int64) (string, error) {
	if ok, msg := validate.FlightCode(input.Code); !ok {
		return "", domain.NewValidationError("code", msg)
	}
	if ok, msg := validate.Capacity(input.SeatCapacity); !ok {
		return "", domain.NewValidationError("seat_capacity", msg)
	}
	if ok, msg := validate.PriceCents(input.PriceCents); !ok {
		return "", domain.NewValidationError("price_cents", msg)
	}
	if input.FromAirportID == input.ToAirportID {
		return "", domain.NewValidationError("to_airport_id", "departure and destination airports must differ")
	}
	if !input.DepartureTime.Before(input.ArrivalTime) {
		return "", domain.NewValidationError("arrival_time", "departure must be before arrival")
	}
	if _, err := s.airports.GetByID(ctx, input.FromAirportID); err != nil {
		return "", err
	}
	if _, err := s.airports.GetByID(ctx, input.ToAirportID); err != nil {
		return "", err
	}

	code := validate.NormalizeCode(input.Code)
	exists, err := s.flights.CodeExists(ctx, input.OwnerID, code, excludeID)
	if err != nil {
		return "", err
	}
	if exists {
		return "", domain.ErrDuplicateCode
	}
	return code, nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
