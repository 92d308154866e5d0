package repository

import (
	"context"

	"flightdesk/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Flight, error)
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	CodeExists(ctx context.Context, ownerID int64, code string, excludeID int64) (bool, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

// flightColumns derives available_seats by re-counting active bookings on
// every read; there is no stored counter to drift.
const flightColumns = `f.id, f.owner_id, f.code, f.name, f.seat_capacity, f.from_airport_id, f.to_airport_id,
	f.departure_time, f.arrival_time, f.price_cents,
	f.seat_capacity - (SELECT count(*) FROM bookings b WHERE b.flight_id = f.id AND b.status IN ('PENDING','CONFIRMED')) AS available_seats,
	f.created_at, f.updated_at`

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (owner_id, code, name, seat_capacity, from_airport_id, to_airport_id, departure_time, arrival_time, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		flight.OwnerID, flight.Code, flight.Name, flight.SeatCapacity, flight.FromAirportID, flight.ToAirportID,
		flight.DepartureTime, flight.ArrivalTime, flight.PriceCents).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
	if err != nil {
		return wrap("create flight", err)
	}
	flight.AvailableSeats = flight.SeatCapacity
	return nil
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights f WHERE f.id=$1`, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		return nil, wrap("get flight", err)
	}
	return &f, nil
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights f ORDER BY f.departure_time`)
	if err != nil {
		return nil, wrap("list flights", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, wrap("list flights", err)
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list flights", err)
	}
	return flights, nil
}

func (r *PGFlightRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights f WHERE f.owner_id=$1 ORDER BY f.departure_time`, ownerID)
	if err != nil {
		return nil, wrap("list flights by owner", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, wrap("list flights by owner", err)
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list flights by owner", err)
	}
	return flights, nil
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET code=$1, name=$2, seat_capacity=$3, from_airport_id=$4, to_airport_id=$5,
		departure_time=$6, arrival_time=$7, price_cents=$8, updated_at=now() WHERE id=$9`,
		flight.Code, flight.Name, flight.SeatCapacity, flight.FromAirportID, flight.ToAirportID,
		flight.DepartureTime, flight.ArrivalTime, flight.PriceCents, flight.ID)
	if err != nil {
		return wrap("update flight", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete refuses while active bookings still reference the flight; the
// existence check and the delete run as a single conditional statement.
func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1
		AND NOT EXISTS (SELECT 1 FROM bookings b WHERE b.flight_id=$1 AND b.status IN ('PENDING','CONFIRMED'))`, id)
	if err != nil {
		return wrap("delete flight", err)
	}
	if res.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM flights WHERE id=$1)`, id).Scan(&exists); err != nil {
			return wrap("delete flight", err)
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrActiveBookings
	}
	return nil
}

func (r *PGFlightRepository) CodeExists(ctx context.Context, ownerID int64, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM flights WHERE owner_id=$1 AND code=$2 AND id<>$3)`,
		ownerID, code, excludeID).Scan(&exists)
	if err != nil {
		return false, wrap("flight code exists", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFlight(row rowScanner, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.OwnerID, &f.Code, &f.Name, &f.SeatCapacity, &f.FromAirportID, &f.ToAirportID,
		&f.DepartureTime, &f.ArrivalTime, &f.PriceCents, &f.AvailableSeats, &f.CreatedAt, &f.UpdatedAt)
}

var _ FlightRepository = (*PGFlightRepository)(nil)
