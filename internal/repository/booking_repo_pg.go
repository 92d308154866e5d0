package repository

import (
	"context"
	"time"

	"flightdesk/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Booking, error)
	CountActive(ctx context.Context, flightID int64) (int, error)
	PNRExists(ctx context.Context, pnr string) (bool, error)
	ListPaymentPendingBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, user_id, flight_id, pnr, from_airport_id, to_airport_id, departure_time, arrival_time,
	amount_cents, payment_status, status, created_at, updated_at`

// Create inserts the booking only if the flight still has a free seat. The
// flight row is locked for the duration of the transaction, active bookings
// are re-counted against capacity, and the insert happens inside the same
// transaction, so two concurrent callers cannot both take the last seat.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return wrap("create booking", err)
	}
	defer tx.Rollback(ctx)

	var capacity int
	if err := tx.QueryRow(ctx, `SELECT seat_capacity FROM flights WHERE id=$1 FOR UPDATE`, booking.FlightID).
		Scan(&capacity); err != nil {
		return wrap("create booking", err)
	}

	var active int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM bookings WHERE flight_id=$1 AND status IN ('PENDING','CONFIRMED')`,
		booking.FlightID).Scan(&active); err != nil {
		return wrap("create booking", err)
	}
	if capacity-active <= 0 {
		return domain.ErrNoSeats
	}

	if err := tx.QueryRow(ctx, `INSERT INTO bookings (user_id, flight_id, pnr, from_airport_id, to_airport_id, departure_time, arrival_time, amount_cents, payment_status, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`,
		booking.UserID, booking.FlightID, booking.PNR, booking.FromAirportID, booking.ToAirportID,
		booking.DepartureTime, booking.ArrivalTime, booking.AmountCents, booking.PaymentStatus, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return wrap("create booking", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return wrap("create booking", err)
	}
	return nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		return nil, wrap("get booking", err)
	}
	return &b, nil
}

func (r *PGBookingRepository) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE pnr=$1`, pnr)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		return nil, wrap("get booking by pnr", err)
	}
	return &b, nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, wrap("list bookings by user", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, wrap("list bookings by user", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list bookings by user", err)
	}
	return bookings, nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 RETURNING `+bookingColumns, status, id)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		return nil, wrap("update booking status", err)
	}
	return &b, nil
}

func (r *PGBookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET payment_status=$1, updated_at=now() WHERE id=$2 RETURNING `+bookingColumns, status, id)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		return nil, wrap("update payment status", err)
	}
	return &b, nil
}

func (r *PGBookingRepository) CountActive(ctx context.Context, flightID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings WHERE flight_id=$1 AND status IN ('PENDING','CONFIRMED')`, flightID).
		Scan(&count)
	if err != nil {
		return 0, wrap("count active bookings", err)
	}
	return count, nil
}

func (r *PGBookingRepository) PNRExists(ctx context.Context, pnr string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE pnr=$1)`, pnr).Scan(&exists)
	if err != nil {
		return false, wrap("pnr exists", err)
	}
	return exists, nil
}

// ListPaymentPendingBefore returns active bookings created before the
// deadline whose payment is still pending; the worker sweep cancels them.
func (r *PGBookingRepository) ListPaymentPendingBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE payment_status='PENDING' AND status='PENDING' AND created_at <= $1`, deadline)
	if err != nil {
		return nil, wrap("list stale pending bookings", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, wrap("list stale pending bookings", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list stale pending bookings", err)
	}
	return bookings, nil
}

// Delete removes the row outright. Normal flows cancel instead; this exists
// for the administrative purge path only.
func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return wrap("delete booking", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBooking(row rowScanner, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.UserID, &b.FlightID, &b.PNR, &b.FromAirportID, &b.ToAirportID,
		&b.DepartureTime, &b.ArrivalTime, &b.AmountCents, &b.PaymentStatus, &b.Status, &b.CreatedAt, &b.UpdatedAt)
}

var _ BookingRepository = (*PGBookingRepository)(nil)
