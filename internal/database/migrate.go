package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Identifier uniqueness (airport code, company code, per-owner flight code,
// PNR) is backed by unique indexes, so the service-level existence checks
// can never be raced into a duplicate row.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS airports (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		city TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS airports_code_idx ON airports (code)`,

	`CREATE TABLE IF NOT EXISTS owners (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		company_name TEXT NOT NULL,
		company_code TEXT NOT NULL,
		contact_email TEXT NOT NULL DEFAULT '',
		contact_phone TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS owners_company_code_idx ON owners (company_code)`,

	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		date_of_birth TIMESTAMPTZ NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'USER',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_idx ON users (email)`,

	`CREATE TABLE IF NOT EXISTS flights (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		owner_id BIGINT NOT NULL REFERENCES owners (id),
		code TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		seat_capacity INT NOT NULL CHECK (seat_capacity > 0),
		from_airport_id BIGINT NOT NULL REFERENCES airports (id),
		to_airport_id BIGINT NOT NULL REFERENCES airports (id),
		departure_time TIMESTAMPTZ NOT NULL,
		arrival_time TIMESTAMPTZ NOT NULL,
		price_cents BIGINT NOT NULL CHECK (price_cents > 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (from_airport_id <> to_airport_id),
		CHECK (departure_time < arrival_time)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS flights_owner_code_idx ON flights (owner_id, code)`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users (id),
		flight_id BIGINT NOT NULL REFERENCES flights (id),
		pnr TEXT NOT NULL,
		from_airport_id BIGINT NOT NULL,
		to_airport_id BIGINT NOT NULL,
		departure_time TIMESTAMPTZ NOT NULL,
		arrival_time TIMESTAMPTZ NOT NULL,
		amount_cents BIGINT NOT NULL,
		payment_status TEXT NOT NULL DEFAULT 'PENDING',
		status TEXT NOT NULL DEFAULT 'PENDING',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS bookings_pnr_idx ON bookings (pnr)`,
	`CREATE INDEX IF NOT EXISTS bookings_flight_status_idx ON bookings (flight_id, status)`,
}

// Migrate applies the schema idempotently at startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
