package repository

import (
	"context"

	"flightdesk/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AirportRepository interface {
	Create(ctx context.Context, airport *domain.Airport) error
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	List(ctx context.Context) ([]domain.Airport, error)
	Update(ctx context.Context, airport *domain.Airport) error
	Delete(ctx context.Context, id int64) error
	CodeExists(ctx context.Context, code string, excludeID int64) (bool, error)
}

type PGAirportRepository struct {
	db *pgxpool.Pool
}

func NewAirportRepository(db *pgxpool.Pool) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airports (code, name, city, country) VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		airport.Code, airport.Name, airport.City, airport.Country).
		Scan(&airport.ID, &airport.CreatedAt, &airport.UpdatedAt)
	return wrap("create airport", err)
}

func (r *PGAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	row := r.db.QueryRow(ctx, `SELECT id, code, name, city, country, created_at, updated_at FROM airports WHERE id=$1`, id)
	var a domain.Airport
	if err := row.Scan(&a.ID, &a.Code, &a.Name, &a.City, &a.Country, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, wrap("get airport", err)
	}
	return &a, nil
}

func (r *PGAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT id, code, name, city, country, created_at, updated_at FROM airports ORDER BY code`)
	if err != nil {
		return nil, wrap("list airports", err)
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.City, &a.Country, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, wrap("list airports", err)
		}
		airports = append(airports, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list airports", err)
	}
	return airports, nil
}

func (r *PGAirportRepository) Update(ctx context.Context, airport *domain.Airport) error {
	res, err := r.db.Exec(ctx, `UPDATE airports SET code=$1, name=$2, city=$3, country=$4, updated_at=now() WHERE id=$5`,
		airport.Code, airport.Name, airport.City, airport.Country, airport.ID)
	if err != nil {
		return wrap("update airport", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGAirportRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM airports WHERE id=$1`, id)
	if err != nil {
		return wrap("delete airport", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGAirportRepository) CodeExists(ctx context.Context, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM airports WHERE code=$1 AND id<>$2)`, code, excludeID).Scan(&exists)
	if err != nil {
		return false, wrap("airport code exists", err)
	}
	return exists, nil
}

var _ AirportRepository = (*PGAirportRepository)(nil)
