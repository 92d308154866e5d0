package repository

import (
	"context"

	"flightdesk/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OwnerRepository interface {
	Create(ctx context.Context, owner *domain.Owner) error
	GetByID(ctx context.Context, id int64) (*domain.Owner, error)
	GetByCode(ctx context.Context, code string) (*domain.Owner, error)
	List(ctx context.Context) ([]domain.Owner, error)
	Update(ctx context.Context, owner *domain.Owner) error
	CodeExists(ctx context.Context, code string, excludeID int64) (bool, error)
}

type PGOwnerRepository struct {
	db *pgxpool.Pool
}

func NewOwnerRepository(db *pgxpool.Pool) OwnerRepository {
	return &PGOwnerRepository{db: db}
}

// flight_count is derived per read; owners never store a counter.
const ownerColumns = `o.id, o.company_name, o.company_code, o.contact_email, o.contact_phone, o.password_hash,
	(SELECT count(*) FROM flights f WHERE f.owner_id = o.id) AS flight_count,
	o.created_at, o.updated_at`

func (r *PGOwnerRepository) Create(ctx context.Context, owner *domain.Owner) error {
	err := r.db.QueryRow(ctx, `INSERT INTO owners (company_name, company_code, contact_email, contact_phone, password_hash)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`,
		owner.CompanyName, owner.CompanyCode, owner.ContactEmail, owner.ContactPhone, owner.PasswordHash).
		Scan(&owner.ID, &owner.CreatedAt, &owner.UpdatedAt)
	return wrap("create owner", err)
}

func (r *PGOwnerRepository) GetByID(ctx context.Context, id int64) (*domain.Owner, error) {
	row := r.db.QueryRow(ctx, `SELECT `+ownerColumns+` FROM owners o WHERE o.id=$1`, id)
	var o domain.Owner
	if err := scanOwner(row, &o); err != nil {
		return nil, wrap("get owner", err)
	}
	return &o, nil
}

func (r *PGOwnerRepository) GetByCode(ctx context.Context, code string) (*domain.Owner, error) {
	row := r.db.QueryRow(ctx, `SELECT `+ownerColumns+` FROM owners o WHERE o.company_code=$1`, code)
	var o domain.Owner
	if err := scanOwner(row, &o); err != nil {
		return nil, wrap("get owner by code", err)
	}
	return &o, nil
}

func (r *PGOwnerRepository) List(ctx context.Context) ([]domain.Owner, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ownerColumns+` FROM owners o ORDER BY o.company_code`)
	if err != nil {
		return nil, wrap("list owners", err)
	}
	defer rows.Close()

	owners := make([]domain.Owner, 0)
	for rows.Next() {
		var o domain.Owner
		if err := scanOwner(rows, &o); err != nil {
			return nil, wrap("list owners", err)
		}
		owners = append(owners, o)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list owners", err)
	}
	return owners, nil
}

func (r *PGOwnerRepository) Update(ctx context.Context, owner *domain.Owner) error {
	res, err := r.db.Exec(ctx, `UPDATE owners SET company_name=$1, company_code=$2, contact_email=$3, contact_phone=$4, updated_at=now() WHERE id=$5`,
		owner.CompanyName, owner.CompanyCode, owner.ContactEmail, owner.ContactPhone, owner.ID)
	if err != nil {
		return wrap("update owner", err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGOwnerRepository) CodeExists(ctx context.Context, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM owners WHERE company_code=$1 AND id<>$2)`, code, excludeID).Scan(&exists)
	if err != nil {
		return false, wrap("owner code exists", err)
	}
	return exists, nil
}

func scanOwner(row rowScanner, o *domain.Owner) error {
	return row.Scan(&o.ID, &o.CompanyName, &o.CompanyCode, &o.ContactEmail, &o.ContactPhone, &o.PasswordHash,
		&o.FlightCount, &o.CreatedAt, &o.UpdatedAt)
}

var _ OwnerRepository = (*PGOwnerRepository)(nil)
