package repository

import (
	"context"

	"flightdesk/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const userColumns = `id, name, email, phone, date_of_birth, password_hash, role, created_at, updated_at`

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `INSERT INTO users (name, email, phone, date_of_birth, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`,
		user.Name, user.Email, user.Phone, user.DateOfBirth, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return wrap("create user", err)
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	var u domain.User
	if err := scanUser(row, &u); err != nil {
		return nil, wrap("get user", err)
	}
	return &u, nil
}

func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
	var u domain.User
	if err := scanUser(row, &u); err != nil {
		return nil, wrap("get user by email", err)
	}
	return &u, nil
}

func scanUser(row rowScanner, u *domain.User) error {
	return row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.DateOfBirth, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
}

var _ UserRepository = (*PGUserRepository)(nil)
