package users

import (
	"context"
	"errors"
	"time"

	"flightdesk/internal/auth"
	"flightdesk/internal/domain"
	"flightdesk/internal/repository"
	"flightdesk/internal/validate"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*auth.Session, error)
	Logout(ctx context.Context, token string) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Sessions is satisfied by auth.SessionStore.
type Sessions interface {
	Create(ctx context.Context, userID int64, role domain.Role) (*auth.Session, error)
	Delete(ctx context.Context, token string) error
}

type UserService struct {
	users    repository.UserRepository
	sessions Sessions
}

type RegisterInput struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Password    string    `json:"password"`
}

func NewUserService(users repository.UserRepository, sessions Sessions) *UserService {
	return &UserService{users: users, sessions: sessions}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if ok, msg := validate.NonEmpty(input.Name); !ok {
		return nil, domain.NewValidationError("name", msg)
	}
	if ok, msg := validate.Email(input.Email); !ok {
		return nil, domain.NewValidationError("email", msg)
	}
	if ok, msg := validate.Phone(input.Phone); !ok {
		return nil, domain.NewValidationError("phone", msg)
	}
	if ok, msg := validate.DateOfBirth(input.DateOfBirth, time.Now()); !ok {
		return nil, domain.NewValidationError("date_of_birth", msg)
	}
	if ok, msg := validate.MinLen(input.Password, 8); !ok {
		return nil, domain.NewValidationError("password", msg)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		DateOfBirth:  input.DateOfBirth,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credential and issues an explicit session. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.sessions.Create(ctx, user.ID, user.Role)
}

func (s *UserService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

var _ UserUseCase = (*UserService)(nil)
