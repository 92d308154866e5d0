package owners

import (
	"context"

	"flightdesk/internal/auth"
	"flightdesk/internal/domain"
	"flightdesk/internal/repository"
	"flightdesk/internal/validate"
)

type OwnerUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Owner, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*domain.Owner, error)
	GetByID(ctx context.Context, id int64) (*domain.Owner, error)
	List(ctx context.Context) ([]domain.Owner, error)
}

type OwnerService struct {
	owners repository.OwnerRepository
}

type RegisterInput struct {
	CompanyName  string `json:"company_name"`
	CompanyCode  string `json:"company_code"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Password     string `json:"password"`
}

type UpdateInput struct {
	CompanyName  string `json:"company_name"`
	CompanyCode  string `json:"company_code"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

func NewOwnerService(owners repository.OwnerRepository) *OwnerService {
	return &OwnerService{owners: owners}
}

func (s *OwnerService) Register(ctx context.Context, input RegisterInput) (*domain.Owner, error) {
	code, err := s.checkCode(ctx, input.CompanyCode, 0)
	if err != nil {
		return nil, err
	}
	if ok, msg := validate.NonEmpty(input.CompanyName); !ok {
		return nil, domain.NewValidationError("company_name", msg)
	}
	if ok, msg := validate.Email(input.ContactEmail); !ok {
		return nil, domain.NewValidationError("contact_email", msg)
	}
	if ok, msg := validate.Phone(input.ContactPhone); !ok {
		return nil, domain.NewValidationError("contact_phone", msg)
	}
	if ok, msg := validate.MinLen(input.Password, 8); !ok {
		return nil, domain.NewValidationError("password", msg)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	owner := &domain.Owner{
		CompanyName:  input.CompanyName,
		CompanyCode:  code,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		PasswordHash: hash,
	}
	if err := s.owners.Create(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

// Update excludes the owner itself from the code uniqueness check, so
// re-saving an unchanged company code never reports a duplicate.
func (s *OwnerService) Update(ctx context.Context, id int64, input UpdateInput) (*domain.Owner, error) {
	current, err := s.owners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	code, err := s.checkCode(ctx, input.CompanyCode, id)
	if err != nil {
		return nil, err
	}
	if ok, msg := validate.NonEmpty(input.CompanyName); !ok {
		return nil, domain.NewValidationError("company_name", msg)
	}

	owner := &domain.Owner{
		ID:           id,
		CompanyName:  input.CompanyName,
		CompanyCode:  code,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		PasswordHash: current.PasswordHash,
	}
	if err := s.owners.Update(ctx, owner); err != nil {
		return nil, err
	}
	return s.owners.GetByID(ctx, id)
}

func (s *OwnerService) GetByID(ctx context.Context, id int64) (*domain.Owner, error) {
	return s.owners.GetByID(ctx, id)
}

func (s *OwnerService) List(ctx context.Context) ([]domain.Owner, error) {
	return s.owners.List(ctx)
}

func (s *OwnerService) checkCode(ctx context.Context, raw string, excludeID int64) (string, error) {
	if ok, msg := validate.CompanyCode(raw); !ok {
		return "", domain.NewValidationError("company_code", msg)
	}
	code := validate.NormalizeCode(raw)
	exists, err := s.owners.CodeExists(ctx, code, excludeID)
	if err != nil {
		return "", err
	}
	if exists {
		return "", domain.ErrDuplicateCode
	}
	return code, nil
}

var _ OwnerUseCase = (*OwnerService)(nil)
