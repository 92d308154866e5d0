package airports

import (
	"context"

	"flightdesk/internal/domain"
	"flightdesk/internal/repository"
	"flightdesk/internal/validate"
)

type AirportUseCase interface {
	Create(ctx context.Context, input AirportInput) (*domain.Airport, error)
	Update(ctx context.Context, id int64, input AirportInput) (*domain.Airport, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Airport, error)
	List(ctx context.Context) ([]domain.Airport, error)
}

type AirportService struct {
	airports repository.AirportRepository
}

type AirportInput struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

func NewAirportService(airports repository.AirportRepository) *AirportService {
	return &AirportService{airports: airports}
}

func (s *AirportService) Create(ctx context.Context, input AirportInput) (*domain.Airport, error) {
	code, err := s.checkInput(ctx, input, 0)
	if err != nil {
		return nil, err
	}
	airport := &domain.Airport{Code: code, Name: input.Name, City: input.City, Country: input.Country}
	if err := s.airports.Create(ctx, airport); err != nil {
		return nil, err
	}
	return airport, nil
}

func (s *AirportService) Update(ctx context.Context, id int64, input AirportInput) (*domain.Airport, error) {
	if _, err := s.airports.GetByID(ctx, id); err != nil {
		return nil, err
	}
	code, err := s.checkInput(ctx, input, id)
	if err != nil {
		return nil, err
	}
	airport := &domain.Airport{ID: id, Code: code, Name: input.Name, City: input.City, Country: input.Country}
	if err := s.airports.Update(ctx, airport); err != nil {
		return nil, err
	}
	return s.airports.GetByID(ctx, id)
}

func (s *AirportService) Delete(ctx context.Context, id int64) error {
	return s.airports.Delete(ctx, id)
}

func (s *AirportService) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	return s.airports.GetByID(ctx, id)
}

func (s *AirportService) List(ctx context.Context) ([]domain.Airport, error) {
	return s.airports.List(ctx)
}

func (s *AirportService) checkInput(ctx context.Context, input AirportInput, excludeID int64) (string, error) {
	if ok, msg := validate.AirportCode(input.Code); !ok {
		return "", domain.NewValidationError("code", msg)
	}
	if ok, msg := validate.NonEmpty(input.Name); !ok {
		return "", domain.NewValidationError("name", msg)
	}

	code := validate.NormalizeCode(input.Code)
	exists, err := s.airports.CodeExists(ctx, code, excludeID)
	if err != nil {
		return "", err
	}
	if exists {
		return "", domain.ErrDuplicateCode
	}
	return code, nil
}

var _ AirportUseCase = (*AirportService)(nil)
