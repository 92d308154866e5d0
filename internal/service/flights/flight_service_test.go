package flights

import (
	"context"
	"testing"
	"time"

	"flightdesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Flight, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightRepository) CodeExists(ctx context.Context, ownerID int64, code string, excludeID int64) (bool, error) {
	args := m.Called(ctx, ownerID, code, excludeID)
	return args.Bool(0), args.Error(1)
}

type MockAirportRepository struct {
	mock.Mock
}

func (m *MockAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	args := m.Called(ctx, airport)
	return args.Error(0)
}

func (m *MockAirportRepository) GetByID(ctx context.Context, id int64) (*domain.Airport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *MockAirportRepository) Update(ctx context.Context, airport *domain.Airport) error {
	args := m.Called(ctx, airport)
	return args.Error(0)
}

func (m *MockAirportRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAirportRepository) CodeExists(ctx context.Context, code string, excludeID int64) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func validInput() FlightInput {
	return FlightInput{
		OwnerID:       1,
		Code:          "fd-104",
		Name:          "Morning hop",
		SeatCapacity:  120,
		FromAirportID: 10,
		ToAirportID:   11,
		DepartureTime: time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC),
		ArrivalTime:   time.Date(2026, 10, 1, 10, 30, 0, 0, time.UTC),
		PriceCents:    19900,
	}
}

func TestFlightService_Create_NormalizesCode(t *testing.T) {
	mockFlightRepo := &MockFlightRepository{}
	mockAirportRepo := &MockAirportRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockFlightRepo, mockAirportRepo, mockCache)

	ctx := context.Background()
	mockAirportRepo.On("GetByID", ctx, int64(10)).Return(&domain.Airport{ID: 10}, nil).Once()
	mockAirportRepo.On("GetByID", ctx, int64(11)).Return(&domain.Airport{ID: 11}, nil).Once()
	mockFlightRepo.On("CodeExists", ctx, int64(1), "FD-104", int64(0)).Return(false, nil).Once()
	mockFlightRepo.On("Create", ctx, mock.AnythingOfType("*domain.Flight")).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	flight, err := service.Create(ctx, validInput())

	require.NoError(t, err)
	assert.Equal(t, "FD-104", flight.Code)
	mockFlightRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_Create_DuplicateCode(t *testing.T) {
	mockFlightRepo := &MockFlightRepository{}
	mockAirportRepo := &MockAirportRepository{}

	service := NewFlightService(mockFlightRepo, mockAirportRepo, nil)

	ctx := context.Background()
	mockAirportRepo.On("GetByID", ctx, mock.Anything).Return(&domain.Airport{}, nil).Twice()
	mockFlightRepo.On("CodeExists", ctx, int64(1), "FD-104", int64(0)).Return(true, nil).Once()

	flight, err := service.Create(ctx, validInput())

	assert.Nil(t, flight)
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
	mockFlightRepo.AssertNotCalled(t, "Create")
}

func TestFlightService_Create_ValidationErrors(t *testing.T) {
	service := NewFlightService(&MockFlightRepository{}, &MockAirportRepository{}, nil)
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*FlightInput)
		field  string
	}{
		{
			name:   "empty code",
			mutate: func(in *FlightInput) { in.Code = "  " },
			field:  "code",
		},
		{
			name:   "zero capacity",
			mutate: func(in *FlightInput) { in.SeatCapacity = 0 },
			field:  "seat_capacity",
		},
		{
			name:   "negative price",
			mutate: func(in *FlightInput) { in.PriceCents = -1 },
			field:  "price_cents",
		},
		{
			name:   "same airports",
			mutate: func(in *FlightInput) { in.ToAirportID = in.FromAirportID },
			field:  "to_airport_id",
		},
		{
			name:   "arrival before departure",
			mutate: func(in *FlightInput) { in.ArrivalTime = in.DepartureTime.Add(-time.Hour) },
			field:  "arrival_time",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			flight, err := service.Create(ctx, input)
			assert.Nil(t, flight)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestFlightService_Update_UnchangedCodeIsNotACollision(t *testing.T) {
	mockFlightRepo := &MockFlightRepository{}
	mockAirportRepo := &MockAirportRepository{}

	service := NewFlightService(mockFlightRepo, mockAirportRepo, nil)

	ctx := context.Background()
	stored := &domain.Flight{ID: 5, OwnerID: 1, Code: "FD-104"}

	mockFlightRepo.On("GetByID", ctx, int64(5)).Return(stored, nil)
	mockAirportRepo.On("GetByID", ctx, mock.Anything).Return(&domain.Airport{}, nil).Twice()
	// The flight itself is excluded from the uniqueness probe.
	mockFlightRepo.On("CodeExists", ctx, int64(1), "FD-104", int64(5)).Return(false, nil).Once()
	mockFlightRepo.On("Update", ctx, mock.AnythingOfType("*domain.Flight")).Return(nil).Once()

	flight, err := service.Update(ctx, 5, validInput())

	require.NoError(t, err)
	assert.Equal(t, "FD-104", flight.Code)
	mockFlightRepo.AssertExpectations(t)
}

func TestFlightService_Update_OwnerMismatch(t *testing.T) {
	mockFlightRepo := &MockFlightRepository{}
	service := NewFlightService(mockFlightRepo, &MockAirportRepository{}, nil)

	ctx := context.Background()
	stored := &domain.Flight{ID: 5, OwnerID: 2, Code: "FD-104"}
	mockFlightRepo.On("GetByID", ctx, int64(5)).Return(stored, nil).Once()

	flight, err := service.Update(ctx, 5, validInput())

	assert.Nil(t, flight)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockFlightRepo.AssertNotCalled(t, "Update")
}

func TestFlightService_Delete_BlockedByActiveBookings(t *testing.T) {
	mockFlightRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockFlightRepo, &MockAirportRepository{}, mockCache)

	ctx := context.Background()
	stored := &domain.Flight{ID: 5, OwnerID: 1}
	mockFlightRepo.On("GetByID", ctx, int64(5)).Return(stored, nil).Once()
	mockFlightRepo.On("Delete", ctx, int64(5)).Return(domain.ErrActiveBookings).Once()

	err := service.Delete(ctx, 1, 5)

	assert.ErrorIs(t, err, domain.ErrActiveBookings)
	mockCache.AssertNotCalled(t, "InvalidateFlights")
}

func TestFlightService_Delete_OwnerMismatch(t *testing.T) {
	mockFlightRepo := &MockFlightRepository{}
	service := NewFlightService(mockFlightRepo, &MockAirportRepository{}, nil)

	ctx := context.Background()
	stored := &domain.Flight{ID: 5, OwnerID: 2}
	mockFlightRepo.On("GetByID", ctx, int64(5)).Return(stored, nil).Once()

	err := service.Delete(ctx, 1, 5)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockFlightRepo.AssertNotCalled(t, "Delete")
}

func TestFlightService_List_UsesCache(t *testing.T) {
	mockFlightRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockFlightRepo, &MockAirportRepository{}, mockCache)

	ctx := context.Background()
	cached := []domain.Flight{{ID: 1, Code: "FD-104"}}
	mockCache.On("GetFlights", ctx).Return(cached, nil).Once()

	flights, err := service.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, cached, flights)
	mockFlightRepo.AssertNotCalled(t, "List")
}

func TestFlightService_List_FillsCacheOnMiss(t *testing.T) {
	mockFlightRepo := &MockFlightRepository{}
	mockCache := &MockCache{}
	service := NewFlightService(mockFlightRepo, &MockAirportRepository{}, mockCache)

	ctx := context.Background()
	stored := []domain.Flight{{ID: 1, Code: "FD-104"}}
	mockCache.On("GetFlights", ctx).Return(nil, nil).Once()
	mockFlightRepo.On("List", ctx).Return(stored, nil).Once()
	mockCache.On("SetFlights", ctx, stored).Return(nil).Once()

	flights, err := service.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, stored, flights)
	mockCache.AssertExpectations(t)
}
