package owners

import (
	"context"
	"testing"

	"flightdesk/internal/auth"
	"flightdesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOwnerRepository struct {
	mock.Mock
}

func (m *MockOwnerRepository) Create(ctx context.Context, owner *domain.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockOwnerRepository) GetByID(ctx context.Context, id int64) (*domain.Owner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Owner), args.Error(1)
}

func (m *MockOwnerRepository) GetByCode(ctx context.Context, code string) (*domain.Owner, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Owner), args.Error(1)
}

func (m *MockOwnerRepository) List(ctx context.Context) ([]domain.Owner, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Owner), args.Error(1)
}

func (m *MockOwnerRepository) Update(ctx context.Context, owner *domain.Owner) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

func (m *MockOwnerRepository) CodeExists(ctx context.Context, code string, excludeID int64) (bool, error) {
	args := m.Called(ctx, code, excludeID)
	return args.Bool(0), args.Error(1)
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		CompanyName:  "Polar Air",
		CompanyCode:  "pol",
		ContactEmail: "ops@polarair.example",
		ContactPhone: "+1 (555) 010-2030",
		Password:     "letmein-please",
	}
}

func TestOwnerService_Register_Success(t *testing.T) {
	mockRepo := &MockOwnerRepository{}
	service := NewOwnerService(mockRepo)

	ctx := context.Background()
	mockRepo.On("CodeExists", ctx, "POL", int64(0)).Return(false, nil).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Owner")).Return(nil).Once()

	owner, err := service.Register(ctx, validRegisterInput())

	require.NoError(t, err)
	assert.Equal(t, "POL", owner.CompanyCode)
	assert.True(t, auth.CheckPassword(owner.PasswordHash, "letmein-please"))
	mockRepo.AssertExpectations(t)
}

func TestOwnerService_Register_DuplicateCode(t *testing.T) {
	mockRepo := &MockOwnerRepository{}
	service := NewOwnerService(mockRepo)

	ctx := context.Background()
	mockRepo.On("CodeExists", ctx, "POL", int64(0)).Return(true, nil).Once()

	owner, err := service.Register(ctx, validRegisterInput())

	assert.Nil(t, owner)
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestOwnerService_Register_ValidationErrors(t *testing.T) {
	mockRepo := &MockOwnerRepository{}
	mockRepo.On("CodeExists", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	service := NewOwnerService(mockRepo)
	ctx := context.Background()

	testCases := []struct {
		name   string
		mutate func(*RegisterInput)
		field  string
	}{
		{
			name:   "company code too long",
			mutate: func(in *RegisterInput) { in.CompanyCode = "TOOLONGCODE" },
			field:  "company_code",
		},
		{
			name:   "company code with punctuation",
			mutate: func(in *RegisterInput) { in.CompanyCode = "P-L" },
			field:  "company_code",
		},
		{
			name:   "empty name",
			mutate: func(in *RegisterInput) { in.CompanyName = " " },
			field:  "company_name",
		},
		{
			name:   "bad email",
			mutate: func(in *RegisterInput) { in.ContactEmail = "not-an-email" },
			field:  "contact_email",
		},
		{
			name:   "bad phone",
			mutate: func(in *RegisterInput) { in.ContactPhone = "12" },
			field:  "contact_phone",
		},
		{
			name:   "short password",
			mutate: func(in *RegisterInput) { in.Password = "short" },
			field:  "password",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRegisterInput()
			tc.mutate(&input)

			owner, err := service.Register(ctx, input)
			assert.Nil(t, owner)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestOwnerService_Update_KeepsPasswordHash(t *testing.T) {
	mockRepo := &MockOwnerRepository{}
	service := NewOwnerService(mockRepo)

	ctx := context.Background()
	stored := &domain.Owner{ID: 3, CompanyCode: "POL", PasswordHash: "hash-stays"}

	mockRepo.On("GetByID", ctx, int64(3)).Return(stored, nil)
	// The owner itself is excluded from the uniqueness probe.
	mockRepo.On("CodeExists", ctx, "POL", int64(3)).Return(false, nil).Once()
	mockRepo.On("Update", ctx, mock.MatchedBy(func(o *domain.Owner) bool {
		return o.PasswordHash == "hash-stays"
	})).Return(nil).Once()

	_, err := service.Update(ctx, 3, UpdateInput{
		CompanyName:  "Polar Air",
		CompanyCode:  "POL",
		ContactEmail: "ops@polarair.example",
		ContactPhone: "+15550102030",
	})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
