package http

import (
	"context"

	"hotel-booking/internal/domain"
	"hotel-booking/internal/service"
)

// MockUserService is a func-field service.UserService.
type MockUserService struct {
	RegisterFunc       func(ctx context.Context, in service.RegisterInput) (*domain.User, error)
	AuthenticateFunc   func(ctx context.Context, email, password string) (*domain.User, error)
	GetByIDFunc        func(ctx context.Context, id string) (*domain.User, error)
	ChangePasswordFunc func(ctx context.Context, userID, current, next string) error
}

func (m *MockUserService) Register(ctx context.Context, in service.RegisterInput) (*domain.User, error) {
	return m.RegisterFunc(ctx, in)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return m.AuthenticateFunc(ctx, email, password)
}

func (m *MockUserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	return m.ChangePasswordFunc(ctx, userID, current, next)
}

// MockHotelService is a func-field service.HotelService.
type MockHotelService struct {
	CreateFunc     func(ctx context.Context, ownerID string, in domain.HotelInput, images []domain.Image) (*domain.Hotel, error)
	ListMineFunc   func(ctx context.Context, ownerID string) ([]domain.Hotel, error)
	GetMineFunc    func(ctx context.Context, id, ownerID string) (*domain.Hotel, error)
	UpdateMineFunc func(ctx context.Context, id, ownerID string, in domain.HotelInput, images []domain.Image) (*domain.Hotel, error)
}

func (m *MockHotelService) Create(ctx context.Context, ownerID string, in domain.HotelInput, images []domain.Image) (*domain.Hotel, error) {
	return m.CreateFunc(ctx, ownerID, in, images)
}

func (m *MockHotelService) ListMine(ctx context.Context, ownerID string) ([]domain.Hotel, error) {
	return m.ListMineFunc(ctx, ownerID)
}

func (m *MockHotelService) GetMine(ctx context.Context, id, ownerID string) (*domain.Hotel, error) {
	return m.GetMineFunc(ctx, id, ownerID)
}

func (m *MockHotelService) UpdateMine(ctx context.Context, id, ownerID string, in domain.HotelInput, images []domain.Image) (*domain.Hotel, error) {
	return m.UpdateMineFunc(ctx, id, ownerID, in, images)
}

var (
	_ service.UserService  = (*MockUserService)(nil)
	_ service.HotelService = (*MockHotelService)(nil)
)
