package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hotel-booking/internal/domain"
	"hotel-booking/internal/repository"
	"hotel-booking/internal/storage"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// memUserRepo is an in-memory repository.UserRepository.
type memUserRepo struct {
	mu      sync.Mutex
	byID    map[string]domain.User
	creates int
	updates int

	CreateErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	for _, u := range r.byID {
		if u.Email == user.Email {
			return fmt.Errorf("insert user: %w", domain.ErrDuplicateEmail)
		}
	}
	user.ID = uuid.NewString()
	r.byID[user.ID] = *user
	r.creates++
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[user.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[user.ID] = *user
	r.updates++
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

// memHotelRepo is an in-memory repository.HotelRepository.
type memHotelRepo struct {
	mu     sync.Mutex
	hotels map[string]domain.Hotel
}

func newMemHotelRepo() *memHotelRepo {
	return &memHotelRepo{hotels: map[string]domain.Hotel{}}
}

func (r *memHotelRepo) Create(_ context.Context, hotel *domain.Hotel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	hotel.ID = uuid.NewString()
	r.hotels[hotel.ID] = *hotel
	return nil
}

func (r *memHotelRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Hotel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Hotel, 0)
	for _, h := range r.hotels {
		if h.UserID == ownerID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastUpdated.After(out[j].LastUpdated) })
	return out, nil
}

func (r *memHotelRepo) GetOwned(_ context.Context, id, ownerID string) (*domain.Hotel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hotels[id]
	if !ok || h.UserID != ownerID {
		return nil, domain.ErrNotFound
	}
	return &h, nil
}

func (r *memHotelRepo) UpdateOwned(_ context.Context, hotel *domain.Hotel) (*domain.Hotel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hotels[hotel.ID]
	if !ok || h.UserID != hotel.UserID {
		return nil, domain.ErrNotFound
	}
	r.hotels[hotel.ID] = *hotel
	cp := *hotel
	return &cp, nil
}

func (r *memHotelRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.hotels)
}

// MockUploader is a func-field storage.AssetUploader.
type MockUploader struct {
	UploadFunc func(ctx context.Context, data []byte, mimeType string) (string, error)
}

func (m *MockUploader) Upload(ctx context.Context, data []byte, mimeType string) (string, error) {
	return m.UploadFunc(ctx, data, mimeType)
}

var (
	_ repository.UserRepository  = (*memUserRepo)(nil)
	_ repository.HotelRepository = (*memHotelRepo)(nil)
	_ storage.AssetUploader      = (*MockUploader)(nil)
)
