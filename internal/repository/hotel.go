package repository

import (
	"context"

	"hotel-booking/internal/domain"
)

// HotelRepository persists hotels. Every read and write is scoped by the owner id;
// a hotel owned by someone else is reported as domain.ErrNotFound.
type HotelRepository interface {
	Create(ctx context.Context, hotel *domain.Hotel) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Hotel, error)
	GetOwned(ctx context.Context, id, ownerID string) (*domain.Hotel, error)
	// UpdateOwned atomically replaces the editable fields of the hotel matching
	// id and ownerID and returns the stored result.
	UpdateOwned(ctx context.Context, hotel *domain.Hotel) (*domain.Hotel, error)
}
