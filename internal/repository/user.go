package repository

import (
	"context"

	"hotel-booking/internal/domain"
)

// UserRepository defines persistence operations for User entities.
// Lookups return domain.ErrNotFound when no user matches and Create returns
// domain.ErrDuplicateEmail when the email is taken.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
