package service

import (
	"context"
	"fmt"

	"hotel-booking/internal/auth"
	"hotel-booking/internal/domain"
	"hotel-booking/internal/repository"
)

// CredentialStore persists users and owns the hash-on-write rule: a password
// staged with SetPassword is hashed right before it reaches the repository and
// never re-hashed afterwards.
type CredentialStore struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
}

func NewCredentialStore(users repository.UserRepository, hasher auth.PasswordHasher) *CredentialStore {
	return &CredentialStore{users: users, hasher: hasher}
}

func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

func (s *CredentialStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *CredentialStore) Create(ctx context.Context, user *domain.User) error {
	if err := s.hashPending(user); err != nil {
		return err
	}
	if user.PasswordHash == "" {
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	return s.users.Create(ctx, user)
}

func (s *CredentialStore) Save(ctx context.Context, user *domain.User) error {
	if err := s.hashPending(user); err != nil {
		return err
	}
	return s.users.Update(ctx, user)
}

func (s *CredentialStore) hashPending(user *domain.User) error {
	plain, changed := user.PendingPassword()
	if !changed {
		return nil
	}
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return err
	}
	user.ApplyPasswordHash(hash)
	return nil
}
