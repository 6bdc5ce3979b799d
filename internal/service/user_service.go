package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"hotel-booking/internal/auth"
	"hotel-booking/internal/domain"
)

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
}

type userService struct {
	store  *CredentialStore
	hasher auth.PasswordHasher

	decoyOnce sync.Once
	decoyHash string
}

func NewUserService(store *CredentialStore, hasher auth.PasswordHasher) UserService {
	return &userService{
		store:  store,
		hasher: hasher,
	}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if err := auth.CheckPasswordLength(in.Password); err != nil {
		return nil, err
	}

	_, err := s.store.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	user := &domain.User{
		Email:     in.Email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
	}
	user.SetPassword(in.Password)

	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// compare against a throwaway hash so unknown emails cost the same as wrong passwords
			_ = s.hasher.Verify(s.decoy(), password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := s.hasher.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if len(next) < 6 {
		return &domain.ValidationError{Fields: []domain.FieldError{{
			Field:   "password",
			Message: "Password with 6 or more characters required",
		}}}
	}
	if err := auth.CheckPasswordLength(next); err != nil {
		return err
	}

	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Verify(user.PasswordHash, current); err != nil {
		return err
	}

	user.SetPassword(next)
	return s.store.Save(ctx, user)
}

func (s *userService) decoy() string {
	s.decoyOnce.Do(func() {
		s.decoyHash, _ = s.hasher.Hash("decoy-password-never-matches")
	})
	return s.decoyHash
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
