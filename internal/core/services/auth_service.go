package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
	"github.com/google/uuid"
)

const (
	DevUserID    = "dev-user-123"
	devUserEmail = "dev@fiftytwo.local"
	devUserName  = "Dev User"
)

type AuthService struct {
	repo domain.UserRepository
}

func NewAuthService(repo domain.UserRepository) *AuthService {
	return &AuthService{
		repo: repo,
	}
}

type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

type LoginInput struct {
	Email    string
	Password string
}

type UpdateProfileInput struct {
	UserID string
	Name   string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	id := uuid.NewString()
	user, err := domain.NewUser(id, input.Email)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != "" {
		if err := user.Rename(input.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: failed to create user: %w", err)
	}

	return user, nil
}

// Login checks the credentials and returns the matching user. Unknown emails
// and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth service: failed to load user: %w", err)
	}

	if err := user.CheckPassword(input.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// DevLogin makes sure the fixed development user exists and returns it.
func (s *AuthService) DevLogin(ctx context.Context) (*domain.User, error) {
	user, err := domain.NewUser(DevUserID, devUserEmail)
	if err != nil {
		return nil, err
	}
	user.DisplayName = devUserName

	if err := s.repo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: failed to upsert dev user: %w", err)
	}

	return s.repo.GetByID(ctx, DevUserID)
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := user.Rename(input.Name); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateDisplayName(ctx, user); err != nil {
		return nil, fmt.Errorf("auth service: failed to update profile: %w", err)
	}

	return user, nil
}
