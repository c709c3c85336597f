package services

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateDisplayName(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()

	t.Run("Success: Should register a valid user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		input := RegisterInput{
			Email:       gofakeit.Email(),
			Password:    "StrongPassword123!",
			DisplayName: "Marta",
		}

		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := service.Register(ctx, input)

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.NotEmpty(t, user.ID)
		assert.NotEmpty(t, user.PasswordHash)
		assert.Equal(t, "Marta", user.DisplayName)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should return error for invalid email", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)

		user, err := service.Register(context.Background(), RegisterInput{Email: "not-an-email", Password: "pass"})

		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return error for short password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)

		user, err := service.Register(context.Background(), RegisterInput{Email: "valid@email.com", Password: "short"})

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Nil(t, user)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should reject one letter display name", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)

		_, err := service.Register(context.Background(), RegisterInput{
			Email: "valid@email.com", Password: "StrongPassword123!", DisplayName: "X",
		})

		assert.ErrorIs(t, err, domain.ErrDisplayNameTooShort)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should propagate repository error (Duplicate Email)", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		ctx := context.Background()

		mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		user, err := service.Register(ctx, RegisterInput{Email: "duplicate@email.com", Password: "StrongPassword123!"})

		assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
		assert.Nil(t, user)
		mockRepo.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	stored, err := domain.NewUser("u-1", "login@fiftytwo.app")
	require.NoError(t, err)
	require.NoError(t, stored.SetPassword("CorrectHorse1"))

	t.Run("Success: Should normalize email and accept the right password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		mockRepo.On("GetByEmail", ctx, "login@fiftytwo.app").Return(stored, nil)

		user, err := service.Login(ctx, LoginInput{Email: "  Login@FiftyTwo.app ", Password: "CorrectHorse1"})

		require.NoError(t, err)
		assert.Equal(t, "u-1", user.ID)
	})

	t.Run("Security: Wrong password and unknown email look the same", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		mockRepo.On("GetByEmail", ctx, "login@fiftytwo.app").Return(stored, nil)
		mockRepo.On("GetByEmail", ctx, "ghost@fiftytwo.app").Return(nil, domain.ErrUserNotFound)

		_, errWrong := service.Login(ctx, LoginInput{Email: "login@fiftytwo.app", Password: "WrongHorse1"})
		_, errGhost := service.Login(ctx, LoginInput{Email: "ghost@fiftytwo.app", Password: "CorrectHorse1"})

		assert.ErrorIs(t, errWrong, domain.ErrInvalidCredentials)
		assert.ErrorIs(t, errGhost, domain.ErrInvalidCredentials)
	})

	t.Run("Fail: Should wrap storage errors", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		dbErr := errors.New("connection reset")
		mockRepo.On("GetByEmail", ctx, "login@fiftytwo.app").Return(nil, dbErr)

		_, err := service.Login(ctx, LoginInput{Email: "login@fiftytwo.app", Password: "x"})

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthService_DevLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockRepo := new(MockUserRepository)
	service := NewAuthService(mockRepo)

	mockRepo.On("Upsert", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == DevUserID && u.DisplayName != ""
	})).Return(nil)
	mockRepo.On("GetByID", ctx, DevUserID).Return(&domain.User{ID: DevUserID, DisplayName: "Dev User"}, nil)

	user, err := service.DevLogin(ctx)

	require.NoError(t, err)
	assert.Equal(t, DevUserID, user.ID)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success: Should rename and persist", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		mockRepo.On("GetByID", ctx, "u-1").Return(&domain.User{ID: "u-1"}, nil)
		mockRepo.On("UpdateDisplayName", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.DisplayName == "Olga"
		})).Return(nil)

		user, err := service.UpdateProfile(ctx, UpdateProfileInput{UserID: "u-1", Name: " Olga "})

		require.NoError(t, err)
		assert.Equal(t, "Olga", user.DisplayName)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should reject short names before writing", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		mockRepo.On("GetByID", ctx, "u-1").Return(&domain.User{ID: "u-1"}, nil)

		_, err := service.UpdateProfile(ctx, UpdateProfileInput{UserID: "u-1", Name: "O"})

		assert.ErrorIs(t, err, domain.ErrDisplayNameTooShort)
		mockRepo.AssertNotCalled(t, "UpdateDisplayName", mock.Anything, mock.Anything)
	})

	t.Run("Fail: Unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewAuthService(mockRepo)
		mockRepo.On("GetByID", ctx, "ghost").Return(nil, domain.ErrUserNotFound)

		_, err := service.UpdateProfile(ctx, UpdateProfileInput{UserID: "ghost", Name: "Olga"})

		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
