package services_test

import (
	"context"

	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type MockGoalRepo struct {
	mock.Mock
}

func (m *MockGoalRepo) Create(ctx context.Context, goal *domain.Goal, weeks []*domain.WeekProgress) error {
	return m.Called(ctx, goal, weeks).Error(0)
}

func (m *MockGoalRepo) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Goal), args.Error(1)
}

func (m *MockGoalRepo) UpdateStatus(ctx context.Context, goal *domain.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *MockGoalRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGoalRepo) ListActiveByReminderDay(ctx context.Context, day string) ([]*domain.Goal, error) {
	args := m.Called(ctx, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Goal), args.Error(1)
}

type MockProgressRepo struct {
	mock.Mock
}

func (m *MockProgressRepo) ListByGoalID(ctx context.Context, goalID string) ([]*domain.WeekProgress, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WeekProgress), args.Error(1)
}

func (m *MockProgressRepo) Get(ctx context.Context, goalID string, weekNumber int) (*domain.WeekProgress, error) {
	args := m.Called(ctx, goalID, weekNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeekProgress), args.Error(1)
}

func (m *MockProgressRepo) Update(ctx context.Context, week *domain.WeekProgress) error {
	return m.Called(ctx, week).Error(0)
}
