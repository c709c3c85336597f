package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
)

type GoalService struct {
	repo         domain.GoalRepository
	defaultWeeks int
}

func NewGoalService(repo domain.GoalRepository, defaultWeeks int) *GoalService {
	if defaultWeeks <= 0 {
		defaultWeeks = domain.DefaultTotalWeeks
	}
	return &GoalService{
		repo:         repo,
		defaultWeeks: defaultWeeks,
	}
}

type CreateGoalInput struct {
	UserID         string
	Title          string
	TargetAmount   *int
	TotalWeeks     *int
	StartingAmount *int
	ImageURL       string
	Language       string
	Currency       string
	Genre          string
	ReminderDay    string
}

// Create allocates the weekly amounts of a new goal and stores the goal with
// its full week schedule in one step.
func (s *GoalService) Create(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	weeks := input.TotalWeeks
	if weeks == nil {
		weeks = &s.defaultWeeks
	}

	goal, err := domain.NewGoal(input.UserID, domain.GoalOptions{
		Title:          input.Title,
		TargetAmount:   input.TargetAmount,
		TotalWeeks:     weeks,
		StartingAmount: input.StartingAmount,
		ImageURL:       input.ImageURL,
		Language:       input.Language,
		Currency:       input.Currency,
		Genre:          input.Genre,
		ReminderDay:    input.ReminderDay,
	})
	if err != nil {
		return nil, err
	}

	amounts, err := domain.Allocate(goal.TargetAmount, goal.TotalWeeks)
	if err != nil {
		return nil, err
	}

	schedule := domain.NewWeekSchedule(goal.ID, amounts)

	if err := s.repo.Create(ctx, goal, schedule); err != nil {
		return nil, fmt.Errorf("goal service: failed to create goal: %w", err)
	}

	return goal, nil
}

// GetByID returns the goal only to its owner. Goals of other users are
// reported as missing.
func (s *GoalService) GetByID(ctx context.Context, id, userID string) (*domain.Goal, error) {
	goal, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if goal.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}

	return goal, nil
}

func (s *GoalService) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *GoalService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}
