package services

import (
	"context"
	"fmt"
	"time"

	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
	"github.com/comitanigiacomo/fiftytwo/internal/core/workers"
)

type ProgressService struct {
	goals    *GoalService
	progress domain.ProgressRepository
	worker   *workers.CompletionWorker
	now      func() time.Time
}

func NewProgressService(goals *GoalService, progress domain.ProgressRepository, worker *workers.CompletionWorker) *ProgressService {
	return &ProgressService{
		goals:    goals,
		progress: progress,
		worker:   worker,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type ToggleWeekInput struct {
	GoalID     string
	UserID     string
	WeekNumber int
	Completed  bool
}

type DepositInput struct {
	GoalID string
	UserID string
	Amount int
}

// List returns the week records of an owned goal ordered by week number.
func (s *ProgressService) List(ctx context.Context, goalID, userID string) ([]*domain.WeekProgress, error) {
	if _, err := s.goals.GetByID(ctx, goalID, userID); err != nil {
		return nil, err
	}

	return s.progress.ListByGoalID(ctx, goalID)
}

// Toggle sets the completion state of one week. Asking for the state the week
// is already in returns the record unchanged. Concurrent toggles of the same
// week resolve to whichever write lands last.
func (s *ProgressService) Toggle(ctx context.Context, input ToggleWeekInput) (*domain.WeekProgress, error) {
	if _, err := s.goals.GetByID(ctx, input.GoalID, input.UserID); err != nil {
		return nil, err
	}

	week, err := s.progress.Get(ctx, input.GoalID, input.WeekNumber)
	if err != nil {
		return nil, err
	}

	if !week.SetCompleted(input.Completed, s.now()) {
		return week, nil
	}

	if err := s.progress.Update(ctx, week); err != nil {
		return nil, fmt.Errorf("progress service: failed to update week %d: %w", week.WeekNumber, err)
	}

	s.enqueue(week.GoalID)

	return week, nil
}

// Deposit marks the earliest pending week whose allocated amount equals the
// deposited amount.
func (s *ProgressService) Deposit(ctx context.Context, input DepositInput) (*domain.WeekProgress, error) {
	if input.Amount < 0 {
		return nil, domain.ErrInvalidDepositAmount
	}

	weeks, err := s.List(ctx, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	for _, week := range weeks {
		if week.IsCompleted || week.Amount != input.Amount {
			continue
		}

		week.SetCompleted(true, s.now())
		if err := s.progress.Update(ctx, week); err != nil {
			return nil, fmt.Errorf("progress service: failed to deposit into week %d: %w", week.WeekNumber, err)
		}

		s.enqueue(week.GoalID)
		return week, nil
	}

	return nil, domain.ErrNoPendingWeekForAmount
}

func (s *ProgressService) Stats(ctx context.Context, goalID, userID string) (*domain.ProgressStats, error) {
	goal, err := s.goals.GetByID(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}

	weeks, err := s.progress.ListByGoalID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	stats := domain.ComputeStats(goal, weeks)
	return &stats, nil
}

func (s *ProgressService) enqueue(goalID string) {
	if s.worker != nil {
		s.worker.Enqueue(goalID)
	}
}
