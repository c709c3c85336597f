package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrWeekNotFound           = errors.New("week not found")
	ErrInvalidWeekNumber      = errors.New("week number must be a positive integer")
	ErrNoPendingWeekForAmount = errors.New("no pending week with this amount")
	ErrInvalidDepositAmount   = errors.New("deposit amount cannot be negative")
)

type WeekProgress struct {
	ID          string     `json:"id" db:"id"`
	GoalID      string     `json:"goalId" db:"goal_id"`
	WeekNumber  int        `json:"weekNumber" db:"week_number"`
	Amount      int        `json:"amount" db:"amount"`
	IsCompleted bool       `json:"isCompleted" db:"is_completed"`
	CompletedAt *time.Time `json:"completedAt" db:"completed_at"`
}

// NewWeekSchedule builds one pending record per allocated amount, numbered
// from 1 in allocation order.
func NewWeekSchedule(goalID string, amounts []int) []*WeekProgress {
	weeks := make([]*WeekProgress, len(amounts))
	for i, amount := range amounts {
		weeks[i] = &WeekProgress{
			ID:         uuid.New().String(),
			GoalID:     goalID,
			WeekNumber: i + 1,
			Amount:     amount,
		}
	}
	return weeks
}

// SetCompleted applies the requested completion state and reports whether
// the record changed. Requesting the current state is a no-op.
func (w *WeekProgress) SetCompleted(completed bool, now time.Time) bool {
	if w.IsCompleted == completed {
		return false
	}

	w.IsCompleted = completed
	if completed {
		ts := now.UTC()
		w.CompletedAt = &ts
	} else {
		w.CompletedAt = nil
	}
	return true
}
