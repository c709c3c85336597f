package domain

import (
	"context"
	"errors"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	// Create persists a goal together with its week schedule. Either both are
	// stored or neither is.
	Create(ctx context.Context, goal *Goal, weeks []*WeekProgress) error

	// GetByID retrieves a goal by its unique identifier.
	GetByID(ctx context.Context, id string) (*Goal, error)

	// ListByUserID retrieves the goals of a user, newest first.
	ListByUserID(ctx context.Context, userID string) ([]*Goal, error)

	// UpdateStatus stores the status and completion timestamp of a goal.
	UpdateStatus(ctx context.Context, goal *Goal) error

	// Delete permanently removes a goal and its week schedule.
	Delete(ctx context.Context, id string) error

	// ListActiveByReminderDay returns active goals whose owners asked to be
	// reminded on the given day.
	ListActiveByReminderDay(ctx context.Context, day string) ([]*Goal, error)
}

type ProgressRepository interface {
	// ListByGoalID returns the week records of a goal ordered by week number.
	ListByGoalID(ctx context.Context, goalID string) ([]*WeekProgress, error)

	// Get returns a single week record.
	Get(ctx context.Context, goalID string, weekNumber int) (*WeekProgress, error)

	// Update stores the completion state of a week record.
	Update(ctx context.Context, week *WeekProgress) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Upsert inserts the user or refreshes its email and display name when the
	// id already exists.
	Upsert(ctx context.Context, user *User) error

	UpdateDisplayName(ctx context.Context, user *User) error
}
