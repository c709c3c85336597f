package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

var _ domain.ProgressRepository = (*SQLProgressRepository)(nil)

type SQLProgressRepository struct {
	db *sqlx.DB
}

func NewSQLProgressRepository(db *sqlx.DB) *SQLProgressRepository {
	return &SQLProgressRepository{db: db}
}

const weekColumns = `id, goal_id, week_number, amount, is_completed, completed_at`

func (r *SQLProgressRepository) ListByGoalID(ctx context.Context, goalID string) ([]*domain.WeekProgress, error) {
	weeks := []*domain.WeekProgress{}
	query := `SELECT ` + weekColumns + ` FROM weekly_progress WHERE goal_id = $1 ORDER BY week_number ASC`

	if err := r.db.SelectContext(ctx, &weeks, query, goalID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return weeks, nil
}

func (r *SQLProgressRepository) Get(ctx context.Context, goalID string, weekNumber int) (*domain.WeekProgress, error) {
	var w domain.WeekProgress
	query := `SELECT ` + weekColumns + ` FROM weekly_progress WHERE goal_id = $1 AND week_number = $2`

	if err := r.db.GetContext(ctx, &w, query, goalID, weekNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWeekNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &w, nil
}

// Update writes the completion state unconditionally; the last writer wins.
func (r *SQLProgressRepository) Update(ctx context.Context, w *domain.WeekProgress) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE weekly_progress SET is_completed = $1, completed_at = $2 WHERE goal_id = $3 AND week_number = $4`,
		w.IsCompleted, w.CompletedAt, w.GoalID, w.WeekNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to update week: %w", err)
	}
	return requireOneRow(res, domain.ErrWeekNotFound)
}
