package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

var _ domain.GoalRepository = (*SQLGoalRepository)(nil)

type SQLGoalRepository struct {
	db *sqlx.DB
}

func NewSQLGoalRepository(db *sqlx.DB) *SQLGoalRepository {
	return &SQLGoalRepository{db: db}
}

const goalColumns = `id, user_id, title, image_url, language, currency, target_amount,
	starting_amount, total_weeks, genre, reminder_day, status, completed_at, created_at, updated_at`

// Create inserts the goal and every week record in one transaction.
func (r *SQLGoalRepository) Create(ctx context.Context, g *domain.Goal, weeks []*domain.WeekProgress) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	goalQuery := `
        INSERT INTO goals (
            id, user_id, title, image_url, language, currency, target_amount,
            starting_amount, total_weeks, genre, reminder_day, status, completed_at,
            created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7,
            $8, $9, $10, $11, $12, $13,
            $14, $15
        )`

	_, err = tx.ExecContext(ctx, goalQuery,
		g.ID, g.UserID, g.Title, g.ImageURL, g.Language, g.Currency, g.TargetAmount,
		g.StartingAmount, g.TotalWeeks, g.Genre, g.ReminderDay, g.Status, g.CompletedAt,
		g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	weekQuery := `
        INSERT INTO weekly_progress (id, goal_id, week_number, amount, is_completed, completed_at)
        VALUES ($1, $2, $3, $4, $5, $6)`

	stmt, err := tx.PreparexContext(ctx, weekQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare week insert: %w", err)
	}
	defer stmt.Close()

	for _, w := range weeks {
		if _, err := stmt.ExecContext(ctx, w.ID, w.GoalID, w.WeekNumber, w.Amount, w.IsCompleted, w.CompletedAt); err != nil {
			return fmt.Errorf("failed to insert week %d: %w", w.WeekNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit goal: %w", err)
	}
	return nil
}

func (r *SQLGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	var g domain.Goal
	err := r.db.GetContext(ctx, &g, `SELECT `+goalColumns+` FROM goals WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}
	return &g, nil
}

func (r *SQLGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	goals := []*domain.Goal{}
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1 ORDER BY created_at DESC, id ASC`

	if err := r.db.SelectContext(ctx, &goals, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return goals, nil
}

func (r *SQLGoalRepository) UpdateStatus(ctx context.Context, g *domain.Goal) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE goals SET status = $1, completed_at = $2, updated_at = $3 WHERE id = $4`,
		g.Status, g.CompletedAt, g.UpdatedAt, g.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal status: %w", err)
	}
	return requireOneRow(res, domain.ErrGoalNotFound)
}

// Delete removes the goal. Week records go with it through the cascading
// foreign key; they are deleted explicitly as well for databases that run
// with foreign keys disabled.
func (r *SQLGoalRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM weekly_progress WHERE goal_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete weeks: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if err := requireOneRow(res, domain.ErrGoalNotFound); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SQLGoalRepository) ListActiveByReminderDay(ctx context.Context, day string) ([]*domain.Goal, error) {
	goals := []*domain.Goal{}
	query := `SELECT ` + goalColumns + ` FROM goals WHERE reminder_day = $1 AND status = $2 ORDER BY created_at ASC`

	if err := r.db.SelectContext(ctx, &goals, query, day, domain.GoalStatusActive); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	return goals, nil
}
