package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
)

type GoalRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	UpdateStatus(ctx context.Context, goal *domain.Goal) error
}

type ProgressRepository interface {
	ListByGoalID(ctx context.Context, goalID string) ([]*domain.WeekProgress, error)
}

type CompletionJob struct {
	GoalID string
}

// CompletionWorker keeps a goal's status in line with its week records.
// Jobs are queued after every toggle that changes a week.
type CompletionWorker struct {
	goalRepo     GoalRepository
	progressRepo ProgressRepository
	jobs         chan CompletionJob
	now          func() time.Time
}

func NewCompletionWorker(gRepo GoalRepository, pRepo ProgressRepository) *CompletionWorker {
	return &CompletionWorker{
		goalRepo:     gRepo,
		progressRepo: pRepo,
		jobs:         make(chan CompletionJob, 100),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (w *CompletionWorker) Start(ctx context.Context) {
	go func() {
		slog.Info("completion worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				slog.Info("completion worker shutting down")
				return
			}
		}
	}()
}

func (w *CompletionWorker) Enqueue(goalID string) {
	select {
	case w.jobs <- CompletionJob{GoalID: goalID}:
	default:
		slog.Warn("completion worker queue full, dropping job", "goal_id", goalID)
	}
}

func (w *CompletionWorker) processJob(ctx context.Context, job CompletionJob) {
	goal, err := w.goalRepo.GetByID(ctx, job.GoalID)
	if err != nil {
		slog.Error("completion worker: fetch goal", "goal_id", job.GoalID, "error", err)
		return
	}

	weeks, err := w.progressRepo.ListByGoalID(ctx, job.GoalID)
	if err != nil {
		slog.Error("completion worker: fetch weeks", "goal_id", job.GoalID, "error", err)
		return
	}

	stats := domain.ComputeStats(goal, weeks)
	if !goal.SyncStatus(stats.IsFinished, w.now()) {
		return
	}

	if err := w.goalRepo.UpdateStatus(ctx, goal); err != nil {
		slog.Error("completion worker: update status", "goal_id", job.GoalID, "error", err)
		return
	}

	slog.Info("goal status updated", "goal_id", goal.ID, "status", goal.Status)
}
