package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
	"github.com/robfig/cron/v3"
)

const DefaultReminderSchedule = "0 9 * * *"

type ReminderGoalRepository interface {
	ListActiveByReminderDay(ctx context.Context, day string) ([]*domain.Goal, error)
}

type Reminder struct {
	UserID     string
	GoalID     string
	GoalTitle  string
	Currency   string
	NextWeek   int
	NextAmount int
}

type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
}

// LogNotifier writes reminders to the structured log. It stands in for a real
// delivery channel.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, r Reminder) error {
	slog.Info("weekly deposit reminder",
		"user_id", r.UserID,
		"goal_id", r.GoalID,
		"goal", r.GoalTitle,
		"week", r.NextWeek,
		"amount", r.NextAmount,
		"currency", r.Currency,
	)
	return nil
}

// ReminderWorker nudges owners of active goals on their chosen weekday with
// the amount of the next pending week.
type ReminderWorker struct {
	goalRepo     ReminderGoalRepository
	progressRepo ProgressRepository
	notifier     Notifier
	schedule     string
	cron         *cron.Cron
	now          func() time.Time
}

func NewReminderWorker(gRepo ReminderGoalRepository, pRepo ProgressRepository, notifier Notifier, schedule string) *ReminderWorker {
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}
	return &ReminderWorker{
		goalRepo:     gRepo,
		progressRepo: pRepo,
		notifier:     notifier,
		schedule:     schedule,
		cron:         cron.New(),
		now:          time.Now,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) error {
	_, err := w.cron.AddFunc(w.schedule, func() {
		if err := w.RunOnce(ctx); err != nil {
			slog.Error("reminder run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("reminder worker: invalid schedule %q: %w", w.schedule, err)
	}

	w.cron.Start()
	slog.Info("reminder worker started", "schedule", w.schedule)

	go func() {
		<-ctx.Done()
		stopCtx := w.cron.Stop()
		<-stopCtx.Done()
		slog.Info("reminder worker stopped")
	}()

	return nil
}

// RunOnce sends the reminders due today. A failure on one goal is logged
// and does not stop the others.
func (w *ReminderWorker) RunOnce(ctx context.Context) error {
	day := domain.ReminderDayName(w.now().Weekday())

	goals, err := w.goalRepo.ListActiveByReminderDay(ctx, day)
	if err != nil {
		return fmt.Errorf("reminder worker: list goals for %s: %w", day, err)
	}

	sent := 0
	for _, goal := range goals {
		weeks, err := w.progressRepo.ListByGoalID(ctx, goal.ID)
		if err != nil {
			slog.Error("reminder worker: fetch weeks", "goal_id", goal.ID, "error", err)
			continue
		}

		stats := domain.ComputeStats(goal, weeks)
		if stats.NextAmount == nil {
			continue
		}

		reminder := Reminder{
			UserID:     goal.UserID,
			GoalID:     goal.ID,
			GoalTitle:  goal.Title,
			Currency:   goal.Currency,
			NextWeek:   stats.NextWeek,
			NextAmount: *stats.NextAmount,
		}
		if err := w.notifier.Notify(ctx, reminder); err != nil {
			slog.Error("reminder worker: notify", "goal_id", goal.ID, "error", err)
			continue
		}
		sent++
	}

	slog.Debug("reminders sent", "day", day, "count", sent)
	return nil
}
