package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
)

// MemoryStore backs the in-memory repositories. All three share one lock so a
// goal and its weeks appear and disappear together.
type MemoryStore struct {
	users      map[string]*domain.User
	goals      map[string]*domain.Goal
	goalWeeks  map[string][]*domain.WeekProgress
	emailIndex map[string]string

	mu sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[string]*domain.User),
		goals:      make(map[string]*domain.Goal),
		goalWeeks:  make(map[string][]*domain.WeekProgress),
		emailIndex: make(map[string]string),
	}
}

func (s *MemoryStore) Users() *InMemoryUserRepository {
	return &InMemoryUserRepository{s: s}
}

func (s *MemoryStore) Goals() *InMemoryGoalRepository {
	return &InMemoryGoalRepository{s: s}
}

func (s *MemoryStore) Progress() *InMemoryProgressRepository {
	return &InMemoryProgressRepository{s: s}
}

func copyGoal(g *domain.Goal) *domain.Goal {
	c := *g
	return &c
}

func copyWeek(w *domain.WeekProgress) *domain.WeekProgress {
	c := *w
	return &c
}

var _ domain.UserRepository = (*InMemoryUserRepository)(nil)

type InMemoryUserRepository struct {
	s *MemoryStore
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.emailIndex[user.Email]; taken {
		return domain.ErrEmailAlreadyExists
	}

	c := *user
	r.s.users[user.ID] = &c
	r.s.emailIndex[user.Email] = user.ID
	return nil
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emailIndex[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *r.s.users[id]
	return &c, nil
}

func (r *InMemoryUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if owner, taken := r.s.emailIndex[user.Email]; taken && owner != user.ID {
		return domain.ErrEmailAlreadyExists
	}

	if existing, ok := r.s.users[user.ID]; ok {
		delete(r.s.emailIndex, existing.Email)
		existing.Email = user.Email
		existing.DisplayName = user.DisplayName
		existing.UpdatedAt = user.UpdatedAt
		r.s.emailIndex[user.Email] = user.ID
		return nil
	}

	c := *user
	r.s.users[user.ID] = &c
	r.s.emailIndex[user.Email] = user.ID
	return nil
}

func (r *InMemoryUserRepository) UpdateDisplayName(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	existing.DisplayName = user.DisplayName
	existing.UpdatedAt = user.UpdatedAt
	return nil
}

var _ domain.GoalRepository = (*InMemoryGoalRepository)(nil)

type InMemoryGoalRepository struct {
	s *MemoryStore
}

func (r *InMemoryGoalRepository) Create(ctx context.Context, goal *domain.Goal, weeks []*domain.WeekProgress) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := make([]*domain.WeekProgress, len(weeks))
	for i, w := range weeks {
		stored[i] = copyWeek(w)
	}
	sort.Slice(stored, func(i, j int) bool {
		return stored[i].WeekNumber < stored[j].WeekNumber
	})

	r.s.goals[goal.ID] = copyGoal(goal)
	r.s.goalWeeks[goal.ID] = stored
	return nil
}

func (r *InMemoryGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	g, ok := r.s.goals[id]
	if !ok {
		return nil, domain.ErrGoalNotFound
	}
	return copyGoal(g), nil
}

func (r *InMemoryGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	goals := []*domain.Goal{}
	for _, g := range r.s.goals {
		if g.UserID == userID {
			goals = append(goals, copyGoal(g))
		}
	}

	sort.Slice(goals, func(i, j int) bool {
		if goals[i].CreatedAt.Equal(goals[j].CreatedAt) {
			return goals[i].ID < goals[j].ID
		}
		return goals[i].CreatedAt.After(goals[j].CreatedAt)
	})
	return goals, nil
}

func (r *InMemoryGoalRepository) UpdateStatus(ctx context.Context, goal *domain.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.goals[goal.ID]
	if !ok {
		return domain.ErrGoalNotFound
	}
	existing.Status = goal.Status
	existing.CompletedAt = goal.CompletedAt
	existing.UpdatedAt = goal.UpdatedAt
	return nil
}

func (r *InMemoryGoalRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.goals[id]; !ok {
		return domain.ErrGoalNotFound
	}
	delete(r.s.goals, id)
	delete(r.s.goalWeeks, id)
	return nil
}

func (r *InMemoryGoalRepository) ListActiveByReminderDay(ctx context.Context, day string) ([]*domain.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	goals := []*domain.Goal{}
	for _, g := range r.s.goals {
		if g.ReminderDay == day && g.Status == domain.GoalStatusActive {
			goals = append(goals, copyGoal(g))
		}
	}
	sort.Slice(goals, func(i, j int) bool {
		return goals[i].CreatedAt.Before(goals[j].CreatedAt)
	})
	return goals, nil
}

var _ domain.ProgressRepository = (*InMemoryProgressRepository)(nil)

type InMemoryProgressRepository struct {
	s *MemoryStore
}

func (r *InMemoryProgressRepository) ListByGoalID(ctx context.Context, goalID string) ([]*domain.WeekProgress, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	stored := r.s.goalWeeks[goalID]
	weeks := make([]*domain.WeekProgress, len(stored))
	for i, w := range stored {
		weeks[i] = copyWeek(w)
	}
	return weeks, nil
}

func (r *InMemoryProgressRepository) Get(ctx context.Context, goalID string, weekNumber int) (*domain.WeekProgress, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	w := r.find(goalID, weekNumber)
	if w == nil {
		return nil, domain.ErrWeekNotFound
	}
	return copyWeek(w), nil
}

func (r *InMemoryProgressRepository) Update(ctx context.Context, week *domain.WeekProgress) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w := r.find(week.GoalID, week.WeekNumber)
	if w == nil {
		return domain.ErrWeekNotFound
	}
	w.IsCompleted = week.IsCompleted
	w.CompletedAt = week.CompletedAt
	return nil
}

func (r *InMemoryProgressRepository) find(goalID string, weekNumber int) *domain.WeekProgress {
	weeks := r.s.goalWeeks[goalID]
	if weekNumber < 1 || weekNumber > len(weeks) {
		return nil
	}
	return weeks[weekNumber-1]
}
