package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const cacheTTL = 30 * time.Minute

var _ domain.GoalRepository = (*CachedGoalRepository)(nil)

// CachedGoalRepository caches each user's goal list in Redis. Writes go to
// the wrapped repository first and then drop the cached list.
type CachedGoalRepository struct {
	next  domain.GoalRepository
	cache *redis.Client
}

func NewCachedGoalRepository(next domain.GoalRepository, cache *redis.Client) *CachedGoalRepository {
	return &CachedGoalRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedGoalRepository) cacheKey(userID string) string {
	return fmt.Sprintf("goals:%s", userID)
}

func (r *CachedGoalRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)).Err(); err != nil {
		slog.Warn("cache invalidation failed", "key", r.cacheKey(userID), "error", err)
	}
}

func (r *CachedGoalRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Goal, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		var goals []*domain.Goal
		if err := json.Unmarshal(val, &goals); err == nil {
			return goals, nil
		}

		slog.Warn("corrupted cache entry, cleaning up", "key", key)
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("cache read failed", "key", key, "error", err)
	}

	goals, err := r.next.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(goals); err == nil {
		if setErr := r.cache.Set(ctx, key, data, cacheTTL).Err(); setErr != nil {
			slog.Warn("cache write failed", "key", key, "error", setErr)
		}
	}

	return goals, nil
}

func (r *CachedGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	return r.next.GetByID(ctx, id)
}

func (r *CachedGoalRepository) ListActiveByReminderDay(ctx context.Context, day string) ([]*domain.Goal, error) {
	return r.next.ListActiveByReminderDay(ctx, day)
}

func (r *CachedGoalRepository) Create(ctx context.Context, goal *domain.Goal, weeks []*domain.WeekProgress) error {
	if err := r.next.Create(ctx, goal, weeks); err != nil {
		return err
	}
	r.invalidate(ctx, goal.UserID)
	return nil
}

func (r *CachedGoalRepository) UpdateStatus(ctx context.Context, goal *domain.Goal) error {
	if err := r.next.UpdateStatus(ctx, goal); err != nil {
		return err
	}
	r.invalidate(ctx, goal.UserID)
	return nil
}

func (r *CachedGoalRepository) Delete(ctx context.Context, id string) error {
	goal, err := r.next.GetByID(ctx, id)
	if err == nil && goal != nil {
		defer r.invalidate(ctx, goal.UserID)
	}

	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}

	// The week rows are gone with the goal, so the cached schedule must go too.
	key := progressCacheKey(id)
	if err := r.cache.Del(ctx, key).Err(); err != nil {
		slog.Warn("cache invalidation failed", "key", key, "error", err)
	}
	return nil
}
