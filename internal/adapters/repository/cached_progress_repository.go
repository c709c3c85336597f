package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

var _ domain.ProgressRepository = (*CachedProgressRepository)(nil)

// CachedProgressRepository serves week schedules from Redis. Single week reads
// always hit the wrapped repository so toggles never act on stale state.
type CachedProgressRepository struct {
	next  domain.ProgressRepository
	cache *redis.Client
}

func NewCachedProgressRepository(next domain.ProgressRepository, cache *redis.Client) *CachedProgressRepository {
	return &CachedProgressRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedProgressRepository) cacheKey(goalID string) string {
	return progressCacheKey(goalID)
}

// progressCacheKey is shared with CachedGoalRepository, which drops the
// schedule of a deleted goal.
func progressCacheKey(goalID string) string {
	return fmt.Sprintf("progress:%s", goalID)
}

func (r *CachedProgressRepository) ListByGoalID(ctx context.Context, goalID string) ([]*domain.WeekProgress, error) {
	key := r.cacheKey(goalID)

	val, err := r.cache.Get(ctx, key).Bytes()
	if err == nil {
		var weeks []*domain.WeekProgress
		if err := json.Unmarshal(val, &weeks); err == nil {
			return weeks, nil
		}

		slog.Warn("corrupted cache entry, cleaning up", "key", key)
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("cache read failed", "key", key, "error", err)
	}

	weeks, err := r.next.ListByGoalID(ctx, goalID)
	if err != nil {
		return nil, err
	}

	if len(weeks) == 0 {
		return weeks, nil
	}

	if data, err := json.Marshal(weeks); err == nil {
		if setErr := r.cache.Set(ctx, key, data, cacheTTL).Err(); setErr != nil {
			slog.Warn("cache write failed", "key", key, "error", setErr)
		}
	}

	return weeks, nil
}

func (r *CachedProgressRepository) Get(ctx context.Context, goalID string, weekNumber int) (*domain.WeekProgress, error) {
	return r.next.Get(ctx, goalID, weekNumber)
}

func (r *CachedProgressRepository) Update(ctx context.Context, week *domain.WeekProgress) error {
	if err := r.next.Update(ctx, week); err != nil {
		return err
	}

	if err := r.cache.Del(ctx, r.cacheKey(week.GoalID)).Err(); err != nil {
		slog.Warn("cache invalidation failed", "key", r.cacheKey(week.GoalID), "error", err)
	}
	return nil
}
