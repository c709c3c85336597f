package repository

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
	"github.com/comitanigiacomo/fiftytwo/internal/db"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// setupSQLite returns a migrated private in-memory database.
func setupSQLite(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Init(db.DriverSQLite, "file::memory:?_pragma=foreign_keys(1)&_time_format=sqlite")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.RunMigrations(conn.DB, db.DriverSQLite))
	return conn
}

// setupPostgres connects to the database described by the DB_* variables and
// skips the test when it is not reachable.
func setupPostgres(t *testing.T, driver string) *sqlx.DB {
	t.Helper()

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "fiftytwo_user"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "fiftytwo_db"),
	)

	conn, err := db.Init(driver, dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.RunMigrations(conn.DB, driver))

	_, err = conn.Exec("TRUNCATE TABLE weekly_progress, goals, users CASCADE")
	require.NoError(t, err, "Failed to clean up database")
	return conn
}

func fakeUser(t *testing.T) *domain.User {
	t.Helper()

	user, err := domain.NewUser(uuid.NewString(), gofakeit.Email())
	require.NoError(t, err)
	user.PasswordHash = "hash"
	user.DisplayName = gofakeit.FirstName()
	return user
}

func fakeGoal(t *testing.T, userID string, target, weeks int) (*domain.Goal, []*domain.WeekProgress) {
	t.Helper()

	goal, err := domain.NewGoal(userID, domain.GoalOptions{
		Title:        gofakeit.Sentence(3),
		TargetAmount: &target,
		TotalWeeks:   &weeks,
		Currency:     gofakeit.RandomString([]string{"RUB", "USD", "EUR"}),
	})
	require.NoError(t, err)

	// Databases keep microseconds at best.
	goal.CreatedAt = goal.CreatedAt.Truncate(time.Microsecond)
	goal.UpdatedAt = goal.CreatedAt

	amounts, err := domain.Allocate(target, weeks)
	require.NoError(t, err)
	return goal, domain.NewWeekSchedule(goal.ID, amounts)
}
