package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/fiftytwo/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/fiftytwo/internal/adapters/handler/http"
	"github.com/comitanigiacomo/fiftytwo/internal/adapters/repository"
	"github.com/comitanigiacomo/fiftytwo/internal/config"
	"github.com/comitanigiacomo/fiftytwo/internal/core/domain"
	"github.com/comitanigiacomo/fiftytwo/internal/core/services"
	"github.com/comitanigiacomo/fiftytwo/internal/core/workers"
	"github.com/comitanigiacomo/fiftytwo/internal/db"
	"github.com/comitanigiacomo/fiftytwo/internal/logger"
)

type application struct {
	router     *gin.Engine
	db         *sqlx.DB
	redis      *redis.Client
	completion *workers.CompletionWorker
	reminders  *workers.ReminderWorker
}

func main() {
	startTime := time.Now()

	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := newApplication(cfg, startTime)
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer app.close()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if err := app.startWorkers(ctx); err != nil {
		slog.Error("workers failed to start", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", "http://localhost:"+cfg.Port, "env", cfg.AppEnv, "db_driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutdown signal received")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

func newApplication(cfg *config.Config, startTime time.Time) (*application, error) {
	app := &application{}

	var (
		userRepo     domain.UserRepository
		goalRepo     domain.GoalRepository
		progressRepo domain.ProgressRepository
	)

	if cfg.UsesSQL() {
		conn, err := db.Init(cfg.DBDriver, cfg.DBConnection)
		if err != nil {
			return nil, err
		}
		app.db = conn

		if err := db.RunMigrations(conn.DB, cfg.DBDriver); err != nil {
			app.close()
			return nil, err
		}

		userRepo = repository.NewSQLUserRepository(conn)
		goalRepo = repository.NewSQLGoalRepository(conn)
		progressRepo = repository.NewSQLProgressRepository(conn)
	} else {
		slog.Warn("using in-memory storage, data is lost on restart")
		store := repository.NewMemoryStore()
		userRepo = store.Users()
		goalRepo = store.Goals()
		progressRepo = store.Progress()
	}

	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, running without cache and rate limiting", "error", err)
		} else {
			app.redis = rdb
			goalRepo = repository.NewCachedGoalRepository(goalRepo, rdb)
			progressRepo = repository.NewCachedProgressRepository(progressRepo, rdb)
		}
	}

	app.completion = workers.NewCompletionWorker(goalRepo, progressRepo)
	app.reminders = workers.NewReminderWorker(goalRepo, progressRepo, workers.LogNotifier{}, cfg.ReminderSchedule)

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiry, userRepo)
	goalService := services.NewGoalService(goalRepo, cfg.TotalWeeks)
	progressService := services.NewProgressService(goalService, progressRepo, app.completion)

	app.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(authService, tokenService, cfg.DevLogin),
		GoalHandler:     adapterHTTP.NewGoalHandler(goalService),
		ProgressHandler: adapterHTTP.NewProgressHandler(progressService),
		Sessions:        tokenService,
		DB:              app.db,
		Redis:           app.redis,
		RateLimit:       cfg.RateLimit,
		RateLimitWindow: cfg.RateLimitWindow,
		StartTime:       startTime,
	})

	return app, nil
}

func (a *application) startWorkers(ctx context.Context) error {
	a.completion.Start(ctx)
	return a.reminders.Start(ctx)
}

func (a *application) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if err := db.Close(a.db); err != nil {
		slog.Error("failed to close database", "error", err)
	}
}
