// Package server initializes and runs the application server: it opens
// the database, applies migrations, wires repositories, services and the
// HTTP API together, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/udsonbraga/app-lia-2025/internal/logging"
	"github.com/udsonbraga/app-lia-2025/internal/server/config"
	"github.com/udsonbraga/app-lia-2025/internal/server/httpapi"
	"github.com/udsonbraga/app-lia-2025/internal/server/queue"
	"github.com/udsonbraga/app-lia-2025/internal/server/repositories/repomanager"
	"github.com/udsonbraga/app-lia-2025/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var publisher services.AlertPublisher
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis url error: %w", err)
		}
		p := queue.NewPublisher(redis.NewClient(opts), cfg.AlertsQueue)
		if err := p.Ping(ctx); err != nil {
			logger.Warn(ctx, "redis unreachable, alert delivery tasks will be retried per request", "error", err.Error())
		}
		publisher = p
	}

	userService := services.NewUserService(db, rm, cfg)
	contactService := services.NewContactService(db, rm)
	diaryService := services.NewDiaryService(db, rm, cfg)
	alertService := services.NewAlertService(db, rm, publisher, logger)

	srv := httpapi.NewServer(cfg, logger, userService, contactService, diaryService, alertService)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
