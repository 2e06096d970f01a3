// Package server initializes and runs the roleplay API server.
// It wires the PostgreSQL repositories, the Redis cache, the
// invalidation worker and the HTTP server, and handles graceful
// shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tuanis-rp/roleplay-api/internal/logging"
	"github.com/tuanis-rp/roleplay-api/internal/server/cache"
	"github.com/tuanis-rp/roleplay-api/internal/server/config"
	"github.com/tuanis-rp/roleplay-api/internal/server/httpapi"
	"github.com/tuanis-rp/roleplay-api/internal/server/repositories/repomanager"
	"github.com/tuanis-rp/roleplay-api/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repoManager repomanager.RepositoryManager
	redis       *cache.Redis
	invalidator *cache.Invalidator
	httpServer  *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger, err := logging.NewProductionLogger()
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	redis := cache.NewRedis(cfg.RedisAddr, cfg.RedisDB)
	inv := cache.NewInvalidator(redis, logger, 1, 256)

	us := services.NewUsuarioService(db, rm, redis, inv, cfg)
	as := services.NewAuthService(db, rm, redis, cfg)

	httpServer := httpapi.NewServer(cfg.RunAddress, logger, us, as)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repoManager: rm,
		redis:       redis,
		invalidator: inv,
		httpServer:  httpServer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if err := app.repoManager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close(ctx)
	return nil
}

// close releases resources in reverse dependency order: the
// invalidation queue drains before its cache backend goes away.
func (app *App) close(ctx context.Context) {
	app.invalidator.Close()

	if err := app.redis.Close(); err != nil {
		app.logger.Warn(ctx, "redis close", "error", err.Error())
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close", "error", err.Error())
	}

	app.logger.Info(ctx, "App stopped")
}
