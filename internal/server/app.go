// Package server initializes and runs the notesvc application server.
// It opens the database, applies migrations, wires services, and starts the
// HTTP endpoint with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/hwdelite/notesvc/internal/logging"
	"github.com/hwdelite/notesvc/internal/server/config"
	"github.com/hwdelite/notesvc/internal/server/mailer"
	"github.com/hwdelite/notesvc/internal/server/repositories/repomanager"
	"github.com/hwdelite/notesvc/internal/server/rest"
	"github.com/hwdelite/notesvc/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	rest   *rest.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	sender, err := mailer.NewSMTPSender(cfg)
	if err != nil {
		return nil, fmt.Errorf("mailer init error: %w", err)
	}

	as := services.NewAuthService(db, rm, sender, cfg)
	ns := services.NewNoteService(db, rm)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		rest:   rest.NewServer(cfg, logger, as, ns),
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

func (app *App) startRESTServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.rest.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startRESTServer(ctx, cancelFunc)
	}()

	wg.Wait()
}

func (app *App) Close() error {
	return app.db.Close()
}
