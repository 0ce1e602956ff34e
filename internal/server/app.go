// Package server wires the ledger store, the services and the transports
// together and runs them until the process is signalled.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/linkify/internal/address"
	"github.com/dmitrijs2005/linkify/internal/linkify"
	"github.com/dmitrijs2005/linkify/internal/logging"
	"github.com/dmitrijs2005/linkify/internal/server/config"
	gs "github.com/dmitrijs2005/linkify/internal/server/grpc"
	"github.com/dmitrijs2005/linkify/internal/server/httpapi"
	"github.com/dmitrijs2005/linkify/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/linkify/internal/server/services"
	"github.com/dmitrijs2005/linkify/internal/server/storage"
)

const tokenPurgeInterval = time.Hour

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	services    services.Services
}

func openRepositories(cfg *config.Config) (repomanager.RepositoryManager, error) {
	if cfg.InMemory() {
		return repomanager.NewMemoryRepositoryManager(), nil
	}
	return repomanager.OpenPostgres(cfg.DatabaseDSN)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	programID, err := address.Parse(c.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("program id: %w", err)
	}
	program := linkify.NewProgram(programID)

	rm, err := openRepositories(c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	store, err := storage.NewS3Store(ctx, c)
	if err != nil {
		_ = rm.Close()
		return nil, err
	}

	faucet, err := services.NewFaucetService(rm, c, logger)
	if err != nil {
		_ = rm.Close()
		return nil, err
	}
	snapshots, err := services.NewSnapshotService(rm, store, c, logger)
	if err != nil {
		_ = rm.Close()
		return nil, err
	}

	return &App{
		config:      c,
		logger:      logger,
		repomanager: rm,
		services: services.Services{
			Transactions: services.NewTransactionService(rm, program, c, logger),
			Queries:      services.NewQueryService(rm, program),
			Auth:         services.NewAuthService(rm, c, logger),
			Faucet:       faucet,
			Snapshots:    snapshots,
		},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.services)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.config.CORSOrigins, app.services.Queries, app.logger)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// purgeTokens drops expired refresh tokens until ctx is done.
func (app *App) purgeTokens(ctx context.Context) {
	ticker := time.NewTicker(tokenPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := app.services.Auth.PurgeExpired(ctx)
			if err != nil {
				app.logger.Warn(ctx, "refresh token purge failed", "error", err)
				continue
			}
			app.logger.Debug(ctx, "refresh tokens purged", "count", n)
		}
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "in_memory", app.config.InMemory())

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.purgeTokens(ctx)
	}()
	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
