package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"localspot/internal/auth"
	"localspot/internal/bio"
	"localspot/internal/bizstore"
	"localspot/internal/config"
	"localspot/internal/directory"
	"localspot/internal/geo"
	"localspot/internal/model"
)

// App is the application layer between the outer surfaces (CLI, HTTP API)
// and the directory.Service. It constructs all collaborators from config
// and manages resource lifecycle on Close.
type App struct {
	cfg     *config.Config
	service *directory.Service
	auth    directory.AuthProvider
	backend directory.BusinessStore
	logger  directory.Logger
	logFile *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the command being run (e.g. "Serve", "List").
// The caller must call Close when done.
func NewApp(ctx context.Context, cfg *config.Config, operation string) (*App, error) {
	backend, err := bizstore.NewFromConfig(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("creating listings store: %w", err)
	}

	provider, err := auth.NewFromConfig(cfg.Auth)
	if err != nil {
		closeBackend(backend)
		return nil, fmt.Errorf("creating auth provider: %w", err)
	}

	locator, err := geo.NewFromConfig(cfg.Geo)
	if err != nil {
		closeBackend(backend)
		return nil, fmt.Errorf("creating locator: %w", err)
	}

	generator, err := bio.NewFromConfig(cfg.Bio)
	if err != nil {
		closeBackend(backend)
		return nil, fmt.Errorf("creating bio generator: %w", err)
	}

	runID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, runID)
	if err != nil {
		closeBackend(backend)
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	adapter := &slogAdapter{l: logger}
	adapter.Debug("run started", "operation", operation, "store", cfg.Store.Type)

	svc := directory.NewService(directory.Deps{
		Backend: backend,
		Locator: locator,
		Auth:    provider,
		Bio:     generator,
		DefaultCenter: model.Coordinate{
			Latitude:  cfg.Map.DefaultLatitude,
			Longitude: cfg.Map.DefaultLongitude,
		},
		Logger: adapter,
	})

	if starter, ok := provider.(interface{ Start() }); ok {
		starter.Start()
	}

	return &App{
		cfg:     cfg,
		service: svc,
		auth:    provider,
		backend: backend,
		logger:  adapter,
		logFile: logFile,
	}, nil
}

// Service exposes the wired directory service.
func (a *App) Service() *directory.Service {
	return a.service
}

// Auth exposes the auth collaborator for surfaces that need session state.
func (a *App) Auth() directory.AuthProvider {
	return a.auth
}

// Logger exposes the run-scoped logger.
func (a *App) Logger() directory.Logger {
	return a.logger
}

// Config exposes the config the App was built from.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Start loads the directory and resolves the initial map anchor.
func (a *App) Start(ctx context.Context) error {
	return a.service.Start(ctx)
}

// Close releases the store and the log file.
func (a *App) Close() error {
	var firstErr error

	if err := closeBackend(a.backend); err != nil {
		firstErr = fmt.Errorf("closing listings store: %w", err)
	}

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}

	return firstErr
}

func closeBackend(backend directory.BusinessStore) error {
	if c, ok := backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
