// Package server wires the PlantKeeper server together: logger, database,
// repositories, services, the REST API and the gRPC health endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/plantkeeper/internal/logging"
	"github.com/dmitrijs2005/plantkeeper/internal/server/auth"
	"github.com/dmitrijs2005/plantkeeper/internal/server/config"
	"github.com/dmitrijs2005/plantkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/plantkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/plantkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/plantkeeper/internal/server/services"
	"github.com/dmitrijs2005/plantkeeper/internal/server/storage"

	gs "github.com/dmitrijs2005/plantkeeper/internal/server/grpc"
)

// Seams for tests.
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	logger logging.Logger
	db     *sql.DB
	http   *httpapi.Server
	grpc   *gs.HealthServer
}

// NewApp opens the database, applies migrations and builds both servers.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	m := metrics.New()
	tokens := auth.NewTokenCodec([]byte(c.SecretKey), c.TokenValidityDuration)
	presigner := storage.NewS3Presigner(storage.Options{
		Region:       c.S3Region,
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
		URLValidity:  c.PhotoURLValidityDuration,
	})

	api := httpapi.NewServer(c.HTTPAddr, logger, httpapi.Deps{
		Auth:         services.NewAuthService(db, rm, tokens, auth.NewBcryptHasher(c.BcryptCost)),
		Links:        services.NewLinkService(db, rm),
		Plants:       services.NewPlantService(db, rm),
		Pots:         services.NewPotService(db, rm),
		Measurements: services.NewMeasurementService(db, rm),
		Photos:       services.NewPhotoService(db, rm, presigner),
		Tokens:       tokens,
		DB:           db,
		Metrics:      m,
	})

	return &App{
		logger: logger,
		db:     db,
		http:   api,
		grpc:   gs.NewHealthServer(c.GRPCAddr, logger, db, m, c.HealthCheckInterval),
	}, nil
}

// Run serves until ctx is cancelled or one of the servers fails; a failing
// server cancels the other. The first server error is returned.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.logger.Info(ctx, "Starting app...")

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)

	run := func(name string, fn func(context.Context) error) {
		defer wg.Done()
		if err := fn(ctx); err != nil {
			app.logger.Error(ctx, "server failed", "server", name, "error", err)
			once.Do(func() { firstErr = fmt.Errorf("%s: %w", name, err) })
			cancel()
		}
	}

	wg.Add(2)
	go run("http", app.http.Run)
	go run("grpc", app.grpc.Run)
	wg.Wait()

	app.logger.Info(ctx, "App stopped")
	return firstErr
}

// Close releases the database handle.
func (app *App) Close() error {
	return app.db.Close()
}
