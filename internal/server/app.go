// Package server wires configuration, storage, services and transports
// together and runs the gophcms HTTP API until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophcms/internal/dbx"
	"github.com/dmitrijs2005/gophcms/internal/logging"
	"github.com/dmitrijs2005/gophcms/internal/server/auth"
	"github.com/dmitrijs2005/gophcms/internal/server/config"
	"github.com/dmitrijs2005/gophcms/internal/server/obs"
	"github.com/dmitrijs2005/gophcms/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophcms/internal/server/rest"
	"github.com/dmitrijs2005/gophcms/internal/server/services"
	"github.com/dmitrijs2005/gophcms/internal/server/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const dbPingTimeout = 5 * time.Second

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	otel     *obs.OTel
	registry *prometheus.Registry
	api      *rest.API
}

// NewApp opens the database, applies migrations and builds every service.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(logging.Config{
		Backend: c.LogBackend,
		Level:   c.LogLevel,
		Pretty:  c.LogPretty,
		App:     "gophcms",
	}, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	if c.AccessSecret == "" || c.RefreshSecret == "" {
		logger.Warn(ctx, "jwt secrets are not configured; login and protected routes will fail")
	}

	db, err := dbx.Open(ctx, "pgx", c.DatabaseDSN, dbPingTimeout)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	store, err := newImageStore(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("image storage init error: %w", err)
	}

	tel, err := obs.SetupOTel(ctx, &obs.OTELConfig{
		Enable:      c.OTelEnable,
		Endpoint:    c.OTelEndpoint,
		ServiceName: c.OTelServiceName,
		SampleRatio: c.OTelSampleRatio,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("otel init error: %w", err)
	}

	secrets := auth.NewSecrets(c.AccessSecret, c.RefreshSecret)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	api := rest.NewAPI(rest.Services{
		Users:     services.NewUserService(db, rm, auth.NewIssuer(secrets), auth.NewRefreshGuard(secrets)),
		Posts:     services.NewPostService(db, rm),
		Tags:      services.NewTagService(db, rm),
		Portfolio: services.NewPortfolioService(db, rm),
		Sections:  services.NewSectionService(db, rm),
		Images:    services.NewImageService(db, rm, store),
		Kiools:    services.NewKioolService(db, rm),
	}, auth.NewAccessGuard(secrets), logger, obs.NewHTTPMetrics(reg), c.AllowedOrigin)

	return &App{config: c, logger: logger, db: db, otel: tel, registry: reg, api: api}, nil
}

func newImageStore(ctx context.Context, c *config.Config) (storage.Store, error) {
	switch c.ImageStorage {
	case config.ImageStorageS3:
		return storage.NewS3Store(ctx, storage.S3Config{
			User:     c.S3RootUser,
			Password: c.S3RootPassword,
			Bucket:   c.S3Bucket,
			Region:   c.S3Region,
			Endpoint: c.S3BaseEndpoint,
		})
	case config.ImageStorageLocal, "":
		return storage.NewLocalStore(c.UploadPath)
	default:
		return nil, fmt.Errorf("unknown image storage %q", c.ImageStorage)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	h := obs.WrapHandler(app.api.Router(), "gophcms.http")
	s := rest.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, h, app.config.ShutdownTimeout)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startMetricsServer(ctx context.Context) {
	srv := obs.NewMetricsServer(app.config.MetricsAddr, app.registry, app.db.PingContext)
	obs.RunMetricsServer(ctx, srv, app.logger)
}

// Run blocks until a signal arrives or the HTTP server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "http", app.config.EndpointAddrHTTP, "metrics", app.config.MetricsAddr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startMetricsServer(ctx)
	}()

	wg.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := app.otel.Shutdown(shutdownCtx); err != nil {
		app.logger.Warn(shutdownCtx, "otel shutdown", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(shutdownCtx, "db close", "error", err)
	}
	app.logger.Info(shutdownCtx, "app stopped")
}
