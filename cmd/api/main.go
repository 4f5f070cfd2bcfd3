package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/plu-backend/api/routes"
	"github.com/angelmondragon/plu-backend/internal/plu"
	"github.com/angelmondragon/plu-backend/pkg/config"
	"github.com/angelmondragon/plu-backend/pkg/db"
	"github.com/angelmondragon/plu-backend/pkg/instance"
	"github.com/angelmondragon/plu-backend/pkg/logger"
	"github.com/angelmondragon/plu-backend/pkg/metrics"
	"github.com/angelmondragon/plu-backend/pkg/migrate"
	"github.com/angelmondragon/plu-backend/pkg/version"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	opts := logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	}
	var logFile *os.File
	if cfg.App.LogFile != "" {
		logFile, err = logger.OpenFile(cfg.App.LogFile)
		if err != nil {
			logg.Error(context.Background(), "failed to open log file", err)
			os.Exit(1)
		}
		opts.File = logFile
	}
	logg = logger.New(opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = serve(ctx, cfg, logg)
	stop()

	if err != nil {
		logg.Error(context.Background(), "api server stopped", err)
	}
	if logFile != nil {
		_ = logFile.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

// serve runs the API until ctx is cancelled or the listener fails. Every resource it opens
// is closed before it returns.
func serve(ctx context.Context, cfg *config.Config, logg *logger.Logger) error {
	loc, err := cfg.App.Location()
	if err != nil {
		return fmt.Errorf("resolving timezone: %w", err)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("bootstrapping database: %w", err)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return fmt.Errorf("running dev migrations: %w", err)
	}

	pluService, err := plu.NewService(plu.NewRepository(dbClient.DB()), plu.WithLocation(loc))
	if err != nil {
		return fmt.Errorf("creating plu service: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	handler, err := routes.NewRouter(cfg, logg, dbClient, pluService, m, registry)
	if err != nil {
		return fmt.Errorf("building router: %w", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"program":  version.ProgramName(),
		"db":       cfg.DB.Driver,
		"timezone": loc.String(),
		"instance": instance.GetID(),
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
		logg.Info(logCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	}
}
