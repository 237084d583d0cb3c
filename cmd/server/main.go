package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"route-distance-service/internal/adapters/directions"
	"route-distance-service/internal/api"
	"route-distance-service/internal/config"
	"route-distance-service/internal/platform/obs"
	"route-distance-service/internal/services"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const serviceName = "route-distance-service"

// main is the application composition root.
// It wires the ORS directions provider behind its port and starts the HTTP server.
func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run logs its own failure, so a bad configuration reaches the log file too.
func run() (err error) {
	dotenv := config.LoadDotEnv()

	logging := config.LoadLogging()
	logger, closer, err := obs.NewLogger(obs.LoggerConfig{
		Service: serviceName,
		Env:     logging.Env,
		Level:   logging.Level,
		File:    logging.File,
	})
	if err != nil {
		log.Error().Err(err).Msg("logger setup failed")
		return err
	}
	defer closer.Close()
	defer func() {
		if err != nil {
			logger.Error().Err(err).Msg("server stopped")
		}
	}()
	zerolog.DefaultContextLogger = &logger

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if !dotenv {
		logger.Info().Msg("No .env file found (using environment variables)")
	}

	shutdownTracer, err := obs.InitTracer(serviceName, cfg.ZipkinURL)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			logger.Error().Err(err).Msg("tracer shutdown failed")
		}
	}()

	orsCfg := directions.ORSConfig{
		APIKey:      cfg.ORSAPIKey,
		BaseURL:     cfg.ORSBaseURL,
		Timeout:     cfg.ORSTimeout,
		MaxAttempts: cfg.ORSMaxAttempts,
	}
	provider, err := directions.NewORSDirectionsProvider(orsCfg)
	if err != nil {
		return err
	}

	metrics := obs.NewMetrics()
	svc := services.NewDistanceService(provider, metrics)
	router := api.NewRouter(svc, logger, metrics)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      writeTimeout(orsCfg),
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// writeTimeout leaves room for every ORS attempt and backoff wait plus the
// response itself. No ORS timeout means no write deadline either.
func writeTimeout(cfg directions.ORSConfig) time.Duration {
	d := cfg.MaxCallDuration()
	if d == 0 {
		return 0
	}
	return d + 10*time.Second
}
