package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"PriceHistory/internal/api"
	"PriceHistory/internal/config"
	"PriceHistory/internal/logger"
	"PriceHistory/internal/monitor"
	"PriceHistory/internal/store"
	"PriceHistory/internal/symbols"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(logger.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		File:           cfg.Logging.File,
		ServiceName:    serviceName,
		ServiceVersion: serviceVersion,
	}); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	zerolog.DefaultContextLogger = &log.Logger

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	log.Info().Str("db_path", cfg.Store.Path).Msg("using price database")

	allow := symbols.Default()
	origins := api.ParseAllowedOrigins(cfg.Origins())
	if len(origins) == 0 {
		log.Warn().Msg("no valid CORS origins configured, cross-origin requests will be rejected")
	} else {
		log.Info().Strs("origins", origins).Msg("CORS origins configured")
	}

	accessor := store.NewAccessor(cfg.Store.Path)
	handler := api.NewServerHandler(api.NewHandler(allow, accessor), origins, log.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.FreshnessEnabled() {
		mon := monitor.NewMonitor(ctx, accessor, allow, cfg.Freshness.MaxAgeDays, log.Logger.With().Str("component", "freshness").Logger())
		if err := mon.Register(cfg.Freshness.Cron); err != nil {
			return err
		}
		mon.Start()
		defer mon.Stop()
	}

	ln, err := net.Listen("tcp", cfg.Server.BindAddr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", cfg.Server.BindAddr, err)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", ln.Addr().String()).Msg("API server listening")
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received, stopping server")
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("API server stopped")
	return nil
}
