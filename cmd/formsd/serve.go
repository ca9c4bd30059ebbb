package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/groblegark/kforms/internal/catalog"
	"github.com/groblegark/kforms/internal/config"
	"github.com/groblegark/kforms/internal/events"
	"github.com/groblegark/kforms/internal/integration"
	"github.com/groblegark/kforms/internal/relay"
	"github.com/groblegark/kforms/internal/server"
	"github.com/groblegark/kforms/internal/store/postgres"
	formsync "github.com/groblegark/kforms/internal/sync"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the forms HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		slog.SetDefault(logger)

		// Load configuration.
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// Connect to Postgres.
		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}

		// Create event publisher.
		var publisher events.Publisher
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				store.Close()
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			publisher = &events.NoopPublisher{}
			logger.Info("events disabled (FORMS_NATS_URL not set)")
		}

		// Create integration platform client.
		var integrationClient integration.Client
		if cfg.IntegrationBaseURL != "" {
			integrationClient = integration.NewHTTPClient(cfg.IntegrationBaseURL, cfg.IntegrationToken)
			logger.Info("integration platform enabled", "url", cfg.IntegrationBaseURL)
		} else {
			integrationClient = integration.NoopClient{}
			logger.Info("integration platform disabled (FORMS_INTEGRATION_URL not set)")
		}

		// Create webhook relay.
		var rel *relay.Relay
		if cfg.WebhookDefaultURL != "" || cfg.WebhookCustomURL != "" {
			rel = relay.New(cfg.WebhookDefaultURL, cfg.WebhookCustomURL)
			logger.Info("webhook relay enabled",
				"default_url", cfg.WebhookDefaultURL, "custom_url", cfg.WebhookCustomURL)
		} else {
			logger.Info("webhook relay disabled (no webhook URLs set)")
		}

		// Create server components.
		formsServer := server.NewFormsServer(store, publisher, catalog.Default(), integrationClient, rel)

		// Start HTTP server.
		httpServer := &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: formsServer.NewHTTPHandler(cfg.AuthToken),
		}

		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP server error", "err", err)
			}
		}()

		// Start sync scheduler if any destinations are configured.
		var scheduler *formsync.Scheduler
		if cfg.SyncInterval > 0 && cfg.SyncS3Bucket != "" {
			s3Dest, err := formsync.NewS3Destination(
				context.Background(),
				cfg.SyncS3Bucket,
				cfg.SyncS3Key,
				cfg.SyncS3Region,
				cfg.SyncS3Endpoint,
			)
			if err != nil {
				logger.Error("failed to create S3 sync destination", "err", err)
			} else {
				scheduler = formsync.NewScheduler(store, []formsync.Destination{s3Dest}, cfg.SyncInterval, logger)
				scheduler.Start()
				logger.Info("sync scheduler started",
					"interval", cfg.SyncInterval, "bucket", cfg.SyncS3Bucket, "key", cfg.SyncS3Key)
			}
		}

		logger.Info("forms server started", "http_addr", cfg.HTTPAddr)

		// Wait for SIGINT or SIGTERM.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		// Graceful shutdown.
		if scheduler != nil {
			scheduler.Stop()
			logger.Info("sync scheduler stopped")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		if err := integrationClient.Close(); err != nil {
			logger.Error("error closing integration client", "err", err)
		}
		if err := publisher.Close(); err != nil {
			logger.Error("error closing publisher", "err", err)
		}
		if err := store.Close(); err != nil {
			logger.Error("error closing store", "err", err)
		}

		logger.Info("shutdown complete")
		return nil
	},
}
