// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/pawradar/pawradar/internal/auth"
	authpg "github.com/pawradar/pawradar/internal/auth/postgres"
	"github.com/pawradar/pawradar/internal/config"
	"github.com/pawradar/pawradar/internal/httpapi"
	"github.com/pawradar/pawradar/internal/logging"
	"github.com/pawradar/pawradar/internal/mail"
	"github.com/pawradar/pawradar/internal/media"
	"github.com/pawradar/pawradar/internal/observability"
	"github.com/pawradar/pawradar/internal/pets"
	petspg "github.com/pawradar/pawradar/internal/pets/postgres"
	"github.com/pawradar/pawradar/internal/reports"
	reportspg "github.com/pawradar/pawradar/internal/reports/postgres"
	"github.com/pawradar/pawradar/internal/search"
	"github.com/pawradar/pawradar/internal/store"
	"github.com/pawradar/pawradar/internal/verify"
)

// shutdownTimeout bounds graceful shutdown of the HTTP servers.
const shutdownTimeout = 5 * time.Second

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the PawRadar API server",
		Long: `Start the HTTP API server. Runs pending database migrations first,
then serves until SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, nil)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	logging.SetDefault("pawradar", version, cfg.Server.LogFormat)
	logger := slog.Default()

	logger.Info("starting pawradar",
		"addr", cfg.Server.Addr,
		"log_format", cfg.Server.LogFormat,
	)

	pool, err := store.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	logger.Info("connected to database")

	if err := migrateUp(cfg.Database.URL); err != nil {
		return err
	}

	logger.Info("database schema up to date")

	accounts := authpg.NewAccountRepository(pool)
	credentials := authpg.NewCredentialRepository(pool)
	petRepo := petspg.NewPetRepository(pool)
	reportRepo := reportspg.NewReportRepository(pool)

	petIndex, accountIndex, err := buildIndexers(cfg.Search, logger)
	if err != nil {
		return err
	}
	images, err := buildImageStore(ctx, cfg.Media, logger)
	if err != nil {
		return err
	}
	mailer, err := buildMailer(cfg.Mail, logger)
	if err != nil {
		return err
	}
	verifier, err := buildVerifier(cfg.Verifier, logger)
	if err != nil {
		return err
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenIssuer(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	authSvc := auth.NewService(accounts, credentials, hasher, tokens,
		verifier, accountIndex, cfg.Auth.ResetTokenTTL, logger)
	petSvc := pets.NewService(petRepo, images, petIndex, logger)
	reportSvc := reports.NewService(reportRepo, petRepo, accounts, mailer, logger)

	api := httpapi.NewServer(httpapi.Config{
		Addr:         cfg.Server.Addr,
		CORSOrigin:   cfg.Server.CORSOrigin,
		ResetBaseURL: cfg.Auth.ResetBaseURL,
	}, authSvc, petSvc, reportSvc, mailer, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	apiErrCh, err := api.Start()
	if err != nil {
		return err
	}
	go monitorServerErrors(ctx, cancel, apiErrCh, "api")

	var obsServer *observability.Server
	if cfg.Server.MetricsAddr != "" {
		obsServer = observability.NewServer(cfg.Server.MetricsAddr, poolReadiness(pool))
		obsErrCh, err := obsServer.Start()
		if err != nil {
			stopServer(api.Stop, "api", logger)
			return err
		}
		go monitorServerErrors(ctx, cancel, obsErrCh, "observability")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	logger.Info("pawradar ready", "addr", api.Addr())

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	}

	logger.Info("shutting down...")

	stopServer(api.Stop, "api", logger)
	if obsServer != nil {
		stopServer(obsServer.Stop, "observability", logger)
	}

	logger.Info("shutdown complete")
	return nil
}

// migrateUp applies all pending migrations and releases the migrator.
func migrateUp(databaseURL string) error {
	migrator, err := store.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := migrator.Close(); closeErr != nil {
			slog.Warn("failed to close migrator", "error", closeErr)
		}
	}()
	return migrator.Up()
}

// buildIndexers returns the Algolia indexer when configured, otherwise the
// no-op indexer so search stays silently disabled in development.
func buildIndexers(cfg config.Search, logger *slog.Logger) (search.Indexer, search.AccountIndexer, error) {
	if cfg.AppID == "" || cfg.APIKey == "" {
		logger.Info("search indexing disabled, no algolia credentials")
		return search.NoopIndexer{}, search.NoopIndexer{}, nil
	}

	indexer, err := search.NewAlgoliaIndexer(cfg.AppID, cfg.APIKey, cfg.PetIndex, cfg.AccountIndex)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("search indexing enabled",
		"pet_index", cfg.PetIndex,
		"account_index", cfg.AccountIndex,
	)
	return indexer, indexer, nil
}

// buildImageStore returns the S3 store when credentials are configured.
func buildImageStore(ctx context.Context, cfg config.Media, logger *slog.Logger) (media.ImageStore, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		logger.Info("image uploads disabled, no object storage credentials")
		return media.NoopStore{}, nil
	}

	s3store, err := media.NewS3Store(ctx, media.Config{
		Bucket:    cfg.Bucket,
		Region:    cfg.Region,
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		KeyPrefix: cfg.KeyPrefix,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("image uploads enabled", "bucket", cfg.Bucket)
	return s3store, nil
}

// buildMailer returns the SMTP mailer when a host is configured.
func buildMailer(cfg config.Mail, logger *slog.Logger) (mail.Mailer, error) {
	if cfg.Host == "" {
		logger.Info("outgoing mail disabled, no smtp host")
		return mail.NoopMailer{}, nil
	}

	mailer, err := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Username: cfg.Username,
		Password: cfg.Password,
		From:     cfg.From,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("outgoing mail enabled", "host", cfg.Host)
	return mailer, nil
}

// buildVerifier returns the hunter.io verifier when an API key is
// configured. Without one every address is accepted.
func buildVerifier(cfg config.Verifier, logger *slog.Logger) (auth.EmailVerifier, error) {
	if cfg.APIKey == "" {
		logger.Info("email deliverability checks disabled, no verifier api key")
		return auth.NoopVerifier{}, nil
	}

	verifier, err := verify.NewHunterVerifier(cfg.APIKey, cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	logger.Info("email deliverability checks enabled")
	return verifier, nil
}

// poolReadiness reports ready once the database answers a ping.
func poolReadiness(pool *pgxpool.Pool) observability.ReadinessChecker {
	return func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return pool.Ping(ctx) == nil
	}
}

// stopServer shuts a server down with a bounded timeout, logging failures.
func stopServer(stop func(context.Context) error, name string, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := stop(ctx); err != nil {
		logger.Warn("error stopping server", "server", name, "error", err)
	}
}

// monitorServerErrors cancels the run context when a server reports an
// error, so one failing listener brings the whole process down cleanly.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errCh <-chan error, serverName string) {
	select {
	case err, ok := <-errCh:
		if !ok {
			// Channel closed, server stopped gracefully
			return
		}
		if err != nil {
			slog.Error("server error, triggering shutdown",
				"server", serverName,
				"error", err,
			)
			cancel()
		}
	case <-ctx.Done():
	}
}
