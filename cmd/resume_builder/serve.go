package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
)

const serviceName = "resume-builder"

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes resume storage, structural scoring and ATS keyword analysis.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "Path to a JSON, YAML or TOML config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(serveConfig, os.Getenv)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or database_url config is required")
	}

	logger := observability.NewLogger(serviceName, cfg.LogLevel)
	slog.SetDefault(logger)

	jwtConfig, err := config.NewJWTConfig(os.Getenv)
	if err != nil {
		return fmt.Errorf("invalid JWT configuration: %w", err)
	}
	passwordConfig, err := config.NewPasswordConfig(os.Getenv)
	if err != nil {
		return fmt.Errorf("invalid password configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	database, err := db.Connect(connectCtx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.EnsureSchema(connectCtx); err != nil {
		return err
	}

	var fetcher server.JobFetcher
	if cfg.Fetch.AllowJobURLs {
		fetcher = fetch.NewFetcher(fetcherConfig(cfg.Fetch))
	} else {
		logger.Info("job_url fetching disabled; set FETCH_JOB_URLS=true to enable")
	}

	srv, err := server.New(server.Deps{
		Store:       database,
		JWT:         server.NewJWTService(jwtConfig),
		Passwords:   passwordConfig,
		Fetcher:     fetcher,
		Limiter:     ratelimit.NewLimiter(ratelimit.LoadConfig(os.Getenv)),
		Metrics:     observability.NewMetrics(serviceName),
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	return srv.Run(ctx, addr, time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
}

// fetcherConfig maps the file/env fetch settings onto the fetcher.
func fetcherConfig(fc config.FetchConfig) fetch.FetcherConfig {
	out := fetch.DefaultFetcherConfig()
	if fc.TimeoutSeconds > 0 {
		out.Options.Timeout = time.Duration(fc.TimeoutSeconds) * time.Second
	}
	out.Options.BrowserFallback = fc.UseBrowser
	if fc.CacheTTLMinutes > 0 {
		out.CacheTTL = time.Duration(fc.CacheTTLMinutes) * time.Minute
	}
	return out
}
