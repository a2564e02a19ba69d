package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"

	"cycleledger.app/internal/app"
	"cycleledger.app/internal/config"
	"cycleledger.app/internal/feed"
	"cycleledger.app/internal/report"
	"cycleledger.app/internal/ridestore"
)

const version = "1.0.0"

func main() {
	// A missing .env file is fine; environment variables are optional.
	_ = godotenv.Load()

	var (
		configFile = flag.String("config-file", "", "Path to a local YAML configuration file")
		port       = flag.Int("port", 0, "API server port (overrides config file)")
		env        = flag.String("env", "", "Environment (development|staging|production)")
		dataDir    = flag.String("data-dir", "", "Directory holding the ride ledger")
		feedURL    = flag.String("feed-url", "", "Station directory feed URL")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(*configFile, *port, *env, *dataDir, *feedURL)
	if err != nil {
		fmt.Println("Error:", err)
		flag.Usage()
		os.Exit(1)
	}

	dsn := os.Getenv("SENTRY_DSN")
	if dsn == "" {
		dsn = cfg.SentryDSN
	}
	if err := report.Setup(dsn, cfg.Env, version); err != nil {
		logger.Error("failed to set up error reporting", "error", err)
		os.Exit(1)
	}
	defer report.Flush()

	store, err := ridestore.New(cfg.DataDir, logger)
	if err != nil {
		logger.Error("failed to open ride store", "error", err)
		os.Exit(1)
	}

	rides, err := store.Load()
	if err != nil {
		logger.Error("failed to load ride ledger", "error", err)
		os.Exit(1)
	}

	application := app.New(cfg, logger, store, feed.NewClient(cfg.FeedURL, nil, logger), version)
	application.SetRides(rides)
	logger.Info("loaded ride ledger", "rides", len(rides), "data_dir", cfg.DataDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The dashboard works without a directory snapshot; resolution just
	// comes up empty until a refresh succeeds.
	if err := application.RefreshStations(ctx); err != nil {
		report.ReportError(err)
		logger.Error("failed to fetch station directory on startup", "error", err)
	}

	if cfg.FeedRefreshMinutes > 0 {
		go application.StartFeedRefresh(ctx, time.Duration(cfg.FeedRefreshMinutes)*time.Minute)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("server stopped")
		return
	}
	report.ReportError(err, sentry.LevelFatal)
	report.Flush()
	logger.Error(err.Error())
	os.Exit(1)
}

// loadConfig layers flag overrides over the config file (or the
// defaults when no file is given) and validates the result.
func loadConfig(path string, port int, env, dataDir, feedURL string) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
	} else {
		cfg = config.Default()
	}

	if port != 0 {
		cfg.Port = port
	}
	if env != "" {
		cfg.Env = env
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if feedURL != "" {
		cfg.FeedURL = feedURL
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
