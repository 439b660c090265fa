// Command scout discovers public candidate profiles for a role, fetches
// their data through the profile provider, and writes them to a parquet
// table for later indexing.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hireloop/talentscout/internal/config"
	logpkg "github.com/hireloop/talentscout/internal/logger"
	"github.com/hireloop/talentscout/internal/metrics"
	"github.com/hireloop/talentscout/internal/repository/profiles"
	"github.com/hireloop/talentscout/internal/transport/googlesearch"
	"github.com/hireloop/talentscout/internal/transport/rapidapi"
	"github.com/hireloop/talentscout/internal/usecase/discovery"
	"github.com/hireloop/talentscout/internal/usecase/sourcing"
	"github.com/hireloop/talentscout/internal/version"
)

type flags struct {
	query    string
	role     string
	location string
	max      int
	out      string
}

func parseFlags() (flags, error) {
	var f flags
	flag.StringVar(&f.query, "query", "", "full search query (overrides -role/-location)")
	flag.StringVar(&f.role, "role", "", "role to search for, e.g. 'Golang Developer'")
	flag.StringVar(&f.location, "location", "", "location to search in, e.g. 'Berlin'")
	flag.IntVar(&f.max, "max", 10, "maximum number of profiles to source")
	flag.StringVar(&f.out, "out", "profiles.parquet", "output parquet table path")
	flag.Parse()

	if f.query == "" && f.role == "" {
		return f, errors.New("either -query or -role is required")
	}
	if f.max <= 0 {
		return f, fmt.Errorf("-max must be positive, got %d", f.max)
	}
	return f, nil
}

func main() {
	_ = godotenv.Load()

	f, err := parseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx, f); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting scout",
		zap.String("build", version.String()),
		zap.String("env", env),
	)

	metrics.Register()
	if cfg.Metrics.Enabled {
		srv := metrics.Serve(cfg.Metrics.Port, logger)
		defer func() {
			shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutCancel()
			_ = srv.Shutdown(shutCtx)
		}()
	}

	search, err := googlesearch.NewClient(ctx, cfg.Search.APIKey, cfg.Search.EngineID)
	if err != nil {
		return fmt.Errorf("create search client: %w", err)
	}

	oracle, err := rapidapi.NewClient(rapidapi.Config{
		BaseURL: cfg.ProfileAPI.BaseURL,
		APIKey:  cfg.ProfileAPI.APIKey,
		Host:    cfg.ProfileAPI.Host,
		Timeout: time.Duration(cfg.ProfileAPI.TimeoutSec) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("create profile client: %w", err)
	}

	svc := sourcing.New(
		discovery.New(search, logger),
		oracle,
		profiles.NewStore(),
		cfg.ProfileAPI.Workers,
		logger,
	)

	query := f.query
	if query == "" {
		query = discovery.DorkQuery(f.role, f.location)
	}

	report, err := svc.Source(ctx, query, f.max, f.out)
	if err != nil {
		return err
	}

	logger.Info("sourcing finished",
		zap.Int("discovered", report.Discovered),
		zap.Int("fetched", report.Fetched),
		zap.Int("skipped", report.Skipped),
		zap.String("output", report.OutputPath),
	)
	fmt.Printf("sourced %d of %d profiles into %s (%d skipped)\n",
		report.Fetched, report.Discovered, report.OutputPath, report.Skipped)
	return nil
}
