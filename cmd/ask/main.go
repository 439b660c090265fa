// Command ask indexes a sourced profile table into the vector store and
// answers a recruiter query against it using retrieved chunk context.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hireloop/talentscout/internal/config"
	"github.com/hireloop/talentscout/internal/db/redis"
	logpkg "github.com/hireloop/talentscout/internal/logger"
	"github.com/hireloop/talentscout/internal/metrics"
	"github.com/hireloop/talentscout/internal/repository/embcache"
	"github.com/hireloop/talentscout/internal/repository/profiles"
	"github.com/hireloop/talentscout/internal/repository/vectorindex"
	"github.com/hireloop/talentscout/internal/transport/openai"
	"github.com/hireloop/talentscout/internal/usecase/answering"
	"github.com/hireloop/talentscout/internal/usecase/indexing"
	"github.com/hireloop/talentscout/internal/version"
)

type flags struct {
	table   string
	buildID string
	jdPath  string
	query   string
	keep    bool
}

func parseFlags() (flags, error) {
	var f flags
	flag.StringVar(&f.table, "table", "profiles.parquet", "parquet table (file or directory) to index")
	flag.StringVar(&f.buildID, "build-id", "", "index namespace id (default: next counter value beside the table)")
	flag.StringVar(&f.jdPath, "jd", "", "path to the job description file")
	flag.StringVar(&f.query, "query", "", "recruiter query to answer")
	flag.BoolVar(&f.keep, "keep", false, "keep the built namespace instead of dropping it after answering")
	flag.Parse()

	if f.jdPath == "" {
		return f, errors.New("-jd is required")
	}
	if f.query == "" {
		return f, errors.New("-query is required")
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

	logger.Info("starting ask",
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

	jd, err := os.ReadFile(f.jdPath)
	if err != nil {
		return fmt.Errorf("read job description: %w", err)
	}

	buildID := f.buildID
	if buildID == "" {
		buildID, err = nextBuildID(f.table)
		if err != nil {
			return fmt.Errorf("derive build id: %w", err)
		}
	}

	store, err := redis.NewStore(redis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer store.Close()

	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, readiness); err != nil {
		return fmt.Errorf("store not ready: %w", err)
	}

	embedder := openai.NewEmbedder(&openai.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})

	repo := vectorindex.NewRepository(store, vectorindex.Config{
		HNSWM:           cfg.Index.HNSWM,
		HNSWEFConstruct: cfg.Index.HNSWEFConstruct,
	}, logger)

	builder := indexing.New(profiles.NewStore(), repo, embedder, indexing.Config{
		ChunkSize:      cfg.Index.ChunkSize,
		ChunkOverlap:   cfg.Index.ChunkOverlap,
		Dimensions:     cfg.Embedding.Dimensions,
		EmbedBatchSize: cfg.Index.EmbedBatchSize,
	}, logger)

	ns, err := builder.Build(ctx, buildID, f.table)
	if err != nil {
		return err
	}
	if !f.keep {
		defer func() {
			dropCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := repo.Drop(dropCtx, ns); err != nil {
				logger.Warn("failed to drop namespace", zap.String("build_id", ns.BuildID), zap.Error(err))
			}
		}()
	}

	chat := openai.NewChatClient(&openai.ChatConfig{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Logger:  logger,
	})

	queryEmbedder := embcache.New(embedder, store, cfg.Storage.KeyPrefix, logger)
	svc := answering.New(queryEmbedder, repo, chat, cfg.Index.TopK, cfg.LLM.APIKey != "", logger)

	answer, err := svc.Answer(ctx, ns, string(jd), f.query)
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}

// nextBuildID increments the run counter stored beside the table so that
// each indexing run gets a namespace of its own.
func nextBuildID(tablePath string) (string, error) {
	counterPath := strings.TrimSuffix(tablePath, "/") + ".buildid"

	n := 0
	data, err := os.ReadFile(counterPath)
	switch {
	case err == nil:
		n, err = strconv.Atoi(strings.TrimSpace(string(data)))
		if err != nil {
			return "", fmt.Errorf("counter file %s is corrupt: %w", counterPath, err)
		}
	case !os.IsNotExist(err):
		return "", err
	}

	n++
	if err := os.WriteFile(counterPath, []byte(strconv.Itoa(n)), 0o600); err != nil {
		return "", err
	}
	return strconv.Itoa(n), nil
}
