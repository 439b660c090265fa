// Package indexing builds a per-run vector namespace from a profile
// table.
package indexing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/hireloop/talentscout/internal/domain"
	"github.com/hireloop/talentscout/internal/repository/vectorindex"
	"github.com/hireloop/talentscout/internal/splitter"
)

// Config carries chunking and embedding parameters for index builds.
type Config struct {
	ChunkSize      int
	ChunkOverlap   int
	Dimensions     int
	EmbedBatchSize int
}

// Service builds chunk namespaces.
type Service struct {
	sheets   SheetReader
	index    ChunkIndex
	embedder domain.BatchEmbedder
	cfg      Config
	logger   *zap.Logger
}

// New creates an indexing service.
func New(sheets SheetReader, index ChunkIndex, embedder domain.BatchEmbedder, cfg Config, logger *zap.Logger) *Service {
	if cfg.EmbedBatchSize <= 0 {
		cfg.EmbedBatchSize = 64
	}
	return &Service{
		sheets:   sheets,
		index:    index,
		embedder: embedder,
		cfg:      cfg,
		logger:   logger,
	}
}

// Build reads the table at tablePath, chunks and embeds its documents,
// and writes everything into a fresh namespace for buildID. A failure at
// any stage unwinds the namespace; a partially filled one is never
// returned.
func (s *Service) Build(ctx context.Context, buildID, tablePath string) (*vectorindex.Namespace, error) {
	docs, err := s.sheets.Sheets(tablePath)
	if err != nil {
		return nil, fmt.Errorf("read sheets: %w: %w", domain.ErrIndexBuildFailed, err)
	}

	chunks, err := splitter.Split(docs, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("split documents: %w: %w", domain.ErrIndexBuildFailed, err)
	}

	if err := s.embedChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("embed chunks: %w: %w", domain.ErrIndexBuildFailed, err)
	}

	ns, err := s.index.Create(ctx, buildID, s.cfg.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("create namespace: %w: %w", domain.ErrIndexBuildFailed, err)
	}

	if err := s.index.Add(ctx, ns, chunks); err != nil {
		if dropErr := s.index.Drop(ctx, ns); dropErr != nil {
			s.logger.Error("failed to unwind namespace",
				zap.String("build_id", buildID),
				zap.Error(dropErr),
			)
		}
		return nil, fmt.Errorf("add chunks: %w: %w", domain.ErrIndexBuildFailed, err)
	}

	s.logger.Info("index build finished",
		zap.String("build_id", buildID),
		zap.Int("documents", len(docs)),
		zap.Int("chunks", len(chunks)),
	)
	return ns, nil
}

// embedChunks fills chunk vectors in place, batching embedder calls.
func (s *Service) embedChunks(ctx context.Context, chunks []domain.Chunk) error {
	for start := 0; start < len(chunks); start += s.cfg.EmbedBatchSize {
		end := start + s.cfg.EmbedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, end-start)
		for i := range texts {
			texts[i] = chunks[start+i].Text
		}

		res, err := s.embedder.BatchEmbed(ctx, texts)
		if err != nil {
			return fmt.Errorf("batch [%d:%d]: %w", start, end, err)
		}
		if len(res.Embeddings) != len(texts) {
			return fmt.Errorf("batch [%d:%d]: got %d embeddings for %d texts", start, end, len(res.Embeddings), len(texts))
		}

		for i, vec := range res.Embeddings {
			chunks[start+i].Vector = vec
		}
	}
	return nil
}
