package indexing

import (
	"context"

	"github.com/hireloop/talentscout/internal/domain"
	"github.com/hireloop/talentscout/internal/repository/vectorindex"
)

// SheetReader loads profile tables as documents.
type SheetReader interface {
	Sheets(path string) ([]domain.Document, error)
}

// ChunkIndex manages per-build chunk namespaces.
type ChunkIndex interface {
	Create(ctx context.Context, buildID string, dim int) (*vectorindex.Namespace, error)
	Add(ctx context.Context, ns *vectorindex.Namespace, chunks []domain.Chunk) error
	Drop(ctx context.Context, ns *vectorindex.Namespace) error
}
