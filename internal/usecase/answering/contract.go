package answering

import (
	"context"

	"github.com/hireloop/talentscout/internal/domain"
	"github.com/hireloop/talentscout/internal/repository/vectorindex"
)

// Retriever finds the chunks nearest to a query vector.
type Retriever interface {
	Query(ctx context.Context, ns *vectorindex.Namespace, vector []float32, k int) ([]domain.ScoredChunk, error)
}

// Completer generates one chat completion from a system+user message pair.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
