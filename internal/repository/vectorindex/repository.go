// Package vectorindex stores embedded chunks in a per-build Redis
// namespace and serves nearest-neighbour retrieval over them.
package vectorindex

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/hireloop/talentscout/internal/db"
	"github.com/hireloop/talentscout/internal/domain"
	"github.com/hireloop/talentscout/internal/metrics"
)

const (
	fieldText   = "text"
	fieldSheet  = "sheet"
	fieldSource = "source"
	fieldSeq    = "seq"
	fieldVector = "vector"
)

// Namespace identifies one build's key prefix and index.
type Namespace struct {
	BuildID string
	Dim     int
}

// Prefix is the hash key prefix for this namespace.
func (n Namespace) Prefix() string { return "scout:run:" + n.BuildID + ":" }

// IndexName is the FT index name for this namespace.
func (n Namespace) IndexName() string { return n.Prefix() + "idx" }

// Config carries index tuning knobs.
type Config struct {
	HNSWM           int
	HNSWEFConstruct int
}

// Repository manages chunk namespaces over a db.Store.
type Repository struct {
	store  db.Store
	cfg    Config
	logger *zap.Logger
}

// NewRepository creates a chunk index repository.
func NewRepository(store db.Store, cfg Config, logger *zap.Logger) *Repository {
	return &Repository{store: store, cfg: cfg, logger: logger}
}

// Create provisions a fresh namespace for buildID with the given vector
// dimensionality. An existing namespace with the same buildID is a
// collision, not something to silently reuse.
func (r *Repository) Create(ctx context.Context, buildID string, dim int) (*Namespace, error) {
	if buildID == "" {
		return nil, fmt.Errorf("build id is required")
	}
	if dim <= 0 {
		return nil, fmt.Errorf("vector dimensionality must be positive, got %d", dim)
	}

	ns := &Namespace{BuildID: buildID, Dim: dim}
	def := &db.IndexDefinition{
		Name:            ns.IndexName(),
		Prefix:          ns.Prefix(),
		TextField:       fieldText,
		TagFields:       []string{fieldSheet},
		VectorField:     fieldVector,
		VectorDim:       dim,
		HNSWM:           r.cfg.HNSWM,
		HNSWEFConstruct: r.cfg.HNSWEFConstruct,
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil, fmt.Errorf("build %s: %w", buildID, domain.ErrNamespaceExists)
		}
		return nil, fmt.Errorf("create index %s: %w", ns.IndexName(), err)
	}

	return ns, nil
}

// Add writes embedded chunks into the namespace. Every vector must match
// the namespace dimensionality.
func (r *Repository) Add(ctx context.Context, ns *Namespace, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(chunks))
	for i, c := range chunks {
		if len(c.Vector) != ns.Dim {
			return fmt.Errorf("chunk %d: got %d dimensions, namespace has %d: %w",
				i, len(c.Vector), ns.Dim, domain.ErrVectorDimMismatch)
		}
		items[i] = db.HashSetItem{
			Key: ns.Prefix() + "chunk:" + strconv.Itoa(i),
			Fields: map[string]string{
				fieldText:   c.Text,
				fieldSheet:  c.Sheet,
				fieldSource: c.Source,
				fieldSeq:    strconv.Itoa(c.Seq),
				fieldVector: db.VectorBytes(c.Vector),
			},
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("store %d chunks: %w", len(items), err)
	}

	metrics.ChunksIndexedTotal.Add(float64(len(items)))
	return nil
}

// Query returns up to k chunks nearest to the vector, best first.
func (r *Repository) Query(ctx context.Context, ns *Namespace, vector []float32, k int) ([]domain.ScoredChunk, error) {
	if len(vector) != ns.Dim {
		return nil, fmt.Errorf("query vector has %d dimensions, namespace has %d: %w",
			len(vector), ns.Dim, domain.ErrVectorDimMismatch)
	}

	result, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    ns.IndexName(),
		Vector:       vector,
		K:            k,
		ReturnFields: []string{fieldText, fieldSheet, fieldSource, fieldSeq},
	})
	if err != nil {
		return nil, fmt.Errorf("knn over %s: %w: %w", ns.IndexName(), domain.ErrSearchFailed, err)
	}

	scored := make([]domain.ScoredChunk, 0, len(result.Entries))
	for _, e := range result.Entries {
		seq, _ := strconv.Atoi(e.Fields[fieldSeq])
		scored = append(scored, domain.ScoredChunk{
			Chunk: domain.Chunk{
				Text:   e.Fields[fieldText],
				Sheet:  e.Fields[fieldSheet],
				Source: e.Fields[fieldSource],
				Seq:    seq,
			},
			Score: e.Score,
		})
	}
	return scored, nil
}

// Drop removes the namespace's index together with its hashes. Used to
// unwind half-written builds.
func (r *Repository) Drop(ctx context.Context, ns *Namespace) error {
	if err := r.store.DropIndex(ctx, ns.IndexName(), true); err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil
		}
		return fmt.Errorf("drop index %s: %w", ns.IndexName(), err)
	}
	return nil
}
