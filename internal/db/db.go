// Package db defines the storage contracts shared between the vector
// index repository and its Redis driver.
package db

import (
	"context"
	"time"
)

// Store is the database facade the vector index repository consumes.
type Store interface {
	Pinger
	HSetMulti(ctx context.Context, items []HashSetItem) error
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string, deleteDocs bool) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem holds a single key+fields pair for pipelined HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// IndexDefinition describes an FT vector index over hash keys.
type IndexDefinition struct {
	Name            string
	Prefix          string
	TextField       string // indexed as TEXT
	TagFields       []string
	VectorField     string
	VectorDim       int
	HNSWM           int
	HNSWEFConstruct int
}

// KNNQuery is a K-nearest-neighbour search request.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchEntry is one matching document.
type SearchEntry struct {
	Key    string
	Score  float64 // cosine similarity in [0,1], higher is closer
	Fields map[string]string
}

// SearchResult holds FT.SEARCH output.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// Op constants map to Redis command names for error context.
const (
	OpCreateIndex = "FT.CREATE"
	OpDropIndex   = "FT.DROPINDEX"
	OpIndexInfo   = "FT.INFO"
	OpSearch      = "FT.SEARCH"
	OpHSet        = "HSET"
	OpGet         = "GET"
	OpSet         = "SET"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
