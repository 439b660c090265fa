package redis

import (
	"context"
	"errors"
	"strconv"

	"github.com/hireloop/talentscout/internal/db"
)

// CreateIndex creates an FT vector index from the given definition.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	args, err := buildCreateArgs(def)
	if err != nil {
		return err
	}

	cmd := s.client.B().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return db.ErrIndexExists
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

// DropIndex removes an FT index by name. deleteDocs also removes the
// indexed hashes (FT.DROPINDEX ... DD), used to unwind failed builds.
func (s *Store) DropIndex(ctx context.Context, name string, deleteDocs bool) error {
	args := []string{name}
	if deleteDocs {
		args = append(args, "DD")
	}
	cmd := s.client.B().Arbitrary("FT.DROPINDEX").Args(args...).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return db.ErrIndexNotFound
		}
		return &db.Error{Op: db.OpDropIndex, Err: err}
	}
	return nil
}

// IndexExists probes index existence via FT.INFO; "unknown index name" means absent.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.client.B().Arbitrary("FT.INFO").Args(name).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}

func buildCreateArgs(def *db.IndexDefinition) ([]string, error) {
	if def.Name == "" {
		return nil, errors.New("index name is required")
	}
	if def.Prefix == "" {
		return nil, errors.New("key prefix is required")
	}
	if def.VectorField == "" {
		return nil, errors.New("vector field is required")
	}
	if def.VectorDim <= 0 {
		return nil, errors.New("vector DIM must be positive")
	}

	args := []string{def.Name, "ON", "HASH", "PREFIX", "1", def.Prefix, "SCHEMA"}

	if def.TextField != "" {
		args = append(args, def.TextField, "TEXT")
	}
	for _, f := range def.TagFields {
		args = append(args, f, "TAG")
	}

	attrs := []string{
		"TYPE", "FLOAT32",
		"DIM", strconv.Itoa(def.VectorDim),
		"DISTANCE_METRIC", "COSINE",
	}
	if def.HNSWM > 0 {
		attrs = append(attrs, "M", strconv.Itoa(def.HNSWM))
	}
	if def.HNSWEFConstruct > 0 {
		attrs = append(attrs, "EF_CONSTRUCTION", strconv.Itoa(def.HNSWEFConstruct))
	}

	args = append(args, def.VectorField, "VECTOR", "HNSW", strconv.Itoa(len(attrs)))
	args = append(args, attrs...)

	return args, nil
}
