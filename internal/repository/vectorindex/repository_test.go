package vectorindex

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hireloop/talentscout/internal/db"
	"github.com/hireloop/talentscout/internal/domain"
	"github.com/hireloop/talentscout/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.Register()
	os.Exit(m.Run())
}

// fakeStore is a hand-written db.Store for repository tests.
type fakeStore struct {
	createErr  error
	dropErr    error
	hsetErr    error
	searchErr  error
	searchRes  *db.SearchResult
	createdDef *db.IndexDefinition
	dropped    []string
	droppedDD  []bool
	items      []db.HashSetItem
}

func (f *fakeStore) Ping(context.Context) error { return nil }
func (f *fakeStore) Close()                     {}
func (f *fakeStore) WaitForReady(context.Context, time.Duration) error {
	return nil
}

func (f *fakeStore) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	f.createdDef = def
	return f.createErr
}

func (f *fakeStore) DropIndex(_ context.Context, name string, deleteDocs bool) error {
	f.dropped = append(f.dropped, name)
	f.droppedDD = append(f.droppedDD, deleteDocs)
	return f.dropErr
}

func (f *fakeStore) IndexExists(context.Context, string) (bool, error) { return false, nil }

func (f *fakeStore) HSetMulti(_ context.Context, items []db.HashSetItem) error {
	f.items = append(f.items, items...)
	return f.hsetErr
}

func (f *fakeStore) SearchKNN(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchRes, nil
}

func newRepo(store *fakeStore) *Repository {
	return NewRepository(store, Config{HNSWM: 16, HNSWEFConstruct: 200}, zap.NewNop())
}

func TestCreate_NamespaceShape(t *testing.T) {
	store := &fakeStore{}
	r := newRepo(store)

	ns, err := r.Create(context.Background(), "42", 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ns.Prefix() != "scout:run:42:" {
		t.Errorf("unexpected prefix: %q", ns.Prefix())
	}
	if ns.IndexName() != "scout:run:42:idx" {
		t.Errorf("unexpected index name: %q", ns.IndexName())
	}

	def := store.createdDef
	if def == nil {
		t.Fatal("CreateIndex not called")
	}
	if def.Name != "scout:run:42:idx" || def.Prefix != "scout:run:42:" {
		t.Errorf("unexpected definition: %+v", def)
	}
	if def.VectorDim != 8 || def.HNSWM != 16 || def.HNSWEFConstruct != 200 {
		t.Errorf("unexpected vector params: %+v", def)
	}
}

func TestCreate_Collision(t *testing.T) {
	store := &fakeStore{createErr: db.ErrIndexExists}
	r := newRepo(store)

	_, err := r.Create(context.Background(), "42", 8)
	if !errors.Is(err, domain.ErrNamespaceExists) {
		t.Errorf("expected ErrNamespaceExists, got %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	r := newRepo(&fakeStore{})

	if _, err := r.Create(context.Background(), "", 8); err == nil {
		t.Error("expected error for empty build id")
	}
	if _, err := r.Create(context.Background(), "42", 0); err == nil {
		t.Error("expected error for zero dimensions")
	}
}

func TestAdd_WritesFields(t *testing.T) {
	store := &fakeStore{}
	r := newRepo(store)
	ns := &Namespace{BuildID: "7", Dim: 2}

	chunks := []domain.Chunk{
		{Text: "alpha", Sheet: "candidates", Source: "c.parquet", Seq: 0, Vector: []float32{1, 2}},
		{Text: "beta", Sheet: "candidates", Source: "c.parquet", Seq: 1, Vector: []float32{3, 4}},
	}
	if err := r.Add(context.Background(), ns, chunks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(store.items))
	}
	first := store.items[0]
	if first.Key != "scout:run:7:chunk:0" {
		t.Errorf("unexpected key: %q", first.Key)
	}
	if first.Fields["text"] != "alpha" || first.Fields["sheet"] != "candidates" ||
		first.Fields["source"] != "c.parquet" || first.Fields["seq"] != "0" {
		t.Errorf("unexpected fields: %v", first.Fields)
	}
	if first.Fields["vector"] != db.VectorBytes([]float32{1, 2}) {
		t.Error("vector not encoded as little-endian float32 bytes")
	}
}

func TestAdd_DimMismatch(t *testing.T) {
	store := &fakeStore{}
	r := newRepo(store)
	ns := &Namespace{BuildID: "7", Dim: 3}

	err := r.Add(context.Background(), ns, []domain.Chunk{
		{Text: "alpha", Vector: []float32{1, 2}},
	})
	if !errors.Is(err, domain.ErrVectorDimMismatch) {
		t.Errorf("expected ErrVectorDimMismatch, got %v", err)
	}
	if len(store.items) != 0 {
		t.Error("no items should be written on dimension mismatch")
	}
}

func TestAdd_Empty(t *testing.T) {
	store := &fakeStore{}
	r := newRepo(store)

	if err := r.Add(context.Background(), &Namespace{BuildID: "7", Dim: 2}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.items) != 0 {
		t.Error("no items expected for empty input")
	}
}

func TestQuery_MapsEntries(t *testing.T) {
	store := &fakeStore{searchRes: &db.SearchResult{
		Total: 2,
		Entries: []db.SearchEntry{
			{Key: "scout:run:7:chunk:1", Score: 0.93, Fields: map[string]string{
				"text": "beta", "sheet": "candidates", "source": "c.parquet", "seq": "1",
			}},
			{Key: "scout:run:7:chunk:0", Score: 0.82, Fields: map[string]string{
				"text": "alpha", "sheet": "candidates", "source": "c.parquet", "seq": "0",
			}},
		},
	}}
	r := newRepo(store)
	ns := &Namespace{BuildID: "7", Dim: 2}

	scored, err := r.Query(context.Background(), ns, []float32{1, 2}, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scored) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(scored))
	}
	if scored[0].Text != "beta" || scored[0].Score != 0.93 || scored[0].Seq != 1 {
		t.Errorf("unexpected first chunk: %+v", scored[0])
	}
	if scored[1].Text != "alpha" || scored[1].Seq != 0 {
		t.Errorf("unexpected second chunk: %+v", scored[1])
	}
}

func TestQuery_SearchFailure(t *testing.T) {
	store := &fakeStore{searchErr: errors.New("boom")}
	r := newRepo(store)

	_, err := r.Query(context.Background(), &Namespace{BuildID: "7", Dim: 2}, []float32{1, 2}, 4)
	if !errors.Is(err, domain.ErrSearchFailed) {
		t.Errorf("expected ErrSearchFailed, got %v", err)
	}
}

func TestQuery_DimMismatch(t *testing.T) {
	r := newRepo(&fakeStore{})

	_, err := r.Query(context.Background(), &Namespace{BuildID: "7", Dim: 4}, []float32{1, 2}, 4)
	if !errors.Is(err, domain.ErrVectorDimMismatch) {
		t.Errorf("expected ErrVectorDimMismatch, got %v", err)
	}
}

func TestDrop_RemovesDocs(t *testing.T) {
	store := &fakeStore{}
	r := newRepo(store)

	if err := r.Drop(context.Background(), &Namespace{BuildID: "7", Dim: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.dropped) != 1 || store.dropped[0] != "scout:run:7:idx" {
		t.Errorf("unexpected drops: %v", store.dropped)
	}
	if !store.droppedDD[0] {
		t.Error("expected DD drop to delete indexed hashes")
	}
}

func TestDrop_MissingIndexIsFine(t *testing.T) {
	store := &fakeStore{dropErr: db.ErrIndexNotFound}
	r := newRepo(store)

	if err := r.Drop(context.Background(), &Namespace{BuildID: "7", Dim: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
