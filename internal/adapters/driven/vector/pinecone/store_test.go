package pinecone

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikivec/wikivec/internal/core/domain"
)

// fakePinecone emulates the control and data plane endpoints the store
// uses, recording data plane request bodies for inspection.
type fakePinecone struct {
	server      *httptest.Server
	indexExists bool
	created     map[string]any
	upserts     []map[string]any
	deletes     []map[string]any
}

func newFakePinecone(t *testing.T, indexExists bool) *fakePinecone {
	t.Helper()

	f := &fakePinecone{indexExists: indexExists}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /indexes/wiki-search", func(w http.ResponseWriter, _ *http.Request) {
		if !f.indexExists {
			http.Error(w, `{"error":{"code":"NOT_FOUND"}}`, http.StatusNotFound)
			return
		}
		fmt.Fprintf(w, `{"name":"wiki-search","dimension":3,"metric":"cosine","host":%q}`, f.server.URL)
	})

	mux.HandleFunc("POST /indexes", func(w http.ResponseWriter, r *http.Request) {
		f.created = decodeBody(t, r)
		f.indexExists = true
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"name":"wiki-search","dimension":3,"metric":"cosine","host":%q}`, f.server.URL)
	})

	mux.HandleFunc("POST /vectors/upsert", func(w http.ResponseWriter, r *http.Request) {
		f.upserts = append(f.upserts, decodeBody(t, r))
		fmt.Fprint(w, `{"upsertedCount":1}`)
	})

	mux.HandleFunc("POST /query", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"matches":[
			{"id":"327_0","score":0.92,"metadata":{"title":"Blockchain - Part 1","content":"ledger text","page_id":327,"chunk_id":0,"is_main_page":true,"topic":"Blockchain"}},
			{"id":"400_1","score":0.81,"metadata":{"title":"Distributed ledger - Part 2","content":"consensus text","page_id":400,"chunk_id":1,"is_main_page":false,"topic":"Blockchain"}}
		]}`)
	})

	mux.HandleFunc("POST /vectors/delete", func(w http.ResponseWriter, r *http.Request) {
		f.deletes = append(f.deletes, decodeBody(t, r))
		fmt.Fprint(w, `{}`)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func newTestStore(t *testing.T, f *fakePinecone) *Store {
	t.Helper()
	store, err := NewStore(Config{
		APIKey:        "test-key",
		Index:         "wiki-search",
		ControllerURL: f.server.URL,
		SettleDelay:   time.Millisecond,
	})
	require.NoError(t, err)
	return store
}

func TestNewStore_Validation(t *testing.T) {
	_, err := NewStore(Config{Index: "wiki-search"})
	assert.Error(t, err)

	_, err = NewStore(Config{APIKey: "k"})
	assert.Error(t, err)
}

func TestStore_EnsureIndex_Existing(t *testing.T) {
	f := newFakePinecone(t, true)
	store := newTestStore(t, f)

	require.NoError(t, store.EnsureIndex(context.Background(), 3))
	assert.Nil(t, f.created, "existing index must not be recreated")
}

func TestStore_EnsureIndex_CreatesMissing(t *testing.T) {
	f := newFakePinecone(t, false)
	store := newTestStore(t, f)

	require.NoError(t, store.EnsureIndex(context.Background(), 3))

	require.NotNil(t, f.created)
	assert.Equal(t, "wiki-search", f.created["name"])
	assert.Equal(t, float64(3), f.created["dimension"])
	assert.Equal(t, "cosine", f.created["metric"])
}

func TestStore_Upsert(t *testing.T) {
	f := newFakePinecone(t, true)
	store := newTestStore(t, f)
	require.NoError(t, store.EnsureIndex(context.Background(), 3))

	records := []domain.VectorRecord{{
		ID:     "327_0",
		Values: []float32{0.1, 0.2, 0.3},
		Metadata: domain.ChunkMetadata{
			Title: "Blockchain - Part 1", Content: "ledger text",
			PageID: 327, ChunkID: 0, IsMainPage: true, Topic: "Blockchain",
		},
	}}
	require.NoError(t, store.Upsert(context.Background(), records))

	require.Len(t, f.upserts, 1)
	vectors := f.upserts[0]["vectors"].([]any)
	require.Len(t, vectors, 1)
	vector := vectors[0].(map[string]any)
	assert.Equal(t, "327_0", vector["id"])
	metadata := vector["metadata"].(map[string]any)
	assert.Equal(t, "Blockchain", metadata["topic"])
	assert.Equal(t, true, metadata["is_main_page"])
}

func TestStore_Upsert_EmptyIsNoop(t *testing.T) {
	f := newFakePinecone(t, true)
	store := newTestStore(t, f)
	require.NoError(t, store.EnsureIndex(context.Background(), 3))

	require.NoError(t, store.Upsert(context.Background(), nil))
	assert.Empty(t, f.upserts)
}

func TestStore_Query(t *testing.T) {
	f := newFakePinecone(t, true)
	store := newTestStore(t, f)
	require.NoError(t, store.EnsureIndex(context.Background(), 3))

	matches, err := store.Query(context.Background(), []float32{0.1, 0.2, 0.3}, 2)
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, "327_0", matches[0].ID)
	assert.InDelta(t, 0.92, matches[0].Score, 1e-9)
	assert.Equal(t, int64(327), matches[0].Metadata.PageID)
	assert.True(t, matches[0].Metadata.IsMainPage)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestStore_DeleteAll(t *testing.T) {
	f := newFakePinecone(t, true)
	store := newTestStore(t, f)
	require.NoError(t, store.EnsureIndex(context.Background(), 3))

	require.NoError(t, store.DeleteAll(context.Background()))
	require.Len(t, f.deletes, 1)
	assert.Equal(t, true, f.deletes[0]["deleteAll"])
}

func TestStore_DataPlaneRequiresEnsureIndex(t *testing.T) {
	f := newFakePinecone(t, true)
	store := newTestStore(t, f)

	err := store.Upsert(context.Background(), []domain.VectorRecord{{ID: "1_0"}})
	assert.Error(t, err)

	_, err = store.Query(context.Background(), []float32{1}, 1)
	assert.Error(t, err)
}
