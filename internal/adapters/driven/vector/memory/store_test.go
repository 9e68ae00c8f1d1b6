package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikivec/wikivec/internal/core/domain"
)

func record(id string, values []float32) domain.VectorRecord {
	return domain.VectorRecord{
		ID:       id,
		Values:   values,
		Metadata: domain.ChunkMetadata{Title: id, Content: "content of " + id},
	}
}

func TestStore_UpsertAndQuery(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.EnsureIndex(ctx, 2))

	require.NoError(t, store.Upsert(ctx, []domain.VectorRecord{
		record("a", []float32{1, 0}),
		record("b", []float32{0, 1}),
		record("c", []float32{0.9, 0.1}),
	}))

	matches, err := store.Query(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)

	require.Len(t, matches, 2)
	assert.Equal(t, "a", matches[0].ID)
	assert.Equal(t, "c", matches[1].ID)
	assert.Greater(t, matches[0].Score, matches[1].Score)
	assert.Equal(t, "content of a", matches[0].Metadata.Content)
}

func TestStore_UpsertOverwritesByID(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.EnsureIndex(ctx, 2))

	require.NoError(t, store.Upsert(ctx, []domain.VectorRecord{record("a", []float32{1, 0})}))
	require.NoError(t, store.Upsert(ctx, []domain.VectorRecord{record("a", []float32{0, 1})}))

	assert.Equal(t, 1, store.Len())

	matches, err := store.Query(ctx, []float32{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
}

func TestStore_DimensionMismatch(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.EnsureIndex(ctx, 3))

	err := store.Upsert(ctx, []domain.VectorRecord{record("a", []float32{1, 0})})
	assert.Error(t, err)
}

func TestStore_QueryLimitsToTopK(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.EnsureIndex(ctx, 2))

	require.NoError(t, store.Upsert(ctx, []domain.VectorRecord{
		record("a", []float32{1, 0}),
		record("b", []float32{0.5, 0.5}),
		record("c", []float32{0, 1}),
	}))

	matches, err := store.Query(ctx, []float32{1, 0}, 1)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestStore_DeleteAll(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.EnsureIndex(ctx, 2))
	require.NoError(t, store.Upsert(ctx, []domain.VectorRecord{record("a", []float32{1, 0})}))

	require.NoError(t, store.DeleteAll(ctx))

	matches, err := store.Query(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
