package driven

import (
	"context"

	"github.com/wikivec/wikivec/internal/core/domain"
)

// VectorStore persists embeddings with metadata and supports
// nearest-neighbour search by cosine similarity.
type VectorStore interface {
	// EnsureIndex provisions the backing index if it does not exist,
	// using the given dimensionality and cosine similarity. Newly
	// created indexes may need a settling delay before first use;
	// implementations handle that internally.
	EnsureIndex(ctx context.Context, dimensions int) error

	// Upsert inserts or overwrites records by id.
	Upsert(ctx context.Context, records []domain.VectorRecord) error

	// Query returns up to topK matches for the vector, ordered by
	// descending score, with metadata included.
	Query(ctx context.Context, vector []float32, topK int) ([]domain.VectorMatch, error)

	// DeleteAll removes every record from the index. Irreversible.
	DeleteAll(ctx context.Context) error

	// Close releases resources.
	Close() error
}
