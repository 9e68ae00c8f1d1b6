// Package memory provides an in-memory VectorStore using brute-force
// cosine similarity. It exists for tests and for local development
// without Pinecone credentials; contents are lost on restart.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/wikivec/wikivec/internal/core/domain"
	"github.com/wikivec/wikivec/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store keeps vectors in a map keyed by record id.
type Store struct {
	mu        sync.RWMutex
	dimension int
	records   map[string]domain.VectorRecord
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{records: make(map[string]domain.VectorRecord)}
}

// EnsureIndex records the expected dimensionality.
func (s *Store) EnsureIndex(_ context.Context, dimensions int) error {
	if dimensions <= 0 {
		return fmt.Errorf("memory: invalid dimension %d", dimensions)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimensions
	return nil
}

// Upsert inserts or overwrites records by id.
func (s *Store) Upsert(_ context.Context, records []domain.VectorRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range records {
		if s.dimension > 0 && len(record.Values) != s.dimension {
			return fmt.Errorf("memory: vector %s has dimension %d, want %d",
				record.ID, len(record.Values), s.dimension)
		}
		s.records[record.ID] = record
	}
	return nil
}

// Query returns up to topK matches ordered by descending cosine
// similarity.
func (s *Store) Query(_ context.Context, vector []float32, topK int) ([]domain.VectorMatch, error) {
	if topK <= 0 {
		topK = 5
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]domain.VectorMatch, 0, len(s.records))
	for _, record := range s.records {
		matches = append(matches, domain.VectorMatch{
			ID:       record.ID,
			Score:    cosine(vector, record.Values),
			Metadata: record.Metadata,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// DeleteAll removes every record.
func (s *Store) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]domain.VectorRecord)
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// cosine computes cosine similarity between two vectors. Mismatched or
// zero-length vectors score zero.
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
