package services

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/wikivec/wikivec/internal/core/domain"
)

// --- Mock implementations ---

// mockPageSource implements driven.PageSource for testing.
type mockPageSource struct {
	pages      []domain.Page
	streamErr  error
	fetchCalls atomic.Int32
	pagesSent  atomic.Int32
}

func (m *mockPageSource) FetchTopic(ctx context.Context, _ string) (<-chan domain.Page, <-chan error) {
	m.fetchCalls.Add(1)

	pages := make(chan domain.Page)
	errs := make(chan error, 1)
	go func() {
		defer close(pages)
		defer close(errs)
		for _, page := range m.pages {
			select {
			case pages <- page:
				m.pagesSent.Add(1)
			case <-ctx.Done():
				return
			}
		}
		if m.streamErr != nil {
			errs <- m.streamErr
		}
	}()
	return pages, errs
}

func (m *mockPageSource) Close() error { return nil }

// pipeChunker implements driven.Chunker for testing; it splits text on
// "|" so tests control chunk boundaries exactly.
type pipeChunker struct{}

func (pipeChunker) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return strings.Split(text, "|")
}

// mockEmbedder implements driven.EmbeddingService for testing.
type mockEmbedder struct {
	embedding  []float32
	embedErr   error
	embedCalls atomic.Int32
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	m.embedCalls.Add(1)
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embedding, nil
}

func (m *mockEmbedder) Dimensions() int              { return len(m.embedding) }
func (m *mockEmbedder) ModelName() string            { return "mock-embedder" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockVectorStore implements driven.VectorStore for testing.
type mockVectorStore struct {
	batches    [][]domain.VectorRecord
	matches    []domain.VectorMatch
	upsertErr  error
	queryErr   error
	deleteErr  error
	queriedK   int
	deleted    bool
}

func (m *mockVectorStore) EnsureIndex(_ context.Context, _ int) error { return nil }

func (m *mockVectorStore) Upsert(_ context.Context, records []domain.VectorRecord) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	batch := make([]domain.VectorRecord, len(records))
	copy(batch, records)
	m.batches = append(m.batches, batch)
	return nil
}

func (m *mockVectorStore) Query(_ context.Context, _ []float32, topK int) ([]domain.VectorMatch, error) {
	m.queriedK = topK
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if topK < len(m.matches) {
		return m.matches[:topK], nil
	}
	return m.matches, nil
}

func (m *mockVectorStore) DeleteAll(_ context.Context) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = true
	return nil
}

func (m *mockVectorStore) Close() error { return nil }

func (m *mockVectorStore) upserted() []domain.VectorRecord {
	var all []domain.VectorRecord
	for _, batch := range m.batches {
		all = append(all, batch...)
	}
	return all
}
