package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/wikivec/wikivec/internal/core/domain"
	"github.com/wikivec/wikivec/internal/core/ports/driven"
	"github.com/wikivec/wikivec/internal/core/ports/driving"
	"github.com/wikivec/wikivec/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// Default top-k bounds used when the configuration leaves them unset.
const (
	DefaultTopK = 5
	MaxTopK     = 50
)

// SearchService answers semantic queries against the vector index.
type SearchService struct {
	embedder    driven.EmbeddingService
	vectors     driven.VectorStore
	defaultTopK int
	maxTopK     int
}

// NewSearchService creates a new search service. defaultTopK and
// maxTopK fall back to package defaults when non-positive.
func NewSearchService(embedder driven.EmbeddingService, vectors driven.VectorStore, defaultTopK, maxTopK int) *SearchService {
	if defaultTopK <= 0 {
		defaultTopK = DefaultTopK
	}
	if maxTopK <= 0 {
		maxTopK = MaxTopK
	}
	return &SearchService{
		embedder:    embedder,
		vectors:     vectors,
		defaultTopK: defaultTopK,
		maxTopK:     maxTopK,
	}
}

// Search embeds the query and returns up to topK results ordered by
// descending similarity score. topK is clamped to the configured
// maximum to bound vector store query cost.
func (s *SearchService) Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	if topK <= 0 {
		topK = s.defaultTopK
	}
	if topK > s.maxTopK {
		logger.Debug("top_k %d clamped to %d", topK, s.maxTopK)
		topK = s.maxTopK
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := s.vectors.Query(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("query vectors: %w", err)
	}
	logger.Debug("query %q returned %d matches", query, len(matches))

	results := make([]domain.SearchResult, 0, len(matches))
	for _, match := range matches {
		results = append(results, domain.SearchResult{
			Title:   match.Metadata.Title,
			Content: match.Metadata.Content,
			Score:   match.Score,
			PageID:  match.Metadata.PageID,
		})
	}
	return results, nil
}
