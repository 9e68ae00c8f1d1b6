package driving

import (
	"context"

	"github.com/wikivec/wikivec/internal/core/domain"
)

// SearchService provides semantic search to external actors.
type SearchService interface {
	// Search embeds the query and returns up to topK results ordered
	// by descending similarity score.
	Search(ctx context.Context, query string, topK int) ([]domain.SearchResult, error)
}
