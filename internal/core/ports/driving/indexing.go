package driving

import (
	"context"

	"github.com/wikivec/wikivec/internal/core/domain"
)

// IndexingService ingests topic documents into the vector index and
// manages the index lifecycle.
type IndexingService interface {
	// Ingest fetches, chunks, embeds, and upserts documents for the
	// topic. Returns domain.ErrInvalidTopic for topics outside the
	// configured list and domain.ErrNoContent when nothing was fetched.
	Ingest(ctx context.Context, topic string) (domain.IngestReport, error)

	// Clear removes every record from the index.
	Clear(ctx context.Context) error

	// Topics returns the configured topic list.
	Topics() domain.TopicList
}
