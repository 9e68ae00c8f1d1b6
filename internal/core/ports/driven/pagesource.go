package driven

import (
	"context"

	"github.com/wikivec/wikivec/internal/core/domain"
)

// PageSource fetches topic pages from the external knowledge source.
type PageSource interface {
	// FetchTopic streams the primary page for the topic followed by
	// linked pages that exist and have non-empty summaries. The
	// primary page, when it exists, is always sent first.
	//
	// The page channel is closed when no more pages are available or
	// the context is cancelled. The error channel receives at most one
	// error; a topic whose primary page does not exist produces an
	// empty stream, not an error. Callers stop consumption by
	// cancelling the context.
	FetchTopic(ctx context.Context, topic string) (<-chan domain.Page, <-chan error)

	// Close releases resources.
	Close() error
}
