package wikipedia

import (
	"context"
	"errors"
	"strings"

	"github.com/wikivec/wikivec/internal/core/domain"
	"github.com/wikivec/wikivec/internal/core/ports/driven"
	"github.com/wikivec/wikivec/internal/logger"
)

// Ensure Connector implements the interface.
var _ driven.PageSource = (*Connector)(nil)

// Connector streams topic pages from Wikipedia. The primary page is
// sent first, then linked pages lazily as the consumer reads; the
// consumer stops fetching by cancelling the context.
type Connector struct {
	client *Client
}

// NewConnector creates a page source backed by the given client.
func NewConnector(client *Client) *Connector {
	return &Connector{client: client}
}

// FetchTopic streams the topic's primary page followed by linked pages
// that exist and have non-empty summaries. A topic whose primary page
// does not exist produces an empty stream without an error.
func (c *Connector) FetchTopic(ctx context.Context, topic string) (<-chan domain.Page, <-chan error) {
	pages := make(chan domain.Page)
	errs := make(chan error, 1)

	go func() {
		defer close(pages)
		defer close(errs)

		primary, err := c.client.PageExtract(ctx, topic)
		if err != nil {
			if errors.Is(err, domain.ErrPageMissing) {
				logger.Debug("primary page for %q does not exist", topic)
				return
			}
			errs <- err
			return
		}

		primary.IsPrimary = true
		if strings.TrimSpace(primary.Summary) != "" {
			if !send(ctx, pages, primary) {
				return
			}
		}

		links, err := c.client.PageLinks(ctx, primary.Title)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			errs <- err
			return
		}
		logger.Debug("page %q has %d outgoing links", primary.Title, len(links))

		for _, title := range links {
			if ctx.Err() != nil {
				return
			}

			page, err := c.client.PageExtract(ctx, title)
			if err != nil {
				if errors.Is(err, domain.ErrPageMissing) {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				errs <- err
				return
			}
			if strings.TrimSpace(page.Summary) == "" {
				continue
			}
			if !send(ctx, pages, page) {
				return
			}
		}
	}()

	return pages, errs
}

// Close releases resources.
func (c *Connector) Close() error {
	return nil
}

// send delivers a page unless the context is cancelled first.
func send(ctx context.Context, pages chan<- domain.Page, page domain.Page) bool {
	select {
	case pages <- page:
		return true
	case <-ctx.Done():
		return false
	}
}
