package wikipedia

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikivec/wikivec/internal/core/domain"
)

func collect(t *testing.T, pages <-chan domain.Page, errs <-chan error) ([]domain.Page, error) {
	t.Helper()

	var got []domain.Page
	for page := range pages {
		got = append(got, page)
	}
	return got, <-errs
}

func TestConnector_FetchTopic(t *testing.T) {
	connector := NewConnector(newTestClient(t))

	pages, errs := connector.FetchTopic(context.Background(), "Blockchain")
	got, err := collect(t, pages, errs)
	require.NoError(t, err)

	// Primary first, then linked pages that exist with non-empty
	// summaries. "Ghost" is missing and "Empty page" has no text.
	require.Len(t, got, 3)

	assert.True(t, got[0].IsPrimary)
	assert.Equal(t, "Blockchain", got[0].Title)
	assert.Equal(t, int64(327), got[0].ID)

	assert.False(t, got[1].IsPrimary)
	assert.Equal(t, "Distributed ledger", got[1].Title)

	assert.False(t, got[2].IsPrimary)
	assert.Equal(t, "Cryptography", got[2].Title)
}

func TestConnector_FetchTopic_MissingPrimary(t *testing.T) {
	connector := NewConnector(newTestClient(t))

	pages, errs := connector.FetchTopic(context.Background(), "Ghost")
	got, err := collect(t, pages, errs)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestConnector_FetchTopic_CancelStopsStream(t *testing.T) {
	connector := NewConnector(newTestClient(t))

	ctx, cancel := context.WithCancel(context.Background())
	pages, errs := connector.FetchTopic(ctx, "Blockchain")

	// Read the primary page, then stop consuming.
	first, ok := <-pages
	require.True(t, ok)
	assert.True(t, first.IsPrimary)
	cancel()

	// The stream must terminate promptly without reporting an error.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, open := <-pages:
			if !open {
				assert.NoError(t, <-errs)
				return
			}
		case <-deadline:
			t.Fatal("stream did not close after cancellation")
		}
	}
}
