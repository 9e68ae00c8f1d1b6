package domain

import "fmt"

// Page represents a Wikipedia page as returned by the knowledge source.
type Page struct {
	// ID is the numeric Wikipedia page identifier.
	ID int64

	// Title is the page title.
	Title string

	// Summary is the lead-section plain text of the page.
	Summary string

	// IsPrimary is true for the page matched directly by the topic,
	// false for pages reached through outgoing links.
	IsPrimary bool
}

// ChunkRecord is a bounded substring of one page's text. It is the
// atomic unit of embedding and retrieval. Records are created during
// ingestion and immutable afterwards.
type ChunkRecord struct {
	// Title is the page title plus an ordinal part label,
	// e.g. "Blockchain - Part 2".
	Title string

	// Content is the chunk text.
	Content string

	// PageID is inherited from the source page.
	PageID int64

	// ChunkIndex is the 0-based ordinal within the page's chunk list.
	ChunkIndex int

	// IsPrimary is propagated from the source page.
	IsPrimary bool

	// Topic is the topic the ingestion request was made for.
	Topic string
}

// VectorID returns the vector store key for this chunk. The pair
// (page id, chunk index) is unique within an ingestion batch.
func (c ChunkRecord) VectorID() string {
	return fmt.Sprintf("%d_%d", c.PageID, c.ChunkIndex)
}

// Metadata returns the metadata stored alongside the chunk's vector.
func (c ChunkRecord) Metadata() ChunkMetadata {
	return ChunkMetadata{
		Title:      c.Title,
		Content:    c.Content,
		PageID:     c.PageID,
		ChunkID:    c.ChunkIndex,
		IsMainPage: c.IsPrimary,
		Topic:      c.Topic,
	}
}

// ChunkMetadata is the metadata payload attached to each upserted
// vector. Field names match the wire format of the vector store.
type ChunkMetadata struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	PageID     int64  `json:"page_id"`
	ChunkID    int    `json:"chunk_id"`
	IsMainPage bool   `json:"is_main_page"`
	Topic      string `json:"topic"`
}

// VectorRecord is a chunk plus its embedding, ready for upsert.
// Ownership passes to the vector store once upserted.
type VectorRecord struct {
	ID       string
	Values   []float32
	Metadata ChunkMetadata
}

// VectorMatch is a single nearest-neighbour hit from the vector store.
type VectorMatch struct {
	ID       string
	Score    float64
	Metadata ChunkMetadata
}

// SearchResult is a ranked hit returned to API clients. Ephemeral;
// reconstructed from vector metadata plus the query-time score.
type SearchResult struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
	PageID  int64   `json:"page_id"`
}

// IngestReport summarises one completed ingestion run.
type IngestReport struct {
	// DocumentCount is the number of chunk records processed.
	DocumentCount int

	// VectorsUpserted is the number of vectors sent to the store.
	VectorsUpserted int
}
