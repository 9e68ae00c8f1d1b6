// Package services implements the application core behind the driving
// ports: topic ingestion and semantic search.
package services

import (
	"context"
	"fmt"

	"github.com/wikivec/wikivec/internal/core/domain"
	"github.com/wikivec/wikivec/internal/core/ports/driven"
	"github.com/wikivec/wikivec/internal/core/ports/driving"
	"github.com/wikivec/wikivec/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IndexingService = (*IngestService)(nil)

// UpsertBatchSize caps records per upsert call. Batching respects the
// vector store's request-size limit, not performance.
const UpsertBatchSize = 100

// chunksPerPage converts the max-pages setting into the chunk budget
// that bounds linked-page fetching. The cap is counted in chunk units
// rather than pages.
const chunksPerPage = 5

// IngestService turns a topic into upserted vector records: fetch
// pages, chunk, embed, and batch-upsert.
type IngestService struct {
	source   driven.PageSource
	chunker  driven.Chunker
	embedder driven.EmbeddingService
	vectors  driven.VectorStore
	topics   domain.TopicList
	maxPages int
}

// NewIngestService creates a new ingestion service.
func NewIngestService(
	source driven.PageSource,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	vectors driven.VectorStore,
	topics domain.TopicList,
	maxPages int,
) *IngestService {
	if maxPages <= 0 {
		maxPages = 5
	}
	return &IngestService{
		source:   source,
		chunker:  chunker,
		embedder: embedder,
		vectors:  vectors,
		topics:   topics,
		maxPages: maxPages,
	}
}

// Topics returns the configured topic list.
func (s *IngestService) Topics() domain.TopicList {
	return s.topics
}

// Ingest fetches, chunks, embeds, and upserts documents for the topic.
//
// Upserts are at-least-once: a failure mid-run may leave earlier
// batches committed. Upsert ids are stable, so re-running the same
// topic overwrites rather than duplicates.
func (s *IngestService) Ingest(ctx context.Context, topic string) (domain.IngestReport, error) {
	if !s.topics.Contains(topic) {
		return domain.IngestReport{}, fmt.Errorf("%q: %w", topic, domain.ErrInvalidTopic)
	}

	logger.Info("ingesting topic %q", topic)

	records, err := s.collectChunks(ctx, topic)
	if err != nil {
		return domain.IngestReport{}, fmt.Errorf("fetch documents: %w", err)
	}
	if len(records) == 0 {
		return domain.IngestReport{}, fmt.Errorf("topic %q: %w", topic, domain.ErrNoContent)
	}
	logger.Debug("collected %d chunk records for %q", len(records), topic)

	vectorRecords := make([]domain.VectorRecord, 0, len(records))
	for _, record := range records {
		embedding, err := s.embedder.Embed(ctx, record.Content)
		if err != nil {
			return domain.IngestReport{}, fmt.Errorf("embed chunk %s: %w", record.VectorID(), err)
		}
		vectorRecords = append(vectorRecords, domain.VectorRecord{
			ID:       record.VectorID(),
			Values:   embedding,
			Metadata: record.Metadata(),
		})
	}

	upserted := 0
	for start := 0; start < len(vectorRecords); start += UpsertBatchSize {
		end := min(start+UpsertBatchSize, len(vectorRecords))
		batch := vectorRecords[start:end]
		if err := s.vectors.Upsert(ctx, batch); err != nil {
			return domain.IngestReport{}, fmt.Errorf("upsert batch at %d: %w", start, err)
		}
		upserted += len(batch)
		logger.Debug("upserted batch of %d (total %d)", len(batch), upserted)
	}

	logger.Info("indexed %d chunks for %q", upserted, topic)
	return domain.IngestReport{
		DocumentCount:   len(records),
		VectorsUpserted: upserted,
	}, nil
}

// collectChunks streams pages for the topic and splits them into chunk
// records. Fetching stops once the chunk budget (maxPages * 5) is
// reached; the budget counts chunks across all pages, primary included.
func (s *IngestService) collectChunks(ctx context.Context, topic string) ([]domain.ChunkRecord, error) {
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	pages, errs := s.source.FetchTopic(fetchCtx, topic)

	budget := s.maxPages * chunksPerPage
	var records []domain.ChunkRecord
	for page := range pages {
		chunks := s.chunker.Split(page.Summary)
		for i, chunk := range chunks {
			records = append(records, domain.ChunkRecord{
				Title:      fmt.Sprintf("%s - Part %d", page.Title, i+1),
				Content:    chunk,
				PageID:     page.ID,
				ChunkIndex: i,
				IsPrimary:  page.IsPrimary,
				Topic:      topic,
			})
		}
		if len(records) >= budget {
			logger.Debug("chunk budget %d reached, stopping fetch", budget)
			cancel()
			break
		}
	}

	// The error channel closes once the stream goroutine exits.
	if err := <-errs; err != nil {
		return nil, err
	}
	return records, nil
}

// Clear removes every record from the vector index.
func (s *IngestService) Clear(ctx context.Context) error {
	logger.Info("clearing vector index")
	if err := s.vectors.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}
	return nil
}
