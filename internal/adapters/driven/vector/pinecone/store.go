// Package pinecone provides a VectorStore adapter backed by the
// Pinecone REST API.
//
// The adapter talks to two endpoints: the control plane
// (https://api.pinecone.io) for index provisioning, and the per-index
// data plane host for upsert, query, and delete operations. The data
// plane host is resolved during EnsureIndex.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wikivec/wikivec/internal/core/domain"
	"github.com/wikivec/wikivec/internal/core/ports/driven"
	"github.com/wikivec/wikivec/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultControllerURL = "https://api.pinecone.io"
	DefaultCloud         = "aws"
	DefaultRegion        = "us-east-1"
	DefaultTimeout       = 30 * time.Second

	// DefaultSettleDelay is how long to wait after creating an index
	// before it becomes queryable.
	DefaultSettleDelay = 10 * time.Second
)

// Config holds configuration for the Pinecone store.
type Config struct {
	// APIKey is the Pinecone API key (required).
	APIKey string

	// Index is the index name (required).
	Index string

	// Cloud and Region select the serverless deployment target used
	// when the index has to be created.
	Cloud  string
	Region string

	// ControllerURL overrides the control plane endpoint. Useful for
	// tests.
	ControllerURL string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// SettleDelay overrides the post-create settling wait.
	SettleDelay time.Duration
}

// Store is a Pinecone-backed vector store.
type Store struct {
	apiKey        string
	indexName     string
	cloud         string
	region        string
	controllerURL string
	settleDelay   time.Duration
	client        *http.Client

	// host is the data plane base URL, set by EnsureIndex.
	host string
}

// NewStore creates a new Pinecone store. EnsureIndex must be called
// before any data plane operation.
func NewStore(cfg Config) (*Store, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone: API key is required")
	}
	if cfg.Index == "" {
		return nil, fmt.Errorf("pinecone: index name is required")
	}
	if cfg.Cloud == "" {
		cfg.Cloud = DefaultCloud
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.ControllerURL == "" {
		cfg.ControllerURL = DefaultControllerURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}

	return &Store{
		apiKey:        cfg.APIKey,
		indexName:     cfg.Index,
		cloud:         cfg.Cloud,
		region:        cfg.Region,
		controllerURL: cfg.ControllerURL,
		settleDelay:   cfg.SettleDelay,
		client:        &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// indexDescription is the control plane response for an index.
type indexDescription struct {
	Name      string `json:"name"`
	Dimension int    `json:"dimension"`
	Metric    string `json:"metric"`
	Host      string `json:"host"`
}

// EnsureIndex resolves the index host, creating the index with cosine
// similarity when it does not exist. Newly created indexes need a
// settling delay before they accept queries.
func (s *Store) EnsureIndex(ctx context.Context, dimensions int) error {
	if dimensions <= 0 {
		return fmt.Errorf("pinecone: invalid dimension %d", dimensions)
	}

	desc, status, err := s.describeIndex(ctx)
	if err != nil {
		return err
	}

	switch status {
	case http.StatusOK:
		logger.Info("using existing pinecone index %q", s.indexName)
	case http.StatusNotFound:
		logger.Info("creating pinecone index %q (dimension=%d, metric=cosine)", s.indexName, dimensions)
		desc, err = s.createIndex(ctx, dimensions)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.settleDelay):
		}
	default:
		return fmt.Errorf("pinecone: describe index returned status %d", status)
	}

	if desc.Host == "" {
		return fmt.Errorf("pinecone: index %q has no host", s.indexName)
	}
	s.host = desc.Host
	if !strings.Contains(s.host, "://") {
		s.host = "https://" + s.host
	}
	return nil
}

func (s *Store) describeIndex(ctx context.Context) (indexDescription, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.controllerURL+"/indexes/"+s.indexName, http.NoBody)
	if err != nil {
		return indexDescription{}, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return indexDescription{}, 0, fmt.Errorf("describe index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return indexDescription{}, resp.StatusCode, nil
	}

	var desc indexDescription
	if err := json.NewDecoder(resp.Body).Decode(&desc); err != nil {
		return indexDescription{}, 0, fmt.Errorf("decode index description: %w", err)
	}
	return desc, resp.StatusCode, nil
}

func (s *Store) createIndex(ctx context.Context, dimensions int) (indexDescription, error) {
	body := map[string]any{
		"name":      s.indexName,
		"dimension": dimensions,
		"metric":    "cosine",
		"spec": map[string]any{
			"serverless": map[string]any{
				"cloud":  s.cloud,
				"region": s.region,
			},
		},
	}

	var desc indexDescription
	if err := s.postJSON(ctx, s.controllerURL+"/indexes", body, &desc); err != nil {
		return indexDescription{}, fmt.Errorf("create index: %w", err)
	}
	return desc, nil
}

// upsertVector is the data plane wire format for one vector.
type upsertVector struct {
	ID       string               `json:"id"`
	Values   []float32            `json:"values"`
	Metadata domain.ChunkMetadata `json:"metadata"`
}

// Upsert inserts or overwrites records by id.
func (s *Store) Upsert(ctx context.Context, records []domain.VectorRecord) error {
	if err := s.ready(); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	vectors := make([]upsertVector, len(records))
	for i, record := range records {
		vectors[i] = upsertVector{
			ID:       record.ID,
			Values:   record.Values,
			Metadata: record.Metadata,
		}
	}

	body := map[string]any{"vectors": vectors}
	if err := s.postJSON(ctx, s.host+"/vectors/upsert", body, nil); err != nil {
		return fmt.Errorf("upsert %d vectors: %w", len(records), err)
	}
	return nil
}

// Query returns up to topK matches ordered by descending score.
func (s *Store) Query(ctx context.Context, vector []float32, topK int) ([]domain.VectorMatch, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = 5
	}

	body := map[string]any{
		"vector":          vector,
		"topK":            topK,
		"includeMetadata": true,
		"includeValues":   false,
	}

	var resp struct {
		Matches []struct {
			ID       string               `json:"id"`
			Score    float64              `json:"score"`
			Metadata domain.ChunkMetadata `json:"metadata"`
		} `json:"matches"`
	}
	if err := s.postJSON(ctx, s.host+"/query", body, &resp); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	matches := make([]domain.VectorMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, domain.VectorMatch{
			ID:       m.ID,
			Score:    m.Score,
			Metadata: m.Metadata,
		})
	}
	return matches, nil
}

// DeleteAll removes every record from the index. Irreversible.
func (s *Store) DeleteAll(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}

	body := map[string]any{"deleteAll": true}
	if err := s.postJSON(ctx, s.host+"/vectors/delete", body, nil); err != nil {
		return fmt.Errorf("delete all: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}

func (s *Store) ready() error {
	if s.host == "" {
		return fmt.Errorf("pinecone: index host not resolved, call EnsureIndex first")
	}
	return nil
}

// postJSON sends a JSON request and optionally decodes the response.
func (s *Store) postJSON(ctx context.Context, url string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("pinecone status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
