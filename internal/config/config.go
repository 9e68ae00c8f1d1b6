// Package config loads the wikivec server configuration from a TOML
// file. Every field has a working default; a missing file yields the
// default configuration. Secrets (API keys) are never stored in the
// file and come from the environment instead.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string `toml:"addr"`

	// ShutdownTimeoutSecs bounds graceful shutdown.
	ShutdownTimeoutSecs int `toml:"shutdown_timeout_secs"`
}

// WikipediaConfig configures the knowledge-source client.
type WikipediaConfig struct {
	// BaseURL is the MediaWiki Action API endpoint.
	BaseURL string `toml:"base_url"`

	// UserAgent identifies this client to the Wikipedia API, which
	// requires a descriptive user agent.
	UserAgent string `toml:"user_agent"`

	// TimeoutSecs is the per-request timeout.
	TimeoutSecs int `toml:"timeout_secs"`

	// MaxPages bounds linked-page fetching. The effective cap is
	// expressed in chunk units: fetching stops once MaxPages * 5
	// chunks have been produced.
	MaxPages int `toml:"max_pages"`
}

// OpenAIConfig configures the embedding service.
type OpenAIConfig struct {
	// Model is the embedding model name.
	Model string `toml:"model"`

	// Dimensions is the embedding vector size for the model.
	Dimensions int `toml:"dimensions"`

	// TimeoutSecs is the per-request timeout.
	TimeoutSecs int `toml:"timeout_secs"`
}

// PineconeConfig configures the vector store.
type PineconeConfig struct {
	// Index is the Pinecone index name.
	Index string `toml:"index"`

	// Cloud and Region select the serverless deployment target used
	// when the index has to be created.
	Cloud  string `toml:"cloud"`
	Region string `toml:"region"`

	// TimeoutSecs is the per-request timeout.
	TimeoutSecs int `toml:"timeout_secs"`
}

// ChunkerConfig configures text splitting.
type ChunkerConfig struct {
	ChunkSize    int `toml:"chunk_size"`
	ChunkOverlap int `toml:"chunk_overlap"`
}

// SearchConfig configures the search endpoint.
type SearchConfig struct {
	// DefaultTopK is used when a request omits top_k.
	DefaultTopK int `toml:"default_top_k"`

	// MaxTopK caps top_k to bound vector store query cost.
	MaxTopK int `toml:"max_top_k"`
}

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Wikipedia WikipediaConfig `toml:"wikipedia"`
	OpenAI    OpenAIConfig    `toml:"openai"`
	Pinecone  PineconeConfig  `toml:"pinecone"`
	Chunker   ChunkerConfig   `toml:"chunker"`
	Search    SearchConfig    `toml:"search"`

	// VectorStore selects the store backend: "pinecone" or "memory".
	// The memory backend exists for local development and tests.
	VectorStore string `toml:"vector_store"`

	// Topics is the enumerated list of indexable topics.
	Topics []string `toml:"topics"`
}

// defaultTopics mirrors the topic set the service launched with.
var defaultTopics = []string{
	"Artificial Intelligence",
	"Machine Learning",
	"Deep Learning",
	"Natural Language Processing",
	"Computer Vision",
	"Data Science",
	"Neural Networks",
	"Robotics",
	"Quantum Computing",
	"Blockchain",
	"Internet of Things",
	"Cloud Computing",
	"Cybersecurity",
	"Virtual Reality",
	"Augmented Reality",
	"Big Data",
	"Python Programming",
	"JavaScript",
	"Web Development",
	"Mobile Applications",
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                ":8000",
			ShutdownTimeoutSecs: 10,
		},
		Wikipedia: WikipediaConfig{
			BaseURL:     "https://en.wikipedia.org/w/api.php",
			UserAgent:   "wikivec/1.0 (semantic search backend)",
			TimeoutSecs: 30,
			MaxPages:    5,
		},
		OpenAI: OpenAIConfig{
			Model:       "text-embedding-3-small",
			Dimensions:  1536,
			TimeoutSecs: 30,
		},
		Pinecone: PineconeConfig{
			Index:       "wiki-search",
			Cloud:       "aws",
			Region:      "us-east-1",
			TimeoutSecs: 30,
		},
		Chunker: ChunkerConfig{
			ChunkSize:    500,
			ChunkOverlap: 50,
		},
		Search: SearchConfig{
			DefaultTopK: 5,
			MaxTopK:     50,
		},
		VectorStore: "pinecone",
		Topics:      defaultTopics,
	}
}

// Load reads the configuration from path. A missing file returns the
// defaults; a present file is unmarshalled over the defaults so partial
// files work.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Topics) == 0 {
		return errors.New("config: topics list must not be empty")
	}
	if c.Chunker.ChunkSize <= 0 {
		return errors.New("config: chunk_size must be positive")
	}
	if c.Chunker.ChunkOverlap < 0 {
		return errors.New("config: chunk_overlap must not be negative")
	}
	if c.Search.MaxTopK <= 0 {
		return errors.New("config: max_top_k must be positive")
	}
	switch c.VectorStore {
	case "pinecone", "memory":
	default:
		return fmt.Errorf("config: unknown vector_store %q", c.VectorStore)
	}
	return nil
}
