package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "text-embedding-3-small", cfg.OpenAI.Model)
	assert.Equal(t, 1536, cfg.OpenAI.Dimensions)
	assert.Equal(t, "wiki-search", cfg.Pinecone.Index)
	assert.Equal(t, 500, cfg.Chunker.ChunkSize)
	assert.Equal(t, 50, cfg.Chunker.ChunkOverlap)
	assert.Equal(t, 5, cfg.Wikipedia.MaxPages)
	assert.Equal(t, "pinecone", cfg.VectorStore)
	assert.Len(t, cfg.Topics, 20)
	assert.Contains(t, cfg.Topics, "Blockchain")
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
vector_store = "memory"
topics = ["Blockchain", "Robotics"]

[server]
addr = ":9090"

[search]
max_top_k = 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.VectorStore)
	assert.Equal(t, []string{"Blockchain", "Robotics"}, cfg.Topics)
	assert.Equal(t, 10, cfg.Search.MaxTopK)
	// Untouched sections keep their defaults.
	assert.Equal(t, "wiki-search", cfg.Pinecone.Index)
	assert.Equal(t, 500, cfg.Chunker.ChunkSize)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("topics = [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty topics", `topics = []`},
		{"zero chunk size", "[chunker]\nchunk_size = 0"},
		{"negative overlap", "[chunker]\nchunk_overlap = -1"},
		{"unknown store", `vector_store = "etcd"`},
		{"zero max top k", "[search]\nmax_top_k = 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}
