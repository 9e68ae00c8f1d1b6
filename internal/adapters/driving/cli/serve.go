package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"

	openaiembed "github.com/wikivec/wikivec/internal/adapters/driven/embedding/openai"
	"github.com/wikivec/wikivec/internal/adapters/driven/vector/memory"
	"github.com/wikivec/wikivec/internal/adapters/driven/vector/pinecone"
	"github.com/wikivec/wikivec/internal/adapters/driving/httpapi"
	"github.com/wikivec/wikivec/internal/config"
	"github.com/wikivec/wikivec/internal/connectors/wikipedia"
	"github.com/wikivec/wikivec/internal/core/domain"
	"github.com/wikivec/wikivec/internal/core/ports/driven"
	"github.com/wikivec/wikivec/internal/core/services"
	"github.com/wikivec/wikivec/internal/logger"
	"github.com/wikivec/wikivec/internal/postprocessors/chunker"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Starts the wikivec HTTP API.

Reads OPENAI_API_KEY and PINECONE_API_KEY from the environment (a
.env file in the working directory is loaded if present). All other
settings come from the config file, with built-in defaults.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Best effort: secrets may come from the real environment instead.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	embedder, err := openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:     os.Getenv("OPENAI_API_KEY"),
		Model:      openai.EmbeddingModel(cfg.OpenAI.Model),
		Dimensions: cfg.OpenAI.Dimensions,
		Timeout:    time.Duration(cfg.OpenAI.TimeoutSecs) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("embedding service: %w", err)
	}
	defer embedder.Close()

	if err := embedder.Ping(ctx); err != nil {
		return fmt.Errorf("embedding service unreachable: %w", err)
	}
	logger.Info("embedding model %s (%d dimensions)", embedder.ModelName(), embedder.Dimensions())

	store, err := buildVectorStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureIndex(ctx, embedder.Dimensions()); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}

	client := wikipedia.NewClient(wikipedia.Config{
		BaseURL:   cfg.Wikipedia.BaseURL,
		UserAgent: cfg.Wikipedia.UserAgent,
		Timeout:   time.Duration(cfg.Wikipedia.TimeoutSecs) * time.Second,
	})
	source := wikipedia.NewConnector(client)
	defer source.Close()

	splitter := chunker.New(
		chunker.WithChunkSize(cfg.Chunker.ChunkSize),
		chunker.WithOverlap(cfg.Chunker.ChunkOverlap),
	)

	indexer := services.NewIngestService(
		source, splitter, embedder, store,
		domain.TopicList(cfg.Topics), cfg.Wikipedia.MaxPages,
	)
	searcher := services.NewSearchService(
		embedder, store,
		cfg.Search.DefaultTopK, cfg.Search.MaxTopK,
	)

	server := httpapi.NewServer(httpapi.Config{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: time.Duration(cfg.Server.ShutdownTimeoutSecs) * time.Second,
	}, indexer, searcher)

	return server.Run(ctx)
}

func buildVectorStore(cfg *config.Config) (driven.VectorStore, error) {
	switch cfg.VectorStore {
	case "memory":
		logger.Warn("using in-memory vector store; data is lost on restart")
		return memory.NewStore(), nil
	default:
		store, err := pinecone.NewStore(pinecone.Config{
			APIKey:  os.Getenv("PINECONE_API_KEY"),
			Index:   cfg.Pinecone.Index,
			Cloud:   cfg.Pinecone.Cloud,
			Region:  cfg.Pinecone.Region,
			Timeout: time.Duration(cfg.Pinecone.TimeoutSecs) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("pinecone store: %w", err)
		}
		return store, nil
	}
}
