// Package httpapi exposes the application core over HTTP.
//
// It is a driving adapter: handlers depend only on the driving ports
// and translate between JSON request/response shapes and core calls.
package httpapi

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wikivec/wikivec/internal/core/ports/driving"
	"github.com/wikivec/wikivec/internal/logger"
)

//go:embed static
var staticFS embed.FS

// Config holds the HTTP server settings.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Server wires the driving ports to HTTP routes.
type Server struct {
	indexer  driving.IndexingService
	searcher driving.SearchService
	cfg      Config
	srv      *http.Server
}

// NewServer creates the HTTP server. Routes use Go 1.22 method
// patterns, so a wrong method on a known path yields 405.
func NewServer(cfg Config, indexer driving.IndexingService, searcher driving.SearchService) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		indexer:  indexer,
		searcher: searcher,
		cfg:      cfg,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.Handle("GET /static/", http.FileServerFS(staticFS))
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /topics", s.handleTopics)
	mux.HandleFunc("POST /index-documents", s.handleIndexDocuments)
	mux.HandleFunc("POST /search", s.handleSearch)
	mux.HandleFunc("DELETE /clear-index", s.handleClearIndex)

	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           requestLog(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the server's root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Run serves until the context is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening on %s", s.cfg.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("http server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(staticFS, "static/index.html")
	if err != nil {
		http.Error(w, "landing page unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// requestLog tags each request with an id and logs method, path,
// status, and duration.
func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		logger.Info("%s %s %d %s id=%s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond), id)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
