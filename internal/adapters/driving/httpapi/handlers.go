package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/wikivec/wikivec/internal/core/domain"
	"github.com/wikivec/wikivec/internal/logger"
)

type topicsResponse struct {
	Topics []string `json:"topics"`
}

type indexRequest struct {
	Topic string `json:"topic"`
}

type indexResponse struct {
	Message       string `json:"message"`
	Topic         string `json:"topic"`
	DocumentCount int    `json:"document_count"`
}

type searchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

type clearResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleTopics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, topicsResponse{Topics: s.indexer.Topics()})
}

func (s *Server) handleIndexDocuments(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Topic == "" {
		writeError(w, http.StatusBadRequest, "topic is required")
		return
	}

	report, err := s.indexer.Ingest(r.Context(), req.Topic)
	if err != nil {
		logger.Warn("index-documents %q: %v", req.Topic, err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, indexResponse{
		Message:       fmt.Sprintf("Successfully indexed %d document chunks for %s", report.DocumentCount, req.Topic),
		Topic:         req.Topic,
		DocumentCount: report.DocumentCount,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	results, err := s.searcher.Search(r.Context(), req.Query, req.TopK)
	if err != nil {
		logger.Warn("search %q: %v", req.Query, err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleClearIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.indexer.Clear(r.Context()); err != nil {
		logger.Warn("clear-index: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, clearResponse{Message: "Index cleared successfully"})
}

// statusFor maps validation errors to 400; everything else is a
// collaborator failure and maps to 500 with the error text verbatim.
func statusFor(err error) int {
	if errors.Is(err, domain.ErrInvalidTopic) || errors.Is(err, domain.ErrNoContent) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
