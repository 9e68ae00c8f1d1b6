// Package chunker provides a recursive character text splitter.
//
// Text is split at the strongest natural boundary available, in order:
// paragraph breaks, line breaks, sentence-ending punctuation, then
// whitespace, falling back to a character-level cut only when no better
// boundary exists within the window. Consecutive chunks overlap to
// preserve context across boundaries.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/wikivec/wikivec/internal/core/ports/driven"
)

// Ensure Splitter implements the interface.
var _ driven.Chunker = (*Splitter)(nil)

// DefaultChunkSize is the default maximum chunk length in characters.
const DefaultChunkSize = 500

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 50

// defaultSeparators lists split boundaries from strongest to weakest.
// The empty string terminates the list and means "split anywhere".
var defaultSeparators = []string{"\n\n", "\n", ". ", "! ", "? ", " ", ""}

// Splitter recursively splits text into bounded overlapping chunks.
// It is pure: no state is carried between calls.
type Splitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// WithSeparators sets the boundary preference order. An empty string
// entry allows a character-level fallback cut.
func WithSeparators(separators []string) Option {
	return func(s *Splitter) {
		if len(separators) > 0 {
			s.separators = separators
		}
	}
}

// New creates a splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultChunkOverlap,
		separators: defaultSeparators,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// Split returns the ordered chunk sequence for the text.
// Empty input yields no chunks.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.splitRecursive(text, s.separators)
}

// splitRecursive splits text at the strongest separator present, then
// recurses into pieces that are still too large with the weaker
// separators that remain.
func (s *Splitter) splitRecursive(text string, separators []string) []string {
	separator := separators[len(separators)-1]
	var remaining []string
	for i, candidate := range separators {
		if candidate == "" {
			separator = ""
			remaining = nil
			break
		}
		if strings.Contains(text, candidate) {
			separator = candidate
			remaining = separators[i+1:]
			break
		}
	}

	pieces := splitKeepingSeparator(text, separator)

	var chunks []string
	var fitting []string
	for _, piece := range pieces {
		if utf8.RuneCountInString(piece) <= s.chunkSize {
			fitting = append(fitting, piece)
			continue
		}
		// Flush what fits before descending into the oversized piece.
		if len(fitting) > 0 {
			chunks = append(chunks, s.merge(fitting)...)
			fitting = nil
		}
		if len(remaining) == 0 {
			// No weaker boundary left; keep the piece whole.
			chunks = append(chunks, strings.TrimSpace(piece))
			continue
		}
		chunks = append(chunks, s.splitRecursive(piece, remaining)...)
	}
	if len(fitting) > 0 {
		chunks = append(chunks, s.merge(fitting)...)
	}
	return chunks
}

// merge greedily packs pieces into chunks of at most chunkSize
// characters, carrying up to overlap characters of trailing pieces
// into the next chunk. Separators stay attached to their piece, so
// piece lengths are exact.
func (s *Splitter) merge(pieces []string) []string {
	var chunks []string
	var window []string
	total := 0

	flush := func() {
		chunk := strings.TrimSpace(strings.Join(window, ""))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	for _, piece := range pieces {
		length := utf8.RuneCountInString(piece)
		if total+length > s.chunkSize && total > 0 {
			flush()
			// Retain a tail of previous pieces as overlap.
			for len(window) > 0 && (total > s.overlap || total+length > s.chunkSize) {
				total -= utf8.RuneCountInString(window[0])
				window = window[1:]
			}
		}
		window = append(window, piece)
		total += length
	}
	flush()
	return chunks
}

// splitKeepingSeparator splits text by separator, leaving the separator
// attached to the end of the preceding piece. An empty separator splits
// the text into individual characters.
func splitKeepingSeparator(text, separator string) []string {
	if separator == "" {
		pieces := make([]string, 0, utf8.RuneCountInString(text))
		for _, r := range text {
			pieces = append(pieces, string(r))
		}
		return pieces
	}

	parts := strings.SplitAfter(text, separator)
	pieces := parts[:0]
	for _, part := range parts {
		if part != "" {
			pieces = append(pieces, part)
		}
	}
	return pieces
}
