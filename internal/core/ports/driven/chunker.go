package driven

// Chunker splits text into bounded overlapping substrings suitable for
// embedding. Implementations are pure: the same input always produces
// the same chunks, and empty input produces no chunks.
type Chunker interface {
	// Split returns the ordered chunk sequence for the text.
	Split(text string) []string
}
