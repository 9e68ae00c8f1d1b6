// Package domain defines the core business entities for wikivec.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Page: A Wikipedia page as fetched from the knowledge source
//   - ChunkRecord: A bounded substring of a page, the unit of embedding
//   - VectorRecord: A chunk plus its embedding, ready for upsert
//   - SearchResult: A ranked hit returned to API clients
//   - TopicList: The configured set of indexable topics
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
