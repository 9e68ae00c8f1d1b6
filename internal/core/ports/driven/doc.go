// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - PageSource: Fetches topic pages from the knowledge source (Wikipedia)
//   - Chunker: Splits page text into bounded overlapping chunks
//   - EmbeddingService: Converts text into fixed-length vectors (OpenAI)
//   - VectorStore: Upserts, queries, and clears vectors (Pinecone)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
