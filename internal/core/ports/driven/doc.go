// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentStore: Document registry and chunk persistence
//   - SessionStore: Conversation session persistence
//   - VectorIndex: Chunk embedding storage and similarity search
//   - Chunker: Splits extracted text into retrievable units
//   - TextExtractor: Black-box document-to-text conversion
//   - EmbeddingService: Generates vector embeddings
//   - LLMService: Generates answers from prompts
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
