// Package domain defines the core business entities for askpaper.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded document and its lifecycle state
//   - Chunk: A retrievable unit of document text
//   - Session: A conversation with its ordered turns
//   - Answer: A generated answer with citations
//   - Settings: The recognised configuration surface
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
