// Package domain defines the core types for productsearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchRequest: The query, collection and result count for one search
//   - SearchResultItem: A product returned by the search backend
//   - SearchResponse: The ordered result list
//   - Outcome: The terminal state of one search invocation
//   - Settings: Client configuration resolved from file, env and flags
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
