// Package domain defines the core business entities for MiroView.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Item: A normalised visual element on a board
//   - Connector: A labeled directed edge between two items
//   - BoardSnapshot: A point-in-time copy of a board's items and connectors
//   - GraphIndex: The adjacency view derived from one snapshot
//   - QueryResult: The canonical result every front-end serialises
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
