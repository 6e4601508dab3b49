// Package domain defines the core entities of the ICE registry client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Entry: One registry record (metadata plus optional sequence document)
//   - EntryID: An entry identifier in numeric or part-number form
//   - SequenceDocument: Opaque handle to a structured sequence document
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
