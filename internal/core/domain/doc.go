// Package domain defines the core entities for querytrans.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Query, Group, Negative, Term: the parsed query tree and its rendering
//   - Scheme, Ordering: how literals are expanded into spellings
//   - Message, MessageFilter: archived chat messages for word counting
//   - WordCountReport: the result of a word count
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
