// Package domain defines the core types of the tgcore client.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawVariant: One wire-level object (constructor tag plus fields)
//   - RawEnvelope: A response payload with its auxiliary entity collections
//   - Request: A single remote call handed to the transport
//   - User, Chat, Message: Materialised entities
//   - Boost, Story, StarsTransaction, ...: Decoded domain objects
//
// Domain objects never reference the raw data they were decoded from.
// Once built they are self-contained and safe to share across goroutines.
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
