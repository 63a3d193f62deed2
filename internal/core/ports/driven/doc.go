// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Transport: Sends requests and returns raw envelopes
//   - PeerStore: Peer record persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil:
//
//   - Observer: Request, page and dropped-variant counters
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
