// Package store provides a type-aware snapshot store with full isolation.
//
// Every value put into the store is deep-copied on the way in, and every
// value read out is deep-copied on the way out, so no caller ever shares
// mutable state with the store or with another caller. Cycles and shared
// references inside a stored graph survive both copies intact.
//
// Core features include:
//   - Type-safe retrieval using generics, with interface lookups
//   - Per-snapshot identity and metadata (tags, description, timestamps)
//   - Merging between stores with collision strategies
//   - Deep cloning of entire stores
//   - JSON Schema descriptions of stored value types
//
// The store is safe for concurrent use.
package store
