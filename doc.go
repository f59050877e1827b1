// Package goclone provides recursive duplication of arbitrary object graphs.
//
// goclone produces a structurally identical copy of any value in which every
// mutable sub-object has been independently duplicated, while cycles and
// shared references within the original graph are preserved as equivalent
// shared references in the copy. Mutating the copy never affects the
// original, and vice versa.
//
// Core components include:
//   - Copy Engine: the recursive, cycle-safe traversal behind DeepCopy
//   - Type Classifier: a registry of deeply immutable types returned as-is
//   - Identity Map: per-call tracking of originals to their clones
//   - Field Cache: per-type enumeration of fields that need deep copying
//
// Key features include identity-preserving copies of shared references and
// cycles, immutable fast paths, rank-aware array duplication, type-owned
// copy construction through DeepCopyable, and an isolated snapshot store
// built on top of the engine.
package goclone
