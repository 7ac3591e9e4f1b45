// Package domain defines the core domain types for the AAS descriptor registry.
//
// This package contains the descriptor entities the registry stores and the
// value objects they are built from. It has no dependencies on storage or
// transport.
//
// # Descriptors
//
// ShellDescriptor describes an Asset Administration Shell: its identification,
// short id, human-readable descriptions and display names, the endpoints it is
// reachable at, and the submodel descriptors it owns.
//
// SubmodelDescriptor describes a submodel: identification, short id, endpoints
// and a semantic id (an ordered sequence of typed keys).
//
// # Placement
//
// A stored submodel is either nested (owned by exactly one shell) or standalone
// (registered on its own). Placement makes that state explicit on every stored
// record instead of inferring it from which collection a record happens to
// live in.
//
// # Copies and equality
//
// Every descriptor type has Clone, which returns a structurally independent
// copy, and Equal, which compares all fields. Nil and empty slices compare
// equal.
//
// # Identifier matching
//
// IDMatch selects how identifiers are compared by the repositories. The
// default is exact, case-sensitive matching.
package domain
