// Package repository defines the data access contract for the descriptor registry.
//
// This package provides the repository abstraction both storage backends
// implement, the error kinds they report, and the validation they share.
// The implementations live in the memory and sqlite subpackages.
//
// # Repository Interface
//
// The Repository interface defines CRUD operations for shell descriptors and
// submodel descriptors. Submodels are addressable in two scopes:
//
//   - nested: owned by one shell and reached through that shell
//     (ListShellSubmodels, GetShellSubmodel, AddShellSubmodel, DeleteShellSubmodel)
//   - standalone: registered on their own
//     (ListSubmodels, GetSubmodel, AddSubmodel, DeleteSubmodel)
//
// The scopes never leak into each other: a submodel that was only ever nested
// is not returned by GetSubmodel or ListSubmodels.
//
// # Errors
//
// Every failure the contract defines is reported with a typed error that
// unwraps to one of the sentinels ErrInvalidArgument, ErrNotFound,
// ErrNotFoundInShell, ErrAlreadyExists or ErrSerialization, so callers can
// use errors.Is or the IsXxx predicates. Storage failures are wrapped and
// returned as-is.
//
// # Conformance
//
// The repotest subpackage holds the behavioural test suite every backend
// must pass.
package repository
