package cli

import (
	"aasregistry/internal/repository"
)

// Process exit codes
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitInvalidArgument = 2
	ExitNotFound        = 3
	ExitAlreadyExists   = 4
)

// ExitCode maps an error returned by Execute to a process exit code. A
// submodel missing from an existing shell counts as not found; a lookup
// with a blank id counts as an invalid argument.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case repository.IsInvalidArgument(err):
		return ExitInvalidArgument
	case repository.IsNotFound(err), repository.IsNotFoundInShell(err):
		return ExitNotFound
	case repository.IsAlreadyExists(err):
		return ExitAlreadyExists
	default:
		return ExitFailure
	}
}
