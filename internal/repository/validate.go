package repository

import (
	"strings"

	"aasregistry/internal/domain"
)

// isBlank reports whether id is empty or whitespace only
func isBlank(id string) bool {
	return strings.TrimSpace(id) == ""
}

// ValidateShellID rejects a blank shell id
func ValidateShellID(id string) error {
	if isBlank(id) {
		return NewInvalidArgumentError("shell id must not be blank")
	}
	return nil
}

// ValidateSubmodelID rejects a blank submodel id
func ValidateSubmodelID(id string) error {
	if isBlank(id) {
		return NewInvalidArgumentError("submodel id must not be blank")
	}
	return nil
}

// ValidateSubmodel rejects a missing descriptor or one without an identifier
func ValidateSubmodel(sm *domain.SubmodelDescriptor) error {
	if sm == nil {
		return NewInvalidArgumentError("submodel descriptor is required")
	}
	if isBlank(sm.Identification.ID) {
		return NewInvalidArgumentError("submodel descriptor has no identifier")
	}
	return nil
}

// ValidateShell rejects a missing descriptor, one without an identifier, and
// nested submodels that are missing an identifier or repeat one under match.
func ValidateShell(shell *domain.ShellDescriptor, match domain.IDMatch) error {
	if shell == nil {
		return NewInvalidArgumentError("shell descriptor is required")
	}
	if isBlank(shell.Identification.ID) {
		return NewInvalidArgumentError("shell descriptor has no identifier")
	}

	seen := make(map[string]struct{}, len(shell.SubmodelDescriptors))
	for i := range shell.SubmodelDescriptors {
		sm := &shell.SubmodelDescriptors[i]
		if err := ValidateSubmodel(sm); err != nil {
			return NewInvalidArgumentError("shell %q: nested submodel %d has no identifier", shell.ID(), i)
		}
		key := match.Key(sm.ID())
		if _, dup := seen[key]; dup {
			return NewNestedSubmodelExistsError(shell.ID(), sm.ID())
		}
		seen[key] = struct{}{}
	}
	return nil
}

// ValidateShellUpdate checks the arguments of UpdateShell before any lookup
func ValidateShellUpdate(id string, shell *domain.ShellDescriptor, match domain.IDMatch) error {
	if err := ValidateShellID(id); err != nil {
		return err
	}
	return ValidateShell(shell, match)
}
