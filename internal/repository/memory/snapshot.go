package memory

import (
	"context"
	"errors"
	"fmt"

	"aasregistry/internal/backup"
	"aasregistry/internal/domain"
	"aasregistry/internal/repository"
)

// Snapshot is a serialized copy of the whole store, keyed like the store
// itself. It stays valid after the Repository changes.
type Snapshot struct {
	Shells    map[string][]byte `json:"shells"`
	Submodels map[string][]byte `json:"submodels"`
}

// Snapshot captures the current content of the store
func (r *Repository) Snapshot() (*Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shells := make(map[string]domain.ShellDescriptor, len(r.shells))
	for key, shell := range r.shells {
		shells[key] = *shell
	}
	submodels := make(map[string]submodelRecord, len(r.submodels))
	for key, rec := range r.submodels {
		submodels[key] = *rec
	}

	shellData, err := backup.CreateBackupMap(shells)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot shells: %w", err)
	}
	submodelData, err := backup.CreateBackupMap(submodels)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot submodels: %w", err)
	}

	return &Snapshot{Shells: shellData, Submodels: submodelData}, nil
}

// Restore replaces the content of the store with snap. The store is left
// untouched when snap cannot be decoded.
func (r *Repository) Restore(snap *Snapshot) error {
	if snap == nil {
		return repository.NewInvalidArgumentError("snapshot is required")
	}

	shells, err := backup.RestoreBackupMap[domain.ShellDescriptor](snap.Shells)
	if err != nil {
		return fmt.Errorf("failed to restore shells: %w", err)
	}
	submodels, err := backup.RestoreBackupMap[submodelRecord](snap.Submodels)
	if err != nil {
		return fmt.Errorf("failed to restore submodels: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.shells = make(map[string]*domain.ShellDescriptor, len(shells))
	for key, shell := range shells {
		r.shells[key] = &shell
	}
	r.submodels = make(map[string]*submodelRecord, len(submodels))
	for key, rec := range submodels {
		r.submodels[key] = &rec
	}
	return nil
}

// WithRollback runs fn against the repository and restores the content it
// had before fn when fn fails. Writes by other callers while fn runs are
// rolled back as well.
func (r *Repository) WithRollback(ctx context.Context, fn func(ctx context.Context, repo repository.Repository) error) error {
	snap, err := r.Snapshot()
	if err != nil {
		return err
	}

	if err := fn(ctx, r); err != nil {
		if restoreErr := r.Restore(snap); restoreErr != nil {
			return errors.Join(err, fmt.Errorf("failed to roll back: %w", restoreErr))
		}
		return err
	}
	return nil
}
