package backup

import (
	"context"
	"fmt"

	"aasregistry/internal/codec"
	"aasregistry/internal/repository"
)

// Export collects every shell, with its nested submodels, and every
// standalone submodel from repo.
func Export(ctx context.Context, repo repository.Repository) (*codec.Document, error) {
	shells, err := repo.ListShells(ctx)
	if err != nil {
		return nil, fmt.Errorf("list shells: %w", err)
	}
	submodels, err := repo.ListSubmodels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submodels: %w", err)
	}
	return &codec.Document{Shells: shells, Submodels: submodels}, nil
}

// ImportResult counts what Import wrote
type ImportResult struct {
	Shells    int
	Submodels int
}

// Import creates every shell and standalone submodel of doc in repo. It
// stops at the first failure and reports how far it got; entries written
// before the failure stay in place.
func Import(ctx context.Context, repo repository.Repository, doc *codec.Document) (ImportResult, error) {
	var res ImportResult
	if doc == nil {
		return res, repository.NewInvalidArgumentError("import document is required")
	}

	for i := range doc.Shells {
		shell := &doc.Shells[i]
		if _, err := repo.CreateShell(ctx, shell); err != nil {
			return res, fmt.Errorf("import shell %q: %w", shell.ID(), err)
		}
		res.Shells++
	}

	for i := range doc.Submodels {
		sm := &doc.Submodels[i]
		if _, err := repo.AddSubmodel(ctx, sm); err != nil {
			return res, fmt.Errorf("import submodel %q: %w", sm.ID(), err)
		}
		res.Submodels++
	}

	return res, nil
}
