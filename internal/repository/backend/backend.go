// Package backend opens the repository selected by configuration.
package backend

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"aasregistry/internal/config"
	"aasregistry/internal/domain"
	"aasregistry/internal/repository"
	"aasregistry/internal/repository/memory"
	"aasregistry/internal/repository/sqlite"
	"aasregistry/internal/repository/traced"
)

// Open builds the repository named by cfg.Backend with the configured id
// matching policy. When tracer is non-nil every operation is traced.
func Open(cfg *config.Config, tracer trace.Tracer) (repository.Repository, error) {
	if cfg == nil {
		return nil, repository.NewInvalidArgumentError("config is required")
	}

	match, err := domain.ParseIDMatch(cfg.IDMatch)
	if err != nil {
		return nil, repository.NewInvalidArgumentError("id_match: %v", err)
	}

	var repo repository.Repository
	switch strings.ToLower(cfg.Backend) {
	case "", config.BackendMemory:
		repo = memory.New(memory.WithIDMatch(match))
	case config.BackendSQLite:
		db, err := sqlite.New(cfg.Database.Path, sqlite.WithIDMatch(match))
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		repo = db
	default:
		return nil, repository.NewInvalidArgumentError("unknown backend %q", cfg.Backend)
	}

	return traced.New(repo, tracer), nil
}
