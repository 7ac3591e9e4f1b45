package repository

import (
	"context"

	"aasregistry/internal/domain"
)

// Repository defines the interface for descriptor data access
type Repository interface {
	// Name returns a short name for the backend, e.g. "memory" or "sqlite"
	Name() string

	// Shell operations
	ListShells(ctx context.Context) ([]domain.ShellDescriptor, error)
	GetShell(ctx context.Context, id string) (*domain.ShellDescriptor, error)
	CreateShell(ctx context.Context, shell *domain.ShellDescriptor) (*domain.ShellDescriptor, error)
	UpdateShell(ctx context.Context, id string, shell *domain.ShellDescriptor) (*domain.ShellDescriptor, error)
	DeleteShell(ctx context.Context, id string) error

	// Nested submodel operations, scoped to one shell
	ListShellSubmodels(ctx context.Context, shellID string) ([]domain.SubmodelDescriptor, error)
	GetShellSubmodel(ctx context.Context, shellID, submodelID string) (*domain.SubmodelDescriptor, error)
	AddShellSubmodel(ctx context.Context, shellID string, submodel *domain.SubmodelDescriptor) (*domain.SubmodelDescriptor, error)
	DeleteShellSubmodel(ctx context.Context, shellID, submodelID string) error

	// Standalone submodel operations
	ListSubmodels(ctx context.Context) ([]domain.SubmodelDescriptor, error)
	GetSubmodel(ctx context.Context, submodelID string) (*domain.SubmodelDescriptor, error)
	AddSubmodel(ctx context.Context, submodel *domain.SubmodelDescriptor) (*domain.SubmodelDescriptor, error)
	DeleteSubmodel(ctx context.Context, submodelID string) error

	// Close releases resources
	Close() error
}
