package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"aasregistry/internal/config"
	"aasregistry/internal/domain"
	"aasregistry/internal/repository"
	"aasregistry/internal/repository/memory"
	"aasregistry/internal/repository/sqlite"
	"aasregistry/internal/repository/traced"
)

func TestOpenMemory(t *testing.T) {
	repo, err := Open(config.DefaultConfig(), nil)
	require.NoError(t, err)
	defer repo.Close()

	assert.IsType(t, &memory.Repository{}, repo)
	assert.Equal(t, "memory", repo.Name())
}

func TestOpenSQLite(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend = config.BackendSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "registry.db")

	repo, err := Open(cfg, nil)
	require.NoError(t, err)
	defer repo.Close()

	assert.IsType(t, &sqlite.Repository{}, repo)
	assert.Equal(t, "sqlite", repo.Name())
}

func TestOpenAppliesIDMatch(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.IDMatch = "FOLD"

	repo, err := Open(cfg, nil)
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	_, err = repo.CreateShell(ctx, domain.NewShellDescriptor("Shell-1", "x"))
	require.NoError(t, err)

	got, err := repo.GetShell(ctx, "shell-1")
	require.NoError(t, err)
	assert.Equal(t, "Shell-1", got.ID())
}

func TestOpenTraced(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	repo, err := Open(config.DefaultConfig(), tp.Tracer("test"))
	require.NoError(t, err)
	defer repo.Close()

	assert.IsType(t, &traced.Repository{}, repo)

	_, err = repo.ListShells(context.Background())
	require.NoError(t, err)
	require.Len(t, exporter.GetSpans(), 1)
	assert.Equal(t, traced.SpanPrefix+"ListShells", exporter.GetSpans()[0].Name)
}

func TestOpenErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{name: "nil config"},
		{name: "unknown backend", cfg: &config.Config{Backend: "postgres"}},
		{name: "unknown id match", cfg: &config.Config{Backend: config.BackendMemory, IDMatch: "fuzzy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := Open(tt.cfg, nil)
			require.Error(t, err)
			assert.Nil(t, repo)
			assert.True(t, repository.IsInvalidArgument(err))
		})
	}
}

func TestOpenSQLiteRejectsPolicyChange(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend = config.BackendSQLite
	cfg.Database.Path = filepath.Join(t.TempDir(), "registry.db")

	repo, err := Open(cfg, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	cfg.IDMatch = "fold"
	_, err = Open(cfg, nil)
	require.Error(t, err)
	assert.True(t, repository.IsInvalidArgument(err))
}
