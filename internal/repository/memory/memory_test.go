package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"aasregistry/internal/domain"
	"aasregistry/internal/repository"
	"aasregistry/internal/repository/repotest"
)

func TestRepository(t *testing.T) {
	repotest.Run(t, func(t *testing.T, match domain.IDMatch) repository.Repository {
		return New(WithIDMatch(match))
	})
}

func TestIndependentInstances(t *testing.T) {
	ctx := context.Background()
	a, b := New(), New()

	_, err := a.CreateShell(ctx, repotest.SampleShell("shell-1"))
	require.NoError(t, err)

	_, err = b.GetShell(ctx, "shell-1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestNestedRegistration(t *testing.T) {
	ctx := context.Background()
	repo := New()

	_, err := repo.CreateShell(ctx, repotest.SampleShell("shell-1", repotest.SampleSubmodel("sm-1")))
	require.NoError(t, err)
	_, err = repo.CreateShell(ctx, repotest.SampleShell("shell-2", repotest.SampleSubmodel("sm-1"), repotest.SampleSubmodel("sm-2")))
	require.NoError(t, err)

	p, ok := repo.placement("sm-1")
	require.True(t, ok)
	require.Equal(t, domain.Nested("shell-1"), p, "first write wins")

	p, ok = repo.placement("sm-2")
	require.True(t, ok)
	require.True(t, p.OwnedBy("shell-2"))

	// removing a nesting the registration does not belong to keeps it
	require.NoError(t, repo.DeleteShellSubmodel(ctx, "shell-2", "sm-1"))
	p, ok = repo.placement("sm-1")
	require.True(t, ok)
	require.Equal(t, domain.Nested("shell-1"), p)

	require.NoError(t, repo.DeleteShell(ctx, "shell-1"))
	_, ok = repo.placement("sm-1")
	require.False(t, ok)

	_, err = repo.AddShellSubmodel(ctx, "shell-2", repotest.SampleSubmodel("sm-3"))
	require.NoError(t, err)
	p, ok = repo.placement("sm-3")
	require.True(t, ok)
	require.Equal(t, domain.Nested("shell-2"), p)
}

func TestStandaloneTakesOverNestedRegistration(t *testing.T) {
	ctx := context.Background()
	repo := New()

	_, err := repo.CreateShell(ctx, repotest.SampleShell("shell-1", repotest.SampleSubmodel("sm-1")))
	require.NoError(t, err)
	_, err = repo.AddSubmodel(ctx, repotest.SampleSubmodel("sm-1"))
	require.NoError(t, err)

	p, ok := repo.placement("sm-1")
	require.True(t, ok)
	require.True(t, p.IsStandalone())

	require.NoError(t, repo.DeleteShellSubmodel(ctx, "shell-1", "sm-1"))
	p, ok = repo.placement("sm-1")
	require.True(t, ok)
	require.True(t, p.IsStandalone())
}

func TestUpdateShellReregistersNested(t *testing.T) {
	ctx := context.Background()
	repo := New()

	_, err := repo.CreateShell(ctx, repotest.SampleShell("shell-1", repotest.SampleSubmodel("sm-1")))
	require.NoError(t, err)
	_, err = repo.UpdateShell(ctx, "shell-1", repotest.SampleShell("shell-1", repotest.SampleSubmodel("sm-2")))
	require.NoError(t, err)

	_, ok := repo.placement("sm-1")
	require.False(t, ok)
	p, ok := repo.placement("sm-2")
	require.True(t, ok)
	require.Equal(t, domain.Nested("shell-1"), p)
}

func TestSnapshotRestore(t *testing.T) {
	ctx := context.Background()
	repo := New()

	_, err := repo.CreateShell(ctx, repotest.SampleShell("shell-1", repotest.SampleSubmodel("sm-1")))
	require.NoError(t, err)
	_, err = repo.AddSubmodel(ctx, repotest.SampleSubmodel("sm-99"))
	require.NoError(t, err)

	snap, err := repo.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Shells, 1)
	require.Len(t, snap.Submodels, 2)

	require.NoError(t, repo.DeleteShell(ctx, "shell-1"))
	require.NoError(t, repo.DeleteSubmodel(ctx, "sm-99"))
	_, err = repo.CreateShell(ctx, repotest.SampleShell("shell-2"))
	require.NoError(t, err)

	require.NoError(t, repo.Restore(snap))

	got, err := repo.GetShell(ctx, "shell-1")
	require.NoError(t, err)
	require.True(t, repotest.SampleShell("shell-1", repotest.SampleSubmodel("sm-1")).Equal(*got))

	_, err = repo.GetSubmodel(ctx, "sm-99")
	require.NoError(t, err)
	_, err = repo.GetShell(ctx, "shell-2")
	require.ErrorIs(t, err, repository.ErrNotFound)

	p, ok := repo.placement("sm-1")
	require.True(t, ok)
	require.Equal(t, domain.Nested("shell-1"), p)
}

func TestRestoreRejectsCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := New()
	_, err := repo.CreateShell(ctx, repotest.SampleShell("shell-1"))
	require.NoError(t, err)

	err = repo.Restore(&Snapshot{Shells: map[string][]byte{"shell-2": []byte("{not json")}})
	require.ErrorIs(t, err, repository.ErrSerialization)

	_, err = repo.GetShell(ctx, "shell-1")
	require.NoError(t, err, "store must be untouched")

	require.ErrorIs(t, repo.Restore(nil), repository.ErrInvalidArgument)
}

func TestWithRollback(t *testing.T) {
	ctx := context.Background()
	repo := New()
	_, err := repo.CreateShell(ctx, repotest.SampleShell("shell-1", repotest.SampleSubmodel("sm-1")))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = repo.WithRollback(ctx, func(ctx context.Context, r repository.Repository) error {
		if err := r.DeleteShellSubmodel(ctx, "shell-1", "sm-1"); err != nil {
			return err
		}
		if _, err := r.CreateShell(ctx, repotest.SampleShell("shell-2")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	nested, err := repo.ListShellSubmodels(ctx, "shell-1")
	require.NoError(t, err)
	require.Len(t, nested, 1)
	_, err = repo.GetShell(ctx, "shell-2")
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.WithRollback(ctx, func(ctx context.Context, r repository.Repository) error {
		_, err := r.CreateShell(ctx, repotest.SampleShell("shell-2"))
		return err
	})
	require.NoError(t, err)
	_, err = repo.GetShell(ctx, "shell-2")
	require.NoError(t, err)
}
