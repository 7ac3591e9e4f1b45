package backup_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aasregistry/internal/backup"
	"aasregistry/internal/codec"
	"aasregistry/internal/domain"
	"aasregistry/internal/repository"
	"aasregistry/internal/repository/memory"
	"aasregistry/internal/repository/repotest"
)

func seed(t *testing.T, repo repository.Repository) {
	t.Helper()
	ctx := context.Background()
	_, err := repo.CreateShell(ctx, repotest.SampleShell("shell-1", repotest.SampleSubmodel("sm-1"), repotest.SampleSubmodel("sm-2")))
	require.NoError(t, err)
	_, err = repo.CreateShell(ctx, repotest.SampleShell("shell-2"))
	require.NoError(t, err)
	_, err = repo.AddSubmodel(ctx, repotest.SampleSubmodel("sm-99"))
	require.NoError(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	for _, c := range []codec.Codec{codec.NewJSONCodec(), codec.NewYAMLCodec()} {
		t.Run(c.Format(), func(t *testing.T) {
			ctx := context.Background()
			src := memory.New()
			seed(t, src)

			doc, err := backup.Export(ctx, src)
			require.NoError(t, err)
			require.Len(t, doc.Shells, 2)
			require.Len(t, doc.Submodels, 1)

			data, err := c.Marshal(doc)
			require.NoError(t, err)
			var decoded codec.Document
			require.NoError(t, c.Unmarshal(data, &decoded))

			dst := memory.New()
			res, err := backup.Import(ctx, dst, &decoded)
			require.NoError(t, err)
			assert.Equal(t, backup.ImportResult{Shells: 2, Submodels: 1}, res)

			again, err := backup.Export(ctx, dst)
			require.NoError(t, err)
			require.Len(t, again.Shells, 2)
			for i := range doc.Shells {
				assert.True(t, doc.Shells[i].Equal(again.Shells[i]), "shell %d", i)
			}
			assert.True(t, doc.Submodels[0].Equal(again.Submodels[0]))
		})
	}
}

func TestExportEmpty(t *testing.T) {
	doc, err := backup.Export(context.Background(), memory.New())
	require.NoError(t, err)
	assert.Empty(t, doc.Shells)
	assert.Empty(t, doc.Submodels)

	var buf bytes.Buffer
	require.NoError(t, codec.NewJSONCodec().Export(doc, &buf))
	parsed, err := codec.NewJSONCodec().Parse(&buf)
	require.NoError(t, err)
	assert.Empty(t, parsed.Shells)
}

func TestImportStopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	_, err := repo.CreateShell(ctx, repotest.SampleShell("shell-2"))
	require.NoError(t, err)

	doc := &codec.Document{
		Shells: []domain.ShellDescriptor{
			*repotest.SampleShell("shell-1"),
			*repotest.SampleShell("shell-2"),
			*repotest.SampleShell("shell-3"),
		},
	}

	res, err := backup.Import(ctx, repo, doc)
	require.Error(t, err)
	assert.True(t, repository.IsAlreadyExists(err))
	assert.Contains(t, err.Error(), "shell-2")
	assert.Equal(t, 1, res.Shells)

	_, err = repo.GetShell(ctx, "shell-3")
	assert.True(t, repository.IsNotFound(err))
}

func TestImportNilDocument(t *testing.T) {
	_, err := backup.Import(context.Background(), memory.New(), nil)
	assert.True(t, repository.IsInvalidArgument(err))
}
