// Package repotest is the conformance suite every repository backend runs.
//
// A backend test calls Run with a factory that opens a fresh, empty
// repository; the suite then checks the full contract against it.
package repotest

import (
	"context"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"aasregistry/internal/domain"
	"aasregistry/internal/domain/domaintest"
	"aasregistry/internal/repository"
)

// Factory opens an empty repository using the given id match policy. The
// suite closes it when the test ends.
type Factory func(t *testing.T, match domain.IDMatch) repository.Repository

// Run executes the conformance suite against the backend built by factory.
func Run(t *testing.T, factory Factory) {
	open := func(t *testing.T) repository.Repository {
		return openRepo(t, factory, domain.IDMatchExact)
	}

	t.Run("CreateThenGetReturnsEqualShell", func(t *testing.T) { testCreateThenGet(t, open(t)) })
	t.Run("CreateDuplicateShell", func(t *testing.T) { testCreateDuplicate(t, open(t)) })
	t.Run("CreateShellInvalid", func(t *testing.T) { testCreateInvalid(t, open(t)) })
	t.Run("GetShellMissing", func(t *testing.T) { testGetShellMissing(t, open(t)) })
	t.Run("ListShells", func(t *testing.T) { testListShells(t, open(t)) })
	t.Run("ReturnedShellIsCopy", func(t *testing.T) { testReturnedCopies(t, open(t)) })
	t.Run("UpdateShell", func(t *testing.T) { testUpdateShell(t, open(t)) })
	t.Run("UpdateShellErrors", func(t *testing.T) { testUpdateShellErrors(t, open(t)) })
	t.Run("DeleteShellCascades", func(t *testing.T) { testDeleteShellCascades(t, open(t)) })
	t.Run("DeleteShellMissing", func(t *testing.T) { testDeleteShellMissing(t, open(t)) })
	t.Run("NestedSubmodelNotStandalone", func(t *testing.T) { testNestedNotStandalone(t, open(t)) })
	t.Run("ShellSubmodelErrors", func(t *testing.T) { testShellSubmodelErrors(t, open(t)) })
	t.Run("NestedSubmodelScenario", func(t *testing.T) { testNestedScenario(t, open(t)) })
	t.Run("NestedOrderPreserved", func(t *testing.T) { testNestedOrder(t, open(t)) })
	t.Run("StandaloneSubmodelScenario", func(t *testing.T) { testStandaloneScenario(t, open(t)) })
	t.Run("StandaloneAndNestedShareID", func(t *testing.T) { testStandaloneAndNestedShareID(t, open(t)) })
	t.Run("StandaloneSubmodelErrors", func(t *testing.T) { testStandaloneErrors(t, open(t)) })
	t.Run("BlankIDsRejected", func(t *testing.T) { testBlankIDs(t, open(t)) })
	t.Run("ExactMatchIsCaseSensitive", func(t *testing.T) { testExactMatch(t, open(t)) })
	t.Run("FoldMatchIgnoresCase", func(t *testing.T) {
		testFoldMatch(t, openRepo(t, factory, domain.IDMatchFold))
	})
	t.Run("FoldMatchUnicode", func(t *testing.T) {
		testFoldMatchUnicode(t, openRepo(t, factory, domain.IDMatchFold))
	})
}

func openRepo(t *testing.T, factory Factory, match domain.IDMatch) repository.Repository {
	t.Helper()
	repo := factory(t, match)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// SampleSubmodel returns a fully populated submodel descriptor
func SampleSubmodel(id string) *domain.SubmodelDescriptor {
	sm := domain.NewSubmodelDescriptor(id, "sm")
	sm.Descriptions = []domain.LangString{{Language: "en", Text: "submodel " + id}}
	sm.DisplayNames = []domain.LangString{{Language: "de", Text: "Teilmodell"}}
	sm.Endpoints = []domain.Endpoint{{
		Interface: domain.InterfaceSubmodel,
		ProtocolInformation: domain.ProtocolInformation{
			EndpointAddress:         "https://registry.example/submodels/" + id,
			EndpointProtocol:        "HTTPS",
			EndpointProtocolVersion: "1.1",
			Subprotocol:             "OPC UA Basic SOAP",
			SubprotocolBody:         "ns=2;s=" + id,
			SubprotocolBodyEncoding: "plain",
		},
	}}
	sm.SemanticID = domain.NewReference(domain.ExternalReference,
		domain.Key{Type: domain.KeyTypeGlobalReference, Value: "urn:semantic:" + id},
		domain.Key{Type: domain.KeyTypeConceptDescription, Value: "0173-1#01-AAA001#001"},
	)
	return sm
}

// SampleShell returns a fully populated shell descriptor nesting the given submodels
func SampleShell(id string, submodels ...*domain.SubmodelDescriptor) *domain.ShellDescriptor {
	shell := domain.NewShellDescriptor(id, "shell")
	shell.Descriptions = []domain.LangString{{Language: "en", Text: "shell " + id}}
	shell.Endpoints = []domain.Endpoint{domain.NewHTTPEndpoint(domain.InterfaceAAS, "http://registry.example/shells/"+id)}
	shell.GlobalAssetID = domain.NewReference(domain.ExternalReference, domain.Key{Type: domain.KeyTypeGlobalReference, Value: "urn:asset:" + id})
	shell.SpecificAssetIDs = []domain.SpecificAssetID{{
		Name:              "serialNumber",
		Value:             "SN-" + id,
		ExternalSubjectID: domain.NewReference(domain.ExternalReference, domain.Key{Type: domain.KeyTypeGlobalReference, Value: "urn:subject"}),
	}}
	for _, sm := range submodels {
		shell.SubmodelDescriptors = append(shell.SubmodelDescriptors, *sm)
	}
	return shell
}

func submodelIDs(sms []domain.SubmodelDescriptor) []string {
	ids := make([]string, 0, len(sms))
	for i := range sms {
		ids = append(ids, sms[i].ID())
	}
	return ids
}

func shellIDs(shells []domain.ShellDescriptor) []string {
	ids := make([]string, 0, len(shells))
	for i := range shells {
		ids = append(ids, shells[i].ID())
	}
	slices.Sort(ids)
	return ids
}

func requireShellEqual(t require.TestingT, want, got *domain.ShellDescriptor) {
	require.NotNil(t, got)
	require.Truef(t, want.Equal(*got), "shell mismatch\nwant: %+v\ngot:  %+v", *want, *got)
}

func requireSubmodelEqual(t require.TestingT, want, got *domain.SubmodelDescriptor) {
	require.NotNil(t, got)
	require.Truef(t, want.Equal(*got), "submodel mismatch\nwant: %+v\ngot:  %+v", *want, *got)
}

func testCreateThenGet(t *testing.T, repo repository.Repository) {
	ctx := context.Background()

	created, err := repo.CreateShell(ctx, SampleShell("shell-1", SampleSubmodel("sm-1"), SampleSubmodel("sm-2")))
	require.NoError(t, err)
	requireShellEqual(t, SampleShell("shell-1", SampleSubmodel("sm-1"), SampleSubmodel("sm-2")), created)

	rapid.Check(t, func(rt *rapid.T) {
		shell := domaintest.Shell().Draw(rt, "shell")
		shell.Identification.ID = "urn:shell:" + uuid.NewString()

		_, err := repo.CreateShell(ctx, &shell)
		require.NoError(rt, err)

		got, err := repo.GetShell(ctx, shell.ID())
		require.NoError(rt, err)
		requireShellEqual(rt, &shell, got)

		nested, err := repo.ListShellSubmodels(ctx, shell.ID())
		require.NoError(rt, err)
		require.Equal(rt, submodelIDs(shell.SubmodelDescriptors), submodelIDs(nested))
	})
}

func testCreateDuplicate(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	original := SampleShell("shell-1", SampleSubmodel("sm-1"))
	_, err := repo.CreateShell(ctx, original)
	require.NoError(t, err)

	dup := SampleShell("shell-1", SampleSubmodel("sm-other"))
	dup.IDShort = "changed"
	_, err = repo.CreateShell(ctx, dup)
	require.ErrorIs(t, err, repository.ErrAlreadyExists)

	var ae *repository.AlreadyExistsError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, repository.KindShell, ae.Kind)

	got, err := repo.GetShell(ctx, "shell-1")
	require.NoError(t, err)
	requireShellEqual(t, original, got)
}

func testCreateInvalid(t *testing.T, repo repository.Repository) {
	ctx := context.Background()

	_, err := repo.CreateShell(ctx, nil)
	require.ErrorIs(t, err, repository.ErrInvalidArgument)

	_, err = repo.CreateShell(ctx, &domain.ShellDescriptor{IDShort: "no-id"})
	require.ErrorIs(t, err, repository.ErrInvalidArgument)

	_, err = repo.CreateShell(ctx, SampleShell("shell-1", SampleSubmodel("sm-1"), SampleSubmodel("sm-1")))
	require.ErrorIs(t, err, repository.ErrAlreadyExists)

	shells, err := repo.ListShells(ctx)
	require.NoError(t, err)
	require.Empty(t, shells)
}

func testGetShellMissing(t *testing.T, repo repository.Repository) {
	ctx := context.Background()

	_, err := repo.GetShell(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.NotErrorIs(t, err, repository.ErrInvalidArgument)

	_, err = repo.GetShell(ctx, "  ")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, err, repository.ErrInvalidArgument)
}

func testListShells(t *testing.T, repo repository.Repository) {
	ctx := context.Background()

	shells, err := repo.ListShells(ctx)
	require.NoError(t, err)
	require.Empty(t, shells)

	for _, id := range []string{"shell-b", "shell-a", "shell-c"} {
		_, err := repo.CreateShell(ctx, SampleShell(id, SampleSubmodel(id+"-sm")))
		require.NoError(t, err)
	}

	shells, err = repo.ListShells(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"shell-a", "shell-b", "shell-c"}, shellIDs(shells))
	for i := range shells {
		require.Len(t, shells[i].SubmodelDescriptors, 1)
	}
}

func testReturnedCopies(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	input := SampleShell("shell-1", SampleSubmodel("sm-1"))
	created, err := repo.CreateShell(ctx, input)
	require.NoError(t, err)

	input.IDShort = "mutated input"
	created.SubmodelDescriptors[0].IDShort = "mutated result"

	got, err := repo.GetShell(ctx, "shell-1")
	require.NoError(t, err)
	requireShellEqual(t, SampleShell("shell-1", SampleSubmodel("sm-1")), got)

	got.Descriptions[0].Text = "mutated get"
	again, err := repo.GetShell(ctx, "shell-1")
	require.NoError(t, err)
	require.Equal(t, "shell shell-1", again.Descriptions[0].Text)
}

func testUpdateShell(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	_, err := repo.CreateShell(ctx, SampleShell("shell-1", SampleSubmodel("sm-1"), SampleSubmodel("sm-2")))
	require.NoError(t, err)

	replacement := SampleShell("shell-1", SampleSubmodel("sm-3"))
	replacement.IDShort = "renamed"
	replacement.Descriptions = nil
	replacement.GlobalAssetID = nil

	updated, err := repo.UpdateShell(ctx, "shell-1", replacement)
	require.NoError(t, err)
	requireShellEqual(t, replacement, updated)

	got, err := repo.GetShell(ctx, "shell-1")
	require.NoError(t, err)
	requireShellEqual(t, replacement, got)

	nested, err := repo.ListShellSubmodels(ctx, "shell-1")
	require.NoError(t, err)
	require.Equal(t, []string{"sm-3"}, submodelIDs(nested))

	_, err = repo.GetShellSubmodel(ctx, "shell-1", "sm-1")
	require.ErrorIs(t, err, repository.ErrNotFoundInShell)
}

func testUpdateShellErrors(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	_, err := repo.CreateShell(ctx, SampleShell("shell-1"))
	require.NoError(t, err)
	_, err = repo.CreateShell(ctx, SampleShell("shell-2"))
	require.NoError(t, err)

	_, err = repo.UpdateShell(ctx, "missing", SampleShell("missing"))
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.UpdateShell(ctx, "shell-1", SampleShell("shell-unknown"))
	require.ErrorIs(t, err, repository.ErrNotFound)
	var nf *repository.NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Equal(t, "shell-unknown", nf.ID)

	_, err = repo.UpdateShell(ctx, "shell-1", SampleShell("shell-2"))
	require.ErrorIs(t, err, repository.ErrInvalidArgument)

	_, err = repo.UpdateShell(ctx, "", SampleShell("shell-1"))
	require.ErrorIs(t, err, repository.ErrInvalidArgument)

	_, err = repo.UpdateShell(ctx, "shell-1", nil)
	require.ErrorIs(t, err, repository.ErrInvalidArgument)

	got, err := repo.GetShell(ctx, "shell-1")
	require.NoError(t, err)
	requireShellEqual(t, SampleShell("shell-1"), got)
}

func testDeleteShellCascades(t *testing.T, repo repository.Repository) {
	ctx := context.Background()

	_, err := repo.AddSubmodel(ctx, SampleSubmodel("standalone-1"))
	require.NoError(t, err)
	_, err = repo.AddSubmodel(ctx, SampleSubmodel("standalone-2"))
	require.NoError(t, err)

	_, err = repo.CreateShell(ctx, SampleShell("shell-1", SampleSubmodel("sm-1"), SampleSubmodel("sm-2"), SampleSubmodel("sm-3")))
	require.NoError(t, err)
	_, err = repo.CreateShell(ctx, SampleShell("shell-2", SampleSubmodel("sm-1")))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteShell(ctx, "shell-1"))

	_, err = repo.GetShell(ctx, "shell-1")
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.ListShellSubmodels(ctx, "shell-1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	standalone, err := repo.ListSubmodels(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"standalone-1", "standalone-2"}, submodelIDs(standalone))

	other, err := repo.ListShellSubmodels(ctx, "shell-2")
	require.NoError(t, err)
	require.Equal(t, []string{"sm-1"}, submodelIDs(other))

	// the id is free again
	_, err = repo.CreateShell(ctx, SampleShell("shell-1"))
	require.NoError(t, err)
	nested, err := repo.ListShellSubmodels(ctx, "shell-1")
	require.NoError(t, err)
	require.Empty(t, nested)
}

func testDeleteShellMissing(t *testing.T, repo repository.Repository) {
	err := repo.DeleteShell(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func testNestedNotStandalone(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	_, err := repo.CreateShell(ctx, SampleShell("shell-1", SampleSubmodel("sm-embedded")))
	require.NoError(t, err)

	sm := SampleSubmodel("sm-added")
	added, err := repo.AddShellSubmodel(ctx, "shell-1", sm)
	require.NoError(t, err)
	requireSubmodelEqual(t, sm, added)

	got, err := repo.GetShellSubmodel(ctx, "shell-1", "sm-added")
	require.NoError(t, err)
	requireSubmodelEqual(t, sm, got)

	for _, id := range []string{"sm-embedded", "sm-added"} {
		_, err = repo.GetSubmodel(ctx, id)
		require.ErrorIs(t, err, repository.ErrNotFound, id)
		require.ErrorIs(t, repo.DeleteSubmodel(ctx, id), repository.ErrNotFound, id)
	}

	standalone, err := repo.ListSubmodels(ctx)
	require.NoError(t, err)
	require.Empty(t, standalone)

	shell, err := repo.GetShell(ctx, "shell-1")
	require.NoError(t, err)
	require.Equal(t, []string{"sm-embedded", "sm-added"}, submodelIDs(shell.SubmodelDescriptors))
}

func testShellSubmodelErrors(t *testing.T, repo repository.Repository) {
	ctx := context.Background()

	_, err := repo.AddShellSubmodel(ctx, "missing", SampleSubmodel("sm-1"))
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.ListShellSubmodels(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetShellSubmodel(ctx, "missing", "sm-1")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, repo.DeleteShellSubmodel(ctx, "missing", "sm-1"), repository.ErrNotFound)

	_, err = repo.CreateShell(ctx, SampleShell("shell-1", SampleSubmodel("sm-1")))
	require.NoError(t, err)
	_, err = repo.AddSubmodel(ctx, SampleSubmodel("sm-standalone"))
	require.NoError(t, err)

	_, err = repo.AddShellSubmodel(ctx, "shell-1", SampleSubmodel("sm-1"))
	require.ErrorIs(t, err, repository.ErrAlreadyExists)
	var ae *repository.AlreadyExistsError
	require.ErrorAs(t, err, &ae)
	require.Equal(t, "shell-1", ae.ShellID)

	// exists elsewhere, not in this shell
	_, err = repo.GetShellSubmodel(ctx, "shell-1", "sm-standalone")
	require.ErrorIs(t, err, repository.ErrNotFoundInShell)
	require.NotErrorIs(t, err, repository.ErrNotFound)
	var nis *repository.NotFoundInShellError
	require.ErrorAs(t, err, &nis)
	require.Equal(t, "shell-1", nis.ShellID)
	require.Equal(t, "sm-standalone", nis.SubmodelID)

	require.ErrorIs(t, repo.DeleteShellSubmodel(ctx, "shell-1", "sm-standalone"), repository.ErrNotFoundInShell)

	_, err = repo.AddShellSubmodel(ctx, "shell-1", nil)
	require.ErrorIs(t, err, repository.ErrInvalidArgument)
	_, err = repo.AddShellSubmodel(ctx, "shell-1", &domain.SubmodelDescriptor{})
	require.ErrorIs(t, err, repository.ErrInvalidArgument)
}

func testNestedScenario(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	_, err := repo.CreateShell(ctx, SampleShell("shell-1", SampleSubmodel("sm-1")))
	require.NoError(t, err)

	nested, err := repo.ListShellSubmodels(ctx, "shell-1")
	require.NoError(t, err)
	require.Equal(t, []string{"sm-1"}, submodelIDs(nested))

	require.NoError(t, repo.DeleteShellSubmodel(ctx, "shell-1", "sm-1"))

	nested, err = repo.ListShellSubmodels(ctx, "shell-1")
	require.NoError(t, err)
	require.Empty(t, nested)

	err = repo.DeleteShellSubmodel(ctx, "shell-1", "sm-1")
	require.ErrorIs(t, err, repository.ErrNotFoundInShell)

	shell, err := repo.GetShell(ctx, "shell-1")
	require.NoError(t, err)
	require.Empty(t, shell.SubmodelDescriptors)

	// re-adding after removal works
	_, err = repo.AddShellSubmodel(ctx, "shell-1", SampleSubmodel("sm-1"))
	require.NoError(t, err)
}

func testNestedOrder(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	_, err := repo.CreateShell(ctx, SampleShell("shell-1", SampleSubmodel("c"), SampleSubmodel("a")))
	require.NoError(t, err)

	_, err = repo.AddShellSubmodel(ctx, "shell-1", SampleSubmodel("b"))
	require.NoError(t, err)
	require.NoError(t, repo.DeleteShellSubmodel(ctx, "shell-1", "a"))
	_, err = repo.AddShellSubmodel(ctx, "shell-1", SampleSubmodel("a"))
	require.NoError(t, err)

	nested, err := repo.ListShellSubmodels(ctx, "shell-1")
	require.NoError(t, err)
	require.Equal(t, []string{"c", "b", "a"}, submodelIDs(nested))
}

func testStandaloneScenario(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	sm := SampleSubmodel("sm-99")

	added, err := repo.AddSubmodel(ctx, sm)
	require.NoError(t, err)
	requireSubmodelEqual(t, sm, added)

	got, err := repo.GetSubmodel(ctx, "sm-99")
	require.NoError(t, err)
	requireSubmodelEqual(t, sm, got)

	_, err = repo.AddSubmodel(ctx, SampleSubmodel("sm-99"))
	require.ErrorIs(t, err, repository.ErrAlreadyExists)

	all, err := repo.ListSubmodels(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"sm-99"}, submodelIDs(all))

	require.NoError(t, repo.DeleteSubmodel(ctx, "sm-99"))
	_, err = repo.GetSubmodel(ctx, "sm-99")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, repo.DeleteSubmodel(ctx, "sm-99"), repository.ErrNotFound)
}

func testStandaloneAndNestedShareID(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	_, err := repo.CreateShell(ctx, SampleShell("shell-1", SampleSubmodel("sm-1")))
	require.NoError(t, err)

	standalone := SampleSubmodel("sm-1")
	standalone.IDShort = "standalone"
	_, err = repo.AddSubmodel(ctx, standalone)
	require.NoError(t, err)

	got, err := repo.GetSubmodel(ctx, "sm-1")
	require.NoError(t, err)
	requireSubmodelEqual(t, standalone, got)

	nested, err := repo.GetShellSubmodel(ctx, "shell-1", "sm-1")
	require.NoError(t, err)
	require.Equal(t, "sm", nested.IDShort)

	// deleting the standalone record leaves the nesting alone
	require.NoError(t, repo.DeleteSubmodel(ctx, "sm-1"))
	_, err = repo.GetShellSubmodel(ctx, "shell-1", "sm-1")
	require.NoError(t, err)

	// and deleting the shell leaves a standalone record alone
	_, err = repo.AddSubmodel(ctx, standalone)
	require.NoError(t, err)
	require.NoError(t, repo.DeleteShell(ctx, "shell-1"))
	_, err = repo.GetSubmodel(ctx, "sm-1")
	require.NoError(t, err)
}

func testStandaloneErrors(t *testing.T, repo repository.Repository) {
	ctx := context.Background()

	_, err := repo.GetSubmodel(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, repo.DeleteSubmodel(ctx, "missing"), repository.ErrNotFound)

	_, err = repo.AddSubmodel(ctx, nil)
	require.ErrorIs(t, err, repository.ErrInvalidArgument)
	_, err = repo.AddSubmodel(ctx, &domain.SubmodelDescriptor{IDShort: "no-id"})
	require.ErrorIs(t, err, repository.ErrInvalidArgument)
}

func testBlankIDs(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	_, err := repo.CreateShell(ctx, SampleShell("shell-1", SampleSubmodel("sm-1")))
	require.NoError(t, err)

	for _, blank := range []string{"", " ", "\t\n"} {
		checks := map[string]error{
			"DeleteShell":                  repo.DeleteShell(ctx, blank),
			"DeleteShellSubmodel shell":    repo.DeleteShellSubmodel(ctx, blank, "sm-1"),
			"DeleteShellSubmodel submodel": repo.DeleteShellSubmodel(ctx, "shell-1", blank),
			"DeleteSubmodel":               repo.DeleteSubmodel(ctx, blank),
			"ListShellSubmodels":           second(repo.ListShellSubmodels(ctx, blank)),
			"GetShellSubmodel shell":       second(repo.GetShellSubmodel(ctx, blank, "sm-1")),
			"GetShellSubmodel submodel":    second(repo.GetShellSubmodel(ctx, "shell-1", blank)),
			"GetSubmodel":                  second(repo.GetSubmodel(ctx, blank)),
			"AddShellSubmodel":             second(repo.AddShellSubmodel(ctx, blank, SampleSubmodel("sm-2"))),
			"UpdateShell":                  second(repo.UpdateShell(ctx, blank, SampleShell("shell-1"))),
			"GetShell":                     second(repo.GetShell(ctx, blank)),
		}
		for name, err := range checks {
			require.ErrorIsf(t, err, repository.ErrInvalidArgument, "%s(%q)", name, blank)
		}
	}

	nested, err := repo.ListShellSubmodels(ctx, "shell-1")
	require.NoError(t, err)
	require.Equal(t, []string{"sm-1"}, submodelIDs(nested))
}

func second[T any](_ T, err error) error {
	return err
}

func testExactMatch(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	_, err := repo.CreateShell(ctx, SampleShell("Shell-A", SampleSubmodel("SM-1")))
	require.NoError(t, err)
	_, err = repo.AddSubmodel(ctx, SampleSubmodel("Standalone-1"))
	require.NoError(t, err)

	_, err = repo.GetShell(ctx, "shell-a")
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetShellSubmodel(ctx, "Shell-A", "sm-1")
	require.ErrorIs(t, err, repository.ErrNotFoundInShell)
	require.ErrorIs(t, repo.DeleteShellSubmodel(ctx, "Shell-A", "sm-1"), repository.ErrNotFoundInShell)
	_, err = repo.GetSubmodel(ctx, "standalone-1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	// differently cased ids are distinct entries
	_, err = repo.CreateShell(ctx, SampleShell("shell-a"))
	require.NoError(t, err)
	_, err = repo.AddShellSubmodel(ctx, "Shell-A", SampleSubmodel("sm-1"))
	require.NoError(t, err)
	_, err = repo.AddSubmodel(ctx, SampleSubmodel("standalone-1"))
	require.NoError(t, err)

	shells, err := repo.ListShells(ctx)
	require.NoError(t, err)
	require.Len(t, shells, 2)
}

func testFoldMatch(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	_, err := repo.CreateShell(ctx, SampleShell("Shell-A", SampleSubmodel("SM-1")))
	require.NoError(t, err)
	_, err = repo.AddSubmodel(ctx, SampleSubmodel("Standalone-1"))
	require.NoError(t, err)

	got, err := repo.GetShell(ctx, "shell-a")
	require.NoError(t, err)
	require.Equal(t, "Shell-A", got.ID())

	_, err = repo.CreateShell(ctx, SampleShell("SHELL-A"))
	require.ErrorIs(t, err, repository.ErrAlreadyExists)

	_, err = repo.AddShellSubmodel(ctx, "shell-a", SampleSubmodel("sm-1"))
	require.ErrorIs(t, err, repository.ErrAlreadyExists)

	sm, err := repo.GetShellSubmodel(ctx, "SHELL-a", "sm-1")
	require.NoError(t, err)
	require.Equal(t, "SM-1", sm.ID())

	_, err = repo.AddSubmodel(ctx, SampleSubmodel("STANDALONE-1"))
	require.ErrorIs(t, err, repository.ErrAlreadyExists)
	_, err = repo.GetSubmodel(ctx, "standalone-1")
	require.NoError(t, err)

	updated := SampleShell("shell-A")
	_, err = repo.UpdateShell(ctx, "SHELL-A", updated)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteSubmodel(ctx, "standalone-1"))
	require.NoError(t, repo.DeleteShell(ctx, "shell-a"))
	_, err = repo.GetShell(ctx, "Shell-A")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

// testFoldMatchUnicode covers ids that are equal only under full case
// folding: the long s folds to "s" and the Kelvin sign to "k".
func testFoldMatchUnicode(t *testing.T, repo repository.Repository) {
	ctx := context.Background()
	const (
		plain  = "s"
		longS  = "\u017f"
		kelvin = "\u212a"
	)

	_, err := repo.CreateShell(ctx, SampleShell(plain, SampleSubmodel("k")))
	require.NoError(t, err)

	_, err = repo.CreateShell(ctx, SampleShell(longS))
	require.ErrorIs(t, err, repository.ErrAlreadyExists)

	got, err := repo.GetShell(ctx, longS)
	require.NoError(t, err)
	require.Equal(t, plain, got.ID())

	sm, err := repo.GetShellSubmodel(ctx, longS, kelvin)
	require.NoError(t, err)
	require.Equal(t, "k", sm.ID())

	// Replacing with the other spelling keeps the shell reachable under both
	_, err = repo.UpdateShell(ctx, plain, SampleShell(longS))
	require.NoError(t, err)
	for _, id := range []string{plain, longS, "S"} {
		got, err := repo.GetShell(ctx, id)
		require.NoError(t, err, "GetShell(%q)", id)
		require.Equal(t, longS, got.ID())
	}

	shells, err := repo.ListShells(ctx)
	require.NoError(t, err)
	require.Len(t, shells, 1)

	_, err = repo.AddSubmodel(ctx, SampleSubmodel("K"))
	require.NoError(t, err)
	_, err = repo.AddSubmodel(ctx, SampleSubmodel(kelvin))
	require.ErrorIs(t, err, repository.ErrAlreadyExists)
	require.NoError(t, repo.DeleteSubmodel(ctx, kelvin))

	require.NoError(t, repo.DeleteShell(ctx, plain))
	_, err = repo.GetShell(ctx, longS)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
