package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"aasregistry/internal/domain"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		invalid         bool
		notFound        bool
		notFoundInShell bool
		exists          bool
		serialization   bool
	}{
		{name: "invalid argument", err: NewInvalidArgumentError("x"), invalid: true},
		{name: "shell not found", err: NewShellNotFoundError("s"), notFound: true},
		{name: "blank shell not found", err: NewShellNotFoundError(""), notFound: true, invalid: true},
		{name: "submodel not found", err: NewSubmodelNotFoundError("sm"), notFound: true},
		{name: "not found in shell", err: NewNotFoundInShellError("s", "sm"), notFoundInShell: true},
		{name: "shell exists", err: NewShellExistsError("s"), exists: true},
		{name: "nested exists", err: NewNestedSubmodelExistsError("s", "sm"), exists: true},
		{name: "serialization", err: &SerializationError{Op: "decode", Cause: errors.New("boom")}, serialization: true},
		{name: "wrapped not found", err: fmt.Errorf("lookup: %w", NewShellNotFoundError("s")), notFound: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.invalid, IsInvalidArgument(tt.err), "IsInvalidArgument")
			require.Equal(t, tt.notFound, IsNotFound(tt.err), "IsNotFound")
			require.Equal(t, tt.notFoundInShell, IsNotFoundInShell(tt.err), "IsNotFoundInShell")
			require.Equal(t, tt.exists, IsAlreadyExists(tt.err), "IsAlreadyExists")
			require.Equal(t, tt.serialization, IsSerialization(tt.err), "IsSerialization")
		})
	}
}

func TestTypedErrorsCarryIDs(t *testing.T) {
	var nf *NotFoundError
	require.ErrorAs(t, fmt.Errorf("wrap: %w", NewSubmodelNotFoundError("sm-1")), &nf)
	require.Equal(t, KindSubmodel, nf.Kind)
	require.Equal(t, "sm-1", nf.ID)

	var nis *NotFoundInShellError
	require.ErrorAs(t, NewNotFoundInShellError("shell-1", "sm-1"), &nis)
	require.Equal(t, "shell-1", nis.ShellID)
	require.Equal(t, "sm-1", nis.SubmodelID)

	var ae *AlreadyExistsError
	require.ErrorAs(t, NewNestedSubmodelExistsError("shell-1", "sm-1"), &ae)
	require.Equal(t, "shell-1", ae.ShellID)
	require.Contains(t, ae.Error(), "shell-1")

	cause := errors.New("bad json")
	se := &SerializationError{Op: "decode", Key: "k", Cause: cause}
	require.ErrorIs(t, se, cause)
	require.Contains(t, se.Error(), `"k"`)
}

func TestValidateShell(t *testing.T) {
	tests := []struct {
		name    string
		shell   *domain.ShellDescriptor
		match   domain.IDMatch
		wantErr error
	}{
		{name: "nil", shell: nil, wantErr: ErrInvalidArgument},
		{name: "blank id", shell: domain.NewShellDescriptor("  ", "x"), wantErr: ErrInvalidArgument},
		{name: "valid", shell: domain.NewShellDescriptor("shell-1", "x")},
		{
			name: "nested without id",
			shell: &domain.ShellDescriptor{
				Identification:      domain.Identifier{ID: "shell-1"},
				SubmodelDescriptors: []domain.SubmodelDescriptor{{}},
			},
			wantErr: ErrInvalidArgument,
		},
		{
			name: "duplicate nested ids",
			shell: &domain.ShellDescriptor{
				Identification: domain.Identifier{ID: "shell-1"},
				SubmodelDescriptors: []domain.SubmodelDescriptor{
					*domain.NewSubmodelDescriptor("sm-1", "a"),
					*domain.NewSubmodelDescriptor("sm-1", "b"),
				},
			},
			wantErr: ErrAlreadyExists,
		},
		{
			name: "nested ids differing in case under exact match",
			shell: &domain.ShellDescriptor{
				Identification: domain.Identifier{ID: "shell-1"},
				SubmodelDescriptors: []domain.SubmodelDescriptor{
					*domain.NewSubmodelDescriptor("sm-1", "a"),
					*domain.NewSubmodelDescriptor("SM-1", "b"),
				},
			},
			match: domain.IDMatchExact,
		},
		{
			name: "nested ids differing in case under fold match",
			shell: &domain.ShellDescriptor{
				Identification: domain.Identifier{ID: "shell-1"},
				SubmodelDescriptors: []domain.SubmodelDescriptor{
					*domain.NewSubmodelDescriptor("sm-1", "a"),
					*domain.NewSubmodelDescriptor("SM-1", "b"),
				},
			},
			match:   domain.IDMatchFold,
			wantErr: ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShell(tt.shell, tt.match)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateIDs(t *testing.T) {
	require.ErrorIs(t, ValidateShellID(""), ErrInvalidArgument)
	require.ErrorIs(t, ValidateShellID("\t"), ErrInvalidArgument)
	require.NoError(t, ValidateShellID("shell-1"))
	require.ErrorIs(t, ValidateSubmodelID(" "), ErrInvalidArgument)
	require.NoError(t, ValidateSubmodelID("sm-1"))
	require.ErrorIs(t, ValidateSubmodel(nil), ErrInvalidArgument)
	require.ErrorIs(t, ValidateSubmodel(&domain.SubmodelDescriptor{}), ErrInvalidArgument)
	require.ErrorIs(t, ValidateShellUpdate("", domain.NewShellDescriptor("a", "b"), domain.IDMatchExact), ErrInvalidArgument)
}
