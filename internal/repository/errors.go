package repository

import (
	"errors"
	"fmt"
)

// Sentinel errors for the error kinds of the contract.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrNotFoundInShell = errors.New("submodel not found in shell")
	ErrAlreadyExists   = errors.New("already exists")
	ErrSerialization   = errors.New("serialization failure")
)

// Kind names the entity an error refers to
type Kind string

const (
	KindShell    Kind = "shell"
	KindSubmodel Kind = "submodel"
)

// InvalidArgumentError reports malformed or missing input
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string {
	if e.Msg == "" {
		return ErrInvalidArgument.Error()
	}
	return fmt.Sprintf("invalid argument: %s", e.Msg)
}

func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

// NewInvalidArgumentError constructs an InvalidArgumentError with a formatted message
func NewInvalidArgumentError(format string, args ...any) error {
	return &InvalidArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports that a shell or standalone submodel does not exist.
// A lookup with a blank id is reported as not found and also matches
// ErrInvalidArgument.
type NotFoundError struct {
	Kind Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	if isBlank(e.ID) {
		return fmt.Sprintf("%s not found: blank id", e.Kind)
	}
	return fmt.Sprintf("%s not found: %q", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func (e *NotFoundError) Is(target error) bool {
	return target == ErrInvalidArgument && isBlank(e.ID)
}

// NewShellNotFoundError constructs a NotFoundError for a shell
func NewShellNotFoundError(id string) error {
	return &NotFoundError{Kind: KindShell, ID: id}
}

// NewSubmodelNotFoundError constructs a NotFoundError for a standalone submodel
func NewSubmodelNotFoundError(id string) error {
	return &NotFoundError{Kind: KindSubmodel, ID: id}
}

// NotFoundInShellError reports that a shell exists but does not nest the
// requested submodel. The submodel may still exist elsewhere.
type NotFoundInShellError struct {
	ShellID    string
	SubmodelID string
}

func (e *NotFoundInShellError) Error() string {
	return fmt.Sprintf("submodel %q not found in shell %q", e.SubmodelID, e.ShellID)
}

func (e *NotFoundInShellError) Unwrap() error { return ErrNotFoundInShell }

// NewNotFoundInShellError constructs a NotFoundInShellError
func NewNotFoundInShellError(shellID, submodelID string) error {
	return &NotFoundInShellError{ShellID: shellID, SubmodelID: submodelID}
}

// AlreadyExistsError reports a duplicate id in the relevant scope. ShellID is
// set when the scope is one shell's nested submodels.
type AlreadyExistsError struct {
	Kind    Kind
	ID      string
	ShellID string
}

func (e *AlreadyExistsError) Error() string {
	if e.ShellID != "" {
		return fmt.Sprintf("%s %q already exists in shell %q", e.Kind, e.ID, e.ShellID)
	}
	return fmt.Sprintf("%s %q already exists", e.Kind, e.ID)
}

func (e *AlreadyExistsError) Unwrap() error { return ErrAlreadyExists }

// NewShellExistsError constructs an AlreadyExistsError for a shell
func NewShellExistsError(id string) error {
	return &AlreadyExistsError{Kind: KindShell, ID: id}
}

// NewSubmodelExistsError constructs an AlreadyExistsError for a standalone submodel
func NewSubmodelExistsError(id string) error {
	return &AlreadyExistsError{Kind: KindSubmodel, ID: id}
}

// NewNestedSubmodelExistsError constructs an AlreadyExistsError for a submodel
// already nested in shellID
func NewNestedSubmodelExistsError(shellID, id string) error {
	return &AlreadyExistsError{Kind: KindSubmodel, ID: id, ShellID: shellID}
}

// SerializationError reports a failed backup round trip
type SerializationError struct {
	Op    string // "encode" or "decode"
	Key   string // backup map key, if any
	Cause error
}

func (e *SerializationError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("serialization failure: %s %q: %v", e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("serialization failure: %s: %v", e.Op, e.Cause)
}

func (e *SerializationError) Unwrap() []error { return []error{ErrSerialization, e.Cause} }

// Convenience predicates

// IsInvalidArgument reports whether err is (or wraps) an invalid-argument condition
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsNotFound reports whether err is (or wraps) a not-found condition. It does
// not match NotFoundInShell.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsNotFoundInShell reports whether err is (or wraps) a not-found-in-shell condition
func IsNotFoundInShell(err error) bool {
	return errors.Is(err, ErrNotFoundInShell)
}

// IsAlreadyExists reports whether err is (or wraps) an already-exists condition
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsSerialization reports whether err is (or wraps) a serialization failure
func IsSerialization(err error) bool {
	return errors.Is(err, ErrSerialization)
}
