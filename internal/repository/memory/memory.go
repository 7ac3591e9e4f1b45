// Package memory implements repository.Repository with in-process maps.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"aasregistry/internal/domain"
	"aasregistry/internal/repository"
)

// Repository is an in-memory implementation of repository.Repository.
//
// Two keyed collections make up the store:
//
//   - shells maps a shell's lookup key to the stored descriptor, nested
//     submodels included.
//   - submodels maps a submodel's lookup key to a tagged record. Standalone
//     records are the ones ListSubmodels, GetSubmodel and DeleteSubmodel see.
//     Nested records register a shell's embedded submodel under its id when
//     no record exists yet (first write wins) and are dropped with the
//     nesting that created them.
//
// Lookup keys come from the configured domain.IDMatch. Descriptors are cloned
// on the way in and on the way out. The store is owned by whoever calls New
// and is safe for concurrent use.
type Repository struct {
	mu        sync.RWMutex
	match     domain.IDMatch
	shells    map[string]*domain.ShellDescriptor
	submodels map[string]*submodelRecord
}

type submodelRecord struct {
	Descriptor domain.SubmodelDescriptor `json:"descriptor"`
	Placement  domain.Placement          `json:"placement"`
}

var _ repository.Repository = (*Repository)(nil)

// Option configures a Repository
type Option func(*Repository)

// WithIDMatch sets the identifier match policy. The default is exact.
func WithIDMatch(m domain.IDMatch) Option {
	return func(r *Repository) {
		r.match = m
	}
}

// New creates an empty in-memory repository
func New(opts ...Option) *Repository {
	r := &Repository{
		match:     domain.IDMatchExact,
		shells:    make(map[string]*domain.ShellDescriptor),
		submodels: make(map[string]*submodelRecord),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) Name() string {
	return "memory"
}

// Close is a no-op; the maps are released with the Repository.
func (r *Repository) Close() error {
	return nil
}

// =============================================================================
// Shells
// =============================================================================

// ListShells returns all shells ordered by lookup key
func (r *Repository) ListShells(ctx context.Context) ([]domain.ShellDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ShellDescriptor, 0, len(r.shells))
	for _, key := range sortedKeys(r.shells) {
		out = append(out, r.shells[key].Clone())
	}
	return out, nil
}

// GetShell returns the shell with the given id. A blank id is reported as
// not found.
func (r *Repository) GetShell(ctx context.Context, id string) (*domain.ShellDescriptor, error) {
	if repository.ValidateShellID(id) != nil {
		return nil, repository.NewShellNotFoundError(id)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	shell, ok := r.shells[r.match.Key(id)]
	if !ok {
		return nil, repository.NewShellNotFoundError(id)
	}
	cp := shell.Clone()
	return &cp, nil
}

func (r *Repository) CreateShell(ctx context.Context, shell *domain.ShellDescriptor) (*domain.ShellDescriptor, error) {
	if err := repository.ValidateShell(shell, r.match); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.match.Key(shell.ID())
	if _, exists := r.shells[key]; exists {
		return nil, repository.NewShellExistsError(shell.ID())
	}

	stored := shell.Clone()
	r.shells[key] = &stored
	for i := range stored.SubmodelDescriptors {
		r.registerNested(stored.ID(), &stored.SubmodelDescriptors[i])
	}

	cp := stored.Clone()
	return &cp, nil
}

// UpdateShell replaces the shell stored under id with shell. The
// descriptor's own id must refer to the same shell; identifiers are
// immutable.
func (r *Repository) UpdateShell(ctx context.Context, id string, shell *domain.ShellDescriptor) (*domain.ShellDescriptor, error) {
	if err := repository.ValidateShellUpdate(id, shell, r.match); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.match.Key(id)
	current, ok := r.shells[key]
	if !ok {
		return nil, repository.NewShellNotFoundError(id)
	}
	if !r.match.Same(id, shell.ID()) {
		if _, other := r.shells[r.match.Key(shell.ID())]; !other {
			return nil, repository.NewShellNotFoundError(shell.ID())
		}
		return nil, repository.NewInvalidArgumentError("shell %q cannot be replaced by descriptor of shell %q", id, shell.ID())
	}

	for i := range current.SubmodelDescriptors {
		r.unregisterNested(current.ID(), current.SubmodelDescriptors[i].ID())
	}

	stored := shell.Clone()
	r.shells[key] = &stored
	for i := range stored.SubmodelDescriptors {
		r.registerNested(stored.ID(), &stored.SubmodelDescriptors[i])
	}

	cp := stored.Clone()
	return &cp, nil
}

// DeleteShell removes the shell and the nested registrations it owns.
// Standalone submodels are never affected.
func (r *Repository) DeleteShell(ctx context.Context, id string) error {
	if err := repository.ValidateShellID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.match.Key(id)
	shell, ok := r.shells[key]
	if !ok {
		return repository.NewShellNotFoundError(id)
	}

	for i := range shell.SubmodelDescriptors {
		r.unregisterNested(shell.ID(), shell.SubmodelDescriptors[i].ID())
	}
	delete(r.shells, key)
	return nil
}

// =============================================================================
// Nested submodels
// =============================================================================

func (r *Repository) ListShellSubmodels(ctx context.Context, shellID string) ([]domain.SubmodelDescriptor, error) {
	if err := repository.ValidateShellID(shellID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	shell, ok := r.shells[r.match.Key(shellID)]
	if !ok {
		return nil, repository.NewShellNotFoundError(shellID)
	}

	out := make([]domain.SubmodelDescriptor, 0, len(shell.SubmodelDescriptors))
	for i := range shell.SubmodelDescriptors {
		out = append(out, shell.SubmodelDescriptors[i].Clone())
	}
	return out, nil
}

func (r *Repository) GetShellSubmodel(ctx context.Context, shellID, submodelID string) (*domain.SubmodelDescriptor, error) {
	if err := validatePair(shellID, submodelID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	shell, ok := r.shells[r.match.Key(shellID)]
	if !ok {
		return nil, repository.NewShellNotFoundError(shellID)
	}
	i := shell.FindSubmodel(submodelID, r.match)
	if i < 0 {
		return nil, repository.NewNotFoundInShellError(shell.ID(), submodelID)
	}

	cp := shell.SubmodelDescriptors[i].Clone()
	return &cp, nil
}

// AddShellSubmodel appends submodel to the shell's nested collection
func (r *Repository) AddShellSubmodel(ctx context.Context, shellID string, submodel *domain.SubmodelDescriptor) (*domain.SubmodelDescriptor, error) {
	if err := repository.ValidateShellID(shellID); err != nil {
		return nil, err
	}
	if err := repository.ValidateSubmodel(submodel); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	shell, ok := r.shells[r.match.Key(shellID)]
	if !ok {
		return nil, repository.NewShellNotFoundError(shellID)
	}
	if shell.FindSubmodel(submodel.ID(), r.match) >= 0 {
		return nil, repository.NewNestedSubmodelExistsError(shell.ID(), submodel.ID())
	}

	shell.SubmodelDescriptors = append(shell.SubmodelDescriptors, submodel.Clone())
	r.registerNested(shell.ID(), &shell.SubmodelDescriptors[len(shell.SubmodelDescriptors)-1])

	cp := submodel.Clone()
	return &cp, nil
}

// DeleteShellSubmodel removes a submodel from the shell's nested collection
func (r *Repository) DeleteShellSubmodel(ctx context.Context, shellID, submodelID string) error {
	if err := validatePair(shellID, submodelID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	shell, ok := r.shells[r.match.Key(shellID)]
	if !ok {
		return repository.NewShellNotFoundError(shellID)
	}
	i := shell.FindSubmodel(submodelID, r.match)
	if i < 0 {
		return repository.NewNotFoundInShellError(shell.ID(), submodelID)
	}

	r.unregisterNested(shell.ID(), shell.SubmodelDescriptors[i].ID())
	shell.RemoveSubmodel(i)
	return nil
}

// =============================================================================
// Standalone submodels
// =============================================================================

// ListSubmodels returns the standalone submodels ordered by lookup key.
// Submodels reachable only through a shell are not included.
func (r *Repository) ListSubmodels(ctx context.Context) ([]domain.SubmodelDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.SubmodelDescriptor, 0, len(r.submodels))
	for _, key := range sortedKeys(r.submodels) {
		if rec := r.submodels[key]; rec.Placement.IsStandalone() {
			out = append(out, rec.Descriptor.Clone())
		}
	}
	return out, nil
}

func (r *Repository) GetSubmodel(ctx context.Context, id string) (*domain.SubmodelDescriptor, error) {
	if err := repository.ValidateSubmodelID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.submodels[r.match.Key(id)]
	if !ok || !rec.Placement.IsStandalone() {
		return nil, repository.NewSubmodelNotFoundError(id)
	}
	cp := rec.Descriptor.Clone()
	return &cp, nil
}

// AddSubmodel registers a standalone submodel. A nested registration under
// the same id is taken over by the standalone record.
func (r *Repository) AddSubmodel(ctx context.Context, submodel *domain.SubmodelDescriptor) (*domain.SubmodelDescriptor, error) {
	if err := repository.ValidateSubmodel(submodel); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.match.Key(submodel.ID())
	if rec, ok := r.submodels[key]; ok && rec.Placement.IsStandalone() {
		return nil, repository.NewSubmodelExistsError(submodel.ID())
	}

	r.submodels[key] = &submodelRecord{
		Descriptor: submodel.Clone(),
		Placement:  domain.Standalone(),
	}

	cp := submodel.Clone()
	return &cp, nil
}

// DeleteSubmodel removes a standalone submodel. Shells nesting a submodel
// with the same id keep it.
func (r *Repository) DeleteSubmodel(ctx context.Context, id string) error {
	if err := repository.ValidateSubmodelID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := r.match.Key(id)
	rec, ok := r.submodels[key]
	if !ok || !rec.Placement.IsStandalone() {
		return repository.NewSubmodelNotFoundError(id)
	}
	delete(r.submodels, key)
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// registerNested records sm as nested in shellID unless its id is already
// taken. Caller must hold r.mu.
func (r *Repository) registerNested(shellID string, sm *domain.SubmodelDescriptor) {
	key := r.match.Key(sm.ID())
	if _, taken := r.submodels[key]; taken {
		return
	}
	r.submodels[key] = &submodelRecord{
		Descriptor: sm.Clone(),
		Placement:  domain.Nested(shellID),
	}
}

// unregisterNested drops the registration of submodelID if shellID owns it.
// Caller must hold r.mu.
func (r *Repository) unregisterNested(shellID, submodelID string) {
	key := r.match.Key(submodelID)
	if rec, ok := r.submodels[key]; ok && rec.Placement.OwnedBy(shellID) {
		delete(r.submodels, key)
	}
}

// placement reports how id is registered in the submodel lookup
func (r *Repository) placement(id string) (domain.Placement, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.submodels[r.match.Key(id)]
	if !ok {
		return domain.Placement{}, false
	}
	return rec.Placement, true
}

func validatePair(shellID, submodelID string) error {
	if err := repository.ValidateShellID(shellID); err != nil {
		return err
	}
	return repository.ValidateSubmodelID(submodelID)
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
