// Package traced decorates a repository.Repository with OpenTelemetry spans.
package traced

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"aasregistry/internal/domain"
	"aasregistry/internal/repository"
)

// Span names and attribute keys
const (
	SpanPrefix = "registry."

	AttrBackend    = "registry.backend"
	AttrShellID    = "registry.shell_id"
	AttrSubmodelID = "registry.submodel_id"
	AttrCount      = "registry.count"
	AttrErrorKind  = "registry.error_kind"
)

// Repository wraps another repository and records one span per operation
type Repository struct {
	next   repository.Repository
	tracer trace.Tracer
}

var _ repository.Repository = (*Repository)(nil)

// New wraps next. A nil tracer returns next unchanged.
func New(next repository.Repository, tracer trace.Tracer) repository.Repository {
	if tracer == nil {
		return next
	}
	return &Repository{next: next, tracer: tracer}
}

func (r *Repository) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := r.tracer.Start(ctx, SpanPrefix+op, trace.WithSpanKind(trace.SpanKindInternal))
	span.SetAttributes(attribute.String(AttrBackend, r.next.Name()))
	span.SetAttributes(attrs...)
	return ctx, span
}

// finish records the outcome of an operation and ends the span
func finish(span trace.Span, err error) {
	defer span.End()
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrErrorKind, errorKind(err)))
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetStatus(codes.Ok, "")
}

func errorKind(err error) string {
	switch {
	case repository.IsNotFoundInShell(err):
		return "not_found_in_shell"
	case repository.IsNotFound(err):
		return "not_found"
	case repository.IsAlreadyExists(err):
		return "already_exists"
	case repository.IsInvalidArgument(err):
		return "invalid_argument"
	case repository.IsSerialization(err):
		return "serialization"
	default:
		return "internal"
	}
}

func shellAttr(id string) attribute.KeyValue    { return attribute.String(AttrShellID, id) }
func submodelAttr(id string) attribute.KeyValue { return attribute.String(AttrSubmodelID, id) }

func (r *Repository) Name() string {
	return r.next.Name()
}

func (r *Repository) Close() error {
	return r.next.Close()
}

func (r *Repository) ListShells(ctx context.Context) ([]domain.ShellDescriptor, error) {
	ctx, span := r.start(ctx, "ListShells")
	shells, err := r.next.ListShells(ctx)
	span.SetAttributes(attribute.Int(AttrCount, len(shells)))
	finish(span, err)
	return shells, err
}

func (r *Repository) GetShell(ctx context.Context, id string) (*domain.ShellDescriptor, error) {
	ctx, span := r.start(ctx, "GetShell", shellAttr(id))
	shell, err := r.next.GetShell(ctx, id)
	finish(span, err)
	return shell, err
}

func (r *Repository) CreateShell(ctx context.Context, shell *domain.ShellDescriptor) (*domain.ShellDescriptor, error) {
	var id string
	if shell != nil {
		id = shell.ID()
	}
	ctx, span := r.start(ctx, "CreateShell", shellAttr(id))
	created, err := r.next.CreateShell(ctx, shell)
	finish(span, err)
	return created, err
}

func (r *Repository) UpdateShell(ctx context.Context, id string, shell *domain.ShellDescriptor) (*domain.ShellDescriptor, error) {
	ctx, span := r.start(ctx, "UpdateShell", shellAttr(id))
	updated, err := r.next.UpdateShell(ctx, id, shell)
	finish(span, err)
	return updated, err
}

func (r *Repository) DeleteShell(ctx context.Context, id string) error {
	ctx, span := r.start(ctx, "DeleteShell", shellAttr(id))
	err := r.next.DeleteShell(ctx, id)
	finish(span, err)
	return err
}

func (r *Repository) ListShellSubmodels(ctx context.Context, shellID string) ([]domain.SubmodelDescriptor, error) {
	ctx, span := r.start(ctx, "ListShellSubmodels", shellAttr(shellID))
	sms, err := r.next.ListShellSubmodels(ctx, shellID)
	span.SetAttributes(attribute.Int(AttrCount, len(sms)))
	finish(span, err)
	return sms, err
}

func (r *Repository) GetShellSubmodel(ctx context.Context, shellID, submodelID string) (*domain.SubmodelDescriptor, error) {
	ctx, span := r.start(ctx, "GetShellSubmodel", shellAttr(shellID), submodelAttr(submodelID))
	sm, err := r.next.GetShellSubmodel(ctx, shellID, submodelID)
	finish(span, err)
	return sm, err
}

func (r *Repository) AddShellSubmodel(ctx context.Context, shellID string, submodel *domain.SubmodelDescriptor) (*domain.SubmodelDescriptor, error) {
	var id string
	if submodel != nil {
		id = submodel.ID()
	}
	ctx, span := r.start(ctx, "AddShellSubmodel", shellAttr(shellID), submodelAttr(id))
	added, err := r.next.AddShellSubmodel(ctx, shellID, submodel)
	finish(span, err)
	return added, err
}

func (r *Repository) DeleteShellSubmodel(ctx context.Context, shellID, submodelID string) error {
	ctx, span := r.start(ctx, "DeleteShellSubmodel", shellAttr(shellID), submodelAttr(submodelID))
	err := r.next.DeleteShellSubmodel(ctx, shellID, submodelID)
	finish(span, err)
	return err
}

func (r *Repository) ListSubmodels(ctx context.Context) ([]domain.SubmodelDescriptor, error) {
	ctx, span := r.start(ctx, "ListSubmodels")
	sms, err := r.next.ListSubmodels(ctx)
	span.SetAttributes(attribute.Int(AttrCount, len(sms)))
	finish(span, err)
	return sms, err
}

func (r *Repository) GetSubmodel(ctx context.Context, id string) (*domain.SubmodelDescriptor, error) {
	ctx, span := r.start(ctx, "GetSubmodel", submodelAttr(id))
	sm, err := r.next.GetSubmodel(ctx, id)
	finish(span, err)
	return sm, err
}

func (r *Repository) AddSubmodel(ctx context.Context, submodel *domain.SubmodelDescriptor) (*domain.SubmodelDescriptor, error) {
	var id string
	if submodel != nil {
		id = submodel.ID()
	}
	ctx, span := r.start(ctx, "AddSubmodel", submodelAttr(id))
	added, err := r.next.AddSubmodel(ctx, submodel)
	finish(span, err)
	return added, err
}

func (r *Repository) DeleteSubmodel(ctx context.Context, id string) error {
	ctx, span := r.start(ctx, "DeleteSubmodel", submodelAttr(id))
	err := r.next.DeleteSubmodel(ctx, id)
	finish(span, err)
	return err
}
