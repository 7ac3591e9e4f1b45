package domain

import "slices"

// IdentifierType names the scheme of an identifier
type IdentifierType string

const (
	IdentifierTypeIRI    IdentifierType = "IRI"
	IdentifierTypeIRDI   IdentifierType = "IRDI"
	IdentifierTypeCustom IdentifierType = "Custom"
)

// Identifier is the (type, identifier) pair of the wire format. Only ID takes
// part in lookups.
type Identifier struct {
	ID     string         `json:"id" yaml:"id"`
	IDType IdentifierType `json:"idType,omitempty" yaml:"idType,omitempty"`
}

// LangString is a text in a given language
type LangString struct {
	Language string `json:"language" yaml:"language"`
	Text     string `json:"text" yaml:"text"`
}

// KeyType names what a reference key points at
type KeyType string

const (
	KeyTypeGlobalReference    KeyType = "GlobalReference"
	KeyTypeConceptDescription KeyType = "ConceptDescription"
	KeyTypeSubmodel           KeyType = "Submodel"
	KeyTypeAssetAdminShell    KeyType = "AssetAdministrationShell"
	KeyTypeFragmentReference  KeyType = "FragmentReference"
)

// Reference types
const (
	ExternalReference = "ExternalReference"
	ModelReference    = "ModelReference"
)

// Key is one typed step of a reference
type Key struct {
	Type  KeyType `json:"type" yaml:"type"`
	Value string  `json:"value" yaml:"value"`
}

// Reference is an ordered sequence of keys, e.g. a semantic id.
type Reference struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	Keys []Key  `json:"keys" yaml:"keys"`
}

// NewReference builds a reference of the given type from keys.
func NewReference(refType string, keys ...Key) *Reference {
	return &Reference{Type: refType, Keys: slices.Clone(keys)}
}

// Clone returns an independent copy of the reference. A nil reference clones to nil.
func (r *Reference) Clone() *Reference {
	if r == nil {
		return nil
	}
	return &Reference{Type: r.Type, Keys: slices.Clone(r.Keys)}
}

// Equal reports whether both references have the same type and keys in the same order.
func (r *Reference) Equal(other *Reference) bool {
	if r == nil || other == nil {
		return r == nil && other == nil
	}
	return r.Type == other.Type && slices.Equal(r.Keys, other.Keys)
}

// SpecificAssetID is a name/value pair identifying the asset in a given scope.
type SpecificAssetID struct {
	Name              string     `json:"name" yaml:"name"`
	Value             string     `json:"value" yaml:"value"`
	ExternalSubjectID *Reference `json:"externalSubjectId,omitempty" yaml:"externalSubjectId,omitempty"`
}

// Clone returns an independent copy
func (s SpecificAssetID) Clone() SpecificAssetID {
	return SpecificAssetID{
		Name:              s.Name,
		Value:             s.Value,
		ExternalSubjectID: s.ExternalSubjectID.Clone(),
	}
}

// Equal compares all fields
func (s SpecificAssetID) Equal(other SpecificAssetID) bool {
	return s.Name == other.Name &&
		s.Value == other.Value &&
		s.ExternalSubjectID.Equal(other.ExternalSubjectID)
}

// cloneEach deep-copies a slice element by element, keeping nil as nil.
func cloneEach[T any](in []T, clone func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}
