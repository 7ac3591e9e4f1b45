package domain

import "slices"

// SubmodelDescriptor represents a submodel entry in the registry
type SubmodelDescriptor struct {
	Identification Identifier   `json:"identification" yaml:"identification"`
	IDShort        string       `json:"idShort,omitempty" yaml:"idShort,omitempty"`
	Descriptions   []LangString `json:"descriptions,omitempty" yaml:"descriptions,omitempty"`
	DisplayNames   []LangString `json:"displayNames,omitempty" yaml:"displayNames,omitempty"`
	Endpoints      []Endpoint   `json:"endpoints,omitempty" yaml:"endpoints,omitempty"`
	SemanticID     *Reference   `json:"semanticId,omitempty" yaml:"semanticId,omitempty"`
}

// NewSubmodelDescriptor creates a submodel descriptor with an IRI identifier
func NewSubmodelDescriptor(id, idShort string) *SubmodelDescriptor {
	return &SubmodelDescriptor{
		Identification: Identifier{ID: id, IDType: IdentifierTypeIRI},
		IDShort:        idShort,
	}
}

// ID returns the bare identifier used for lookups
func (s *SubmodelDescriptor) ID() string {
	return s.Identification.ID
}

// Clone returns a structurally independent copy
func (s SubmodelDescriptor) Clone() SubmodelDescriptor {
	return SubmodelDescriptor{
		Identification: s.Identification,
		IDShort:        s.IDShort,
		Descriptions:   slices.Clone(s.Descriptions),
		DisplayNames:   slices.Clone(s.DisplayNames),
		Endpoints:      slices.Clone(s.Endpoints),
		SemanticID:     s.SemanticID.Clone(),
	}
}

// Equal reports whether both descriptors hold the same data
func (s SubmodelDescriptor) Equal(other SubmodelDescriptor) bool {
	return s.Identification == other.Identification &&
		s.IDShort == other.IDShort &&
		slices.Equal(s.Descriptions, other.Descriptions) &&
		slices.Equal(s.DisplayNames, other.DisplayNames) &&
		slices.Equal(s.Endpoints, other.Endpoints) &&
		s.SemanticID.Equal(other.SemanticID)
}

// PlacementKind tags how a stored submodel record is addressable
type PlacementKind string

const (
	PlacementNested     PlacementKind = "nested"
	PlacementStandalone PlacementKind = "standalone"
)

// Placement is the explicit state of a stored submodel record. Owner is set
// only for nested records and holds the owning shell's identifier.
type Placement struct {
	Kind  PlacementKind `json:"kind" yaml:"kind"`
	Owner string        `json:"owner,omitempty" yaml:"owner,omitempty"`
}

// Nested returns the placement of a submodel owned by shellID
func Nested(shellID string) Placement {
	return Placement{Kind: PlacementNested, Owner: shellID}
}

// Standalone returns the placement of an independently registered submodel
func Standalone() Placement {
	return Placement{Kind: PlacementStandalone}
}

// IsStandalone reports whether the record is addressable on its own
func (p Placement) IsStandalone() bool {
	return p.Kind == PlacementStandalone
}

// OwnedBy reports whether the record is nested in the given shell
func (p Placement) OwnedBy(shellID string) bool {
	return p.Kind == PlacementNested && p.Owner == shellID
}

func (p Placement) String() string {
	if p.Kind == PlacementNested {
		return "nested(" + p.Owner + ")"
	}
	return string(p.Kind)
}
