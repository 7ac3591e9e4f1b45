package domain

import "slices"

// ShellDescriptor represents an Asset Administration Shell entry in the registry.
// SubmodelDescriptors holds the shell's nested submodels in insertion order.
type ShellDescriptor struct {
	Identification      Identifier           `json:"identification" yaml:"identification"`
	IDShort             string               `json:"idShort,omitempty" yaml:"idShort,omitempty"`
	Descriptions        []LangString         `json:"descriptions,omitempty" yaml:"descriptions,omitempty"`
	DisplayNames        []LangString         `json:"displayNames,omitempty" yaml:"displayNames,omitempty"`
	Endpoints           []Endpoint           `json:"endpoints,omitempty" yaml:"endpoints,omitempty"`
	GlobalAssetID       *Reference           `json:"globalAssetId,omitempty" yaml:"globalAssetId,omitempty"`
	SpecificAssetIDs    []SpecificAssetID    `json:"specificAssetIds,omitempty" yaml:"specificAssetIds,omitempty"`
	SubmodelDescriptors []SubmodelDescriptor `json:"submodelDescriptors,omitempty" yaml:"submodelDescriptors,omitempty"`
}

// NewShellDescriptor creates a shell descriptor with an IRI identifier
func NewShellDescriptor(id, idShort string) *ShellDescriptor {
	return &ShellDescriptor{
		Identification: Identifier{ID: id, IDType: IdentifierTypeIRI},
		IDShort:        idShort,
	}
}

// ID returns the bare identifier used for lookups
func (s *ShellDescriptor) ID() string {
	return s.Identification.ID
}

// Clone returns a structurally independent copy, including nested submodels
func (s ShellDescriptor) Clone() ShellDescriptor {
	return ShellDescriptor{
		Identification:      s.Identification,
		IDShort:             s.IDShort,
		Descriptions:        slices.Clone(s.Descriptions),
		DisplayNames:        slices.Clone(s.DisplayNames),
		Endpoints:           slices.Clone(s.Endpoints),
		GlobalAssetID:       s.GlobalAssetID.Clone(),
		SpecificAssetIDs:    cloneEach(s.SpecificAssetIDs, SpecificAssetID.Clone),
		SubmodelDescriptors: cloneEach(s.SubmodelDescriptors, SubmodelDescriptor.Clone),
	}
}

// Equal reports whether both descriptors hold the same data, nested submodels
// included and compared in order.
func (s ShellDescriptor) Equal(other ShellDescriptor) bool {
	return s.Identification == other.Identification &&
		s.IDShort == other.IDShort &&
		slices.Equal(s.Descriptions, other.Descriptions) &&
		slices.Equal(s.DisplayNames, other.DisplayNames) &&
		slices.Equal(s.Endpoints, other.Endpoints) &&
		s.GlobalAssetID.Equal(other.GlobalAssetID) &&
		slices.EqualFunc(s.SpecificAssetIDs, other.SpecificAssetIDs, SpecificAssetID.Equal) &&
		slices.EqualFunc(s.SubmodelDescriptors, other.SubmodelDescriptors, SubmodelDescriptor.Equal)
}

// FindSubmodel returns the index of the nested submodel matching id under
// match, or -1.
func (s *ShellDescriptor) FindSubmodel(id string, match IDMatch) int {
	key := match.Key(id)
	for i := range s.SubmodelDescriptors {
		if match.Key(s.SubmodelDescriptors[i].Identification.ID) == key {
			return i
		}
	}
	return -1
}

// RemoveSubmodel drops the nested submodel at index i, keeping order.
func (s *ShellDescriptor) RemoveSubmodel(i int) {
	s.SubmodelDescriptors = slices.Delete(s.SubmodelDescriptors, i, i+1)
}
