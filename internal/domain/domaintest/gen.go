// Package domaintest provides rapid generators for descriptor values.
package domaintest

import (
	"pgregory.net/rapid"

	"aasregistry/internal/domain"
)

var (
	textGen = rapid.StringMatching(`[a-zA-Z0-9 ./:_-]{0,16}`)
	idGen   = rapid.StringMatching(`[a-z][a-z0-9:/._-]{0,24}`)
)

// ID draws a non-blank identifier
func ID() *rapid.Generator[string] {
	return idGen
}

// Identifier draws an identifier with a non-blank id
func Identifier() *rapid.Generator[domain.Identifier] {
	return rapid.Custom(func(t *rapid.T) domain.Identifier {
		return domain.Identifier{
			ID:     idGen.Draw(t, "id"),
			IDType: rapid.SampledFrom([]domain.IdentifierType{domain.IdentifierTypeIRI, domain.IdentifierTypeIRDI, domain.IdentifierTypeCustom}).Draw(t, "idType"),
		}
	})
}

// LangStrings draws a possibly empty list of language strings
func LangStrings() *rapid.Generator[[]domain.LangString] {
	return rapid.SliceOfN(rapid.Custom(func(t *rapid.T) domain.LangString {
		return domain.LangString{
			Language: rapid.SampledFrom([]string{"en", "de", "fr"}).Draw(t, "language"),
			Text:     textGen.Draw(t, "text"),
		}
	}), 0, 3)
}

// Endpoints draws a possibly empty list of endpoints
func Endpoints() *rapid.Generator[[]domain.Endpoint] {
	return rapid.SliceOfN(rapid.Custom(func(t *rapid.T) domain.Endpoint {
		return domain.Endpoint{
			Interface: rapid.SampledFrom([]string{domain.InterfaceAAS, domain.InterfaceSubmodel}).Draw(t, "interface"),
			ProtocolInformation: domain.ProtocolInformation{
				EndpointAddress:         textGen.Draw(t, "address"),
				EndpointProtocol:        textGen.Draw(t, "protocol"),
				EndpointProtocolVersion: textGen.Draw(t, "version"),
				Subprotocol:             textGen.Draw(t, "subprotocol"),
				SubprotocolBody:         textGen.Draw(t, "subprotocolBody"),
				SubprotocolBodyEncoding: textGen.Draw(t, "subprotocolBodyEncoding"),
			},
		}
	}), 0, 3)
}

// Reference draws a reference or nil
func Reference() *rapid.Generator[*domain.Reference] {
	return rapid.Custom(func(t *rapid.T) *domain.Reference {
		if rapid.Bool().Draw(t, "nil") {
			return nil
		}
		keys := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) domain.Key {
			return domain.Key{
				Type:  rapid.SampledFrom([]domain.KeyType{domain.KeyTypeGlobalReference, domain.KeyTypeSubmodel, domain.KeyTypeConceptDescription}).Draw(t, "keyType"),
				Value: textGen.Draw(t, "keyValue"),
			}
		}), 1, 4).Draw(t, "keys")
		return domain.NewReference(rapid.SampledFrom([]string{domain.ExternalReference, domain.ModelReference}).Draw(t, "refType"), keys...)
	})
}

// Submodel draws a submodel descriptor
func Submodel() *rapid.Generator[domain.SubmodelDescriptor] {
	return rapid.Custom(func(t *rapid.T) domain.SubmodelDescriptor {
		return domain.SubmodelDescriptor{
			Identification: Identifier().Draw(t, "identification"),
			IDShort:        textGen.Draw(t, "idShort"),
			Descriptions:   LangStrings().Draw(t, "descriptions"),
			DisplayNames:   LangStrings().Draw(t, "displayNames"),
			Endpoints:      Endpoints().Draw(t, "endpoints"),
			SemanticID:     Reference().Draw(t, "semanticId"),
		}
	})
}

// Shell draws a shell descriptor whose nested submodels have distinct ids
func Shell() *rapid.Generator[domain.ShellDescriptor] {
	return rapid.Custom(func(t *rapid.T) domain.ShellDescriptor {
		specific := rapid.SliceOfN(rapid.Custom(func(t *rapid.T) domain.SpecificAssetID {
			return domain.SpecificAssetID{
				Name:              textGen.Draw(t, "name"),
				Value:             textGen.Draw(t, "value"),
				ExternalSubjectID: Reference().Draw(t, "externalSubjectId"),
			}
		}), 0, 2).Draw(t, "specificAssetIds")

		submodels := rapid.SliceOfNDistinct(Submodel(), 0, 3, func(sm domain.SubmodelDescriptor) string {
			return sm.Identification.ID
		}).Draw(t, "submodelDescriptors")

		return domain.ShellDescriptor{
			Identification:      Identifier().Draw(t, "identification"),
			IDShort:             textGen.Draw(t, "idShort"),
			Descriptions:        LangStrings().Draw(t, "descriptions"),
			DisplayNames:        LangStrings().Draw(t, "displayNames"),
			Endpoints:           Endpoints().Draw(t, "endpoints"),
			GlobalAssetID:       Reference().Draw(t, "globalAssetId"),
			SpecificAssetIDs:    specific,
			SubmodelDescriptors: submodels,
		}
	})
}
