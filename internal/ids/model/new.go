package model

import (
	"github.com/google/uuid"

	"idsforge/internal/ids/restriction"
)

// DefaultTitle is the header title given to new documents and to imports
// whose header omits one.
const DefaultTitle = "Untitled IDS"

// NewID returns a fresh opaque entity id. Uniqueness only needs to hold
// within one open document's lifetime.
func NewID() string {
	return uuid.NewString()
}

// NewRoot builds a default document: titled header, one section holding one
// default specification. No field the codec needs on export is left empty.
func NewRoot() *IDSRoot {
	return &IDSRoot{
		Header:   Header{Title: DefaultTitle},
		Sections: []Section{NewSection("Section 1")},
	}
}

// NewSection builds an empty titled section with one default specification.
func NewSection(title string) Section {
	return Section{
		ID:             NewID(),
		Title:          title,
		Specifications: []Specification{NewSpecification("New specification")},
	}
}

// NewSpecification builds a specification with export-safe defaults:
// IFCVersion IFC4 and Optionality required.
func NewSpecification(name string) Specification {
	s := Specification{
		ID:          NewID(),
		IFCVersion:  IFC4,
		Optionality: OptionalityRequired,
	}
	s.SetName(name)
	return s
}

// NewEntityFacet builds an empty entity facet.
func NewEntityFacet() EntityFacet {
	return EntityFacet{ID: NewID()}
}

// NewClassificationFacet builds an empty classification facet defaulting to
// required cardinality.
func NewClassificationFacet() ClassificationFacet {
	return ClassificationFacet{ID: NewID(), Value: restriction.Absent(), Cardinality: OptionalityRequired}
}

// NewAttributeFacet builds an empty attribute facet defaulting to required
// cardinality.
func NewAttributeFacet() AttributeFacet {
	return AttributeFacet{ID: NewID(), Value: restriction.Absent(), Cardinality: OptionalityRequired}
}

// NewPropertyFacet builds an empty property facet defaulting to required
// cardinality.
func NewPropertyFacet() PropertyFacet {
	return PropertyFacet{ID: NewID(), Value: restriction.Absent(), Cardinality: OptionalityRequired}
}

// NewMaterialFacet builds an empty material facet defaulting to required
// cardinality.
func NewMaterialFacet() MaterialFacet {
	return MaterialFacet{ID: NewID(), Value: restriction.Absent(), Cardinality: OptionalityRequired}
}

// NewPartOfFacet builds an empty partOf facet with a nested entity facet and
// required cardinality.
func NewPartOfFacet() PartOfFacet {
	return PartOfFacet{
		ID:          NewID(),
		Entity:      NewEntityFacet(),
		Cardinality: OptionalityRequired,
	}
}
