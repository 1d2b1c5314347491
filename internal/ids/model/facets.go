package model

import "idsforge/internal/ids/restriction"

// EntityFacet constrains the IFC class of an element. Applicability holds at
// most one; requirements may hold several structurally though the editor
// works with one.
type EntityFacet struct {
	ID             string
	IFCClass       string
	PredefinedType string
	URI            string
	Instructions   string // requirements side only
}

// ClassificationFacet constrains classification system membership. An absent
// Value means "a classification from this system must be present".
type ClassificationFacet struct {
	ID           string
	System       string
	Value        restriction.Value
	URI          string
	Cardinality  Optionality // requirements side only
	Instructions string      // requirements side only
}

// AttributeFacet constrains a direct IFC attribute. The schema permits the
// name itself to be a restriction; the model keeps it a plain string with
// the restriction on the value only. Attributes carry no datatype in the
// schema.
type AttributeFacet struct {
	ID           string
	Name         string
	Value        restriction.Value
	Cardinality  Optionality
	Instructions string
}

// PropertyFacet constrains a property inside a property set.
type PropertyFacet struct {
	ID           string
	PropertySet  string
	BaseName     string
	Datatype     string // IFC simple-type name, e.g. IFCLABEL
	Value        restriction.Value
	URI          string
	Cardinality  Optionality
	Instructions string
}

// MaterialFacet constrains element material. An absent Value means "some
// material must be assigned".
type MaterialFacet struct {
	ID           string
	Value        restriction.Value
	URI          string
	Cardinality  Optionality
	Instructions string
}

// PartOfFacet constrains the containment/decomposition relation of an
// element toward a host entity.
type PartOfFacet struct {
	ID           string
	Relation     string // one of PartOfRelations, may be empty
	Entity       EntityFacet
	Cardinality  Optionality
	Instructions string
}
