package codec

import (
	"encoding/xml"

	"idsforge/internal/ids/restriction"
)

// Unmarshal-side wire structs. Tags use bare local names so any prefix (or a
// default namespace) in conforming input matches; the root's namespace is
// verified explicitly in FromXML. Every "may be absent" element is a pointer
// or slice, probed with a nil check rather than a dynamic lookup.

type inRoot struct {
	XMLName        xml.Name `xml:"ids"`
	Info           *inInfo  `xml:"info"`
	Specifications *inSpecs `xml:"specifications"`
}

type inInfo struct {
	Title       *string `xml:"title"`
	Copyright   string  `xml:"copyright"`
	Version     string  `xml:"version"`
	Description string  `xml:"description"`
	Author      string  `xml:"author"`
	Date        string  `xml:"date"`
	Purpose     string  `xml:"purpose"`
	Milestone   string  `xml:"milestone"`
}

type inSpecs struct {
	Specifications []inSpecification `xml:"specification"`
}

type inSpecification struct {
	Name          string           `xml:"name,attr"`
	IFCVersion    string           `xml:"ifcVersion,attr"`
	Identifier    string           `xml:"identifier,attr"`
	Description   string           `xml:"description,attr"`
	Instructions  string           `xml:"instructions,attr"`
	Applicability *inApplicability `xml:"applicability"`
	Requirements  *inFacets        `xml:"requirements"`
}

type inApplicability struct {
	MinOccurs string `xml:"minOccurs,attr"`
	MaxOccurs string `xml:"maxOccurs,attr"`
	inFacets
}

type inFacets struct {
	Entities        []inEntity         `xml:"entity"`
	PartOfs         []inPartOf         `xml:"partOf"`
	Classifications []inClassification `xml:"classification"`
	Attributes      []inAttribute      `xml:"attribute"`
	Properties      []inProperty       `xml:"property"`
	Materials       []inMaterial       `xml:"material"`
}

type inValue = restriction.ValueIn

type inEntity struct {
	URI            string   `xml:"uri,attr"`
	Instructions   string   `xml:"instructions,attr"`
	Name           *inValue `xml:"name"`
	PredefinedType *inValue `xml:"predefinedType"`
}

type inPartOf struct {
	Relation     string    `xml:"relation,attr"`
	URI          string    `xml:"uri,attr"`
	Cardinality  string    `xml:"cardinality,attr"`
	Instructions string    `xml:"instructions,attr"`
	Entity       *inEntity `xml:"entity"`
}

type inClassification struct {
	URI          string   `xml:"uri,attr"`
	Cardinality  string   `xml:"cardinality,attr"`
	Instructions string   `xml:"instructions,attr"`
	Value        *inValue `xml:"value"`
	System       *inValue `xml:"system"`
}

type inAttribute struct {
	Cardinality  string   `xml:"cardinality,attr"`
	Instructions string   `xml:"instructions,attr"`
	Name         *inValue `xml:"name"`
	Value        *inValue `xml:"value"`
}

type inProperty struct {
	DataType     string   `xml:"dataType,attr"`
	URI          string   `xml:"uri,attr"`
	Cardinality  string   `xml:"cardinality,attr"`
	Instructions string   `xml:"instructions,attr"`
	PropertySet  *inValue `xml:"propertySet"`
	BaseName     *inValue `xml:"baseName"`
	Value        *inValue `xml:"value"`
}

type inMaterial struct {
	URI          string   `xml:"uri,attr"`
	Cardinality  string   `xml:"cardinality,attr"`
	Instructions string   `xml:"instructions,attr"`
	Value        *inValue `xml:"value"`
}
