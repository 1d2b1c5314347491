package codec

import (
	"encoding/xml"

	"idsforge/internal/ids/restriction"
)

// Marshal-side wire structs. Element names carry explicit ids:/xs: prefixes;
// the root declares both namespaces so independent IDS tooling resolves them.
// The unmarshal side lives in wire_in.go (encoding/xml cannot share one
// struct set across both directions once prefixes are involved).

const (
	idsNamespace   = "http://standards.buildingsmart.org/IDS"
	xsNamespace    = "http://www.w3.org/2001/XMLSchema"
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = idsNamespace + " http://standards.buildingsmart.org/IDS/1.0/ids.xsd"
)

type outRoot struct {
	XMLName        xml.Name `xml:"ids:ids"`
	XMLNSIDS       string   `xml:"xmlns:ids,attr"`
	XMLNSXS        string   `xml:"xmlns:xs,attr"`
	XMLNSXSI       string   `xml:"xmlns:xsi,attr"`
	SchemaLocation string   `xml:"xsi:schemaLocation,attr"`
	Info           outInfo  `xml:"ids:info"`
	Specifications outSpecs `xml:"ids:specifications"`
}

// outInfo mirrors the schema's info sequence order. Optional free-text
// fields are omitted when empty, never emitted as empty elements.
type outInfo struct {
	Title       string `xml:"ids:title"`
	Copyright   string `xml:"ids:copyright,omitempty"`
	Version     string `xml:"ids:version,omitempty"`
	Description string `xml:"ids:description,omitempty"`
	Author      string `xml:"ids:author,omitempty"`
	Date        string `xml:"ids:date,omitempty"`
	Purpose     string `xml:"ids:purpose,omitempty"`
	Milestone   string `xml:"ids:milestone,omitempty"`
}

type outSpecs struct {
	Specifications []outSpecification `xml:"ids:specification"`
}

type outSpecification struct {
	Name          string           `xml:"name,attr"`
	IFCVersion    string           `xml:"ifcVersion,attr"`
	Identifier    string           `xml:"identifier,attr,omitempty"`
	Description   string           `xml:"description,attr,omitempty"`
	Instructions  string           `xml:"instructions,attr,omitempty"`
	Applicability outApplicability `xml:"ids:applicability"`
	Requirements  outRequirements  `xml:"ids:requirements"`
}

type outApplicability struct {
	MinOccurs string `xml:"minOccurs,attr"`
	MaxOccurs string `xml:"maxOccurs,attr"`
	outFacets
}

type outRequirements struct {
	outFacets
}

// outFacets fixes the facet emission order: entity, partOf, classification,
// attribute, property, material.
type outFacets struct {
	Entities        []outEntity         `xml:"ids:entity,omitempty"`
	PartOfs         []outPartOf         `xml:"ids:partOf,omitempty"`
	Classifications []outClassification `xml:"ids:classification,omitempty"`
	Attributes      []outAttribute      `xml:"ids:attribute,omitempty"`
	Properties      []outProperty       `xml:"ids:property,omitempty"`
	Materials       []outMaterial       `xml:"ids:material,omitempty"`
}

// outValue wraps restriction wire content inside a named facet child such as
// ids:name or ids:value.
type outValue struct {
	restriction.XMLValue
}

type outEntity struct {
	URI            string    `xml:"uri,attr,omitempty"`
	Instructions   string    `xml:"instructions,attr,omitempty"`
	Name           outValue  `xml:"ids:name"`
	PredefinedType *outValue `xml:"ids:predefinedType,omitempty"`
}

type outPartOf struct {
	Relation     string    `xml:"relation,attr,omitempty"`
	URI          string    `xml:"uri,attr,omitempty"`
	Cardinality  string    `xml:"cardinality,attr,omitempty"`
	Instructions string    `xml:"instructions,attr,omitempty"`
	Entity       outEntity `xml:"ids:entity"`
}

type outClassification struct {
	URI          string    `xml:"uri,attr,omitempty"`
	Cardinality  string    `xml:"cardinality,attr,omitempty"`
	Instructions string    `xml:"instructions,attr,omitempty"`
	Value        *outValue `xml:"ids:value,omitempty"`
	System       *outValue `xml:"ids:system,omitempty"`
}

type outAttribute struct {
	Cardinality  string    `xml:"cardinality,attr,omitempty"`
	Instructions string    `xml:"instructions,attr,omitempty"`
	Name         outValue  `xml:"ids:name"`
	Value        *outValue `xml:"ids:value,omitempty"`
}

type outProperty struct {
	DataType     string    `xml:"dataType,attr,omitempty"`
	URI          string    `xml:"uri,attr,omitempty"`
	Cardinality  string    `xml:"cardinality,attr,omitempty"`
	Instructions string    `xml:"instructions,attr,omitempty"`
	PropertySet  outValue  `xml:"ids:propertySet"`
	BaseName     outValue  `xml:"ids:baseName"`
	Value        *outValue `xml:"ids:value,omitempty"`
}

type outMaterial struct {
	URI          string    `xml:"uri,attr,omitempty"`
	Cardinality  string    `xml:"cardinality,attr,omitempty"`
	Instructions string    `xml:"instructions,attr,omitempty"`
	Value        *outValue `xml:"ids:value,omitempty"`
}
