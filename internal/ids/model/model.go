// Package model holds the canonical in-memory representation of an IDS
// document: header, sections, specifications, and the applicability and
// requirements facet sets.
//
// Invariants:
//   - every Section, Specification, and facet carries an ID unique within
//     the document; IDs address entities from the editor and are never
//     serialized to XML
//   - Specification keeps Name as the authoritative display name and Title
//     as a legacy alias; the two stay synchronized through SetName
//   - Optionality on a Specification is always set (defaults to
//     OptionalityRequired); facet Cardinality inside requirements defaults
//     to required when absent in imported XML
//
// Edits follow copy-on-write discipline: every mutation goes through Clone
// so a root handed to the UI layer is never changed in place. The UI relies
// on reference-identity change detection.
package model

import "strings"

// IFCVersion is one of the supported IFC schema versions.
type IFCVersion string

const (
	IFC2X3  IFCVersion = "IFC2X3"
	IFC4    IFCVersion = "IFC4"
	IFC4X3  IFCVersion = "IFC4X3_ADD2"
	IFC4X3A IFCVersion = "IFC4X3"
)

// SupportedIFCVersions lists the schema versions a specification may target,
// in the order the editor offers them.
var SupportedIFCVersions = []IFCVersion{IFC2X3, IFC4, IFC4X3A, IFC4X3}

// IsSupportedIFCVersion reports whether v is a recognized schema version.
func IsSupportedIFCVersion(v IFCVersion) bool {
	for _, s := range SupportedIFCVersions {
		if s == v {
			return true
		}
	}
	return false
}

// Optionality classifies a specification or requirement facet as required,
// optional, or prohibited. It maps to XML occurrence bounds on export.
type Optionality string

const (
	OptionalityRequired   Optionality = "required"
	OptionalityOptional   Optionality = "optional"
	OptionalityProhibited Optionality = "prohibited"
)

// ParseOptionality normalizes free text to an Optionality, defaulting to
// required for empty or unrecognized input.
func ParseOptionality(s string) Optionality {
	switch Optionality(strings.ToLower(strings.TrimSpace(s))) {
	case OptionalityOptional:
		return OptionalityOptional
	case OptionalityProhibited:
		return OptionalityProhibited
	default:
		return OptionalityRequired
	}
}

// PartOfRelations is the fixed set of IFC relationship names a partOf facet
// may carry.
var PartOfRelations = []string{
	"IFCRELAGGREGATES",
	"IFCRELASSIGNSTOGROUP",
	"IFCRELCONTAINEDINSPATIALSTRUCTURE",
	"IFCRELNESTS",
	"IFCRELVOIDSELEMENT IFCRELFILLSELEMENT",
}

// IsPartOfRelation reports whether the relation name is one of the fixed set.
func IsPartOfRelation(relation string) bool {
	for _, r := range PartOfRelations {
		if r == relation {
			return true
		}
	}
	return false
}

// Header carries the document-level metadata block. Title is the only
// required field; Date is ISO-8601 text, the rest free text.
type Header struct {
	Title       string
	Description string
	Author      string
	Date        string
	Version     string
	Copyright   string
	Purpose     string
	Milestone   string
}

// IDSRoot is the top-level owned aggregate: one header plus an ordered
// sequence of sections. It is created on document open, replaced wholesale
// on import, and only ever mutated through cloned snapshots.
type IDSRoot struct {
	Header   Header
	Sections []Section
}

// Section is a UI grouping of specifications. It has no direct equivalent in
// the IDS schema; the codec embeds a marker to survive round-trips.
type Section struct {
	ID             string
	Title          string
	Description    string
	Specifications []Specification
}

// Specification is one applicability/requirements rule pair.
type Specification struct {
	ID           string
	Name         string
	Title        string // legacy alias, kept in sync with Name
	Description  string
	Identifier   string
	Instructions string
	IFCVersion   IFCVersion
	Optionality  Optionality
	Applicability FacetSet
	Requirements  FacetSet
}

// DisplayName returns the authoritative display name, preferring Name and
// falling back to the legacy Title alias.
func (s *Specification) DisplayName() string {
	if strings.TrimSpace(s.Name) != "" {
		return s.Name
	}
	return s.Title
}

// SetName updates the display name, keeping the legacy alias synchronized.
func (s *Specification) SetName(name string) {
	s.Name = name
	s.Title = name
}

// FacetSet holds the facet collections attached to one side of a
// specification. Collections are semantically sets; serialization order is
// insertion order, which round-trips but carries no validation meaning.
type FacetSet struct {
	Entities        []EntityFacet
	PartOfs         []PartOfFacet
	Classifications []ClassificationFacet
	Attributes      []AttributeFacet
	Properties      []PropertyFacet
	Materials       []MaterialFacet
}

// Empty reports whether the set holds no facets at all.
func (f *FacetSet) Empty() bool {
	return len(f.Entities) == 0 && len(f.PartOfs) == 0 &&
		len(f.Classifications) == 0 && len(f.Attributes) == 0 &&
		len(f.Properties) == 0 && len(f.Materials) == 0
}
