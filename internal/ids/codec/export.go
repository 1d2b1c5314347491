// Package codec converts the in-memory IDS document model to and from the
// namespace-qualified XML of the buildingSMART IDS schema. Export is
// deterministic and order-preserving; import mirrors it exactly in reverse,
// degrading unrecognized value restrictions to absent instead of failing.
package codec

import (
	"encoding/xml"

	"idsforge/internal/ids/model"
	"idsforge/internal/ids/restriction"
	dErrors "idsforge/pkg/domain-errors"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// ToXML serializes a document to IDS XML. The model is never mutated.
// Callers are expected to run validate.Document first; ToXML itself only
// fails on marshal errors, which a well-formed model cannot produce.
func ToXML(root *model.IDSRoot) ([]byte, error) {
	out := outRoot{
		XMLNSIDS:       idsNamespace,
		XMLNSXS:        xsNamespace,
		XMLNSXSI:       xsiNamespace,
		SchemaLocation: schemaLocation,
		Info:           exportInfo(root.Header),
	}

	for _, sec := range root.Sections {
		for _, spec := range sec.Specifications {
			out.Specifications.Specifications = append(
				out.Specifications.Specifications, exportSpecification(sec, spec))
		}
	}

	data, err := xml.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "marshal ids document")
	}
	buf := make([]byte, 0, len(xmlHeader)+len(data)+1)
	buf = append(buf, xmlHeader...)
	buf = append(buf, data...)
	buf = append(buf, '\n')
	return buf, nil
}

func exportInfo(h model.Header) outInfo {
	title := h.Title
	if title == "" {
		title = model.DefaultTitle
	}
	return outInfo{
		Title:       title,
		Copyright:   h.Copyright,
		Version:     h.Version,
		Description: h.Description,
		Author:      h.Author,
		Date:        h.Date,
		Purpose:     h.Purpose,
		Milestone:   h.Milestone,
	}
}

func exportSpecification(sec model.Section, spec model.Specification) outSpecification {
	out := outSpecification{
		Name:         spec.DisplayName(),
		IFCVersion:   string(spec.IFCVersion),
		Identifier:   spec.Identifier,
		Description:  spec.Description,
		Instructions: markInstructions(sec.Title, sec.Description, spec.Instructions),
	}

	out.Applicability.MinOccurs, out.Applicability.MaxOccurs = occurs(spec.Optionality)
	out.Applicability.outFacets = exportApplicabilityFacets(spec.Applicability)
	out.Requirements.outFacets = exportRequirementFacets(spec.Requirements)
	return out
}

// occurs maps specification optionality to the applicability wrapper's XML
// occurrence bounds. required -> minOccurs=1, optional -> minOccurs=0,
// prohibited -> maxOccurs=0.
func occurs(opt model.Optionality) (minOccurs, maxOccurs string) {
	switch opt {
	case model.OptionalityOptional:
		return "0", "unbounded"
	case model.OptionalityProhibited:
		return "0", "0"
	default:
		return "1", "unbounded"
	}
}

// exportApplicabilityFacets emits the applicability side: no cardinality or
// instructions attributes, and at most one entity facet.
func exportApplicabilityFacets(set model.FacetSet) outFacets {
	var out outFacets
	if len(set.Entities) > 0 {
		e := set.Entities[0]
		out.Entities = []outEntity{exportEntity(e, false)}
	}
	for _, p := range set.PartOfs {
		out.PartOfs = append(out.PartOfs, outPartOf{
			Relation: p.Relation,
			Entity:   exportEntity(p.Entity, false),
		})
	}
	for _, c := range set.Classifications {
		out.Classifications = append(out.Classifications, outClassification{
			URI:    c.URI,
			Value:  optionalValue(c.Value),
			System: plainValueOpt(c.System),
		})
	}
	for _, a := range set.Attributes {
		out.Attributes = append(out.Attributes, outAttribute{
			Name:  plainValue(a.Name),
			Value: optionalValue(a.Value),
		})
	}
	for _, p := range set.Properties {
		out.Properties = append(out.Properties, outProperty{
			DataType:    p.Datatype,
			URI:         p.URI,
			PropertySet: plainValue(p.PropertySet),
			BaseName:    plainValue(p.BaseName),
			Value:       optionalValue(p.Value),
		})
	}
	for _, m := range set.Materials {
		out.Materials = append(out.Materials, outMaterial{
			URI:   m.URI,
			Value: optionalValue(m.Value),
		})
	}
	return out
}

// exportRequirementFacets emits the requirements side, which additionally
// carries cardinality and instructions per facet.
func exportRequirementFacets(set model.FacetSet) outFacets {
	var out outFacets
	for _, e := range set.Entities {
		out.Entities = append(out.Entities, exportEntity(e, true))
	}
	for _, p := range set.PartOfs {
		out.PartOfs = append(out.PartOfs, outPartOf{
			Relation:     p.Relation,
			Cardinality:  cardinality(p.Cardinality),
			Instructions: p.Instructions,
			Entity:       exportEntity(p.Entity, false),
		})
	}
	for _, c := range set.Classifications {
		out.Classifications = append(out.Classifications, outClassification{
			URI:          c.URI,
			Cardinality:  cardinality(c.Cardinality),
			Instructions: c.Instructions,
			Value:        optionalValue(c.Value),
			System:       plainValueOpt(c.System),
		})
	}
	for _, a := range set.Attributes {
		out.Attributes = append(out.Attributes, outAttribute{
			Cardinality:  cardinality(a.Cardinality),
			Instructions: a.Instructions,
			Name:         plainValue(a.Name),
			Value:        optionalValue(a.Value),
		})
	}
	for _, p := range set.Properties {
		out.Properties = append(out.Properties, outProperty{
			DataType:     p.Datatype,
			URI:          p.URI,
			Cardinality:  cardinality(p.Cardinality),
			Instructions: p.Instructions,
			PropertySet:  plainValue(p.PropertySet),
			BaseName:     plainValue(p.BaseName),
			Value:        optionalValue(p.Value),
		})
	}
	for _, m := range set.Materials {
		out.Materials = append(out.Materials, outMaterial{
			URI:          m.URI,
			Cardinality:  cardinality(m.Cardinality),
			Instructions: m.Instructions,
			Value:        optionalValue(m.Value),
		})
	}
	return out
}

func exportEntity(e model.EntityFacet, withInstructions bool) outEntity {
	out := outEntity{
		URI:  e.URI,
		Name: plainValue(e.IFCClass),
	}
	if e.PredefinedType != "" {
		out.PredefinedType = plainValueOpt(e.PredefinedType)
	}
	if withInstructions {
		out.Instructions = e.Instructions
	}
	return out
}

// cardinality renders the per-facet cardinality attribute. The default is
// written out explicitly so readers never depend on the schema default.
func cardinality(opt model.Optionality) string {
	if opt == "" || opt == model.OptionalityRequired {
		return "required"
	}
	return string(opt)
}

// plainValue wraps a plain string as a simpleValue element.
func plainValue(s string) outValue {
	return outValue{XMLValue: *restriction.Encode(restriction.Simple(s))}
}

// plainValueOpt is plainValue for optional elements; empty strings omit the
// element entirely.
func plainValueOpt(s string) *outValue {
	if s == "" {
		return nil
	}
	v := plainValue(s)
	return &v
}

// optionalValue encodes a restriction value, omitting the element for
// absent values per the IDS existence convention.
func optionalValue(v restriction.Value) *outValue {
	encoded := restriction.Encode(v)
	if encoded == nil {
		return nil
	}
	return &outValue{XMLValue: *encoded}
}
