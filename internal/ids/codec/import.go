package codec

import (
	"encoding/xml"
	"strings"

	"idsforge/internal/ids/model"
	"idsforge/internal/ids/restriction"
	dErrors "idsforge/pkg/domain-errors"
)

// syntheticSectionTitle groups imported specifications that carry no section
// marker in their instructions.
const syntheticSectionTitle = "Imported"

// FromXML parses IDS XML into a fresh document model. Malformed XML or
// a root outside the IDS namespace is a structural parse error; everything
// optional degrades instead of failing, so partial documents stay editable.
// The previous model, if any, is the caller's to discard only after success.
func FromXML(data []byte) (*model.IDSRoot, error) {
	var in inRoot
	if err := xml.Unmarshal(data, &in); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeParse, "not well-formed XML")
	}
	if in.XMLName.Local != "ids" {
		return nil, dErrors.Newf(dErrors.CodeParse, "unexpected root element %q", in.XMLName.Local)
	}
	if in.XMLName.Space != idsNamespace {
		return nil, dErrors.Newf(dErrors.CodeParse, "root element not in IDS namespace (got %q)", in.XMLName.Space)
	}

	root := &model.IDSRoot{Header: importHeader(in.Info)}

	// No <specifications> at all yields an empty document, not an error.
	if in.Specifications == nil {
		return root, nil
	}
	root.Sections = importSections(in.Specifications.Specifications)
	return root, nil
}

func importHeader(info *inInfo) model.Header {
	if info == nil {
		return model.Header{Title: model.DefaultTitle}
	}
	h := model.Header{
		Title:       model.DefaultTitle,
		Copyright:   info.Copyright,
		Version:     info.Version,
		Description: info.Description,
		Author:      info.Author,
		Date:        info.Date,
		Purpose:     info.Purpose,
		Milestone:   info.Milestone,
	}
	if info.Title != nil && strings.TrimSpace(*info.Title) != "" {
		h.Title = *info.Title
	}
	return h
}

// importSections regroups the flat specification list into sections using
// the exported marker convention. Consecutive specifications carrying the
// same marker share a section; unmarked ones collect under a synthetic one.
func importSections(specs []inSpecification) []model.Section {
	var sections []model.Section
	open := func(title, description string) *model.Section {
		if len(sections) > 0 {
			last := &sections[len(sections)-1]
			if last.Title == title && last.Description == description {
				return last
			}
		}
		sections = append(sections, model.Section{
			ID:          model.NewID(),
			Title:       title,
			Description: description,
		})
		return &sections[len(sections)-1]
	}

	for _, in := range specs {
		title, description, instructions, ok := splitInstructions(in.Instructions)
		if !ok {
			title, description = syntheticSectionTitle, ""
		}
		sec := open(title, description)
		sec.Specifications = append(sec.Specifications, importSpecification(in, instructions))
	}
	return sections
}

func importSpecification(in inSpecification, instructions string) model.Specification {
	spec := model.Specification{
		ID:           model.NewID(),
		Description:  in.Description,
		Identifier:   in.Identifier,
		Instructions: instructions,
		IFCVersion:   model.IFCVersion(in.IFCVersion),
		Optionality:  importOptionality(in.Applicability),
	}
	spec.SetName(in.Name)
	if in.Applicability != nil {
		spec.Applicability = importApplicabilityFacets(in.Applicability.inFacets)
	}
	if in.Requirements != nil {
		spec.Requirements = importRequirementFacets(*in.Requirements)
	}
	return spec
}

// importOptionality inverts the occurs mapping: maxOccurs=0 -> prohibited,
// minOccurs=1 -> required, minOccurs=0 -> optional. Unrecognized
// combinations (and a missing applicability wrapper) default to required.
func importOptionality(app *inApplicability) model.Optionality {
	if app == nil {
		return model.OptionalityRequired
	}
	switch {
	case app.MaxOccurs == "0":
		return model.OptionalityProhibited
	case app.MinOccurs == "1":
		return model.OptionalityRequired
	case app.MinOccurs == "0":
		return model.OptionalityOptional
	default:
		return model.OptionalityRequired
	}
}

func importApplicabilityFacets(in inFacets) model.FacetSet {
	var set model.FacetSet
	// Applicability holds at most one meaningful entity facet.
	if len(in.Entities) > 0 {
		set.Entities = []model.EntityFacet{importEntity(in.Entities[0])}
	}
	for _, p := range in.PartOfs {
		set.PartOfs = append(set.PartOfs, importPartOf(p))
	}
	for _, c := range in.Classifications {
		set.Classifications = append(set.Classifications, importClassification(c))
	}
	for _, a := range in.Attributes {
		set.Attributes = append(set.Attributes, importAttribute(a))
	}
	for _, p := range in.Properties {
		set.Properties = append(set.Properties, importProperty(p))
	}
	for _, m := range in.Materials {
		set.Materials = append(set.Materials, importMaterial(m))
	}
	return set
}

func importRequirementFacets(in inFacets) model.FacetSet {
	var set model.FacetSet
	for _, e := range in.Entities {
		set.Entities = append(set.Entities, importEntity(e))
	}
	for _, p := range in.PartOfs {
		set.PartOfs = append(set.PartOfs, importPartOf(p))
	}
	for _, c := range in.Classifications {
		set.Classifications = append(set.Classifications, importClassification(c))
	}
	for _, a := range in.Attributes {
		set.Attributes = append(set.Attributes, importAttribute(a))
	}
	for _, p := range in.Properties {
		set.Properties = append(set.Properties, importProperty(p))
	}
	for _, m := range in.Materials {
		set.Materials = append(set.Materials, importMaterial(m))
	}
	return set
}

func importEntity(in inEntity) model.EntityFacet {
	return model.EntityFacet{
		ID:             model.NewID(),
		IFCClass:       valueText(in.Name),
		PredefinedType: valueText(in.PredefinedType),
		URI:            in.URI,
		Instructions:   in.Instructions,
	}
}

func importPartOf(in inPartOf) model.PartOfFacet {
	out := model.PartOfFacet{
		ID:           model.NewID(),
		Relation:     in.Relation,
		Cardinality:  model.ParseOptionality(in.Cardinality),
		Instructions: in.Instructions,
	}
	if in.Entity != nil {
		out.Entity = importEntity(*in.Entity)
	} else {
		out.Entity = model.NewEntityFacet()
	}
	return out
}

func importClassification(in inClassification) model.ClassificationFacet {
	return model.ClassificationFacet{
		ID:           model.NewID(),
		System:       valueText(in.System),
		Value:        restriction.Decode(in.Value),
		URI:          in.URI,
		Cardinality:  model.ParseOptionality(in.Cardinality),
		Instructions: in.Instructions,
	}
}

func importAttribute(in inAttribute) model.AttributeFacet {
	return model.AttributeFacet{
		ID:           model.NewID(),
		Name:         valueText(in.Name),
		Value:        restriction.Decode(in.Value),
		Cardinality:  model.ParseOptionality(in.Cardinality),
		Instructions: in.Instructions,
	}
}

func importProperty(in inProperty) model.PropertyFacet {
	return model.PropertyFacet{
		ID:           model.NewID(),
		PropertySet:  valueText(in.PropertySet),
		BaseName:     valueText(in.BaseName),
		Datatype:     in.DataType,
		Value:        restriction.Decode(in.Value),
		URI:          in.URI,
		Cardinality:  model.ParseOptionality(in.Cardinality),
		Instructions: in.Instructions,
	}
}

func importMaterial(in inMaterial) model.MaterialFacet {
	return model.MaterialFacet{
		ID:           model.NewID(),
		Value:        restriction.Decode(in.Value),
		URI:          in.URI,
		Cardinality:  model.ParseOptionality(in.Cardinality),
		Instructions: in.Instructions,
	}
}

// valueText flattens a wire value into the plain string the model keeps for
// name-like fields. The XSD allows a restriction here; the flattened display
// form is the best-effort reading of one.
func valueText(in *inValue) string {
	return restriction.Decode(in).DisplayText()
}
