package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"idsforge/internal/ids/model"
	"idsforge/internal/ids/restriction"
)

func TestToXML_EndToEndScenario(t *testing.T) {
	root := model.NewRoot()
	sec := &root.Sections[0]
	spec := &sec.Specifications[0]

	entity := model.NewEntityFacet()
	entity.IFCClass = "IfcWall"
	spec.Applicability.Entities = []model.EntityFacet{entity}

	prop := model.NewPropertyFacet()
	prop.PropertySet = "Pset_WallCommon"
	prop.BaseName = "FireRating"
	prop.Datatype = "IFCLABEL"
	prop.Value = restriction.Simple("30")
	prop.Cardinality = model.OptionalityRequired
	spec.Requirements.Properties = []model.PropertyFacet{prop}

	xmlData, err := ToXML(root)
	require.NoError(t, err)

	xmlText := string(xmlData)
	assert.Contains(t, xmlText, `ifcVersion="IFC4"`)
	assert.Contains(t, xmlText, `xmlns:ids="http://standards.buildingsmart.org/IDS"`)
	assert.Contains(t, xmlText, "<ids:title>Untitled IDS</ids:title>")
	assert.Contains(t, xmlText, "<ids:simpleValue>IfcWall</ids:simpleValue>")
	assert.Contains(t, xmlText, "<ids:simpleValue>Pset_WallCommon</ids:simpleValue>")
	assert.Contains(t, xmlText, "<ids:simpleValue>30</ids:simpleValue>")
	assert.Contains(t, xmlText, `cardinality="required"`)

	imported, err := FromXML(xmlData)
	require.NoError(t, err)
	require.Len(t, imported.Sections, 1)
	require.Len(t, imported.Sections[0].Specifications, 1)

	got := imported.Sections[0].Specifications[0]
	require.Len(t, got.Applicability.Entities, 1)
	assert.Equal(t, "IfcWall", got.Applicability.Entities[0].IFCClass)

	require.Len(t, got.Requirements.Properties, 1)
	gotProp := got.Requirements.Properties[0]
	assert.Equal(t, "Pset_WallCommon", gotProp.PropertySet)
	assert.Equal(t, "FireRating", gotProp.BaseName)
	assert.Equal(t, "IFCLABEL", gotProp.Datatype)
	assert.Equal(t, restriction.Simple("30"), gotProp.Value)
	assert.Equal(t, model.OptionalityRequired, gotProp.Cardinality)
}

// buildFullDocument exercises every facet type and restriction kind the
// codec supports.
func buildFullDocument() *model.IDSRoot {
	root := model.NewRoot()
	root.Header = model.Header{
		Title:       "Office project exchange",
		Description: "Deliverables for design freeze",
		Author:      "author@example.com",
		Date:        "2026-03-01",
		Version:     "2.1",
		Copyright:   "Example Org",
		Purpose:     "design review",
		Milestone:   "LPH3",
	}

	sec := &root.Sections[0]
	sec.Title = "Walls"
	sec.Description = "Wall requirements"

	spec := &sec.Specifications[0]
	spec.SetName("Load-bearing walls")
	spec.Description = "All load-bearing walls"
	spec.Identifier = "SPEC-01"
	spec.Instructions = "Check the structural model"
	spec.IFCVersion = model.IFC4
	spec.Optionality = model.OptionalityRequired

	entity := model.NewEntityFacet()
	entity.IFCClass = "IfcWall"
	entity.PredefinedType = "SOLIDWALL"
	spec.Applicability.Entities = []model.EntityFacet{entity}

	partOf := model.NewPartOfFacet()
	partOf.Relation = "IFCRELAGGREGATES"
	partOf.Entity.IFCClass = "IfcBuildingStorey"
	spec.Applicability.PartOfs = []model.PartOfFacet{partOf}

	classification := model.NewClassificationFacet()
	classification.System = "Uniclass"
	classification.Value = restriction.Pattern("^EF_25.*")
	classification.URI = "https://identifier.buildingsmart.org/uri/uniclass"
	classification.Instructions = "Use the 2015 tables"
	spec.Requirements.Classifications = []model.ClassificationFacet{classification}

	attr := model.NewAttributeFacet()
	attr.Name = "Name"
	attr.Value = restriction.Contains("Wall")
	attr.Cardinality = model.OptionalityOptional
	spec.Requirements.Attributes = []model.AttributeFacet{attr}

	prop := model.NewPropertyFacet()
	prop.PropertySet = "Pset_WallCommon"
	prop.BaseName = "FireRating"
	prop.Datatype = "IFCLABEL"
	prop.Value = restriction.Enumeration("30", "60", "90")
	prop.Cardinality = model.OptionalityRequired
	spec.Requirements.Properties = []model.PropertyFacet{prop}

	thickness := model.NewPropertyFacet()
	thickness.PropertySet = "Qto_WallBaseQuantities"
	thickness.BaseName = "Width"
	thickness.Datatype = "IFCLENGTHMEASURE"
	thickness.Value = restriction.NewBounds(restriction.Bounds{Min: "0.1", Max: "0.5", MaxExclusive: true})
	spec.Requirements.Properties = append(spec.Requirements.Properties, thickness)

	material := model.NewMaterialFacet()
	material.Value = restriction.Simple("concrete")
	material.Cardinality = model.OptionalityProhibited
	spec.Requirements.Materials = []model.MaterialFacet{material}

	second := model.NewSpecification("Door naming")
	second.IFCVersion = model.IFC2X3
	second.Optionality = model.OptionalityOptional
	doorEntity := model.NewEntityFacet()
	doorEntity.IFCClass = "IfcDoor"
	second.Applicability.Entities = []model.EntityFacet{doorEntity}
	nameAttr := model.NewAttributeFacet()
	nameAttr.Name = "Name"
	nameAttr.Value = restriction.ExactLength(12)
	second.Requirements.Attributes = []model.AttributeFacet{nameAttr}
	sec.Specifications = append(sec.Specifications, second)

	other := model.NewSection("Openings")
	other.Description = "Doors and windows"
	openingSpec := &other.Specifications[0]
	openingSpec.SetName("Window tagging")
	windowEntity := model.NewEntityFacet()
	windowEntity.IFCClass = "IfcWindow"
	openingSpec.Applicability.Entities = []model.EntityFacet{windowEntity}
	tagAttr := model.NewAttributeFacet()
	tagAttr.Name = "Tag"
	tagAttr.Value = restriction.LengthRange(2, 16)
	openingSpec.Requirements.Attributes = []model.AttributeFacet{tagAttr}
	root.Sections = append(root.Sections, other)

	return root
}

// stripIDs zeroes every generated id so round-trip comparison covers the
// codec-supported fields only; ids are regenerated on import by design.
func stripIDs(root *model.IDSRoot) *model.IDSRoot {
	out := root.Clone()
	for si := range out.Sections {
		sec := &out.Sections[si]
		sec.ID = ""
		for pi := range sec.Specifications {
			spec := &sec.Specifications[pi]
			spec.ID = ""
			for _, set := range []*model.FacetSet{&spec.Applicability, &spec.Requirements} {
				for i := range set.Entities {
					set.Entities[i].ID = ""
				}
				for i := range set.PartOfs {
					set.PartOfs[i].ID = ""
					set.PartOfs[i].Entity.ID = ""
				}
				for i := range set.Classifications {
					set.Classifications[i].ID = ""
				}
				for i := range set.Attributes {
					set.Attributes[i].ID = ""
				}
				for i := range set.Properties {
					set.Properties[i].ID = ""
				}
				for i := range set.Materials {
					set.Materials[i].ID = ""
				}
			}
		}
	}
	return out
}

func TestRoundTripIdentity(t *testing.T) {
	original := buildFullDocument()

	xmlText, err := ToXML(original)
	require.NoError(t, err)

	imported, err := FromXML(xmlText)
	require.NoError(t, err)

	assert.Equal(t, stripIDs(original), stripIDs(imported))
}

func TestRoundTripIdentity_ConstructorDefaults(t *testing.T) {
	// Facets fresh from their constructors, values left absent. The imported
	// form must equal the constructed form under plain struct equality.
	root := model.NewRoot()
	spec := &root.Sections[0].Specifications[0]

	entity := model.NewEntityFacet()
	entity.IFCClass = "IfcSlab"
	spec.Applicability.Entities = []model.EntityFacet{entity}

	attr := model.NewAttributeFacet()
	attr.Name = "Name"
	spec.Requirements.Attributes = []model.AttributeFacet{attr}

	material := model.NewMaterialFacet()
	spec.Requirements.Materials = []model.MaterialFacet{material}

	prop := model.NewPropertyFacet()
	prop.PropertySet = "Pset_SlabCommon"
	prop.BaseName = "IsExternal"
	spec.Requirements.Properties = []model.PropertyFacet{prop}

	xmlData, err := ToXML(root)
	require.NoError(t, err)
	imported, err := FromXML(xmlData)
	require.NoError(t, err)

	assert.Equal(t, stripIDs(root), stripIDs(imported))
}

func TestRoundTrip_SelfParseable(t *testing.T) {
	// Output must be parseable by the same import engine twice over.
	first, err := ToXML(buildFullDocument())
	require.NoError(t, err)
	imported, err := FromXML(first)
	require.NoError(t, err)
	second, err := ToXML(imported)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOptionalityCardinalityMapping(t *testing.T) {
	cases := []struct {
		opt       model.Optionality
		minOccurs string
		maxOccurs string
	}{
		{model.OptionalityRequired, `minOccurs="1"`, `maxOccurs="unbounded"`},
		{model.OptionalityOptional, `minOccurs="0"`, `maxOccurs="unbounded"`},
		{model.OptionalityProhibited, `minOccurs="0"`, `maxOccurs="0"`},
	}
	for _, tc := range cases {
		t.Run(string(tc.opt), func(t *testing.T) {
			root := model.NewRoot()
			root.Sections[0].Specifications[0].Optionality = tc.opt

			xmlData, err := ToXML(root)
			require.NoError(t, err)
			assert.Contains(t, string(xmlData), tc.minOccurs)
			assert.Contains(t, string(xmlData), tc.maxOccurs)

			imported, err := FromXML(xmlData)
			require.NoError(t, err)
			assert.Equal(t, tc.opt, imported.Sections[0].Specifications[0].Optionality)
		})
	}
}

func TestFromXML_StructuralErrors(t *testing.T) {
	t.Run("not well-formed", func(t *testing.T) {
		_, err := FromXML([]byte("<ids:ids><unclosed>"))
		require.Error(t, err)
	})
	t.Run("wrong root element", func(t *testing.T) {
		_, err := FromXML([]byte(`<other xmlns="http://standards.buildingsmart.org/IDS"/>`))
		require.Error(t, err)
	})
	t.Run("missing namespace", func(t *testing.T) {
		_, err := FromXML([]byte(`<ids><info><title>x</title></info></ids>`))
		require.Error(t, err)
	})
}

func TestFromXML_LenientOnMissingOptionals(t *testing.T) {
	t.Run("missing specifications yields empty document", func(t *testing.T) {
		root, err := FromXML([]byte(`<ids xmlns="http://standards.buildingsmart.org/IDS"><info><title>T</title></info></ids>`))
		require.NoError(t, err)
		assert.Equal(t, "T", root.Header.Title)
		assert.Empty(t, root.Sections)
	})
	t.Run("missing title defaults", func(t *testing.T) {
		root, err := FromXML([]byte(`<ids xmlns="http://standards.buildingsmart.org/IDS"><info/></ids>`))
		require.NoError(t, err)
		assert.Equal(t, model.DefaultTitle, root.Header.Title)
	})
	t.Run("missing info defaults", func(t *testing.T) {
		root, err := FromXML([]byte(`<ids xmlns="http://standards.buildingsmart.org/IDS"/>`))
		require.NoError(t, err)
		assert.Equal(t, model.DefaultTitle, root.Header.Title)
	})
}

func TestFromXML_ForeignPrefixedInput(t *testing.T) {
	// A conforming document produced by other tooling, using default
	// namespace instead of a prefix and omitting optional attributes.
	text := `<?xml version="1.0"?>
<ids xmlns="http://standards.buildingsmart.org/IDS" xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <info><title>Foreign</title></info>
  <specifications>
    <specification name="Walls" ifcVersion="IFC4">
      <applicability minOccurs="1" maxOccurs="unbounded">
        <entity><name><simpleValue>IfcWall</simpleValue></name></entity>
      </applicability>
      <requirements>
        <property dataType="IFCLABEL">
          <propertySet><simpleValue>Pset_WallCommon</simpleValue></propertySet>
          <baseName><simpleValue>FireRating</simpleValue></baseName>
          <value>
            <xs:restriction base="xs:string">
              <xs:enumeration value="30"/>
              <xs:enumeration value="60"/>
            </xs:restriction>
          </value>
        </property>
      </requirements>
    </specification>
  </specifications>
</ids>`
	root, err := FromXML([]byte(text))
	require.NoError(t, err)
	require.Len(t, root.Sections, 1)
	assert.Equal(t, syntheticSectionTitle, root.Sections[0].Title)

	spec := root.Sections[0].Specifications[0]
	assert.Equal(t, "Walls", spec.Name)
	assert.Equal(t, "Walls", spec.Title, "legacy alias stays in sync")
	assert.Equal(t, model.OptionalityRequired, spec.Optionality)

	prop := spec.Requirements.Properties[0]
	assert.Equal(t, restriction.Enumeration("30", "60"), prop.Value)
	assert.Equal(t, model.OptionalityRequired, prop.Cardinality, "missing cardinality defaults to required")
}

func TestSectionMarkerRoundTrip(t *testing.T) {
	root := model.NewRoot()
	root.Sections[0].Title = `Walls "east wing"`
	root.Sections[0].Description = "Structure"
	root.Sections[0].Specifications[0].Instructions = "Own instructions\nwith a second line"

	xmlText, err := ToXML(root)
	require.NoError(t, err)

	imported, err := FromXML(xmlText)
	require.NoError(t, err)
	require.Len(t, imported.Sections, 1)
	assert.Equal(t, `Walls "east wing"`, imported.Sections[0].Title)
	assert.Equal(t, "Structure", imported.Sections[0].Description)
	assert.Equal(t, "Own instructions\nwith a second line", imported.Sections[0].Specifications[0].Instructions)
}

func TestSectionMarkerRoundTrip_MultilineDescription(t *testing.T) {
	root := model.NewRoot()
	root.Sections[0].Title = "Walls"
	root.Sections[0].Description = "First line\nsecond line"
	root.Sections[0].Specifications[0].Instructions = "Spec-level notes"

	xmlData, err := ToXML(root)
	require.NoError(t, err)

	imported, err := FromXML(xmlData)
	require.NoError(t, err)
	require.Len(t, imported.Sections, 1)
	assert.Equal(t, "First line\nsecond line", imported.Sections[0].Description)
	assert.Equal(t, "Spec-level notes", imported.Sections[0].Specifications[0].Instructions,
		"description tail must not leak into instructions")
}

func TestSectionGrouping_ConsecutiveSpecs(t *testing.T) {
	root := model.NewRoot()
	root.Sections[0].Title = "Walls"
	root.Sections[0].Specifications = append(root.Sections[0].Specifications,
		model.NewSpecification("Second"))
	root.Sections = append(root.Sections, model.NewSection("Openings"))

	xmlText, err := ToXML(root)
	require.NoError(t, err)
	imported, err := FromXML(xmlText)
	require.NoError(t, err)

	require.Len(t, imported.Sections, 2)
	assert.Equal(t, "Walls", imported.Sections[0].Title)
	assert.Len(t, imported.Sections[0].Specifications, 2)
	assert.Equal(t, "Openings", imported.Sections[1].Title)
	assert.Len(t, imported.Sections[1].Specifications, 1)
}

func TestToXML_OmitsEmptyHeaderFields(t *testing.T) {
	root := model.NewRoot()
	xmlData, err := ToXML(root)
	require.NoError(t, err)
	assert.NotContains(t, string(xmlData), "<ids:author")
	assert.NotContains(t, string(xmlData), "<ids:copyright")
	assert.NotContains(t, string(xmlData), "<ids:milestone")
}

func TestToXML_DoesNotMutateModel(t *testing.T) {
	root := buildFullDocument()
	before := root.Clone()
	_, err := ToXML(root)
	require.NoError(t, err)
	assert.Equal(t, before, root.Clone())
}

func TestImport_FreshIDsAssigned(t *testing.T) {
	xmlText, err := ToXML(buildFullDocument())
	require.NoError(t, err)
	a, err := FromXML(xmlText)
	require.NoError(t, err)
	b, err := FromXML(xmlText)
	require.NoError(t, err)
	assert.NotEqual(t, a.Sections[0].ID, b.Sections[0].ID)
	assert.False(t, strings.TrimSpace(a.Sections[0].ID) == "")
}
