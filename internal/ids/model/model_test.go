package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoot_Defaults(t *testing.T) {
	root := NewRoot()
	assert.Equal(t, DefaultTitle, root.Header.Title)
	require.Len(t, root.Sections, 1)
	require.Len(t, root.Sections[0].Specifications, 1)

	spec := root.Sections[0].Specifications[0]
	assert.Equal(t, IFC4, spec.IFCVersion, "new specifications default to a supported version")
	assert.Equal(t, OptionalityRequired, spec.Optionality)
	assert.NotEmpty(t, spec.ID)
	assert.Equal(t, spec.Name, spec.Title)
}

func TestNewID_UniqueWithinSession(t *testing.T) {
	seen := make(map[string]struct{})
	for range 1000 {
		id := NewID()
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}

func TestFacetConstructors_DefaultCardinality(t *testing.T) {
	assert.Equal(t, OptionalityRequired, NewClassificationFacet().Cardinality)
	assert.Equal(t, OptionalityRequired, NewAttributeFacet().Cardinality)
	assert.Equal(t, OptionalityRequired, NewPropertyFacet().Cardinality)
	assert.Equal(t, OptionalityRequired, NewMaterialFacet().Cardinality)
	assert.Equal(t, OptionalityRequired, NewPartOfFacet().Cardinality)
	assert.NotEmpty(t, NewPartOfFacet().Entity.ID, "partOf owns a nested entity facet")
}

func TestSetName_KeepsLegacyAliasInSync(t *testing.T) {
	spec := NewSpecification("Walls")
	assert.Equal(t, "Walls", spec.Name)
	assert.Equal(t, "Walls", spec.Title)

	spec.SetName("Doors")
	assert.Equal(t, "Doors", spec.Title)
}

func TestDisplayName_PrefersName(t *testing.T) {
	spec := Specification{Name: "Primary", Title: "Legacy"}
	assert.Equal(t, "Primary", spec.DisplayName())

	spec.Name = "  "
	assert.Equal(t, "Legacy", spec.DisplayName())
}

func TestParseOptionality(t *testing.T) {
	assert.Equal(t, OptionalityRequired, ParseOptionality(""))
	assert.Equal(t, OptionalityRequired, ParseOptionality("something-else"))
	assert.Equal(t, OptionalityOptional, ParseOptionality("OPTIONAL"))
	assert.Equal(t, OptionalityProhibited, ParseOptionality(" prohibited "))
}

func TestIsSupportedIFCVersion(t *testing.T) {
	assert.True(t, IsSupportedIFCVersion(IFC2X3))
	assert.True(t, IsSupportedIFCVersion(IFC4))
	assert.False(t, IsSupportedIFCVersion("IFC99"))
	assert.False(t, IsSupportedIFCVersion(""))
}

func TestClone_IsDeep(t *testing.T) {
	root := NewRoot()
	spec := &root.Sections[0].Specifications[0]
	entity := NewEntityFacet()
	entity.IFCClass = "IfcWall"
	spec.Applicability.Entities = []EntityFacet{entity}

	clone := root.Clone()
	clone.Sections[0].Specifications[0].Applicability.Entities[0].IFCClass = "IfcDoor"
	clone.Sections[0].Title = "changed"

	assert.Equal(t, "IfcWall", root.Sections[0].Specifications[0].Applicability.Entities[0].IFCClass)
	assert.NotEqual(t, "changed", root.Sections[0].Title)
}

func TestEditOps_CopyOnWrite(t *testing.T) {
	root := NewRoot()

	withSection := root.AddSection("Openings")
	assert.Len(t, root.Sections, 1, "original snapshot untouched")
	assert.Len(t, withSection.Sections, 2)

	withSpec, err := withSection.AddSpecification(withSection.Sections[1].ID)
	require.NoError(t, err)
	assert.Len(t, withSection.Sections[1].Specifications, 1)
	assert.Len(t, withSpec.Sections[1].Specifications, 2)

	_, err = withSection.AddSpecification("no-such-section")
	require.Error(t, err)
}

func TestRemoveByID_FiltersOut(t *testing.T) {
	root := NewRoot().AddSection("Second")
	removed := root.RemoveSection(root.Sections[0].ID)
	require.Len(t, removed.Sections, 1)
	assert.Equal(t, "Second", removed.Sections[0].Title)

	unchanged := root.RemoveSection("no-such-id")
	assert.Len(t, unchanged.Sections, 2)
}

func TestReplaceSpecification(t *testing.T) {
	root := NewRoot()
	sec := root.Sections[0]
	edited := sec.Specifications[0]
	edited.SetName("Renamed")
	edited.IFCVersion = IFC2X3

	next, err := root.ReplaceSpecification(sec.ID, edited)
	require.NoError(t, err)
	got := next.Sections[0].Specifications[0]
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, IFC2X3, got.IFCVersion)
	assert.NotEqual(t, "Renamed", root.Sections[0].Specifications[0].Name, "original untouched")

	edited.ID = "unknown"
	_, err = root.ReplaceSpecification(sec.ID, edited)
	require.Error(t, err)
}

func TestSpecifications_FlattensInDocumentOrder(t *testing.T) {
	root := NewRoot().AddSection("Second")
	flat := root.Specifications()
	assert.Len(t, flat, 2)
}
