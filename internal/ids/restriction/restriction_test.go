package restriction

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wireRoundTrip pushes the encoded wire form through encoding/xml and back
// into the unmarshal view, the same route a facet value travels through the
// document codec.
func wireRoundTrip(t *testing.T, v Value) Value {
	t.Helper()
	encoded := Encode(v)
	if encoded == nil {
		return Decode(nil)
	}
	wrapper := struct {
		XMLName xml.Name `xml:"value"`
		XMLValue
	}{XMLValue: *encoded}
	data, err := xml.Marshal(wrapper)
	require.NoError(t, err)

	var in ValueIn
	require.NoError(t, xml.Unmarshal(data, &in))
	return Decode(&in)
}

func TestCodecBijection(t *testing.T) {
	cases := []struct {
		name  string
		value Value
	}{
		{"absent", Absent()},
		{"simple", Simple("x")},
		{"contains", Contains("y")},
		{"contains with metachars", Contains("a.b*c")},
		{"pattern", Pattern("^a.*")},
		{"enumeration", Enumeration("a", "b", "c")},
		{"bounds inclusive-exclusive", NewBounds(Bounds{Min: "10", Max: "20", MaxExclusive: true})},
		{"bounds open min", NewBounds(Bounds{Max: "5", MinExclusive: false})},
		{"length exact", ExactLength(5)},
		{"length range", LengthRange(0, 255)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.value, wireRoundTrip(t, tc.value))
		})
	}
}

func TestDecode_EnumerationBeatsPattern(t *testing.T) {
	// Malformed input carrying both facets must resolve to the finite set.
	in := &ValueIn{Restrictions: []RestrictionIn{{
		Base:         "xs:string",
		Enumerations: []XMLFacet{{Value: "a"}, {Value: "b"}},
		Patterns:     []XMLFacet{{Value: "^a.*"}},
	}}}
	assert.Equal(t, Enumeration("a", "b"), Decode(in))
}

func TestDecode_EmptyElementIsAbsent(t *testing.T) {
	assert.Equal(t, Absent(), Decode(&ValueIn{}))
	assert.Equal(t, Absent(), Decode(nil))
}

func TestDecode_MalformedDegradesToAbsent(t *testing.T) {
	// Garbage length values never raise; the facet loses its value and the
	// author repairs it in the editor.
	in := &ValueIn{Restrictions: []RestrictionIn{{
		LengthFacets: []XMLFacet{{Value: "not-a-number"}},
	}}}
	assert.Equal(t, Absent(), Decode(in))
}

func TestDecode_BareTextReadsAsSimple(t *testing.T) {
	in := &ValueIn{Chardata: "  IfcWall  "}
	assert.Equal(t, Simple("IfcWall"), Decode(in))
}

func TestDecode_FacetsMergedAcrossRestrictions(t *testing.T) {
	in := &ValueIn{Restrictions: []RestrictionIn{
		{MinInclusive: []XMLFacet{{Value: "1"}}},
		{MaxExclusive: []XMLFacet{{Value: "9"}}},
	}}
	assert.Equal(t, NewBounds(Bounds{Min: "1", Max: "9", MaxExclusive: true}), Decode(in))
}

func TestParseBoundsText(t *testing.T) {
	cases := []struct {
		text string
		want Bounds
		ok   bool
	}{
		{"[10..20)", Bounds{Min: "10", Max: "20", MaxExclusive: true}, true},
		{"(..5]", Bounds{Max: "5", MinExclusive: true}, true},
		{"[0..100]", Bounds{Min: "0", Max: "100"}, true},
		{"(1..2)", Bounds{Min: "1", Max: "2", MinExclusive: true, MaxExclusive: true}, true},
		{"[..]", Bounds{}, true},
		{"10..20", Bounds{}, false},
		{"[10-20]", Bounds{}, false},
		{"", Bounds{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got, ok := ParseBoundsText(tc.text)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestBoundsText_RoundTrip(t *testing.T) {
	for _, b := range []Bounds{
		{Min: "10", Max: "20", MaxExclusive: true},
		{Max: "5", MinExclusive: true},
		{Min: "-3.5", Max: "3.5"},
	} {
		parsed, ok := ParseBoundsText(b.Text())
		require.True(t, ok, b.Text())
		assert.Equal(t, b, parsed)
	}
}

func TestParseLengthText(t *testing.T) {
	cases := []struct {
		text string
		want Length
		ok   bool
	}{
		{"5", Length{Min: 5, Max: 5}, true},
		{"2..10", Length{Min: 2, Max: 10}, true},
		{"..10", Length{Min: 0, Max: 10}, true},
		{"2..", Length{Min: 2, Max: MaxLengthDefault}, true},
		{"-1", Length{}, false},
		{"abc", Length{}, false},
		{"", Length{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			got, ok := ParseLengthText(tc.text)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestEnumerationTextForms(t *testing.T) {
	assert.Equal(t, "a, b, c", JoinEnumeration([]string{"a", "b", "c"}))
	assert.Equal(t, []string{"a", "b", "c"}, SplitEnumeration("a, b,  c"))
	assert.Equal(t, []string{"a", "a"}, SplitEnumeration("a, a"), "raw split keeps duplicates")
	assert.Nil(t, SplitEnumeration("   "))
}

func TestDisplayText(t *testing.T) {
	assert.Equal(t, "30", Simple("30").DisplayText())
	assert.Equal(t, "[10..20)", NewBounds(Bounds{Min: "10", Max: "20", MaxExclusive: true}).DisplayText())
	assert.Equal(t, "5", ExactLength(5).DisplayText())
	assert.Equal(t, "0..255", LengthRange(0, 255).DisplayText())
	assert.Equal(t, "", Absent().DisplayText())
}
