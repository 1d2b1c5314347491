package restriction

import (
	"regexp"
	"strconv"
	"strings"
)

// The IDS schema encodes a facet value as either a bare <simpleValue> or an
// <xs:restriction> carrying XML Schema facets. encoding/xml cannot reuse one
// struct set for both directions once namespace prefixes are involved
// (prefixed tags marshal correctly but do not match on unmarshal), so the
// wire form is split: XMLValue marshals with explicit ids:/xs: prefixes,
// ValueIn unmarshals by local name and therefore accepts any prefix the
// producing tool chose.

// XMLFacet is a single xs facet element carrying its value attribute.
type XMLFacet struct {
	Value string `xml:"value,attr"`
}

// XMLRestriction is the marshal form of <xs:restriction>.
type XMLRestriction struct {
	Base         string     `xml:"base,attr"`
	Enumerations []XMLFacet `xml:"xs:enumeration,omitempty"`
	Pattern      *XMLFacet  `xml:"xs:pattern,omitempty"`
	MinInclusive *XMLFacet  `xml:"xs:minInclusive,omitempty"`
	MaxInclusive *XMLFacet  `xml:"xs:maxInclusive,omitempty"`
	MinExclusive *XMLFacet  `xml:"xs:minExclusive,omitempty"`
	MaxExclusive *XMLFacet  `xml:"xs:maxExclusive,omitempty"`
	LengthFacet  *XMLFacet  `xml:"xs:length,omitempty"`
	MinLength    *XMLFacet  `xml:"xs:minLength,omitempty"`
	MaxLength    *XMLFacet  `xml:"xs:maxLength,omitempty"`
}

// XMLValue is the marshal form of a facet value element's content.
type XMLValue struct {
	SimpleValue *string         `xml:"ids:simpleValue,omitempty"`
	Restriction *XMLRestriction `xml:"xs:restriction,omitempty"`
}

// RestrictionIn is the unmarshal form of <xs:restriction>.
type RestrictionIn struct {
	Base         string     `xml:"base,attr"`
	Enumerations []XMLFacet `xml:"enumeration"`
	Patterns     []XMLFacet `xml:"pattern"`
	MinInclusive []XMLFacet `xml:"minInclusive"`
	MaxInclusive []XMLFacet `xml:"maxInclusive"`
	MinExclusive []XMLFacet `xml:"minExclusive"`
	MaxExclusive []XMLFacet `xml:"maxExclusive"`
	LengthFacets []XMLFacet `xml:"length"`
	MinLength    []XMLFacet `xml:"minLength"`
	MaxLength    []XMLFacet `xml:"maxLength"`
}

// ValueIn is the unmarshal form of a facet value element.
type ValueIn struct {
	SimpleValue  *string         `xml:"simpleValue"`
	Restrictions []RestrictionIn `xml:"restriction"`
	Chardata     string          `xml:",chardata"`
}

const (
	baseString = "xs:string"
	baseDouble = "xs:double"
)

// Encode produces the XML wire form of a value. Absent values encode to nil:
// the caller omits the value element entirely, which is the IDS convention
// for "facet present, no value constraint".
func Encode(v Value) *XMLValue {
	switch v.Kind {
	case KindSimple:
		text := v.Text
		return &XMLValue{SimpleValue: &text}
	case KindContains:
		return &XMLValue{Restriction: &XMLRestriction{
			Base:    baseString,
			Pattern: &XMLFacet{Value: ".*" + regexp.QuoteMeta(v.Text) + ".*"},
		}}
	case KindPattern:
		return &XMLValue{Restriction: &XMLRestriction{
			Base:    baseString,
			Pattern: &XMLFacet{Value: v.Text},
		}}
	case KindEnumeration:
		facets := make([]XMLFacet, 0, len(v.Items))
		for _, item := range v.Items {
			facets = append(facets, XMLFacet{Value: item})
		}
		return &XMLValue{Restriction: &XMLRestriction{
			Base:         baseString,
			Enumerations: facets,
		}}
	case KindBounds:
		r := &XMLRestriction{Base: baseDouble}
		if v.Range.Min != "" {
			if v.Range.MinExclusive {
				r.MinExclusive = &XMLFacet{Value: v.Range.Min}
			} else {
				r.MinInclusive = &XMLFacet{Value: v.Range.Min}
			}
		}
		if v.Range.Max != "" {
			if v.Range.MaxExclusive {
				r.MaxExclusive = &XMLFacet{Value: v.Range.Max}
			} else {
				r.MaxInclusive = &XMLFacet{Value: v.Range.Max}
			}
		}
		return &XMLValue{Restriction: r}
	case KindLength:
		r := &XMLRestriction{Base: baseString}
		if v.Len.Exact() {
			r.LengthFacet = &XMLFacet{Value: strconv.Itoa(v.Len.Min)}
		} else {
			r.MinLength = &XMLFacet{Value: strconv.Itoa(v.Len.Min)}
			r.MaxLength = &XMLFacet{Value: strconv.Itoa(v.Len.Max)}
		}
		return &XMLValue{Restriction: r}
	default:
		return nil
	}
}

// Decode reconstructs the discriminated value from parsed wire XML. It never
// fails: unrecognized or malformed restriction content degrades to Absent so
// imports always succeed and the author can repair the facet in the editor.
//
// Tie-break: when both enumeration entries and a pattern appear (malformed
// input), enumeration wins; a finite allowed-value set is the dominant
// real-world intent.
func Decode(in *ValueIn) Value {
	if in == nil {
		return Absent()
	}
	if in.SimpleValue != nil {
		return Simple(*in.SimpleValue)
	}

	// Facets may be spread over several restriction elements; merge them.
	var merged RestrictionIn
	for _, r := range in.Restrictions {
		merged.Enumerations = append(merged.Enumerations, r.Enumerations...)
		merged.Patterns = append(merged.Patterns, r.Patterns...)
		merged.MinInclusive = append(merged.MinInclusive, r.MinInclusive...)
		merged.MaxInclusive = append(merged.MaxInclusive, r.MaxInclusive...)
		merged.MinExclusive = append(merged.MinExclusive, r.MinExclusive...)
		merged.MaxExclusive = append(merged.MaxExclusive, r.MaxExclusive...)
		merged.LengthFacets = append(merged.LengthFacets, r.LengthFacets...)
		merged.MinLength = append(merged.MinLength, r.MinLength...)
		merged.MaxLength = append(merged.MaxLength, r.MaxLength...)
	}

	switch {
	case len(merged.Enumerations) > 0:
		items := make([]string, 0, len(merged.Enumerations))
		for _, f := range merged.Enumerations {
			items = append(items, f.Value)
		}
		return Enumeration(items...)
	case len(merged.Patterns) > 0:
		return decodePattern(merged.Patterns[0].Value)
	case len(merged.MinInclusive) > 0 || len(merged.MaxInclusive) > 0 ||
		len(merged.MinExclusive) > 0 || len(merged.MaxExclusive) > 0:
		var b Bounds
		if len(merged.MinExclusive) > 0 {
			b.Min = merged.MinExclusive[0].Value
			b.MinExclusive = true
		} else if len(merged.MinInclusive) > 0 {
			b.Min = merged.MinInclusive[0].Value
		}
		if len(merged.MaxExclusive) > 0 {
			b.Max = merged.MaxExclusive[0].Value
			b.MaxExclusive = true
		} else if len(merged.MaxInclusive) > 0 {
			b.Max = merged.MaxInclusive[0].Value
		}
		return NewBounds(b)
	case len(merged.LengthFacets) > 0:
		n, err := strconv.Atoi(strings.TrimSpace(merged.LengthFacets[0].Value))
		if err != nil || n < 0 {
			return Absent()
		}
		return ExactLength(n)
	case len(merged.MinLength) > 0 || len(merged.MaxLength) > 0:
		min, max := 0, MaxLengthDefault
		if len(merged.MinLength) > 0 {
			n, err := strconv.Atoi(strings.TrimSpace(merged.MinLength[0].Value))
			if err != nil || n < 0 {
				return Absent()
			}
			min = n
		}
		if len(merged.MaxLength) > 0 {
			n, err := strconv.Atoi(strings.TrimSpace(merged.MaxLength[0].Value))
			if err != nil || n < 0 {
				return Absent()
			}
			max = n
		}
		return LengthRange(min, max)
	}

	// The schema does not allow bare character data here, but some producers
	// emit it; treat non-empty text as a plain equality constraint.
	if text := strings.TrimSpace(in.Chardata); text != "" {
		return Simple(text)
	}
	return Absent()
}

// decodePattern distinguishes the contains encoding (".*" + quoted literal +
// ".*") from a genuine pattern so the two round-trip to their own kinds.
func decodePattern(expr string) Value {
	if strings.HasPrefix(expr, ".*") && strings.HasSuffix(expr, ".*") && len(expr) >= 4 {
		if lit, ok := unquoteMeta(expr[2 : len(expr)-2]); ok {
			return Contains(lit)
		}
	}
	return Pattern(expr)
}

// unquoteMeta inverts regexp.QuoteMeta. Returns false when the input contains
// an unescaped metacharacter, i.e. was not produced by QuoteMeta.
func unquoteMeta(quoted string) (string, bool) {
	var sb strings.Builder
	escaped := false
	for _, r := range quoted {
		if escaped {
			sb.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if strings.ContainsRune(`.+*?()|[]{}^$`, r) {
			return "", false
		}
		sb.WriteRune(r)
	}
	if escaped {
		return "", false
	}
	return sb.String(), true
}
