// Package restriction implements the value-constraint sub-language shared by
// all facets: a discriminated value (absent, simple equality, contains,
// pattern, enumeration, numeric bounds, length bounds) and its encoding to
// and from the xs:restriction facet XML used by the IDS schema.
package restriction

import (
	"strconv"
	"strings"
)

// Kind discriminates a Value.
type Kind string

const (
	KindAbsent      Kind = "absent"
	KindSimple      Kind = "simple"
	KindContains    Kind = "contains"
	KindPattern     Kind = "pattern"
	KindEnumeration Kind = "enumeration"
	KindBounds      Kind = "bounds"
	KindLength      Kind = "length"
)

// MaxLengthDefault is the upper bound assumed when a length range omits its
// maximum in the editor text form.
const MaxLengthDefault = 255

// Bounds holds an inclusive/exclusive numeric range. Empty Min or Max means
// unbounded on that side. Values are kept as text so exported XML reproduces
// the author's input exactly.
type Bounds struct {
	Min          string
	Max          string
	MinExclusive bool
	MaxExclusive bool
}

// Length holds a string-length range. An exact length is Min == Max.
type Length struct {
	Min int
	Max int
}

// Exact reports whether the length constraint is a single exact length.
func (l Length) Exact() bool { return l.Min == l.Max }

// Value is the discriminated restriction value owned by a facet.
// The zero value is Absent ("facet present, no value constraint").
type Value struct {
	Kind  Kind
	Text  string   // Simple, Contains, Pattern
	Items []string // Enumeration
	Range Bounds   // Bounds
	Len   Length   // Length
}

// Absent returns the no-constraint value.
func Absent() Value { return Value{Kind: KindAbsent} }

// Simple returns an equals-this-text constraint.
func Simple(text string) Value { return Value{Kind: KindSimple, Text: text} }

// Contains returns a substring constraint.
func Contains(text string) Value { return Value{Kind: KindContains, Text: text} }

// Pattern returns a regular-expression constraint.
func Pattern(expr string) Value { return Value{Kind: KindPattern, Text: expr} }

// Enumeration returns an allowed-values constraint preserving order.
func Enumeration(items ...string) Value {
	return Value{Kind: KindEnumeration, Items: items}
}

// NewBounds returns a numeric range constraint.
func NewBounds(b Bounds) Value { return Value{Kind: KindBounds, Range: b} }

// ExactLength returns an exact string-length constraint.
func ExactLength(n int) Value {
	return Value{Kind: KindLength, Len: Length{Min: n, Max: n}}
}

// LengthRange returns a string-length range constraint.
func LengthRange(min, max int) Value {
	return Value{Kind: KindLength, Len: Length{Min: min, Max: max}}
}

// IsAbsent reports whether the value constrains nothing. The zero Value is
// absent too, so facets can embed Value directly.
func (v Value) IsAbsent() bool {
	return v.Kind == KindAbsent || v.Kind == ""
}

// DisplayText flattens the value to the single-line text form used by the
// facet editor buffer. The inverse for bounds and length is ParseBoundsText
// and ParseLengthText.
func (v Value) DisplayText() string {
	switch v.Kind {
	case KindSimple, KindContains, KindPattern:
		return v.Text
	case KindEnumeration:
		return JoinEnumeration(v.Items)
	case KindBounds:
		return v.Range.Text()
	case KindLength:
		return v.Len.Text()
	default:
		return ""
	}
}

// Text renders the bounds in the bracketed editor form, e.g. "[10..20)".
// An omitted bound renders as empty between bracket and separator.
func (b Bounds) Text() string {
	var sb strings.Builder
	if b.MinExclusive {
		sb.WriteByte('(')
	} else {
		sb.WriteByte('[')
	}
	sb.WriteString(b.Min)
	sb.WriteString("..")
	sb.WriteString(b.Max)
	if b.MaxExclusive {
		sb.WriteByte(')')
	} else {
		sb.WriteByte(']')
	}
	return sb.String()
}

// ParseBoundsText parses the bracketed editor range form back into Bounds:
// '[' inclusive / '(' exclusive minimum, "..", ']' inclusive / ')' exclusive
// maximum, e.g. "[10..20)" or "(..5]". Returns false when the text does not
// follow the grammar.
func ParseBoundsText(text string) (Bounds, bool) {
	text = strings.TrimSpace(text)
	if len(text) < 4 {
		return Bounds{}, false
	}
	var b Bounds
	switch text[0] {
	case '[':
	case '(':
		b.MinExclusive = true
	default:
		return Bounds{}, false
	}
	switch text[len(text)-1] {
	case ']':
	case ')':
		b.MaxExclusive = true
	default:
		return Bounds{}, false
	}
	inner := text[1 : len(text)-1]
	min, max, ok := strings.Cut(inner, "..")
	if !ok {
		return Bounds{}, false
	}
	b.Min = strings.TrimSpace(min)
	b.Max = strings.TrimSpace(max)
	return b, true
}

// Text renders the length constraint in the editor form: a bare integer for
// an exact length, "min..max" otherwise.
func (l Length) Text() string {
	if l.Exact() {
		return strconv.Itoa(l.Min)
	}
	return strconv.Itoa(l.Min) + ".." + strconv.Itoa(l.Max)
}

// ParseLengthText parses the editor length form: "5" means exactly five,
// "2..10" a range. An omitted minimum defaults to 0, an omitted maximum to
// MaxLengthDefault. Returns false for negative or non-numeric input.
func ParseLengthText(text string) (Length, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Length{}, false
	}
	if min, max, ok := strings.Cut(text, ".."); ok {
		l := Length{Min: 0, Max: MaxLengthDefault}
		min = strings.TrimSpace(min)
		max = strings.TrimSpace(max)
		if min != "" {
			n, err := strconv.Atoi(min)
			if err != nil || n < 0 {
				return Length{}, false
			}
			l.Min = n
		}
		if max != "" {
			n, err := strconv.Atoi(max)
			if err != nil || n < 0 {
				return Length{}, false
			}
			l.Max = n
		}
		return l, true
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return Length{}, false
	}
	return Length{Min: n, Max: n}, true
}

// JoinEnumeration flattens enumeration items to the single-line display form.
func JoinEnumeration(items []string) string {
	return strings.Join(items, ", ")
}

// SplitEnumeration splits the single-line display form back into items,
// trimming surrounding whitespace. Duplicates are preserved; the editor
// de-duplicates on insert, not here.
func SplitEnumeration(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	parts := strings.Split(text, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		items = append(items, strings.TrimSpace(p))
	}
	return items
}
