package bsdd

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

const (
	rankExact = iota
	rankPrefix
	rankSubstring
	rankOther
)

var fold = cases.Fold()

// rankClasses orders search results for the editor: exact name matches
// first, then prefix, then substring, with case folding. Ties go to the
// shorter name, then to IFC-prefixed names, then alphabetically.
func rankClasses(term string, classes []Class) []Class {
	folded := fold.String(strings.TrimSpace(term))

	rank := func(c Class) int {
		name := fold.String(c.Name)
		switch {
		case name == folded:
			return rankExact
		case strings.HasPrefix(name, folded):
			return rankPrefix
		case strings.Contains(name, folded):
			return rankSubstring
		default:
			return rankOther
		}
	}

	out := make([]Class, len(classes))
	copy(out, classes)
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := rank(out[i]), rank(out[j])
		if ri != rj {
			return ri < rj
		}
		if len(out[i].Name) != len(out[j].Name) {
			return len(out[i].Name) < len(out[j].Name)
		}
		pi := strings.HasPrefix(fold.String(out[i].Name), "ifc")
		pj := strings.HasPrefix(fold.String(out[j].Name), "ifc")
		if pi != pj {
			return pi
		}
		return out[i].Name < out[j].Name
	})
	return out
}
