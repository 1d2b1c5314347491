package codec

import (
	"fmt"
	"regexp"
	"strconv"
)

// Sections are a UI grouping with no IDS schema equivalent. To survive
// round-trips the exporter prepends a marker line to each specification's
// instructions attribute; the importer strips it and regroups consecutive
// specifications sharing the same marker. Specifications without a marker
// land in one synthetic section. Empty sections vanish on export; that is
// the accepted lossy edge.
//
// Marker form: [section "Title"] "Description", description omitted when empty.
var sectionMarkerRe = regexp.MustCompile(`^\[section ("(?:[^"\\]|\\.)*")\](?: ("(?:[^"\\]|\\.)*"))?\n?`)

// markInstructions prepends the section marker to a specification's own
// instructions text. Title and description are quoted so embedded quotes and
// newlines survive.
func markInstructions(sectionTitle, sectionDescription, instructions string) string {
	marker := fmt.Sprintf("[section %s]", strconv.Quote(sectionTitle))
	if sectionDescription != "" {
		marker += " " + strconv.Quote(sectionDescription)
	}
	if instructions == "" {
		return marker
	}
	return marker + "\n" + instructions
}

// splitInstructions separates the section marker from the specification's
// own instructions. ok is false when no marker is present.
func splitInstructions(instructions string) (title, description, rest string, ok bool) {
	m := sectionMarkerRe.FindStringSubmatch(instructions)
	if m == nil {
		return "", "", instructions, false
	}
	title, err := strconv.Unquote(m[1])
	if err != nil {
		return "", "", instructions, false
	}
	if m[2] != "" {
		description, err = strconv.Unquote(m[2])
		if err != nil {
			return "", "", instructions, false
		}
	}
	rest = instructions[len(m[0]):]
	return title, description, rest, true
}
