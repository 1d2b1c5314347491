// Package validate holds the pre-export business rules. Export and the
// external model check both gate on Document and abort on any issue.
package validate

import (
	"fmt"
	"strings"

	"idsforge/internal/ids/model"
)

// Rule identifies a violated business rule.
type Rule string

const (
	RuleTitleMissing    Rule = "title_missing"
	RuleSpecNameMissing Rule = "spec_name_missing"
	RuleIFCVersion      Rule = "ifc_version_unsupported"
)

// Issue is one human-readable rule violation.
type Issue struct {
	Rule    Rule   `json:"rule"`
	Message string `json:"message"`
}

// Issues is the complete list of violations found in one pass.
type Issues []Issue

// Document checks minimal exportability: header title present, every
// specification named, every IFC version recognized. All violations are
// returned, never just the first, so the editor can show the complete list.
// Pure function; the model is not mutated.
func Document(root *model.IDSRoot) Issues {
	var issues Issues

	if strings.TrimSpace(root.Header.Title) == "" {
		issues = append(issues, Issue{
			Rule:    RuleTitleMissing,
			Message: "document title is required",
		})
	}

	for _, sec := range root.Sections {
		for _, spec := range sec.Specifications {
			if strings.TrimSpace(spec.DisplayName()) == "" {
				issues = append(issues, Issue{
					Rule:    RuleSpecNameMissing,
					Message: fmt.Sprintf("specification in section %q has no name", sec.Title),
				})
			}
			if !model.IsSupportedIFCVersion(spec.IFCVersion) {
				issues = append(issues, Issue{
					Rule:    RuleIFCVersion,
					Message: fmt.Sprintf("specification %q targets unsupported IFC version %q", spec.DisplayName(), spec.IFCVersion),
				})
			}
		}
	}
	return issues
}
