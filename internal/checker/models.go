package checker

import "time"

// SpecificationResult is the outcome of one specification checked against a
// building model.
type SpecificationResult struct {
	Name            string   `json:"name"`
	Passed          bool     `json:"passed"`
	ApplicableCount int      `json:"applicable_count"`
	FailingEntities []string `json:"failing_entities,omitempty"`
}

// Report is the checker's verdict for a full rule document against one
// uploaded model file.
type Report struct {
	CheckedAt      time.Time             `json:"checked_at"`
	ModelFileName  string                `json:"model_file_name"`
	Passed         bool                  `json:"passed"`
	Specifications []SpecificationResult `json:"specifications"`
}
