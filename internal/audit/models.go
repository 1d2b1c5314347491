package audit

import "time"

// Well-known audit actions emitted by the document module.
const (
	ActionDocumentCreated  = "document.created"
	ActionDocumentReplaced = "document.replaced"
	ActionDocumentDeleted  = "document.deleted"
	ActionDocumentImported = "document.imported"
	ActionDocumentExported = "document.exported"
	ActionDocumentChecked  = "document.checked"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp  time.Time `json:"timestamp"`
	Actor      string    `json:"actor,omitempty"`
	Action     string    `json:"action"`
	DocumentID string    `json:"document_id,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
}
