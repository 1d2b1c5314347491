package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"idsforge/internal/audit"
	"idsforge/internal/checker"
	"idsforge/internal/ids/codec"
	"idsforge/internal/ids/metrics"
	"idsforge/internal/ids/model"
	"idsforge/internal/ids/store"
	"idsforge/internal/ids/validate"
	dErrors "idsforge/pkg/domain-errors"
	"idsforge/pkg/platform/sentinel"
	"idsforge/pkg/requestcontext"
)

type DocumentStore interface {
	Create(ctx context.Context, doc *store.Document) error
	Get(ctx context.Context, id string) (*store.Document, error)
	List(ctx context.Context) ([]*store.Document, error)
	Replace(ctx context.Context, id string, root *model.IDSRoot, now time.Time) (*store.Document, error)
	Delete(ctx context.Context, id string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

type ModelChecker interface {
	Check(ctx context.Context, idsXML []byte, modelFileName string, model io.Reader) (*checker.Report, error)
}

// Service orchestrates document lifecycle, the XML codec and remote checks.
type Service struct {
	documents      DocumentStore
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	checker        ModelChecker
	tracer         trace.Tracer
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithChecker(c ModelChecker) Option {
	return func(s *Service) {
		s.checker = c
	}
}

// New constructs a Service.
func New(documents DocumentStore, opts ...Option) *Service {
	s := &Service{
		documents: documents,
		tracer:    otel.Tracer("idsforge/ids"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new document with one section and one empty specification.
func (s *Service) Create(ctx context.Context, title string) (*store.Document, error) {
	ctx, span := s.tracer.Start(ctx, "ids.Create")
	defer span.End()

	root := model.NewRoot()
	if title = strings.TrimSpace(title); title != "" {
		root.Header.Title = title
	}

	now := requestcontext.Now(ctx)
	doc := &store.Document{
		ID:        model.NewID(),
		Root:      root,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create document")
	}

	s.logAudit(ctx, audit.ActionDocumentCreated, doc.ID, doc.Title())
	if s.metrics != nil {
		s.metrics.IncrementDocumentCreated()
	}
	return doc, nil
}

// Get returns a stored document by id.
func (s *Service) Get(ctx context.Context, id string) (*store.Document, error) {
	doc, err := s.documents.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "document not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load document")
	}
	return doc, nil
}

// List returns every stored document ordered by creation time.
func (s *Service) List(ctx context.Context) ([]*store.Document, error) {
	docs, err := s.documents.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list documents")
	}
	return docs, nil
}

// Replace swaps in a new model snapshot for an existing document. Callers
// edit a clone and hand the result back; partially filled documents are
// accepted, completeness is only enforced at export time.
func (s *Service) Replace(ctx context.Context, id string, root *model.IDSRoot) (*store.Document, error) {
	ctx, span := s.tracer.Start(ctx, "ids.Replace")
	defer span.End()

	if root == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "document body is required")
	}

	doc, err := s.documents.Replace(ctx, id, root.Clone(), requestcontext.Now(ctx))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "document not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to replace document")
	}

	s.logAudit(ctx, audit.ActionDocumentReplaced, id, doc.Title())
	return doc, nil
}

// Delete removes a document.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "ids.Delete")
	defer span.End()

	if err := s.documents.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "document not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete document")
	}

	s.logAudit(ctx, audit.ActionDocumentDeleted, id, "")
	return nil
}

// Import parses an IDS XML payload into a fresh document. Every imported
// element gets a new internal id; specifications without section markers are
// grouped under a synthetic section.
func (s *Service) Import(ctx context.Context, xmlData []byte) (*store.Document, error) {
	ctx, span := s.tracer.Start(ctx, "ids.Import")
	defer span.End()
	start := time.Now()

	root, err := codec.FromXML(xmlData)
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncrementImportFailure()
		}
		return nil, err
	}

	now := requestcontext.Now(ctx)
	doc := &store.Document{
		ID:        model.NewID(),
		Root:      root,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store imported document")
	}

	s.logAudit(ctx, audit.ActionDocumentImported, doc.ID, doc.Title())
	if s.metrics != nil {
		s.metrics.IncrementDocumentImported()
		s.metrics.ObserveImport(start)
	}
	return doc, nil
}

// Validate reports completeness problems that block export.
func (s *Service) Validate(ctx context.Context, id string) (validate.Issues, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return validate.Document(doc.Root), nil
}

// Export renders a document as schema-conformant IDS XML. Documents with
// validation issues are refused.
func (s *Service) Export(ctx context.Context, id string) ([]byte, error) {
	ctx, span := s.tracer.Start(ctx, "ids.Export")
	defer span.End()
	start := time.Now()

	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if issues := validate.Document(doc.Root); len(issues) > 0 {
		return nil, dErrors.New(dErrors.CodeValidation, issuesMessage(issues))
	}

	xmlData, err := codec.ToXML(doc.Root)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to render document")
	}

	s.logAudit(ctx, audit.ActionDocumentExported, id, doc.Title())
	if s.metrics != nil {
		s.metrics.IncrementDocumentExported()
		s.metrics.ObserveExport(start)
	}
	return xmlData, nil
}

// Check exports the document and submits it with a model file to the remote
// checker. Requires a configured checker and an exportable document.
func (s *Service) Check(ctx context.Context, id string, modelFileName string, modelFile io.Reader) (*checker.Report, error) {
	ctx, span := s.tracer.Start(ctx, "ids.Check")
	defer span.End()
	start := time.Now()

	if s.checker == nil {
		return nil, dErrors.New(dErrors.CodeUnavailable, "model checking is not configured")
	}

	xmlData, err := s.Export(ctx, id)
	if err != nil {
		return nil, err
	}

	report, err := s.checker.Check(ctx, xmlData, modelFileName, modelFile)
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.ActionDocumentChecked, id, modelFileName)
	if s.metrics != nil {
		s.metrics.ObserveCheck(start)
	}
	return report, nil
}

func issuesMessage(issues validate.Issues) string {
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, issue.Message)
	}
	return "document is not exportable: " + strings.Join(parts, "; ")
}

func (s *Service) logAudit(ctx context.Context, action, documentID, detail string) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, action,
			"event", action,
			"document_id", documentID,
			"request_id", requestcontext.RequestID(ctx),
			"log_type", "audit")
	}
	if s.auditPublisher == nil {
		return
	}
	_ = s.auditPublisher.Emit(ctx, audit.Event{
		Action:     action,
		DocumentID: documentID,
		Detail:     detail,
	})
}
