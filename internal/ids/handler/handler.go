// Package handler is the thin HTTP layer over the document service. It
// delegates to domain services without embedding business logic so transport
// concerns remain isolated.
package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Searcher

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"idsforge/internal/bsdd"
	"idsforge/internal/checker"
	"idsforge/internal/ids/catalog"
	"idsforge/internal/ids/model"
	"idsforge/internal/ids/store"
	"idsforge/internal/ids/validate"
	platformmetrics "idsforge/internal/platform/metrics"
	"idsforge/internal/platform/middleware"
	dErrors "idsforge/pkg/domain-errors"
)

// maxImportBytes bounds XML uploads; rule documents are small.
const maxImportBytes = 8 << 20

// maxCheckBytes bounds model file uploads for remote checks.
const maxCheckBytes = 512 << 20

// DocumentService defines the document operations the HTTP layer needs.
type DocumentService interface {
	Create(ctx context.Context, title string) (*store.Document, error)
	Get(ctx context.Context, id string) (*store.Document, error)
	List(ctx context.Context) ([]*store.Document, error)
	Replace(ctx context.Context, id string, root *model.IDSRoot) (*store.Document, error)
	Delete(ctx context.Context, id string) error
	Import(ctx context.Context, xmlData []byte) (*store.Document, error)
	Validate(ctx context.Context, id string) (validate.Issues, error)
	Export(ctx context.Context, id string) ([]byte, error)
	Check(ctx context.Context, id string, modelFileName string, modelFile io.Reader) (*checker.Report, error)
}

// Searcher defines the dictionary lookups the HTTP layer needs.
type Searcher interface {
	SearchClasses(ctx context.Context, term, dictionaryURI string, limit int) ([]bsdd.Class, error)
	ClassProperties(ctx context.Context, classURI, propertySet, filter string, offset, limit int) ([]bsdd.Property, error)
}

// Handler handles document, search and catalog endpoints.
type Handler struct {
	logger      *slog.Logger
	documents   DocumentService
	search      Searcher
	catalog     *catalog.Catalog
	validator   middleware.TokenValidator
	apiKeyHash  string
	httpMetrics *platformmetrics.Metrics
}

// New creates a new Handler. httpMetrics may be nil; latency recording is
// skipped then.
func New(
	documents DocumentService,
	search Searcher,
	cat *catalog.Catalog,
	validator middleware.TokenValidator,
	apiKeyHash string,
	httpMetrics *platformmetrics.Metrics,
	logger *slog.Logger) *Handler {
	return &Handler{
		logger:      logger,
		documents:   documents,
		search:      search,
		catalog:     cat,
		validator:   validator,
		apiKeyHash:  apiKeyHash,
		httpMetrics: httpMetrics,
	}
}

// Register registers all routes with the chi router. Reads are open;
// mutating routes require auth.
func (h *Handler) Register(r chi.Router) {
	requireAuth := middleware.RequireAuth(h.validator, h.apiKeyHash, h.logger)

	r.Route("/documents", func(r chi.Router) {
		r.Use(middleware.Timeout(2 * time.Minute))
		r.Use(middleware.ContentTypeJSON)
		if h.httpMetrics != nil {
			r.Use(middleware.Latency(h.httpMetrics))
		}
		r.Get("/", h.handleListDocuments)
		r.Get("/{id}", h.handleGetDocument)
		r.Get("/{id}/export", h.handleExportDocument)
		r.Get("/{id}/validation", h.handleValidateDocument)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", h.handleCreateDocument)
			r.Put("/{id}", h.handleReplaceDocument)
			r.Delete("/{id}", h.handleDeleteDocument)
			r.Post("/import", h.handleImportDocument)
			r.Post("/{id}/check", h.handleCheckDocument)
		})
	})

	r.Route("/search", func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)
		if h.httpMetrics != nil {
			r.Use(middleware.Latency(h.httpMetrics))
		}
		r.Get("/classes", h.handleSearchClasses)
		r.Get("/properties", h.handleSearchProperties)
	})

	r.Route("/catalog", func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		r.Get("/entities", h.handleCatalogEntities)
		r.Get("/relations", h.handleCatalogRelations)
	})
}

type documentSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type documentResponse struct {
	documentSummary
	Root *model.IDSRoot `json:"root"`
}

func summarize(doc *store.Document) documentSummary {
	return documentSummary{
		ID:        doc.ID,
		Title:     doc.Title(),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func toResponse(doc *store.Document) documentResponse {
	return documentResponse{documentSummary: summarize(doc), Root: doc.Root}
}

type createDocumentRequest struct {
	Title string `json:"title"`
}

func (h *Handler) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req createDocumentRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
			return
		}
	}

	doc, err := h.documents.Create(r.Context(), req.Title)
	if err != nil {
		h.logError(r, "create document failed", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toResponse(doc))
}

func (h *Handler) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.documents.List(r.Context())
	if err != nil {
		h.logError(r, "list documents failed", err)
		writeError(w, err)
		return
	}
	summaries := make([]documentSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, summarize(doc))
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (h *Handler) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.documents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(doc))
}

func (h *Handler) handleReplaceDocument(w http.ResponseWriter, r *http.Request) {
	var root model.IDSRoot
	if err := json.NewDecoder(r.Body).Decode(&root); err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "invalid document body"))
		return
	}

	doc, err := h.documents.Replace(r.Context(), chi.URLParam(r, "id"), &root)
	if err != nil {
		h.logError(r, "replace document failed", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(doc))
}

func (h *Handler) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.documents.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleImportDocument(w http.ResponseWriter, r *http.Request) {
	xmlData, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "failed to read request body"))
		return
	}
	if len(xmlData) == 0 {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "request body is empty"))
		return
	}

	doc, err := h.documents.Import(r.Context(), xmlData)
	if err != nil {
		h.logError(r, "import document failed", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toResponse(doc))
}

func (h *Handler) handleValidateDocument(w http.ResponseWriter, r *http.Request) {
	issues, err := h.documents.Validate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if issues == nil {
		issues = validate.Issues{}
	}
	writeJSON(w, http.StatusOK, issues)
}

func (h *Handler) handleExportDocument(w http.ResponseWriter, r *http.Request) {
	xmlData, err := h.documents.Export(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logError(r, "export document failed", err)
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", `attachment; filename="rules.ids"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(xmlData)
}

func (h *Handler) handleCheckDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCheckBytes)
	modelFile, header, err := r.FormFile("model")
	if err != nil {
		writeError(w, dErrors.New(dErrors.CodeBadRequest, "model file is required"))
		return
	}
	defer modelFile.Close()

	report, err := h.documents.Check(r.Context(), chi.URLParam(r, "id"), header.Filename, modelFile)
	if err != nil {
		h.logError(r, "check document failed", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) logError(r *http.Request, message string, err error) {
	h.logger.ErrorContext(r.Context(), message,
		"error", err,
		"request_id", middleware.GetRequestID(r.Context()),
	)
}
