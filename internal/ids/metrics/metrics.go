package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the document module.
// Tracks document lifecycle counts and codec path durations.
type Metrics struct {
	DocumentsCreated  prometheus.Counter
	DocumentsImported prometheus.Counter
	DocumentsExported prometheus.Counter
	ImportFailures    prometheus.Counter
	ExportDuration    prometheus.Histogram
	ImportDuration    prometheus.Histogram
	CheckDuration     prometheus.Histogram
}

// New creates a new Metrics instance with all document module metrics registered.
func New() *Metrics {
	return &Metrics{
		DocumentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "idsforge_documents_created_total",
			Help: "Total number of documents created",
		}),
		DocumentsImported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "idsforge_documents_imported_total",
			Help: "Total number of documents imported from XML",
		}),
		DocumentsExported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "idsforge_documents_exported_total",
			Help: "Total number of documents exported to XML",
		}),
		ImportFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "idsforge_import_failures_total",
			Help: "Total number of XML imports rejected as unparseable",
		}),
		ExportDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "idsforge_export_duration_seconds",
			Help:    "Duration of document export operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ImportDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "idsforge_import_duration_seconds",
			Help:    "Duration of document import operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		CheckDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "idsforge_check_duration_seconds",
			Help:    "Duration of remote model check operations",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// IncrementDocumentCreated records a successful document creation.
func (m *Metrics) IncrementDocumentCreated() {
	m.DocumentsCreated.Inc()
}

// IncrementDocumentImported records a successful XML import.
func (m *Metrics) IncrementDocumentImported() {
	m.DocumentsImported.Inc()
}

// IncrementDocumentExported records a successful XML export.
func (m *Metrics) IncrementDocumentExported() {
	m.DocumentsExported.Inc()
}

// IncrementImportFailure records an XML import rejected by the parser.
func (m *Metrics) IncrementImportFailure() {
	m.ImportFailures.Inc()
}

// ObserveExport records the duration of an export operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveExport(start time.Time) {
	m.ExportDuration.Observe(time.Since(start).Seconds())
}

// ObserveImport records the duration of an import operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveImport(start time.Time) {
	m.ImportDuration.Observe(time.Since(start).Seconds())
}

// ObserveCheck records the duration of a remote model check.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveCheck(start time.Time) {
	m.CheckDuration.Observe(time.Since(start).Seconds())
}
