package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"idsforge/internal/audit"
	"idsforge/internal/checker"
	"idsforge/internal/ids/codec"
	"idsforge/internal/ids/service/mocks"
	"idsforge/internal/ids/store"
	dErrors "idsforge/pkg/domain-errors"
	"idsforge/pkg/requestcontext"
)

func newService(opts ...Option) (*Service, *store.InMemoryStore, *audit.MemorySink) {
	documents := store.NewInMemoryStore()
	sink := audit.NewMemorySink()
	opts = append(opts, WithAuditPublisher(audit.NewPublisher(sink)))
	return New(documents, opts...), documents, sink
}

func TestCreate_DefaultsAndAudit(t *testing.T) {
	svc, _, sink := newService()

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	doc, err := svc.Create(ctx, "  Fire safety  ")
	require.NoError(t, err)
	assert.Equal(t, "Fire safety", doc.Title())
	assert.Equal(t, now, doc.CreatedAt)
	require.Len(t, doc.Root.Sections, 1)
	require.Len(t, doc.Root.Sections[0].Specifications, 1)

	events := sink.All()
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionDocumentCreated, events[0].Action)
	assert.Equal(t, doc.ID, events[0].DocumentID)
}

func TestCreate_EmptyTitleUsesDefault(t *testing.T) {
	svc, _, _ := newService()

	doc, err := svc.Create(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, "Untitled IDS", doc.Title())
}

func TestGet_NotFound(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestReplace_StoresCloneOfBody(t *testing.T) {
	svc, _, sink := newService()

	doc, err := svc.Create(context.Background(), "original")
	require.NoError(t, err)

	edited := doc.Root.Clone()
	edited.Header.Title = "edited"

	replaced, err := svc.Replace(context.Background(), doc.ID, edited)
	require.NoError(t, err)
	assert.Equal(t, "edited", replaced.Title())

	// Later mutations of the caller's copy must not leak into the store.
	edited.Header.Title = "scribbled on"
	found, err := svc.Get(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", found.Title())

	events := sink.All()
	require.Len(t, events, 2)
	assert.Equal(t, audit.ActionDocumentReplaced, events[1].Action)
}

func TestReplace_NilBodyRejected(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Replace(context.Background(), "any", nil)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestReplace_NotFound(t *testing.T) {
	svc, _, _ := newService()

	doc, err := svc.Create(context.Background(), "x")
	require.NoError(t, err)

	_, err = svc.Replace(context.Background(), "missing", doc.Root.Clone())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestDelete(t *testing.T) {
	svc, _, _ := newService()

	doc, err := svc.Create(context.Background(), "doomed")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), doc.ID))

	_, err = svc.Get(context.Background(), doc.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	err = svc.Delete(context.Background(), doc.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestList_OrderedByCreation(t *testing.T) {
	svc, _, _ := newService()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	_, err := svc.Create(requestcontext.WithTime(context.Background(), base), "first")
	require.NoError(t, err)
	_, err = svc.Create(requestcontext.WithTime(context.Background(), base.Add(time.Minute)), "second")
	require.NoError(t, err)

	docs, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "first", docs[0].Title())
	assert.Equal(t, "second", docs[1].Title())
}

func TestExportImport_RoundTripThroughService(t *testing.T) {
	svc, _, _ := newService()

	doc, err := svc.Create(context.Background(), "Round trip")
	require.NoError(t, err)

	xmlData, err := svc.Export(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Contains(t, string(xmlData), "Round trip")

	imported, err := svc.Import(context.Background(), xmlData)
	require.NoError(t, err)
	assert.NotEqual(t, doc.ID, imported.ID)
	assert.Equal(t, "Round trip", imported.Title())
}

func TestExport_RefusesInvalidDocument(t *testing.T) {
	svc, _, _ := newService()

	doc, err := svc.Create(context.Background(), "valid title")
	require.NoError(t, err)

	edited := doc.Root.Clone()
	edited.Sections[0].Specifications[0].SetName("")
	_, err = svc.Replace(context.Background(), doc.ID, edited)
	require.NoError(t, err)

	_, err = svc.Export(context.Background(), doc.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Contains(t, err.Error(), "has no name")
}

func TestImport_RejectsGarbage(t *testing.T) {
	svc, _, _ := newService()

	_, err := svc.Import(context.Background(), []byte("this is not xml"))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeParse))
}

func TestValidate_ReportsAllIssues(t *testing.T) {
	svc, _, _ := newService()

	doc, err := svc.Create(context.Background(), "checked")
	require.NoError(t, err)

	edited := doc.Root.Clone()
	edited.Header.Title = ""
	edited.Sections[0].Specifications[0].IFCVersion = "IFC99"
	_, err = svc.Replace(context.Background(), doc.ID, edited)
	require.NoError(t, err)

	issues, err := svc.Validate(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Len(t, issues, 2)
}

func TestCheck_NotConfigured(t *testing.T) {
	svc, _, _ := newService()

	doc, err := svc.Create(context.Background(), "unchecked")
	require.NoError(t, err)

	_, err = svc.Check(context.Background(), doc.ID, "a.ifc", strings.NewReader("x"))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestCheck_SubmitsExportedXML(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockChecker := mocks.NewMockModelChecker(ctrl)
	svc, _, sink := newService(WithChecker(mockChecker))

	doc, err := svc.Create(context.Background(), "checkable")
	require.NoError(t, err)

	want := &checker.Report{Passed: true, ModelFileName: "office.ifc"}
	mockChecker.EXPECT().
		Check(gomock.Any(), gomock.Any(), "office.ifc", gomock.Any()).
		DoAndReturn(func(_ context.Context, idsXML []byte, _ string, _ io.Reader) (*checker.Report, error) {
			parsed, parseErr := codec.FromXML(idsXML)
			require.NoError(t, parseErr)
			assert.Equal(t, "checkable", parsed.Header.Title)
			return want, nil
		})

	report, err := svc.Check(context.Background(), doc.ID, "office.ifc", strings.NewReader("IFC-DATA"))
	require.NoError(t, err)
	assert.Equal(t, want, report)

	actions := make([]string, 0)
	for _, e := range sink.All() {
		actions = append(actions, e.Action)
	}
	assert.Contains(t, actions, audit.ActionDocumentChecked)
}

func TestCheck_CheckerFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockChecker := mocks.NewMockModelChecker(ctrl)
	svc, _, _ := newService(WithChecker(mockChecker))

	doc, err := svc.Create(context.Background(), "checkable")
	require.NoError(t, err)

	mockChecker.EXPECT().
		Check(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeUnavailable, "model checker unreachable"))

	_, err = svc.Check(context.Background(), doc.ID, "a.ifc", strings.NewReader("x"))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestCreate_StoreFailureWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockDocumentStore(ctrl)
	mockStore.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	svc := New(mockStore)
	_, err := svc.Create(context.Background(), "doomed")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}
