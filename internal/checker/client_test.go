package checker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "idsforge/pkg/domain-errors"
	"idsforge/pkg/platform/circuit"
)

func TestCheck_UploadsBothPartsAndDecodesReport(t *testing.T) {
	var gotIDS, gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/check", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		idsFile, _, err := r.FormFile("ids")
		require.NoError(t, err)
		defer idsFile.Close()
		buf := make([]byte, 256)
		n, _ := idsFile.Read(buf)
		gotIDS = string(buf[:n])

		modelFile, header, err := r.FormFile("model")
		require.NoError(t, err)
		defer modelFile.Close()
		n, _ = modelFile.Read(buf)
		gotModel = string(buf[:n])
		assert.Equal(t, "office.ifc", header.Filename)

		_ = json.NewEncoder(w).Encode(Report{
			CheckedAt:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			ModelFileName: "office.ifc",
			Passed:        true,
			Specifications: []SpecificationResult{
				{Name: "Walls have fire rating", Passed: true, ApplicableCount: 12},
			},
		})
	}))
	defer server.Close()

	client := New(server.URL)
	report, err := client.Check(context.Background(), []byte("<ids/>"), "office.ifc", strings.NewReader("IFC-DATA"))
	require.NoError(t, err)

	assert.Equal(t, "<ids/>", gotIDS)
	assert.Equal(t, "IFC-DATA", gotModel)
	assert.True(t, report.Passed)
	require.Len(t, report.Specifications, 1)
	assert.Equal(t, 12, report.Specifications[0].ApplicableCount)
}

func TestCheck_ServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Check(context.Background(), []byte("<ids/>"), "a.ifc", strings.NewReader("x"))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestCheck_ClientErrorIsBadRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	client := New(server.URL)
	_, err := client.Check(context.Background(), []byte("not xml"), "a.ifc", strings.NewReader("x"))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestCheck_OpenBreakerShortCircuits(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, WithBreaker(circuit.New("checker", circuit.WithFailureThreshold(2))))

	for range 2 {
		_, err := client.Check(context.Background(), []byte("<ids/>"), "a.ifc", strings.NewReader("x"))
		require.Error(t, err)
	}
	assert.Equal(t, 2, hits)

	_, err := client.Check(context.Background(), []byte("<ids/>"), "a.ifc", strings.NewReader("x"))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	assert.Equal(t, 2, hits, "open breaker must not hit the backend")
}
