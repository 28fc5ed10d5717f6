package smartadvocate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-pober/actslaw-rag/config"
	apperrors "github.com/alex-pober/actslaw-rag/internal/errors"
	"github.com/alex-pober/actslaw-rag/internal/logger"
)

func testClient(t *testing.T, handler http.Handler) (*smartAdvocateService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	log := logger.NewAppLogger(&logger.Config{DevMode: true})
	log.InitLogger()

	svc := NewSmartAdvocateService(log, &config.SmartAdvocateConfig{
		Url:            server.URL,
		ApiKey:         "test-key",
		TimeoutSeconds: 5,
	}).(*smartAdvocateService)
	return svc, server
}

func TestListCaseDocuments(t *testing.T) {
	var gotAPIKey, gotCorrelation string
	svc, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("X-Api-Key")
		gotCorrelation = r.Header.Get("X-Correlation-Id")
		assert.Equal(t, "/v3/case/2024-00042/documents", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"documentId":"doc-1","caseNumber":"2024-00042","fileName":"complaint.pdf"}]`))
	}))

	docs, err := svc.ListCaseDocuments(context.Background(), "2024-00042")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "doc-1", docs[0].DocumentID)
	assert.Equal(t, "complaint.pdf", docs[0].FileName)

	assert.Equal(t, "test-key", gotAPIKey)
	assert.NotEmpty(t, gotCorrelation)
}

func TestGetDocumentContent(t *testing.T) {
	payload := []byte("%PDF-1.4 content")
	svc, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/document/doc-1/content", r.URL.Path)
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", `attachment; filename="complaint.pdf"`)
		w.Write(payload)
	}))

	doc, err := svc.GetDocumentContent(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, payload, doc.Data)
	assert.Equal(t, "application/octet-stream", doc.ContentType)
	assert.Equal(t, "complaint.pdf", doc.FileName)
}

func TestGetDocumentContentNotFound(t *testing.T) {
	svc, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := svc.GetDocumentContent(context.Background(), "missing")
	assert.Equal(t, apperrors.ErrDocumentNotFound, err)
}

func TestUpstreamErrorWrapsFetchFailed(t *testing.T) {
	svc, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	_, err := svc.ListCaseDocuments(context.Background(), "2024-00042")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrFetchFailed, errors.Cause(err))
}

func TestConnectionRefusedWrapsFetchFailed(t *testing.T) {
	svc, server := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := svc.ListCaseDocuments(context.Background(), "2024-00042")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrFetchFailed, errors.Cause(err))
}
