package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-pober/actslaw-rag/dto"
	"github.com/alex-pober/actslaw-rag/interfaces"
	"github.com/alex-pober/actslaw-rag/internal/cache"
	apperrors "github.com/alex-pober/actslaw-rag/internal/errors"
	"github.com/alex-pober/actslaw-rag/internal/logger"
	"github.com/alex-pober/actslaw-rag/internal/models"
	"github.com/alex-pober/actslaw-rag/internal/repository"
	"github.com/alex-pober/actslaw-rag/services"
	"github.com/alex-pober/actslaw-rag/services/content"
	"github.com/alex-pober/actslaw-rag/services/eml"
	"github.com/alex-pober/actslaw-rag/services/msg"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	l := logger.NewAppLogger(&logger.Config{DevMode: true})
	l.InitLogger()
	return l
}

type stubCaseDocumentClient struct {
	mu      sync.Mutex
	fetches int
	doc     *dto.FetchedDocument
	docs    []dto.CaseDocumentSummary
	err     error
}

func (s *stubCaseDocumentClient) ListCaseDocuments(ctx context.Context, caseNumber string) ([]dto.CaseDocumentSummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.docs, nil
}

func (s *stubCaseDocumentClient) GetDocumentContent(ctx context.Context, documentID string) (*dto.FetchedDocument, error) {
	s.mu.Lock()
	s.fetches++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

func (s *stubCaseDocumentClient) fetchCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

type memoryCaseDocumentRepository struct {
	mu   sync.Mutex
	docs map[string]*models.CaseDocument
}

func newMemoryCaseDocumentRepository() *memoryCaseDocumentRepository {
	return &memoryCaseDocumentRepository{docs: map[string]*models.CaseDocument{}}
}

func (r *memoryCaseDocumentRepository) GetByDocumentID(ctx context.Context, documentID string) (*models.CaseDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.docs[documentID], nil
}

func (r *memoryCaseDocumentRepository) ListByCase(ctx context.Context, caseNumber string) ([]*models.CaseDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.CaseDocument
	for _, doc := range r.docs {
		if doc.CaseNumber == caseNumber {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (r *memoryCaseDocumentRepository) Upsert(ctx context.Context, doc *models.CaseDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.DocumentID] = doc
	return nil
}

func newTestRouter(t *testing.T, client interfaces.CaseDocumentClient, repo interfaces.CaseDocumentRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := testLogger(t)
	contentCache, err := cache.New[*dto.DocumentContent](16)
	require.NoError(t, err)
	handleStore := content.NewHandleStore()

	svcs := &services.Services{
		ContentCache:      contentCache,
		ContentCacheTTL:   time.Minute,
		HandleStore:       handleStore,
		ContentClassifier: content.NewClassifierService(handleStore, log),
		MSGParser:         msg.NewParser(log),
		EMLParser:         eml.NewParser(log),
		SmartAdvocate:     client,
	}
	repos := &repository.Repositories{CaseDocumentRepository: repo}
	h := NewDocumentsHandler(svcs, repos, log)

	router := gin.New()
	router.GET("/v1/cases/:caseID/documents", h.List())
	router.GET("/v1/cases/:caseID/documents/:docID/content", h.Content())
	router.GET("/v1/cases/:caseID/documents/:docID/email", h.Email())
	return router
}

func TestContentClassifiesAndCaches(t *testing.T) {
	client := &stubCaseDocumentClient{
		doc: &dto.FetchedDocument{
			DocumentID:  "42",
			Data:        []byte("%PDF-1.4 deposition transcript"),
			ContentType: "application/octet-stream",
			FileName:    "deposition.pdf",
		},
	}
	repo := newMemoryCaseDocumentRepository()
	router := newTestRouter(t, client, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/cases/7/documents/42/content", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"pdf"`)

	// a second request is served from the descriptor cache
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/cases/7/documents/42/content", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, client.fetchCount())

	viewed, err := repo.GetByDocumentID(context.Background(), "42")
	require.NoError(t, err)
	require.NotNil(t, viewed)
	assert.NotNil(t, viewed.LastViewedAt)
}

func TestContentUpstreamNotFound(t *testing.T) {
	client := &stubCaseDocumentClient{err: apperrors.ErrDocumentNotFound}
	router := newTestRouter(t, client, newMemoryCaseDocumentRepository())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/cases/7/documents/42/content", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmailRejectsNonEmailDocument(t *testing.T) {
	client := &stubCaseDocumentClient{
		doc: &dto.FetchedDocument{
			DocumentID:  "9",
			Data:        []byte("meeting notes"),
			ContentType: "text/plain",
			FileName:    "notes.txt",
		},
	}
	router := newTestRouter(t, client, newMemoryCaseDocumentRepository())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/cases/7/documents/9/email", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListFallsBackToMirror(t *testing.T) {
	repo := newMemoryCaseDocumentRepository()
	require.NoError(t, repo.Upsert(context.Background(), &models.CaseDocument{
		CaseNumber: "7",
		DocumentID: "42",
		FileName:   "deposition.pdf",
	}))
	client := &stubCaseDocumentClient{err: apperrors.ErrFetchFailed}
	router := newTestRouter(t, client, repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/cases/7/documents", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stale":true`)
	assert.Contains(t, w.Body.String(), "deposition.pdf")
}
