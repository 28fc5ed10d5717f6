// Package smartadvocate is the HTTP client for the case-management
// system, reached through the token-refresh proxy. The proxy owns
// credential rotation; this client only supplies the shared API key.
package smartadvocate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/alex-pober/actslaw-rag/config"
	"github.com/alex-pober/actslaw-rag/dto"
	"github.com/alex-pober/actslaw-rag/interfaces"
	apperrors "github.com/alex-pober/actslaw-rag/internal/errors"
	"github.com/alex-pober/actslaw-rag/internal/logger"
	"github.com/alex-pober/actslaw-rag/internal/tracing"
)

const (
	apiKeyHeader        = "X-Api-Key"
	correlationIDHeader = "X-Correlation-Id"
)

type smartAdvocateService struct {
	log        logger.Logger
	config     *config.SmartAdvocateConfig
	httpClient *http.Client
}

func NewSmartAdvocateService(log logger.Logger, cfg *config.SmartAdvocateConfig) interfaces.CaseDocumentClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &smartAdvocateService{
		log:    log,
		config: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *smartAdvocateService) ListCaseDocuments(ctx context.Context, caseNumber string) ([]dto.CaseDocumentSummary, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SmartAdvocateService.ListCaseDocuments")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagCase(span, caseNumber)

	url := fmt.Sprintf("%s/v3/case/%s/documents", s.config.Url, caseNumber)
	body, _, err := s.get(ctx, url)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	var summaries []dto.CaseDocumentSummary
	if err := json.Unmarshal(body, &summaries); err != nil {
		wrapped := errors.Wrap(apperrors.ErrFetchFailed, err.Error())
		tracing.TraceErr(span, wrapped)
		return nil, wrapped
	}

	span.LogKV("result.count", len(summaries))
	return summaries, nil
}

func (s *smartAdvocateService) GetDocumentContent(ctx context.Context, documentID string) (*dto.FetchedDocument, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SmartAdvocateService.GetDocumentContent")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	tracing.TagDocument(span, documentID)

	url := fmt.Sprintf("%s/v3/document/%s/content", s.config.Url, documentID)
	body, header, err := s.get(ctx, url)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	doc := &dto.FetchedDocument{
		DocumentID:  documentID,
		Data:        body,
		ContentType: header.Get("Content-Type"),
		FileName:    fileNameFromDisposition(header.Get("Content-Disposition")),
	}
	span.LogKV("result.size", len(body), "result.contentType", doc.ContentType)
	return doc, nil
}

// get performs one proxied request. Every failure mode wraps
// ErrFetchFailed so callers can treat the whole upstream as retryable.
func (s *smartAdvocateService) get(ctx context.Context, url string) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, errors.Wrap(apperrors.ErrFetchFailed, err.Error())
	}
	req.Header.Set(apiKeyHeader, s.config.ApiKey)
	req.Header.Set(correlationIDHeader, uuid.New().String())

	if span := opentracing.SpanFromContext(ctx); span != nil {
		tracing.InjectSpanContextIntoHTTPRequest(req, span)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return nil, nil, errors.Wrap(apperrors.ErrConnectionTimeout, err.Error())
		}
		return nil, nil, errors.Wrap(apperrors.ErrFetchFailed, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil, apperrors.ErrDocumentNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, errors.Wrapf(apperrors.ErrFetchFailed, "upstream returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, errors.Wrap(apperrors.ErrFetchFailed, err.Error())
	}
	return body, resp.Header, nil
}

func fileNameFromDisposition(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}
