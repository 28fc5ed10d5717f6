package interfaces

import (
	"context"

	"github.com/alex-pober/actslaw-rag/dto"
)

// CaseDocumentClient talks to the case-management SaaS through the
// token-refresh proxy. Transport failures wrap errors.ErrFetchFailed and
// are retryable by the caller.
type CaseDocumentClient interface {
	ListCaseDocuments(ctx context.Context, caseNumber string) ([]dto.CaseDocumentSummary, error)
	GetDocumentContent(ctx context.Context, documentID string) (*dto.FetchedDocument, error)
}
