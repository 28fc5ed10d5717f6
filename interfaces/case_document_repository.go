package interfaces

import (
	"context"

	"github.com/alex-pober/actslaw-rag/internal/models"
)

type CaseDocumentRepository interface {
	GetByDocumentID(ctx context.Context, documentID string) (*models.CaseDocument, error)
	ListByCase(ctx context.Context, caseNumber string) ([]*models.CaseDocument, error)
	Upsert(ctx context.Context, doc *models.CaseDocument) error
}
