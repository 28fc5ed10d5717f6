package repository

import (
	"context"
	"fmt"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/alex-pober/actslaw-rag/interfaces"
	"github.com/alex-pober/actslaw-rag/internal/models"
	"github.com/alex-pober/actslaw-rag/internal/tracing"
	"github.com/alex-pober/actslaw-rag/internal/utils"
)

type caseDocumentRepository struct {
	db *gorm.DB
}

func NewCaseDocumentRepository(db *gorm.DB) interfaces.CaseDocumentRepository {
	return &caseDocumentRepository{db: db}
}

func (r *caseDocumentRepository) GetByDocumentID(ctx context.Context, documentID string) (*models.CaseDocument, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "caseDocumentRepository.GetByDocumentID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagDocument(span, documentID)

	var doc models.CaseDocument
	result := r.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		First(&doc)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		tracing.TraceErr(span, result.Error)
		return nil, fmt.Errorf("failed to get case document: %w", result.Error)
	}

	return &doc, nil
}

func (r *caseDocumentRepository) ListByCase(ctx context.Context, caseNumber string) ([]*models.CaseDocument, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "caseDocumentRepository.ListByCase")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagCase(span, caseNumber)

	var docs []*models.CaseDocument
	result := r.db.WithContext(ctx).
		Where("case_number = ?", caseNumber).
		Order("updated_at DESC").
		Find(&docs)

	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return nil, fmt.Errorf("failed to list case documents: %w", result.Error)
	}

	return docs, nil
}

func (r *caseDocumentRepository) Upsert(ctx context.Context, doc *models.CaseDocument) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "caseDocumentRepository.Upsert")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagDocument(span, doc.DocumentID)

	// Update in place when the upstream document is already cached
	result := r.db.WithContext(ctx).
		Model(&models.CaseDocument{}).
		Where("document_id = ?", doc.DocumentID).
		Updates(map[string]interface{}{
			"file_name":             doc.FileName,
			"description":           doc.Description,
			"category":              doc.Category,
			"declared_content_type": doc.DeclaredContentType,
			"detected_kind":         doc.DetectedKind,
			"size_bytes":            doc.SizeBytes,
			"last_viewed_at":        doc.LastViewedAt,
			"updated_at":            utils.Now(),
		})

	if result.RowsAffected == 0 {
		result = r.db.WithContext(ctx).Create(doc)
	}

	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return fmt.Errorf("failed to upsert case document: %w", result.Error)
	}

	return nil
}
