package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/alex-pober/actslaw-rag/dto"
	"github.com/alex-pober/actslaw-rag/interfaces"
	"github.com/alex-pober/actslaw-rag/internal/enum"
	apperrors "github.com/alex-pober/actslaw-rag/internal/errors"
	"github.com/alex-pober/actslaw-rag/internal/logger"
	"github.com/alex-pober/actslaw-rag/internal/models"
	"github.com/alex-pober/actslaw-rag/internal/repository"
	"github.com/alex-pober/actslaw-rag/internal/tracing"
	"github.com/alex-pober/actslaw-rag/internal/utils"
	"github.com/alex-pober/actslaw-rag/services"
)

type DocumentsHandler struct {
	services *services.Services
	repos    *repository.Repositories
	log      logger.Logger
}

func NewDocumentsHandler(svcs *services.Services, repos *repository.Repositories, log logger.Logger) *DocumentsHandler {
	return &DocumentsHandler{
		services: svcs,
		repos:    repos,
		log:      log,
	}
}

// List returns the document listing for a case. The upstream listing is
// authoritative; rows are mirrored into the local table on every
// successful call, and the mirror serves as a fallback when the
// upstream is down.
func (h *DocumentsHandler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		caseID := c.Param("caseID")

		summaries, err := h.services.SmartAdvocate.ListCaseDocuments(ctx, caseID)
		if err != nil {
			h.log.Warnf("upstream listing failed for case %s, serving mirror: %v", caseID, err)
			cached, repoErr := h.repos.CaseDocumentRepository.ListByCase(ctx, caseID)
			if repoErr != nil || len(cached) == 0 {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"documents": summariesFromModels(cached), "stale": true})
			return
		}

		for i := range summaries {
			doc := &models.CaseDocument{
				CaseNumber:          caseID,
				DocumentID:          summaries[i].DocumentID,
				FileName:            summaries[i].FileName,
				Description:         summaries[i].Description,
				Category:            summaries[i].Category,
				DeclaredContentType: summaries[i].ContentType,
				SizeBytes:           summaries[i].SizeBytes,
			}
			if err := h.repos.CaseDocumentRepository.Upsert(ctx, doc); err != nil {
				h.log.Warnf("failed to mirror document %s: %v", summaries[i].DocumentID, err)
			}
		}

		c.JSON(http.StatusOK, gin.H{"documents": summaries})
	}
}

// Content fetches, classifies and describes one document.
func (h *DocumentsHandler) Content() gin.HandlerFunc {
	return func(c *gin.Context) {
		docID := c.Param("docID")

		content, err := h.classifiedContent(c, docID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, content)
	}
}

// Email parses one document as an email. Only msg-email documents and
// .eml files qualify; anything else is a conflict, not a parse failure.
func (h *DocumentsHandler) Email() gin.HandlerFunc {
	return func(c *gin.Context) {
		docID := c.Param("docID")

		content, err := h.classifiedContent(c, docID)
		if err != nil {
			respondError(c, err)
			return
		}

		email, err := h.parseEmail(content)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, email)
	}
}

// EmailAttachment streams the bytes of one email attachment, located by
// the DataID from a previously returned manifest.
func (h *DocumentsHandler) EmailAttachment() gin.HandlerFunc {
	return func(c *gin.Context) {
		docID := c.Param("docID")

		dataID, err := strconv.Atoi(c.Param("dataID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dataID must be an integer"})
			return
		}

		content, err := h.classifiedContent(c, docID)
		if err != nil {
			respondError(c, err)
			return
		}

		raw, parser, err := h.emailSource(content)
		if err != nil {
			respondError(c, err)
			return
		}

		email := parser.Parse(raw)
		var fileName string
		for _, ref := range email.Attachments {
			if ref.DataID == dataID {
				fileName = ref.FileName
				break
			}
		}
		if fileName == "" {
			respondError(c, apperrors.ErrAttachmentNotFound)
			return
		}

		data, err := parser.AttachmentData(raw, dataID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Header("Content-Disposition", `attachment; filename="`+utils.SanitizeFilename(fileName)+`"`)
		c.Data(http.StatusOK, "application/octet-stream", data)
	}
}

// classifiedContent returns the classified descriptor for a document,
// from cache when the render handle behind it is still alive.
func (h *DocumentsHandler) classifiedContent(c *gin.Context, docID string) (*dto.DocumentContent, error) {
	ctx := c.Request.Context()

	if cached, ok := h.services.ContentCache.Get(docID); ok {
		if cached.HandleID == "" {
			return cached, nil
		}
		if _, err := h.services.HandleStore.Get(cached.HandleID); err == nil {
			return cached, nil
		}
		// the janitor swept the handle; reclassify from a fresh fetch
		h.services.ContentCache.Remove(docID)
	}

	fetched, err := h.services.SmartAdvocate.GetDocumentContent(ctx, docID)
	if err != nil {
		return nil, err
	}

	content := h.services.ContentClassifier.Classify(ctx, dto.ClassifyInput{
		Data:             fetched.Data,
		DeclaredMimeType: fetched.ContentType,
		FileNameHint:     fetched.FileName,
	})
	h.services.ContentCache.Put(docID, content, h.services.ContentCacheTTL)

	h.recordView(c, docID, content)
	return content, nil
}

func (h *DocumentsHandler) recordView(c *gin.Context, docID string, content *dto.DocumentContent) {
	ctx := c.Request.Context()

	doc, err := h.repos.CaseDocumentRepository.GetByDocumentID(ctx, docID)
	if err != nil || doc == nil {
		doc = &models.CaseDocument{
			CaseNumber: c.Param("caseID"),
			DocumentID: docID,
			FileName:   content.FileNameHint,
		}
	}
	now := utils.Now()
	doc.DetectedKind = content.Kind
	doc.SizeBytes = content.SizeBytes
	doc.DeclaredContentType = content.DeclaredMimeType
	doc.LastViewedAt = &now

	if err := h.repos.CaseDocumentRepository.Upsert(ctx, doc); err != nil {
		h.log.Warnf("failed to record view of document %s: %v", docID, err)
	}
}

func (h *DocumentsHandler) parseEmail(content *dto.DocumentContent) (*dto.ParsedEmail, error) {
	raw, parser, err := h.emailSource(content)
	if err != nil {
		return nil, err
	}
	return parser.Parse(raw), nil
}

// emailSource picks the parser and raw bytes for an email document:
// msg-email kinds carry their source bytes through classification, .eml
// files ride the plain-text path with their content inline.
func (h *DocumentsHandler) emailSource(content *dto.DocumentContent) ([]byte, interfaces.EmailParser, error) {
	if content.Kind == enum.ContentMSGEmail && len(content.SourceBytes) > 0 {
		return content.SourceBytes, h.services.MSGParser, nil
	}
	if utils.FileExtension(content.FileNameHint) == "eml" && content.InlineText != "" {
		return []byte(content.InlineText), h.services.EMLParser, nil
	}
	return nil, nil, apperrors.ErrNotAnEmailDocument
}

func summariesFromModels(docs []*models.CaseDocument) []dto.CaseDocumentSummary {
	summaries := make([]dto.CaseDocumentSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, dto.CaseDocumentSummary{
			DocumentID:  doc.DocumentID,
			CaseNumber:  doc.CaseNumber,
			FileName:    doc.FileName,
			Description: doc.Description,
			Category:    doc.Category,
			ContentType: doc.DeclaredContentType,
			SizeBytes:   doc.SizeBytes,
		})
	}
	return summaries
}

// respondError maps the error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	if span := opentracing.SpanFromContext(c.Request.Context()); span != nil {
		tracing.TraceErr(span, err)
	}

	status := http.StatusInternalServerError
	switch errors.Cause(err) {
	case apperrors.ErrDocumentNotFound, apperrors.ErrAttachmentNotFound, apperrors.ErrHandleNotFound:
		status = http.StatusNotFound
	case apperrors.ErrNotAnEmailDocument:
		status = http.StatusConflict
	case apperrors.ErrConnectionTimeout:
		status = http.StatusGatewayTimeout
	case apperrors.ErrFetchFailed:
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
