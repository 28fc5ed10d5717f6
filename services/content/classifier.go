package content

import (
	"context"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/opentracing/opentracing-go"

	"github.com/alex-pober/actslaw-rag/dto"
	"github.com/alex-pober/actslaw-rag/interfaces"
	"github.com/alex-pober/actslaw-rag/internal/enum"
	"github.com/alex-pober/actslaw-rag/internal/logger"
	"github.com/alex-pober/actslaw-rag/internal/tracing"
	"github.com/alex-pober/actslaw-rag/internal/utils"
)

// Corrected MIME types per kind. The declared header is never reused for
// binary dispatch because upstream mislabels binary payloads, which makes
// viewers refuse to render them.
const (
	mimePDF       = "application/pdf"
	mimeDOCX      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeLegacyDoc = "application/msword"
	mimeMSG       = "application/vnd.ms-outlook"
	mimeBinary    = "application/octet-stream"
)

const renderPathPrefix = "/v1/render/"

type classifierService struct {
	handles interfaces.RenderHandleStore
	log     logger.Logger
}

func NewClassifierService(handles interfaces.RenderHandleStore, log logger.Logger) interfaces.ContentClassifier {
	return &classifierService{
		handles: handles,
		log:     log,
	}
}

// Classify converts one fetched payload into exactly one DocumentContent.
// Rules are ordered and the first match wins; malformed input degrades to
// the unknown kind, never to an error.
func (s *classifierService) Classify(ctx context.Context, input dto.ClassifyInput) *dto.DocumentContent {
	span, _ := opentracing.StartSpanFromContext(ctx, "ClassifierService.Classify")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("declared_content_type", input.DeclaredMimeType)

	data := input.Data
	declared := strings.ToLower(input.DeclaredMimeType)
	ext := utils.FileExtension(input.FileNameHint)

	// Binary PDFs sometimes arrive coerced into a text frame; recover the
	// byte stream before any signature matching.
	if input.TextData != "" && data == nil {
		if strings.HasPrefix(input.TextData, "%PDF-") {
			data = recoverPDFText(input.TextData)
		} else {
			data = []byte(input.TextData)
		}
	}

	result := &dto.DocumentContent{
		DeclaredMimeType: input.DeclaredMimeType,
		SizeBytes:        len(data),
		FileNameHint:     input.FileNameHint,
	}

	kind := s.resolveKind(data, declared, ext)
	result.Kind = kind
	span.SetTag("kind", kind.String())

	switch {
	case kind == enum.ContentPlainText:
		result.InlineText = string(data)
	case kind.IsBinary():
		result.CorrectedMimeType = s.correctedMimeType(kind, data)
		handle := s.handles.Create(data, result.CorrectedMimeType, input.FileNameHint)
		result.HandleID = handle.ID
		result.RenderURL = renderPathPrefix + handle.ID
		if kind == enum.ContentMSGEmail {
			// the MSG parser needs the original bytes, not a handle
			result.SourceBytes = data
		}
	}

	return result
}

// resolveKind applies the ordered classification rules from most to
// least authoritative signal: filename extension, declared type for
// unambiguous labels, byte signatures for ambiguous ones, text fallback.
func (s *classifierService) resolveKind(data []byte, declared, ext string) enum.ContentKind {
	switch ext {
	case "docx":
		// a ZIP signature alone cannot tell DOCX from other OOXML
		// containers, so the extension is authoritative
		return enum.ContentDOCX
	case "msg":
		return enum.ContentMSGEmail
	case "doc":
		return enum.ContentLegacyDoc
	}

	switch {
	case strings.Contains(declared, "application/pdf"):
		return enum.ContentPDF
	case strings.Contains(declared, "image/"):
		return enum.ContentImage
	case strings.Contains(declared, "application/octet-stream"):
		return s.sniffAmbiguous(data)
	case strings.Contains(declared, "text/"), IsProbablyText(data):
		return enum.ContentPlainText
	}

	return enum.ContentUnknown
}

// sniffAmbiguous resolves the upstream's catch-all octet-stream label by
// byte signature.
func (s *classifierService) sniffAmbiguous(data []byte) enum.ContentKind {
	switch {
	case MatchesPDF(data):
		return enum.ContentPDF
	case MatchesOLE(data):
		return enum.ContentMSGEmail
	case MatchesZIP(data):
		return enum.ContentDOCX
	}
	return enum.ContentGenericBinary
}

func (s *classifierService) correctedMimeType(kind enum.ContentKind, data []byte) string {
	switch kind {
	case enum.ContentPDF:
		return mimePDF
	case enum.ContentDOCX:
		return mimeDOCX
	case enum.ContentLegacyDoc:
		return mimeLegacyDoc
	case enum.ContentMSGEmail:
		return mimeMSG
	case enum.ContentImage, enum.ContentGenericBinary:
		if detected := mimetype.Detect(data); detected.String() != mimeBinary {
			return detected.String()
		}
		return mimeBinary
	}
	return mimeBinary
}

// recoverPDFText turns a PDF payload that arrived as text back into its
// byte stream. When the text carries non-printable code units the frame
// held raw Latin-1 bytes and each code unit maps to one byte; UTF-8
// encoding such a payload corrupts it. Clean text is UTF-8 encoded
// as-is. This mirrors the upstream transport's observed behavior and is
// a known-fragile boundary; keep the heuristic rather than fixing it.
func recoverPDFText(text string) []byte {
	if ContainsNonPrintable(text) {
		return ReinterpretText(text)
	}
	return []byte(text)
}
