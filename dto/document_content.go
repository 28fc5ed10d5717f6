package dto

import "github.com/alex-pober/actslaw-rag/internal/enum"

// ClassifyInput is everything known about a fetched document before
// classification: the raw payload, the content type the transport layer
// declared, and the filename from the document record when available.
type ClassifyInput struct {
	// Data holds the raw payload. Exactly one of Data and TextData is set.
	Data []byte
	// TextData is set instead of Data when the upstream transport coerced
	// a binary payload into a text frame.
	TextData         string
	DeclaredMimeType string
	FileNameHint     string
}

// DocumentContent describes how a document's bytes should be consumed
// downstream. Kind is always derived from byte signatures or the filename
// extension; DeclaredMimeType is retained for diagnostics only.
type DocumentContent struct {
	Kind enum.ContentKind `json:"kind"`

	// SourceBytes holds the raw buffer when it is needed for re-parsing
	// (msg-email), otherwise nil.
	SourceBytes []byte `json:"-"`

	// HandleID and RenderURL reference the renderable resource for binary
	// kinds; InlineText carries the content for plain-text.
	HandleID   string `json:"handleId,omitempty"`
	RenderURL  string `json:"renderUrl,omitempty"`
	InlineText string `json:"inlineText,omitempty"`

	CorrectedMimeType string `json:"contentType,omitempty"`
	DeclaredMimeType  string `json:"declaredContentType"`
	SizeBytes         int    `json:"sizeBytes"`
	FileNameHint      string `json:"fileName,omitempty"`
}

// DownloadOnly reports whether no inline preview is possible and the UI
// should offer download as the only action.
func (d *DocumentContent) DownloadOnly() bool {
	return d.Kind == enum.ContentUnknown
}
