package enum

// ContentKind is the authoritative classification of a fetched document,
// derived from byte signatures or the filename extension, never from the
// content type the upstream API declares.
type ContentKind string

const (
	ContentPDF           ContentKind = "pdf"
	ContentDOCX          ContentKind = "docx"
	ContentLegacyDoc     ContentKind = "legacy-doc"
	ContentMSGEmail      ContentKind = "msg-email"
	ContentImage         ContentKind = "image"
	ContentPlainText     ContentKind = "plain-text"
	ContentGenericBinary ContentKind = "generic-binary"
	ContentUnknown       ContentKind = "unknown"
)

func (t ContentKind) String() string {
	return string(t)
}

// IsBinary reports whether the kind is backed by a renderable resource
// handle rather than inline text.
func (t ContentKind) IsBinary() bool {
	switch t {
	case ContentPDF, ContentDOCX, ContentLegacyDoc, ContentMSGEmail, ContentImage, ContentGenericBinary:
		return true
	}
	return false
}

type RecipientKind string

const (
	RecipientTo RecipientKind = "to"
	RecipientCc RecipientKind = "cc"
)

func (t RecipientKind) String() string {
	return string(t)
}
