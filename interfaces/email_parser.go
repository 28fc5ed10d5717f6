package interfaces

import "github.com/alex-pober/actslaw-rag/dto"

// EmailParser produces a structured email from a raw document buffer.
// Parse never returns an error: unparseable input yields a ParsedEmail
// whose Body carries a diagnostic and whose Degraded() reports true.
type EmailParser interface {
	Parse(raw []byte) *dto.ParsedEmail
	AttachmentData(raw []byte, dataID int) ([]byte, error)
}
