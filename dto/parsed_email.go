package dto

// ParsedEmail is the structured, best-effort representation of one
// Outlook message. Fields the parser could not resolve through any
// fallback are left empty rather than failing the parse.
type ParsedEmail struct {
	Subject  string `json:"subject,omitempty"`
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	Cc       string `json:"cc,omitempty"`
	Date     string `json:"date,omitempty"`
	Body     string `json:"body,omitempty"`
	HTMLBody string `json:"htmlBody,omitempty"`

	Attachments []EmailAttachmentRef `json:"attachments,omitempty"`

	// Diagnostic is true when the container could not be parsed and Body
	// holds a human-readable failure description instead of message text.
	Diagnostic bool `json:"diagnostic,omitempty"`
}

// EmailAttachmentRef identifies one attachment without materializing its
// bytes. DataID is an opaque handle usable to fetch the attachment from
// the same raw buffer on demand.
type EmailAttachmentRef struct {
	FileName      string `json:"fileName"`
	ContentLength int    `json:"contentLength"`
	DataID        int    `json:"dataId"`
}

// Degraded reports that parsing produced nothing usable and the caller
// should fall back to offering raw download.
func (p *ParsedEmail) Degraded() bool {
	return p.Subject == "" && p.From == "" && (p.Diagnostic || p.Body == "")
}
