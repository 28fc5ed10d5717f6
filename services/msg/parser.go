// Package msg parses Outlook .msg files: OLE compound documents holding
// MAPI property streams. Field metadata in these files is frequently
// incomplete or carries Exchange directory names instead of addresses,
// so every extracted field goes through an ordered fallback chain and a
// failed parse degrades to a diagnostic body instead of an error.
package msg

import (
	"fmt"
	"strings"

	"github.com/alex-pober/actslaw-rag/dto"
	"github.com/alex-pober/actslaw-rag/interfaces"
	"github.com/alex-pober/actslaw-rag/internal/logger"
)

type msgParser struct {
	log logger.Logger
}

func NewParser(log logger.Logger) interfaces.EmailParser {
	return &msgParser{log: log}
}

// Parse extracts a structured email from a raw .msg buffer. It never
// returns an error and never panics outward: a structurally broken
// container yields a ParsedEmail whose Body is a diagnostic and whose
// Degraded() reports true, leaving the caller to offer raw download.
func (p *msgParser) Parse(raw []byte) (email *dto.ParsedEmail) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warnf("msg parse panic: %v", r)
			email = diagnosticEmail(fmt.Sprintf("panic while parsing message: %v", r))
		}
	}()

	rawMsg, err := readRaw(raw)
	if err != nil {
		return diagnosticEmail(fmt.Sprintf("unable to read message container: %v", err))
	}

	headers := rawMsg.strings[propTransportHeaders]

	email = &dto.ParsedEmail{
		Subject: strings.TrimSpace(rawMsg.strings[propSubject]),
	}

	email.From = resolveSender(
		firstNonEmpty(rawMsg.strings[propSenderSMTP], rawMsg.strings[propSenderEmail]),
		rawMsg.strings[propSenderName],
		headers,
	)
	email.To, email.Cc = resolveRecipients(rawMsg.recipients, headers)
	email.Date = resolveDate(rawMsg.fixed, headers)

	plainBody := rawMsg.strings[propBody]
	htmlBody := rawMsg.strings[propHTMLBody]

	if htmlBody != "" {
		email.HTMLBody = SanitizeHTML(htmlBody)
	}
	if plainBody == "" && email.HTMLBody != "" {
		plainBody = deriveTextFromHTML(email.HTMLBody)
	}
	email.Body = CleanBodyText(plainBody)
	if email.HTMLBody == "" && email.Body != "" {
		email.HTMLBody = LinkifyBody(email.Body)
	}

	email.Attachments = attachmentManifest(rawMsg)

	return email
}

func diagnosticEmail(reason string) *dto.ParsedEmail {
	return &dto.ParsedEmail{
		Body:       "This message could not be displayed. " + reason,
		Diagnostic: true,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
