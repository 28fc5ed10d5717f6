// Package eml parses RFC 5322 email files into the same structured
// shape the msg package produces, so the viewer layer renders both
// Outlook exports and plain .eml case files identically.
package eml

import (
	"bytes"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/jhillyerd/enmime"

	"github.com/alex-pober/actslaw-rag/dto"
	"github.com/alex-pober/actslaw-rag/interfaces"
	"github.com/alex-pober/actslaw-rag/internal/errors"
	"github.com/alex-pober/actslaw-rag/internal/logger"
	"github.com/alex-pober/actslaw-rag/services/msg"
)

type emlParser struct {
	log logger.Logger
}

func NewParser(log logger.Logger) interfaces.EmailParser {
	return &emlParser{log: log}
}

// Parse reads one RFC 5322 message. Same contract as the msg parser:
// errors degrade to a diagnostic body, never propagate.
func (p *emlParser) Parse(raw []byte) (email *dto.ParsedEmail) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Warnf("eml parse panic: %v", r)
			email = diagnosticEmail(fmt.Sprintf("panic while parsing message: %v", r))
		}
	}()

	envelope, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return diagnosticEmail(fmt.Sprintf("unable to read message: %v", err))
	}

	email = &dto.ParsedEmail{
		Subject: strings.TrimSpace(envelope.GetHeader("Subject")),
		From:    addressListString(envelope, "From"),
		To:      addressListString(envelope, "To"),
		Cc:      addressListString(envelope, "Cc"),
	}

	if date, err := mail.ParseDate(envelope.GetHeader("Date")); err == nil {
		email.Date = date.Format(time.RFC1123)
	}

	if envelope.HTML != "" {
		email.HTMLBody = msg.SanitizeHTML(envelope.HTML)
	}
	email.Body = msg.CleanBodyText(envelope.Text)
	if email.HTMLBody == "" && email.Body != "" {
		email.HTMLBody = msg.LinkifyBody(email.Body)
	}

	for i, part := range envelope.Attachments {
		name := part.FileName
		if name == "" {
			name = "unknown"
		}
		email.Attachments = append(email.Attachments, dto.EmailAttachmentRef{
			FileName:      name,
			ContentLength: len(part.Content),
			DataID:        i,
		})
	}

	return email
}

// AttachmentData returns the bytes of the attachment at index dataID by
// re-reading the envelope, matching the msg parser's on-demand contract.
func (p *emlParser) AttachmentData(raw []byte, dataID int) ([]byte, error) {
	envelope, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.ErrAttachmentNotFound
	}
	if dataID < 0 || dataID >= len(envelope.Attachments) {
		return nil, errors.ErrAttachmentNotFound
	}
	return envelope.Attachments[dataID].Content, nil
}

func addressListString(envelope *enmime.Envelope, header string) string {
	addresses, err := envelope.AddressList(header)
	if err != nil || len(addresses) == 0 {
		return ""
	}
	values := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		values = append(values, addr.Address)
	}
	return strings.Join(values, "; ")
}

func diagnosticEmail(reason string) *dto.ParsedEmail {
	return &dto.ParsedEmail{
		Body:       "This message could not be displayed. " + reason,
		Diagnostic: true,
	}
}
