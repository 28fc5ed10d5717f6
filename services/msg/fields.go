package msg

import (
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/alex-pober/actslaw-rag/internal/enum"
	"github.com/alex-pober/actslaw-rag/internal/utils"
)

// Header-scrape regexes. Structured MAPI properties frequently carry
// Exchange distinguished names instead of addresses, while the plain
// RFC 5322 header block retains the real ones, so each of these is a
// last-resort extraction with the header text as input.
var (
	fromHeaderRegex = regexp.MustCompile(`(?im)^from:[ \t]*(.+(?:\r?\n[ \t]+.+)*)`)
	toHeaderRegex   = regexp.MustCompile(`(?im)^to:[ \t]*(.+(?:\r?\n[ \t]+.+)*)`)
	ccHeaderRegex   = regexp.MustCompile(`(?im)^cc:[ \t]*(.+(?:\r?\n[ \t]+.+)*)`)
	dateHeaderRegex = regexp.MustCompile(`(?im)^date:[ \t]*(.+)`)
)

const recipientJoinSeparator = "; "

// isExchangeDN reports whether value is an Exchange legacy distinguished
// name rather than an address.
func isExchangeDN(value string) bool {
	return strings.HasPrefix(value, "/o=") || strings.HasPrefix(value, "/O=")
}

// resolveSender picks the best available sender address, in order:
// a valid address in the email property, a valid address in the name
// property, an address scraped from the header From: line or embedded in
// the display name when the email property is a distinguished name, and
// finally the unresolved display name as-is.
func resolveSender(senderEmail, senderName, headers string) string {
	senderEmail = strings.TrimSpace(senderEmail)
	senderName = strings.TrimSpace(senderName)

	if utils.IsEmailAddress(senderEmail) {
		return senderEmail
	}
	if utils.IsEmailAddress(senderName) {
		return senderName
	}
	if isExchangeDN(senderEmail) {
		if addr := extractFromHeaderAddress(headers); addr != "" {
			return addr
		}
		if addr := utils.FirstEmailAddress(senderName); addr != "" {
			return addr
		}
	}
	if senderName != "" {
		return senderName
	}
	return senderEmail
}

// extractFromHeaderAddress scrapes the first address on the header
// block's From: line, following folded continuation lines. Returns ""
// when the block has no From: line or the line carries no address.
func extractFromHeaderAddress(headers string) string {
	m := fromHeaderRegex.FindStringSubmatch(headers)
	if m == nil {
		return ""
	}
	return utils.FirstEmailAddress(m[1])
}

// extractToHeaderAddresses scrapes every address on the header block's
// To: line, in order, following folded continuation lines.
func extractToHeaderAddresses(headers string) []string {
	m := toHeaderRegex.FindStringSubmatch(headers)
	if m == nil {
		return nil
	}
	return utils.AllEmailAddresses(m[1])
}

// extractCcHeaderAddresses is extractToHeaderAddresses for the CC: line.
func extractCcHeaderAddresses(headers string) []string {
	m := ccHeaderRegex.FindStringSubmatch(headers)
	if m == nil {
		return nil
	}
	return utils.AllEmailAddresses(m[1])
}

// resolveRecipientAddress applies the sender priority order to a single
// recipient record: direct address property, SMTP address property,
// name-as-address, address embedded in the display name, and finally the
// raw display name.
func resolveRecipientAddress(rec *rawPropertySet) string {
	email := strings.TrimSpace(rec.strings[propEmailAddress])
	smtp := strings.TrimSpace(rec.strings[propRecipSMTP])
	name := strings.TrimSpace(rec.strings[propDisplayName])

	if utils.IsEmailAddress(email) {
		return email
	}
	if utils.IsEmailAddress(smtp) {
		return smtp
	}
	if utils.IsEmailAddress(name) {
		return name
	}
	if addr := utils.FirstEmailAddress(name); addr != "" {
		return addr
	}
	if name != "" {
		return name
	}
	return email
}

// recipientKind buckets one record by its PR_RECIPIENT_TYPE value. Only
// CC is distinguished; everything else, including records with no type
// property, lands in To. BCC records are not distinguished by the
// upstream store so they are not distinguished here either.
func recipientKind(rec *rawPropertySet) enum.RecipientKind {
	value, ok := rec.fixed[propRecipientType]
	if !ok || len(value) < 4 {
		return enum.RecipientTo
	}
	if value[0] == 2 && value[1] == 0 && value[2] == 0 && value[3] == 0 {
		return enum.RecipientCc
	}
	return enum.RecipientTo
}

// resolveRecipients buckets all recipient records into To and Cc. When a
// bucket ends up empty or holds nothing but unresolved directory names,
// the whole bucket is re-derived from the header block's To:/CC: lines
// as a replacement, not a merge, because the structured records and the
// header describe the same audience.
func resolveRecipients(recipients []*rawPropertySet, headers string) (to string, cc string) {
	var toList, ccList []string
	for _, rec := range recipients {
		addr := resolveRecipientAddress(rec)
		if addr == "" {
			continue
		}
		if recipientKind(rec) == enum.RecipientCc {
			ccList = append(ccList, addr)
		} else {
			toList = append(toList, addr)
		}
	}

	if bucketUnresolved(toList) {
		if fromHeaders := extractToHeaderAddresses(headers); len(fromHeaders) > 0 {
			toList = fromHeaders
		}
	}
	if bucketUnresolved(ccList) {
		if fromHeaders := extractCcHeaderAddresses(headers); len(fromHeaders) > 0 {
			ccList = fromHeaders
		}
	}

	return strings.Join(toList, recipientJoinSeparator), strings.Join(ccList, recipientJoinSeparator)
}

// bucketUnresolved reports whether a bucket carries no usable address:
// it is empty, or every entry is still a distinguished name or plain
// display name.
func bucketUnresolved(bucket []string) bool {
	if len(bucket) == 0 {
		return true
	}
	for _, v := range bucket {
		if utils.IsEmailAddress(v) {
			return false
		}
	}
	return true
}

// resolveDate prefers a structured submit/creation time; when none is
// present or parseable it scrapes the header block's Date: line.
func resolveDate(fixed map[uint16][]byte, headers string) string {
	for _, id := range []uint16{propClientSubmitTime, propMessageDeliveryTime, propCreationTime} {
		if value, ok := fixed[id]; ok {
			if t := filetimeToTime(value); validDate(t) {
				return t.Format(time.RFC1123)
			}
		}
	}
	return extractDateHeader(headers)
}

// extractDateHeader scrapes and parses the header block's Date: line.
// Returns "" when absent or unparseable.
func extractDateHeader(headers string) string {
	m := dateHeaderRegex.FindStringSubmatch(headers)
	if m == nil {
		return ""
	}
	raw := strings.TrimSpace(m[1])
	if t, err := mail.ParseDate(raw); err == nil {
		return t.Format(time.RFC1123)
	}
	// keep the raw header value when it does not parse; it is still more
	// useful to a reader than nothing
	return raw
}

// validDate rejects FILETIME values that decode to implausible years,
// which happens when the property holds garbage.
func validDate(t time.Time) bool {
	return !t.IsZero() && t.Year() >= 1971 && t.Year() <= 2100
}
