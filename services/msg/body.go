package msg

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jaytaylor/html2text"
)

var (
	lineEndingRegex   = regexp.MustCompile(`\r\n?`)
	trailingWSRegex   = regexp.MustCompile(`[ \t]+\n`)
	blankRunRegex     = regexp.MustCompile(`\n{3,}`)
	inlineWSRegex     = regexp.MustCompile(`[ \t]{2,}`)
	scriptStyleRegex  = regexp.MustCompile(`(?is)<(script|style)\b.*?</(script|style)>`)
	tagRegex          = regexp.MustCompile(`(?s)<[^>]*>`)
	blockBreakRegex   = regexp.MustCompile(`(?i)<(?:br\s*/?|/p|/div|/tr|/li|/h[1-6])>`)
	eventAttrRegex    = regexp.MustCompile(`(?i)\s+on\w+\s*=\s*(?:"[^"]*"|'[^']*'|[^\s>]+)`)
	urlRegex          = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>"']+`)
	boldTagRegex      = regexp.MustCompile(`(?i)</?(?:b|strong)(?:\s[^>]*)?>`)
)

// CleanBodyText normalizes a plain-text body: consistent line endings,
// no trailing whitespace, at most one consecutive blank line, and inline
// whitespace runs collapsed to a single space. Visible text is left
// unchanged.
func CleanBodyText(body string) string {
	if body == "" {
		return ""
	}
	body = lineEndingRegex.ReplaceAllString(body, "\n")
	body = trailingWSRegex.ReplaceAllString(body, "\n")
	body = blankRunRegex.ReplaceAllString(body, "\n\n")
	body = inlineWSRegex.ReplaceAllString(body, " ")
	return strings.TrimSpace(body)
}

// SanitizeHTML strips script and style subtrees (tags and content) and
// inline on* event-handler attributes. The result may be injected into a
// rendering surface without further escaping, so nothing executable may
// survive.
func SanitizeHTML(htmlBody string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return sanitizeHTMLFallback(htmlBody)
	}

	doc.Find("script, style").Each(func(i int, el *goquery.Selection) {
		el.Remove()
	})

	doc.Find("*").Each(func(i int, el *goquery.Selection) {
		if len(el.Nodes) == 0 {
			return
		}
		var eventAttrs []string
		for _, attr := range el.Nodes[0].Attr {
			if strings.HasPrefix(strings.ToLower(attr.Key), "on") {
				eventAttrs = append(eventAttrs, attr.Key)
			}
		}
		for _, key := range eventAttrs {
			el.RemoveAttr(key)
		}
	})

	sanitized, err := doc.Find("body").Html()
	if err != nil {
		return sanitizeHTMLFallback(htmlBody)
	}
	return strings.TrimSpace(sanitized)
}

// sanitizeHTMLFallback is the regex path for markup goquery refuses to
// parse. Coarser than the DOM walk but upholds the same guarantee.
func sanitizeHTMLFallback(htmlBody string) string {
	htmlBody = scriptStyleRegex.ReplaceAllString(htmlBody, "")
	htmlBody = eventAttrRegex.ReplaceAllString(htmlBody, "")
	return strings.TrimSpace(htmlBody)
}

// deriveTextFromHTML produces a plain-text body from an HTML one, used
// when the message carries no plain-text part. Bold tags are unwrapped
// first: html2text's text-only mode punctuates bold runs with a period,
// which would leave stray periods mid-sentence.
func deriveTextFromHTML(htmlBody string) string {
	text, err := html2text.FromString(boldTagRegex.ReplaceAllString(htmlBody, ""), html2text.Options{TextOnly: true})
	if err == nil {
		return text
	}
	// manual strip: block-level closes become breaks, remaining tags
	// drop, and the common entities decode
	text = scriptStyleRegex.ReplaceAllString(htmlBody, "")
	text = blockBreakRegex.ReplaceAllString(text, "\n")
	text = tagRegex.ReplaceAllString(text, "")
	return decodeEntities(text)
}

// decodeEntities decodes the minimal entity set that shows up in MSG
// HTML bodies.
func decodeEntities(text string) string {
	replacer := strings.NewReplacer(
		"&nbsp;", " ",
		"&lt;", "<",
		"&gt;", ">",
		"&#39;", "'",
		"&quot;", `"`,
		"&amp;", "&",
	)
	return replacer.Replace(text)
}

// LinkifyBody turns a cleaned plain-text body into HTML-safe markup with
// URL-like substrings converted to anchors. URLs are protected with
// placeholders before escaping and newline conversion so neither step
// can corrupt them; the plain body itself is never modified.
func LinkifyBody(cleanBody string) string {
	if cleanBody == "" {
		return ""
	}

	var urls []string
	protected := urlRegex.ReplaceAllStringFunc(cleanBody, func(match string) string {
		urls = append(urls, match)
		return fmt.Sprintf("\x00LINK%d\x00", len(urls)-1)
	})

	escaped := html.EscapeString(protected)
	escaped = strings.ReplaceAll(escaped, "\n", "<br/>")

	for i, url := range urls {
		placeholder := fmt.Sprintf("\x00LINK%d\x00", i)
		href := url
		if strings.HasPrefix(strings.ToLower(href), "www.") {
			href = "http://" + href
		}
		anchor := fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener">%s</a>`, html.EscapeString(href), html.EscapeString(url))
		escaped = strings.Replace(escaped, placeholder, anchor, 1)
	}

	return escaped
}
