package msg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanBodyText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "windows and mac line endings normalize",
			in:   "one\r\ntwo\rthree",
			want: "one\ntwo\nthree",
		},
		{
			name: "trailing whitespace stripped",
			in:   "one   \ntwo\t\nthree",
			want: "one\ntwo\nthree",
		},
		{
			name: "blank runs collapse to a single blank line",
			in:   "one\n\n\n\n\ntwo",
			want: "one\n\ntwo",
		},
		{
			name: "inline whitespace runs collapse",
			in:   "spaced    out\ttext  here",
			want: "spaced out\ttext here",
		},
		{
			name: "already clean text unchanged",
			in:   "Please remit payment.",
			want: "Please remit payment.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanBodyText(tc.in))
		})
	}
}

func TestCleanBodyTextIdempotent(t *testing.T) {
	in := "one  \r\n\r\n\r\n\r\ntwo   three\rfour"
	once := CleanBodyText(in)
	assert.Equal(t, once, CleanBodyText(once))
}

func TestSanitizeHTML(t *testing.T) {
	in := `<p onclick="steal()">hi</p><script>alert(1)</script><style>p{color:red}</style>`
	got := SanitizeHTML(in)

	assert.Equal(t, "<p>hi</p>", got)
}

func TestSanitizeHTMLKeepsContent(t *testing.T) {
	in := `<div><a href="https://example.com" onmouseover="x()">link</a><b>bold</b></div>`
	got := SanitizeHTML(in)

	assert.Contains(t, got, `href="https://example.com"`)
	assert.Contains(t, got, "<b>bold</b>")
	assert.NotContains(t, got, "onmouseover")
}

func TestSanitizeHTMLFallback(t *testing.T) {
	in := `before<script type="text/javascript">bad()</script>after<img src=x onerror="p()">`
	got := sanitizeHTMLFallback(in)

	assert.NotContains(t, got, "bad()")
	assert.NotContains(t, got, "onerror")
	assert.Contains(t, got, "before")
	assert.Contains(t, got, "after")
}

func TestDeriveTextFromHTML(t *testing.T) {
	got := deriveTextFromHTML("<p>Hello <b>world</b></p>")
	assert.Equal(t, "Hello world", got)
}

func TestDeriveTextFromHTMLBoldRuns(t *testing.T) {
	// html2text's text-only mode punctuates bold runs; none of those
	// periods may leak into the derived body
	got := deriveTextFromHTML(`<p><strong>Paid</strong> in <b class="x">full</b> today</p>`)
	assert.Equal(t, "Paid in full today", got)
	assert.NotContains(t, got, ".")
}

func TestLinkifyBody(t *testing.T) {
	got := LinkifyBody("See https://example.com/a?b=1&c=2\nBye & hi")

	assert.Contains(t, got, `<a href="https://example.com/a?b=1&amp;c=2" target="_blank" rel="noopener">`)
	assert.Contains(t, got, "<br/>Bye &amp; hi")
	assert.NotContains(t, got, "\n")
}

func TestLinkifyBodyBareWWW(t *testing.T) {
	got := LinkifyBody("visit www.example.com today")

	assert.Contains(t, got, `href="http://www.example.com"`)
	assert.Contains(t, got, ">www.example.com</a>")
}

func TestLinkifyBodyNoURLs(t *testing.T) {
	assert.Equal(t, "plain text", LinkifyBody("plain text"))
	assert.Equal(t, "", LinkifyBody(""))
}

func TestLinkifyBodyEscapesMarkup(t *testing.T) {
	got := LinkifyBody("<b>not markup</b>")
	assert.NotContains(t, got, "<b>")
	assert.Contains(t, got, "&lt;b&gt;")
}
