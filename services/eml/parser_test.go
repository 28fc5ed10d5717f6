package eml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-pober/actslaw-rag/internal/logger"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	l := logger.NewAppLogger(&logger.Config{DevMode: true})
	l.InitLogger()
	return l
}

const sampleMessage = "From: Jane Smith <jane@example.com>\r\n" +
	"To: billing@client.com, ops@client.com\r\n" +
	"Cc: archive@firm.example\r\n" +
	"Subject: Invoice #100\r\n" +
	"Date: Fri, 01 Mar 2024 15:04:05 +0000\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/mixed; boundary=\"outer\"\r\n" +
	"\r\n" +
	"--outer\r\n" +
	"Content-Type: text/plain; charset=us-ascii\r\n" +
	"\r\n" +
	"Please remit payment.\r\n" +
	"--outer\r\n" +
	"Content-Type: application/pdf\r\n" +
	"Content-Disposition: attachment; filename=\"statement.pdf\"\r\n" +
	"Content-Transfer-Encoding: base64\r\n" +
	"\r\n" +
	"JVBERi0xLjQgZmFrZQ==\r\n" +
	"--outer--\r\n"

func TestParseMultipartMessage(t *testing.T) {
	parser := NewParser(testLogger(t))
	email := parser.Parse([]byte(sampleMessage))

	require.NotNil(t, email)
	assert.False(t, email.Diagnostic)
	assert.False(t, email.Degraded())

	assert.Equal(t, "Invoice #100", email.Subject)
	assert.Equal(t, "jane@example.com", email.From)
	assert.Equal(t, "billing@client.com; ops@client.com", email.To)
	assert.Equal(t, "archive@firm.example", email.Cc)
	assert.Contains(t, email.Date, "01 Mar 2024")
	assert.Equal(t, "Please remit payment.", email.Body)
	assert.NotEmpty(t, email.HTMLBody)

	require.Len(t, email.Attachments, 1)
	assert.Equal(t, "statement.pdf", email.Attachments[0].FileName)
	assert.Equal(t, 0, email.Attachments[0].DataID)
}

func TestAttachmentData(t *testing.T) {
	parser := NewParser(testLogger(t))

	data, err := parser.AttachmentData([]byte(sampleMessage), 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)

	_, err = parser.AttachmentData([]byte(sampleMessage), 3)
	assert.Error(t, err)

	_, err = parser.AttachmentData(nil, 0)
	assert.Error(t, err)
}

func TestParseGarbageDegrades(t *testing.T) {
	parser := NewParser(testLogger(t))

	email := parser.Parse([]byte{0x00, 0x01, 0x02})
	require.NotNil(t, email)
	if email.Diagnostic {
		assert.True(t, email.Degraded())
		assert.Contains(t, email.Body, "This message could not be displayed.")
	}
}
