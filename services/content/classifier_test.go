package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-pober/actslaw-rag/dto"
	"github.com/alex-pober/actslaw-rag/internal/enum"
	"github.com/alex-pober/actslaw-rag/internal/logger"
)

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	l := logger.NewAppLogger(&logger.Config{DevMode: true})
	l.InitLogger()
	return l
}

func newTestClassifier(t *testing.T) (*classifierService, *handleStore) {
	t.Helper()
	store := NewHandleStore().(*handleStore)
	svc := NewClassifierService(store, testLogger(t)).(*classifierService)
	return svc, store
}

var (
	pdfBytes = []byte("%PDF-1.7\nfake document body")
	oleBytes = append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 24)...)
	zipBytes = []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00, 0x06, 0x00}
)

func TestClassifyOctetStreamSniffing(t *testing.T) {
	svc, _ := newTestClassifier(t)
	ctx := context.Background()

	tests := []struct {
		name string
		data []byte
		want enum.ContentKind
	}{
		{"pdf signature", pdfBytes, enum.ContentPDF},
		{"ole signature", oleBytes, enum.ContentMSGEmail},
		{"zip signature", zipBytes, enum.ContentDOCX},
		{"no signature", []byte{0x01, 0x02, 0x03, 0x04}, enum.ContentGenericBinary},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := svc.Classify(ctx, dto.ClassifyInput{
				Data:             tc.data,
				DeclaredMimeType: "application/octet-stream",
			})
			assert.Equal(t, tc.want, result.Kind)
		})
	}
}

func TestClassifyExtensionWins(t *testing.T) {
	svc, _ := newTestClassifier(t)
	ctx := context.Background()

	// .docx beats the ZIP sniff and the declared type
	result := svc.Classify(ctx, dto.ClassifyInput{
		Data:             zipBytes,
		DeclaredMimeType: "application/octet-stream",
		FileNameHint:     "Retainer Agreement.DOCX",
	})
	assert.Equal(t, enum.ContentDOCX, result.Kind)

	result = svc.Classify(ctx, dto.ClassifyInput{
		Data:             oleBytes,
		DeclaredMimeType: "application/octet-stream",
		FileNameHint:     "fwd message.msg",
	})
	assert.Equal(t, enum.ContentMSGEmail, result.Kind)
	assert.Equal(t, oleBytes, result.SourceBytes)

	result = svc.Classify(ctx, dto.ClassifyInput{
		Data:             oleBytes,
		DeclaredMimeType: "application/octet-stream",
		FileNameHint:     "old pleading.doc",
	})
	assert.Equal(t, enum.ContentLegacyDoc, result.Kind)
	assert.Equal(t, "application/msword", result.CorrectedMimeType)
}

func TestClassifyDeclaredTypes(t *testing.T) {
	svc, _ := newTestClassifier(t)
	ctx := context.Background()

	pdf := svc.Classify(ctx, dto.ClassifyInput{Data: pdfBytes, DeclaredMimeType: "application/pdf"})
	assert.Equal(t, enum.ContentPDF, pdf.Kind)
	assert.Equal(t, "application/pdf", pdf.CorrectedMimeType)

	image := svc.Classify(ctx, dto.ClassifyInput{
		Data:             []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
		DeclaredMimeType: "image/png",
	})
	assert.Equal(t, enum.ContentImage, image.Kind)
	assert.Equal(t, "image/png", image.CorrectedMimeType)

	text := svc.Classify(ctx, dto.ClassifyInput{
		Data:             []byte("Deposition transcript, page one."),
		DeclaredMimeType: "text/plain; charset=utf-8",
	})
	assert.Equal(t, enum.ContentPlainText, text.Kind)
	assert.Equal(t, "Deposition transcript, page one.", text.InlineText)
	assert.Empty(t, text.HandleID)
}

func TestClassifyUndeclaredTextFallback(t *testing.T) {
	svc, _ := newTestClassifier(t)

	result := svc.Classify(context.Background(), dto.ClassifyInput{
		Data: []byte("readable content with no declared type"),
	})
	assert.Equal(t, enum.ContentPlainText, result.Kind)
}

func TestClassifyUnknown(t *testing.T) {
	svc, store := newTestClassifier(t)

	result := svc.Classify(context.Background(), dto.ClassifyInput{
		Data:             []byte{0x00, 0x01, 0x02},
		DeclaredMimeType: "application/x-mystery",
	})
	assert.Equal(t, enum.ContentUnknown, result.Kind)
	assert.True(t, result.DownloadOnly())
	assert.Empty(t, result.HandleID)
	assert.Equal(t, 0, store.Len())
}

func TestClassifyHandleRoundTrip(t *testing.T) {
	svc, store := newTestClassifier(t)

	result := svc.Classify(context.Background(), dto.ClassifyInput{
		Data:             pdfBytes,
		DeclaredMimeType: "application/pdf",
		FileNameHint:     "exhibit-a.pdf",
	})

	require.NotEmpty(t, result.HandleID)
	assert.Equal(t, "/v1/render/"+result.HandleID, result.RenderURL)

	handle, err := store.Get(result.HandleID)
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, handle.Data)
	assert.Equal(t, len(pdfBytes), result.SizeBytes)
	assert.Equal(t, "application/pdf", handle.ContentType)
}

func TestClassifyPDFTextFrameRecovery(t *testing.T) {
	svc, store := newTestClassifier(t)
	ctx := context.Background()

	// binary payload coerced into a text frame: each code unit is one
	// raw byte, so the recovered stream must be byte-for-byte identical
	corrupt := "%PDF-1.4\nÿÓstream"
	result := svc.Classify(ctx, dto.ClassifyInput{
		TextData:         corrupt,
		DeclaredMimeType: "application/pdf",
	})
	assert.Equal(t, enum.ContentPDF, result.Kind)

	handle, err := store.Get(result.HandleID)
	require.NoError(t, err)
	want := []byte("%PDF-1.4\n")
	want = append(want, 0x01, 0xFF, 0xD3)
	want = append(want, []byte("stream")...)
	assert.Equal(t, want, handle.Data)

	// clean text frames are encoded as-is
	clean := "%PDF-1.4\nclean body"
	result = svc.Classify(ctx, dto.ClassifyInput{
		TextData:         clean,
		DeclaredMimeType: "application/pdf",
	})
	handle, err = store.Get(result.HandleID)
	require.NoError(t, err)
	assert.Equal(t, []byte(clean), handle.Data)
}

func TestClassifyEmptyInput(t *testing.T) {
	svc, _ := newTestClassifier(t)

	result := svc.Classify(context.Background(), dto.ClassifyInput{})
	require.NotNil(t, result)
	assert.Equal(t, 0, result.SizeBytes)
}
