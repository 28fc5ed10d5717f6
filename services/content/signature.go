package content

import (
	"bytes"
	"unicode/utf8"
)

// Magic-byte signatures, matched from offset 0. These are the authority
// for binary-kind dispatch; the upstream API routinely mislabels PDFs,
// DOCX and MSG payloads as application/octet-stream or text.
var (
	pdfSignature = []byte("%PDF-")                                            // 25 50 44 46 2D
	oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}     // OLE compound document
	zipSignature = []byte{0x50, 0x4B, 0x03, 0x04}                             // ZIP local file header / OOXML
)

func MatchesPDF(data []byte) bool {
	return bytes.HasPrefix(data, pdfSignature)
}

func MatchesOLE(data []byte) bool {
	return bytes.HasPrefix(data, oleSignature)
}

func MatchesZIP(data []byte) bool {
	return bytes.HasPrefix(data, zipSignature)
}

// IsProbablyText reports whether data decodes as readable text: valid
// UTF-8 with no control bytes other than tab, newline and carriage
// return. Empty buffers count as text.
func IsProbablyText(data []byte) bool {
	if !utf8.Valid(data) {
		return false
	}
	for _, b := range data {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			return false
		}
	}
	return true
}

// ContainsNonPrintable reports whether s has code units outside the
// printable range. Used to decide whether a PDF payload that arrived in
// a text frame must be reinterpreted byte-for-byte rather than UTF-8
// encoded.
func ContainsNonPrintable(s string) bool {
	for _, r := range s {
		if (r < 0x20 && r != '\t' && r != '\n' && r != '\r') || r == 0x7F {
			return true
		}
	}
	return false
}

// ReinterpretText recovers the original byte stream from binary content
// that was coerced into a text frame: each code unit is taken as one raw
// byte. Code points above 0xFF were already corrupted in transit and are
// truncated to their low byte.
func ReinterpretText(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, byte(r))
	}
	return out
}
