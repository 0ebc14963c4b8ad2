// Package extract turns raw document bytes into the flattened text consumed
// by pattern extraction and content sniffing.
package extract

import (
	"bytes"
	"strings"
)

var (
	pdfMagic = []byte("%PDF")
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}
)

// IsPDF reports whether content looks like a PDF file.
func IsPDF(content []byte) bool { return bytes.HasPrefix(content, pdfMagic) }

// IsSpreadsheet reports whether content looks like an xlsx archive.
func IsSpreadsheet(content []byte) bool { return bytes.HasPrefix(content, zipMagic) }

// IsLegacyWorkbook reports whether content looks like an OLE compound
// document, the container of pre-2007 .xls workbooks.
func IsLegacyWorkbook(content []byte) bool { return bytes.HasPrefix(content, oleMagic) }

// Flatten returns the plain text of a document. PDF bytes go through page
// text extraction; anything else is treated as text already.
func Flatten(content []byte) (string, error) {
	if IsPDF(content) {
		return pdfText(content)
	}
	return strings.ReplaceAll(string(content), "\r\n", "\n"), nil
}

// NormalizeSpace collapses horizontal whitespace runs into single spaces
// and drops empty lines. Line breaks survive: patterns rely on `.` not
// crossing them, which keeps a lazy description group from swallowing
// neighboring lines.
func NormalizeSpace(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			lines = append(lines, strings.Join(fields, " "))
		}
	}
	return strings.Join(lines, "\n")
}

// Prefix returns at most limit runes of s, for cheap content sniffing.
func Prefix(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
