package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var _ Extractor = (*PDFExtractor)(nil)

// PDFExtractor extracts plain text from PDF documents using ledongthuc/pdf
// (pure Go, no CGO). Text is concatenated page by page; unreadable pages
// are skipped.
type PDFExtractor struct{}

// NewPDFExtractor creates a PDF extractor.
func NewPDFExtractor() *PDFExtractor { return &PDFExtractor{} }

// Extract extracts the plain text of every readable page, joined by
// blank lines.
func (e *PDFExtractor) Extract(content []byte) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("empty PDF content")
	}
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	var text strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		if text.Len() > 0 {
			text.WriteString("\n\n")
		}
		text.WriteString(pageText)
	}
	return strings.TrimSpace(text.String()), nil
}
