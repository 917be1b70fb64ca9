// Package export renders a conversation transcript into a downloadable
// PDF document.
//
// It uses go-pdf/fpdf (pure Go, no CGO). The root package does the
// pairing ("You:" / "Bot:" blocks); this package only lays the rendered
// lines out on pages.
package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	pdfgenie "github.com/ravandi/pdfgenie"
)

// RendererOption configures a PDFRenderer.
type RendererOption func(*PDFRenderer)

// WithTitle sets a document title rendered at the top of the first page.
// Default is no title.
func WithTitle(title string) RendererOption {
	return func(r *PDFRenderer) { r.title = title }
}

// WithFontSize sets the body font size in points. Default is 11.
func WithFontSize(pt float64) RendererOption {
	return func(r *PDFRenderer) { r.fontSize = pt }
}

// PDFRenderer implements pdfgenie.TranscriptRenderer, producing a
// letter-sized PDF with one paragraph per transcript line and spacing
// between question/answer pairs (blank input lines).
type PDFRenderer struct {
	title    string
	fontSize float64
}

var _ pdfgenie.TranscriptRenderer = (*PDFRenderer)(nil)

// NewPDFRenderer creates a renderer with the given options.
func NewPDFRenderer(opts ...RendererOption) *PDFRenderer {
	r := &PDFRenderer{fontSize: 11}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Render lays the lines out on letter pages and returns the PDF bytes.
func (r *PDFRenderer) Render(lines []string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	if r.title != "" {
		doc.SetFont("Helvetica", "B", r.fontSize+4)
		doc.MultiCell(0, 8, r.title, "", "C", false)
		doc.Ln(4)
	}

	doc.SetFont("Helvetica", "", r.fontSize)
	lineHeight := r.fontSize * 0.5
	tr := doc.UnicodeTranslatorFromDescriptor("")
	for _, line := range lines {
		if line == "" {
			doc.Ln(lineHeight)
			continue
		}
		doc.MultiCell(0, lineHeight, tr(line), "", "J", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
