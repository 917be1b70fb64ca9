// Package ingest converts raw uploads to plain text and splits the text
// into chunks suitable for embedding.
package ingest

import (
	"path/filepath"
	"strings"
)

// Extractor converts raw content to plain text.
type Extractor interface {
	Extract(content []byte) (string, error)
}

// ContentType identifies the MIME type of content for extraction.
type ContentType string

const (
	TypePlainText ContentType = "text/plain"
	TypeHTML      ContentType = "text/html"
	TypeMarkdown  ContentType = "text/markdown"
	TypePDF       ContentType = "application/pdf"
)

// ContentTypeFromExtension maps file extensions to content types.
func ContentTypeFromExtension(ext string) ContentType {
	switch strings.ToLower(ext) {
	case "md", "markdown":
		return TypeMarkdown
	case "html", "htm":
		return TypeHTML
	case "pdf":
		return TypePDF
	default:
		return TypePlainText
	}
}

// ExtractorFor picks an extractor from the file name's extension.
// Unknown extensions fall back to plain text.
func ExtractorFor(filename string) Extractor {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	switch ContentTypeFromExtension(ext) {
	case TypePDF:
		return &PDFExtractor{}
	case TypeMarkdown:
		return MarkdownExtractor{}
	case TypeHTML:
		return HTMLExtractor{}
	default:
		return PlainTextExtractor{}
	}
}

// PlainTextExtractor returns content as-is.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Extract(content []byte) (string, error) {
	return string(content), nil
}

// collapseWhitespace trims lines and collapses runs of blank lines down to
// at most one.
func collapseWhitespace(text string) string {
	var result strings.Builder
	emptyCount := 0

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if result.Len() > 0 {
				emptyCount++
			}
			continue
		}
		if emptyCount > 0 {
			result.WriteByte('\n')
			if emptyCount > 1 {
				result.WriteByte('\n')
			}
		} else if result.Len() > 0 {
			result.WriteByte('\n')
		}
		result.WriteString(trimmed)
		emptyCount = 0
	}

	return strings.TrimSpace(result.String())
}
