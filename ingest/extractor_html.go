package ingest

import (
	"bytes"
	"fmt"
	"net/url"

	readability "github.com/go-shiori/go-readability"
)

var _ Extractor = HTMLExtractor{}

// HTMLExtractor extracts readable article text from HTML using
// go-readability, dropping navigation, scripts, and boilerplate.
type HTMLExtractor struct{}

func (HTMLExtractor) Extract(content []byte) (string, error) {
	// Uploads have no origin URL; readability only uses it to absolutize links.
	base, _ := url.Parse("about:blank")
	article, err := readability.FromReader(bytes.NewReader(content), base)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	return collapseWhitespace(article.TextContent), nil
}
