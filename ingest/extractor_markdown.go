package ingest

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
)

var _ Extractor = MarkdownExtractor{}

// MarkdownExtractor strips markdown formatting by walking the goldmark AST
// and keeping only text content. Code block contents are preserved as-is.
type MarkdownExtractor struct{}

func (MarkdownExtractor) Extract(content []byte) (string, error) {
	doc := goldmark.New().Parser().Parse(gtext.NewReader(content))

	var buf strings.Builder
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				buf.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(content))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.FencedCodeBlock:
			writeBlockLines(&buf, content, node)
		case *ast.CodeBlock:
			writeBlockLines(&buf, content, node)
		case *ast.AutoLink:
			buf.Write(node.URL(content))
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return "", err
	}
	return collapseWhitespace(buf.String()), nil
}

// linedBlock is the subset of block nodes that carry raw source lines.
type linedBlock interface {
	Lines() *gtext.Segments
}

func writeBlockLines(buf *strings.Builder, source []byte, node linedBlock) {
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
}
