package ingest

import (
	"strings"
	"testing"
)

func TestContentTypeFromExtension(t *testing.T) {
	cases := []struct {
		ext  string
		want ContentType
	}{
		{"md", TypeMarkdown},
		{"markdown", TypeMarkdown},
		{"MD", TypeMarkdown},
		{"html", TypeHTML},
		{"htm", TypeHTML},
		{"pdf", TypePDF},
		{"PDF", TypePDF},
		{"txt", TypePlainText},
		{"csv", TypePlainText},
		{"", TypePlainText},
	}
	for _, tc := range cases {
		if got := ContentTypeFromExtension(tc.ext); got != tc.want {
			t.Errorf("ContentTypeFromExtension(%q) = %v, want %v", tc.ext, got, tc.want)
		}
	}
}

func TestExtractorFor(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"report.pdf", "*ingest.PDFExtractor"},
		{"notes.md", "ingest.MarkdownExtractor"},
		{"page.html", "ingest.HTMLExtractor"},
		{"data.txt", "ingest.PlainTextExtractor"},
		{"no-extension", "ingest.PlainTextExtractor"},
	}
	for _, tc := range cases {
		e := ExtractorFor(tc.filename)
		if got := typeName(e); got != tc.want {
			t.Errorf("ExtractorFor(%q) = %s, want %s", tc.filename, got, tc.want)
		}
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *PDFExtractor:
		return "*ingest.PDFExtractor"
	case MarkdownExtractor:
		return "ingest.MarkdownExtractor"
	case HTMLExtractor:
		return "ingest.HTMLExtractor"
	case PlainTextExtractor:
		return "ingest.PlainTextExtractor"
	default:
		return "unknown"
	}
}

func TestPlainTextExtract(t *testing.T) {
	got, err := PlainTextExtractor{}.Extract([]byte("hello\nworld"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "hello\nworld" {
		t.Errorf("Extract = %q", got)
	}
}

func TestMarkdownExtractStripsFormatting(t *testing.T) {
	md := "# Heading\n\nSome **bold** and *italic* text.\n\n- item one\n- item two\n"
	got, err := MarkdownExtractor{}.Extract([]byte(md))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	for _, want := range []string{"Heading", "Some bold and italic text.", "item one", "item two"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %q", want, got)
		}
	}
	for _, banned := range []string{"#", "**", "- item"} {
		if strings.Contains(got, banned) {
			t.Errorf("formatting %q leaked into %q", banned, got)
		}
	}
}

func TestMarkdownExtractKeepsCodeBlocks(t *testing.T) {
	md := "Intro.\n\n```go\nfunc main() {}\n```\n"
	got, err := MarkdownExtractor{}.Extract([]byte(md))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(got, "func main() {}") {
		t.Errorf("code block content missing from %q", got)
	}
	if strings.Contains(got, "```") {
		t.Errorf("code fence leaked into %q", got)
	}
}

func TestPDFExtractRejectsGarbage(t *testing.T) {
	_, err := (&PDFExtractor{}).Extract([]byte("this is not a pdf"))
	if err == nil {
		t.Error("expected error for non-PDF bytes")
	}
}

func TestCollapseWhitespace(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"a\n\n\n\nb", "a\n\nb"},
		{"  a  \n b ", "a\nb"},
		{"\n\na\n\n", "a"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := collapseWhitespace(tc.in); got != tc.want {
			t.Errorf("collapseWhitespace(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
