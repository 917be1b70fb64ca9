package ingest

import "strings"

// Chunker splits text into chunks suitable for embedding.
type Chunker interface {
	Chunk(text string) []string
}

// ChunkerOption configures a chunker implementation.
type ChunkerOption func(*chunkerConfig)

type chunkerConfig struct {
	maxChars     int
	overlapChars int
}

func defaultChunkerConfig() chunkerConfig {
	return chunkerConfig{maxChars: 500, overlapChars: 20}
}

// WithChunkSize sets the target chunk size in characters.
func WithChunkSize(n int) ChunkerOption {
	return func(c *chunkerConfig) { c.maxChars = n }
}

// WithChunkOverlap sets the overlap between consecutive chunks in characters.
func WithChunkOverlap(n int) ChunkerOption {
	return func(c *chunkerConfig) { c.overlapChars = n }
}

// LineChunker splits text preferentially at newline boundaries, falling
// back to word boundaries for lines longer than the chunk size. Default
// target is 500 characters per chunk with a 20-character overlap.
type LineChunker struct {
	maxChars     int
	overlapChars int
}

var _ Chunker = (*LineChunker)(nil)

// NewLineChunker creates a LineChunker with the given options.
func NewLineChunker(opts ...ChunkerOption) *LineChunker {
	cfg := defaultChunkerConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &LineChunker{maxChars: cfg.maxChars, overlapChars: cfg.overlapChars}
}

// Chunk splits text into overlapping chunks.
func (lc *LineChunker) Chunk(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= lc.maxChars {
		return []string{text}
	}

	var segments []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) <= lc.maxChars {
			segments = append(segments, line)
		} else {
			segments = append(segments, splitOnWords(line, lc.maxChars)...)
		}
	}
	return mergeWithOverlap(segments, lc.maxChars, lc.overlapChars)
}

// splitOnWords breaks a segment at word boundaries, hard-splitting single
// words that exceed maxChars.
func splitOnWords(text string, maxChars int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var segments []string
	var current strings.Builder

	for _, word := range words {
		if len(word) > maxChars {
			if current.Len() > 0 {
				segments = append(segments, current.String())
				current.Reset()
			}
			for i := 0; i < len(word); i += maxChars {
				end := min(i+maxChars, len(word))
				segments = append(segments, word[i:end])
			}
			continue
		}

		needed := len(word)
		if current.Len() > 0 {
			needed = current.Len() + 1 + len(word)
		}
		if needed > maxChars {
			segments = append(segments, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}

	if current.Len() > 0 {
		segments = append(segments, current.String())
	}
	return segments
}

// mergeWithOverlap packs segments into chunks up to maxChars, carrying a
// suffix of each finished chunk into the next as overlap.
func mergeWithOverlap(segments []string, maxChars, overlapChars int) []string {
	if len(segments) == 0 {
		return nil
	}

	var chunks []string
	var current strings.Builder

	for _, seg := range segments {
		needed := len(seg)
		if current.Len() > 0 {
			needed = current.Len() + 1 + len(seg)
		}

		if needed <= maxChars {
			if current.Len() > 0 {
				current.WriteByte('\n')
			}
			current.WriteString(seg)
			continue
		}

		if current.Len() > 0 {
			chunk := current.String()
			chunks = append(chunks, chunk)

			overlap := overlapSuffix(chunk, overlapChars)
			current.Reset()
			if overlap != "" && len(overlap)+1+len(seg) <= maxChars {
				current.WriteString(overlap)
				current.WriteByte('\n')
			}
		}
		current.WriteString(seg)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	var result []string
	for _, c := range chunks {
		if strings.TrimSpace(c) != "" {
			result = append(result, c)
		}
	}
	return result
}

// overlapSuffix returns the last n characters of text, trimmed forward to
// the next word boundary so overlaps never start mid-word.
func overlapSuffix(text string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(text) <= n {
		return text
	}
	suffix := text[len(text)-n:]
	if idx := strings.IndexAny(suffix, " \n"); idx >= 0 {
		return strings.TrimSpace(suffix[idx+1:])
	}
	return strings.TrimSpace(suffix)
}
