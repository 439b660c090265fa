// Package splitter breaks documents into overlapping chunks sized for
// embedding.
package splitter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hireloop/talentscout/internal/domain"
)

// Break points are tried in order: paragraph, line, word, hard cut.
var separators = []string{"\n\n", "\n", " "}

// Split chunks each document into pieces of at most chunkSize characters
// with chunkOverlap characters shared between adjacent chunks of the same
// document. Documents shorter than chunkSize yield a single chunk. Chunk
// metadata is inherited from the document.
func Split(docs []domain.Document, chunkSize, chunkOverlap int) ([]domain.Chunk, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("chunk overlap %d must be in [0, %d)", chunkOverlap, chunkSize)
	}

	var chunks []domain.Chunk
	for _, doc := range docs {
		for seq, text := range splitText(doc.Text, chunkSize, chunkOverlap) {
			chunks = append(chunks, domain.Chunk{
				Text:   text,
				Source: doc.Source,
				Sheet:  doc.Sheet,
				Seq:    seq,
			})
		}
	}
	return chunks, nil
}

// splitText walks the text in windows of chunkSize runes, cutting at the
// most natural break point inside each window and starting the next chunk
// chunkOverlap runes before the cut. Working in runes keeps hard cuts on
// character boundaries in multi-byte text.
func splitText(text string, chunkSize, chunkOverlap int) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= chunkSize {
		return []string{text}
	}

	var parts []string
	start := 0
	for start < len(runes) {
		end := start + chunkSize
		if end >= len(runes) {
			parts = append(parts, string(runes[start:]))
			break
		}

		cut := breakPoint(runes, start, end, chunkOverlap)
		parts = append(parts, string(runes[start:cut]))
		start = cut - chunkOverlap
	}
	return parts
}

// breakPoint picks the cut position in (start+chunkOverlap, end], in rune
// offsets. It prefers the rightmost paragraph break, then line break,
// then space; a hard cut at end is the fallback. The lower bound keeps
// the next window advancing past the overlap region.
func breakPoint(runes []rune, start, end, chunkOverlap int) int {
	lower := start + chunkOverlap + 1
	window := string(runes[lower:end])
	for _, sep := range separators {
		// Separators are ASCII, so len(sep) counts runes too.
		if idx := strings.LastIndex(window, sep); idx >= 0 {
			return lower + utf8.RuneCountInString(window[:idx]) + len(sep)
		}
	}
	return end
}
