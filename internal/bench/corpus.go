// Package bench provides benchmarking utilities for language segmentation.
package bench

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jamesainslie/go-langseg"
)

// Header contains metadata parsed from a corpus file header.
type Header struct {
	Source string
	Title  string
}

// ParseHeader extracts metadata from header comments.
// Returns the header, remaining text after header, and any error.
func ParseHeader(text string) (Header, string, error) {
	var h Header
	scanner := bufio.NewScanner(strings.NewReader(text))
	var bodyStart int
	var lineEnd int

	for scanner.Scan() {
		line := scanner.Text()
		lineEnd += len(line) + 1 // +1 for newline

		if !strings.HasPrefix(line, "#") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			bodyStart = lineEnd - len(line) - 1
			break
		}
		bodyStart = lineEnd

		line = strings.TrimPrefix(line, "# ")
		if value, ok := strings.CutPrefix(line, "Source:"); ok {
			h.Source = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "Title:"); ok {
			h.Title = strings.TrimSpace(value)
		}
	}

	if err := scanner.Err(); err != nil {
		return Header{}, "", fmt.Errorf("scan header: %w", err)
	}

	if h.Source == "" {
		return Header{}, "", errors.New("missing Source in header")
	}

	if bodyStart > len(text) {
		bodyStart = len(text)
	}
	return h, strings.TrimSpace(text[bodyStart:]), nil
}

// ParseAnnotated reads one annotated line such as
// "[zh]你也喜欢[ja]まいご[zh]吗？" into gold spans. A tag applies until the
// next tag; "[x]" marks text the segmenter is expected to drop.
func ParseAnnotated(line string) ([]langseg.Span, error) {
	if !strings.HasPrefix(line, "[") {
		return nil, errors.New("annotation must start with a [lang] tag")
	}

	var spans []langseg.Span
	rest := line
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if !strings.HasPrefix(rest, "[") || end < 2 {
			return nil, fmt.Errorf("malformed tag at %q", rest)
		}
		lang := rest[1:end]
		rest = rest[end+1:]

		next := strings.IndexByte(rest, '[')
		if next < 0 {
			next = len(rest)
		}
		if next == 0 {
			return nil, fmt.Errorf("empty span for tag %q", lang)
		}
		spans = append(spans, langseg.Span{Lang: lang, Text: rest[:next]})
		rest = rest[next:]
	}
	return spans, nil
}

// FormatAnnotated renders spans in the annotated line format.
func FormatAnnotated(spans []langseg.Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString("[")
		b.WriteString(s.Lang)
		b.WriteString("]")
		b.WriteString(s.Text)
	}
	return b.String()
}

// Case is one annotated line.
type Case struct {
	Line int
	Text string
	Gold []langseg.Span
}

// Document represents a loaded corpus file.
type Document struct {
	ID     string // filename without extension
	Source string
	Title  string
	Cases  []Case
}

// LoadDocument loads and parses a corpus file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	header, body, err := ParseHeader(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}

	base := filepath.Base(path)
	doc := &Document{
		ID:     strings.TrimSuffix(base, filepath.Ext(base)),
		Source: header.Source,
		Title:  header.Title,
	}

	for i, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		gold, err := ParseAnnotated(line)
		if err != nil {
			return nil, fmt.Errorf("body line %d: %w", i+1, err)
		}
		var text strings.Builder
		for _, s := range gold {
			text.WriteString(s.Text)
		}
		doc.Cases = append(doc.Cases, Case{Line: i + 1, Text: text.String(), Gold: gold})
	}

	return doc, nil
}

// LoadCorpus loads all .txt corpus files from a directory.
func LoadCorpus(dir string) ([]*Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}

	var docs []*Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != ".txt" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		doc, err := LoadDocument(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", entry.Name(), err)
		}
		docs = append(docs, doc)
	}

	return docs, nil
}
