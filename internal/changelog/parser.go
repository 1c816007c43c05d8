package changelog

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/ariel-frischer/relcut/internal/span"
)

// ParseError is a changelog authoring contract violation. These are never
// guessed around: a changelog that does not follow the expected section
// structure aborts the whole run.
type ParseError struct {
	Path    string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

var (
	unreleasedHeading = regexp.MustCompile(`(?i)^\[unreleased\]$`)
	versionHeading    = regexp.MustCompile(`^\[(\d+\.\d+\.\d+)\]`)
)

const unreleasedKey = "Unreleased"

// Load reads and parses the changelog at path.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading changelog %s: %w", path, err)
	}
	return Parse(path, raw)
}

// Parse parses raw changelog bytes. Sections are opened by headings whose
// text is "[Unreleased]" (case-insensitive) or starts with "[x.y.z]"; each
// section may hold at most one content block. path is used for error context
// only.
func Parse(path string, raw []byte) (*File, error) {
	doc := goldmark.New().Parser().Parse(gtext.NewReader(raw))

	headerEnds := make(map[string]int)
	bodySpans := make(map[string]span.Span)

	current := ""
	active := false

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if n.Kind() == ast.KindHeading {
			heading := strings.TrimSpace(headingText(n, raw))
			switch {
			case unreleasedHeading.MatchString(heading):
				current, active = unreleasedKey, true
				headerEnds[current] = headingEnd(n, raw)
			case versionHeading.MatchString(heading):
				current, active = versionHeading.FindStringSubmatch(heading)[1], true
				headerEnds[current] = headingEnd(n, raw)
			default:
				active = false
			}
			continue
		}
		if !active {
			continue
		}
		if _, taken := bodySpans[current]; taken {
			return nil, &ParseError{
				Path:    path,
				Message: fmt.Sprintf("section [%s] should contain a single content block", current),
			}
		}
		s, ok := nodeSpan(n, raw)
		if !ok {
			return nil, &ParseError{
				Path:    path,
				Message: fmt.Sprintf("cannot determine content range for section [%s]", current),
			}
		}
		bodySpans[current] = s
	}

	if _, ok := headerEnds[unreleasedKey]; !ok {
		return nil, &ParseError{Path: path, Message: "no unreleased section located"}
	}

	sections := make(map[string]Section, len(headerEnds))
	for key, end := range headerEnds {
		if s, ok := bodySpans[key]; ok {
			sections[key] = Section{Span: s, Body: string(raw[s.Start:s.End])}
		} else {
			// No content: a zero-width span right below the heading, clamped
			// to end of document when the heading is the last content.
			point := end + 1
			if point > len(raw) {
				point = len(raw)
			}
			sections[key] = Section{Span: span.Span{Start: point, End: point}}
		}
	}

	unreleased := sections[unreleasedKey]
	delete(sections, unreleasedKey)

	return &File{
		Path:       path,
		Raw:        string(raw),
		Unreleased: unreleased,
		Released:   sections,
	}, nil
}

// headingText joins a heading's source segments (the text after the
// "#" markers, trimmed by the parser).
func headingText(n ast.Node, raw []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(raw[seg.Start:seg.Stop])
	}
	return b.String()
}

// headingEnd returns the byte offset just past the heading text.
func headingEnd(n ast.Node, raw []byte) int {
	lines := n.Lines()
	if lines.Len() == 0 {
		return len(raw)
	}
	return lines.At(lines.Len() - 1).Stop
}

// nodeSpan returns the source range of one content block, expanded to whole
// lines: leaf segments exclude list markers, and the final line may or may
// not carry its newline depending on what follows it.
func nodeSpan(n ast.Node, raw []byte) (span.Span, bool) {
	start, stop := -1, -1
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || c.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		lines := c.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if start == -1 || seg.Start < start {
				start = seg.Start
			}
			if seg.Stop > stop {
				stop = seg.Stop
			}
		}
		return ast.WalkContinue, nil
	})
	if start == -1 {
		return span.Span{}, false
	}

	for start > 0 && raw[start-1] != '\n' {
		start--
	}
	if stop > 0 && raw[stop-1] != '\n' {
		for stop < len(raw) && raw[stop] != '\n' {
			stop++
		}
		if stop < len(raw) {
			stop++
		}
	}
	return span.Span{Start: start, End: stop}, true
}
