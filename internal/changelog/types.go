// Package changelog reads Keep-a-Changelog style Markdown files as a
// sequence of version-keyed sections with byte-exact source spans. The parse
// is a locator: release rewrites splice the returned spans into the original
// text, so untouched sections keep their formatting byte for byte.
package changelog

import "github.com/ariel-frischer/relcut/internal/span"

// Placeholder is rendered for sections that have no recorded changes yet.
const Placeholder = "- No Changes"

// Section is one heading-delimited region of a changelog. Span covers the
// content between the section heading and the next heading; for a section
// with no content yet it is zero-width, positioned immediately after the
// heading, so an edit at the span inserts without deleting anything.
type Section struct {
	Span span.Span

	// Body is the verbatim source text of the section content. Empty means
	// the section has no content yet.
	Body string
}

// Rendered returns the section content for display or re-insertion: the
// verbatim body, or the placeholder when the section is empty.
func (s Section) Rendered() string {
	if s.Body == "" {
		return Placeholder
	}
	return s.Body
}

// File is a parsed changelog together with its original bytes. Constructed
// once per read, immutable afterwards.
type File struct {
	Path string
	Raw  string

	// Unreleased is the pending section (heading "[Unreleased]").
	Unreleased Section

	// Released maps version strings ("x.y.z") to their sections. Used by the
	// report path only; the release-write path never mutates these.
	Released map[string]Section
}
