// Package tomlspan locates byte-exact value ranges in TOML documents using a
// tree-sitter parse. Parsing here is a range locator only: callers splice the
// returned spans into the original text instead of re-serializing the tree,
// which preserves comments, formatting, and key order.
package tomlspan

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/toml"

	"github.com/ariel-frischer/relcut/internal/span"
)

// ErrNoVersion indicates that none of the supported version declaration
// shapes was found in the document.
var ErrNoVersion = errors.New("no version found")

// Value is a located quoted TOML string. Span covers the string including its
// quote characters (the range callers replace); Raw is the inner text.
type Value struct {
	Raw  string
	Span span.Span
}

// GroupEntry is one id/version pair from an [[order.group]] element, in
// document order.
type GroupEntry struct {
	ID      string
	Version Value
}

// The three equivalent surface syntaxes for a package.version declaration,
// tried in fixed priority order: table header, dotted key, inline table.
var versionQueries = []string{
	`(table
	   (bare_key) @table
	   (pair (bare_key) @key (string) @value)
	   (#eq? @table "package")
	   (#eq? @key "version"))`,
	`(document
	   (pair (dotted_key) @key (string) @value)
	   (#eq? @key "package.version"))`,
	`(pair
	   (bare_key) @table
	   (inline_table (pair (bare_key) @key (string) @value))
	   (#eq? @table "package")
	   (#eq? @key "version"))`,
}

// LocateVersion returns the value and quoted span of the document's
// package.version field. The query patterns are tried in priority order and
// the first match wins; ErrNoVersion is returned when none match.
func LocateVersion(src []byte) (Value, error) {
	root, err := parse(src)
	if err != nil {
		return Value{}, err
	}

	for _, pattern := range versionQueries {
		q, err := sitter.NewQuery([]byte(pattern), toml.GetLanguage())
		if err != nil {
			return Value{}, fmt.Errorf("compiling version query: %w", err)
		}

		qc := sitter.NewQueryCursor()
		qc.Exec(q, root)

		for {
			match, ok := qc.NextMatch()
			if !ok {
				break
			}
			match = qc.FilterPredicates(match, src)

			for _, c := range match.Captures {
				if q.CaptureNameForId(c.Index) == "value" {
					qc.Close()
					q.Close()
					return newValue(c.Node, src), nil
				}
			}
		}
		qc.Close()
		q.Close()
	}

	return Value{}, ErrNoVersion
}

// LocateGroupEntries returns the id and quoted version span of every
// [[order.group]] element, in document order. Elements without both an id and
// a version pair are returned with the missing field zeroed; callers
// cross-validate against an independent structural pass.
func LocateGroupEntries(src []byte) ([]GroupEntry, error) {
	root, err := parse(src)
	if err != nil {
		return nil, err
	}

	var entries []GroupEntry
	for i := 0; i < int(root.NamedChildCount()); i++ {
		element := root.NamedChild(i)
		if element.Type() != "table_array_element" {
			continue
		}
		header := element.NamedChild(0)
		if header == nil || nodeText(header, src) != "order.group" {
			continue
		}

		var entry GroupEntry
		var hasVersion bool
		for j := 1; j < int(element.NamedChildCount()); j++ {
			pair := element.NamedChild(j)
			if pair.Type() != "pair" || pair.NamedChildCount() < 2 {
				continue
			}
			key := pair.NamedChild(0)
			value := pair.NamedChild(1)
			switch nodeText(key, src) {
			case "id":
				entry.ID = unquote(nodeText(value, src))
			case "version":
				entry.Version = newValue(value, src)
				hasVersion = true
			}
		}
		if entry.ID != "" || hasVersion {
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

func parse(src []byte) (*sitter.Node, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(toml.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	return tree.RootNode(), nil
}

func newValue(node *sitter.Node, src []byte) Value {
	text := nodeText(node, src)
	return Value{
		Raw:  unquote(text),
		Span: span.Span{Start: int(node.StartByte()), End: int(node.EndByte())},
	}
}

func nodeText(node *sitter.Node, src []byte) string {
	return string(src[node.StartByte():node.EndByte()])
}

// unquote strips one layer of surrounding quote characters from a TOML
// string literal.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
