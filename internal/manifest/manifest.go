// Package manifest reads package manifests (package.toml). The descriptor is
// produced by two independent passes over the same bytes: a structural decode
// for the field values and a tree-sitter span pass for byte-exact replacement
// ranges. The passes are cross-validated so a query can never silently match
// the wrong occurrence.
package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/ariel-frischer/relcut/internal/span"
	"github.com/ariel-frischer/relcut/internal/tomlspan"
)

// ErrSpanMismatch indicates that the structural decode and the span locator
// disagree about the document, so no replacement range can be trusted.
var ErrSpanMismatch = errors.New("could not determine correct replacement range")

// File is a parsed manifest together with its original bytes and the spans
// that a release rewrite may touch. Constructed once per read, immutable
// afterwards.
type File struct {
	Path    string
	Raw     string
	ID      string
	Version *semver.Version

	// VersionSpan covers the quoted package version string.
	VersionSpan span.Span

	// Groups lists every [[order.group]] dependency entry in document order.
	Groups []GroupRef
}

// GroupRef is one dependency-group entry: the referenced package id, its
// declared version, and the quoted span of that version in Raw.
type GroupRef struct {
	ID      string
	Version string
	Span    span.Span
}

type descriptor struct {
	Package entry        `toml:"package"`
	Order   []orderEntry `toml:"order"`
}

type orderEntry struct {
	Group []entry `toml:"group"`
}

type entry struct {
	ID      string `toml:"id"`
	Version string `toml:"version"`
}

// Load reads and parses the manifest at path.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return Parse(path, raw)
}

// Parse parses raw manifest bytes. path is used for error context only.
func Parse(path string, raw []byte) (*File, error) {
	var d descriptor
	if err := toml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if d.Package.ID == "" {
		return nil, fmt.Errorf("parsing manifest %s: missing package id", path)
	}
	if d.Package.Version == "" {
		return nil, fmt.Errorf("parsing manifest %s: missing package version", path)
	}

	located, err := tomlspan.LocateVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("locating version in %s: %w", path, err)
	}
	if located.Raw != d.Package.Version {
		return nil, fmt.Errorf("%s: %w: structural version %q, located %q",
			path, ErrSpanMismatch, d.Package.Version, located.Raw)
	}

	version, err := semver.StrictNewVersion(d.Package.Version)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q in %s: %w", d.Package.Version, path, err)
	}

	groups, err := groupRefs(path, raw, &d)
	if err != nil {
		return nil, err
	}

	return &File{
		Path:        path,
		Raw:         string(raw),
		ID:          d.Package.ID,
		Version:     version,
		VersionSpan: located.Span,
		Groups:      groups,
	}, nil
}

// groupRefs zips the structural dependency-group entries with the located
// spans and cross-validates them pairwise.
func groupRefs(path string, raw []byte, d *descriptor) ([]GroupRef, error) {
	var structural []entry
	for i, order := range d.Order {
		for j, e := range order.Group {
			if e.ID == "" || e.Version == "" {
				return nil, fmt.Errorf("parsing manifest %s: order[%d].group[%d] needs both id and version", path, i, j)
			}
			structural = append(structural, e)
		}
	}

	located, err := tomlspan.LocateGroupEntries(raw)
	if err != nil {
		return nil, fmt.Errorf("locating dependency groups in %s: %w", path, err)
	}
	if len(located) != len(structural) {
		return nil, fmt.Errorf("%s: %w: %d dependency entries decoded, %d located",
			path, ErrSpanMismatch, len(structural), len(located))
	}

	refs := make([]GroupRef, 0, len(structural))
	for i, e := range structural {
		if located[i].ID != e.ID || located[i].Version.Raw != e.Version {
			return nil, fmt.Errorf("%s: %w: dependency entry %d decoded as %s@%s but located as %s@%s",
				path, ErrSpanMismatch, i, e.ID, e.Version, located[i].ID, located[i].Version.Raw)
		}
		refs = append(refs, GroupRef{
			ID:      e.ID,
			Version: e.Version,
			Span:    located[i].Version.Span,
		})
	}
	return refs, nil
}
