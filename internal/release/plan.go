// Package release holds the cross-package planning logic: the repo-wide
// fixed-version invariant, bump arithmetic, and the construction of the
// span-level edits that a release writes back. All parsing and planning
// completes before the first write, so a failure in any package leaves the
// tree untouched.
package release

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/ariel-frischer/relcut/internal/changelog"
	"github.com/ariel-frischer/relcut/internal/manifest"
	"github.com/ariel-frischer/relcut/internal/span"
)

// Package pairs one directory's manifest and changelog.
type Package struct {
	Dir       string
	Manifest  *manifest.File
	Changelog *changelog.File
}

// LoadPackage reads the manifest and changelog of one package directory.
func LoadPackage(dir, manifestName, changelogName string) (Package, error) {
	m, err := manifest.Load(filepath.Join(dir, manifestName))
	if err != nil {
		return Package{}, err
	}
	c, err := changelog.Load(filepath.Join(dir, changelogName))
	if err != nil {
		return Package{}, err
	}
	return Package{Dir: dir, Manifest: m, Changelog: c}, nil
}

// FixedVersion returns the single version shared by every package. When the
// packages disagree the error enumerates each manifest path with its version
// so the operator can reconcile.
func FixedVersion(pkgs []Package) (*semver.Version, error) {
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages to release")
	}

	distinct := make(map[string]struct{})
	lines := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		distinct[p.Manifest.Version.String()] = struct{}{}
		lines = append(lines, fmt.Sprintf("  %s (%s)", p.Manifest.Path, p.Manifest.Version))
	}
	if len(distinct) != 1 {
		sort.Strings(lines)
		return nil, fmt.Errorf("not all packages share the same version:\n%s", strings.Join(lines, "\n"))
	}
	return pkgs[0].Manifest.Version, nil
}

// Edit is one whole-file replacement produced by splicing spans of the
// original content.
type Edit struct {
	Path    string
	Content string
}

// PackagePlan is the pair of edits for one package.
type PackagePlan struct {
	ID        string
	Manifest  Edit
	Changelog Edit
}

// Plan is the full set of edits for a release run. Created once, never
// mutated, only executed.
type Plan struct {
	From     *semver.Version
	To       *semver.Version
	Packages []PackagePlan
}

// Build verifies the cross-package invariants and constructs every edit.
// Packages are ordered by id for stable output; the edits themselves are
// independent.
func Build(pkgs []Package, bump Bump, today time.Time) (*Plan, error) {
	from, err := FixedVersion(pkgs)
	if err != nil {
		return nil, err
	}
	to := NextVersion(from, bump)

	local := make(map[string]bool, len(pkgs))
	for _, p := range pkgs {
		if local[p.Manifest.ID] {
			return nil, fmt.Errorf("duplicate package id %q", p.Manifest.ID)
		}
		local[p.Manifest.ID] = true
	}

	ordered := make([]Package, len(pkgs))
	copy(ordered, pkgs)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Manifest.ID < ordered[j].Manifest.ID })

	plan := &Plan{From: from, To: to}
	for _, p := range ordered {
		plan.Packages = append(plan.Packages, PackagePlan{
			ID:        p.Manifest.ID,
			Manifest:  Edit{Path: p.Manifest.Path, Content: manifestContent(p.Manifest, to, local)},
			Changelog: Edit{Path: p.Changelog.Path, Content: changelogContent(p.Changelog, to, today)},
		})
	}
	return plan, nil
}

// Apply writes every edit back, reporting progress per file. Any write
// failure is fatal to the run.
func (p *Plan) Apply(progress io.Writer) error {
	for _, pkg := range p.Packages {
		if err := os.WriteFile(pkg.Manifest.Path, []byte(pkg.Manifest.Content), 0o644); err != nil {
			return fmt.Errorf("writing manifest %s: %w", pkg.Manifest.Path, err)
		}
		fmt.Fprintf(progress, "updated version %s -> %s: %s\n", p.From, p.To, pkg.Manifest.Path)

		if err := os.WriteFile(pkg.Changelog.Path, []byte(pkg.Changelog.Content), 0o644); err != nil {
			return fmt.Errorf("writing changelog %s: %w", pkg.Changelog.Path, err)
		}
		fmt.Fprintf(progress, "added changelog entry [%s]: %s\n", p.To, pkg.Changelog.Path)
	}
	return nil
}

// manifestContent replaces the package's own version span and the span of
// every dependency-group entry whose id is a local package. Spans address
// the original buffer, so patches apply right to left. A desynchronized
// local pin is overwritten unconditionally; entries with non-local ids are
// untouched.
func manifestContent(m *manifest.File, to *semver.Version, local map[string]bool) string {
	spans := []span.Span{m.VersionSpan}
	for _, g := range m.Groups {
		if local[g.ID] {
			spans = append(spans, g.Span)
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start > spans[j].Start })

	out := m.Raw
	quoted := `"` + to.String() + `"`
	for _, s := range spans {
		out = span.Patch(out, s, quoted)
	}
	return out
}

// changelogContent replaces the pending span with the new dated header and
// the prior pending content (or the placeholder), normalizing to one blank
// line around the inserted block and one trailing newline.
func changelogContent(c *changelog.File, to *semver.Version, today time.Time) string {
	header := fmt.Sprintf("## [%s] %s", to, today.Format("2006-01-02"))
	entry := strings.TrimSpace(header + "\n\n" + c.Unreleased.Rendered())
	before := strings.TrimSpace(c.Raw[:c.Unreleased.Span.Start])
	after := strings.TrimSpace(c.Raw[c.Unreleased.Span.End:])

	doc := before + "\n\n" + entry + "\n\n" + after
	return strings.TrimRight(doc, " \t\n") + "\n"
}
