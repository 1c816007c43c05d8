package release

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ariel-frischer/relcut/internal/changelog"
)

// PendingSections collects each package's pending section, keyed by id.
func PendingSections(pkgs []Package) map[string]*changelog.Section {
	sections := make(map[string]*changelog.Section, len(pkgs))
	for _, p := range pkgs {
		s := p.Changelog.Unreleased
		sections[p.Manifest.ID] = &s
	}
	return sections
}

// ReleasedSections collects each package's section for one released version,
// keyed by id. Packages whose changelog has no such section map to nil.
func ReleasedSections(pkgs []Package, version string) map[string]*changelog.Section {
	sections := make(map[string]*changelog.Section, len(pkgs))
	for _, p := range pkgs {
		if s, ok := p.Changelog.Released[version]; ok {
			sections[p.Manifest.ID] = &s
		} else {
			sections[p.Manifest.ID] = nil
		}
	}
	return sections
}

// StrictReport aggregates sections across packages, omitting packages with
// no recorded content.
func StrictReport(sections map[string]*changelog.Section) string {
	return buildReport(sections, false)
}

// SummaryReport aggregates sections across packages, substituting the
// placeholder for packages with no recorded content.
func SummaryReport(sections map[string]*changelog.Section) string {
	return buildReport(sections, true)
}

func buildReport(sections map[string]*changelog.Section, includeEmpty bool) string {
	ids := make([]string, 0, len(sections))
	for id := range sections {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var parts []string
	for _, id := range ids {
		s := sections[id]
		if s == nil {
			continue
		}
		if s.Body == "" && !includeEmpty {
			continue
		}
		parts = append(parts, fmt.Sprintf("## %s\n\n%s", id, strings.TrimSpace(s.Rendered())))
	}

	return strings.TrimSpace(strings.Join(parts, "\n\n")) + "\n"
}
