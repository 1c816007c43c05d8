package release

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Bump selects which component of the version increments. Lower components
// reset to zero.
type Bump int

const (
	BumpMajor Bump = iota
	BumpMinor
	BumpPatch
)

// ParseBump parses a bump coordinate from its flag value.
func ParseBump(s string) (Bump, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major":
		return BumpMajor, nil
	case "minor":
		return BumpMinor, nil
	case "patch":
		return BumpPatch, nil
	default:
		return 0, fmt.Errorf("invalid bump coordinate %q (expected: major, minor or patch)", s)
	}
}

func (b Bump) String() string {
	switch b {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	case BumpPatch:
		return "patch"
	default:
		return "unknown"
	}
}

// NextVersion computes the version after applying the bump coordinate to v.
func NextVersion(v *semver.Version, b Bump) *semver.Version {
	var next semver.Version
	switch b {
	case BumpMajor:
		next = v.IncMajor()
	case BumpMinor:
		next = v.IncMinor()
	default:
		next = v.IncPatch()
	}
	return &next
}
