package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TableSyntax(t *testing.T) {
	src := `[package]
id = "test"
version = "0.8.16"
`
	f, err := Parse("/p/package.toml", []byte(src))
	require.NoError(t, err)

	assert.Equal(t, "test", f.ID)
	assert.Equal(t, "0.8.16", f.Version.String())
	assert.Equal(t, `"0.8.16"`, f.VersionSpan.Text(f.Raw))
	assert.Empty(t, f.Groups)
}

func TestParse_DottedAndInlineSyntax(t *testing.T) {
	tests := map[string]string{
		"dotted": "package.id = \"test\"\npackage.version = \"1.2.3\"\n",
		"inline": "package = { id = \"test\", version = \"1.2.3\" }\n",
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := Parse("/p/package.toml", []byte(src))
			require.NoError(t, err)
			assert.Equal(t, "1.2.3", f.Version.String())
			assert.Equal(t, `"1.2.3"`, f.VersionSpan.Text(f.Raw))
		})
	}
}

func TestParse_OrderGroups(t *testing.T) {
	src := `[package]
id = "test"
version = "0.0.2"

[[order]]
[[order.group]]
id = "dep-a"
version = "0.0.2"

[[order.group]]
id = "other/external"
version = "2.0.0"
optional = true
`
	f, err := Parse("/p/package.toml", []byte(src))
	require.NoError(t, err)
	require.Len(t, f.Groups, 2)

	assert.Equal(t, "dep-a", f.Groups[0].ID)
	assert.Equal(t, "0.0.2", f.Groups[0].Version)
	assert.Equal(t, "other/external", f.Groups[1].ID)
	assert.Equal(t, "2.0.0", f.Groups[1].Version)

	for _, g := range f.Groups {
		assert.Equal(t, `"`+g.Version+`"`, g.Span.Text(f.Raw))
	}
	// The package version span is distinct from the group spans even though
	// dep-a declares the same version string.
	assert.NotEqual(t, f.VersionSpan, f.Groups[0].Span)
	assert.Equal(t, strings.Index(src, `"0.0.2"`), f.VersionSpan.Start)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]struct {
		src      string
		contains string
	}{
		"malformed toml": {
			src:      "[package\nversion = \"1.0.0\"\n",
			contains: "parsing manifest",
		},
		"missing id": {
			src:      "[package]\nversion = \"1.0.0\"\n",
			contains: "missing package id",
		},
		"missing version": {
			src:      "[package]\nid = \"test\"\n",
			contains: "missing package version",
		},
		"version declared with quoted key": {
			// Structurally valid, but not one of the three supported
			// surface syntaxes for the version declaration.
			src:      "[package]\nid = \"test\"\n\"version\" = \"1.0.0\"\n",
			contains: "locating version",
		},
		"unparsable version": {
			src:      "[package]\nid = \"test\"\nversion = \"not-a-version\"\n",
			contains: "parsing version",
		},
		"group entry missing version": {
			src:      "[package]\nid = \"test\"\nversion = \"1.0.0\"\n[[order]]\n[[order.group]]\nid = \"dep-a\"\n",
			contains: "needs both id and version",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("/p/package.toml", []byte(tc.src))
			require.Error(t, err)
			if tc.contains != "" {
				assert.Contains(t, err.Error(), tc.contains)
			}
			assert.Contains(t, err.Error(), "/p/package.toml")
		})
	}
}

func TestParse_DuplicateTableIsInputError(t *testing.T) {
	// Two [package] tables are invalid TOML; the structural pass rejects the
	// document before any span work happens.
	src := "[package]\nid = \"a\"\nversion = \"1.0.0\"\n[package]\nid = \"b\"\nversion = \"2.0.0\"\n"
	_, err := Parse("/p/package.toml", []byte(src))
	require.Error(t, err)
}
