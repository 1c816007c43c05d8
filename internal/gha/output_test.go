package gha

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOutput_FallbackWriter(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")

	var sb strings.Builder
	require.NoError(t, SetOutput(&sb, "from_version", "1.2.3"))
	assert.Equal(t, "from_version=1.2.3\n", sb.String())
}

func TestSetOutput_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	t.Setenv("GITHUB_OUTPUT", path)

	var sb strings.Builder
	require.NoError(t, SetOutput(&sb, "from_version", "1.2.3"))
	require.NoError(t, SetOutput(&sb, "to_version", "1.3.0"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from_version=1.2.3\nto_version=1.3.0\n", string(content))
	assert.Empty(t, sb.String())
}

func TestSetOutput_MultilineUsesHeredoc(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output")
	t.Setenv("GITHUB_OUTPUT", path)

	require.NoError(t, SetOutput(nil, "changelog", "## a\n\n- change a.1\n"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "changelog<<EOF\n## a\n\n- change a.1\nEOF\n", string(content))
}

func TestEncode_DelimiterCollision(t *testing.T) {
	out := encode("body", "first\nEOF\nlast")
	assert.Equal(t, "body<<EOF_\nfirst\nEOF\nlast\nEOF_\n", out)
}
