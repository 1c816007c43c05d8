package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryNames(t *testing.T) {
	names := map[ErrorCategory]string{
		Argument:  "Argument Error",
		Input:     "Input Error",
		Structure: "Structure Error",
		Invariant: "Invariant Error",
		Output:    "Output Error",
		Runtime:   "Runtime Error",
	}
	for cat, want := range names {
		assert.Equal(t, want, cat.String())
	}
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, Input))

	wrapped := Wrap(fmt.Errorf("boom"), Structure, "check the file")
	assert.Equal(t, Structure, wrapped.Category)
	assert.Equal(t, "boom", wrapped.Error())
	assert.Equal(t, []string{"check the file"}, wrapped.Remediation)
}

func TestWrapWithMessage(t *testing.T) {
	wrapped := WrapWithMessage(fmt.Errorf("boom"), Output, "writing manifest")
	assert.Equal(t, "writing manifest: boom", wrapped.Error())
}

func TestFormatErrorPlain(t *testing.T) {
	err := NewArgumentErrorWithUsage("missing --bump", "relcut prepare --bump <major|minor|patch>", "pass --bump")
	out := FormatErrorPlain(err)

	assert.Contains(t, out, "Error [Argument Error]: missing --bump")
	assert.Contains(t, out, "Usage: relcut prepare --bump")
	assert.Contains(t, out, "To fix this:")
	assert.Contains(t, out, "• pass --bump")
}

func TestAsCLIError(t *testing.T) {
	assert.Nil(t, AsCLIError(fmt.Errorf("plain")))
	cliErr := NewArgumentError("bad")
	assert.Equal(t, cliErr, AsCLIError(cliErr))
}
