// Package gha writes step outputs for GitHub Actions runs. Outputs go to the
// file named by GITHUB_OUTPUT; outside of Actions the values fall back to the
// given writer so local runs stay inspectable.
package gha

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// SetOutput records one step output. Multiline values use the heredoc form
// the Actions runner understands; single-line values use key=value.
func SetOutput(fallback io.Writer, key, value string) error {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		fmt.Fprintf(fallback, "%s=%s\n", key, value)
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening GITHUB_OUTPUT: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(encode(key, value)); err != nil {
		return fmt.Errorf("writing GITHUB_OUTPUT: %w", err)
	}
	return nil
}

func encode(key, value string) string {
	if !strings.Contains(value, "\n") {
		return fmt.Sprintf("%s=%s\n", key, value)
	}

	delimiter := "EOF"
	for strings.Contains(value, delimiter) {
		delimiter += "_"
	}
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", key, delimiter, strings.TrimRight(value, "\n"), delimiter)
}
