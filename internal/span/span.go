// Package span provides half-open byte ranges into immutable text buffers
// and the single splice operation used for in-place document rewrites.
package span

import "fmt"

// Span is a half-open byte range [Start, End) into a specific text buffer.
// A span is only meaningful together with the buffer it was located in.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span is zero-width.
func (s Span) Empty() bool { return s.Start == s.End }

// Text returns the slice of raw covered by the span.
func (s Span) Text(raw string) string { return raw[s.Start:s.End] }

// Valid reports whether the span addresses raw.
func (s Span) Valid(raw string) bool {
	return s.Start >= 0 && s.Start <= s.End && s.End <= len(raw)
}

// Patch returns raw with the span substituted by replacement and every other
// byte unchanged. Spans always originate from a locator run over the same
// buffer, so an out-of-bounds span is an invariant violation and Patch panics
// rather than returning an error.
func Patch(raw string, s Span, replacement string) string {
	if !s.Valid(raw) {
		panic(fmt.Sprintf("span [%d,%d) out of bounds for buffer of %d bytes", s.Start, s.End, len(raw)))
	}
	return raw[:s.Start] + replacement + raw[s.End:]
}
