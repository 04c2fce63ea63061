package buffer

import "strings"

// Lines splits s into lines on LF. A CR directly before the LF is dropped;
// a lone CR is ordinary content.
// A trailing line break does not produce an extra empty line, and an empty
// string has no lines.
func Lines(s string) []string {
	if s == "" {
		return nil
	}
	s = NormalizeLineEndings(s)
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// LineCount returns len(Lines(s)).
func LineCount(s string) int {
	if s == "" {
		return 0
	}
	s = strings.TrimSuffix(NormalizeLineEndings(s), "\n")
	return strings.Count(s, "\n") + 1
}

// NormalizeLineEndings converts CRLF line endings to LF. A lone CR is left
// in place.
func NormalizeLineEndings(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
