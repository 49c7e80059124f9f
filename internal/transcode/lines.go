// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transcode

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/nbtopy/pkg/types"
)

// SourceLines normalizes a cell source to an ordered list of lines. A string
// source has its escaped "\n" sequences turned into real breaks first.
func SourceLines(src types.CellSource) []string {
	switch src.Kind {
	case types.SourceEscaped:
		return SplitLines(strings.ReplaceAll(src.Text, `\n`, "\n"))
	case types.SourceLines:
		return src.Lines
	default:
		return nil
	}
}

// SplitLines splits s at line boundaries and drops the terminators. A
// trailing terminator does not produce a final empty line, so "a\n" yields
// ["a"] and "" yields none. "\r\n" counts as one boundary.
func SplitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isLineBoundary(r) {
			i += size
			continue
		}
		lines = append(lines, s[start:i])
		i += size
		if r == '\r' && i < len(s) && s[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func isLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// isSpace extends unicode.IsSpace with the information separators
// \x1c-\x1f, matching the whitespace set of str.strip.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

func trimRight(s string) string {
	return strings.TrimRightFunc(s, isSpace)
}
