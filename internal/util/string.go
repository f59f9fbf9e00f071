// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// UNICODE: all widths are display columns as reported by go-runewidth, so
// wide CJK runes count as 2.

// WrapLines soft-wraps s to width columns. Hard line breaks are kept, words
// are broken at spaces where possible and words wider than a line are split.
// It always returns at least one line.
func WrapLines(s string, width int) []string {
	if width <= 0 {
		return strings.Split(s, "\n")
	}
	var out []string
	for _, line := range strings.Split(s, "\n") {
		out = append(out, wrapLine(line, width)...)
	}
	return out
}

// CountLines returns len(WrapLines(s, width)) without keeping the lines.
func CountLines(s string, width int) int {
	return len(WrapLines(s, width))
}

func wrapLine(line string, width int) []string {
	if runewidth.StringWidth(line) <= width {
		return []string{line}
	}

	var (
		out  []string
		cur  strings.Builder
		curW int
	)
	for _, word := range strings.SplitAfter(line, " ") {
		trimmed := runewidth.StringWidth(strings.TrimRight(word, " "))
		if curW > 0 && curW+trimmed > width {
			out = append(out, strings.TrimRight(cur.String(), " "))
			cur.Reset()
			curW = 0
		}
		for trimmed > width {
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			out = append(out, head)
			word = word[len(head):]
			trimmed = runewidth.StringWidth(strings.TrimRight(word, " "))
		}
		cur.WriteString(word)
		curW += runewidth.StringWidth(word)
	}
	if cur.Len() > 0 || len(out) == 0 {
		out = append(out, strings.TrimRight(cur.String(), " "))
	}
	return out
}

// TruncateWidth truncates s to maxWidth display columns, appending "..."
// when something was cut.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
