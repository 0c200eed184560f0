package ui

import (
	"strings"
	"unicode/utf8"
)

const (
	maxErrorLines  = 2
	errorPrefix    = "Error: "
	minErrorWidth  = 10
	truncationMark = "..."
)

// formatErrorForDisplay wraps an error to the terminal width, keeping at
// most maxErrorLines lines and marking truncation with "..."
func formatErrorForDisplay(err error, maxWidth int) string {
	if err == nil {
		return ""
	}

	words := strings.Fields(err.Error())
	if len(words) == 0 {
		return errorPrefix + "unknown error"
	}

	width := max(maxWidth, minErrorWidth)
	// The prefix takes room on the first line only
	lineWidth := max(width-utf8.RuneCountInString(errorPrefix), minErrorWidth)

	var lines []string
	var line strings.Builder
	truncated := false
	for _, word := range words {
		n := utf8.RuneCountInString(line.String())
		if n > 0 && n+1+utf8.RuneCountInString(word) > lineWidth {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = width
			if len(lines) == maxErrorLines {
				truncated = true
				break
			}
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 && len(lines) < maxErrorLines {
		lines = append(lines, line.String())
	}

	if truncated {
		last := []rune(lines[len(lines)-1])
		keep := width - utf8.RuneCountInString(truncationMark)
		if len(last) > keep && keep > 0 {
			last = last[:keep]
		}
		lines[len(lines)-1] = string(last) + truncationMark
	}

	return errorPrefix + strings.Join(lines, "\n")
}
