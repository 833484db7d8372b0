package util

import (
	"bytes"
	"fmt"
	"strings"
)

// GetLineAndColumn maps a byte offset in src to a 1 based line and rune column.
func GetLineAndColumn(src string, pos int) (line int, column int) {
	line = 1
	column = 1
	for i, char := range src {
		if i >= pos {
			break
		}
		if char == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return
}

// GetContextLines renders up to two lines before the one holding pos, then
// that line with a caret under the offending rune.
func GetContextLines(src string, pos int, message string) string {
	var result bytes.Buffer

	errorLine, errorCol := GetLineAndColumn(src, pos)
	lines := strings.Split(src, "\n")

	// Show 2 lines before the error line (if available)
	startLine := errorLine - 2
	if startLine < 1 {
		startLine = 1
	}

	for i := startLine; i <= errorLine && i <= len(lines); i++ {
		lineContent := lines[i-1]

		if i == errorLine {
			margin := fmt.Sprintf("  >  %3d | ", i)
			result.WriteString(fmt.Sprintf("%s%s\n", margin, lineContent))
			prefix := margin + prefixRunes(lineContent, errorCol-1)
			result.WriteString(fmt.Sprintf("%s^ %s", replaceVisibleWithSpaces(prefix), message))
		} else {
			result.WriteString(fmt.Sprintf("     %3d | %s\n", i, lineContent))
		}
	}

	return result.String()
}

func prefixRunes(s string, n int) string {
	runes := []rune(s)
	if n > len(runes) {
		n = len(runes)
	}
	return string(runes[:n])
}

// replaceVisibleWithSpaces replaces all non-whitespace characters with spaces
// while preserving tabs for correct alignment.
func replaceVisibleWithSpaces(s string) string {
	var buf bytes.Buffer
	for _, c := range s {
		if c == '\t' {
			buf.WriteRune('\t')
		} else {
			buf.WriteRune(' ')
		}
	}
	return buf.String()
}
