package ingestion

import (
	"regexp"
	"strings"
)

// horizontalSpace is trimmed from line edges; PDF text often carries NBSP.
const horizontalSpace = " \t\u00a0"

var (
	inlineWhitespace = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	excessBlankLines = regexp.MustCompile(`\n{3,}`)
)

// bulletPrefixes are list markers produced by editors and PDF extraction.
var bulletPrefixes = []string{"- ", "* ", "• ", "· ", "▪ ", "– "}

// CleanText normalizes extracted document text while preserving its structure:
// line endings become LF, runs of spaces collapse, headings and bullets keep
// their markers and at most one blank line separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u200b", "")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := excessBlankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	line = strings.TrimRight(line, horizontalSpace)
	trimmed := strings.TrimLeft(line, horizontalSpace)
	if trimmed == "" {
		return ""
	}

	// Headings lose their indentation.
	if strings.HasPrefix(trimmed, "#") {
		return inlineWhitespace.ReplaceAllString(trimmed, " ")
	}

	indent := ""
	if n := len(line) - len(trimmed); n > 0 {
		indent = strings.Repeat(" ", n)
	}

	if isBulletLine(trimmed) {
		return indent + trimmed
	}
	return indent + inlineWhitespace.ReplaceAllString(trimmed, " ")
}

func isBulletLine(line string) bool {
	for _, p := range bulletPrefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
