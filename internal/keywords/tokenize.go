// Package keywords provides the text primitives used for keyword matching:
// word tokenization, stop-word filtering, stemming and a small TF-IDF corpus.
package keywords

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxShortTokenLength is the longest token length that is discarded as noise.
const maxShortTokenLength = 2

// wordSeparator matches runs of characters that cannot be part of a word.
var wordSeparator = regexp.MustCompile(`[^A-Za-zА-Яа-я0-9_]+`)

// Tokenize splits text on word boundaries. Case is preserved and empty tokens are dropped.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	parts := wordSeparator.Split(text, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Extract returns the lowercased keyword tokens of text in order of appearance.
// Tokens of two characters or fewer and stop words are discarded; duplicates are kept.
func Extract(text string) []string {
	tokens := Tokenize(text)
	keywords := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		lower := strings.ToLower(tok)
		if utf8.RuneCountInString(lower) <= maxShortTokenLength || IsStopWord(lower) {
			continue
		}
		keywords = append(keywords, lower)
	}
	return keywords
}

// Unique returns tokens with later duplicates removed, preserving first-seen order.
func Unique(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
