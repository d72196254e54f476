// Package textutil provides the text canonicalization and low-level
// extraction helpers shared by every stage of the pipeline.
package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// Characters that corrupt delimited output. Replaced with spaces
	// before whitespace collapsing so Normalize stays idempotent.
	unsafeChars = regexp.MustCompile(`["\n\r\t]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes free text: NFC unicode normalization, unsafe
// characters replaced with spaces, whitespace runs collapsed to a
// single space, leading/trailing whitespace trimmed. Empty input
// yields an empty string. Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = norm.NFC.String(text)
	text = unsafeChars.ReplaceAllString(text, " ")
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

var wordPattern = regexp.MustCompile(`[a-z0-9]+`)

// Tokenize splits text into lower-cased alphanumeric word tokens in
// document order. Punctuation is discarded.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// WordSet returns the distinct lower-cased words of text.
func WordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(text) {
		set[tok] = struct{}{}
	}
	return set
}
