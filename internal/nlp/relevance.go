package nlp

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// crimeKeywords is the coarse relevance vocabulary used to drop
// obviously non-crime links before the expensive fetch and NLP pass.
// Distinct from both the classification phrase tables and the
// similarity fingerprint vocabulary.
var crimeKeywords = []string{
	"robbery", "theft", "burglary", "vandalism", "murder", "homicide",
	"assault", "battery", "shooting", "stabbing", "arrest", "police",
	"crime", "criminal", "fraud", "embezzlement", "kidnapping", "arson",
	"drug", "trafficking", "violence", "attack", "weapon", "gun",
	"domestic violence", "sexual assault", "rape", "carjacking", "mugging",
}

// KeywordFilter answers "is this text worth processing at all" via an
// Aho-Corasick scan over the crime keyword list.
type KeywordFilter struct {
	matcher *ahocorasick.Matcher
}

// NewKeywordFilter builds the filter over the default keyword list.
func NewKeywordFilter() *KeywordFilter {
	return NewKeywordFilterWith(crimeKeywords)
}

// NewKeywordFilterWith builds a filter over a custom keyword list.
func NewKeywordFilterWith(keywords []string) *KeywordFilter {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return &KeywordFilter{matcher: ahocorasick.NewStringMatcher(lowered)}
}

// Relevant reports whether any crime keyword occurs in text.
func (f *KeywordFilter) Relevant(text string) bool {
	if text == "" {
		return false
	}
	return len(f.matcher.Match([]byte(strings.ToLower(text)))) > 0
}
