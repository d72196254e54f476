package nlp

import (
	"regexp"
	"strings"

	"github.com/jonesrussell/crimewatch/internal/textutil"
)

// methodKeywords mark the "how" of an incident. The first occurrence
// wins; its surrounding context becomes the method description.
var methodKeywords = map[string]bool{
	"weapon": true, "gun": true, "knife": true, "shooting": true,
	"stabbing": true, "beating": true, "strangling": true,
	"poisoning": true, "bombing": true, "arson": true,
	"breaking": true, "entering": true, "climbing": true, "jumping": true,
}

// contextWindow is the number of words kept on each side of a method
// keyword hit.
const contextWindow = 3

// Motivation patterns tried in order against the lower-cased text:
// causal phrasing followed within a bounded window by a motive noun.
var motivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:because|due to|motivated by|reason|motive)[\s\w]*?(?:money|drugs?|revenge|jealousy|anger|dispute|robbery|theft)`),
	regexp.MustCompile(`(?:over|about|regarding)[\s\w]*?(?:money|drugs?|relationship|property|debt)`),
	regexp.MustCompile(`(?:domestic|family|personal)[\s\w]*?(?:dispute|violence|conflict)`),
}

// MethodMotive extracts the "how" and "why" of an incident.
type MethodMotive struct{}

// NewMethodMotive creates a method/motivation extractor.
func NewMethodMotive() *MethodMotive {
	return &MethodMotive{}
}

// Extract returns the method context window and the motivation match
// text. Either may be empty; nothing here ever fails.
func (e *MethodMotive) Extract(text string) (how, why string) {
	return e.method(text), e.motive(text)
}

// method scans words in order for the first method keyword and
// returns a normalized window of ±3 words around it.
func (e *MethodMotive) method(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		if !methodKeywords[strings.ToLower(strings.Trim(word, `.,;:!?"'()`))] {
			continue
		}
		start := i - contextWindow
		if start < 0 {
			start = 0
		}
		end := i + contextWindow + 1
		if end > len(words) {
			end = len(words)
		}
		return textutil.Normalize(strings.Join(words[start:end], " "))
	}
	return ""
}

// motive returns the first motivation pattern's full match.
func (e *MethodMotive) motive(text string) string {
	lower := strings.ToLower(text)
	for _, re := range motivePatterns {
		if m := re.FindString(lower); m != "" {
			return textutil.Normalize(m)
		}
	}
	return ""
}
