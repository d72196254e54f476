package nlp

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonesrussell/crimewatch/internal/textutil"
)

// Counts holds the numeric severity signals. nil means "no signal
// found", which is distinct from zero.
type Counts struct {
	Injuries   *int
	Fatalities *int
	Arrests    *int
}

// tokenPattern is a fixed sequence of token predicates: either a
// literal lower-cased word or any digit token.
type tokenPattern []tokenPred

type tokenPred struct {
	word  string
	digit bool
}

func w(word string) tokenPred { return tokenPred{word: word} }

var digitTok = tokenPred{digit: true}

// Stage 1 matcher patterns. A digit paired with a trigger word in
// either order; patterns without a digit token can match but
// contribute no number.
var (
	injuryTokenPatterns = []tokenPattern{
		{w("injured"), digitTok},
		{digitTok, w("injured")},
		{digitTok, w("victims")},
		{digitTok, w("people"), w("hurt")},
	}
	fatalityTokenPatterns = []tokenPattern{
		{w("killed"), digitTok},
		{digitTok, w("killed")},
		{digitTok, w("dead")},
		{digitTok, w("deaths")},
		{digitTok, w("fatalities")},
	}
	arrestTokenPatterns = []tokenPattern{
		{w("arrested"), digitTok},
		{digitTok, w("arrested")},
		{digitTok, w("suspects")},
		{w("suspect"), w("in"), w("custody")},
	}
)

// Stage 2 regex fallbacks, tried in order against the lower-cased
// text; the first captured number wins. Only consulted when stage 1
// produced nothing for the field.
var (
	injuryRegexps = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s+(?:people\s+)?(?:were\s+)?injured`),
		regexp.MustCompile(`injured\s+(\d+)`),
		regexp.MustCompile(`(\d+)\s+victims?`),
		regexp.MustCompile(`(\d+)\s+people\s+hurt`),
	}
	fatalityRegexps = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s+(?:people\s+)?(?:were\s+)?killed`),
		regexp.MustCompile(`killed\s+(\d+)`),
		regexp.MustCompile(`(\d+)\s+(?:people\s+)?died`),
		regexp.MustCompile(`(\d+)\s+deaths?`),
		regexp.MustCompile(`(\d+)\s+fatalities`),
	}
	arrestRegexps = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s+(?:people\s+)?(?:were\s+)?arrested`),
		regexp.MustCompile(`arrested\s+(\d+)`),
		regexp.MustCompile(`(\d+)\s+suspects?`),
		regexp.MustCompile(`(\d+)\s+in\s+custody`),
	}
)

// CountExtractor resolves injury, fatality and arrest counts.
type CountExtractor struct{}

// NewCountExtractor creates a count extractor.
func NewCountExtractor() *CountExtractor {
	return &CountExtractor{}
}

// Extract runs the two-stage resolution for each field independently.
// Stage 1 keeps the MAXIMUM across all matcher hits; stage 2 fires
// only when stage 1 found nothing and keeps the FIRST regex capture.
func (e *CountExtractor) Extract(text string) Counts {
	tokens := textutil.Tokenize(text)
	lower := strings.ToLower(text)

	return Counts{
		Injuries:   resolveCount(tokens, lower, injuryTokenPatterns, injuryRegexps),
		Fatalities: resolveCount(tokens, lower, fatalityTokenPatterns, fatalityRegexps),
		Arrests:    resolveCount(tokens, lower, arrestTokenPatterns, arrestRegexps),
	}
}

func resolveCount(tokens []string, lower string, patterns []tokenPattern, fallbacks []*regexp.Regexp) *int {
	if v, ok := matchTokenPatterns(tokens, patterns); ok {
		return &v
	}
	for _, re := range fallbacks {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return &n
	}
	return nil
}

// matchTokenPatterns scans every position for every pattern and
// returns the maximum digit value seen inside a matched span.
func matchTokenPatterns(tokens []string, patterns []tokenPattern) (int, bool) {
	best, found := 0, false
	for _, pat := range patterns {
		for i := 0; i+len(pat) <= len(tokens); i++ {
			if !patternAt(tokens, i, pat) {
				continue
			}
			for j := range pat {
				if !pat[j].digit {
					continue
				}
				n, err := strconv.Atoi(tokens[i+j])
				if err != nil {
					continue
				}
				if !found || n > best {
					best, found = n, true
				}
			}
		}
	}
	return best, found
}

func patternAt(tokens []string, i int, pat tokenPattern) bool {
	for j, p := range pat {
		tok := tokens[i+j]
		if p.digit {
			if !isDigits(tok) {
				return false
			}
		} else if tok != p.word {
			return false
		}
	}
	return true
}

func isDigits(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
