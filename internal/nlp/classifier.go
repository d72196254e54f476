package nlp

import (
	"strings"

	"github.com/jonesrussell/crimewatch/internal/textutil"
)

// CrimeCategory pairs a category name with its ordered trigger
// phrases. Phrases are matched case-insensitively as whole tokens in
// sequence: "armed robbery" requires the adjacent tokens "armed" then
// "robbery", never a substring hit.
type CrimeCategory struct {
	Name    string
	Phrases []string
}

// DefaultCrimeCategories returns the fixed classification table.
func DefaultCrimeCategories() []CrimeCategory {
	return []CrimeCategory{
		{Name: "robbery", Phrases: []string{"robbery", "robbed", "rob", "heist", "armed robbery"}},
		{Name: "theft", Phrases: []string{"theft", "stealing", "stolen", "stole", "shoplifting"}},
		{Name: "burglary", Phrases: []string{"burglary", "burglar", "break in", "broke into"}},
		{Name: "assault", Phrases: []string{"assault", "assaulted", "attack", "attacked", "beating", "beaten"}},
		{Name: "murder", Phrases: []string{"murder", "killed", "homicide", "manslaughter", "fatal"}},
		{Name: "shooting", Phrases: []string{"shooting", "shot", "gunfire", "firearm", "gun"}},
		{Name: "stabbing", Phrases: []string{"stabbing", "stabbed", "knife attack"}},
		{Name: "vandalism", Phrases: []string{"vandalism", "vandalized", "graffiti", "damaged", "destroyed"}},
		{Name: "fraud", Phrases: []string{"fraud", "scam", "embezzlement", "forgery", "identity theft"}},
		{Name: "drug", Phrases: []string{"drug", "narcotics", "cocaine", "heroin", "marijuana", "meth", "fentanyl"}},
		{Name: "domestic_violence", Phrases: []string{"domestic violence", "domestic abuse", "family violence"}},
		{Name: "sexual_assault", Phrases: []string{"sexual assault", "rape", "sexual abuse"}},
		{Name: "arson", Phrases: []string{"arson", "set fire", "deliberately lit"}},
		{Name: "kidnapping", Phrases: []string{"kidnapping", "kidnapped", "abduction", "abducted"}},
		{Name: "carjacking", Phrases: []string{"carjacking", "carjacked"}},
		{Name: "weapons", Phrases: []string{"weapons offence", "weapons charge", "illegal firearm", "prohibited weapon"}},
		{Name: "trafficking", Phrases: []string{"trafficking", "human trafficking", "smuggling"}},
		{Name: "hit_and_run", Phrases: []string{"hit and run", "fled the scene"}},
		{Name: "cybercrime", Phrases: []string{"hacking", "hacked", "ransomware", "phishing", "cyberattack"}},
		{Name: "gang", Phrases: []string{"gang violence", "gang related", "street gang"}},
	}
}

type compiledCategory struct {
	name    string
	phrases [][]string
}

// CrimeTypeClassifier is a multi-category whole-token phrase matcher.
// Stateless after construction; tables are fixed at constructor time
// rather than hidden in package globals so tests can build variants.
type CrimeTypeClassifier struct {
	categories []compiledCategory
}

// NewCrimeTypeClassifier compiles the category table. Phrases are
// tokenized once up front.
func NewCrimeTypeClassifier(categories []CrimeCategory) *CrimeTypeClassifier {
	compiled := make([]compiledCategory, 0, len(categories))
	for _, cat := range categories {
		cc := compiledCategory{name: cat.Name}
		for _, phrase := range cat.Phrases {
			toks := textutil.Tokenize(phrase)
			if len(toks) > 0 {
				cc.phrases = append(cc.phrases, toks)
			}
		}
		compiled = append(compiled, cc)
	}
	return &CrimeTypeClassifier{categories: compiled}
}

// Classify returns the matched category names, deduplicated, ordered
// by the position of each category's first matching phrase in the
// text. No confidence is produced; membership only.
func (c *CrimeTypeClassifier) Classify(text string) []string {
	tokens := textutil.Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	type hit struct {
		name string
		pos  int
	}
	var hits []hit
	for _, cat := range c.categories {
		pos := c.firstMatch(tokens, cat.phrases)
		if pos >= 0 {
			hits = append(hits, hit{name: cat.name, pos: pos})
		}
	}
	if len(hits) == 0 {
		return nil
	}

	// Insertion-order sort by first match position; category table
	// order breaks ties.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].pos < hits[j-1].pos; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	names := make([]string, len(hits))
	for i, h := range hits {
		names[i] = h.name
	}
	return names
}

// firstMatch returns the earliest token index where any phrase
// matches, or -1.
func (c *CrimeTypeClassifier) firstMatch(tokens []string, phrases [][]string) int {
	best := -1
	for _, phrase := range phrases {
		for i := 0; i+len(phrase) <= len(tokens); i++ {
			if tokensMatch(tokens[i:], phrase) {
				if best == -1 || i < best {
					best = i
				}
				break
			}
		}
	}
	return best
}

func tokensMatch(tokens, phrase []string) bool {
	for i, p := range phrase {
		if !strings.EqualFold(tokens[i], p) {
			return false
		}
	}
	return true
}
