// Package nlp implements the field extraction and classification
// engine: entity recognition and role mapping, crime type
// classification, numeric signal extraction, and method/motivation
// extraction.
package nlp

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/jonesrussell/crimewatch/internal/data"
)

// Entity labels produced by a Recognizer. The role mapper only
// understands this fixed set; anything else is dropped.
const (
	LabelPerson   = "PERSON"
	LabelGPE      = "GPE"
	LabelLocation = "LOC"
	LabelDate     = "DATE"
	LabelTime     = "TIME"
	LabelMoney    = "MONEY"
	LabelCardinal = "CARDINAL"
)

// Entity is a recognized span of text with its label.
type Entity struct {
	Text  string
	Label string
}

// Recognizer is the named-entity recognition collaborator. The engine
// treats it as a black box and only depends on the label constants
// above.
type Recognizer interface {
	Recognize(text string) ([]Entity, error)
}

// LexicalRecognizer is a lexicon and pattern based Recognizer. It
// trades recall for precision: a mention is only reported when a
// gazetteer entry, honorific, or unambiguous surface pattern backs it.
type LexicalRecognizer struct {
	money    *regexp.Regexp
	date     *regexp.Regexp
	clock    *regexp.Regexp
	cardinal *regexp.Regexp
	token    *regexp.Regexp
}

// NewLexicalRecognizer compiles the recognizer's patterns. A compile
// failure here is fatal to the caller: no article can be processed
// without a working recognizer.
func NewLexicalRecognizer() (*LexicalRecognizer, error) {
	r := &LexicalRecognizer{}

	patterns := []struct {
		dst  **regexp.Regexp
		expr string
	}{
		{&r.money, `\$[\d,]+(?:\.\d{2})?|(?i:\b\d+\s*dollars?\b)|(?i:\bUSD\s*\d+\b)`},
		{&r.date, `\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b` +
			`|(?i:\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?\b)` +
			`|(?i:\b\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)(?:\s+\d{4})?\b)` +
			`|(?i:\b(?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)\b)` +
			`|(?i:\b(?:yesterday|today|tonight|tomorrow|last night|last week|this morning|this evening)\b)`},
		{&r.clock, `(?i:\b\d{1,2}(?::\d{2})?\s*(?:a\.m\.|p\.m\.|(?:am|pm)\b))|(?i:\b(?:noon|midnight)\b)`},
		{&r.cardinal, `\b\d+\b`},
		{&r.token, `[A-Za-z][A-Za-z.'-]*`},
	}
	for _, p := range patterns {
		re, err := regexp.Compile(p.expr)
		if err != nil {
			return nil, fmt.Errorf("compile recognizer pattern %q: %w", p.expr, err)
		}
		*p.dst = re
	}

	return r, nil
}

// span is a candidate entity with byte offsets into the input.
type span struct {
	start, end int
	label      string
}

// Recognize returns entities in document order. Overlapping candidates
// are resolved earliest-first, longest-first, so "$5,000" is MONEY and
// its digits never surface again as CARDINAL.
func (r *LexicalRecognizer) Recognize(text string) ([]Entity, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	var spans []span
	collect := func(re *regexp.Regexp, label string) {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			spans = append(spans, span{start: loc[0], end: loc[1], label: label})
		}
	}
	collect(r.money, LabelMoney)
	collect(r.date, LabelDate)
	collect(r.clock, LabelTime)
	collect(r.cardinal, LabelCardinal)
	spans = append(spans, r.nameSpans(text)...)

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].start != spans[j].start {
			return spans[i].start < spans[j].start
		}
		if spans[i].end != spans[j].end {
			return spans[i].end > spans[j].end
		}
		// Same span, different label: keep a stable precedence so
		// results are deterministic.
		return labelRank(spans[i].label) < labelRank(spans[j].label)
	})

	var (
		out  []Entity
		prev int = -1
	)
	for _, s := range spans {
		if s.start < prev {
			continue
		}
		out = append(out, Entity{Text: text[s.start:s.end], Label: s.label})
		prev = s.end
	}
	return out, nil
}

// labelRank orders labels for same-span tie breaks. CARDINAL ranks
// last: a digit is only a bare number when nothing richer claimed it.
func labelRank(label string) int {
	switch label {
	case LabelMoney:
		return 0
	case LabelDate:
		return 1
	case LabelTime:
		return 2
	case LabelPerson, LabelGPE, LabelLocation:
		return 3
	default:
		return 4
	}
}

// nameSpans finds PERSON and GPE candidates from capitalized token
// runs backed by the lexicons.
func (r *LexicalRecognizer) nameSpans(text string) []span {
	locs := r.token.FindAllStringIndex(text, -1)

	var spans []span
	for i := 0; i < len(locs); {
		if !isCapitalized(text[locs[i][0]:locs[i][1]]) {
			i++
			continue
		}

		// Extend the run of adjacent capitalized tokens.
		j := i
		for j+1 < len(locs) &&
			locs[j+1][0]-locs[j][1] <= 2 &&
			isCapitalized(text[locs[j+1][0]:locs[j+1][1]]) {
			j++
		}

		if s, ok := r.classifyRun(text, locs, i, j); ok {
			spans = append(spans, s)
		}
		i = j + 1
	}
	return spans
}

// classifyRun labels the capitalized token run locs[i..j], or rejects
// it when no lexicon supports a reading.
func (r *LexicalRecognizer) classifyRun(text string, locs [][]int, i, j int) (span, bool) {
	runText := func(a, b int) string { return text[locs[a][0]:locs[b][1]] }

	// Honorific immediately before the run marks a person: the
	// honorific itself is part of the run when capitalized.
	first := text[locs[i][0]:locs[i][1]]
	if data.IsHonorific(first) && j > i {
		return span{start: locs[i+1][0], end: locs[j][1], label: LabelPerson}, true
	}

	// Longest gazetteer place match anywhere inside the run.
	for length := j - i + 1; length >= 1; length-- {
		for a := i; a+length-1 <= j; a++ {
			b := a + length - 1
			if data.IsPlace(runText(a, b)) {
				return span{start: locs[a][0], end: locs[b][1], label: LabelGPE}, true
			}
		}
	}

	// Given name starting a multi-token run reads as a full name.
	if j > i && data.IsGivenName(first) {
		return span{start: locs[i][0], end: locs[j][1], label: LabelPerson}, true
	}

	return span{}, false
}

func isCapitalized(tok string) bool {
	for _, r := range tok {
		return unicode.IsUpper(r)
	}
	return false
}
