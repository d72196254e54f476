package textutil

import (
	"regexp"
	"strconv"
)

// Date patterns tried in order; the first match wins. Month-name
// patterns are matched case-insensitively.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
	regexp.MustCompile(`\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`),
	regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}\b`),
}

// ExtractDate returns the first date-like substring found in text, or
// "" when none of the known formats appear.
func ExtractDate(text string) string {
	for _, p := range datePatterns {
		if m := p.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

var numberPattern = regexp.MustCompile(`\b\d+\b`)

// ExtractNumbers returns every standalone unsigned integer in text, in
// document order. Tokens too large for an int are skipped.
func ExtractNumbers(text string) []int {
	var nums []int
	for _, m := range numberPattern.FindAllString(text, -1) {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	return nums
}

// Monetary amount patterns tried in order. The match is returned
// verbatim, never parsed: "$5,000" and "5000 dollars" are both valid
// economic_loss values.
var moneyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`),
	regexp.MustCompile(`(?i)\b\d+\s*(?:dollars?|bucks?)\b`),
	regexp.MustCompile(`(?i)\b(?:USD)\s*\d+\b`),
}

// ExtractMoney returns the first monetary amount found in text as
// matched, or "" when none is present.
func ExtractMoney(text string) string {
	for _, p := range moneyPatterns {
		if m := p.FindString(text); m != "" {
			return m
		}
	}
	return ""
}
