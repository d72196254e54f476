// Package dedup implements article fingerprinting and the duplicate
// decision policy.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/jonesrussell/crimewatch/internal/textutil"
)

// fieldDelimiter joins hash inputs so field boundaries stay
// unambiguous ("ab"+"c" never collides with "a"+"bc").
const fieldDelimiter = "||"

// termDelimiter joins the similarity signature terms before digesting.
const termDelimiter = "|"

// maxSignatureTerms caps the similarity signature at the first N
// alphabetically sorted vocabulary hits.
const maxSignatureTerms = 10

// canonicalCrimeTerms is the fixed vocabulary for the similarity
// signature. Deliberately small and generic: articles about the same
// event from different outlets tend to share the same few of these.
// Distinct from the classifier's phrase tables.
var canonicalCrimeTerms = []string{
	"murder", "robbery", "assault", "theft", "burglary", "shooting",
	"stabbing", "arrest", "police", "victim", "suspect", "charged",
	"court", "jail", "prison", "crime", "criminal", "felony",
}

// Fingerprint is the derived identity of an article. Never mutated.
type Fingerprint struct {
	// ExactHash is source-qualified: identical (source, title, body)
	// always collide, a different source never does.
	ExactHash string
	// ContentHash ignores the source. Persisted for downstream
	// analytics; the decision policy does not consult it.
	ContentHash string
	// SimilarityHash digests the article's overlap with the canonical
	// crime vocabulary. Articles sharing zero terms all map to the
	// digest of the empty signature.
	SimilarityHash string
}

// Fingerprinter computes fingerprints over a fixed vocabulary.
type Fingerprinter struct {
	terms []string
}

// NewFingerprinter creates a fingerprinter over the canonical crime
// vocabulary.
func NewFingerprinter() *Fingerprinter {
	return &Fingerprinter{terms: canonicalCrimeTerms}
}

// Fingerprint computes all three hashes over the normalized,
// lower-cased title and body. ok is false when either is empty after
// normalization: such articles cannot be deduplicated and must never
// be claimed as duplicates.
func (f *Fingerprinter) Fingerprint(title, body, source string) (Fingerprint, bool) {
	title = strings.ToLower(textutil.Normalize(title))
	body = strings.ToLower(textutil.Normalize(body))
	if title == "" || body == "" {
		return Fingerprint{}, false
	}
	source = strings.ToLower(textutil.Normalize(source))

	return Fingerprint{
		ExactHash:      digest(source + fieldDelimiter + title + fieldDelimiter + body),
		ContentHash:    digest(title + fieldDelimiter + body),
		SimilarityHash: digest(f.signature(title + " " + body)),
	}, true
}

// signature returns the sorted, capped intersection of the text's
// word set with the canonical vocabulary, joined for digesting.
func (f *Fingerprinter) signature(text string) string {
	words := textutil.WordSet(text)

	var shared []string
	for _, term := range f.terms {
		if _, ok := words[term]; ok {
			shared = append(shared, term)
		}
	}
	sort.Strings(shared)
	if len(shared) > maxSignatureTerms {
		shared = shared[:maxSignatureTerms]
	}
	return strings.Join(shared, termDelimiter)
}

func digest(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}
