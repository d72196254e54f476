package dedup

// Status classifies a candidate article against the registry.
type Status string

// Decision statuses.
const (
	// StatusNew: unseen article, persist and register both hashes.
	StatusNew Status = "new"
	// StatusDuplicateExact: identical content already stored from the
	// same source; skip persistence.
	StatusDuplicateExact Status = "exact_same_source"
	// StatusSimilarCrossSource: likely re-report of a stored event
	// from another outlet; persist with a note and register anyway.
	StatusSimilarCrossSource Status = "similar_cross_source"
	// StatusNewNoFingerprint: empty title or body, nothing to hash.
	// Persist, never register, never claim a duplicate.
	StatusNewNoFingerprint Status = "new_without_fingerprint"
)

// duplicateNote is attached to cross-source similar records.
const duplicateNote = "possible re-report of an event already covered by another source"

// Decision is the outcome of one candidate check.
type Decision struct {
	Status         Status
	Fingerprint    Fingerprint
	HasFingerprint bool
	// Note is non-empty only for StatusSimilarCrossSource.
	Note string
}

// Persist reports whether the caller should store the record.
func (d Decision) Persist() bool {
	return d.Status != StatusDuplicateExact
}

// RegisterHashes reports whether the caller should add the decision's
// fingerprint to the registry after persisting.
func (d Decision) RegisterHashes() bool {
	return d.HasFingerprint && d.Status != StatusDuplicateExact
}

// Policy decides whether a candidate is new, an exact duplicate, or a
// cross-source re-report. Deterministic for a fixed registry state.
type Policy struct {
	fp *Fingerprinter
}

// NewPolicy creates a policy over the given fingerprinter.
func NewPolicy(fp *Fingerprinter) *Policy {
	return &Policy{fp: fp}
}

// Decide classifies the candidate against the registry. It never
// mutates the registry; the caller registers hashes after a
// successful persist so a failed write cannot poison future checks.
func (p *Policy) Decide(title, body, source string, reg *Registry) Decision {
	fp, ok := p.fp.Fingerprint(title, body, source)
	if !ok {
		return Decision{Status: StatusNewNoFingerprint}
	}

	switch {
	case reg.HasExact(fp.ExactHash):
		return Decision{Status: StatusDuplicateExact, Fingerprint: fp, HasFingerprint: true}
	case reg.HasSimilarity(fp.SimilarityHash):
		return Decision{
			Status:         StatusSimilarCrossSource,
			Fingerprint:    fp,
			HasFingerprint: true,
			Note:           duplicateNote,
		}
	default:
		return Decision{Status: StatusNew, Fingerprint: fp, HasFingerprint: true}
	}
}
