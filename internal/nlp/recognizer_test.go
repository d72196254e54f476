package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecognizer(t *testing.T) *LexicalRecognizer {
	t.Helper()
	r, err := NewLexicalRecognizer()
	require.NoError(t, err)
	return r
}

func findLabel(ents []Entity, label string) []string {
	var out []string
	for _, e := range ents {
		if e.Label == label {
			out = append(out, e.Text)
		}
	}
	return out
}

func TestRecognizeEmpty(t *testing.T) {
	r := newRecognizer(t)

	ents, err := r.Recognize("   ")
	require.NoError(t, err)
	assert.Empty(t, ents)
}

func TestRecognizeMoneyBeatsCardinal(t *testing.T) {
	r := newRecognizer(t)

	ents, err := r.Recognize("The thieves took $5,000 from the register")
	require.NoError(t, err)

	assert.Equal(t, []string{"$5,000"}, findLabel(ents, LabelMoney))
	// The digits inside the amount never surface as bare numbers.
	assert.Empty(t, findLabel(ents, LabelCardinal))
}

func TestRecognizeDatesAndTimes(t *testing.T) {
	r := newRecognizer(t)

	ents, err := r.Recognize("It happened on Monday at 9 p.m. near the station")
	require.NoError(t, err)

	assert.Equal(t, []string{"Monday"}, findLabel(ents, LabelDate))
	assert.Equal(t, []string{"9 p.m."}, findLabel(ents, LabelTime))
}

func TestRecognizeRelativeDates(t *testing.T) {
	r := newRecognizer(t)

	ents, err := r.Recognize("the incident took place yesterday at noon")
	require.NoError(t, err)

	assert.Equal(t, []string{"yesterday"}, findLabel(ents, LabelDate))
	assert.Equal(t, []string{"noon"}, findLabel(ents, LabelTime))
}

func TestRecognizeHonorificPerson(t *testing.T) {
	r := newRecognizer(t)

	ents, err := r.Recognize("Officer John Smith confirmed the report")
	require.NoError(t, err)

	// The honorific introduces the name but is not part of it.
	assert.Equal(t, []string{"John Smith"}, findLabel(ents, LabelPerson))
}

func TestRecognizeGivenNamePerson(t *testing.T) {
	r := newRecognizer(t)

	ents, err := r.Recognize("Witnesses identified Sarah Connor near the scene")
	require.NoError(t, err)

	assert.Equal(t, []string{"Sarah Connor"}, findLabel(ents, LabelPerson))
}

func TestRecognizeGazetteerPlace(t *testing.T) {
	r := newRecognizer(t)

	ents, err := r.Recognize("The robbery took place in Thunder Bay overnight")
	require.NoError(t, err)

	assert.Equal(t, []string{"Thunder Bay"}, findLabel(ents, LabelGPE))
}

func TestRecognizeRejectsUnknownCapitalizedRuns(t *testing.T) {
	r := newRecognizer(t)

	// "First National Bank" is capitalized but backed by no lexicon:
	// precision beats recall, so it is dropped.
	ents, err := r.Recognize("Robbers hit the First National Bank branch")
	require.NoError(t, err)

	assert.Empty(t, findLabel(ents, LabelPerson))
	assert.Empty(t, findLabel(ents, LabelGPE))
}

func TestRecognizeCardinal(t *testing.T) {
	r := newRecognizer(t)

	ents, err := r.Recognize("police counted 3 broken windows")
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, findLabel(ents, LabelCardinal))
}

func TestRecognizeDocumentOrder(t *testing.T) {
	r := newRecognizer(t)

	ents, err := r.Recognize("Officer Jane Doe said $400 went missing on Friday")
	require.NoError(t, err)
	require.Len(t, ents, 3)

	assert.Equal(t, LabelPerson, ents[0].Label)
	assert.Equal(t, LabelMoney, ents[1].Label)
	assert.Equal(t, LabelDate, ents[2].Label)
}
