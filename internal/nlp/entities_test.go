package nlp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRecognizer returns a fixed entity list.
type stubRecognizer struct {
	ents []Entity
	err  error
}

func (s *stubRecognizer) Recognize(text string) ([]Entity, error) {
	return s.ents, s.err
}

func TestRoleMapperGroupsByRole(t *testing.T) {
	m := NewRoleMapper(&stubRecognizer{ents: []Entity{
		{Text: "John Smith", Label: LabelPerson},
		{Text: "Chicago", Label: LabelGPE},
		{Text: "the north end", Label: LabelLocation},
		{Text: "Monday", Label: LabelDate},
		{Text: "9 p.m.", Label: LabelTime},
		{Text: "$5,000", Label: LabelMoney},
		{Text: "3", Label: LabelCardinal},
	}})

	got, err := m.Extract("some text")
	require.NoError(t, err)

	assert.Equal(t, []string{"John Smith"}, got[RoleWho])
	assert.Equal(t, []string{"Chicago", "the north end"}, got[RoleWhere])
	assert.Equal(t, []string{"Monday", "9 p.m."}, got[RoleWhen])
	assert.Equal(t, []string{"$5,000"}, got[RoleEconomicLoss])
	assert.Equal(t, []string{"3"}, got[RoleInjuries])
}

func TestRoleMapperDeduplicatesWithinRole(t *testing.T) {
	m := NewRoleMapper(&stubRecognizer{ents: []Entity{
		{Text: "John Smith", Label: LabelPerson},
		{Text: "Jane Doe", Label: LabelPerson},
		{Text: "John  Smith", Label: LabelPerson}, // same after normalization
	}})

	got, err := m.Extract("some text")
	require.NoError(t, err)
	assert.Equal(t, []string{"John Smith", "Jane Doe"}, got[RoleWho])
}

func TestRoleMapperDropsUnknownLabels(t *testing.T) {
	m := NewRoleMapper(&stubRecognizer{ents: []Entity{
		{Text: "Acme Corp", Label: "ORG"},
		{Text: "first", Label: "ORDINAL"},
	}})

	got, err := m.Extract("some text")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRoleMapperEmptyInput(t *testing.T) {
	m := NewRoleMapper(&stubRecognizer{err: errors.New("must not be called")})

	got, err := m.Extract("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRoleMapperPropagatesRecognizerError(t *testing.T) {
	m := NewRoleMapper(&stubRecognizer{err: errors.New("model unavailable")})

	_, err := m.Extract("some text")
	assert.Error(t, err)
}
