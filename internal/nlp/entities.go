package nlp

import (
	"github.com/jonesrussell/crimewatch/internal/textutil"
)

// Role is the semantic slot an entity fills in a record.
type Role string

// Roles an entity can map to.
const (
	RoleWho          Role = "who"
	RoleWhere        Role = "where"
	RoleWhen         Role = "when"
	RoleEconomicLoss Role = "economic_loss"
	RoleInjuries     Role = "injuries"
)

// labelRoles is the fixed entity-label to role table. Labels missing
// from the table are dropped.
var labelRoles = map[string]Role{
	LabelPerson:   RoleWho,
	LabelGPE:      RoleWhere,
	LabelLocation: RoleWhere,
	LabelDate:     RoleWhen,
	LabelTime:     RoleWhen,
	LabelMoney:    RoleEconomicLoss,
	LabelCardinal: RoleInjuries,
}

// RoleMapper turns recognizer output into role-keyed value lists.
type RoleMapper struct {
	rec Recognizer
}

// NewRoleMapper creates a role mapper over the given recognizer.
func NewRoleMapper(rec Recognizer) *RoleMapper {
	return &RoleMapper{rec: rec}
}

// Extract runs the recognizer and groups normalized entity text by
// role. Within a role, duplicates (exact string after normalization)
// are suppressed and first-seen order is preserved. Empty input yields
// an empty map.
func (m *RoleMapper) Extract(text string) (map[Role][]string, error) {
	out := make(map[Role][]string)
	if text == "" {
		return out, nil
	}

	ents, err := m.rec.Recognize(text)
	if err != nil {
		return nil, err
	}

	seen := make(map[Role]map[string]struct{})
	for _, ent := range ents {
		role, ok := labelRoles[ent.Label]
		if !ok {
			continue
		}
		val := textutil.Normalize(ent.Text)
		if val == "" {
			continue
		}
		if seen[role] == nil {
			seen[role] = make(map[string]struct{})
		}
		if _, dup := seen[role][val]; dup {
			continue
		}
		seen[role][val] = struct{}{}
		out[role] = append(out[role], val)
	}
	return out, nil
}
