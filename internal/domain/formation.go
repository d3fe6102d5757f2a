package domain

// BonusKind tags whether a FormationBonus is a flat addend or a percent
// multiplier.
type BonusKind string

const (
	BonusFlat    BonusKind = "flat"
	BonusPercent BonusKind = "percent"
)

// FormationBonus is one stat adjustment granted while a Formation is
// active for a team.
type FormationBonus struct {
	Stat  string    `json:"stat"`
	Value float64   `json:"value"`
	Kind  BonusKind `json:"kind"`
}

// Formation is an optional team-wide bonus gated on composition: a
// minimum count of distinct elements and/or a required hero-template
// list, with an optional minimum member count.
type Formation struct {
	ID                     string            `json:"id"`
	Name                   string            `json:"name"`
	RequiredDistinctElements *int            `json:"required_distinct_elements,omitempty"`
	RequiredHeroTemplates  []string          `json:"required_hero_templates,omitempty"`
	Bonuses                []FormationBonus  `json:"bonuses,omitempty"`
	MinMembers             *int              `json:"min_members,omitempty"`
}

// IsActiveFor reports whether the formation's requirements hold for a
// team, given the template ids and elements of its current members.
func (f *Formation) IsActiveFor(memberTemplateIDs []string, memberElements []Element) bool {
	if f.MinMembers != nil && len(memberTemplateIDs) < *f.MinMembers {
		return false
	}
	if f.RequiredDistinctElements != nil {
		distinct := make(map[Element]bool, len(memberElements))
		for _, e := range memberElements {
			distinct[e] = true
		}
		if len(distinct) < *f.RequiredDistinctElements {
			return false
		}
	}
	if len(f.RequiredHeroTemplates) > 0 {
		have := make(map[string]bool, len(memberTemplateIDs))
		for _, id := range memberTemplateIDs {
			have[id] = true
		}
		for _, required := range f.RequiredHeroTemplates {
			if !have[required] {
				return false
			}
		}
	}
	return true
}

// PercentBonus returns the summed percent-kind bonus value for the named
// stat, 0 if none is present.
func (f *Formation) PercentBonus(stat string) float64 {
	var total float64
	for _, b := range f.Bonuses {
		if b.Stat == stat && b.Kind == BonusPercent {
			total += b.Value
		}
	}
	return total
}

// FlatBonus returns the summed flat-kind bonus value for the named stat.
func (f *Formation) FlatBonus(stat string) float64 {
	var total float64
	for _, b := range f.Bonuses {
		if b.Stat == stat && b.Kind == BonusFlat {
			total += b.Value
		}
	}
	return total
}
