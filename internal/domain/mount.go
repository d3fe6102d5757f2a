package domain

// MaxBondLevel caps a mount's bond axis.
const MaxBondLevel = 10

// Mount is an optional hero companion (including dragon variants) whose
// stats scale with level and bond, independent of the hero's own
// progression.
type Mount struct {
	ID             string       `json:"id"`
	TemplateID     string       `json:"template_id"`
	Name           string       `json:"name"`
	BaseStats      HexagonStats `json:"base_stats"`
	Level          int          `json:"level"`
	BondLevel      int          `json:"bond_level"`
	AwakeningLevel int          `json:"awakening_level"`
	ElementBuff    map[Element]float64 `json:"element_buff,omitempty"`
	OwnerHeroID    *string      `json:"owner_hero_id,omitempty"`
}

// EffectiveStats scales BaseStats by level and bond per spec.md 3's
// mount formula: base * (1 + 0.1*(level-1)) * (1 + 0.05*(bond-1)).
func (m *Mount) EffectiveStats() HexagonStats {
	bond := m.BondLevel
	if bond > MaxBondLevel {
		bond = MaxBondLevel
	}
	factor := (1 + 0.1*float64(m.Level-1)) * (1 + 0.05*float64(bond-1))
	return m.BaseStats.Scale(factor)
}

// ElementBuffMagnitude is a dragon-variant mount's element-buff strength,
// 0.1 plus 0.05 per awakening level.
func (m *Mount) ElementBuffMagnitude() float64 {
	return 0.1 + 0.05*float64(m.AwakeningLevel)
}

// CanEvolve reports whether the mount meets the level requirement to
// evolve into the next catalog stage.
func (m *Mount) CanEvolve(stageLevelReq int) bool {
	return m.Level >= stageLevelReq
}
