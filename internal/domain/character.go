package domain

// Character is the field common to every combat participant: identity,
// position, stats, and the mutable HP/mana/status that a battle step
// touches every resolution. Hero, Enemy, and Boss embed it rather than
// inherit from it.
type Character struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Element       Element        `json:"element"`
	Position      GridPosition   `json:"position"`
	Stats         HexagonStats   `json:"stats"`
	CurrentHP     int            `json:"current_hp"`
	CurrentMana   int            `json:"current_mana"`
	SkillIDs      []string       `json:"skill_ids,omitempty"`
	StatusEffects []StatusEffect `json:"status_effects,omitempty"`
}

// NewCharacter initializes a Character with full HP and zero mana, as
// required of every fresh combat entity.
func NewCharacter(id, name string, element Element, position GridPosition, stats HexagonStats) Character {
	return Character{
		ID:          id,
		Name:        name,
		Element:     element,
		Position:    position,
		Stats:       stats,
		CurrentHP:   stats.HP,
		CurrentMana: 0,
	}
}

// IsAlive reports whether the character has HP remaining.
func (c *Character) IsAlive() bool {
	return c.CurrentHP > 0
}

// TakeDamage clamps HP at 0 and reports the HP actually lost and whether
// the character died as a result.
func (c *Character) TakeDamage(amount int) (actualDamage int, died bool) {
	if amount < 0 {
		amount = 0
	}
	before := c.CurrentHP
	c.CurrentHP -= amount
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
	actualDamage = before - c.CurrentHP
	died = c.CurrentHP == 0
	return actualDamage, died
}

// Heal clamps HP at stats.HP and reports the HP actually restored.
func (c *Character) Heal(amount int) (actualHeal int) {
	if amount < 0 {
		amount = 0
	}
	before := c.CurrentHP
	c.CurrentHP += amount
	if c.CurrentHP > c.Stats.HP {
		c.CurrentHP = c.Stats.HP
	}
	return c.CurrentHP - before
}

// SpendMana deducts cost from current mana, failing with ErrInsufficientMana
// and no mutation if the character does not hold enough.
func (c *Character) SpendMana(cost int) error {
	if cost > c.CurrentMana {
		return ErrInsufficientMana
	}
	c.CurrentMana -= cost
	return nil
}

// GainMana adds amount to current mana, clamped at MaxMana.
func (c *Character) GainMana(amount int) {
	c.CurrentMana += amount
	if c.CurrentMana > MaxMana {
		c.CurrentMana = MaxMana
	}
}

// CanAct reports whether any active status effect prevents the character
// from taking an action this turn.
func (c *Character) CanAct() bool {
	for i := range c.StatusEffects {
		if c.StatusEffects[i].PreventsAction {
			return false
		}
	}
	return true
}
