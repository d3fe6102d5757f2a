// Package element implements the five-way Ngu Hanh matchup table: a pure
// function from an attacking and defending element to a damage
// multiplier, with no state and no failure modes.
package element

import "github.com/daicaxom/tactics-server/internal/domain"

// Multiplier returns the damage multiplier for attacker striking defender:
// 1.5 if attacker conquers defender, 0.7 if defender conquers attacker,
// else 1.0.
func Multiplier(attacker, defender domain.Element) float64 {
	if strong, ok := attacker.StrongAgainst(); ok && strong == defender {
		return domain.ElementMultiplierAdvantage
	}
	if weak, ok := attacker.WeakAgainst(); ok && weak == defender {
		return domain.ElementMultiplierWeak
	}
	return domain.ElementMultiplierNeutral
}
