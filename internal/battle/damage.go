package battle

import (
	"math"

	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/element"
)

// DamageResult is the outcome of resolving one attack or damage-skill hit
// against a single target.
type DamageResult struct {
	RawDamage        int
	ActualDamage     int
	Died             bool
	IsCrit           bool
	ElementMultiplier float64
	ShieldAbsorbed   int
}

// HealResult is the outcome of resolving one heal against a single
// target.
type HealResult struct {
	ActualHeal int
}

// CalculateDamage applies the spec.md 4.4 damage formula: raw damage is
// at least 1, scaled by element matchup and an RNG-rolled crit, then
// absorbed by any shields on the target (in list order) before HP loss.
func CalculateDamage(attackerAtk, attackerCrit int, attackerElement domain.Element, defenderDef int, defenderElement domain.Element, skillMultiplier float64, rng RNG) (raw int, isCrit bool, elementMult float64) {
	elementMult = element.Multiplier(attackerElement, defenderElement)

	critChance := float64(attackerCrit) / 100.0
	if critChance > 1 {
		critChance = 1
	}
	isCrit = rng.Float64() < critChance
	critMult := 1.0
	if isCrit {
		critMult = 1 + float64(attackerCrit)/100.0
	}

	base := float64(attackerAtk)*skillMultiplier - float64(defenderDef)*0.5
	raw = int(math.Floor(base * elementMult * critMult))
	if raw < 1 {
		raw = 1
	}
	return raw, isCrit, elementMult
}

// ApplyDamage absorbs raw damage into defender's shields (in list order)
// before reducing HP, returning the full resolution.
func ApplyDamage(defender *domain.Character, raw int, isCrit bool, elementMult float64) DamageResult {
	remaining := raw
	absorbed := 0
	for i := range defender.StatusEffects {
		effect := &defender.StatusEffects[i]
		if effect.Type != domain.StatusEffectShield || effect.ShieldAmount <= 0 || remaining <= 0 {
			continue
		}
		_, passThrough := effect.AbsorbDamage(remaining)
		absorbed += remaining - passThrough
		remaining = passThrough
	}

	actual, died := defender.TakeDamage(remaining)
	return DamageResult{
		RawDamage:         raw,
		ActualDamage:      actual,
		Died:              died,
		IsCrit:            isCrit,
		ElementMultiplier: elementMult,
		ShieldAbsorbed:    absorbed,
	}
}

// CalculatePercentHeal returns floor(target.max_hp * healMultiplier).
func CalculatePercentHeal(target *domain.Character, healMultiplier float64) int {
	return int(math.Floor(float64(target.Stats.HP) * healMultiplier))
}

// CalculateAtkScalingHeal returns floor(caster.atk * healMultiplier).
func CalculateAtkScalingHeal(casterAtk int, healMultiplier float64) int {
	return int(math.Floor(float64(casterAtk) * healMultiplier))
}

// ApplyHeal clamps amount at the target's missing HP and applies it,
// returning the actual heal.
func ApplyHeal(target *domain.Character, amount int) HealResult {
	return HealResult{ActualHeal: target.Heal(amount)}
}
