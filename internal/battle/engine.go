// Package battle implements the Battle Engine (spec.md 4.4): the turn
// scheduler, action executor, damage/heal formulas, AI action selection,
// termination check, and reward derivation. It is the dominant component
// of the simulation and the one place the per-battle RNG is threaded
// through every random draw.
//
// Grounded on internal/duel/service.go for the service/constructor shape,
// internal/gamble/service.go's ExecuteGamble for the
// validate/mutate-in-memory/log/publish shape, and
// original_source/app/domain/entities/battle.py for TurnOrder and
// original_source/app/domain/entities/boss.py for phase-transition
// timing.
package battle

import (
	"github.com/daicaxom/tactics-server/internal/domain"
)

// Engine is the in-memory, synchronous battle simulator. Every mutating
// method runs to completion without suspension, per spec.md 5: the
// caller (Service) is responsible for holding the battle's critical
// section and for persisting Battle/ActionLog snapshots around engine
// calls.
type Engine struct {
	Battle *domain.Battle
	RNG    RNG

	// skills holds battle-scoped skill instances (with their own
	// cooldown state) per character id, resolved from the catalog at
	// start_battle. Catalog templates are never mutated directly;
	// engine code only ever touches these copies.
	skills map[string][]*domain.ActiveSkill
}

// NewEngine constructs an Engine over an already-built Battle, its
// per-battle RNG, and the resolved per-character skill instances.
func NewEngine(b *domain.Battle, rng RNG, skills map[string][]*domain.ActiveSkill) *Engine {
	return &Engine{Battle: b, RNG: rng, skills: skills}
}

// Start transitions the battle into play: computes the initial turn
// order and grants the opening actor their first turn's mana.
func (e *Engine) Start() {
	e.Battle.State = domain.BattleStateInProgress
	e.Battle.CalculateTurnOrder()
	e.ProcessTurnStart()
}

// ProcessTurnStart runs the per-step resolution pipeline in the fixed
// order spec.md 4.4 requires: boss phase-transition check, DOT/HOT
// ticks across the whole field, cooldown ticks, then a mana grant to the
// current actor only.
func (e *Engine) ProcessTurnStart() {
	e.checkBossPhaseTransitions()
	e.applyDotHotTicks()
	e.tickCooldowns()
	e.grantMana()
}

func (e *Engine) checkBossPhaseTransitions() {
	for _, boss := range e.Battle.BossTeam {
		if boss.IsAlive() {
			boss.CheckPhaseTransition()
		}
	}
}

func (e *Engine) applyDotHotTicks() {
	for _, c := range e.allCharacters() {
		if !c.IsAlive() {
			continue
		}
		kept := c.StatusEffects[:0:0]
		for i := range c.StatusEffects {
			effect := c.StatusEffects[i]
			switch effect.Type {
			case domain.StatusEffectDOT:
				c.TakeDamage(effect.TickDamage())
			case domain.StatusEffectHOT:
				c.Heal(effect.TickHeal())
			}
			effect.ReduceDuration()
			if !effect.IsExpired() {
				kept = append(kept, effect)
			}
		}
		c.StatusEffects = kept
		if !c.IsAlive() {
			e.Battle.TurnOrder.RemoveCharacter(c.ID)
		}
	}
}

func (e *Engine) tickCooldowns() {
	for _, instances := range e.skills {
		for _, skill := range instances {
			skill.ReduceCooldown()
		}
	}
}

func (e *Engine) grantMana() {
	current := e.Battle.CharacterByID(e.Battle.TurnOrder.Current())
	if current != nil {
		current.GainMana(e.Battle.ManaPerTurn)
	}
}

func (e *Engine) allCharacters() []*domain.Character {
	out := make([]*domain.Character, 0, len(e.Battle.PlayerTeam)+len(e.Battle.EnemyTeam)+len(e.Battle.BossTeam))
	for _, h := range e.Battle.PlayerTeam {
		out = append(out, &h.Character)
	}
	for _, en := range e.Battle.EnemyTeam {
		out = append(out, &en.Character)
	}
	for _, b := range e.Battle.BossTeam {
		out = append(out, &b.Character)
	}
	return out
}

// isPlayerSide reports whether characterID belongs to the player team.
func (e *Engine) isPlayerSide(characterID string) bool {
	for _, h := range e.Battle.PlayerTeam {
		if h.ID == characterID {
			return true
		}
	}
	return false
}

// AttackResult is the outcome execute_attack returns to its caller.
type AttackResult struct {
	Damage            int
	IsCrit            bool
	ElementMultiplier float64
	TargetDied        bool
}

// ExecuteAttack resolves a basic attack from attacker onto target using
// the spec.md 4.4 damage formula, then removes the target from the shared
// turn order if it died.
func (e *Engine) ExecuteAttack(attackerID, targetID string, skillMultiplier float64) (AttackResult, error) {
	attacker := e.Battle.CharacterByID(attackerID)
	target := e.Battle.CharacterByID(targetID)
	if attacker == nil || target == nil || !attacker.IsAlive() {
		return AttackResult{}, domain.ErrInvalidAction
	}
	if !attacker.CanAct() {
		return AttackResult{}, domain.ErrCharacterDead
	}

	raw, isCrit, elementMult := CalculateDamage(
		attacker.Stats.Atk, attacker.Stats.Crit, attacker.Element,
		target.Stats.Def, target.Element,
		skillMultiplier, e.RNG,
	)
	result := ApplyDamage(target, raw, isCrit, elementMult)
	if result.Died {
		e.Battle.TurnOrder.RemoveCharacter(target.ID)
	}
	e.Battle.LogAction(attackerID, "attacked "+targetID)

	return AttackResult{
		Damage:            result.ActualDamage,
		IsCrit:            isCrit,
		ElementMultiplier: elementMult,
		TargetDied:        result.Died,
	}, nil
}

// ExecuteHeal resolves a heal cast from caster onto targets, deducting
// manaCost once up front. healMultiplier is interpreted as a percent-of-
// max-hp heal when percentOfMaxHP is true, else as an atk-scaling heal.
func (e *Engine) ExecuteHeal(casterID string, targetIDs []string, manaCost int, healMultiplier float64, percentOfMaxHP bool) ([]HealResult, error) {
	caster := e.Battle.CharacterByID(casterID)
	if caster == nil || !caster.IsAlive() {
		return nil, domain.ErrInvalidAction
	}
	if err := caster.SpendMana(manaCost); err != nil {
		return nil, err
	}

	results := make([]HealResult, 0, len(targetIDs))
	for _, targetID := range targetIDs {
		target := e.Battle.CharacterByID(targetID)
		if target == nil {
			continue
		}
		var amount int
		if percentOfMaxHP {
			amount = CalculatePercentHeal(target, healMultiplier)
		} else {
			amount = CalculateAtkScalingHeal(caster.Stats.Atk, healMultiplier)
		}
		results = append(results, ApplyHeal(target, amount))
	}
	e.Battle.LogAction(casterID, "cast a heal")
	return results, nil
}

// ExecuteSkill resolves an ActiveSkill cast, validating caster liveness,
// mana, cooldown, and target-type consistency before mutating anything.
// On success it deducts mana, triggers the skill's cooldown, and applies
// damage/buff/debuff per target.
func (e *Engine) ExecuteSkill(casterID, skillID string, targetIDs []string, skill *domain.ActiveSkill) ([]AttackResult, error) {
	caster := e.Battle.CharacterByID(casterID)
	if caster == nil || !caster.IsAlive() {
		return nil, domain.ErrInvalidAction
	}
	if !caster.CanAct() {
		return nil, domain.ErrCharacterDead
	}
	if !skill.IsReady() {
		return nil, domain.ErrSkillNotReady
	}
	if caster.CurrentMana < skill.ManaCost {
		return nil, domain.ErrInsufficientMana
	}
	if err := e.validateTargets(casterID, skill.TargetType, targetIDs); err != nil {
		return nil, err
	}

	_ = caster.SpendMana(skill.ManaCost)
	skill.TriggerCooldown()

	results := make([]AttackResult, 0, len(targetIDs))
	multiplier := skill.EffectiveMultiplier()
	for _, targetID := range targetIDs {
		target := e.Battle.CharacterByID(targetID)
		if target == nil {
			continue
		}
		switch skill.Type {
		case domain.SkillTypeHeal:
			var amount int
			if skill.HealMultiplier > 0 {
				amount = CalculatePercentHeal(target, multiplier)
			}
			ApplyHeal(target, amount)
		case domain.SkillTypeBuff:
			e.applyBuffs(target, skill)
		case domain.SkillTypeDebuff:
			e.applyDebuffs(target, skill)
		default:
			raw, isCrit, elementMult := CalculateDamage(
				caster.Stats.Atk, caster.Stats.Crit, caster.Element,
				target.Stats.Def, target.Element,
				multiplier, e.RNG,
			)
			result := ApplyDamage(target, raw, isCrit, elementMult)
			if result.Died {
				e.Battle.TurnOrder.RemoveCharacter(target.ID)
			}
			results = append(results, AttackResult{
				Damage:            result.ActualDamage,
				IsCrit:            isCrit,
				ElementMultiplier: elementMult,
				TargetDied:        result.Died,
			})
		}
	}
	e.Battle.LogAction(casterID, "cast "+skillID)
	return results, nil
}

// validateTargets confirms targetIDs is consistent with targetType for a
// cast originating from casterID: e.g. single_enemy requires exactly one
// target on the opposing team.
func (e *Engine) validateTargets(casterID string, targetType domain.TargetType, targetIDs []string) error {
	casterIsPlayer := e.isPlayerSide(casterID)

	switch targetType {
	case domain.TargetSelf:
		if len(targetIDs) != 1 || targetIDs[0] != casterID {
			return domain.ErrInvalidTargets
		}
	case domain.TargetSingleAlly, domain.TargetSingleEnemy:
		if len(targetIDs) != 1 {
			return domain.ErrInvalidTargets
		}
		targetIsPlayer := e.isPlayerSide(targetIDs[0])
		wantOpposing := targetType == domain.TargetSingleEnemy
		if (targetIsPlayer == casterIsPlayer) == wantOpposing {
			return domain.ErrInvalidTargets
		}
	case domain.TargetAllAllies, domain.TargetAllEnemies, domain.TargetAOE:
		if len(targetIDs) == 0 {
			return domain.ErrInvalidTargets
		}
	}
	return nil
}

func (e *Engine) applyBuffs(target *domain.Character, skill *domain.ActiveSkill) {
	for _, buff := range skill.Buffs {
		pushStatusEffect(target, domain.StatusEffect{
			ID:            skill.ID + ":" + buff.Stat,
			Name:          skill.Name,
			Type:          domain.StatusEffectBuff,
			Duration:      buff.Duration,
			StatModifiers: []domain.StatModifier{{Stat: buff.Stat, Value: buff.Value}},
			IsStackable:   false,
			MaxStacks:     1,
			CurrentStacks: 1,
		})
	}
}

func (e *Engine) applyDebuffs(target *domain.Character, skill *domain.ActiveSkill) {
	for _, debuff := range skill.Debuffs {
		pushStatusEffect(target, domain.StatusEffect{
			ID:             skill.ID + ":" + debuff.Stat,
			Name:           skill.Name,
			Type:           domain.StatusEffectDebuff,
			Duration:       debuff.Duration,
			StatModifiers:  []domain.StatModifier{{Stat: debuff.Stat, Value: debuff.Value}},
			PreventsAction: debuff.PreventsAction,
			IsStackable:    false,
			MaxStacks:      1,
			CurrentStacks:  1,
		})
	}
}

// pushStatusEffect applies the stacking policy from spec.md 4.4: if an
// effect with the same id is stackable, increment its stacks (capped)
// and refresh its duration; otherwise replace the existing entry, or
// append if none matches.
func pushStatusEffect(target *domain.Character, effect domain.StatusEffect) {
	for i := range target.StatusEffects {
		if target.StatusEffects[i].ID != effect.ID {
			continue
		}
		if target.StatusEffects[i].IsStackable {
			target.StatusEffects[i].AddStack(effect.Duration)
		} else {
			target.StatusEffects[i] = effect
		}
		return
	}
	target.StatusEffects = append(target.StatusEffects, effect)
}

// AdvanceTurn moves to the next living character in the turn order,
// incrementing turn_number and recomputing the order over living
// participants only when the order wraps, then runs turn-start effects
// for the new current actor.
func (e *Engine) AdvanceTurn() {
	wrapped := e.Battle.TurnOrder.Advance()
	if wrapped {
		e.Battle.TurnNumber++
		e.Battle.CalculateTurnOrder()
	}
	e.ProcessTurnStart()
}

// CheckEnd reports the battle's terminal result, or nil if play
// continues.
func (e *Engine) CheckEnd() *domain.BattleResult {
	return e.Battle.CheckEnd()
}

// EndBattle transitions the battle to result's terminal state.
func (e *Engine) EndBattle(result domain.BattleResult) {
	e.Battle.EndBattle(result)
}

// CalculateRewards sums enemy exp/gold rewards, rolls the drop table,
// and derives the star rating: 3 minus the number of dead heroes,
// floored at 1.
func (e *Engine) CalculateRewards() domain.BattleRewards {
	var totalExp, totalGold int
	var drops []string
	for _, en := range e.Battle.EnemyTeam {
		totalExp += en.ExpReward
		totalGold += en.GoldReward
		for _, drop := range en.DropTable {
			if e.RNG.Float64() < drop.Probability {
				drops = append(drops, drop.ItemID)
			}
		}
	}

	deadHeroes := 0
	for _, h := range e.Battle.PlayerTeam {
		if !h.IsAlive() {
			deadHeroes++
		}
	}
	stars := 3 - deadHeroes
	if stars < 1 {
		stars = 1
	}

	return domain.BattleRewards{
		Exp:   totalExp,
		Gold:  totalGold,
		Drops: drops,
		Stars: stars,
	}
}
