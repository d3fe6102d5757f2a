package battle

import (
	"sort"

	"github.com/daicaxom/tactics-server/internal/domain"
)

// ActionKind distinguishes the two shapes of action the AI can choose.
type ActionKind string

const (
	ActionBasicAttack ActionKind = "basic_attack"
	ActionUseSkill    ActionKind = "use_skill"
)

// Action is the AI's chosen move for its turn: either a basic attack or a
// skill cast, always aimed at TargetID.
type Action struct {
	Kind     ActionKind
	ActorID  string
	TargetID string
	Skill    *domain.ActiveSkill
}

// ChooseAction implements ai_choose_action (spec.md 4.4): falls back to a
// basic attack on the lowest-HP living hero when the actor has no ready
// skills or fewer than 50 mana, otherwise rolls a Bernoulli trial against
// its behavior's UseSkillProbability before casting the first ready
// skill on the lowest-HP living hero.
func (e *Engine) ChooseAction(actor *domain.Character, behavior domain.BehaviorTag) Action {
	target := e.lowestHPLivingHero()
	if target == nil {
		return Action{}
	}

	ready := e.firstReadySkill(actor.ID)
	if ready == nil || actor.CurrentMana < 50 {
		return Action{Kind: ActionBasicAttack, ActorID: actor.ID, TargetID: target.ID}
	}

	if e.RNG.Float64() < domain.UseSkillProbability[behavior] {
		return Action{Kind: ActionUseSkill, ActorID: actor.ID, TargetID: target.ID, Skill: ready}
	}
	return Action{Kind: ActionBasicAttack, ActorID: actor.ID, TargetID: target.ID}
}

// lowestHPLivingHero returns the living player-team character with the
// lowest current HP, breaking ties by grid position then by id for a
// deterministic result.
func (e *Engine) lowestHPLivingHero() *domain.Character {
	var candidates []*domain.Character
	for _, h := range e.Battle.PlayerTeam {
		if h.IsAlive() {
			candidates = append(candidates, &h.Character)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.CurrentHP != b.CurrentHP {
			return a.CurrentHP < b.CurrentHP
		}
		if a.Position.X != b.Position.X {
			return a.Position.X < b.Position.X
		}
		if a.Position.Y != b.Position.Y {
			return a.Position.Y < b.Position.Y
		}
		return a.ID < b.ID
	})
	return candidates[0]
}

// firstReadySkill returns the first off-cooldown battle-scoped skill
// instance owned by characterID, in catalog order, or nil if none is
// ready.
func (e *Engine) firstReadySkill(characterID string) *domain.ActiveSkill {
	for _, skill := range e.skills[characterID] {
		if skill.IsReady() {
			return skill
		}
	}
	return nil
}
