package domain

import "sort"

// MythicalTier is an optional boss rank used as a power-rating multiplier.
type MythicalTier string

const (
	TierTuLinh     MythicalTier = "tu_linh"
	TierThienVuong MythicalTier = "thien_vuong"
	TierThuongCo   MythicalTier = "thuong_co"
	TierHonDon     MythicalTier = "hon_don"
)

// TierPowerMultiplier gives the power-rating multiplier per mythical tier.
var TierPowerMultiplier = map[MythicalTier]float64{
	TierTuLinh:     2.0,
	TierThienVuong: 3.0,
	TierThuongCo:   4.0,
	TierHonDon:     5.0,
}

// BossPhase is an HP-threshold-gated mode that modifies stats and appends
// skills once the boss's HP fraction falls to or below hpThreshold.
type BossPhase struct {
	PhaseNumber     int                `json:"phase_number"`
	HPThreshold     float64            `json:"hp_threshold"`
	Name            string             `json:"name"`
	StatModifiers   map[string]float64 `json:"stat_modifiers,omitempty"`
	NewSkills       []string           `json:"new_skills,omitempty"`
	SpecialEffects  []string           `json:"special_effects,omitempty"`
}

// DefaultImmunities are the status-effect tags every Boss starts out
// resisting; there is no catalog field that replaces the set.
var DefaultImmunities = []string{"instant_death", "charm"}

// Boss is an Enemy with a title, an ordered phase list, and an optional
// mythical tier multiplying its power rating.
type Boss struct {
	Enemy
	Title            string          `json:"title"`
	Phases           []BossPhase     `json:"phases,omitempty"`
	CurrentPhase     int             `json:"current_phase"`
	MythicalTier     *MythicalTier   `json:"mythical_tier,omitempty"`
	Immunities       map[string]bool `json:"immunities,omitempty"`
	SpecialMechanics map[string]any  `json:"special_mechanics,omitempty"`
}

// NewBoss constructs a Boss with the default immunity set and phase 1
// active, matching every freshly-spawned boss.
func NewBoss(enemy Enemy, title string, phases []BossPhase) Boss {
	immunities := make(map[string]bool, len(DefaultImmunities))
	for _, tag := range DefaultImmunities {
		immunities[tag] = true
	}
	return Boss{
		Enemy:        enemy,
		Title:        title,
		Phases:       phases,
		CurrentPhase: 1,
		Immunities:   immunities,
	}
}

// hpFraction is the boss's remaining HP as a fraction of its max HP.
func (b *Boss) hpFraction() float64 {
	if b.Stats.HP == 0 {
		return 0
	}
	return float64(b.CurrentHP) / float64(b.Stats.HP)
}

// CheckPhaseTransition advances the boss to the highest phase whose HP
// threshold is met and whose phase number exceeds the current phase,
// merging its stat modifiers and appending its new skills. It is a no-op
// if no qualifying phase exists. Returns the phase transitioned into, or
// nil if none occurred.
func (b *Boss) CheckPhaseTransition() *BossPhase {
	fraction := b.hpFraction()

	candidates := make([]BossPhase, 0, len(b.Phases))
	for _, p := range b.Phases {
		if p.PhaseNumber > b.CurrentPhase && fraction <= p.HPThreshold {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].PhaseNumber > candidates[j].PhaseNumber
	})
	target := candidates[0]
	b.transitionToPhase(target)
	return &target
}

func (b *Boss) transitionToPhase(phase BossPhase) {
	b.CurrentPhase = phase.PhaseNumber
	b.SkillIDs = append(b.SkillIDs, phase.NewSkills...)
}

// phaseModifier returns the stat multiplier the boss's current phase
// applies to the named stat, 1.0 if no modifier is present.
func (b *Boss) phaseModifier(stat string) float64 {
	for _, p := range b.Phases {
		if p.PhaseNumber == b.CurrentPhase {
			if v, ok := p.StatModifiers[stat]; ok {
				return v
			}
		}
	}
	return 1.0
}

// EffectiveAtk is the boss's attack stat after its current phase's
// multiplier is applied.
func (b *Boss) EffectiveAtk() int {
	return int(float64(b.Stats.Atk) * b.phaseModifier("atk"))
}

// EffectiveSpd is the boss's speed stat after its current phase's
// multiplier is applied.
func (b *Boss) EffectiveSpd() int {
	return int(float64(b.Stats.Spd) * b.phaseModifier("spd"))
}

// PowerRating is the boss's power rating, scaled by its Enemy power and
// any mythical-tier multiplier.
func (b *Boss) PowerRating() int {
	base := float64(b.Enemy.Power())
	if b.MythicalTier != nil {
		if mult, ok := TierPowerMultiplier[*b.MythicalTier]; ok {
			base *= mult
		}
	}
	return int(base)
}

// IsImmuneTo reports whether the boss resists the named status-effect tag.
func (b *Boss) IsImmuneTo(tag string) bool {
	return b.Immunities[tag]
}

// AddImmunity grants the boss resistance to the named tag, e.g. via a
// special mechanic unlocked in a later phase.
func (b *Boss) AddImmunity(tag string) {
	if b.Immunities == nil {
		b.Immunities = make(map[string]bool)
	}
	b.Immunities[tag] = true
}

// DisplayName is the boss's title-prefixed name, used in battle logs and
// client presentation.
func (b *Boss) DisplayName() string {
	if b.Title == "" {
		return b.Name
	}
	return b.Title + " " + b.Name
}
