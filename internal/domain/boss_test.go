package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoss_CheckPhaseTransition_JumpsToHighestQualifyingPhase(t *testing.T) {
	// Scenario 6 from spec's testable properties: hp=1000, a large spike
	// to 400 remaining HP (60% taken) must land on phase 2, not stall at
	// phase 1, even though the larger phase-1 threshold was also crossed.
	enemy := Enemy{Character: NewCharacter("boss1", "Boss", ElementHoa, GridPosition{}, HexagonStats{HP: 1000, Atk: 100})}
	boss := NewBoss(enemy, "The Sundered", []BossPhase{
		{PhaseNumber: 1, HPThreshold: 1.0},
		{PhaseNumber: 2, HPThreshold: 0.5, StatModifiers: map[string]float64{"atk": 1.5}},
	})
	boss.CurrentHP = 1000
	boss.TakeDamage(600)

	transitioned := boss.CheckPhaseTransition()

	require.NotNil(t, transitioned)
	assert.Equal(t, 2, transitioned.PhaseNumber)
	assert.Equal(t, 2, boss.CurrentPhase)
	assert.Equal(t, 150, boss.EffectiveAtk())
}

func TestBoss_CheckPhaseTransition_NoOpWithoutQualifyingPhase(t *testing.T) {
	enemy := Enemy{Character: NewCharacter("boss1", "Boss", ElementHoa, GridPosition{}, HexagonStats{HP: 1000})}
	boss := NewBoss(enemy, "Steady", []BossPhase{
		{PhaseNumber: 2, HPThreshold: 0.2},
	})
	boss.CurrentHP = 900

	assert.Nil(t, boss.CheckPhaseTransition())
	assert.Equal(t, 1, boss.CurrentPhase)
}

func TestBoss_DefaultImmunities(t *testing.T) {
	enemy := Enemy{Character: NewCharacter("boss1", "Boss", ElementHoa, GridPosition{}, HexagonStats{HP: 100})}
	boss := NewBoss(enemy, "Test", nil)

	assert.True(t, boss.IsImmuneTo("instant_death"))
	assert.True(t, boss.IsImmuneTo("charm"))
	assert.False(t, boss.IsImmuneTo("stun"))
}

func TestBoss_PowerRating_AppliesMythicalTierMultiplier(t *testing.T) {
	enemy := Enemy{
		Character:  Character{Stats: HexagonStats{HP: 100, Atk: 100, Def: 100, Spd: 100, Crit: 0, Dex: 0}},
		Difficulty: 1,
	}
	boss := NewBoss(enemy, "Test", nil)
	tier := TierThienVuong
	boss.MythicalTier = &tier

	assert.Equal(t, int(float64(enemy.Power())*3.0), boss.PowerRating())
}
