package stats

import (
	"testing"

	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestApplyGrowth(t *testing.T) {
	base := domain.HexagonStats{HP: 100, Atk: 10, Def: 10, Spd: 10, Crit: 5, Dex: 5}
	growth := domain.HexagonStats{HP: 20, Atk: 2, Def: 2, Spd: 1, Crit: 0, Dex: 0}

	result := ApplyGrowth(base, growth, 3)

	assert.Equal(t, 160, result.HP)
	assert.Equal(t, 16, result.Atk)
	assert.Equal(t, 16, result.Def)
	assert.Equal(t, 13, result.Spd)
}

func TestApplyGrowth_ZeroDelta(t *testing.T) {
	base := domain.HexagonStats{HP: 100}
	assert.Equal(t, base, ApplyGrowth(base, domain.HexagonStats{HP: 50}, 0))
}

func TestGainExp_NoOpAtZero(t *testing.T) {
	level, remaining := GainExp(5, 0, 20)
	assert.Equal(t, 5, level)
	assert.Equal(t, 0, remaining)
}

func TestGainExp_AdvancesAndCapsAtMaxLevel(t *testing.T) {
	level, remaining := GainExp(1, 100000, 20)
	assert.Equal(t, 20, level)
	assert.GreaterOrEqual(t, remaining, 0)
}

func TestHeroPower_MatchesDomainFormula(t *testing.T) {
	h := domain.Hero{BasePower: 1000, Level: 10, Stars: 3, AscensionLevel: 1, AwakeningLevel: 2}
	assert.Equal(t, h.Power(), HeroPower(1000, 10, 3, 1, 2))
}

func TestEquipmentPower_MatchesDomainFormula(t *testing.T) {
	total := domain.HexagonStats{HP: 100, Atk: 20, Def: 20, Spd: 10, Crit: 5, Dex: 5}
	eq := domain.Equipment{BaseStats: total, Rarity: domain.RarityEpic}
	assert.Equal(t, eq.Power(), EquipmentPower(total, domain.RarityEpic))
}
