package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHero_GainExp_NoOpAtZero(t *testing.T) {
	hero := &Hero{Level: 5, Exp: 10}

	result := hero.GainExp(0)

	assert.False(t, result.LeveledUp)
	assert.Equal(t, 5, result.NewLevel)
	assert.Equal(t, 10, result.ExpRemaining)
}

func TestHero_GainExp_AdvancesMultipleLevels(t *testing.T) {
	hero := &Hero{Level: 1, Exp: 0}

	result := hero.GainExp(1000)

	assert.True(t, result.LeveledUp)
	assert.Equal(t, 1, result.OldLevel)
	assert.Greater(t, result.NewLevel, 1)
	assert.GreaterOrEqual(t, result.ExpRemaining, 0)
}

func TestHero_GainExp_StopsAtLevelCap(t *testing.T) {
	hero := &Hero{Level: 1, Exp: 0, AscensionLevel: 0}

	hero.GainExp(1_000_000)

	assert.Equal(t, hero.MaxLevel(), hero.Level)
}

func TestHero_CanAscend(t *testing.T) {
	hero := &Hero{Level: 20, AscensionLevel: 0}
	assert.True(t, hero.CanAscend())

	hero.Level = 19
	assert.False(t, hero.CanAscend())
}

func TestHero_CanAscend_ExhaustedAxis(t *testing.T) {
	hero := &Hero{Level: 1000, AscensionLevel: 6}
	assert.False(t, hero.CanAscend())
}

func TestHero_Power(t *testing.T) {
	hero := &Hero{BasePower: 1000, Level: 1, Stars: 1, AscensionLevel: 0, AwakeningLevel: 0}
	assert.Equal(t, 1000, hero.Power())
}

func TestHero_EquipmentSlot_SetAndGet(t *testing.T) {
	hero := &Hero{}
	weaponID := "sword-1"

	previous := hero.SetEquipmentSlot(SlotWeapon, &weaponID)

	assert.Nil(t, previous)
	assert.Equal(t, &weaponID, hero.EquipmentIDBySlot(SlotWeapon))

	previous = hero.SetEquipmentSlot(SlotWeapon, nil)
	assert.Equal(t, &weaponID, previous)
	assert.Nil(t, hero.EquipmentIDBySlot(SlotWeapon))
}

func TestRequiredExp_UsesCatalogOverrideTable(t *testing.T) {
	assert.Equal(t, 100, RequiredExp(1))
	assert.Equal(t, 800, RequiredExp(10))
	assert.Equal(t, 100+50*11, RequiredExp(11))
}
