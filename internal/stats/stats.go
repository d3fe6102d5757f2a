// Package stats implements the growth-curve and power-rating arithmetic
// shared by heroes, enemies, and equipment: level-up exp thresholds,
// stat growth application, and the power formulas of spec.md 4.2.
//
// Grounded on the teacher's internal/job/level.go XP-loop shape
// (accumulate, subtract while threshold met, report old/new level).
package stats

import "github.com/daicaxom/tactics-server/internal/domain"

// ApplyGrowth returns base stats advanced by deltaLevels worth of growth,
// adding floor(growth * deltaLevels) to each component.
func ApplyGrowth(base, growth domain.HexagonStats, deltaLevels int) domain.HexagonStats {
	if deltaLevels <= 0 {
		return base
	}
	return domain.HexagonStats{
		HP:   base.HP + growth.HP*deltaLevels,
		Atk:  base.Atk + growth.Atk*deltaLevels,
		Def:  base.Def + growth.Def*deltaLevels,
		Spd:  base.Spd + growth.Spd*deltaLevels,
		Crit: base.Crit + growth.Crit*deltaLevels,
		Dex:  base.Dex + growth.Dex*deltaLevels,
	}
}

// GainExp runs the shared exp-gain loop: while exp clears the next
// level's requirement and level has not hit maxLevel, subtract and
// advance. Returns the resulting level and remaining exp.
func GainExp(level, exp, maxLevel int) (newLevel, remainingExp int) {
	for level < maxLevel && exp >= domain.RequiredExp(level) {
		exp -= domain.RequiredExp(level)
		level++
	}
	return level, exp
}

// HeroPower computes a hero's power rating from its progression axes and
// base power, matching domain.Hero.Power (exposed here as a pure function
// for callers that have not materialized a full Hero, e.g. catalog
// preview endpoints).
func HeroPower(basePower, level, stars, ascensionLevel, awakeningLevel int) int {
	h := domain.Hero{
		BasePower:      basePower,
		Level:          level,
		Stars:          stars,
		AscensionLevel: ascensionLevel,
		AwakeningLevel: awakeningLevel,
	}
	return h.Power()
}

// EquipmentPower computes an equipment item's power rating from its
// total stats and rarity weight, matching domain.Equipment.Power.
func EquipmentPower(totalStats domain.HexagonStats, rarity domain.EquipmentRarity) int {
	return int(float64(totalStats.TotalPower()) * domain.PowerWeightByRarity[rarity])
}
