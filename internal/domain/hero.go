package domain

import "math"

// EquipmentSlot names one of a hero's four optional equipment references.
type EquipmentSlot string

const (
	SlotWeapon    EquipmentSlot = "weapon"
	SlotArmor     EquipmentSlot = "armor"
	SlotAccessory EquipmentSlot = "accessory"
	SlotRelic     EquipmentSlot = "relic"
)

// AscensionLevelRequirement is the minimum hero level required to ascend
// from the index's ascension level to the next.
var AscensionLevelRequirement = [6]int{20, 30, 40, 50, 60, 70}

// heroExpTable overrides the required_exp formula for levels 1 through 10,
// per the catalog's initial table (spec's hero.py `_exp_table` default).
var heroExpTable = map[int]int{
	1: 100, 2: 150, 3: 200, 4: 250, 5: 300,
	6: 400, 7: 500, 8: 600, 9: 700, 10: 800,
}

// Hero is a player-owned Character with progression axes: level, exp,
// stars, ascension, awakening, and optional equipment/mount references.
type Hero struct {
	Character
	TemplateID      string         `json:"template_id"`
	Rarity          int            `json:"rarity"`
	Level           int            `json:"level"`
	Exp             int            `json:"exp"`
	Stars           int            `json:"stars"`
	AscensionLevel  int            `json:"ascension_level"`
	AwakeningLevel  int            `json:"awakening_level"`
	WeaponID        *string        `json:"weapon_id,omitempty"`
	ArmorID         *string        `json:"armor_id,omitempty"`
	AccessoryID     *string        `json:"accessory_id,omitempty"`
	RelicID         *string        `json:"relic_id,omitempty"`
	MountID         *string        `json:"mount_id,omitempty"`
	GrowthRates     HexagonStats   `json:"growth_rates"`
	IsLocked        bool           `json:"is_locked"`
	IsFavorite      bool           `json:"is_favorite"`
	BasePower       int            `json:"base_power"`
}

// MaxLevel is the hero's current level cap given its ascension level.
func (h *Hero) MaxLevel() int {
	return 20 + 10*h.AscensionLevel
}

// RequiredExp returns the exp needed to advance past level, using the
// catalog override table for levels 1-10 and the linear formula beyond.
func RequiredExp(level int) int {
	if v, ok := heroExpTable[level]; ok {
		return v
	}
	return 100 + 50*level
}

// CanAscend reports whether the hero satisfies the next ascension's level
// requirement and has not exhausted the ascension axis.
func (h *Hero) CanAscend() bool {
	if h.AscensionLevel >= len(AscensionLevelRequirement) {
		return false
	}
	return h.Level >= AscensionLevelRequirement[h.AscensionLevel]
}

// Power is the hero's displayed power rating, combining level, star, and
// progression-axis bonuses over its base power.
func (h *Hero) Power() int {
	levelMult := 1 + 0.05*float64(h.Level-1)
	starMult := 1 + 0.2*float64(h.Stars-1)
	base := int(math.Round(float64(h.BasePower) * levelMult * starMult))
	return base + 100*h.AscensionLevel + 150*h.AwakeningLevel
}

// LevelUpResult reports the outcome of a gain-exp application.
type LevelUpResult struct {
	OldLevel    int `json:"old_level"`
	NewLevel    int `json:"new_level"`
	LeveledUp   bool `json:"leveled_up"`
	ExpRemaining int `json:"exp_remaining"`
}

// GainExp applies exp gain to the hero, looping while accumulated exp
// clears the next level's requirement and the hero has not hit its level
// cap, per spec.md 4.2's exp-gain loop.
func (h *Hero) GainExp(amount int) LevelUpResult {
	oldLevel := h.Level
	h.Exp += amount
	maxLevel := h.MaxLevel()
	for h.Level < maxLevel && h.Exp >= RequiredExp(h.Level) {
		h.Exp -= RequiredExp(h.Level)
		h.Level++
	}
	return LevelUpResult{
		OldLevel:     oldLevel,
		NewLevel:     h.Level,
		LeveledUp:    h.Level != oldLevel,
		ExpRemaining: h.Exp,
	}
}

// EquipmentIDBySlot returns the equipment id currently in the named slot,
// or nil if the slot is empty.
func (h *Hero) EquipmentIDBySlot(slot EquipmentSlot) *string {
	switch slot {
	case SlotWeapon:
		return h.WeaponID
	case SlotArmor:
		return h.ArmorID
	case SlotAccessory:
		return h.AccessoryID
	case SlotRelic:
		return h.RelicID
	default:
		return nil
	}
}

// SetEquipmentSlot assigns id (nil to clear) to the named slot, returning
// the previously equipped id, if any.
func (h *Hero) SetEquipmentSlot(slot EquipmentSlot, id *string) (previous *string) {
	switch slot {
	case SlotWeapon:
		previous, h.WeaponID = h.WeaponID, id
	case SlotArmor:
		previous, h.ArmorID = h.ArmorID, id
	case SlotAccessory:
		previous, h.AccessoryID = h.AccessoryID, id
	case SlotRelic:
		previous, h.RelicID = h.RelicID, id
	}
	return previous
}
