package domain

// EquipmentType names the slot an equipment item fits.
type EquipmentType string

const (
	EquipmentWeapon    EquipmentType = "weapon"
	EquipmentArmor     EquipmentType = "armor"
	EquipmentAccessory EquipmentType = "accessory"
	EquipmentRelic     EquipmentType = "relic"
)

// EquipmentRarity grades an equipment item's level cap and power weight.
type EquipmentRarity string

const (
	RarityCommon    EquipmentRarity = "common"
	RarityRare      EquipmentRarity = "rare"
	RarityEpic      EquipmentRarity = "epic"
	RarityLegendary EquipmentRarity = "legendary"
	RarityMythic    EquipmentRarity = "mythic"
)

// MaxLevelByRarity is the enhancement level cap per rarity tier.
var MaxLevelByRarity = map[EquipmentRarity]int{
	RarityCommon:    10,
	RarityRare:      15,
	RarityEpic:      20,
	RarityLegendary: 25,
	RarityMythic:    30,
}

// PowerWeightByRarity is the multiplier applied to an equipment item's
// total stat power to derive its power rating.
var PowerWeightByRarity = map[EquipmentRarity]float64{
	RarityCommon:    1.0,
	RarityRare:      1.2,
	RarityEpic:      1.5,
	RarityLegendary: 2.0,
	RarityMythic:    2.5,
}

// Equipment is a player-owned gear item that can be slotted onto a Hero
// and enhanced over time.
type Equipment struct {
	ID           string          `json:"id"`
	TemplateID   string          `json:"template_id"`
	Type         EquipmentType   `json:"type"`
	Rarity       EquipmentRarity `json:"rarity"`
	Level        int             `json:"level"`
	BaseStats    HexagonStats    `json:"base_stats"`
	BonusStats   HexagonStats    `json:"bonus_stats"`
	SetID        *string         `json:"set_id,omitempty"`
	UniqueEffect *string         `json:"unique_effect,omitempty"`
	EquippedBy   *string         `json:"equipped_by,omitempty"`
	IsLocked     bool            `json:"is_locked"`
	RequiredLevel   int          `json:"required_level,omitempty"`
	RequiredElement *Element     `json:"required_element,omitempty"`
}

// MaxLevel is the enhancement cap for this item's rarity.
func (e *Equipment) MaxLevel() int {
	return MaxLevelByRarity[e.Rarity]
}

// TotalStats is the componentwise sum of base and enhancement-earned
// bonus stats.
func (e *Equipment) TotalStats() HexagonStats {
	return e.BaseStats.Add(e.BonusStats)
}

// Power is the equipment's power rating: total stat power weighted by
// rarity.
func (e *Equipment) Power() int {
	return int(float64(e.TotalStats().TotalPower()) * PowerWeightByRarity[e.Rarity])
}

// EnhancementDelta returns the bonus-stat increment one enhancement level
// adds to each base stat component: floor(0.1 * base).
func (e *Equipment) EnhancementDelta() HexagonStats {
	return HexagonStats{
		HP:   e.BaseStats.HP / 10,
		Atk:  e.BaseStats.Atk / 10,
		Def:  e.BaseStats.Def / 10,
		Spd:  e.BaseStats.Spd / 10,
		Crit: e.BaseStats.Crit / 10,
		Dex:  e.BaseStats.Dex / 10,
	}
}

// EnhancementCost is the gold cost of raising this item by one level,
// per spec.md 4.6's `level * 100` formula. The formula is fixed here;
// catalog data does not override it for any template or rarity.
func (e *Equipment) EnhancementCost() int {
	return e.Level * 100
}
