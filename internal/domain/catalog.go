package domain

// HeroTemplate is the immutable catalog record a new Hero is instantiated
// from: identity, element, base rarity, base stats, and growth rates.
type HeroTemplate struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Element     Element      `json:"element"`
	Rarity      int          `json:"rarity"`
	BaseStats   HexagonStats `json:"base_stats"`
	GrowthRates HexagonStats `json:"growth_rates"`
	BasePower   int          `json:"base_power"`
	SkillIDs    []string     `json:"skill_ids,omitempty"`
}

// SkillTemplate is the catalog record an ActiveSkill/PassiveSkill/
// UltimateSkill is instantiated from.
type SkillTemplate struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Variant  string    `json:"variant"` // "active", "passive", or "ultimate"
	Active   *ActiveSkill   `json:"active,omitempty"`
	Passive  *PassiveSkill  `json:"passive,omitempty"`
	Ultimate *UltimateSkill `json:"ultimate,omitempty"`
}

// EquipmentTemplate is the catalog record an Equipment item is
// instantiated from.
type EquipmentTemplate struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Type            EquipmentType   `json:"type"`
	Rarity          EquipmentRarity `json:"rarity"`
	BaseStats       HexagonStats    `json:"base_stats"`
	SetID           *string         `json:"set_id,omitempty"`
	UniqueEffect    *string         `json:"unique_effect,omitempty"`
	RequiredLevel   int             `json:"required_level,omitempty"`
	RequiredElement *Element        `json:"required_element,omitempty"`
}

// EquipmentSet is a catalog record of the bonus a set of equipment grants
// once enough pieces from it are equipped.
type EquipmentSet struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Bonuses  map[int][]StatModifier `json:"bonuses"` // keyed by piece count
}

// Chapter is a catalog record of a story chapter: its ordered stages and
// unlock metadata.
type Chapter struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Order   int      `json:"order"`
	StageIDs []string `json:"stage_ids"`
}

// Stage is a catalog record of one story stage: its enemy roster
// template, stamina cost, and rewards.
type Stage struct {
	ID           string   `json:"id"`
	ChapterID    string   `json:"chapter_id"`
	Order        int      `json:"order"`
	Name         string   `json:"name"`
	StaminaCost  int64    `json:"stamina_cost"`
	EnemyTemplateIDs []string `json:"enemy_template_ids"`
	BossTemplateID   *string  `json:"boss_template_id,omitempty"`
	FirstClearRewards BattleRewards `json:"first_clear_rewards"`
	RepeatRewards     BattleRewards `json:"repeat_rewards"`
}

// EnemyTemplate is the immutable catalog record an Enemy (or Boss) is
// instantiated from.
type EnemyTemplate struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Element    Element      `json:"element"`
	Behavior   BehaviorTag  `json:"behavior"`
	Difficulty int          `json:"difficulty"`
	BaseStats  HexagonStats `json:"base_stats"`
	ExpReward  int          `json:"exp_reward"`
	GoldReward int          `json:"gold_reward"`
	DropTable  []DropEntry  `json:"drop_table,omitempty"`
	SkillIDs   []string     `json:"skill_ids,omitempty"`

	// Boss-only fields; nil/empty for plain enemies.
	Title            string        `json:"title,omitempty"`
	Phases           []BossPhase   `json:"phases,omitempty"`
	MythicalTier     *MythicalTier `json:"mythical_tier,omitempty"`
}

// IsBoss reports whether this template carries boss-only data.
func (t *EnemyTemplate) IsBoss() bool {
	return t.Title != "" || len(t.Phases) > 0
}
