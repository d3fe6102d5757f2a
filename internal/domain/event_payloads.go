package domain

// BattleStartedPayload is the event payload for battle.started events.
type BattleStartedPayload struct {
	BattleID  string `json:"battle_id"`
	PlayerID  string `json:"player_id"`
	StageID   string `json:"stage_id"`
	Timestamp int64  `json:"timestamp"`
}

// BattleEndedPayload is the event payload for battle.ended events.
type BattleEndedPayload struct {
	BattleID   string       `json:"battle_id"`
	PlayerID   string       `json:"player_id"`
	StageID    string       `json:"stage_id"`
	Result     BattleResult `json:"result"`
	TurnsTaken int          `json:"turns_taken"`
	Rewards    BattleRewards `json:"rewards"`
	Timestamp  int64        `json:"timestamp"`
}

// HeroLeveledUpPayload is the event payload for hero.leveled_up events.
type HeroLeveledUpPayload struct {
	PlayerID  string `json:"player_id"`
	HeroID    string `json:"hero_id"`
	OldLevel  int    `json:"old_level"`
	NewLevel  int    `json:"new_level"`
	Timestamp int64  `json:"timestamp"`
}

// HeroAscendedPayload is the event payload for hero.ascended events.
type HeroAscendedPayload struct {
	PlayerID       string `json:"player_id"`
	HeroID         string `json:"hero_id"`
	AscensionLevel int    `json:"ascension_level"`
	Timestamp      int64  `json:"timestamp"`
}

// HeroAwakenedPayload is the event payload for hero.awakened events.
type HeroAwakenedPayload struct {
	PlayerID       string `json:"player_id"`
	HeroID         string `json:"hero_id"`
	AwakeningLevel int    `json:"awakening_level"`
	Timestamp      int64  `json:"timestamp"`
}

// HeroEquippedPayload is the event payload for hero.equipped events.
type HeroEquippedPayload struct {
	PlayerID      string        `json:"player_id"`
	HeroID        string        `json:"hero_id"`
	Slot          EquipmentSlot `json:"slot"`
	EquipmentID   string        `json:"equipment_id"`
	PreviousID    *string       `json:"previous_id,omitempty"`
	Timestamp     int64         `json:"timestamp"`
}

// EquipmentEnhancedPayload is the event payload for equipment.enhanced
// events.
type EquipmentEnhancedPayload struct {
	PlayerID     string `json:"player_id"`
	EquipmentID  string `json:"equipment_id"`
	NewLevel     int    `json:"new_level"`
	GoldCost     int    `json:"gold_cost"`
	Timestamp    int64  `json:"timestamp"`
}

// EquipmentFusedPayload is the event payload for equipment.fused events.
type EquipmentFusedPayload struct {
	PlayerID     string   `json:"player_id"`
	InputIDs     []string `json:"input_ids"`
	ResultID     string   `json:"result_id"`
	Timestamp    int64    `json:"timestamp"`
}

// GachaPulledPayload is the event payload for gacha.pulled events, one
// per individual pull.
type GachaPulledPayload struct {
	PlayerID  string `json:"player_id"`
	BannerID  string `json:"banner_id"`
	HeroID    string `json:"hero_id"`
	Rarity    int    `json:"rarity"`
	IsNew     bool   `json:"is_new"`
	PityReset bool   `json:"pity_reset"`
	Timestamp int64  `json:"timestamp"`
}

// StageClearedPayload is the event payload for story.stage_cleared
// events.
type StageClearedPayload struct {
	PlayerID   string `json:"player_id"`
	StageID    string `json:"stage_id"`
	Stars      int    `json:"stars"`
	FirstClear bool   `json:"first_clear"`
	Timestamp  int64  `json:"timestamp"`
}

// TeamUpdatedPayload is the event payload for team.updated events.
type TeamUpdatedPayload struct {
	PlayerID  string `json:"player_id"`
	TeamID    string `json:"team_id"`
	Timestamp int64  `json:"timestamp"`
}
