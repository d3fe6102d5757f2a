package domain

// Event type constants used across the application for event bus
// subscriptions and metrics tracking. These represent domain events that
// can be published and consumed by multiple modules.
//
// Event types follow the pattern: <entity>.<action> (e.g., "battle.started")
const (
	// EventTypeBattleStarted is published when a battle transitions into
	// the in-progress state.
	EventTypeBattleStarted = "battle.started"

	// EventTypeBattleEnded is published the first time CheckEnd observes a
	// terminal state, before rewards are computed.
	EventTypeBattleEnded = "battle.ended"

	// EventTypeHeroLeveledUp is published when HeroService.level_up
	// advances a hero's level.
	EventTypeHeroLeveledUp = "hero.leveled_up"

	// EventTypeHeroAscended is published when a hero ascends.
	EventTypeHeroAscended = "hero.ascended"

	// EventTypeHeroAwakened is published when a hero awakens.
	EventTypeHeroAwakened = "hero.awakened"

	// EventTypeHeroEquipped is published when a hero's equipment slot
	// changes.
	EventTypeHeroEquipped = "hero.equipped"

	// EventTypeEquipmentEnhanced is published when an equipment item is
	// enhanced.
	EventTypeEquipmentEnhanced = "equipment.enhanced"

	// EventTypeEquipmentFused is published when equipment items are fused
	// into a result piece.
	EventTypeEquipmentFused = "equipment.fused"

	// EventTypeGachaPulled is published once per completed gacha pull
	// (one event per pull, even within a multi-pull).
	EventTypeGachaPulled = "gacha.pulled"

	// EventTypeStageCleared is published when the battle service's
	// CalculateRewards records a victory's stage clear.
	EventTypeStageCleared = "story.stage_cleared"

	// EventTypeTeamUpdated is published when a team's slots or formation
	// change.
	EventTypeTeamUpdated = "team.updated"
)
