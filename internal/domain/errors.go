package domain

import "errors"

// Common domain errors.
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Player / auth errors
	ErrPlayerNotFound      = errors.New("player not found")
	ErrDuplicatePlayer     = errors.New("player already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTokenExpired        = errors.New("token expired")
	ErrInvalidToken        = errors.New("invalid token")
	ErrAccessDenied        = errors.New("access denied")

	// Resource errors
	ErrInsufficientGold    = errors.New("insufficient gold")
	ErrInsufficientGems    = errors.New("insufficient gems")
	ErrInsufficientStamina = errors.New("insufficient stamina")

	// Hero errors
	ErrHeroNotFound        = errors.New("hero not found")
	ErrHeroAlreadyMaxLevel = errors.New("hero already at max level")
	ErrAscensionLocked     = errors.New("ascension requirements not met")
	ErrAwakeningLocked     = errors.New("awakening requirements not met")
	ErrInsufficientExp     = errors.New("insufficient exp to level up")

	// Equipment errors
	ErrEquipmentNotFound     = errors.New("equipment not found")
	ErrEquipmentSlotMismatch = errors.New("equipment type does not match slot")
	ErrEquipmentLevelReq     = errors.New("hero does not meet equipment level requirement")
	ErrEquipmentElementReq   = errors.New("hero does not meet equipment element requirement")
	ErrEquipmentMaxLevel     = errors.New("equipment already at max level for rarity")
	ErrFusionInputCount      = errors.New("fusion requires at least two input items")

	// Team errors
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamFull              = errors.New("team is full")
	ErrTeamCapExceeded       = errors.New("player team cap exceeded")
	ErrDuplicatePosition     = errors.New("position already occupied")
	ErrDuplicateHeroInTeam   = errors.New("hero already in team")
	ErrDefaultTeamUndeletable = errors.New("default team cannot be deleted")

	// Catalog errors
	ErrTemplateNotFound = errors.New("template not found")

	// Story errors
	ErrChapterLocked = errors.New("chapter is locked")
	ErrStageLocked   = errors.New("stage is locked")
	ErrStageNotFound = errors.New("stage not found")

	// Battle errors
	ErrBattleNotFound     = errors.New("battle not found")
	ErrBattleNotInProgress = errors.New("battle is not in progress")
	ErrNotPlayerTurn      = errors.New("not the acting character's turn")
	ErrInvalidAction      = errors.New("invalid battle action")
	ErrCharacterDead      = errors.New("character is not alive")
	ErrInsufficientMana   = errors.New("insufficient mana")
	ErrSkillNotReady      = errors.New("skill is on cooldown")
	ErrInvalidTargets     = errors.New("target list does not match skill target type")

	// Gacha errors
	ErrBannerNotFound  = errors.New("banner not found")
	ErrInvalidPullCount = errors.New("pull count must be 1 or 10")

	// Validation
	ErrInvalidInput = errors.New("invalid input")
)
