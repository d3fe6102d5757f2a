package domain

import "time"

// DefaultMaxStamina is the stamina cap a newly registered player starts
// with, before any VIP or catalog-driven stamina cap bonus.
const DefaultMaxStamina = 120

// Resources are a player's fungible currencies.
type Resources struct {
	Gold        int64 `json:"gold"`
	Gems        int64 `json:"gems"`
	Stamina     int64 `json:"stamina"`
	MaxStamina  int64 `json:"max_stamina"`
}

// Debit subtracts each named, nonzero component, failing with the
// specific underflow error and no mutation if any component would go
// negative.
func (r *Resources) Debit(gold, gems, stamina int64) error {
	if gold > r.Gold {
		return ErrInsufficientGold
	}
	if gems > r.Gems {
		return ErrInsufficientGems
	}
	if stamina > r.Stamina {
		return ErrInsufficientStamina
	}
	r.Gold -= gold
	r.Gems -= gems
	r.Stamina -= stamina
	return nil
}

// Credit adds to gold and gems without limit, and to stamina clamped at
// MaxStamina.
func (r *Resources) Credit(gold, gems, stamina int64) {
	r.Gold += gold
	r.Gems += gems
	r.Stamina += stamina
	if r.Stamina > r.MaxStamina {
		r.Stamina = r.MaxStamina
	}
}

// Player is an account: credentials, display identity, account-level
// progression, and resources.
type Player struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	DisplayName    string    `json:"display_name"`
	Level          int       `json:"level"`
	Exp            int       `json:"exp"`
	Resources      Resources `json:"resources"`
	VIPLevel       int       `json:"vip_level"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StoryProgress is a player's chapter/stage clear state.
type StoryProgress struct {
	PlayerID      string         `json:"player_id"`
	ClearedStages map[string]bool `json:"cleared_stages"`
	Stars         map[string]int  `json:"stars"`
}

// IsStageCleared reports whether stageID has ever been cleared.
func (p *StoryProgress) IsStageCleared(stageID string) bool {
	return p.ClearedStages[stageID]
}

// RecordClear marks stageID cleared and raises its recorded star rating
// to the max of the previous and new values, reporting whether this was
// the stage's first clear.
func (p *StoryProgress) RecordClear(stageID string, stars int) (firstClear bool) {
	if p.ClearedStages == nil {
		p.ClearedStages = make(map[string]bool)
	}
	if p.Stars == nil {
		p.Stars = make(map[string]int)
	}
	firstClear = !p.ClearedStages[stageID]
	p.ClearedStages[stageID] = true
	if stars > p.Stars[stageID] {
		p.Stars[stageID] = stars
	}
	return firstClear
}
