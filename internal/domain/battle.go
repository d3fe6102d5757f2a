package domain

import "sort"

// BattleState is the battle's lifecycle stage.
type BattleState string

const (
	BattleStatePreparing  BattleState = "preparing"
	BattleStateInProgress BattleState = "in_progress"
	BattleStateVictory    BattleState = "victory"
	BattleStateDefeat     BattleState = "defeat"
	BattleStateRetreat    BattleState = "retreat"
)

// BattleResult is the terminal outcome of a finished battle.
type BattleResult string

const (
	BattleResultVictory BattleResult = "victory"
	BattleResultDefeat  BattleResult = "defeat"
	BattleResultRetreat BattleResult = "retreat"
)

// DefaultManaPerTurn is the mana every character gains at the start of
// its own turn.
const DefaultManaPerTurn = 20

// ActionLogEntry is one accepted engine action, recorded in the order the
// engine accepted it.
type ActionLogEntry struct {
	TurnNumber  int    `json:"turn_number"`
	ActorID     string `json:"actor_id"`
	Description string `json:"description"`
}

// TurnOrder holds the living-participant turn sequence for a Battle and
// the index of the character whose turn it currently is.
type TurnOrder struct {
	order        []string
	currentIndex int
}

// Recalculate rebuilds the order from the given living characters, sorted
// by descending speed (stable so equal-speed ties keep catalog order).
func (t *TurnOrder) Recalculate(living []*Character) {
	sorted := make([]*Character, len(living))
	copy(sorted, living)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Stats.Spd > sorted[j].Stats.Spd
	})
	ids := make([]string, len(sorted))
	for i, c := range sorted {
		ids[i] = c.ID
	}
	t.order = ids
	if t.currentIndex >= len(t.order) {
		t.currentIndex = 0
	}
}

// Order returns the current turn sequence by character id.
func (t *TurnOrder) Order() []string {
	return t.order
}

// Current returns the id of the character whose turn it currently is, or
// "" if the order is empty.
func (t *TurnOrder) Current() string {
	if t.currentIndex >= len(t.order) {
		return ""
	}
	return t.order[t.currentIndex]
}

// Advance moves to the next character in the order, wrapping to 0 and
// reporting true if it wrapped (a new round started).
func (t *TurnOrder) Advance() (wrapped bool) {
	if len(t.order) == 0 {
		return false
	}
	t.currentIndex++
	if t.currentIndex >= len(t.order) {
		t.currentIndex = 0
		return true
	}
	return false
}

// RemoveCharacter drops id from the order, e.g. on death, and resets the
// current index to 0 if it would otherwise fall out of range.
func (t *TurnOrder) RemoveCharacter(id string) {
	kept := t.order[:0:0]
	for _, existing := range t.order {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	t.order = kept
	if t.currentIndex >= len(t.order) {
		t.currentIndex = 0
	}
}

// Battle is the per-session engine state: participants, lifecycle state,
// turn bookkeeping, and the action log.
type Battle struct {
	ID          string      `json:"id"`
	PlayerID    string      `json:"player_id"`
	StageID     string      `json:"stage_id"`
	PlayerTeam  []*Hero     `json:"player_team"`
	EnemyTeam   []*Enemy    `json:"enemy_team"`
	BossTeam    []*Boss     `json:"boss_team,omitempty"`
	State       BattleState `json:"state"`
	TurnNumber  int         `json:"turn_number"`
	ManaPerTurn int         `json:"mana_per_turn"`
	Weather     *string     `json:"weather,omitempty"`
	TurnOrder   TurnOrder   `json:"-"`
	ActionLog   []ActionLogEntry `json:"action_log,omitempty"`
}

// NewBattle constructs a Battle in the Preparing state with the default
// per-turn mana grant.
func NewBattle(id, playerID, stageID string, playerTeam []*Hero, enemyTeam []*Enemy) *Battle {
	return &Battle{
		ID:          id,
		PlayerID:    playerID,
		StageID:     stageID,
		PlayerTeam:  playerTeam,
		EnemyTeam:   enemyTeam,
		State:       BattleStatePreparing,
		TurnNumber:  1,
		ManaPerTurn: DefaultManaPerTurn,
	}
}

// LivingCharacters returns every alive participant across both teams, as
// the common Character pointers the TurnOrder operates on.
func (b *Battle) LivingCharacters() []*Character {
	living := make([]*Character, 0, len(b.PlayerTeam)+len(b.EnemyTeam)+len(b.BossTeam))
	for _, h := range b.PlayerTeam {
		if h.IsAlive() {
			living = append(living, &h.Character)
		}
	}
	for _, e := range b.EnemyTeam {
		if e.IsAlive() {
			living = append(living, &e.Character)
		}
	}
	for _, boss := range b.BossTeam {
		if boss.IsAlive() {
			living = append(living, &boss.Character)
		}
	}
	return living
}

// LivingHeroes returns the player team's currently-alive heroes.
func (b *Battle) LivingHeroes() []*Hero {
	out := make([]*Hero, 0, len(b.PlayerTeam))
	for _, h := range b.PlayerTeam {
		if h.IsAlive() {
			out = append(out, h)
		}
	}
	return out
}

// LivingEnemies returns the enemy side's currently-alive combatants
// (enemies and bosses together).
func (b *Battle) LivingEnemies() []*Character {
	out := make([]*Character, 0, len(b.EnemyTeam)+len(b.BossTeam))
	for _, e := range b.EnemyTeam {
		if e.IsAlive() {
			out = append(out, &e.Character)
		}
	}
	for _, boss := range b.BossTeam {
		if boss.IsAlive() {
			out = append(out, &boss.Character)
		}
	}
	return out
}

// CharacterByID finds a participant by id across both teams.
func (b *Battle) CharacterByID(id string) *Character {
	for _, h := range b.PlayerTeam {
		if h.ID == id {
			return &h.Character
		}
	}
	for _, e := range b.EnemyTeam {
		if e.ID == id {
			return &e.Character
		}
	}
	for _, boss := range b.BossTeam {
		if boss.ID == id {
			return &boss.Character
		}
	}
	return nil
}

// IsPlayerTurn reports whether the current actor belongs to the player
// team.
func (b *Battle) IsPlayerTurn() bool {
	current := b.TurnOrder.Current()
	for _, h := range b.PlayerTeam {
		if h.ID == current {
			return true
		}
	}
	return false
}

// CalculateTurnOrder rebuilds the turn order from the battle's currently
// living participants.
func (b *Battle) CalculateTurnOrder() {
	b.TurnOrder.Recalculate(b.LivingCharacters())
}

// LogAction appends an entry to the battle's action log, in acceptance
// order.
func (b *Battle) LogAction(actorID, description string) {
	b.ActionLog = append(b.ActionLog, ActionLogEntry{
		TurnNumber:  b.TurnNumber,
		ActorID:     actorID,
		Description: description,
	})
}

// CheckEnd reports the battle's terminal result, or nil if it should
// continue.
func (b *Battle) CheckEnd() *BattleResult {
	if len(b.LivingEnemies()) == 0 {
		result := BattleResultVictory
		return &result
	}
	if len(b.LivingHeroes()) == 0 {
		result := BattleResultDefeat
		return &result
	}
	return nil
}

// EndBattle transitions the battle to the state matching result.
func (b *Battle) EndBattle(result BattleResult) {
	switch result {
	case BattleResultVictory:
		b.State = BattleStateVictory
	case BattleResultDefeat:
		b.State = BattleStateDefeat
	case BattleResultRetreat:
		b.State = BattleStateRetreat
	}
}

// IsEnded reports whether the battle has reached a terminal state.
func (b *Battle) IsEnded() bool {
	switch b.State {
	case BattleStateVictory, BattleStateDefeat, BattleStateRetreat:
		return true
	default:
		return false
	}
}

// BattleRewards is the computed outcome of a finished battle.
type BattleRewards struct {
	Exp         int      `json:"exp"`
	Gold        int      `json:"gold"`
	Drops       []string `json:"drops,omitempty"`
	Stars       int      `json:"stars"`
	FirstClear  bool     `json:"first_clear"`
}
