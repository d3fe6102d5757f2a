// Package session implements the Session Store (spec.md 4.7): ephemeral
// per-player battle state keyed by battle id, with a secondary
// player-id -> active-battle-id index, and a capped per-battle action
// log. Battles are never persisted to the durable store; they live here
// for the duration of play and are discarded once a terminal result is
// observed and rewards are applied.
//
// Grounded on internal/concurrency's LockManager (named sync.Mutex over
// sync.Map) for the per-(player|battle) critical section spec.md 5
// requires, and the teacher's internal/eventlog for the capped
// append-only log shape.
package session

import (
	"sync"

	"github.com/daicaxom/tactics-server/internal/concurrency"
	"github.com/daicaxom/tactics-server/internal/domain"
)

// ActionHistoryCap is the per-player action-history cap, per spec.md 9's
// open-question resolution (100, distinct from the gacha history cap of
// 500).
const ActionHistoryCap = 100

// Store holds live battles in memory, safe for concurrent access by the
// HTTP layer: the maps are guarded by mu, and callers serialize engine
// steps on a single battle with the per-battle mutex Lock returns. Get
// returns the live battle pointer, not a copy.
type Store struct {
	mu           sync.RWMutex
	battles      map[string]*domain.Battle
	activeByPlayer map[string]string // player id -> battle id

	history   map[string][]domain.ActionLogEntry // player id -> capped history
	historyMu sync.Mutex

	// extras holds package-opaque per-battle state the engine owns (the
	// per-battle RNG and resolved skill instances). Typed as any to avoid
	// an import cycle between session and battle.
	extras map[string]any

	locks *concurrency.LockManager
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		battles:        make(map[string]*domain.Battle),
		activeByPlayer: make(map[string]string),
		history:        make(map[string][]domain.ActionLogEntry),
		extras:         make(map[string]any),
		locks:          concurrency.NewLockManager(),
	}
}

// Lock returns the mutex guarding battleID's critical section. Callers
// must hold it for the duration of any engine step that mutates the
// battle, per spec.md 5's "no interleaving of mutations on the same
// aggregate" contract.
func (s *Store) Lock(battleID string) *sync.Mutex {
	return s.locks.GetLock(battleID)
}

// Put inserts or replaces a battle and, if the player has no other active
// battle recorded, indexes it as their active battle.
func (s *Store) Put(battle *domain.Battle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.battles[battle.ID] = battle
	if _, exists := s.activeByPlayer[battle.PlayerID]; !exists {
		s.activeByPlayer[battle.PlayerID] = battle.ID
	}
}

// Get returns the live battle for battleID, or nil if none is tracked.
func (s *Store) Get(battleID string) *domain.Battle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.battles[battleID]
}

// ActiveBattleID returns the battle id currently active for playerID, if
// any.
func (s *Store) ActiveBattleID(playerID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.activeByPlayer[playerID]
	return id, ok
}

// Remove drops a finished battle from the store and clears its
// player's active-battle index entry.
func (s *Store) Remove(battleID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	battle, ok := s.battles[battleID]
	if !ok {
		return
	}
	delete(s.battles, battleID)
	delete(s.extras, battleID)
	if s.activeByPlayer[battle.PlayerID] == battleID {
		delete(s.activeByPlayer, battle.PlayerID)
	}
}

// SetExtra attaches engine-owned state to battleID, overwriting any
// previous value.
func (s *Store) SetExtra(battleID string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.extras[battleID] = v
}

// Extra returns the engine-owned state attached to battleID, if any.
func (s *Store) Extra(battleID string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.extras[battleID]
	return v, ok
}

// AppendHistory records entries for playerID, capping the stored history
// at ActionHistoryCap by dropping the oldest entries first.
func (s *Store) AppendHistory(playerID string, entries ...domain.ActionLogEntry) {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()
	combined := append(s.history[playerID], entries...)
	if len(combined) > ActionHistoryCap {
		combined = combined[len(combined)-ActionHistoryCap:]
	}
	s.history[playerID] = combined
}

// History returns playerID's action history in reverse-chronological
// order (most recent first).
func (s *Store) History(playerID string) []domain.ActionLogEntry {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()
	src := s.history[playerID]
	out := make([]domain.ActionLogEntry, len(src))
	for i, entry := range src {
		out[len(src)-1-i] = entry
	}
	return out
}
