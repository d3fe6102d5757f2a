package domain

// MaxTeamMembers is the per-team slot cap.
const MaxTeamMembers = 5

// MaxTeamsPerPlayer is the per-player team-count cap.
const MaxTeamsPerPlayer = 10

// ElementSynergyBonus is the flat power bonus granted per unordered
// same-element adjacent hero pair in a team.
const ElementSynergyBonus = 50

// TeamSlot places one owned hero at one grid position within a team.
type TeamSlot struct {
	HeroID   string       `json:"hero_id"`
	Position GridPosition `json:"position"`
}

// Team is an owned composition of up to MaxTeamMembers heroes, optionally
// bound to a Formation.
type Team struct {
	ID            string     `json:"id"`
	PlayerID      string     `json:"player_id"`
	Name          string     `json:"name"`
	Slots         []TeamSlot `json:"slots"`
	FormationID   *string    `json:"formation_id,omitempty"`
	IsDefault     bool       `json:"is_default"`
}

// Validate enforces the team's structural invariants: unique slot
// positions, unique heroes, and the member cap.
func (t *Team) Validate() error {
	if len(t.Slots) > MaxTeamMembers {
		return ErrTeamFull
	}
	seenPositions := make(map[GridPosition]bool, len(t.Slots))
	seenHeroes := make(map[string]bool, len(t.Slots))
	for _, slot := range t.Slots {
		if seenPositions[slot.Position] {
			return ErrDuplicatePosition
		}
		seenPositions[slot.Position] = true
		if seenHeroes[slot.HeroID] {
			return ErrDuplicateHeroInTeam
		}
		seenHeroes[slot.HeroID] = true
	}
	return nil
}

// AddMember appends a hero at a position, failing without mutation if
// doing so would violate a team invariant.
func (t *Team) AddMember(heroID string, position GridPosition) error {
	candidate := Team{Slots: append(append([]TeamSlot{}, t.Slots...), TeamSlot{HeroID: heroID, Position: position})}
	if err := candidate.Validate(); err != nil {
		return err
	}
	t.Slots = candidate.Slots
	return nil
}

// RemoveMember drops the slot holding heroID, a no-op if the hero is not
// on the team.
func (t *Team) RemoveMember(heroID string) {
	kept := t.Slots[:0:0]
	for _, slot := range t.Slots {
		if slot.HeroID != heroID {
			kept = append(kept, slot)
		}
	}
	t.Slots = kept
}

// ElementSynergyPower sums ElementSynergyBonus for every unordered
// adjacent pair of same-element heroes, given a lookup of hero elements
// by id.
func (t *Team) ElementSynergyPower(elementOf func(heroID string) (Element, bool)) int {
	bonus := 0
	for i := 0; i < len(t.Slots); i++ {
		ei, ok := elementOf(t.Slots[i].HeroID)
		if !ok {
			continue
		}
		for j := i + 1; j < len(t.Slots); j++ {
			if !t.Slots[i].Position.IsAdjacent(t.Slots[j].Position) {
				continue
			}
			ej, ok := elementOf(t.Slots[j].HeroID)
			if !ok || ej != ei {
				continue
			}
			bonus += ElementSynergyBonus
		}
	}
	return bonus
}
