package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeam_AddMember_RejectsDuplicatePosition(t *testing.T) {
	team := &Team{Slots: []TeamSlot{{HeroID: "h1", Position: GridPosition{X: 0, Y: 0}}}}

	err := team.AddMember("h2", GridPosition{X: 0, Y: 0})

	assert.ErrorIs(t, err, ErrDuplicatePosition)
	assert.Len(t, team.Slots, 1, "rejected add must not mutate the team")
}

func TestTeam_AddMember_RejectsDuplicateHero(t *testing.T) {
	team := &Team{Slots: []TeamSlot{{HeroID: "h1", Position: GridPosition{X: 0, Y: 0}}}}

	err := team.AddMember("h1", GridPosition{X: 1, Y: 1})

	assert.ErrorIs(t, err, ErrDuplicateHeroInTeam)
	assert.Len(t, team.Slots, 1)
}

func TestTeam_AddMember_RejectsOverCap(t *testing.T) {
	team := &Team{}
	for i := 0; i < MaxTeamMembers; i++ {
		err := team.AddMember(string(rune('a'+i)), GridPosition{X: i % 3, Y: i / 3})
		assert.NoError(t, err)
	}

	err := team.AddMember("overflow", GridPosition{X: 2, Y: 2})

	assert.ErrorIs(t, err, ErrTeamFull)
	assert.Len(t, team.Slots, MaxTeamMembers)
}

func TestTeam_RemoveMember_OnEmptySlotIsNoOp(t *testing.T) {
	team := &Team{Slots: []TeamSlot{{HeroID: "h1", Position: GridPosition{}}}}

	team.RemoveMember("does-not-exist")

	assert.Len(t, team.Slots, 1)
}

func TestTeam_ElementSynergyPower_CountsAdjacentSameElementPairs(t *testing.T) {
	team := &Team{Slots: []TeamSlot{
		{HeroID: "h1", Position: GridPosition{X: 0, Y: 0}},
		{HeroID: "h2", Position: GridPosition{X: 1, Y: 0}},
		{HeroID: "h3", Position: GridPosition{X: 2, Y: 2}},
	}}
	elements := map[string]Element{"h1": ElementKim, "h2": ElementKim, "h3": ElementMoc}

	power := team.ElementSynergyPower(func(id string) (Element, bool) {
		e, ok := elements[id]
		return e, ok
	})

	assert.Equal(t, ElementSynergyBonus, power)
}

func TestFormation_IsActiveFor_RequiresDistinctElements(t *testing.T) {
	min := 3
	formation := &Formation{RequiredDistinctElements: &min}

	assert.False(t, formation.IsActiveFor(nil, []Element{ElementKim, ElementKim}))
	assert.True(t, formation.IsActiveFor(nil, []Element{ElementKim, ElementMoc, ElementTho}))
}

func TestFormation_IsActiveFor_RequiresHeroTemplates(t *testing.T) {
	formation := &Formation{RequiredHeroTemplates: []string{"quan_vu"}}

	assert.False(t, formation.IsActiveFor([]string{"other"}, nil))
	assert.True(t, formation.IsActiveFor([]string{"quan_vu", "other"}, nil))
}
