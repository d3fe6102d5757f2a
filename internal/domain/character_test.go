package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharacter_TakeDamageClampsAtZero(t *testing.T) {
	c := NewCharacter("c1", "Test", ElementKim, GridPosition{}, HexagonStats{HP: 50})

	dmg, died := c.TakeDamage(70)

	assert.Equal(t, 50, dmg)
	assert.True(t, died)
	assert.Equal(t, 0, c.CurrentHP)
}

func TestCharacter_HealClampsAtMax(t *testing.T) {
	c := NewCharacter("c1", "Test", ElementKim, GridPosition{}, HexagonStats{HP: 50})
	c.CurrentHP = 50

	healed := c.Heal(10)

	assert.Equal(t, 0, healed, "heal on full HP must report actual_heal = 0")
}

func TestCharacter_SpendManaFailsWithoutMutation(t *testing.T) {
	c := NewCharacter("c1", "Test", ElementKim, GridPosition{}, HexagonStats{HP: 50})
	c.CurrentMana = 10

	err := c.SpendMana(20)

	assert.ErrorIs(t, err, ErrInsufficientMana)
	assert.Equal(t, 10, c.CurrentMana)
}

func TestCharacter_GainManaClampsAtMax(t *testing.T) {
	c := NewCharacter("c1", "Test", ElementKim, GridPosition{}, HexagonStats{HP: 50})
	c.CurrentMana = 95

	c.GainMana(20)

	assert.Equal(t, MaxMana, c.CurrentMana)
}

func TestCharacter_IsAlive(t *testing.T) {
	c := NewCharacter("c1", "Test", ElementKim, GridPosition{}, HexagonStats{HP: 50})
	assert.True(t, c.IsAlive())

	c.TakeDamage(50)
	assert.False(t, c.IsAlive())
}
