package hero

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/event"
	"github.com/daicaxom/tactics-server/internal/repository"
)

type fakeHeroRepo struct {
	heroes map[string]*domain.Hero
}

func (f *fakeHeroRepo) CreateHero(ctx context.Context, playerID string, h *domain.Hero) error {
	f.heroes[h.ID] = h
	return nil
}
func (f *fakeHeroRepo) GetHero(ctx context.Context, playerID, heroID string) (*domain.Hero, error) {
	h, ok := f.heroes[heroID]
	if !ok {
		return nil, domain.ErrHeroNotFound
	}
	return h, nil
}
func (f *fakeHeroRepo) ListHeroes(ctx context.Context, playerID string) ([]*domain.Hero, error) {
	out := make([]*domain.Hero, 0, len(f.heroes))
	for _, h := range f.heroes {
		out = append(out, h)
	}
	return out, nil
}
func (f *fakeHeroRepo) UpdateHero(ctx context.Context, playerID string, h *domain.Hero) error {
	f.heroes[h.ID] = h
	return nil
}
func (f *fakeHeroRepo) OwnsHeroTemplate(ctx context.Context, playerID, templateID string) (bool, error) {
	return true, nil
}
func (f *fakeHeroRepo) BeginTx(ctx context.Context) (repository.HeroTx, error) { return nil, nil }

type fakeEquipmentRepo struct {
	items map[string]*domain.Equipment
}

func (f *fakeEquipmentRepo) CreateEquipment(ctx context.Context, playerID string, e *domain.Equipment) error {
	f.items[e.ID] = e
	return nil
}
func (f *fakeEquipmentRepo) GetEquipment(ctx context.Context, playerID, equipmentID string) (*domain.Equipment, error) {
	e, ok := f.items[equipmentID]
	if !ok {
		return nil, domain.ErrEquipmentNotFound
	}
	return e, nil
}
func (f *fakeEquipmentRepo) ListEquipment(ctx context.Context, playerID string) ([]*domain.Equipment, error) {
	out := make([]*domain.Equipment, 0, len(f.items))
	for _, e := range f.items {
		out = append(out, e)
	}
	return out, nil
}
func (f *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, playerID string, e *domain.Equipment) error {
	f.items[e.ID] = e
	return nil
}
func (f *fakeEquipmentRepo) DeleteEquipment(ctx context.Context, playerID, equipmentID string) error {
	delete(f.items, equipmentID)
	return nil
}
func (f *fakeEquipmentRepo) BeginTx(ctx context.Context) (repository.EquipmentTx, error) {
	return nil, nil
}

func newTestHero(id string, level, ascension int) *domain.Hero {
	return &domain.Hero{
		Character:      domain.NewCharacter(id, "Test Hero", domain.ElementKim, domain.GridPosition{}, domain.HexagonStats{HP: 1000}),
		TemplateID:     "tmpl-1",
		Level:          level,
		AscensionLevel: ascension,
		BasePower:      500,
	}
}

func TestLevelUp_GrantsExpAndPersists(t *testing.T) {
	heroes := &fakeHeroRepo{heroes: map[string]*domain.Hero{"hero-1": newTestHero("hero-1", 1, 0)}}
	svc := NewService(heroes, &fakeEquipmentRepo{items: map[string]*domain.Equipment{}}, event.NewMemoryBus())

	h, result, err := svc.LevelUp(context.Background(), "player-1", "hero-1", 1000)

	require.NoError(t, err)
	assert.True(t, result.LeveledUp)
	assert.Greater(t, h.Level, 1)
}

func TestLevelUp_RejectsAtMaxLevel(t *testing.T) {
	h := newTestHero("hero-1", 20, 0)
	heroes := &fakeHeroRepo{heroes: map[string]*domain.Hero{"hero-1": h}}
	svc := NewService(heroes, &fakeEquipmentRepo{items: map[string]*domain.Equipment{}}, event.NewMemoryBus())

	_, _, err := svc.LevelUp(context.Background(), "player-1", "hero-1", 100)

	assert.ErrorIs(t, err, domain.ErrHeroAlreadyMaxLevel)
}

func TestAscend_RejectsBelowLevelRequirement(t *testing.T) {
	h := newTestHero("hero-1", 10, 0)
	heroes := &fakeHeroRepo{heroes: map[string]*domain.Hero{"hero-1": h}}
	svc := NewService(heroes, &fakeEquipmentRepo{items: map[string]*domain.Equipment{}}, event.NewMemoryBus())

	_, err := svc.Ascend(context.Background(), "player-1", "hero-1")

	assert.ErrorIs(t, err, domain.ErrAscensionLocked)
}

func TestAscend_SucceedsAtLevelRequirement(t *testing.T) {
	h := newTestHero("hero-1", 20, 0)
	heroes := &fakeHeroRepo{heroes: map[string]*domain.Hero{"hero-1": h}}
	svc := NewService(heroes, &fakeEquipmentRepo{items: map[string]*domain.Equipment{}}, event.NewMemoryBus())

	updated, err := svc.Ascend(context.Background(), "player-1", "hero-1")

	require.NoError(t, err)
	assert.Equal(t, 1, updated.AscensionLevel)
}

func TestEquip_RejectsSlotMismatch(t *testing.T) {
	h := newTestHero("hero-1", 1, 0)
	heroes := &fakeHeroRepo{heroes: map[string]*domain.Hero{"hero-1": h}}
	item := &domain.Equipment{ID: "item-1", Type: domain.EquipmentArmor}
	equipment := &fakeEquipmentRepo{items: map[string]*domain.Equipment{"item-1": item}}
	svc := NewService(heroes, equipment, event.NewMemoryBus())

	_, err := svc.Equip(context.Background(), "player-1", "hero-1", domain.SlotWeapon, "item-1")

	assert.ErrorIs(t, err, domain.ErrEquipmentSlotMismatch)
}

func TestEquip_SucceedsAndRecordsHolder(t *testing.T) {
	h := newTestHero("hero-1", 1, 0)
	heroes := &fakeHeroRepo{heroes: map[string]*domain.Hero{"hero-1": h}}
	item := &domain.Equipment{ID: "item-1", Type: domain.EquipmentWeapon}
	equipment := &fakeEquipmentRepo{items: map[string]*domain.Equipment{"item-1": item}}
	svc := NewService(heroes, equipment, event.NewMemoryBus())

	updated, err := svc.Equip(context.Background(), "player-1", "hero-1", domain.SlotWeapon, "item-1")

	require.NoError(t, err)
	require.NotNil(t, updated.WeaponID)
	assert.Equal(t, "item-1", *updated.WeaponID)
	assert.Equal(t, "hero-1", *item.EquippedBy)
}
