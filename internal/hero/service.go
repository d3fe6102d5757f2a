// Package hero implements hero progression: exp-driven level-ups,
// ascension, awakening, and equipment slotting (spec.md 4.2/4.6).
//
// Grounded on internal/job/service.go's repo-backed Service/service shape
// and internal/stats for the shared growth-curve arithmetic.
package hero

import (
	"context"
	"fmt"
	"time"

	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/event"
	"github.com/daicaxom/tactics-server/internal/repository"
)

// Service defines the hero progression operations.
type Service interface {
	ListHeroes(ctx context.Context, playerID string) ([]*domain.Hero, error)
	GetHero(ctx context.Context, playerID, heroID string) (*domain.Hero, error)
	LevelUp(ctx context.Context, playerID, heroID string, expAmount int) (*domain.Hero, domain.LevelUpResult, error)
	Ascend(ctx context.Context, playerID, heroID string) (*domain.Hero, error)
	Awaken(ctx context.Context, playerID, heroID string) (*domain.Hero, error)
	Equip(ctx context.Context, playerID, heroID string, slot domain.EquipmentSlot, equipmentID string) (*domain.Hero, error)
	Unequip(ctx context.Context, playerID, heroID string, slot domain.EquipmentSlot) (*domain.Hero, error)
}

type service struct {
	heroes     repository.Hero
	equipment  repository.Equipment
	eventBus   event.Bus
}

// NewService wires the hero repository, the equipment repository equip
// validates against, and the event bus progression events publish on.
func NewService(heroes repository.Hero, equipment repository.Equipment, eventBus event.Bus) Service {
	return &service{heroes: heroes, equipment: equipment, eventBus: eventBus}
}

func (s *service) ListHeroes(ctx context.Context, playerID string) ([]*domain.Hero, error) {
	return s.heroes.ListHeroes(ctx, playerID)
}

func (s *service) GetHero(ctx context.Context, playerID, heroID string) (*domain.Hero, error) {
	return s.heroes.GetHero(ctx, playerID, heroID)
}

// LevelUp applies exp gain to the hero and persists the result, failing
// with ErrHeroAlreadyMaxLevel if the hero already sits at its current
// ascension-level cap.
func (s *service) LevelUp(ctx context.Context, playerID, heroID string, expAmount int) (*domain.Hero, domain.LevelUpResult, error) {
	h, err := s.heroes.GetHero(ctx, playerID, heroID)
	if err != nil {
		return nil, domain.LevelUpResult{}, fmt.Errorf("load hero: %w", err)
	}
	if h.Level >= h.MaxLevel() {
		return nil, domain.LevelUpResult{}, domain.ErrHeroAlreadyMaxLevel
	}

	result := h.GainExp(expAmount)
	if err := s.heroes.UpdateHero(ctx, playerID, h); err != nil {
		return nil, domain.LevelUpResult{}, fmt.Errorf("save hero: %w", err)
	}

	if result.LeveledUp {
		s.publish(ctx, domain.EventTypeHeroLeveledUp, domain.HeroLeveledUpPayload{
			PlayerID:  playerID,
			HeroID:    heroID,
			OldLevel:  result.OldLevel,
			NewLevel:  result.NewLevel,
			Timestamp: time.Now().Unix(),
		})
	}
	return h, result, nil
}

// Ascend raises the hero's ascension level by one, failing with
// ErrAscensionLocked if the level requirement for the next tier is not
// met or the axis is already exhausted.
func (s *service) Ascend(ctx context.Context, playerID, heroID string) (*domain.Hero, error) {
	h, err := s.heroes.GetHero(ctx, playerID, heroID)
	if err != nil {
		return nil, fmt.Errorf("load hero: %w", err)
	}
	if !h.CanAscend() {
		return nil, domain.ErrAscensionLocked
	}
	h.AscensionLevel++
	if err := s.heroes.UpdateHero(ctx, playerID, h); err != nil {
		return nil, fmt.Errorf("save hero: %w", err)
	}
	s.publish(ctx, domain.EventTypeHeroAscended, domain.HeroAscendedPayload{
		PlayerID:       playerID,
		HeroID:         heroID,
		AscensionLevel: h.AscensionLevel,
		Timestamp:      time.Now().Unix(),
	})
	return h, nil
}

// MaxAwakeningLevel is the awakening axis cap, per spec.md 4.2.
const MaxAwakeningLevel = 6

// Awaken raises the hero's awakening level by one, requiring the hero be
// at max level for its current ascension tier (spec.md 4.2's gating rule)
// and not already at the awakening cap.
func (s *service) Awaken(ctx context.Context, playerID, heroID string) (*domain.Hero, error) {
	h, err := s.heroes.GetHero(ctx, playerID, heroID)
	if err != nil {
		return nil, fmt.Errorf("load hero: %w", err)
	}
	if h.AwakeningLevel >= MaxAwakeningLevel || h.Level < h.MaxLevel() {
		return nil, domain.ErrAwakeningLocked
	}
	h.AwakeningLevel++
	if err := s.heroes.UpdateHero(ctx, playerID, h); err != nil {
		return nil, fmt.Errorf("save hero: %w", err)
	}
	s.publish(ctx, domain.EventTypeHeroAwakened, domain.HeroAwakenedPayload{
		PlayerID:       playerID,
		HeroID:         heroID,
		AwakeningLevel: h.AwakeningLevel,
		Timestamp:      time.Now().Unix(),
	})
	return h, nil
}

// Equip assigns equipmentID to slot, validating type/level/element
// requirements, and releases the item that previously occupied that slot.
func (s *service) Equip(ctx context.Context, playerID, heroID string, slot domain.EquipmentSlot, equipmentID string) (*domain.Hero, error) {
	h, err := s.heroes.GetHero(ctx, playerID, heroID)
	if err != nil {
		return nil, fmt.Errorf("load hero: %w", err)
	}
	item, err := s.equipment.GetEquipment(ctx, playerID, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("load equipment: %w", err)
	}
	if !slotMatches(slot, item.Type) {
		return nil, domain.ErrEquipmentSlotMismatch
	}
	if h.Level < item.RequiredLevel {
		return nil, domain.ErrEquipmentLevelReq
	}
	if item.RequiredElement != nil && *item.RequiredElement != h.Element {
		return nil, domain.ErrEquipmentElementReq
	}

	previous := h.SetEquipmentSlot(slot, &equipmentID)
	if err := s.heroes.UpdateHero(ctx, playerID, h); err != nil {
		return nil, fmt.Errorf("save hero: %w", err)
	}

	item.EquippedBy = &heroID
	if err := s.equipment.UpdateEquipment(ctx, playerID, item); err != nil {
		return nil, fmt.Errorf("save equipment: %w", err)
	}
	if previous != nil {
		if prevItem, err := s.equipment.GetEquipment(ctx, playerID, *previous); err == nil {
			prevItem.EquippedBy = nil
			_ = s.equipment.UpdateEquipment(ctx, playerID, prevItem)
		}
	}

	s.publish(ctx, domain.EventTypeHeroEquipped, domain.HeroEquippedPayload{
		PlayerID:    playerID,
		HeroID:      heroID,
		Slot:        slot,
		EquipmentID: equipmentID,
		PreviousID:  previous,
		Timestamp:   time.Now().Unix(),
	})
	return h, nil
}

// Unequip clears slot, a no-op if the slot was already empty.
func (s *service) Unequip(ctx context.Context, playerID, heroID string, slot domain.EquipmentSlot) (*domain.Hero, error) {
	h, err := s.heroes.GetHero(ctx, playerID, heroID)
	if err != nil {
		return nil, fmt.Errorf("load hero: %w", err)
	}
	previous := h.SetEquipmentSlot(slot, nil)
	if previous == nil {
		return h, nil
	}
	if err := s.heroes.UpdateHero(ctx, playerID, h); err != nil {
		return nil, fmt.Errorf("save hero: %w", err)
	}
	if prevItem, err := s.equipment.GetEquipment(ctx, playerID, *previous); err == nil {
		prevItem.EquippedBy = nil
		_ = s.equipment.UpdateEquipment(ctx, playerID, prevItem)
	}
	return h, nil
}

func slotMatches(slot domain.EquipmentSlot, t domain.EquipmentType) bool {
	switch slot {
	case domain.SlotWeapon:
		return t == domain.EquipmentWeapon
	case domain.SlotArmor:
		return t == domain.EquipmentArmor
	case domain.SlotAccessory:
		return t == domain.EquipmentAccessory
	case domain.SlotRelic:
		return t == domain.EquipmentRelic
	default:
		return false
	}
}

func (s *service) publish(ctx context.Context, eventType string, payload any) {
	if s.eventBus == nil {
		return
	}
	_ = s.eventBus.Publish(ctx, event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.Type(eventType),
		Payload: payload,
	})
}
