// Package equipment implements equipment enhancement and fusion
// (spec.md 4.6), grounded on internal/crafting's recipe-consumption
// transaction shape: validate, debit/consume, mutate, persist, commit.
package equipment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/event"
	"github.com/daicaxom/tactics-server/internal/repository"
)

// Service defines the equipment operations.
type Service interface {
	ListEquipment(ctx context.Context, playerID string) ([]*domain.Equipment, error)
	Enhance(ctx context.Context, playerID, equipmentID string) (*domain.Equipment, error)
	Fuse(ctx context.Context, playerID string, inputIDs []string) (*domain.Equipment, error)
}

type service struct {
	equipment repository.Equipment
	eventBus  event.Bus
}

// NewService wires the equipment repository (whose transactional handle
// also reaches player resources, for the gold debit enhancement needs)
// and the event bus.
func NewService(equipment repository.Equipment, eventBus event.Bus) Service {
	return &service{equipment: equipment, eventBus: eventBus}
}

func (s *service) ListEquipment(ctx context.Context, playerID string) ([]*domain.Equipment, error) {
	return s.equipment.ListEquipment(ctx, playerID)
}

// Enhance raises an equipment item's level by one, debiting its gold
// cost atomically with the level increment, failing with
// ErrEquipmentMaxLevel once the item hits its rarity's level cap.
func (s *service) Enhance(ctx context.Context, playerID, equipmentID string) (*domain.Equipment, error) {
	tx, err := s.equipment.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin equipment tx: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	item, err := tx.GetEquipmentForUpdate(ctx, playerID, equipmentID)
	if err != nil {
		return nil, fmt.Errorf("load equipment: %w", err)
	}
	if item.Level >= item.MaxLevel() {
		return nil, domain.ErrEquipmentMaxLevel
	}

	cost := item.EnhancementCost()
	resources, err := tx.GetPlayerResourcesForUpdate(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("load resources: %w", err)
	}
	if err := resources.Debit(int64(cost), 0, 0); err != nil {
		return nil, err
	}

	delta := item.EnhancementDelta()
	item.BonusStats = item.BonusStats.Add(delta)
	item.Level++

	if err := tx.UpdateEquipment(ctx, playerID, item); err != nil {
		return nil, fmt.Errorf("save equipment: %w", err)
	}
	if err := tx.UpdatePlayerResources(ctx, playerID, resources); err != nil {
		return nil, fmt.Errorf("save resources: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit equipment tx: %w", err)
	}

	s.publish(ctx, domain.EventTypeEquipmentEnhanced, domain.EquipmentEnhancedPayload{
		PlayerID:    playerID,
		EquipmentID: equipmentID,
		NewLevel:    item.Level,
		GoldCost:    cost,
		Timestamp:   time.Now().Unix(),
	})
	return item, nil
}

// Fuse consumes inputIDs (at least two, per ErrFusionInputCount) and
// creates one result item at the highest input rarity with the combined
// inputs' total stats as its base stats.
func (s *service) Fuse(ctx context.Context, playerID string, inputIDs []string) (*domain.Equipment, error) {
	if len(inputIDs) < 2 {
		return nil, domain.ErrFusionInputCount
	}

	tx, err := s.equipment.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin equipment tx: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	var combined domain.HexagonStats
	var highestRarity domain.EquipmentRarity = domain.RarityCommon
	var equipType domain.EquipmentType
	for i, id := range inputIDs {
		item, err := tx.GetEquipmentForUpdate(ctx, playerID, id)
		if err != nil {
			return nil, fmt.Errorf("load fusion input %s: %w", id, err)
		}
		if i == 0 {
			equipType = item.Type
		}
		combined = combined.Add(item.TotalStats())
		if rarityRank(item.Rarity) > rarityRank(highestRarity) {
			highestRarity = item.Rarity
		}
		if err := tx.DeleteEquipment(ctx, playerID, id); err != nil {
			return nil, fmt.Errorf("consume fusion input %s: %w", id, err)
		}
	}

	result := &domain.Equipment{
		ID:        uuid.NewString(),
		Type:      equipType,
		Rarity:    highestRarity,
		Level:     1,
		BaseStats: combined,
	}
	if err := tx.CreateEquipment(ctx, playerID, result); err != nil {
		return nil, fmt.Errorf("save fusion result: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit equipment tx: %w", err)
	}

	s.publish(ctx, domain.EventTypeEquipmentFused, domain.EquipmentFusedPayload{
		PlayerID:  playerID,
		InputIDs:  inputIDs,
		ResultID:  result.ID,
		Timestamp: time.Now().Unix(),
	})
	return result, nil
}

var rarityOrder = map[domain.EquipmentRarity]int{
	domain.RarityCommon:    0,
	domain.RarityRare:      1,
	domain.RarityEpic:      2,
	domain.RarityLegendary: 3,
	domain.RarityMythic:    4,
}

func rarityRank(r domain.EquipmentRarity) int {
	return rarityOrder[r]
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
