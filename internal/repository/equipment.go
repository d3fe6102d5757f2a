package repository

import (
	"context"

	"github.com/daicaxom/tactics-server/internal/domain"
)

// Equipment defines the data access required by EquipmentService.
type Equipment interface {
	CreateEquipment(ctx context.Context, playerID string, equipment *domain.Equipment) error
	GetEquipment(ctx context.Context, playerID, equipmentID string) (*domain.Equipment, error)
	ListEquipment(ctx context.Context, playerID string) ([]*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, playerID string, equipment *domain.Equipment) error
	DeleteEquipment(ctx context.Context, playerID, equipmentID string) error

	BeginTx(ctx context.Context) (EquipmentTx, error)
}

// EquipmentTx extends Tx with the operations an enhance or fuse call must
// commit atomically: enhancement debits gold (no materials are consumed);
// fusion deletes inputs and creates a result piece.
type EquipmentTx interface {
	Tx

	GetEquipmentForUpdate(ctx context.Context, playerID, equipmentID string) (*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, playerID string, equipment *domain.Equipment) error
	DeleteEquipment(ctx context.Context, playerID, equipmentID string) error
	CreateEquipment(ctx context.Context, playerID string, equipment *domain.Equipment) error
	GetPlayerResourcesForUpdate(ctx context.Context, playerID string) (domain.Resources, error)
	UpdatePlayerResources(ctx context.Context, playerID string, resources domain.Resources) error
}
