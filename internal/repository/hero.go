package repository

import (
	"context"

	"github.com/daicaxom/tactics-server/internal/domain"
)

// Hero defines the data access required by HeroService.
type Hero interface {
	CreateHero(ctx context.Context, playerID string, hero *domain.Hero) error
	GetHero(ctx context.Context, playerID, heroID string) (*domain.Hero, error)
	ListHeroes(ctx context.Context, playerID string) ([]*domain.Hero, error)
	UpdateHero(ctx context.Context, playerID string, hero *domain.Hero) error
	OwnsHeroTemplate(ctx context.Context, playerID, templateID string) (bool, error)

	BeginTx(ctx context.Context) (HeroTx, error)
}

// HeroTx extends Tx with the hero/equipment/resource operations that a
// level-up, ascend, awaken, or equip call must commit atomically.
type HeroTx interface {
	Tx

	GetHeroForUpdate(ctx context.Context, playerID, heroID string) (*domain.Hero, error)
	UpdateHero(ctx context.Context, playerID string, hero *domain.Hero) error
	GetEquipmentForUpdate(ctx context.Context, playerID, equipmentID string) (*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, playerID string, equipment *domain.Equipment) error
	GetPlayerResourcesForUpdate(ctx context.Context, playerID string) (domain.Resources, error)
	UpdatePlayerResources(ctx context.Context, playerID string, resources domain.Resources) error
}
