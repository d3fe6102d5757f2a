package repository

import (
	"context"

	"github.com/daicaxom/tactics-server/internal/domain"
)

// Gacha defines the data access required by the Gacha Engine: per-(player,
// banner) pity and per-player pull history.
type Gacha interface {
	GetPity(ctx context.Context, playerID, bannerID string) (domain.PityCounter, error)
	AppendHistory(ctx context.Context, playerID string, record domain.PullRecord) error
	GetHistory(ctx context.Context, playerID string, limit int) ([]domain.PullRecord, error)

	BeginTx(ctx context.Context) (GachaTx, error)
}

// GachaTx extends Tx with the operations a single pull (or multi-pull)
// must commit atomically: pity read-modify-write, gem debit, hero grant,
// and history append, all serialized per (player, banner) per spec.md 5's
// "pity counter updates are linearizable" guarantee.
type GachaTx interface {
	Tx

	GetPityForUpdate(ctx context.Context, playerID, bannerID string) (domain.PityCounter, error)
	UpdatePity(ctx context.Context, counter domain.PityCounter) error
	GetPlayerResourcesForUpdate(ctx context.Context, playerID string) (domain.Resources, error)
	UpdatePlayerResources(ctx context.Context, playerID string, resources domain.Resources) error
	GrantHero(ctx context.Context, playerID string, hero *domain.Hero) error
	OwnsHeroTemplate(ctx context.Context, playerID, templateID string) (bool, error)
	AppendHistory(ctx context.Context, playerID string, record domain.PullRecord) error
}
