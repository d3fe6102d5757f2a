package repository

import (
	"context"

	"github.com/daicaxom/tactics-server/internal/domain"
)

// Player defines the data access required by PlayerService and AuthService.
type Player interface {
	CreatePlayer(ctx context.Context, player *domain.Player) error
	GetPlayer(ctx context.Context, id string) (*domain.Player, error)
	GetPlayerByUsername(ctx context.Context, username string) (*domain.Player, error)
	UpdatePlayer(ctx context.Context, player *domain.Player) error

	// ListPlayerIDs returns every registered player id, for batch
	// operations like the stamina regeneration worker.
	ListPlayerIDs(ctx context.Context) ([]string, error)

	// BeginTx opens a transaction scoping a single resource-mutating
	// operation, per spec.md 5's per-player critical section.
	BeginTx(ctx context.Context) (PlayerTx, error)
}

// PlayerTx extends Tx with the player-resource operations that must
// commit atomically with whatever hero/equipment/team mutation
// accompanies them.
type PlayerTx interface {
	Tx

	GetPlayerForUpdate(ctx context.Context, id string) (*domain.Player, error)
	UpdatePlayerResources(ctx context.Context, id string, resources domain.Resources) error
}
