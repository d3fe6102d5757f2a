// Package player implements account profile and resource operations
// (spec.md 4.2/5), grounded on internal/economy's debit/credit shape:
// a transactional handle wraps the mutation so a resource change never
// partially applies.
package player

import (
	"context"
	"fmt"

	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/repository"
)

// Service defines the player profile and resource operations.
type Service interface {
	GetProfile(ctx context.Context, playerID string) (*domain.Player, error)
	CreditResources(ctx context.Context, playerID string, gold, gems, stamina int64) (domain.Resources, error)
	DebitResources(ctx context.Context, playerID string, gold, gems, stamina int64) (domain.Resources, error)

	// RegenerateStamina credits amount stamina (clamped at each player's
	// max) to every registered player, for the periodic stamina
	// regeneration worker. It reports how many players were updated and
	// does not fail the batch over a single player's error.
	RegenerateStamina(ctx context.Context, amount int64) (int, error)
}

type service struct {
	players repository.Player
}

// NewService wires the player repository profile reads and resource
// mutations are persisted through.
func NewService(players repository.Player) Service {
	return &service{players: players}
}

func (s *service) GetProfile(ctx context.Context, playerID string) (*domain.Player, error) {
	return s.players.GetPlayer(ctx, playerID)
}

// CreditResources adds the given amounts to playerID's resources, stamina
// clamped at the player's max, persisting under a per-player lock.
func (s *service) CreditResources(ctx context.Context, playerID string, gold, gems, stamina int64) (domain.Resources, error) {
	return s.mutate(ctx, playerID, func(resources *domain.Resources) error {
		resources.Credit(gold, gems, stamina)
		return nil
	})
}

// DebitResources subtracts the given amounts, failing with the specific
// named underflow error (and no mutation) if any component is insufficient.
func (s *service) DebitResources(ctx context.Context, playerID string, gold, gems, stamina int64) (domain.Resources, error) {
	return s.mutate(ctx, playerID, func(resources *domain.Resources) error {
		return resources.Debit(gold, gems, stamina)
	})
}

// RegenerateStamina walks every registered player and credits amount
// stamina, skipping any player whose update fails so one bad record
// cannot stall the whole sweep. It returns the number of players
// updated; skipped players are not logged.
func (s *service) RegenerateStamina(ctx context.Context, amount int64) (int, error) {
	ids, err := s.players.ListPlayerIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list players: %w", err)
	}

	regenerated := 0
	for _, id := range ids {
		if _, err := s.CreditResources(ctx, id, 0, 0, amount); err != nil {
			continue
		}
		regenerated++
	}
	return regenerated, nil
}

func (s *service) mutate(ctx context.Context, playerID string, apply func(*domain.Resources) error) (domain.Resources, error) {
	tx, err := s.players.BeginTx(ctx)
	if err != nil {
		return domain.Resources{}, fmt.Errorf("begin player tx: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	p, err := tx.GetPlayerForUpdate(ctx, playerID)
	if err != nil {
		return domain.Resources{}, fmt.Errorf("load player: %w", err)
	}
	if err := apply(&p.Resources); err != nil {
		return domain.Resources{}, err
	}
	if err := tx.UpdatePlayerResources(ctx, playerID, p.Resources); err != nil {
		return domain.Resources{}, fmt.Errorf("save resources: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Resources{}, fmt.Errorf("commit player tx: %w", err)
	}
	return p.Resources, nil
}
