package repository

import (
	"context"

	"github.com/daicaxom/tactics-server/internal/domain"
)

// Story defines the data access required by StoryService.
type Story interface {
	GetProgress(ctx context.Context, playerID string) (*domain.StoryProgress, error)

	BeginTx(ctx context.Context) (StoryTx, error)
}

// StoryTx extends Tx with the operations a stage start/complete call must
// commit atomically with the accompanying stamina debit or reward credit.
type StoryTx interface {
	Tx

	GetProgressForUpdate(ctx context.Context, playerID string) (*domain.StoryProgress, error)
	UpdateProgress(ctx context.Context, progress *domain.StoryProgress) error
	GetPlayerResourcesForUpdate(ctx context.Context, playerID string) (domain.Resources, error)
	UpdatePlayerResources(ctx context.Context, playerID string, resources domain.Resources) error
}
