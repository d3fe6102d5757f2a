package repository

import (
	"context"

	"github.com/daicaxom/tactics-server/internal/domain"
)

// Team defines the data access required by TeamService.
type Team interface {
	CreateTeam(ctx context.Context, team *domain.Team) error
	GetTeam(ctx context.Context, playerID, teamID string) (*domain.Team, error)
	ListTeams(ctx context.Context, playerID string) ([]*domain.Team, error)
	UpdateTeam(ctx context.Context, team *domain.Team) error
	DeleteTeam(ctx context.Context, playerID, teamID string) error
	CountTeams(ctx context.Context, playerID string) (int, error)
}
