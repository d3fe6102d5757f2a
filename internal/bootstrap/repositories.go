package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daicaxom/tactics-server/internal/repository"
	"github.com/daicaxom/tactics-server/internal/repository/postgres"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Player    repository.Player
	Hero      repository.Hero
	Equipment repository.Equipment
	Team      repository.Team
	Story     repository.Story
	Gacha     repository.Gacha
}

// InitializeRepositories creates all repository implementations. Every
// aggregate repository here shares the same pool; transactional work is
// scoped per-call through each repository's BeginTx.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Player:    postgres.NewPlayerRepository(dbPool),
		Hero:      postgres.NewHeroRepository(dbPool),
		Equipment: postgres.NewEquipmentRepository(dbPool),
		Team:      postgres.NewTeamRepository(dbPool),
		Story:     postgres.NewStoryRepository(dbPool),
		Gacha:     postgres.NewGachaRepository(dbPool),
	}
}
