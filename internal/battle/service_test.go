package battle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daicaxom/tactics-server/internal/catalog"
	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/event"
	"github.com/daicaxom/tactics-server/internal/repository"
	"github.com/daicaxom/tactics-server/internal/session"
)

// fakeHeroRepo and fakeTeamRepo give the service real, in-memory heroes and
// teams to resolve without standing up a database.
type fakeHeroRepo struct {
	heroes map[string]*domain.Hero
}

func (f *fakeHeroRepo) CreateHero(ctx context.Context, playerID string, hero *domain.Hero) error {
	return nil
}
func (f *fakeHeroRepo) GetHero(ctx context.Context, playerID, heroID string) (*domain.Hero, error) {
	h, ok := f.heroes[heroID]
	if !ok {
		return nil, domain.ErrHeroNotFound
	}
	cp := *h
	return &cp, nil
}
func (f *fakeHeroRepo) ListHeroes(ctx context.Context, playerID string) ([]*domain.Hero, error) {
	out := make([]*domain.Hero, 0, len(f.heroes))
	for _, h := range f.heroes {
		out = append(out, h)
	}
	return out, nil
}
func (f *fakeHeroRepo) UpdateHero(ctx context.Context, playerID string, hero *domain.Hero) error {
	return nil
}
func (f *fakeHeroRepo) OwnsHeroTemplate(ctx context.Context, playerID, templateID string) (bool, error) {
	return true, nil
}
func (f *fakeHeroRepo) BeginTx(ctx context.Context) (repository.HeroTx, error) { return nil, nil }

type fakeTeamRepo struct {
	teams map[string]*domain.Team
}

func (f *fakeTeamRepo) CreateTeam(ctx context.Context, team *domain.Team) error { return nil }
func (f *fakeTeamRepo) GetTeam(ctx context.Context, playerID, teamID string) (*domain.Team, error) {
	t, ok := f.teams[teamID]
	if !ok {
		return nil, domain.ErrTeamNotFound
	}
	return t, nil
}
func (f *fakeTeamRepo) ListTeams(ctx context.Context, playerID string) ([]*domain.Team, error) {
	return nil, nil
}
func (f *fakeTeamRepo) UpdateTeam(ctx context.Context, team *domain.Team) error { return nil }
func (f *fakeTeamRepo) DeleteTeam(ctx context.Context, playerID, teamID string) error {
	return nil
}
func (f *fakeTeamRepo) CountTeams(ctx context.Context, playerID string) (int, error) {
	return len(f.teams), nil
}

// fakeStoryRepo/fakeStoryTx give CalculateRewards a minimal transactional
// story-progress store.
type fakeStoryRepo struct {
	progress *domain.StoryProgress
}

func (f *fakeStoryRepo) GetProgress(ctx context.Context, playerID string) (*domain.StoryProgress, error) {
	return f.progress, nil
}
func (f *fakeStoryRepo) BeginTx(ctx context.Context) (repository.StoryTx, error) {
	return &fakeStoryTx{repo: f}, nil
}

type fakeStoryTx struct {
	repo      *fakeStoryRepo
	committed bool
	closed    bool
}

func (tx *fakeStoryTx) Commit(ctx context.Context) error   { tx.committed = true; tx.closed = true; return nil }
func (tx *fakeStoryTx) Rollback(ctx context.Context) error {
	if tx.closed {
		return repository.ErrTxClosed
	}
	tx.closed = true
	return nil
}
func (tx *fakeStoryTx) GetProgressForUpdate(ctx context.Context, playerID string) (*domain.StoryProgress, error) {
	return tx.repo.progress, nil
}
func (tx *fakeStoryTx) UpdateProgress(ctx context.Context, progress *domain.StoryProgress) error {
	tx.repo.progress = progress
	return nil
}
func (tx *fakeStoryTx) GetPlayerResourcesForUpdate(ctx context.Context, playerID string) (domain.Resources, error) {
	return domain.Resources{}, nil
}
func (tx *fakeStoryTx) UpdatePlayerResources(ctx context.Context, playerID string, resources domain.Resources) error {
	return nil
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load(catalog.Data{
		EnemyTemplates: []domain.EnemyTemplate{
			{
				ID:         "goblin",
				Name:       "Goblin",
				Element:    domain.ElementTho,
				Behavior:   domain.BehaviorAggressive,
				Difficulty: 1,
				BaseStats:  domain.HexagonStats{HP: 300, Atk: 40, Def: 20, Spd: 60, Crit: 5, Dex: 5},
				ExpReward:  20,
				GoldReward: 50,
			},
		},
		Stages: []domain.Stage{
			{
				ID:               "stage-1-1",
				ChapterID:        "chapter-1",
				Order:            1,
				Name:             "Whispering Woods",
				StaminaCost:      10,
				EnemyTemplateIDs: []string{"goblin"},
			},
		},
	})
	require.NoError(t, err)
	return cat
}

func newTestService(t *testing.T) (Service, *session.Store, *fakeStoryRepo) {
	t.Helper()
	cat := newTestCatalog(t)
	sessions := session.NewStore()

	hero := &domain.Hero{
		Character: domain.NewCharacter("hero-1", "Quan Vu", domain.ElementKim, domain.GridPosition{}, domain.HexagonStats{HP: 1000, Atk: 120, Def: 60, Spd: 90, Crit: 15, Dex: 10}),
	}
	heroes := &fakeHeroRepo{heroes: map[string]*domain.Hero{"hero-1": hero}}
	teams := &fakeTeamRepo{teams: map[string]*domain.Team{
		"team-1": {
			ID:       "team-1",
			PlayerID: "player-1",
			Slots:    []domain.TeamSlot{{HeroID: "hero-1", Position: domain.GridPosition{X: 1, Y: 1}}},
		},
	}}
	stories := &fakeStoryRepo{progress: &domain.StoryProgress{PlayerID: "player-1"}}

	svc := NewService(cat, sessions, heroes, teams, stories, event.NewMemoryBus())
	return svc, sessions, stories
}

func TestService_StartBattle_FieldsTeamAtConfiguredPositions(t *testing.T) {
	svc, _, _ := newTestService(t)

	b, err := svc.StartBattle(context.Background(), "player-1", "stage-1-1", "team-1")

	require.NoError(t, err)
	require.Len(t, b.PlayerTeam, 1)
	assert.Equal(t, domain.GridPosition{X: 1, Y: 1}, b.PlayerTeam[0].Position)
	require.Len(t, b.EnemyTeam, 1)
	assert.Equal(t, domain.BattleStateInProgress, b.State)
}

func TestService_StartBattle_UnknownTeamFails(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.StartBattle(context.Background(), "player-1", "stage-1-1", "missing-team")

	require.Error(t, err)
}

func TestService_ExecuteAttack_RoundTripsThroughSessionStore(t *testing.T) {
	svc, _, _ := newTestService(t)
	b, err := svc.StartBattle(context.Background(), "player-1", "stage-1-1", "team-1")
	require.NoError(t, err)

	target := b.EnemyTeam[0]
	result, err := svc.ExecuteAttack(context.Background(), b.ID, "hero-1", target.ID)

	require.NoError(t, err)
	assert.Greater(t, result.Damage, 0)
}

func TestService_ExecuteAttack_UnknownBattleFails(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ExecuteAttack(context.Background(), "no-such-battle", "hero-1", "enemy-1")

	require.ErrorIs(t, err, domain.ErrBattleNotFound)
}

func TestService_CalculateRewards_RecordsFirstClearAndRemovesBattle(t *testing.T) {
	svc, sessions, stories := newTestService(t)
	b, err := svc.StartBattle(context.Background(), "player-1", "stage-1-1", "team-1")
	require.NoError(t, err)

	for _, enemy := range b.EnemyTeam {
		enemy.CurrentHP = 0
	}

	result, err := svc.CheckEnd(context.Background(), b.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, domain.BattleResultVictory, *result)

	rewards, err := svc.CalculateRewards(context.Background(), b.ID)

	require.NoError(t, err)
	assert.Equal(t, 20, rewards.Exp)
	assert.Equal(t, 50, rewards.Gold)
	assert.True(t, rewards.FirstClear)
	assert.True(t, stories.progress.IsStageCleared("stage-1-1"))
	assert.Nil(t, sessions.Get(b.ID))
}

func TestService_AIChooseAction_ResolvesEnemyBehavior(t *testing.T) {
	svc, _, _ := newTestService(t)
	b, err := svc.StartBattle(context.Background(), "player-1", "stage-1-1", "team-1")
	require.NoError(t, err)

	enemyID := b.EnemyTeam[0].ID
	action, err := svc.AIChooseAction(context.Background(), b.ID, enemyID)

	require.NoError(t, err)
	assert.Equal(t, enemyID, action.ActorID)
	assert.Equal(t, "hero-1", action.TargetID)
}
