package gacha

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daicaxom/tactics-server/internal/catalog"
	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/event"
	"github.com/daicaxom/tactics-server/internal/repository"
)

// fakeRNG replays a scripted sequence of Float64 draws and always picks
// index 0 from Intn, so pool selection is deterministic in tests.
type fakeRNG struct {
	draws []float64
	next  int
}

func (r *fakeRNG) Float64() float64 {
	v := r.draws[r.next]
	if r.next < len(r.draws)-1 {
		r.next++
	}
	return v / 100
}
func (r *fakeRNG) Intn(n int) int { return 0 }

type fakeGachaRepo struct {
	pity      map[string]domain.PityCounter
	history   []domain.PullRecord
	resources domain.Resources
	owned     map[string]bool
	heroes    []*domain.Hero
}

func (f *fakeGachaRepo) GetPity(ctx context.Context, playerID, bannerID string) (domain.PityCounter, error) {
	return f.pity[playerID+bannerID], nil
}
func (f *fakeGachaRepo) AppendHistory(ctx context.Context, playerID string, record domain.PullRecord) error {
	f.history = append(f.history, record)
	return nil
}
func (f *fakeGachaRepo) GetHistory(ctx context.Context, playerID string, limit int) ([]domain.PullRecord, error) {
	return f.history, nil
}
func (f *fakeGachaRepo) BeginTx(ctx context.Context) (repository.GachaTx, error) {
	return &fakeGachaTx{repo: f}, nil
}

type fakeGachaTx struct {
	repo   *fakeGachaRepo
	closed bool
}

func (tx *fakeGachaTx) Commit(ctx context.Context) error { tx.closed = true; return nil }
func (tx *fakeGachaTx) Rollback(ctx context.Context) error {
	if tx.closed {
		return repository.ErrTxClosed
	}
	tx.closed = true
	return nil
}
func (tx *fakeGachaTx) GetPityForUpdate(ctx context.Context, playerID, bannerID string) (domain.PityCounter, error) {
	return tx.repo.pity[playerID+bannerID], nil
}
func (tx *fakeGachaTx) UpdatePity(ctx context.Context, counter domain.PityCounter) error {
	tx.repo.pity[counter.PlayerID+counter.BannerID] = counter
	return nil
}
func (tx *fakeGachaTx) GetPlayerResourcesForUpdate(ctx context.Context, playerID string) (domain.Resources, error) {
	return tx.repo.resources, nil
}
func (tx *fakeGachaTx) UpdatePlayerResources(ctx context.Context, playerID string, resources domain.Resources) error {
	tx.repo.resources = resources
	return nil
}
func (tx *fakeGachaTx) GrantHero(ctx context.Context, playerID string, hero *domain.Hero) error {
	tx.repo.heroes = append(tx.repo.heroes, hero)
	return nil
}
func (tx *fakeGachaTx) OwnsHeroTemplate(ctx context.Context, playerID, templateID string) (bool, error) {
	return tx.repo.owned[templateID], nil
}
func (tx *fakeGachaTx) AppendHistory(ctx context.Context, playerID string, record domain.PullRecord) error {
	return tx.repo.AppendHistory(ctx, playerID, record)
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	featured := "hero-5star-featured"
	cat, err := catalog.Load(catalog.Data{
		HeroTemplates: []domain.HeroTemplate{
			{ID: "hero-3star", Name: "Soldier", Element: domain.ElementKim, Rarity: 3, BaseStats: domain.HexagonStats{HP: 100}, BasePower: 50},
			{ID: "hero-5star-featured", Name: "Quan Vu", Element: domain.ElementHoa, Rarity: 5, BaseStats: domain.HexagonStats{HP: 300}, BasePower: 200},
			{ID: "hero-5star-other", Name: "Truong Phi", Element: domain.ElementThuy, Rarity: 5, BaseStats: domain.HexagonStats{HP: 280}, BasePower: 190},
		},
		Banners: []domain.Banner{
			{
				ID:             "limited",
				Name:           "Limited",
				Rates:          map[int]int{3: 75, 4: 20, 5: 5},
				CostSingle:     160,
				CostMulti:      1440,
				PityThreshold:  80,
				FeaturedHeroID: &featured,
				FeaturedRateUp: 50,
				HeroPool: map[int][]string{
					3: {"hero-3star"},
					5: {"hero-5star-other"},
				},
			},
		},
	})
	require.NoError(t, err)
	return cat
}

func TestPull_RejectsInvalidCount(t *testing.T) {
	cat := newTestCatalog(t)
	repo := &fakeGachaRepo{pity: map[string]domain.PityCounter{}, resources: domain.Resources{Gems: 10000}, owned: map[string]bool{}}
	svc := NewService(cat, repo, event.NewMemoryBus(), &fakeRNG{draws: []float64{50}})

	_, _, err := svc.Pull(context.Background(), "player-1", "limited", 3)

	assert.ErrorIs(t, err, domain.ErrInvalidPullCount)
}

func TestPull_DebitsGemsForCostSingle(t *testing.T) {
	cat := newTestCatalog(t)
	repo := &fakeGachaRepo{pity: map[string]domain.PityCounter{}, resources: domain.Resources{Gems: 10000}, owned: map[string]bool{}}
	svc := NewService(cat, repo, event.NewMemoryBus(), &fakeRNG{draws: []float64{50}})

	_, _, err := svc.Pull(context.Background(), "player-1", "limited", 1)

	require.NoError(t, err)
	assert.Equal(t, int64(10000-160), repo.resources.Gems)
}

func TestPull_HighRollYieldsThreeStarAndIncrementsPity(t *testing.T) {
	cat := newTestCatalog(t)
	repo := &fakeGachaRepo{pity: map[string]domain.PityCounter{}, resources: domain.Resources{Gems: 10000}, owned: map[string]bool{}}
	svc := NewService(cat, repo, event.NewMemoryBus(), &fakeRNG{draws: []float64{99}})

	results, pity, err := svc.Pull(context.Background(), "player-1", "limited", 1)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].Rarity)
	assert.Equal(t, 1, pity.Count)
}

func TestPull_GuaranteesFiveStarAtPityThreshold(t *testing.T) {
	cat := newTestCatalog(t)
	repo := &fakeGachaRepo{
		pity:      map[string]domain.PityCounter{"player-1limited": {PlayerID: "player-1", BannerID: "limited", Count: 79}},
		resources: domain.Resources{Gems: 10000},
		owned:     map[string]bool{},
	}
	svc := NewService(cat, repo, event.NewMemoryBus(), &fakeRNG{draws: []float64{99}})

	results, pity, err := svc.Pull(context.Background(), "player-1", "limited", 1)

	require.NoError(t, err)
	assert.Equal(t, domain.GachaFiveStarRarity, results[0].Rarity)
	assert.Equal(t, 0, pity.Count)
}

func TestPull_FeaturedRateUpWinsLowRoll(t *testing.T) {
	cat := newTestCatalog(t)
	repo := &fakeGachaRepo{pity: map[string]domain.PityCounter{}, resources: domain.Resources{Gems: 10000}, owned: map[string]bool{}}
	// first draw (1) selects five-star rarity, second draw (1) wins the featured rate-up roll.
	svc := NewService(cat, repo, event.NewMemoryBus(), &fakeRNG{draws: []float64{1, 1}})

	results, _, err := svc.Pull(context.Background(), "player-1", "limited", 1)

	require.NoError(t, err)
	assert.Equal(t, "hero-5star-featured", results[0].HeroID)
	assert.True(t, results[0].IsFeatured)
}

func TestPull_RejectsInsufficientGems(t *testing.T) {
	cat := newTestCatalog(t)
	repo := &fakeGachaRepo{pity: map[string]domain.PityCounter{}, resources: domain.Resources{Gems: 10}, owned: map[string]bool{}}
	svc := NewService(cat, repo, event.NewMemoryBus(), &fakeRNG{draws: []float64{50}})

	_, _, err := svc.Pull(context.Background(), "player-1", "limited", 1)

	assert.ErrorIs(t, err, domain.ErrInsufficientGems)
}
