// Package gacha implements banner pulls, pity, and featured rate-up
// (spec.md 4.5), grounded on internal/gamble/service.go's transactional
// start/execute shape (per-player serialized mutation under one
// transaction) and internal/lootbox's weighted rarity-table roll, with
// the concrete pity/rate-up algorithm ported from
// original_source/app/services/gacha_service.py's _perform_single_pull.
package gacha

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daicaxom/tactics-server/internal/battle"
	"github.com/daicaxom/tactics-server/internal/catalog"
	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/event"
	"github.com/daicaxom/tactics-server/internal/repository"
)

// PullResult is the outcome of a single draw within a pull or multi-pull.
type PullResult struct {
	HeroID     string
	Rarity     int
	IsNew      bool
	IsFeatured bool
	Hero       *domain.Hero
}

// Service defines the gacha operations.
type Service interface {
	Pull(ctx context.Context, playerID, bannerID string, count int) ([]PullResult, domain.PityCounter, error)
	GetPity(ctx context.Context, playerID, bannerID string) (domain.PityCounter, error)
	GetHistory(ctx context.Context, playerID string) ([]domain.PullRecord, error)
}

type service struct {
	catalog  *catalog.Catalog
	gacha    repository.Gacha
	eventBus event.Bus
	rng      battle.RNG
}

// NewService wires the catalog banners are read from, the gacha
// repository pity/history reads and writes persist through, the event
// bus, and the injected RNG pulls draw from. A nil rng falls back to a
// process-seeded source, for production wiring where the caller does
// not need reproducible draws.
func NewService(cat *catalog.Catalog, gacha repository.Gacha, eventBus event.Bus, rng battle.RNG) Service {
	if rng == nil {
		rng = battle.NewRNG(time.Now().UnixNano())
	}
	return &service{catalog: cat, gacha: gacha, eventBus: eventBus, rng: rng}
}

func (s *service) GetPity(ctx context.Context, playerID, bannerID string) (domain.PityCounter, error) {
	return s.gacha.GetPity(ctx, playerID, bannerID)
}

func (s *service) GetHistory(ctx context.Context, playerID string) ([]domain.PullRecord, error) {
	return s.gacha.GetHistory(ctx, playerID, domain.GachaHistoryCap)
}

// Pull performs count draws (1 or 10, per ErrInvalidPullCount) against
// bannerID, debiting the banner's gem cost once for the whole batch and
// committing every pity update, hero grant, and history entry atomically.
func (s *service) Pull(ctx context.Context, playerID, bannerID string, count int) ([]PullResult, domain.PityCounter, error) {
	if count != 1 && count != 10 {
		return nil, domain.PityCounter{}, domain.ErrInvalidPullCount
	}
	banner, err := s.catalog.Banner(bannerID)
	if err != nil {
		return nil, domain.PityCounter{}, fmt.Errorf("resolve banner: %w", err)
	}
	cost := banner.CostSingle
	if count == 10 {
		cost = banner.CostMulti
	}

	tx, err := s.gacha.BeginTx(ctx)
	if err != nil {
		return nil, domain.PityCounter{}, fmt.Errorf("begin gacha tx: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	resources, err := tx.GetPlayerResourcesForUpdate(ctx, playerID)
	if err != nil {
		return nil, domain.PityCounter{}, fmt.Errorf("load resources: %w", err)
	}
	if err := resources.Debit(0, cost, 0); err != nil {
		return nil, domain.PityCounter{}, err
	}
	if err := tx.UpdatePlayerResources(ctx, playerID, resources); err != nil {
		return nil, domain.PityCounter{}, fmt.Errorf("save resources: %w", err)
	}

	pity, err := tx.GetPityForUpdate(ctx, playerID, bannerID)
	if err != nil {
		return nil, domain.PityCounter{}, fmt.Errorf("load pity: %w", err)
	}
	if pity.PlayerID == "" {
		pity = domain.PityCounter{PlayerID: playerID, BannerID: bannerID}
	}

	results := make([]PullResult, 0, count)
	for i := 0; i < count; i++ {
		result, err := s.drawOne(ctx, tx, playerID, banner, &pity)
		if err != nil {
			return nil, domain.PityCounter{}, fmt.Errorf("draw %d: %w", i, err)
		}
		results = append(results, result)

		record := domain.PullRecord{BannerID: bannerID, HeroID: result.HeroID, Rarity: result.Rarity, Timestamp: time.Now().Unix()}
		if err := tx.AppendHistory(ctx, playerID, record); err != nil {
			return nil, domain.PityCounter{}, fmt.Errorf("save history: %w", err)
		}
	}

	if err := tx.UpdatePity(ctx, pity); err != nil {
		return nil, domain.PityCounter{}, fmt.Errorf("save pity: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, domain.PityCounter{}, fmt.Errorf("commit gacha tx: %w", err)
	}

	for _, r := range results {
		s.publish(ctx, domain.EventTypeGachaPulled, domain.GachaPulledPayload{
			PlayerID:  playerID,
			BannerID:  bannerID,
			HeroID:    r.HeroID,
			Rarity:    r.Rarity,
			IsNew:     r.IsNew,
			PityReset: r.Rarity == domain.GachaFiveStarRarity,
			Timestamp: time.Now().Unix(),
		})
	}
	return results, pity, nil
}

// drawOne performs one weighted rarity roll honoring pity and featured
// rate-up, grants the resulting hero, and advances pity in place.
func (s *service) drawOne(ctx context.Context, tx repository.GachaTx, playerID string, banner domain.Banner, pity *domain.PityCounter) (PullResult, error) {
	rarity := s.rollRarity(banner, pity.Count)
	if rarity == domain.GachaFiveStarRarity {
		pity.Count = 0
	} else {
		pity.Count++
	}

	heroID, isFeatured := s.pickHero(banner, rarity)

	isNew, err := tx.OwnsHeroTemplate(ctx, playerID, heroID)
	if err != nil {
		return PullResult{}, fmt.Errorf("check ownership: %w", err)
	}
	isNew = !isNew

	resolved, err := s.catalog.ResolveHero(heroID)
	if err != nil {
		return PullResult{}, fmt.Errorf("resolve hero template: %w", err)
	}
	hero := &domain.Hero{
		Character:  domain.NewCharacter(uuid.NewString(), resolved.Template.Name, resolved.Template.Element, domain.GridPosition{}, resolved.Template.BaseStats),
		TemplateID: heroID,
		Rarity:     resolved.Template.Rarity,
		Level:      1,
		Stars:      1,
		GrowthRates: resolved.Template.GrowthRates,
		BasePower:  resolved.Template.BasePower,
	}
	if err := tx.GrantHero(ctx, playerID, hero); err != nil {
		return PullResult{}, fmt.Errorf("grant hero: %w", err)
	}

	return PullResult{HeroID: heroID, Rarity: rarity, IsNew: isNew, IsFeatured: isFeatured, Hero: hero}, nil
}

// rollRarity draws a rarity tier, guaranteeing a five-star once pityCount
// reaches the banner's threshold minus one (the draw that would have
// been the threshold-th pull without a natural five-star).
func (s *service) rollRarity(banner domain.Banner, pityCount int) int {
	if pityCount >= banner.PityThreshold-1 {
		return domain.GachaFiveStarRarity
	}
	roll := s.rng.Float64() * 100
	if roll < float64(banner.Rates[domain.GachaFiveStarRarity]) {
		return domain.GachaFiveStarRarity
	}
	if roll < float64(banner.Rates[domain.GachaFiveStarRarity]+banner.Rates[domain.GachaFourStarRarity]) {
		return domain.GachaFourStarRarity
	}
	return domain.GachaThreeStarRarity
}

// pickHero selects a hero id from the banner's rarity pool, applying the
// featured-hero rate-up at five-star rarity.
func (s *service) pickHero(banner domain.Banner, rarity int) (heroID string, isFeatured bool) {
	if rarity == domain.GachaFiveStarRarity && banner.FeaturedHeroID != nil {
		rateUp := banner.FeaturedRateUp
		if rateUp == 0 {
			rateUp = domain.DefaultFeaturedRateUp
		}
		if s.rng.Float64()*100 < float64(rateUp) {
			return *banner.FeaturedHeroID, true
		}
	}

	pool := banner.HeroPool[rarity]
	if len(pool) == 0 {
		return "", false
	}
	idx := s.rng.Intn(len(pool))
	return pool[idx], false
}

func (s *service) publish(ctx context.Context, eventType string, payload any) {
	if s.eventBus == nil {
		return
	}
	_ = s.eventBus.Publish(ctx, event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.Type(eventType),
		Payload: payload,
	})
}
