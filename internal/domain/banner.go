package domain

// Gacha rarity tiers, keying a Banner's Rates and HeroPool maps.
const (
	GachaThreeStarRarity = 3
	GachaFourStarRarity  = 4
	GachaFiveStarRarity  = 5
)

// DefaultFeaturedRateUp is the featured-hero rate-up applied at five-star
// rarity when a banner does not set its own FeaturedRateUp.
const DefaultFeaturedRateUp = 50

// Banner is a gacha pool: a rate table by rarity, pull costs, and an
// optional featured hero with rate-up.
type Banner struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Rates           map[int]int    `json:"rates"`
	CostSingle      int64          `json:"cost_single"`
	CostMulti       int64          `json:"cost_multi"`
	FeaturedHeroID  *string        `json:"featured_hero_id,omitempty"`
	FeaturedRateUp  int            `json:"featured_rate_up,omitempty"`
	PityThreshold   int            `json:"pity_threshold"`
	HeroPool        map[int][]string `json:"hero_pool"`
}

// PullRecord is one entry in a player's per-banner pull history.
type PullRecord struct {
	BannerID  string `json:"banner_id"`
	HeroID    string `json:"hero_id"`
	Rarity    int    `json:"rarity"`
	Timestamp int64  `json:"timestamp"`
}

// GachaHistoryCap is the per-player pull-history cap, per spec.md 9's
// open-question resolution (500, not the other cap of 100 observed
// elsewhere in the source).
const GachaHistoryCap = 500

// PityCounter is the per-(player, banner) counter tracked towards a
// guaranteed 5-star pull.
type PityCounter struct {
	PlayerID string `json:"player_id"`
	BannerID string `json:"banner_id"`
	Count    int    `json:"count"`
}
