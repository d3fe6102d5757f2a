// Package catalog holds the immutable, process-wide template dictionaries
// loaded once at boot: hero, skill, equipment, stage, and banner
// definitions. Lookups return copies so callers cannot mutate shared
// state; a missing id fails with domain.ErrTemplateNotFound.
//
// Grounded on the teacher's internal/naming resolver (public-name lookup
// pattern) for the read-only dictionary shape, and
// original_source/app/services/gacha_service.py's module-level BANNERS/
// HERO_POOL dicts for the banner/pool catalog shape.
package catalog

import (
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/daicaxom/tactics-server/internal/domain"
)

// ResolvedCacheSize bounds the derived-lookup cache (e.g. a hero template
// joined with its skill templates) below the size of the raw template
// maps, since resolved entries are only materialized on demand.
const ResolvedCacheSize = 512

// Catalog is the read-only, process-wide template store. It is populated
// once by Load and never mutated afterward; concurrent reads need no
// further synchronization beyond the resolved-lookup cache's own locking.
type Catalog struct {
	heroTemplates      map[string]domain.HeroTemplate
	skillTemplates     map[string]domain.SkillTemplate
	equipmentTemplates map[string]domain.EquipmentTemplate
	equipmentSets      map[string]domain.EquipmentSet
	enemyTemplates     map[string]domain.EnemyTemplate
	chapters           map[string]domain.Chapter
	stages             map[string]domain.Stage
	banners            map[string]domain.Banner

	resolvedHeroes *lru.Cache[string, ResolvedHero]
	mu             sync.RWMutex
}

// ResolvedHero is a hero template joined with its fully materialized
// skill variants, the expensive-to-recompute shape worth caching.
type ResolvedHero struct {
	Template domain.HeroTemplate
	Skills   []domain.SkillTemplate
}

// Data is the set of template collections Load populates the catalog
// from, typically parsed from the catalog files named in spec.md 6.
type Data struct {
	HeroTemplates      []domain.HeroTemplate      `json:"hero_templates"`
	SkillTemplates     []domain.SkillTemplate     `json:"skill_templates"`
	EquipmentTemplates []domain.EquipmentTemplate `json:"equipment_templates"`
	EquipmentSets      []domain.EquipmentSet      `json:"equipment_sets"`
	EnemyTemplates     []domain.EnemyTemplate     `json:"enemy_templates"`
	Chapters           []domain.Chapter           `json:"chapters"`
	Stages             []domain.Stage             `json:"stages"`
	Banners            []domain.Banner            `json:"banners"`
}

// Load builds a Catalog from data, indexing every collection by id.
func Load(data Data) (*Catalog, error) {
	cache, err := lru.New[string, ResolvedHero](ResolvedCacheSize)
	if err != nil {
		return nil, err
	}

	c := &Catalog{
		heroTemplates:      make(map[string]domain.HeroTemplate, len(data.HeroTemplates)),
		skillTemplates:     make(map[string]domain.SkillTemplate, len(data.SkillTemplates)),
		equipmentTemplates: make(map[string]domain.EquipmentTemplate, len(data.EquipmentTemplates)),
		equipmentSets:      make(map[string]domain.EquipmentSet, len(data.EquipmentSets)),
		enemyTemplates:     make(map[string]domain.EnemyTemplate, len(data.EnemyTemplates)),
		chapters:           make(map[string]domain.Chapter, len(data.Chapters)),
		stages:             make(map[string]domain.Stage, len(data.Stages)),
		banners:            make(map[string]domain.Banner, len(data.Banners)),
		resolvedHeroes:     cache,
	}

	for _, t := range data.HeroTemplates {
		c.heroTemplates[t.ID] = t
	}
	for _, t := range data.SkillTemplates {
		c.skillTemplates[t.ID] = t
	}
	for _, t := range data.EquipmentTemplates {
		c.equipmentTemplates[t.ID] = t
	}
	for _, t := range data.EquipmentSets {
		c.equipmentSets[t.ID] = t
	}
	for _, t := range data.EnemyTemplates {
		c.enemyTemplates[t.ID] = t
	}
	for _, t := range data.Chapters {
		c.chapters[t.ID] = t
	}
	for _, t := range data.Stages {
		c.stages[t.ID] = t
	}
	for _, t := range data.Banners {
		c.banners[t.ID] = t
	}
	return c, nil
}

// HeroTemplate returns a copy of the named hero template.
func (c *Catalog) HeroTemplate(id string) (domain.HeroTemplate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.heroTemplates[id]
	if !ok {
		return domain.HeroTemplate{}, domain.ErrTemplateNotFound
	}
	return t, nil
}

// SkillTemplate returns a copy of the named skill template.
func (c *Catalog) SkillTemplate(id string) (domain.SkillTemplate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.skillTemplates[id]
	if !ok {
		return domain.SkillTemplate{}, domain.ErrTemplateNotFound
	}
	return t, nil
}

// EquipmentTemplate returns a copy of the named equipment template.
func (c *Catalog) EquipmentTemplate(id string) (domain.EquipmentTemplate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.equipmentTemplates[id]
	if !ok {
		return domain.EquipmentTemplate{}, domain.ErrTemplateNotFound
	}
	return t, nil
}

// EquipmentSet returns a copy of the named equipment set.
func (c *Catalog) EquipmentSet(id string) (domain.EquipmentSet, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.equipmentSets[id]
	if !ok {
		return domain.EquipmentSet{}, domain.ErrTemplateNotFound
	}
	return t, nil
}

// EnemyTemplate returns a copy of the named enemy (or boss) template.
func (c *Catalog) EnemyTemplate(id string) (domain.EnemyTemplate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.enemyTemplates[id]
	if !ok {
		return domain.EnemyTemplate{}, domain.ErrTemplateNotFound
	}
	return t, nil
}

// Chapter returns a copy of the named chapter.
func (c *Catalog) Chapter(id string) (domain.Chapter, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.chapters[id]
	if !ok {
		return domain.Chapter{}, domain.ErrTemplateNotFound
	}
	return t, nil
}

// ChaptersByOrder returns every chapter, sorted by Order.
func (c *Catalog) ChaptersByOrder() []domain.Chapter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Chapter, 0, len(c.chapters))
	for _, ch := range c.chapters {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Stage returns a copy of the named stage.
func (c *Catalog) Stage(id string) (domain.Stage, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.stages[id]
	if !ok {
		return domain.Stage{}, domain.ErrTemplateNotFound
	}
	return t, nil
}

// Banner returns a copy of the named banner.
func (c *Catalog) Banner(id string) (domain.Banner, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.banners[id]
	if !ok {
		return domain.Banner{}, domain.ErrBannerNotFound
	}
	return t, nil
}

// Banners returns every configured banner.
func (c *Catalog) Banners() []domain.Banner {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Banner, 0, len(c.banners))
	for _, b := range c.banners {
		out = append(out, b)
	}
	return out
}

// ResolveHero returns the hero template joined with its fully
// materialized skill templates, serving repeated lookups (e.g. a gacha
// draw granting a hero) from an LRU cache
// keyed by template id.
func (c *Catalog) ResolveHero(templateID string) (ResolvedHero, error) {
	if cached, ok := c.resolvedHeroes.Get(templateID); ok {
		return cached, nil
	}

	template, err := c.HeroTemplate(templateID)
	if err != nil {
		return ResolvedHero{}, err
	}

	c.mu.RLock()
	skills := make([]domain.SkillTemplate, 0, len(template.SkillIDs))
	for _, skillID := range template.SkillIDs {
		if s, ok := c.skillTemplates[skillID]; ok {
			skills = append(skills, s)
		}
	}
	c.mu.RUnlock()

	resolved := ResolvedHero{Template: template, Skills: skills}
	c.resolvedHeroes.Add(templateID, resolved)
	return resolved, nil
}
