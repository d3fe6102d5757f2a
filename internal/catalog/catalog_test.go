package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daicaxom/tactics-server/internal/domain"
)

func testData() Data {
	return Data{
		HeroTemplates: []domain.HeroTemplate{
			{ID: "quan_vu", Name: "Quan Vu", Element: domain.ElementHoa, Rarity: 5, SkillIDs: []string{"skill_slash"}},
		},
		SkillTemplates: []domain.SkillTemplate{
			{ID: "skill_slash", Name: "Slash", Variant: "active"},
		},
		Banners: []domain.Banner{
			{ID: "standard", Rates: map[int]int{3: 80, 4: 18, 5: 2}, PityThreshold: 90},
		},
		Chapters: []domain.Chapter{
			{ID: "ch2", Order: 2},
			{ID: "ch1", Order: 1},
		},
	}
}

func TestCatalog_HeroTemplate_NotFound(t *testing.T) {
	c, err := Load(testData())
	require.NoError(t, err)

	_, err = c.HeroTemplate("does-not-exist")

	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestCatalog_HeroTemplate_Found(t *testing.T) {
	c, err := Load(testData())
	require.NoError(t, err)

	template, err := c.HeroTemplate("quan_vu")

	require.NoError(t, err)
	assert.Equal(t, "Quan Vu", template.Name)
}

func TestCatalog_ResolveHero_JoinsSkillTemplates(t *testing.T) {
	c, err := Load(testData())
	require.NoError(t, err)

	resolved, err := c.ResolveHero("quan_vu")

	require.NoError(t, err)
	require.Len(t, resolved.Skills, 1)
	assert.Equal(t, "Slash", resolved.Skills[0].Name)
}

func TestCatalog_ResolveHero_CachesResult(t *testing.T) {
	c, err := Load(testData())
	require.NoError(t, err)

	first, err := c.ResolveHero("quan_vu")
	require.NoError(t, err)
	second, err := c.ResolveHero("quan_vu")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCatalog_Banner_NotFound(t *testing.T) {
	c, err := Load(testData())
	require.NoError(t, err)

	_, err = c.Banner("limited")

	assert.ErrorIs(t, err, domain.ErrBannerNotFound)
}

func TestCatalog_ChaptersByOrder_Sorted(t *testing.T) {
	c, err := Load(testData())
	require.NoError(t, err)

	chapters := c.ChaptersByOrder()

	require.Len(t, chapters, 2)
	assert.Equal(t, "ch1", chapters[0].ID)
	assert.Equal(t, "ch2", chapters[1].ID)
}
