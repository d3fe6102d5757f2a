package story

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daicaxom/tactics-server/internal/catalog"
	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/repository"
)

type fakeStoryRepo struct {
	progress  *domain.StoryProgress
	resources domain.Resources
}

func (f *fakeStoryRepo) GetProgress(ctx context.Context, playerID string) (*domain.StoryProgress, error) {
	return f.progress, nil
}
func (f *fakeStoryRepo) BeginTx(ctx context.Context) (repository.StoryTx, error) {
	return &fakeStoryTx{repo: f}, nil
}

type fakeStoryTx struct {
	repo   *fakeStoryRepo
	closed bool
}

func (tx *fakeStoryTx) Commit(ctx context.Context) error { tx.closed = true; return nil }
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
	return tx.repo.resources, nil
}
func (tx *fakeStoryTx) UpdatePlayerResources(ctx context.Context, playerID string, resources domain.Resources) error {
	tx.repo.resources = resources
	return nil
}

func newTestCatalog(t *testing.T) *catalog.Catalog {
	cat, err := catalog.Load(catalog.Data{
		Chapters: []domain.Chapter{
			{ID: "chapter-1", Name: "Dawn", Order: 1, StageIDs: []string{"stage-1-1", "stage-1-2"}},
			{ID: "chapter-2", Name: "Dusk", Order: 2, StageIDs: []string{"stage-2-1"}},
		},
		Stages: []domain.Stage{
			{ID: "stage-1-1", ChapterID: "chapter-1", Order: 1, Name: "Stage 1-1", StaminaCost: 6},
			{ID: "stage-1-2", ChapterID: "chapter-1", Order: 2, Name: "Stage 1-2", StaminaCost: 6},
			{ID: "stage-2-1", ChapterID: "chapter-2", Order: 1, Name: "Stage 2-1", StaminaCost: 8},
		},
	})
	require.NoError(t, err)
	return cat
}

func TestIsStageUnlocked_FirstStageOfFirstChapterIsAlwaysUnlocked(t *testing.T) {
	svc := NewService(newTestCatalog(t), &fakeStoryRepo{progress: &domain.StoryProgress{}})

	unlocked, err := svc.IsStageUnlocked(context.Background(), "player-1", "stage-1-1")

	require.NoError(t, err)
	assert.True(t, unlocked)
}

func TestIsStageUnlocked_RejectsStageWithUnclearedPrior(t *testing.T) {
	svc := NewService(newTestCatalog(t), &fakeStoryRepo{progress: &domain.StoryProgress{}})

	unlocked, err := svc.IsStageUnlocked(context.Background(), "player-1", "stage-1-2")

	require.NoError(t, err)
	assert.False(t, unlocked)
}

func TestIsStageUnlocked_RejectsNextChapterUntilPriorChapterFullyCleared(t *testing.T) {
	progress := &domain.StoryProgress{}
	progress.RecordClear("stage-1-1", 3)
	svc := NewService(newTestCatalog(t), &fakeStoryRepo{progress: progress})

	unlocked, err := svc.IsStageUnlocked(context.Background(), "player-1", "stage-2-1")

	require.NoError(t, err)
	assert.False(t, unlocked)
}

func TestIsStageUnlocked_UnlocksNextChapterAfterFullClear(t *testing.T) {
	progress := &domain.StoryProgress{}
	progress.RecordClear("stage-1-1", 3)
	progress.RecordClear("stage-1-2", 3)
	svc := NewService(newTestCatalog(t), &fakeStoryRepo{progress: progress})

	unlocked, err := svc.IsStageUnlocked(context.Background(), "player-1", "stage-2-1")

	require.NoError(t, err)
	assert.True(t, unlocked)
}

func TestStartStage_DebitsStamina(t *testing.T) {
	repo := &fakeStoryRepo{progress: &domain.StoryProgress{}, resources: domain.Resources{Stamina: 100}}
	svc := NewService(newTestCatalog(t), repo)

	stage, err := svc.StartStage(context.Background(), "player-1", "stage-1-1")

	require.NoError(t, err)
	assert.Equal(t, "stage-1-1", stage.ID)
	assert.Equal(t, int64(94), repo.resources.Stamina)
}

func TestStartStage_RejectsLockedStage(t *testing.T) {
	repo := &fakeStoryRepo{progress: &domain.StoryProgress{}, resources: domain.Resources{Stamina: 100}}
	svc := NewService(newTestCatalog(t), repo)

	_, err := svc.StartStage(context.Background(), "player-1", "stage-1-2")

	assert.ErrorIs(t, err, domain.ErrStageLocked)
}

func TestStartStage_RejectsInsufficientStamina(t *testing.T) {
	repo := &fakeStoryRepo{progress: &domain.StoryProgress{}, resources: domain.Resources{Stamina: 1}}
	svc := NewService(newTestCatalog(t), repo)

	_, err := svc.StartStage(context.Background(), "player-1", "stage-1-1")

	assert.Error(t, err)
}
