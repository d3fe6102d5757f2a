// Package story implements story-mode progression gating (spec.md 4.3):
// chapter/stage unlock checks and the stamina debit that starting a
// stage requires, separate from the Battle Engine's own start_battle.
//
// Grounded on internal/quest and internal/progression's node-unlock
// gating shape (check prerequisite cleared, then gate the action).
package story

import (
	"context"
	"fmt"

	"github.com/daicaxom/tactics-server/internal/catalog"
	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/repository"
)

// Service defines the story-mode operations.
type Service interface {
	GetProgress(ctx context.Context, playerID string) (*domain.StoryProgress, error)
	IsStageUnlocked(ctx context.Context, playerID, stageID string) (bool, error)
	StartStage(ctx context.Context, playerID, stageID string) (domain.Stage, error)
}

type service struct {
	catalog *catalog.Catalog
	stories repository.Story
}

// NewService wires the catalog stage/chapter definitions are read from
// and the story repository progress is persisted to.
func NewService(cat *catalog.Catalog, stories repository.Story) Service {
	return &service{catalog: cat, stories: stories}
}

func (s *service) GetProgress(ctx context.Context, playerID string) (*domain.StoryProgress, error) {
	return s.stories.GetProgress(ctx, playerID)
}

// IsStageUnlocked reports whether stageID's chapter is unlocked (the
// first chapter always is; later chapters require every stage of the
// prior chapter cleared) and, within an unlocked chapter, whether the
// stage itself is reachable (its own prior stage cleared, or it is the
// chapter's first stage).
func (s *service) IsStageUnlocked(ctx context.Context, playerID, stageID string) (bool, error) {
	stage, err := s.catalog.Stage(stageID)
	if err != nil {
		return false, fmt.Errorf("resolve stage: %w", err)
	}
	chapter, err := s.catalog.Chapter(stage.ChapterID)
	if err != nil {
		return false, fmt.Errorf("resolve chapter: %w", err)
	}
	progress, err := s.stories.GetProgress(ctx, playerID)
	if err != nil {
		return false, fmt.Errorf("load progress: %w", err)
	}

	if stage.Order > 1 {
		return s.priorStageCleared(chapter.StageIDs, stage.Order, progress), nil
	}
	if chapter.Order <= 1 {
		return true, nil
	}
	return s.priorChapterCleared(ctx, chapter.Order, progress)
}

func (s *service) priorStageCleared(stageIDs []string, order int, progress *domain.StoryProgress) bool {
	for _, id := range stageIDs {
		prior, err := s.catalog.Stage(id)
		if err == nil && prior.Order == order-1 {
			return progress.IsStageCleared(prior.ID)
		}
	}
	return false
}

func (s *service) priorChapterCleared(ctx context.Context, order int, progress *domain.StoryProgress) (bool, error) {
	for _, ch := range s.catalog.ChaptersByOrder() {
		if ch.Order != order-1 {
			continue
		}
		for _, stageID := range ch.StageIDs {
			if !progress.IsStageCleared(stageID) {
				return false, nil
			}
		}
		return true, nil
	}
	return false, domain.ErrChapterLocked
}

// StartStage validates the stage is unlocked and debits its stamina
// cost atomically, returning the stage definition for the caller to
// hand to the Battle Engine's start_battle.
func (s *service) StartStage(ctx context.Context, playerID, stageID string) (domain.Stage, error) {
	unlocked, err := s.IsStageUnlocked(ctx, playerID, stageID)
	if err != nil {
		return domain.Stage{}, err
	}
	if !unlocked {
		return domain.Stage{}, domain.ErrStageLocked
	}
	stage, err := s.catalog.Stage(stageID)
	if err != nil {
		return domain.Stage{}, fmt.Errorf("resolve stage: %w", err)
	}

	tx, err := s.stories.BeginTx(ctx)
	if err != nil {
		return domain.Stage{}, fmt.Errorf("begin story tx: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	resources, err := tx.GetPlayerResourcesForUpdate(ctx, playerID)
	if err != nil {
		return domain.Stage{}, fmt.Errorf("load resources: %w", err)
	}
	if err := resources.Debit(0, 0, stage.StaminaCost); err != nil {
		return domain.Stage{}, err
	}
	if err := tx.UpdatePlayerResources(ctx, playerID, resources); err != nil {
		return domain.Stage{}, fmt.Errorf("save resources: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return domain.Stage{}, fmt.Errorf("commit story tx: %w", err)
	}
	return stage, nil
}
