package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/repository"
)

// StoryRepository implements repository.Story against PostgreSQL. A
// player's entire chapter/stage clear state lives in a single row keyed
// by player_id, with the cleared-stage and star maps held as JSONB.
type StoryRepository struct {
	db *pgxpool.Pool
}

// NewStoryRepository constructs a StoryRepository over db.
func NewStoryRepository(db *pgxpool.Pool) *StoryRepository {
	return &StoryRepository{db: db}
}

func scanStoryProgress(row pgx.Row, playerID string) (*domain.StoryProgress, error) {
	var clearedJSON, starsJSON []byte
	if err := row.Scan(&clearedJSON, &starsJSON); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.StoryProgress{
				PlayerID:      playerID,
				ClearedStages: make(map[string]bool),
				Stars:         make(map[string]int),
			}, nil
		}
		return nil, err
	}
	progress := &domain.StoryProgress{PlayerID: playerID}
	if err := json.Unmarshal(clearedJSON, &progress.ClearedStages); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalRecord, err)
	}
	if err := json.Unmarshal(starsJSON, &progress.Stars); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalRecord, err)
	}
	return progress, nil
}

func (r *StoryRepository) GetProgress(ctx context.Context, playerID string) (*domain.StoryProgress, error) {
	row := r.db.QueryRow(ctx, `SELECT cleared_stages, stars FROM story_progress WHERE player_id = $1`, playerID)
	progress, err := scanStoryProgress(row, playerID)
	if err != nil {
		return nil, fmt.Errorf("get story progress: %w", err)
	}
	return progress, nil
}

func (r *StoryRepository) BeginTx(ctx context.Context) (repository.StoryTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &storyTx{tx: tx}, nil
}

type storyTx struct {
	tx pgx.Tx
}

func (t *storyTx) Commit(ctx context.Context) error { return t.tx.Commit(ctx) }
func (t *storyTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return repository.ErrTxClosed
	}
	return err
}

func (t *storyTx) GetProgressForUpdate(ctx context.Context, playerID string) (*domain.StoryProgress, error) {
	row := t.tx.QueryRow(ctx, `SELECT cleared_stages, stars FROM story_progress WHERE player_id = $1 FOR UPDATE`, playerID)
	progress, err := scanStoryProgress(row, playerID)
	if err != nil {
		return nil, fmt.Errorf("get story progress for update: %w", err)
	}
	return progress, nil
}

func (t *storyTx) UpdateProgress(ctx context.Context, progress *domain.StoryProgress) error {
	clearedJSON, err := json.Marshal(progress.ClearedStages)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}
	starsJSON, err := json.Marshal(progress.Stars)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}
	_, err = t.tx.Exec(ctx,
		`INSERT INTO story_progress (player_id, cleared_stages, stars) VALUES ($1, $2, $3)
		 ON CONFLICT (player_id) DO UPDATE SET cleared_stages = $2, stars = $3`,
		progress.PlayerID, clearedJSON, starsJSON)
	if err != nil {
		return fmt.Errorf("update story progress: %w", err)
	}
	return nil
}

func (t *storyTx) GetPlayerResourcesForUpdate(ctx context.Context, playerID string) (domain.Resources, error) {
	var resourcesJSON []byte
	err := t.tx.QueryRow(ctx, `SELECT resources FROM players WHERE id = $1 FOR UPDATE`, playerID).Scan(&resourcesJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Resources{}, domain.ErrPlayerNotFound
		}
		return domain.Resources{}, fmt.Errorf("get player resources for update: %w", err)
	}
	var resources domain.Resources
	if err := json.Unmarshal(resourcesJSON, &resources); err != nil {
		return domain.Resources{}, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalRecord, err)
	}
	return resources, nil
}

func (t *storyTx) UpdatePlayerResources(ctx context.Context, playerID string, resources domain.Resources) error {
	data, err := json.Marshal(resources)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}
	_, err = t.tx.Exec(ctx, `UPDATE players SET resources = $2, updated_at = now() WHERE id = $1`, playerID, data)
	if err != nil {
		return fmt.Errorf("update player resources: %w", err)
	}
	return nil
}
