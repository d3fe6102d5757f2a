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

// GachaRepository implements repository.Gacha against PostgreSQL: a
// gacha_pity row per (player, banner) and an append-only gacha_history
// table holding one JSONB PullRecord per row.
type GachaRepository struct {
	db *pgxpool.Pool
}

// NewGachaRepository constructs a GachaRepository over db.
func NewGachaRepository(db *pgxpool.Pool) *GachaRepository {
	return &GachaRepository{db: db}
}

func scanPity(row pgx.Row, playerID, bannerID string) (domain.PityCounter, error) {
	var count int
	err := row.Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PityCounter{PlayerID: playerID, BannerID: bannerID}, nil
		}
		return domain.PityCounter{}, err
	}
	return domain.PityCounter{PlayerID: playerID, BannerID: bannerID, Count: count}, nil
}

func (r *GachaRepository) GetPity(ctx context.Context, playerID, bannerID string) (domain.PityCounter, error) {
	row := r.db.QueryRow(ctx, `SELECT count FROM gacha_pity WHERE player_id = $1 AND banner_id = $2`, playerID, bannerID)
	counter, err := scanPity(row, playerID, bannerID)
	if err != nil {
		return domain.PityCounter{}, fmt.Errorf("get pity: %w", err)
	}
	return counter, nil
}

func (r *GachaRepository) AppendHistory(ctx context.Context, playerID string, record domain.PullRecord) error {
	return appendHistory(ctx, r.db, playerID, record)
}

func appendHistory(ctx context.Context, q queryer, playerID string, record domain.PullRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}
	_, err = q.Exec(ctx,
		`INSERT INTO gacha_history (player_id, data, created_at) VALUES ($1, $2, to_timestamp($3))`,
		playerID, data, record.Timestamp)
	if err != nil {
		return fmt.Errorf("append gacha history: %w", err)
	}
	return nil
}

// queryer is the subset of pgxpool.Pool/pgx.Tx that appendHistory needs,
// letting it run against either the pool or an open transaction.
type queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgx.CommandTag, error)
}

func (r *GachaRepository) GetHistory(ctx context.Context, playerID string, limit int) ([]domain.PullRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT data FROM gacha_history WHERE player_id = $1 ORDER BY created_at DESC LIMIT $2`, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list gacha history: %w", err)
	}
	defer rows.Close()

	var records []domain.PullRecord
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan gacha history: %w", err)
		}
		var record domain.PullRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalRecord, err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (r *GachaRepository) BeginTx(ctx context.Context) (repository.GachaTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &gachaTx{tx: tx}, nil
}

type gachaTx struct {
	tx pgx.Tx
}

func (t *gachaTx) Commit(ctx context.Context) error { return t.tx.Commit(ctx) }
func (t *gachaTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return repository.ErrTxClosed
	}
	return err
}

func (t *gachaTx) GetPityForUpdate(ctx context.Context, playerID, bannerID string) (domain.PityCounter, error) {
	row := t.tx.QueryRow(ctx, `SELECT count FROM gacha_pity WHERE player_id = $1 AND banner_id = $2 FOR UPDATE`, playerID, bannerID)
	counter, err := scanPity(row, playerID, bannerID)
	if err != nil {
		return domain.PityCounter{}, fmt.Errorf("get pity for update: %w", err)
	}
	return counter, nil
}

func (t *gachaTx) UpdatePity(ctx context.Context, counter domain.PityCounter) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO gacha_pity (player_id, banner_id, count) VALUES ($1, $2, $3)
		 ON CONFLICT (player_id, banner_id) DO UPDATE SET count = $3`,
		counter.PlayerID, counter.BannerID, counter.Count)
	if err != nil {
		return fmt.Errorf("update pity: %w", err)
	}
	return nil
}

func (t *gachaTx) GetPlayerResourcesForUpdate(ctx context.Context, playerID string) (domain.Resources, error) {
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

func (t *gachaTx) UpdatePlayerResources(ctx context.Context, playerID string, resources domain.Resources) error {
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

func (t *gachaTx) GrantHero(ctx context.Context, playerID string, hero *domain.Hero) error {
	data, err := json.Marshal(hero)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}
	_, err = t.tx.Exec(ctx,
		`INSERT INTO heroes (id, player_id, template_id, data) VALUES ($1, $2, $3, $4)`,
		hero.ID, playerID, hero.TemplateID, data)
	if err != nil {
		return fmt.Errorf("grant hero: %w", err)
	}
	return nil
}

func (t *gachaTx) OwnsHeroTemplate(ctx context.Context, playerID, templateID string) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM heroes WHERE player_id = $1 AND template_id = $2)`,
		playerID, templateID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check hero ownership: %w", err)
	}
	return exists, nil
}

func (t *gachaTx) AppendHistory(ctx context.Context, playerID string, record domain.PullRecord) error {
	return appendHistory(ctx, t.tx, playerID, record)
}
