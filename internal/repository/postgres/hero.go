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

// HeroRepository implements repository.Hero against PostgreSQL. Each
// hero's full progression state is stored as a JSONB blob alongside its
// id/player_id/template_id columns, the same shape the teacher uses for
// a player's inventory_data.
type HeroRepository struct {
	db *pgxpool.Pool
}

// NewHeroRepository constructs a HeroRepository over db.
func NewHeroRepository(db *pgxpool.Pool) *HeroRepository {
	return &HeroRepository{db: db}
}

func scanHero(row pgx.Row) (*domain.Hero, error) {
	var id, templateID string
	var data []byte
	if err := row.Scan(&id, &templateID, &data); err != nil {
		return nil, err
	}
	var hero domain.Hero
	if err := json.Unmarshal(data, &hero); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalRecord, err)
	}
	return &hero, nil
}

func (r *HeroRepository) CreateHero(ctx context.Context, playerID string, h *domain.Hero) error {
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO heroes (id, player_id, template_id, data) VALUES ($1, $2, $3, $4)`,
		h.ID, playerID, h.TemplateID, data)
	if err != nil {
		return fmt.Errorf("insert hero: %w", err)
	}
	return nil
}

func (r *HeroRepository) GetHero(ctx context.Context, playerID, heroID string) (*domain.Hero, error) {
	row := r.db.QueryRow(ctx, `SELECT id, template_id, data FROM heroes WHERE id = $1 AND player_id = $2`, heroID, playerID)
	hero, err := scanHero(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHeroNotFound
		}
		return nil, fmt.Errorf("get hero: %w", err)
	}
	return hero, nil
}

func (r *HeroRepository) ListHeroes(ctx context.Context, playerID string) ([]*domain.Hero, error) {
	rows, err := r.db.Query(ctx, `SELECT id, template_id, data FROM heroes WHERE player_id = $1 ORDER BY id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list heroes: %w", err)
	}
	defer rows.Close()

	var heroes []*domain.Hero
	for rows.Next() {
		hero, err := scanHero(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hero: %w", err)
		}
		heroes = append(heroes, hero)
	}
	return heroes, rows.Err()
}

func (r *HeroRepository) UpdateHero(ctx context.Context, playerID string, h *domain.Hero) error {
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}
	_, err = r.db.Exec(ctx, `UPDATE heroes SET data = $3 WHERE id = $1 AND player_id = $2`, h.ID, playerID, data)
	if err != nil {
		return fmt.Errorf("update hero: %w", err)
	}
	return nil
}

func (r *HeroRepository) OwnsHeroTemplate(ctx context.Context, playerID, templateID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM heroes WHERE player_id = $1 AND template_id = $2)`,
		playerID, templateID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check hero ownership: %w", err)
	}
	return exists, nil
}

func (r *HeroRepository) BeginTx(ctx context.Context) (repository.HeroTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &heroTx{tx: tx}, nil
}

type heroTx struct {
	tx pgx.Tx
}

func (t *heroTx) Commit(ctx context.Context) error { return t.tx.Commit(ctx) }
func (t *heroTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return repository.ErrTxClosed
	}
	return err
}

func (t *heroTx) GetHeroForUpdate(ctx context.Context, playerID, heroID string) (*domain.Hero, error) {
	row := t.tx.QueryRow(ctx, `SELECT id, template_id, data FROM heroes WHERE id = $1 AND player_id = $2 FOR UPDATE`, heroID, playerID)
	hero, err := scanHero(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHeroNotFound
		}
		return nil, fmt.Errorf("get hero for update: %w", err)
	}
	return hero, nil
}

func (t *heroTx) UpdateHero(ctx context.Context, playerID string, h *domain.Hero) error {
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}
	_, err = t.tx.Exec(ctx, `UPDATE heroes SET data = $3 WHERE id = $1 AND player_id = $2`, h.ID, playerID, data)
	if err != nil {
		return fmt.Errorf("update hero: %w", err)
	}
	return nil
}

func (t *heroTx) GetEquipmentForUpdate(ctx context.Context, playerID, equipmentID string) (*domain.Equipment, error) {
	row := t.tx.QueryRow(ctx, `SELECT id, data FROM equipment WHERE id = $1 AND player_id = $2 FOR UPDATE`, equipmentID, playerID)
	return scanEquipmentRow(row)
}

func (t *heroTx) UpdateEquipment(ctx context.Context, playerID string, e *domain.Equipment) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}
	_, err = t.tx.Exec(ctx, `UPDATE equipment SET data = $3 WHERE id = $1 AND player_id = $2`, e.ID, playerID, data)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	return nil
}

func (t *heroTx) GetPlayerResourcesForUpdate(ctx context.Context, playerID string) (domain.Resources, error) {
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

func (t *heroTx) UpdatePlayerResources(ctx context.Context, playerID string, resources domain.Resources) error {
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
