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

// PlayerRepository implements repository.Player against PostgreSQL.
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository constructs a PlayerRepository over db.
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	var resourcesJSON []byte
	err := row.Scan(&p.ID, &p.Username, &p.PasswordHash, &p.DisplayName, &p.Level, &p.Exp, &resourcesJSON, &p.VIPLevel, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(resourcesJSON, &p.Resources); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalRecord, err)
	}
	return &p, nil
}

const playerColumns = "id, username, password_hash, display_name, level, exp, resources, vip_level, created_at, updated_at"

func (r *PlayerRepository) CreatePlayer(ctx context.Context, p *domain.Player) error {
	resourcesJSON, err := json.Marshal(p.Resources)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO players (id, username, password_hash, display_name, level, exp, resources, vip_level, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Username, p.PasswordHash, p.DisplayName, p.Level, p.Exp, resourcesJSON, p.VIPLevel, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (r *PlayerRepository) GetPlayer(ctx context.Context, id string) (*domain.Player, error) {
	row := r.db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("get player: %w", err)
	}
	return p, nil
}

func (r *PlayerRepository) GetPlayerByUsername(ctx context.Context, username string) (*domain.Player, error) {
	row := r.db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE username = $1`, username)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("get player by username: %w", err)
	}
	return p, nil
}

func (r *PlayerRepository) UpdatePlayer(ctx context.Context, p *domain.Player) error {
	resourcesJSON, err := json.Marshal(p.Resources)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}
	_, err = r.db.Exec(ctx,
		`UPDATE players SET display_name = $2, level = $3, exp = $4, resources = $5, vip_level = $6, updated_at = now()
		 WHERE id = $1`,
		p.ID, p.DisplayName, p.Level, p.Exp, resourcesJSON, p.VIPLevel)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	return nil
}

// ListPlayerIDs returns every registered player id, for batch jobs like
// the stamina regeneration worker.
func (r *PlayerRepository) ListPlayerIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM players`)
	if err != nil {
		return nil, fmt.Errorf("list player ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan player id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list player ids: %w", err)
	}
	return ids, nil
}

func (r *PlayerRepository) BeginTx(ctx context.Context) (repository.PlayerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &playerTx{tx: tx}, nil
}

type playerTx struct {
	tx pgx.Tx
}

func (t *playerTx) Commit(ctx context.Context) error { return t.tx.Commit(ctx) }
func (t *playerTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return repository.ErrTxClosed
	}
	return err
}

func (t *playerTx) GetPlayerForUpdate(ctx context.Context, id string) (*domain.Player, error) {
	row := t.tx.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1 FOR UPDATE`, id)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("get player for update: %w", err)
	}
	return p, nil
}

func (t *playerTx) UpdatePlayerResources(ctx context.Context, id string, resources domain.Resources) error {
	resourcesJSON, err := json.Marshal(resources)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}
	_, err = t.tx.Exec(ctx, `UPDATE players SET resources = $2, updated_at = now() WHERE id = $1`, id, resourcesJSON)
	if err != nil {
		return fmt.Errorf("update player resources: %w", err)
	}
	return nil
}
