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

// EquipmentRepository implements repository.Equipment against PostgreSQL.
type EquipmentRepository struct {
	db *pgxpool.Pool
}

// NewEquipmentRepository constructs an EquipmentRepository over db.
func NewEquipmentRepository(db *pgxpool.Pool) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func scanEquipmentRow(row pgx.Row) (*domain.Equipment, error) {
	var id string
	var data []byte
	if err := row.Scan(&id, &data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("scan equipment: %w", err)
	}
	var e domain.Equipment
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalRecord, err)
	}
	return &e, nil
}

func (r *EquipmentRepository) CreateEquipment(ctx context.Context, playerID string, e *domain.Equipment) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}
	_, err = r.db.Exec(ctx, `INSERT INTO equipment (id, player_id, data) VALUES ($1, $2, $3)`, e.ID, playerID, data)
	if err != nil {
		return fmt.Errorf("insert equipment: %w", err)
	}
	return nil
}

func (r *EquipmentRepository) GetEquipment(ctx context.Context, playerID, equipmentID string) (*domain.Equipment, error) {
	row := r.db.QueryRow(ctx, `SELECT id, data FROM equipment WHERE id = $1 AND player_id = $2`, equipmentID, playerID)
	return scanEquipmentRow(row)
}

func (r *EquipmentRepository) ListEquipment(ctx context.Context, playerID string) ([]*domain.Equipment, error) {
	rows, err := r.db.Query(ctx, `SELECT id, data FROM equipment WHERE player_id = $1 ORDER BY id`, playerID)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	var items []*domain.Equipment
	for rows.Next() {
		item, err := scanEquipmentRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *EquipmentRepository) UpdateEquipment(ctx context.Context, playerID string, e *domain.Equipment) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}
	_, err = r.db.Exec(ctx, `UPDATE equipment SET data = $3 WHERE id = $1 AND player_id = $2`, e.ID, playerID, data)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	return nil
}

func (r *EquipmentRepository) DeleteEquipment(ctx context.Context, playerID, equipmentID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM equipment WHERE id = $1 AND player_id = $2`, equipmentID, playerID)
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	return nil
}

func (r *EquipmentRepository) BeginTx(ctx context.Context) (repository.EquipmentTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &equipmentTx{tx: tx}, nil
}

type equipmentTx struct {
	tx pgx.Tx
}

func (t *equipmentTx) Commit(ctx context.Context) error { return t.tx.Commit(ctx) }
func (t *equipmentTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return repository.ErrTxClosed
	}
	return err
}

func (t *equipmentTx) GetEquipmentForUpdate(ctx context.Context, playerID, equipmentID string) (*domain.Equipment, error) {
	row := t.tx.QueryRow(ctx, `SELECT id, data FROM equipment WHERE id = $1 AND player_id = $2 FOR UPDATE`, equipmentID, playerID)
	return scanEquipmentRow(row)
}

func (t *equipmentTx) UpdateEquipment(ctx context.Context, playerID string, e *domain.Equipment) error {
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

func (t *equipmentTx) DeleteEquipment(ctx context.Context, playerID, equipmentID string) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM equipment WHERE id = $1 AND player_id = $2`, equipmentID, playerID)
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	return nil
}

func (t *equipmentTx) CreateEquipment(ctx context.Context, playerID string, e *domain.Equipment) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalRecord, err)
	}
	_, err = t.tx.Exec(ctx, `INSERT INTO equipment (id, player_id, data) VALUES ($1, $2, $3)`, e.ID, playerID, data)
	if err != nil {
		return fmt.Errorf("insert equipment: %w", err)
	}
	return nil
}

func (t *equipmentTx) GetPlayerResourcesForUpdate(ctx context.Context, playerID string) (domain.Resources, error) {
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

func (t *equipmentTx) UpdatePlayerResources(ctx context.Context, playerID string, resources domain.Resources) error {
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
