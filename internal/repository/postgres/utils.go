// Package postgres implements the repository interfaces against
// PostgreSQL using pgx directly: every player-owned aggregate
// (hero/equipment/team/story/gacha/player) is stored with its core
// identity columns plus a JSONB blob of the full domain struct,
// mirroring the teacher's own inventory_data JSONB-blob convention
// (internal/database/postgres/user.go's GetInventory/UpdateInventory)
// rather than a fully normalized column-per-field schema.
//
// The teacher's repositories are generated-Queries (sqlc) wrappers; that
// codegen output has no equivalent here, so every query below is raw SQL
// issued directly against a *pgxpool.Pool/pgx.Tx.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/daicaxom/tactics-server/internal/logger"
)

// SafeRollback rolls back tx and logs any error that isn't ErrTxClosed.
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("failed to rollback transaction", "error", err)
	}
}
