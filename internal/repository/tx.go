// Package repository defines the persistence interfaces consumed by the
// progression and battle services. Implementations live in
// internal/repository/postgres (durable player-owned state); live battles
// are kept by internal/session, not behind these interfaces.
package repository

import (
	"context"
	"errors"

	"github.com/daicaxom/tactics-server/internal/logger"
)

// ErrTxClosed is returned when attempting to commit or rollback an
// already-closed transaction.
var ErrTxClosed = errors.New("transaction already closed")

// Tx is the minimal transactional handle every per-aggregate transaction
// interface embeds.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// SafeRollback rolls back a transaction and logs any error that isn't
// ErrTxClosed. Call it in a defer immediately after BeginTx to guarantee
// cleanup on every early return; a prior explicit Commit leaves nothing
// for it to do.
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, ErrTxClosed) {
		logger.FromContext(ctx).Error("failed to rollback transaction", "error", err)
	}
}
