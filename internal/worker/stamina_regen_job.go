package worker

import (
	"context"

	"github.com/daicaxom/tactics-server/internal/logger"
	"github.com/daicaxom/tactics-server/internal/player"
)

// StaminaRegenJob credits every player amount stamina, clamped at their
// own max_stamina, each time it is scheduled. Grounded on the teacher's
// DailyResetWorker (a timer-driven reset over every affected entity),
// but run on the scheduler's fixed-interval ticker instead of a single
// daily UTC+7 reset, since spec.md's stamina model has no reset-to-zero
// semantics, only a gradual regen toward the cap.
type StaminaRegenJob struct {
	players player.Service
	amount  int64
}

// NewStaminaRegenJob wires the player service the job credits stamina
// through and the amount credited per tick.
func NewStaminaRegenJob(players player.Service, amount int64) *StaminaRegenJob {
	return &StaminaRegenJob{players: players, amount: amount}
}

// Process implements Job.
func (j *StaminaRegenJob) Process(ctx context.Context) error {
	count, err := j.players.RegenerateStamina(ctx, j.amount)
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgStaminaRegenCompleted, "players_credited", count, "amount", j.amount)
	return nil
}
