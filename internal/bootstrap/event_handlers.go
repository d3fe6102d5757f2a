package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/daicaxom/tactics-server/internal/event"
	"github.com/daicaxom/tactics-server/internal/metrics"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
}

// RegisterEventHandlers sets up all event handlers and subscribers.
// Domain services publish their own events (battle, gacha, hero, equipment,
// team); the only process-wide subscriber is the metrics collector that
// turns published events into Prometheus counters.
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	return nil
}
