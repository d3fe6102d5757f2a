package metrics

import (
	"context"
	"strconv"

	"github.com/daicaxom/tactics-server/internal/domain"
	"github.com/daicaxom/tactics-server/internal/event"
	"github.com/daicaxom/tactics-server/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events we record business metrics for
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.Type(domain.EventTypeBattleStarted),
		event.Type(domain.EventTypeBattleEnded),
		event.Type(domain.EventTypeGachaPulled),
		event.Type(domain.EventTypeHeroLeveledUp),
		event.Type(domain.EventTypeEquipmentEnhanced),
		event.Type(domain.EventTypeStageCleared),
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.Type(domain.EventTypeBattleStarted):
		if p, ok := evt.Payload.(domain.BattleStartedPayload); ok {
			BattlesStarted.WithLabelValues(p.StageID).Inc()
		}

	case event.Type(domain.EventTypeBattleEnded):
		if p, ok := evt.Payload.(domain.BattleEndedPayload); ok {
			BattlesCompleted.WithLabelValues(string(p.Result)).Inc()
		}

	case event.Type(domain.EventTypeGachaPulled):
		if p, ok := evt.Payload.(domain.GachaPulledPayload); ok {
			GachaPulls.WithLabelValues(p.BannerID).Inc()
		}

	case event.Type(domain.EventTypeHeroLeveledUp):
		HeroesLeveledUp.Inc()

	case event.Type(domain.EventTypeEquipmentEnhanced):
		if _, ok := evt.Payload.(domain.EquipmentEnhancedPayload); ok {
			EquipmentEnhanced.WithLabelValues("success").Inc()
		}

	case event.Type(domain.EventTypeStageCleared):
		if p, ok := evt.Payload.(domain.StageClearedPayload); ok {
			StagesCleared.WithLabelValues(strconv.FormatBool(p.FirstClear)).Inc()
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
