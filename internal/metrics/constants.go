package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal      = "http_requests_total"
	MetricNameHTTPRequestDuration    = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight   = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished      = "events_published_total"
	MetricNameEventHandlerErrors   = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameBattlesStarted   = "battles_started_total"
	MetricNameBattlesCompleted = "battles_completed_total"
	MetricNameGachaPulls       = "gacha_pulls_total"
	MetricNameHeroesLeveledUp  = "heroes_leveled_up_total"
	MetricNameEquipmentEnhanced = "equipment_enhanced_total"
	MetricNameStagesCleared    = "stages_cleared_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal     = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration   = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight  = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished     = "Total number of events published"
	HelpTextEventHandlerErrors  = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextBattlesStarted    = "Total number of battles started"
	HelpTextBattlesCompleted  = "Total number of battles completed, by result"
	HelpTextGachaPulls        = "Total number of gacha pulls, by banner"
	HelpTextHeroesLeveledUp   = "Total number of hero level-ups"
	HelpTextEquipmentEnhanced = "Total number of equipment enhancements, by outcome"
	HelpTextStagesCleared     = "Total number of stage clears, by first-clear status"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelResult     = "result"
	LabelStageID    = "stage_id"
	LabelBannerID   = "banner_id"
	LabelOutcome    = "outcome"
	LabelFirstClear = "first_clear"
)

// ============================================================================
// Event Types
// ============================================================================

// Event types are defined in internal/domain/events.go. Import
// github.com/daicaxom/tactics-server/internal/domain to use:
//   - domain.EventTypeBattleStarted, domain.EventTypeBattleEnded
//   - domain.EventTypeGachaPulled, domain.EventTypeHeroLeveledUp
//   - domain.EventTypeEquipmentEnhanced, domain.EventTypeStageCleared

// ============================================================================
// Event Payload Field Names
// ============================================================================

// Field names used when extracting values from event payloads
const (
	PayloadFieldStageID    = "stage_id"
	PayloadFieldBannerID   = "banner_id"
	PayloadFieldResult     = "result"
	PayloadFieldOutcome    = "outcome"
	PayloadFieldFirstClear = "first_clear"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadNotMap    = "Event payload is not a map"
	LogMsgMetricsRecorded       = "Metrics recorded for event"
)
