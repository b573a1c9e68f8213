package subscribers

import (
	"github.com/rs/zerolog"

	"github.com/tacticore/terminal-defense/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id       string
	logger   zerolog.Logger
	logLevel zerolog.Level
	filter   map[string]bool // if non-nil, only log these event types
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// SetEventFilter sets which event types to log (empty means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.filter = nil
		return
	}
	ls.filter = make(map[string]bool, len(eventTypes))
	for _, eventType := range eventTypes {
		ls.filter[eventType] = true
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string { return ls.id }

// InterestedIn returns true if the subscriber wants this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.filter == nil {
		return true
	}
	return ls.filter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.logLevel).
		Str("event_type", event.Type()).
		Str("match_id", event.MatchID())

	switch e := event.(type) {
	case events.StructureEvent:
		logEvent = logEvent.
			Int("player", e.Player).
			Stringer("kind", e.Kind).
			Stringer("loc", e.Loc).
			Int("turn", e.Turn)
	case events.RegionFortifiedEvent:
		logEvent = logEvent.
			Int("player", e.Player).
			Int("region_id", e.RegionID).
			Str("criterion", e.Criterion).
			Float64("spent", e.Spent).
			Int("turn", e.Turn)
	case events.RebuildQueuedEvent:
		logEvent = logEvent.
			Int("player", e.Player).
			Stringer("kind", e.Kind).
			Stringer("loc", e.Loc).
			Bool("upgraded", e.Upgraded).
			Int("turn", e.Turn)
	case events.TurnCompletedEvent:
		logEvent = logEvent.
			Int("turn", e.Turn).
			Dur("duration", e.Duration)
	}

	logEvent.Msg("Game event")
}
