// Package game runs the per-turn match loop: resource accrual, each side's
// defense analysis and build pass, and the bookkeeping around them.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tacticore/terminal-defense/internal/config"
	"github.com/tacticore/terminal-defense/internal/game/core"
	"github.com/tacticore/terminal-defense/internal/game/defense"
	"github.com/tacticore/terminal-defense/internal/game/events"
	"github.com/tacticore/terminal-defense/internal/game/history"
	"github.com/tacticore/terminal-defense/internal/game/region"
	"github.com/tacticore/terminal-defense/internal/monitoring"
)

// ErrMatchOver is returned by Step once the turn limit is reached
var ErrMatchOver = errors.New("match is over")

// Engine drives a full match: it owns the state, one Defense per player, and
// the ambient bookkeeping (events, history, turn timing).
type Engine struct {
	MatchID string

	cfg       *config.Config
	state     *State
	stats     core.StatsTable
	defenses  [2]*defense.Defense
	criterion defense.Criterion

	bus     *events.Bus
	history *history.Buffer
	timer   *monitoring.TurnTimer

	matchOver bool
	logger    zerolog.Logger
}

// NewEngine builds an engine from configuration. The bus is optional.
func NewEngine(cfg *config.Config, bus *events.Bus, logger zerolog.Logger) (*Engine, error) {
	criterion, err := cfg.Criterion()
	if err != nil {
		return nil, err
	}

	matchID := uuid.NewString()
	stats := cfg.StatsTable()
	state := NewState(cfg.Game.BoardWidth, cfg.Game.BoardHeight, cfg.Game.StartingResources)

	e := &Engine{
		MatchID:   matchID,
		cfg:       cfg,
		state:     state,
		stats:     stats,
		criterion: criterion,
		bus:       bus,
		history:   history.NewBuffer(cfg.Game.MaxTurns, logger),
		timer:     monitoring.NewTurnTimer(time.Duration(cfg.Game.TurnBudgetMillis)*time.Millisecond, logger),
		logger:    logger.With().Str("component", "engine").Str("match_id", matchID).Logger(),
	}

	tuning := cfg.DefenseTuning()
	for player := 0; player <= 1; player++ {
		d, err := defense.New(player, state.Grid, stats, tuning, bus, matchID, logger)
		if err != nil {
			return nil, fmt.Errorf("engine setup: %w", err)
		}
		e.defenses[player] = d
	}
	return e, nil
}

// State exposes the match state for rendering and tests
func (e *Engine) State() *State { return e.state }

// Defense returns the given player's defense aggregate
func (e *Engine) Defense(player int) *defense.Defense { return e.defenses[player] }

// History returns the per-turn record buffer
func (e *Engine) History() *history.Buffer { return e.history }

// Timer returns the turn budget tracker
func (e *Engine) Timer() *monitoring.TurnTimer { return e.timer }

// Step advances the match by one turn: both sides accrue resources, rebuild
// worn structures, then fortify their weakest region until the configured
// resource floor.
func (e *Engine) Step() error {
	if e.matchOver {
		return ErrMatchOver
	}

	e.state.Turn++
	turn := e.state.Turn
	e.timer.StartTurn(turn)

	for player := 0; player <= 1; player++ {
		e.state.Players[player].Resources += e.cfg.Game.ResourcesPerTurn
		view := e.state.View(player, e.stats, e.bus, e.MatchID, e.logger)
		d := e.defenses[player]

		e.timer.TimePhase("update", func() {
			d.Update(e.state.Grid)
		})
		e.timer.TimePhase("rebuild", func() {
			d.Rebuild(e.state.Grid, view)
		})
		e.timer.TimePhase("fortify", func() {
			d.Fortify(e.state.Grid, view, e.criterion, e.cfg.Defense.ResourceFloor)
		})
	}

	e.recordTurn()
	elapsed := e.timer.EndTurn()
	if e.bus != nil {
		e.bus.Publish(events.NewTurnCompletedEvent(e.MatchID, turn, elapsed))
	}

	e.logger.Info().
		Int("turn", turn).
		Float64("p0_resources", e.state.Players[0].Resources).
		Float64("p1_resources", e.state.Players[1].Resources).
		Dur("elapsed", elapsed).
		Msg("Turn completed")

	if turn >= e.cfg.Game.MaxTurns {
		e.matchOver = true
	}
	return nil
}

// Run steps the match to its turn limit
func (e *Engine) Run() error {
	for !e.matchOver {
		if err := e.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Over reports whether the match has reached its turn limit
func (e *Engine) Over() bool { return e.matchOver }

// recordTurn appends the turn's summary to the history buffer
func (e *Engine) recordTurn() {
	rec := history.TurnRecord{Turn: e.state.Turn}
	for player := 0; player <= 1; player++ {
		rec.Resources[player] = e.state.Players[player].Resources
		stats := e.defenses[player].Statistics()
		rec.Regions[player] = append([]region.Statistics(nil), stats...)
	}
	if err := e.history.Add(rec); err != nil {
		e.logger.Warn().Err(err).Msg("Failed to record turn history")
	}
}
