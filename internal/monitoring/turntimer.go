// Package monitoring tracks how much of the per-turn wall-clock budget the
// engine actually spends.
package monitoring

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TurnTimer measures turn durations against a fixed budget. The engine is
// single-threaded per turn, but the viewer reads metrics from its own loop,
// so bookkeeping stays mutex-guarded.
type TurnTimer struct {
	mu          sync.RWMutex
	budget      time.Duration
	started     time.Time
	currentTurn int
	running     bool

	turns       int64
	overruns    int64
	total       time.Duration
	peak        time.Duration
	peakTurn    int
	phaseTotals map[string]time.Duration

	logger zerolog.Logger
}

// NewTurnTimer creates a timer with the given per-turn budget
func NewTurnTimer(budget time.Duration, logger zerolog.Logger) *TurnTimer {
	return &TurnTimer{
		budget:      budget,
		phaseTotals: make(map[string]time.Duration),
		logger:      logger.With().Str("component", "turn_timer").Logger(),
	}
}

// Budget returns the configured per-turn budget
func (t *TurnTimer) Budget() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.budget
}

// StartTurn marks the beginning of a turn
func (t *TurnTimer) StartTurn(turn int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.started = time.Now()
	t.currentTurn = turn
	t.running = true
}

// EndTurn closes the current turn and returns its duration. Turns that blow
// the budget are counted and logged.
func (t *TurnTimer) EndTurn() time.Duration {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return 0
	}
	elapsed := time.Since(t.started)
	turn := t.currentTurn
	t.running = false
	t.turns++
	t.total += elapsed
	if elapsed > t.peak {
		t.peak = elapsed
		t.peakTurn = turn
	}
	over := elapsed > t.budget
	if over {
		t.overruns++
	}
	budget := t.budget
	t.mu.Unlock()

	if over {
		t.logger.Warn().
			Int("turn", turn).
			Dur("elapsed", elapsed).
			Dur("budget", budget).
			Msg("Turn exceeded time budget")
	} else {
		t.logger.Debug().
			Int("turn", turn).
			Dur("elapsed", elapsed).
			Msg("Turn completed within budget")
	}
	return elapsed
}

// TimePhase measures one named phase of the current turn
func (t *TurnTimer) TimePhase(name string, fn func()) {
	start := time.Now()
	fn()
	elapsed := time.Since(start)

	t.mu.Lock()
	t.phaseTotals[name] += elapsed
	t.mu.Unlock()
}

// Metrics returns a snapshot of the accumulated timing statistics
func (t *TurnTimer) Metrics() TurnMetrics {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var average time.Duration
	if t.turns > 0 {
		average = t.total / time.Duration(t.turns)
	}
	return TurnMetrics{
		Turns:       t.turns,
		Overruns:    t.overruns,
		Average:     average,
		Peak:        t.peak,
		PeakTurn:    t.peakTurn,
		PhaseTotals: copyDurations(t.phaseTotals),
	}
}

// TurnMetrics contains accumulated turn timing statistics
type TurnMetrics struct {
	Turns       int64                    `json:"turns"`
	Overruns    int64                    `json:"overruns"`
	Average     time.Duration            `json:"average"`
	Peak        time.Duration            `json:"peak"`
	PeakTurn    int                      `json:"peak_turn"`
	PhaseTotals map[string]time.Duration `json:"phase_totals"`
}

func copyDurations(m map[string]time.Duration) map[string]time.Duration {
	result := make(map[string]time.Duration, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
