// Package history keeps a bounded record of per-turn board summaries so the
// viewer and post-match tooling can look back without replaying the engine.
package history

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tacticore/terminal-defense/internal/game/region"
)

// ErrClosed is returned when records are added after Close
var ErrClosed = errors.New("history buffer is closed")

// TurnRecord is one turn's summary for both players
type TurnRecord struct {
	Turn      int
	Resources [2]float64
	Regions   [2][]region.Statistics
}

// Buffer is a thread-safe circular buffer of turn records. The engine writes
// from its loop and the viewer reads from its own; once capacity is reached
// the oldest records are dropped.
type Buffer struct {
	mu       sync.RWMutex
	records  []TurnRecord
	capacity int
	size     int
	head     int // write position
	closed   bool

	totalAdded   int64
	totalDropped int64

	logger zerolog.Logger
}

// NewBuffer creates a turn history with the specified capacity
func NewBuffer(capacity int, logger zerolog.Logger) *Buffer {
	if capacity <= 0 {
		capacity = 256
	}
	return &Buffer{
		records:  make([]TurnRecord, capacity),
		capacity: capacity,
		logger:   logger.With().Str("component", "turn_history").Logger(),
	}
}

// Add appends one turn record, dropping the oldest when full
func (b *Buffer) Add(rec TurnRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	if b.size >= b.capacity {
		b.totalDropped++
		b.logger.Debug().
			Int64("dropped_total", b.totalDropped).
			Msg("History full, dropping oldest turn")
	} else {
		b.size++
	}

	b.records[b.head] = rec
	b.head = (b.head + 1) % b.capacity
	b.totalAdded++
	return nil
}

// Last returns the most recent record, false when empty
func (b *Buffer) Last() (TurnRecord, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.size == 0 {
		return TurnRecord{}, false
	}
	return b.records[(b.head-1+b.capacity)%b.capacity], true
}

// Recent returns up to n records, newest last
func (b *Buffer) Recent(n int) []TurnRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n > b.size {
		n = b.size
	}
	if n <= 0 {
		return nil
	}
	out := make([]TurnRecord, n)
	start := (b.head - n + b.capacity*2) % b.capacity
	for i := 0; i < n; i++ {
		out[i] = b.records[(start+i)%b.capacity]
	}
	return out
}

// Len returns the number of records currently held
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

// Capacity returns the fixed buffer capacity
func (b *Buffer) Capacity() int { return b.capacity }

// Stats returns lifetime added and dropped counts
func (b *Buffer) Stats() (added, dropped int64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.totalAdded, b.totalDropped
}

// Close stops further writes; reads keep working
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}
