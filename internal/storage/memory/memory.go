// internal/storage/memory/memory.go
package memory

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ultitrack/recorder/internal/config"
	"github.com/ultitrack/recorder/internal/geo"
	"github.com/ultitrack/recorder/pkg/core"
)

var (
	// ErrNotStarted is returned when events arrive before StartMatch.
	ErrNotStarted = errors.New("no match started")
	// ErrUnknownEvent is returned when undoing an event that was never recorded.
	ErrUnknownEvent = errors.New("event not recorded")
)

// Backend keeps the match in memory and exports it to JSON when it ends.
type Backend struct {
	cfg   config.MemoryConfig
	field geo.Field
	now   func() time.Time

	match  *core.Match
	roster core.Roster
	events []core.GameEvent

	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig, field geo.Field) *Backend {
	return &Backend{
		cfg:   cfg,
		field: field,
		now:   time.Now,
	}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// StartMatch begins recording a new match, dropping anything held before.
func (b *Backend) StartMatch(match core.Match, roster core.Roster) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	m := match
	b.match = &m
	b.roster = roster
	b.events = nil
	return nil
}

// RecordEvent appends an accepted event.
func (b *Backend) RecordEvent(e core.GameEvent, _ core.GameState) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.match == nil {
		return ErrNotStarted
	}
	b.events = append(b.events, e)
	return nil
}

// UndoEvent removes the most recent copy of e.
func (b *Backend) UndoEvent(e core.GameEvent, _ core.GameState) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.match == nil {
		return ErrNotStarted
	}
	for i := len(b.events) - 1; i >= 0; i-- {
		if b.events[i].ID == e.ID {
			b.events = append(b.events[:i], b.events[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownEvent, e.ID)
}

// EndMatch exports the recorded events together with the final state.
func (b *Backend) EndMatch(final core.GameState) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.match == nil {
		return ErrNotStarted
	}
	return b.exportJSON(final)
}

// Events returns a copy of the recorded log.
func (b *Backend) Events() []core.GameEvent {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]core.GameEvent(nil), b.events...)
}

// ExportedFilePath returns the path of the last export, or "".
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
