package storage

import (
	"errors"

	"github.com/ultitrack/recorder/pkg/core"
)

// Multi fans every call out to each backend in order. All backends are
// called even when one fails; the errors are joined.
type Multi struct {
	backends []Backend
}

// NewMulti creates a backend that forwards to all given backends.
func NewMulti(backends ...Backend) *Multi {
	return &Multi{backends: backends}
}

func (m *Multi) each(fn func(Backend) error) error {
	var errs []error
	for _, b := range m.backends {
		if err := fn(b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Multi) Init() error { return m.each(Backend.Init) }
func (m *Multi) Close() error { return m.each(Backend.Close) }

func (m *Multi) StartMatch(match core.Match, roster core.Roster) error {
	return m.each(func(b Backend) error { return b.StartMatch(match, roster) })
}

func (m *Multi) EndMatch(final core.GameState) error {
	return m.each(func(b Backend) error { return b.EndMatch(final) })
}

func (m *Multi) RecordEvent(e core.GameEvent, state core.GameState) error {
	return m.each(func(b Backend) error { return b.RecordEvent(e, state) })
}

func (m *Multi) UndoEvent(e core.GameEvent, state core.GameState) error {
	return m.each(func(b Backend) error { return b.UndoEvent(e, state) })
}

// ExportedFilePath returns the first non-empty path among exporting backends.
func (m *Multi) ExportedFilePath() string {
	for _, b := range m.backends {
		if ex, ok := b.(Exporter); ok {
			if p := ex.ExportedFilePath(); p != "" {
				return p
			}
		}
	}
	return ""
}

// Discard accepts and drops everything.
type Discard struct{}

func (Discard) Init() error { return nil }
func (Discard) Close() error { return nil }
func (Discard) StartMatch(core.Match, core.Roster) error { return nil }
func (Discard) EndMatch(core.GameState) error { return nil }
func (Discard) RecordEvent(core.GameEvent, core.GameState) error { return nil }
func (Discard) UndoEvent(core.GameEvent, core.GameState) error { return nil }
