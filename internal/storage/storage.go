// internal/storage/storage.go
package storage

import "github.com/ultitrack/recorder/pkg/core"

// Backend is the interface all match sinks must satisfy. Calls arrive after
// the engine has accepted a transition; the state passed is the one that
// resulted from it.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Match management
	StartMatch(match core.Match, roster core.Roster) error
	EndMatch(final core.GameState) error

	// Event recording
	RecordEvent(e core.GameEvent, state core.GameState) error
	UndoEvent(e core.GameEvent, state core.GameState) error
}

// Exporter is an optional interface for backends that write a match file.
type Exporter interface {
	ExportedFilePath() string
}
