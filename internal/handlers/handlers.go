package handlers

import (
	"log/slog"

	"github.com/ultitrack/recorder/internal/input"
	"github.com/ultitrack/recorder/internal/match"
	"github.com/ultitrack/recorder/internal/parser"
	"github.com/ultitrack/recorder/internal/storage"
	"github.com/ultitrack/recorder/pkg/core"
)

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Surface *input.Surface
	Parser  *parser.Parser
	Match   *match.Context
	Backend storage.Backend // optional
	Logger  *slog.Logger
}

// Service turns dispatcher events into engine intents and renders the
// result as text. It also feeds accepted transitions to the backend.
type Service struct {
	deps Dependencies

	// StartMatch has been sent for the current game
	backendStarted bool
}

// NewService creates a new handler service
func NewService(deps Dependencies) *Service {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Match == nil {
		deps.Match = match.NewContext()
	}
	if deps.Parser == nil {
		deps.Parser = parser.NewParser(deps.Logger)
	}
	return &Service{deps: deps}
}

// Surface returns the input surface the service drives.
func (s *Service) Surface() *input.Surface {
	return s.deps.Surface
}

func (s *Service) hasBackend() bool {
	return s.deps.Backend != nil
}

// startBackend sends StartMatch once per game. Events may be recorded
// before the game is started, so every sink call goes through here.
func (s *Service) startBackend() {
	if !s.hasBackend() || s.backendStarted {
		return
	}
	m := s.deps.Match.GetMatch()
	if err := s.deps.Backend.StartMatch(m, s.deps.Surface.Engine().Roster().Roster()); err != nil {
		s.deps.Logger.Error("backend failed to start match", "error", err)
		return
	}
	s.backendStarted = true
}

// accepted publishes a recorded event. Sink failures are logged and never
// undo the transition.
func (s *Service) accepted(ev core.GameEvent) core.GameState {
	state := s.deps.Surface.Engine().Snapshot()
	s.deps.Match.SetScore(state.Score)
	if s.hasBackend() {
		s.startBackend()
		if err := s.deps.Backend.RecordEvent(ev, state); err != nil {
			s.deps.Logger.Error("backend failed to record event", "id", ev.ID, "error", err)
		}
	}
	return state
}

func (s *Service) undone(ev core.GameEvent) core.GameState {
	state := s.deps.Surface.Engine().Snapshot()
	s.deps.Match.SetScore(state.Score)
	if s.hasBackend() {
		s.startBackend()
		if err := s.deps.Backend.UndoEvent(ev, state); err != nil {
			s.deps.Logger.Error("backend failed to undo event", "id", ev.ID, "error", err)
		}
	}
	return state
}
