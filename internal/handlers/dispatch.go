package handlers

import (
	"errors"
	"fmt"

	"github.com/ultitrack/recorder/internal/dispatcher"
	"github.com/ultitrack/recorder/internal/input"
	"github.com/ultitrack/recorder/internal/stats"
	"github.com/ultitrack/recorder/internal/storage"
)

// RegisterHandlers registers all command handlers with the dispatcher.
func (s *Service) RegisterHandlers(d *dispatcher.Dispatcher) {
	// Game lifecycle
	d.Register(":START:", s.handleStart, dispatcher.Logged(), dispatcher.Describe("start the game; the starting side gets possession"))
	d.Register(":NEW:GAME:", s.handleNewGame, dispatcher.Logged(), dispatcher.Describe("discard the log and return to the pre-game state"))
	d.Register(":EXPORT:", s.handleExport, dispatcher.Logged(), dispatcher.Describe("end the match and export it"))

	// Recording
	d.Register(":TAP:", s.handleTap, dispatcher.Logged(), dispatcher.Describe("tap the field: x y (percent of width, length)"))
	d.Register(":SELECT:", s.handleSelect, dispatcher.Logged(), dispatcher.Describe("choose a player for the open selection: id"))
	d.Register(":EVENT:", s.handleEvent, dispatcher.Logged(), dispatcher.Describe("record a button event: type [player id]"))
	d.Register(":UNDO:", s.handleUndo, dispatcher.Logged(), dispatcher.Describe("remove the last event"))
	d.Register(":CANCEL:", s.handleCancel, dispatcher.Describe("drop the pending tap and close the selection"))

	// Lineups
	d.Register(":LINEUP:", s.handleLineup, dispatcher.Logged(), dispatcher.Describe("set a lineup: side id[,id...]"))
	d.Register(":LINEUP:TOGGLE:", s.handleToggle, dispatcher.Logged(), dispatcher.Describe("toggle one player: [side] id"))

	// Views
	d.Register(":STATE:", s.handleState, dispatcher.Describe("show score, possession and lineups"))
	d.Register(":STATS:", s.handleStats, dispatcher.Describe("show match and player statistics"))
	d.Register(":LOG:", s.handleLog, dispatcher.Describe("show the match log, newest first"))
	d.Register(":HELP:", func(dispatcher.Event) (any, error) {
		return RenderHelp(d.Commands()), nil
	}, dispatcher.Describe("list commands"))
}

func (s *Service) handleStart(e dispatcher.Event) (any, error) {
	eng := s.deps.Surface.Engine()
	if !eng.StartGame() {
		return "game already in progress", nil
	}

	m := s.deps.Match.GetMatch()
	m.StartTime = e.Timestamp
	s.deps.Match.SetMatch(m)

	state := eng.Snapshot()
	s.deps.Match.SetScore(state.Score)
	s.startBackend()

	return fmt.Sprintf("game started, %s in possession", state.CurrentPossession), nil
}

func (s *Service) handleNewGame(e dispatcher.Event) (any, error) {
	s.deps.Surface.Reset()
	s.backendStarted = false

	m := s.deps.Match.GetMatch()
	m.StartTime = e.Timestamp
	s.deps.Match.SetMatch(m)

	return "new game", nil
}

func (s *Service) handleTap(e dispatcher.Event) (any, error) {
	c, err := s.deps.Parser.ParseTap(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tap: %w", err)
	}

	menu, err := s.deps.Surface.Tap(c)
	if err != nil {
		return nil, err
	}
	return RenderSelection(*s.deps.Surface.Pending(), menu, s.deps.Surface.SelectablePlayers()), nil
}

func (s *Service) handleSelect(e dispatcher.Event) (any, error) {
	id, err := s.deps.Parser.ParseSelect(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse selection: %w", err)
	}

	ev, err := s.deps.Surface.Select(id)
	if err != nil {
		return nil, err
	}
	state := s.accepted(ev)
	return RenderEvent(s.deps.Surface.Engine().Roster(), ev, state), nil
}

func (s *Service) handleEvent(e dispatcher.Event) (any, error) {
	t, playerID, err := s.deps.Parser.ParseEvent(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse event: %w", err)
	}

	ev, err := s.deps.Surface.Record(t, playerID)
	if err != nil {
		return nil, err
	}
	state := s.accepted(ev)
	return RenderEvent(s.deps.Surface.Engine().Roster(), ev, state), nil
}

func (s *Service) handleUndo(dispatcher.Event) (any, error) {
	last, ok := s.deps.Surface.Engine().Snapshot().LastEvent()
	if !ok || !s.deps.Surface.Undo() {
		return "nothing to undo", nil
	}
	state := s.undone(last)
	return fmt.Sprintf("undid %s\n%s", last.Type.Label(), RenderScoreLine(s.deps.Surface.Engine().Roster(), state)), nil
}

func (s *Service) handleCancel(dispatcher.Event) (any, error) {
	s.deps.Surface.Cancel()
	return "selection cancelled", nil
}

func (s *Service) handleLineup(e dispatcher.Event) (any, error) {
	side, ids, err := s.deps.Parser.ParseLineup(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse lineup: %w", err)
	}

	if err := s.deps.Surface.SetLineup(side, ids); err != nil {
		return nil, err
	}
	s.deps.Surface.OpenLineup(side)
	return RenderLineup(s.deps.Surface, side), nil
}

func (s *Service) handleToggle(e dispatcher.Event) (any, error) {
	side, id, err := s.deps.Parser.ParseToggle(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse toggle: %w", err)
	}
	if side == "" {
		side = s.deps.Surface.LineupTab()
	}

	if _, err := s.deps.Surface.ToggleLineup(side, id); err != nil {
		if errors.Is(err, input.ErrLineupFull) {
			s.deps.Logger.Warn("lineup full", "side", string(side), "player", id)
		}
		return nil, err
	}
	s.deps.Surface.OpenLineup(side)
	return RenderLineup(s.deps.Surface, side), nil
}

func (s *Service) handleState(dispatcher.Event) (any, error) {
	return RenderState(s.deps.Match.GetMatch(), s.deps.Surface), nil
}

func (s *Service) handleStats(dispatcher.Event) (any, error) {
	eng := s.deps.Surface.Engine()
	events := eng.Snapshot().Events
	return RenderStats(stats.Summarize(events), stats.PlayerLines(eng.Roster(), events)), nil
}

func (s *Service) handleLog(dispatcher.Event) (any, error) {
	eng := s.deps.Surface.Engine()
	return RenderLog(stats.MatchLog(eng.Field(), eng.Roster(), eng.Snapshot().Events)), nil
}

func (s *Service) handleExport(dispatcher.Event) (any, error) {
	if !s.hasBackend() {
		return nil, errors.New("no storage backend configured")
	}
	s.startBackend()
	if !s.backendStarted {
		return nil, errors.New("storage backend could not start the match")
	}

	state := s.deps.Surface.Engine().Snapshot()
	if err := s.deps.Backend.EndMatch(state); err != nil {
		return nil, fmt.Errorf("failed to export match: %w", err)
	}

	if ex, ok := s.deps.Backend.(storage.Exporter); ok && ex.ExportedFilePath() != "" {
		return fmt.Sprintf("match exported to %s", ex.ExportedFilePath()), nil
	}
	return "match ended", nil
}
