// Package input holds the transient interaction state between a user and the
// engine: the pending tap, the open player selection and the lineup tab.
// Only resolved intents reach the engine.
package input

import (
	"errors"
	"fmt"

	"github.com/ultitrack/recorder/internal/engine"
	"github.com/ultitrack/recorder/internal/geo"
	"github.com/ultitrack/recorder/internal/roster"
	"github.com/ultitrack/recorder/pkg/core"
)

var (
	ErrNoSelection   = errors.New("no player selection is open")
	ErrGameInactive  = errors.New("game has not started")
	ErrRejected      = errors.New("event rejected")
	ErrNotSelectable = errors.New("player is not selectable")
	ErrLineupFull    = errors.New("lineup is full")
)

// Menu is the player selection context opened by a tap.
type Menu struct {
	Open bool
	Role engine.Role
}

type Surface struct {
	engine  *engine.Engine
	pending *core.Coordinate
	menu    Menu
	tab     core.TeamSide
	cap     int
}

// New wraps e. lineupCap bounds toggled lineups; zero means core.LineupCap.
func New(e *engine.Engine, lineupCap int) *Surface {
	if lineupCap <= 0 {
		lineupCap = core.LineupCap
	}
	return &Surface{engine: e, cap: lineupCap}
}

// LineupCap is the most players a toggled lineup may hold.
func (s *Surface) LineupCap() int {
	return s.cap
}

// Engine exposes the wrapped engine for read-only views.
func (s *Surface) Engine() *engine.Engine {
	return s.engine
}

// Tap stores c as the pending location and opens a selection: THROWER when
// nobody holds the disc, RECEIVER otherwise. Taps before the game starts are
// ignored, as are taps that are not finite.
func (s *Surface) Tap(c core.Coordinate) (Menu, error) {
	state := s.engine.Snapshot()
	if !state.IsGameActive {
		return Menu{}, ErrGameInactive
	}
	if !geo.Finite(c) {
		return s.menu, geo.ErrInvalidCoordinates
	}

	c = geo.Clamp(c)
	s.pending = &c
	role := engine.RoleReceiver
	if state.HasDisc == "" {
		role = engine.RoleThrower
	}
	s.menu = Menu{Open: true, Role: role}
	return s.menu, nil
}

func (s *Surface) Menu() Menu {
	return s.menu
}

// Pending returns a copy of the pending tap location, or nil.
func (s *Surface) Pending() *core.Coordinate {
	if s.pending == nil {
		return nil
	}
	c := *s.pending
	return &c
}

// Cancel closes the selection and forgets the pending tap.
func (s *Surface) Cancel() {
	s.pending = nil
	s.menu = Menu{}
}

// Select resolves the open selection with playerID.
func (s *Surface) Select(playerID string) (core.GameEvent, error) {
	if !s.menu.Open {
		return core.GameEvent{}, ErrNoSelection
	}
	p, err := s.selectable(playerID)
	if err != nil {
		return core.GameEvent{}, err
	}

	ev, ok := s.engine.SelectTarget(s.menu.Role, &p, s.pending)
	if !ok {
		return core.GameEvent{}, ErrRejected
	}
	s.Cancel()
	return ev, nil
}

// Record sends a button event. playerID may be empty; the pending tap, if
// any, becomes the event location.
func (s *Surface) Record(t core.EventType, playerID string) (core.GameEvent, error) {
	var player *core.Player
	if playerID != "" {
		p, err := s.engine.Roster().Require(playerID)
		if err != nil {
			return core.GameEvent{}, err
		}
		player = &p
	}

	ev, ok := s.engine.RecordEvent(t, player, s.pending)
	if !ok {
		return core.GameEvent{}, fmt.Errorf("%w: %s needs a location", ErrRejected, t)
	}
	s.Cancel()
	return ev, nil
}

// Undo removes the last event and drops the pending tap.
func (s *Surface) Undo() bool {
	if !s.engine.UndoLast() {
		return false
	}
	s.pending = nil
	return true
}

// Reset starts over with a fresh engine state and a clean surface.
func (s *Surface) Reset() {
	s.engine.NewGame()
	s.Cancel()
	s.tab = ""
}

// SelectablePlayers is the possessing side's active lineup in roster order.
// While choosing a receiver the current holder is left out.
func (s *Surface) SelectablePlayers() []core.Player {
	state := s.engine.Snapshot()
	side := state.PossessionOrHome()
	active := s.engine.Roster().Active(side, state.ActiveLineup.For(side))
	if !s.menu.Open || s.menu.Role != engine.RoleReceiver {
		return active
	}
	out := active[:0]
	for _, p := range active {
		if p.ID != state.HasDisc {
			out = append(out, p)
		}
	}
	return out
}

func (s *Surface) selectable(id string) (core.Player, error) {
	for _, p := range s.SelectablePlayers() {
		if p.ID == id {
			return p, nil
		}
	}
	if _, ok := s.engine.Roster().Get(id); !ok {
		return core.Player{}, fmt.Errorf("%w: %q", roster.ErrUnknownPlayer, id)
	}
	return core.Player{}, fmt.Errorf("%w: %q", ErrNotSelectable, id)
}

// LastKnownLocation is the pending tap or the last event location.
func (s *Surface) LastKnownLocation() *core.Coordinate {
	return s.engine.LastKnownLocation(s.pending)
}

// ThrowerLocation is where the holder stands: the last event location while
// someone has the disc.
func (s *Surface) ThrowerLocation() *core.Coordinate {
	state := s.engine.Snapshot()
	last, ok := state.LastEvent()
	if state.HasDisc == "" || !ok {
		return nil
	}
	return &last.Location
}

// PreviewLocation is the pending tap while a receiver is being chosen.
func (s *Surface) PreviewLocation() *core.Coordinate {
	if !s.menu.Open || s.menu.Role != engine.RoleReceiver {
		return nil
	}
	return s.Pending()
}

// LineupTab is the side the lineup editor shows; it follows possession until
// a side is opened explicitly.
func (s *Surface) LineupTab() core.TeamSide {
	if s.tab != "" {
		return s.tab
	}
	return s.engine.Snapshot().PossessionOrHome()
}

func (s *Surface) OpenLineup(side core.TeamSide) {
	s.tab = side
}

// ToggleLineup adds or removes id from side's lineup. Adding to a full
// lineup fails with ErrLineupFull. It reports whether id is now active.
func (s *Surface) ToggleLineup(side core.TeamSide, id string) (bool, error) {
	if err := s.checkSide(side, id); err != nil {
		return false, err
	}

	current := s.engine.Snapshot().ActiveLineup.For(side)
	next := make([]string, 0, len(current)+1)
	removed := false
	for _, v := range current {
		if v == id {
			removed = true
			continue
		}
		next = append(next, v)
	}
	if removed {
		s.engine.UpdateLineup(side, next)
		return false, nil
	}
	if len(current) >= s.cap {
		return false, fmt.Errorf("%w: %d/%d", ErrLineupFull, len(current), s.cap)
	}
	s.engine.UpdateLineup(side, append(next, id))
	return true, nil
}

// SetLineup replaces side's lineup after checking the cap and that every id
// belongs to side.
func (s *Surface) SetLineup(side core.TeamSide, ids []string) error {
	if len(ids) > s.cap {
		return fmt.Errorf("%w: %d/%d", ErrLineupFull, len(ids), s.cap)
	}
	for _, id := range ids {
		if err := s.checkSide(side, id); err != nil {
			return err
		}
	}
	s.engine.UpdateLineup(side, ids)
	return nil
}

func (s *Surface) checkSide(side core.TeamSide, id string) error {
	got, ok := s.engine.Roster().SideOf(id)
	if !ok {
		return fmt.Errorf("%w: %q", roster.ErrUnknownPlayer, id)
	}
	if got != side {
		return fmt.Errorf("player %q is on the %s roster", id, got)
	}
	return nil
}
