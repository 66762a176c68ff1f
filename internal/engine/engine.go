package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/ultitrack/recorder/internal/geo"
	"github.com/ultitrack/recorder/internal/roster"
	"github.com/ultitrack/recorder/pkg/core"
)

// UndoMode picks how UndoLast rebuilds derived state.
type UndoMode string

const (
	// UndoReplay replays the truncated log from a started game.
	UndoReplay UndoMode = "replay"
	// UndoLegacy only recomputes the holder from the new last event.
	UndoLegacy UndoMode = "legacy"
)

// ParseUndoMode accepts "replay" or "legacy"; empty means replay.
func ParseUndoMode(s string) (UndoMode, error) {
	switch UndoMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", UndoReplay:
		return UndoReplay, nil
	case UndoLegacy:
		return UndoLegacy, nil
	}
	return "", fmt.Errorf("unknown undo mode %q", s)
}

// Role is the context a player selection was opened in.
type Role string

const (
	RoleThrower  Role = "THROWER"
	RoleReceiver Role = "RECEIVER"
)

// Options configure an Engine. Zero values fall back to the WFDF field,
// home starting possession, replay undo, seven-player lineups, the system
// clock and random UUIDs.
type Options struct {
	Field        geo.Field
	StartingSide core.TeamSide
	UndoMode     UndoMode
	LineupSize   int
	Clock        Clock
	NewID        func() string
	Logger       *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Field.Length <= 0 {
		o.Field = geo.WFDF
	}
	if !o.StartingSide.Valid() {
		o.StartingSide = core.Home
	}
	if o.UndoMode == "" {
		o.UndoMode = UndoReplay
	}
	if o.LineupSize <= 0 {
		o.LineupSize = core.LineupCap
	}
	if o.Clock == nil {
		o.Clock = RealClock{}
	}
	if o.NewID == nil {
		o.NewID = func() string { return uuid.New().String() }
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// Engine owns the authoritative GameState of one match. It is not safe for
// concurrent use; a single dispatcher goroutine drives it.
type Engine struct {
	opts    Options
	players *roster.Registry
	state   core.GameState

	// startedAt is the log length when StartGame ran, -1 before that.
	startedAt int
}

// New creates an engine in the pre-game state with default lineups.
func New(players *roster.Registry, opts Options) *Engine {
	e := &Engine{
		opts:    opts.withDefaults(),
		players: players,
	}
	e.state = e.initialState()
	e.startedAt = -1
	return e
}

func (e *Engine) initialState() core.GameState {
	return core.GameState{
		Events:       []core.GameEvent{},
		ActiveLineup: e.players.DefaultLineup(e.opts.LineupSize),
	}
}

// Field returns the geometry used for endzone checks.
func (e *Engine) Field() geo.Field {
	return e.opts.Field
}

// Roster returns the player registry the engine resolves ids against.
func (e *Engine) Roster() *roster.Registry {
	return e.players
}

// StartGame activates the match and gives possession to the starting side.
// It produces no event and returns false if the game is already active.
func (e *Engine) StartGame() bool {
	if e.state.IsGameActive {
		return false
	}
	e.state.IsGameActive = true
	e.state.CurrentPossession = e.opts.StartingSide
	e.startedAt = len(e.state.Events)
	e.opts.Logger.Info("game started", "possession", string(e.state.CurrentPossession))
	return true
}

// RecordEvent appends an event and derives the next state. It refuses
// (false, state unchanged) when tap is nil and the type needs a location.
func (e *Engine) RecordEvent(t core.EventType, player *core.Player, tap *core.Coordinate) (core.GameEvent, bool) {
	if tap == nil && t.NeedsLocation() {
		e.opts.Logger.Debug("event rejected, no location", "type", string(t))
		return core.GameEvent{}, false
	}

	loc := core.FieldCenter
	if tap != nil {
		loc = *tap
	} else if last, ok := e.state.LastEvent(); ok {
		loc = last.Location
	}

	ev := core.GameEvent{
		ID:             e.opts.NewID(),
		Type:           t,
		ThrowerID:      e.state.HasDisc,
		Location:       loc,
		Timestamp:      e.opts.Clock.Now(),
		PossessionSide: e.state.PossessionOrHome(),
	}
	if player != nil {
		ev.ReceiverID = player.ID
	}

	e.state = apply(e.state, ev)

	e.opts.Logger.Info("event recorded",
		"type", string(ev.Type),
		"side", string(ev.PossessionSide),
		"thrower", ev.ThrowerID,
		"receiver", ev.ReceiverID,
		"x", ev.Location.X,
		"y", ev.Location.Y,
	)
	return ev, true
}

// SelectTarget resolves a player selection. A thrower selection is a
// PICKUP; a receiver selection is a GOAL inside an endzone, else a CATCH.
func (e *Engine) SelectTarget(role Role, player *core.Player, tap *core.Coordinate) (core.GameEvent, bool) {
	switch role {
	case RoleThrower:
		return e.RecordEvent(core.EventPickup, player, tap)
	case RoleReceiver:
		if tap == nil {
			return core.GameEvent{}, false
		}
		if e.opts.Field.InEndzone(*tap) {
			return e.RecordEvent(core.EventGoal, player, tap)
		}
		return e.RecordEvent(core.EventCatch, player, tap)
	}
	return core.GameEvent{}, false
}

// UndoLast removes the most recent event. It returns false on an empty log.
func (e *Engine) UndoLast() bool {
	n := len(e.state.Events)
	if n == 0 {
		return false
	}
	removed := e.state.Events[n-1]
	remaining := e.state.Events[:n-1]

	switch e.opts.UndoMode {
	case UndoLegacy:
		next := e.state
		next.Events = append([]core.GameEvent(nil), remaining...)
		next.HasDisc = ""
		if last, ok := next.LastEvent(); ok && (last.Type == core.EventCatch || last.Type == core.EventPickup) {
			next.HasDisc = last.ReceiverID
		}
		e.state = next
	default:
		if e.startedAt > len(remaining) {
			e.startedAt = len(remaining)
		}
		next := replay(e.opts.StartingSide, e.startedAt, remaining)
		next.ActiveLineup = e.state.ActiveLineup
		next.IsGameActive = e.state.IsGameActive
		e.state = next
	}

	e.opts.Logger.Info("event undone", "type", string(removed.Type), "id", removed.ID, "mode", string(e.opts.UndoMode))
	return true
}

// UpdateLineup replaces side's active lineup. The cap is not enforced here.
func (e *Engine) UpdateLineup(side core.TeamSide, ids []string) {
	e.state.ActiveLineup = e.state.ActiveLineup.With(side, ids)
	e.opts.Logger.Debug("lineup updated", "side", string(side), "count", len(ids))
}

// NewGame discards everything and returns to the pre-game state.
func (e *Engine) NewGame() {
	e.state = e.initialState()
	e.startedAt = -1
	e.opts.Logger.Info("new game")
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() core.GameState {
	return e.state.Clone()
}

// LastKnownLocation is pending when set, else the last event's location.
func (e *Engine) LastKnownLocation(pending *core.Coordinate) *core.Coordinate {
	if pending != nil {
		c := *pending
		return &c
	}
	if last, ok := e.state.LastEvent(); ok {
		c := last.Location
		return &c
	}
	return nil
}

// CurrentHolder looks up the player holding the disc.
func (e *Engine) CurrentHolder() (core.Player, bool) {
	if e.state.HasDisc == "" {
		return core.Player{}, false
	}
	return e.players.Get(e.state.HasDisc)
}
