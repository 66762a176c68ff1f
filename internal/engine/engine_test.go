package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ultitrack/recorder/internal/geo"
	"github.com/ultitrack/recorder/internal/roster"
	"github.com/ultitrack/recorder/pkg/core"
)

var t0 = time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("ev-%d", n)
	}
}

func newTestEngine(t *testing.T, mode UndoMode) (*Engine, *MockClock) {
	t.Helper()
	reg, err := roster.New(roster.Default().Roster)
	require.NoError(t, err)
	clock := NewMockClock(t0)
	e := New(reg, Options{
		UndoMode: mode,
		Clock:    clock,
		NewID:    sequentialIDs(),
	})
	return e, clock
}

func player(t *testing.T, e *Engine, id string) *core.Player {
	t.Helper()
	p, ok := e.Roster().Get(id)
	require.True(t, ok, "player %s", id)
	return &p
}

func at(x, y float64) *core.Coordinate {
	return &core.Coordinate{X: x, Y: y}
}

func TestNew_DefaultLineups(t *testing.T) {
	e, _ := newTestEngine(t, UndoReplay)
	s := e.Snapshot()

	assert.False(t, s.IsGameActive)
	assert.Equal(t, core.TeamSide(""), s.CurrentPossession)
	assert.Empty(t, s.Events)
	assert.Equal(t, []string{"h1", "h2", "h3", "h4", "h5", "h6", "h7"}, s.ActiveLineup.Home)
	assert.Equal(t, []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"}, s.ActiveLineup.Away)
}

func TestStartGame(t *testing.T) {
	e, _ := newTestEngine(t, UndoReplay)

	assert.True(t, e.StartGame())
	s := e.Snapshot()
	assert.True(t, s.IsGameActive)
	assert.Equal(t, core.Home, s.CurrentPossession)
	assert.Empty(t, s.Events)

	assert.False(t, e.StartGame(), "second start is a no-op")
}

func TestStartGame_ConfiguredSide(t *testing.T) {
	reg, err := roster.New(roster.Default().Roster)
	require.NoError(t, err)
	e := New(reg, Options{StartingSide: core.Away})

	require.True(t, e.StartGame())
	assert.Equal(t, core.Away, e.Snapshot().CurrentPossession)
}

func TestRecordEvent_Transitions(t *testing.T) {
	tests := []struct {
		name      string
		eventType core.EventType
		player    string
		check     func(t *testing.T, before, after core.GameState)
	}{
		{
			name:      "pickup sets holder",
			eventType: core.EventPickup,
			player:    "h3",
			check: func(t *testing.T, before, after core.GameState) {
				assert.Equal(t, "h3", after.HasDisc)
				assert.Equal(t, before.CurrentPossession, after.CurrentPossession)
				assert.Equal(t, before.Score, after.Score)
			},
		},
		{
			name:      "catch moves holder",
			eventType: core.EventCatch,
			player:    "h2",
			check: func(t *testing.T, before, after core.GameState) {
				assert.Equal(t, "h2", after.HasDisc)
				assert.Equal(t, before.CurrentPossession, after.CurrentPossession)
			},
		},
		{
			name:      "goal scores for possession and flips",
			eventType: core.EventGoal,
			player:    "h2",
			check: func(t *testing.T, before, after core.GameState) {
				assert.Equal(t, core.Score{Home: 1}, after.Score)
				assert.Empty(t, after.HasDisc)
				assert.Equal(t, core.Away, after.CurrentPossession)
			},
		},
		{
			name:      "drop turns over",
			eventType: core.EventDrop,
			check: func(t *testing.T, before, after core.GameState) {
				assert.Empty(t, after.HasDisc)
				assert.Equal(t, core.Away, after.CurrentPossession)
				assert.Equal(t, before.Score, after.Score)
			},
		},
		{
			name:      "throwaway turns over",
			eventType: core.EventThrowaway,
			check: func(t *testing.T, before, after core.GameState) {
				assert.Empty(t, after.HasDisc)
				assert.Equal(t, core.Away, after.CurrentPossession)
			},
		},
		{
			name:      "d-block turns over",
			eventType: core.EventDBlock,
			player:    "a4",
			check: func(t *testing.T, before, after core.GameState) {
				assert.Empty(t, after.HasDisc)
				assert.Equal(t, core.Away, after.CurrentPossession)
			},
		},
		{
			name:      "pull changes nothing",
			eventType: core.EventPull,
			player:    "h1",
			check: func(t *testing.T, before, after core.GameState) {
				assert.Equal(t, before.HasDisc, after.HasDisc)
				assert.Equal(t, before.CurrentPossession, after.CurrentPossession)
				assert.Equal(t, before.Score, after.Score)
			},
		},
	}
	for _, unhandled := range []core.EventType{core.EventCallahan, core.EventTurnover, core.EventEndOfQuarter} {
		tests = append(tests, struct {
			name      string
			eventType core.EventType
			player    string
			check     func(t *testing.T, before, after core.GameState)
		}{
			name:      string(unhandled) + " is logged only",
			eventType: unhandled,
			check: func(t *testing.T, before, after core.GameState) {
				assert.Equal(t, before.HasDisc, after.HasDisc)
				assert.Equal(t, before.CurrentPossession, after.CurrentPossession)
				assert.Equal(t, before.Score, after.Score)
				assert.Len(t, after.Events, len(before.Events)+1)
			},
		})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t, UndoReplay)
			e.StartGame()
			_, ok := e.RecordEvent(core.EventPickup, player(t, e, "h1"), at(40, 40))
			require.True(t, ok)

			before := e.Snapshot()
			var p *core.Player
			if tt.player != "" {
				p = player(t, e, tt.player)
			}
			_, ok = e.RecordEvent(tt.eventType, p, at(45, 60))
			require.True(t, ok)
			tt.check(t, before, e.Snapshot())
		})
	}
}

func TestRecordEvent_PickupWithoutPlayerClearsHolder(t *testing.T) {
	e, _ := newTestEngine(t, UndoReplay)
	e.StartGame()
	e.RecordEvent(core.EventPickup, player(t, e, "h1"), at(50, 50))

	_, ok := e.RecordEvent(core.EventCatch, nil, at(50, 60))
	require.True(t, ok)
	assert.Empty(t, e.Snapshot().HasDisc)
}

func TestRecordEvent_EventFields(t *testing.T) {
	e, clock := newTestEngine(t, UndoReplay)
	e.StartGame()
	e.RecordEvent(core.EventPickup, player(t, e, "h1"), at(30, 30))
	clock.Advance(4 * time.Second)

	ev, ok := e.RecordEvent(core.EventCatch, player(t, e, "h2"), at(35, 55))
	require.True(t, ok)

	assert.Equal(t, "ev-2", ev.ID)
	assert.Equal(t, core.EventCatch, ev.Type)
	assert.Equal(t, "h1", ev.ThrowerID)
	assert.Equal(t, "h2", ev.ReceiverID)
	assert.Equal(t, core.Coordinate{X: 35, Y: 55}, ev.Location)
	assert.Equal(t, t0.Add(4*time.Second), ev.Timestamp)
	assert.Equal(t, core.Home, ev.PossessionSide)
}

func TestRecordEvent_DefaultsToUUID(t *testing.T) {
	reg, err := roster.New(roster.Default().Roster)
	require.NoError(t, err)
	e := New(reg, Options{})

	a, _ := e.RecordEvent(core.EventPull, nil, at(50, 90))
	b, _ := e.RecordEvent(core.EventPull, nil, at(50, 90))
	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestRecordEvent_BeforeStartAttributesHome(t *testing.T) {
	e, _ := newTestEngine(t, UndoReplay)

	ev, ok := e.RecordEvent(core.EventGoal, player(t, e, "h1"), at(50, 5))
	require.True(t, ok)
	assert.Equal(t, core.Home, ev.PossessionSide)

	s := e.Snapshot()
	assert.Equal(t, core.Score{Home: 1}, s.Score)
	assert.Equal(t, core.Away, s.CurrentPossession)
}

func TestRecordEvent_RejectsMissingLocation(t *testing.T) {
	for _, typ := range []core.EventType{core.EventPickup, core.EventCatch, core.EventGoal, core.EventPull, core.EventDBlock} {
		t.Run(string(typ), func(t *testing.T) {
			e, _ := newTestEngine(t, UndoReplay)
			e.StartGame()
			before := e.Snapshot()

			_, ok := e.RecordEvent(typ, player(t, e, "h1"), nil)
			assert.False(t, ok)
			assert.Equal(t, before, e.Snapshot())
		})
	}
}

// DROP and THROWAWAY without a tap land where the previous event did
func TestRecordEvent_LocationFallback(t *testing.T) {
	e, _ := newTestEngine(t, UndoReplay)
	e.StartGame()

	ev, ok := e.RecordEvent(core.EventThrowaway, nil, nil)
	require.True(t, ok)
	assert.Equal(t, core.FieldCenter, ev.Location, "empty log falls back to centre")

	e.RecordEvent(core.EventPickup, player(t, e, "a1"), at(20, 70))
	ev, ok = e.RecordEvent(core.EventDrop, nil, nil)
	require.True(t, ok)
	assert.Equal(t, core.Coordinate{X: 20, Y: 70}, ev.Location)
}

func TestSelectTarget(t *testing.T) {
	tests := []struct {
		name string
		role Role
		y    float64
		want core.EventType
	}{
		{"thrower is pickup", RoleThrower, 10, core.EventPickup},
		{"receiver midfield is catch", RoleReceiver, 50, core.EventCatch},
		{"receiver lower endzone is goal", RoleReceiver, 10, core.EventGoal},
		{"receiver upper endzone is goal", RoleReceiver, 90, core.EventGoal},
		{"receiver on lower line is catch", RoleReceiver, 18, core.EventCatch},
		{"receiver on upper line is catch", RoleReceiver, 82, core.EventCatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t, UndoReplay)
			e.StartGame()
			ev, ok := e.SelectTarget(tt.role, player(t, e, "h2"), at(50, tt.y))
			require.True(t, ok)
			assert.Equal(t, tt.want, ev.Type)
		})
	}
}

func TestSelectTarget_UsesConfiguredField(t *testing.T) {
	reg, err := roster.New(roster.Default().Roster)
	require.NoError(t, err)
	e := New(reg, Options{Field: geo.Field{Width: 20, Length: 64, EndzoneDepth: 20}})

	ev, ok := e.SelectTarget(RoleReceiver, nil, at(50, 30))
	require.True(t, ok)
	assert.Equal(t, core.EventGoal, ev.Type)
}

func TestSelectTarget_RejectsWithoutTap(t *testing.T) {
	e, _ := newTestEngine(t, UndoReplay)
	e.StartGame()

	_, ok := e.SelectTarget(RoleReceiver, player(t, e, "h2"), nil)
	assert.False(t, ok)
	_, ok = e.SelectTarget(RoleThrower, player(t, e, "h2"), nil)
	assert.False(t, ok)
	_, ok = e.SelectTarget(Role("BYSTANDER"), player(t, e, "h2"), at(1, 1))
	assert.False(t, ok)
	assert.Empty(t, e.Snapshot().Events)
}

func TestUndoLast_Empty(t *testing.T) {
	for _, mode := range []UndoMode{UndoReplay, UndoLegacy} {
		e, _ := newTestEngine(t, mode)
		assert.False(t, e.UndoLast())
	}
}

// undoing a goal in replay mode takes the point back and returns possession
func TestUndoLast_ReplayRevertsGoal(t *testing.T) {
	e, _ := newTestEngine(t, UndoReplay)
	e.StartGame()
	e.RecordEvent(core.EventPickup, player(t, e, "h1"), at(50, 40))
	e.RecordEvent(core.EventCatch, player(t, e, "h2"), at(50, 25))
	before := e.Snapshot()
	e.RecordEvent(core.EventGoal, player(t, e, "h3"), at(50, 10))

	require.True(t, e.UndoLast())
	after := e.Snapshot()
	assert.Equal(t, core.Score{}, after.Score)
	assert.Equal(t, core.Home, after.CurrentPossession)
	assert.Equal(t, "h2", after.HasDisc)
	assert.Equal(t, before.Events, after.Events)
}

func TestUndoLast_ReplayKeepsLineupAndActive(t *testing.T) {
	e, _ := newTestEngine(t, UndoReplay)
	e.StartGame()
	e.UpdateLineup(core.Home, []string{"h10", "h11"})
	e.RecordEvent(core.EventPull, nil, at(50, 90))

	require.True(t, e.UndoLast())
	s := e.Snapshot()
	assert.True(t, s.IsGameActive)
	assert.Equal(t, []string{"h10", "h11"}, s.ActiveLineup.Home)
}

func TestUndoLast_ReplayBeforeStartLeavesPossessionUnset(t *testing.T) {
	e, _ := newTestEngine(t, UndoReplay)
	e.RecordEvent(core.EventPull, nil, at(50, 90))
	e.RecordEvent(core.EventPickup, player(t, e, "h1"), at(50, 50))

	require.True(t, e.UndoLast())
	s := e.Snapshot()
	assert.False(t, s.IsGameActive)
	assert.Equal(t, core.TeamSide(""), s.CurrentPossession)
}

func TestUndoLast_ReplayKeepsStartAfterEarlyEvent(t *testing.T) {
	e, _ := newTestEngine(t, UndoReplay)
	_, ok := e.RecordEvent(core.EventDrop, nil, nil)
	require.True(t, ok)
	require.True(t, e.StartGame())
	before := e.Snapshot()
	require.Equal(t, core.Home, before.CurrentPossession)

	e.RecordEvent(core.EventPickup, player(t, e, "h1"), at(50, 50))
	require.True(t, e.UndoLast())

	after := e.Snapshot()
	assert.Equal(t, before.CurrentPossession, after.CurrentPossession)
	assert.Equal(t, before.HasDisc, after.HasDisc)
	assert.Equal(t, before.Events, after.Events)
}

func TestUndoLast_ReplayUndoingEarlyEventKeepsStart(t *testing.T) {
	e, _ := newTestEngine(t, UndoReplay)
	e.RecordEvent(core.EventThrowaway, nil, nil)
	require.True(t, e.StartGame())

	require.True(t, e.UndoLast())
	s := e.Snapshot()
	assert.Empty(t, s.Events)
	assert.Equal(t, core.Home, s.CurrentPossession)

	// the start now sits at the head of the log
	e.RecordEvent(core.EventDrop, nil, nil)
	require.True(t, e.UndoLast())
	assert.Equal(t, core.Home, e.Snapshot().CurrentPossession)
}

func TestUndoLast_ReplayAfterNewGameForgetsStart(t *testing.T) {
	e, _ := newTestEngine(t, UndoReplay)
	e.StartGame()
	e.NewGame()
	e.RecordEvent(core.EventPull, nil, at(50, 90))
	e.RecordEvent(core.EventPickup, player(t, e, "h1"), at(50, 50))

	require.True(t, e.UndoLast())
	assert.Equal(t, core.TeamSide(""), e.Snapshot().CurrentPossession)
}

func TestUndoLast_LegacyOnlyRecomputesHolder(t *testing.T) {
	e, _ := newTestEngine(t, UndoLegacy)
	e.StartGame()
	e.RecordEvent(core.EventPickup, player(t, e, "h1"), at(50, 40))
	e.RecordEvent(core.EventCatch, player(t, e, "h2"), at(50, 25))
	e.RecordEvent(core.EventGoal, player(t, e, "h3"), at(50, 10))

	require.True(t, e.UndoLast())
	s := e.Snapshot()
	assert.Len(t, s.Events, 2)
	assert.Equal(t, "h2", s.HasDisc)
	assert.Equal(t, core.Score{Home: 1}, s.Score, "legacy undo leaves score")
	assert.Equal(t, core.Away, s.CurrentPossession, "legacy undo leaves possession")
}

func TestUndoLast_LegacyClearsHolderAfterNonHoldingEvent(t *testing.T) {
	e, _ := newTestEngine(t, UndoLegacy)
	e.StartGame()
	e.RecordEvent(core.EventPickup, player(t, e, "h1"), at(50, 40))
	e.RecordEvent(core.EventPull, nil, at(50, 90))
	e.RecordEvent(core.EventCatch, player(t, e, "h2"), at(50, 60))

	require.True(t, e.UndoLast())
	assert.Empty(t, e.Snapshot().HasDisc)
}

// undo restores the holder the removed event replaced
func TestUndoLast_RestoresHolder(t *testing.T) {
	steps := []struct {
		typ    core.EventType
		player string
		tap    *core.Coordinate
	}{
		{core.EventPickup, "h1", at(50, 50)},
		{core.EventCatch, "h2", at(40, 40)},
		{core.EventDrop, "", nil},
		{core.EventPickup, "a1", at(40, 40)},
		{core.EventCatch, "a2", at(45, 70)},
		{core.EventGoal, "a3", at(50, 90)},
		{core.EventDBlock, "h4", at(50, 50)},
		{core.EventThrowaway, "", nil},
	}
	for _, mode := range []UndoMode{UndoReplay, UndoLegacy} {
		t.Run(string(mode), func(t *testing.T) {
			e, _ := newTestEngine(t, mode)
			e.StartGame()
			for i, st := range steps {
				before := e.Snapshot()
				var p *core.Player
				if st.player != "" {
					p = player(t, e, st.player)
				}
				_, ok := e.RecordEvent(st.typ, p, st.tap)
				require.True(t, ok)

				require.True(t, e.UndoLast())
				after := e.Snapshot()
				assert.Len(t, after.Events, len(before.Events), "step %d", i)
				assert.Equal(t, before.HasDisc, after.HasDisc, "step %d", i)

				_, ok = e.RecordEvent(st.typ, p, st.tap)
				require.True(t, ok)
			}
		})
	}
}

// score only moves on GOAL and the holder follows pickups and catches
func TestRecordEvent_Properties(t *testing.T) {
	e, clock := newTestEngine(t, UndoReplay)
	e.StartGame()

	types := core.AllEventTypes
	ids := []string{"h1", "h2", "a1", "a2", ""}
	var log []core.GameEvent
	for i := 0; i < 200; i++ {
		typ := types[(i*7)%len(types)]
		id := ids[(i*3)%len(ids)]
		var p *core.Player
		if id != "" {
			p = player(t, e, id)
		}
		var tap *core.Coordinate
		if i%4 != 0 {
			tap = at(float64(i%100), float64((i*13)%100))
		}

		before := e.Snapshot()
		ev, ok := e.RecordEvent(typ, p, tap)
		after := e.Snapshot()
		clock.Advance(time.Second)

		assert.GreaterOrEqual(t, after.Score.Home, before.Score.Home)
		assert.GreaterOrEqual(t, after.Score.Away, before.Score.Away)

		if !ok {
			assert.Equal(t, before, after)
			continue
		}
		log = append(log, ev)
		require.Equal(t, log, after.Events)

		switch typ {
		case core.EventGoal, core.EventDrop, core.EventThrowaway, core.EventDBlock:
			assert.NotEqual(t, before.CurrentPossession, after.CurrentPossession)
			assert.Empty(t, after.HasDisc)
		case core.EventPickup, core.EventCatch:
			assert.Equal(t, before.CurrentPossession, after.CurrentPossession)
			if p != nil {
				assert.Equal(t, p.ID, after.HasDisc)
			}
		case core.EventPull:
			assert.Equal(t, before.CurrentPossession, after.CurrentPossession)
		}
	}
	assert.NotEmpty(t, log)
}

// folding the log from scratch gives the same state as recording it live
func TestReplay_MatchesIncrementalRecording(t *testing.T) {
	e, clock := newTestEngine(t, UndoReplay)
	e.StartGame()
	e.RecordEvent(core.EventPull, nil, at(50, 95))
	e.RecordEvent(core.EventPickup, player(t, e, "a1"), at(50, 20))
	clock.Advance(3 * time.Second)
	e.RecordEvent(core.EventCatch, player(t, e, "a2"), at(30, 45))
	e.RecordEvent(core.EventDBlock, player(t, e, "h5"), at(30, 60))
	e.RecordEvent(core.EventPickup, player(t, e, "h5"), at(30, 60))
	e.RecordEvent(core.EventGoal, player(t, e, "h6"), at(40, 90))
	e.RecordEvent(core.EventEndOfQuarter, nil, at(50, 50))

	s := e.Snapshot()
	replayed := Replay(core.Home, s.Events)
	replayed.ActiveLineup = s.ActiveLineup
	assert.Equal(t, s, replayed)
}

func TestReplay_Empty(t *testing.T) {
	s := Replay(core.Away, nil)
	assert.Empty(t, s.Events)
	assert.Equal(t, core.Away, s.CurrentPossession)
	assert.True(t, s.IsGameActive)
}

// the engine stores oversize lineups; the cap lives in the input surface
func TestUpdateLineup_StoresAnySet(t *testing.T) {
	e, _ := newTestEngine(t, UndoReplay)
	eight := []string{"h1", "h2", "h3", "h4", "h5", "h6", "h7", "h8"}

	e.UpdateLineup(core.Home, eight[:7])
	assert.Len(t, e.Snapshot().ActiveLineup.Home, 7)

	e.UpdateLineup(core.Home, eight)
	s := e.Snapshot()
	assert.Equal(t, eight, s.ActiveLineup.Home)
	assert.Empty(t, s.Events)

	eight[0] = "mutated"
	assert.Equal(t, "h1", e.Snapshot().ActiveLineup.Home[0], "engine keeps its own copy")
}

func TestNewGame_Resets(t *testing.T) {
	e, _ := newTestEngine(t, UndoReplay)
	e.StartGame()
	e.UpdateLineup(core.Away, []string{"a9"})
	e.RecordEvent(core.EventGoal, player(t, e, "h1"), at(50, 5))

	e.NewGame()
	s := e.Snapshot()
	assert.False(t, s.IsGameActive)
	assert.Empty(t, s.Events)
	assert.Equal(t, core.Score{}, s.Score)
	assert.Equal(t, core.TeamSide(""), s.CurrentPossession)
	assert.Len(t, s.ActiveLineup.Away, 7)
	assert.True(t, e.StartGame())
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	e, _ := newTestEngine(t, UndoReplay)
	e.RecordEvent(core.EventPickup, player(t, e, "h1"), at(10, 10))

	s := e.Snapshot()
	s.Events[0].ReceiverID = "tampered"
	s.ActiveLineup.Home[0] = "tampered"

	fresh := e.Snapshot()
	assert.Equal(t, "h1", fresh.Events[0].ReceiverID)
	assert.Equal(t, "h1", fresh.ActiveLineup.Home[0])
}

func TestLastKnownLocation(t *testing.T) {
	e, _ := newTestEngine(t, UndoReplay)
	assert.Nil(t, e.LastKnownLocation(nil))

	e.RecordEvent(core.EventPickup, player(t, e, "h1"), at(10, 20))
	assert.Equal(t, at(10, 20), e.LastKnownLocation(nil))
	assert.Equal(t, at(70, 80), e.LastKnownLocation(at(70, 80)))
}

func TestCurrentHolder(t *testing.T) {
	e, _ := newTestEngine(t, UndoReplay)
	_, ok := e.CurrentHolder()
	assert.False(t, ok)

	e.RecordEvent(core.EventPickup, player(t, e, "a5"), at(10, 20))
	p, ok := e.CurrentHolder()
	require.True(t, ok)
	assert.Equal(t, "Avery", p.Name)
}

func TestParseUndoMode(t *testing.T) {
	m, err := ParseUndoMode("")
	require.NoError(t, err)
	assert.Equal(t, UndoReplay, m)

	m, err = ParseUndoMode(" Legacy ")
	require.NoError(t, err)
	assert.Equal(t, UndoLegacy, m)

	_, err = ParseUndoMode("rewind")
	assert.Error(t, err)
}
