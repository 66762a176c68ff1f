package input

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ultitrack/recorder/internal/engine"
	"github.com/ultitrack/recorder/internal/geo"
	"github.com/ultitrack/recorder/internal/roster"
	"github.com/ultitrack/recorder/pkg/core"
)

func newSurface(t *testing.T) *Surface {
	t.Helper()
	reg, err := roster.New(roster.Default().Roster)
	require.NoError(t, err)
	return New(engine.New(reg, engine.Options{}), 0)
}

func started(t *testing.T) *Surface {
	t.Helper()
	s := newSurface(t)
	require.True(t, s.Engine().StartGame())
	return s
}

func ids(ps []core.Player) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestTap_IgnoredBeforeStart(t *testing.T) {
	s := newSurface(t)
	_, err := s.Tap(core.Coordinate{X: 50, Y: 50})
	assert.True(t, errors.Is(err, ErrGameInactive))
	assert.Nil(t, s.Pending())
	assert.False(t, s.Menu().Open)
}

func TestTap_OpensThrowerThenReceiver(t *testing.T) {
	s := started(t)

	m, err := s.Tap(core.Coordinate{X: 50, Y: 50})
	require.NoError(t, err)
	assert.Equal(t, Menu{Open: true, Role: engine.RoleThrower}, m)

	_, err = s.Select("h1")
	require.NoError(t, err)
	assert.False(t, s.Menu().Open)
	assert.Nil(t, s.Pending())

	m, err = s.Tap(core.Coordinate{X: 40, Y: 30})
	require.NoError(t, err)
	assert.Equal(t, engine.RoleReceiver, m.Role)
}

func TestTap_ClampsToField(t *testing.T) {
	s := started(t)
	_, err := s.Tap(core.Coordinate{X: -5, Y: 120})
	require.NoError(t, err)
	assert.Equal(t, &core.Coordinate{X: 0, Y: 100}, s.Pending())
}

func TestTap_RejectsNaN(t *testing.T) {
	s := started(t)
	_, err := s.Tap(core.Coordinate{X: 50, Y: 50})
	require.NoError(t, err)
	_, err = s.Select("h1")
	require.NoError(t, err)

	_, err = s.Tap(core.Coordinate{X: math.NaN(), Y: 40})
	assert.True(t, errors.Is(err, geo.ErrInvalidCoordinates))
	assert.Nil(t, s.Pending())
	assert.False(t, s.Menu().Open)
	assert.Len(t, s.Engine().Snapshot().Events, 1)
}

// a pickup then a pass into the endzone scores and hands the disc over
func TestSelect_PassIntoEndzoneScores(t *testing.T) {
	s := started(t)
	_, err := s.Tap(core.Coordinate{X: 50, Y: 50})
	require.NoError(t, err)
	ev, err := s.Select("h1")
	require.NoError(t, err)
	assert.Equal(t, core.EventPickup, ev.Type)

	_, err = s.Tap(core.Coordinate{X: 50, Y: 10})
	require.NoError(t, err)
	ev, err = s.Select("h2")
	require.NoError(t, err)
	assert.Equal(t, core.EventGoal, ev.Type)

	state := s.Engine().Snapshot()
	assert.Equal(t, core.Score{Home: 1}, state.Score)
	assert.Equal(t, core.Away, state.CurrentPossession)
	assert.Empty(t, state.HasDisc)
}

func TestSelect_NoMenu(t *testing.T) {
	s := started(t)
	_, err := s.Select("h1")
	assert.True(t, errors.Is(err, ErrNoSelection))
}

func TestSelect_NotSelectable(t *testing.T) {
	s := started(t)
	_, err := s.Tap(core.Coordinate{X: 50, Y: 50})
	require.NoError(t, err)

	_, err = s.Select("a1")
	assert.True(t, errors.Is(err, ErrNotSelectable), "away player while home has possession")

	_, err = s.Select("h9")
	assert.True(t, errors.Is(err, ErrNotSelectable), "bench player")

	_, err = s.Select("ghost")
	assert.True(t, errors.Is(err, roster.ErrUnknownPlayer))

	assert.True(t, s.Menu().Open, "failed selection keeps the menu open")
}

func TestSelect_HolderCannotReceive(t *testing.T) {
	s := started(t)
	_, _ = s.Tap(core.Coordinate{X: 50, Y: 50})
	_, err := s.Select("h1")
	require.NoError(t, err)

	_, _ = s.Tap(core.Coordinate{X: 50, Y: 40})
	_, err = s.Select("h1")
	assert.True(t, errors.Is(err, ErrNotSelectable))
}

func TestSelectablePlayers(t *testing.T) {
	s := started(t)
	assert.Equal(t, []string{"h1", "h2", "h3", "h4", "h5", "h6", "h7"}, ids(s.SelectablePlayers()))

	_, _ = s.Tap(core.Coordinate{X: 50, Y: 50})
	_, err := s.Select("h3")
	require.NoError(t, err)

	assert.Len(t, s.SelectablePlayers(), 7, "no receiver menu open yet")
	_, _ = s.Tap(core.Coordinate{X: 50, Y: 40})
	assert.Equal(t, []string{"h1", "h2", "h4", "h5", "h6", "h7"}, ids(s.SelectablePlayers()))
}

func TestSelectablePlayers_FollowPossession(t *testing.T) {
	s := started(t)
	_, err := s.Record(core.EventThrowaway, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7"}, ids(s.SelectablePlayers()))
}

// a throwaway with no tap reuses the last location and flips possession
func TestRecord_ThrowawayUsesLastLocation(t *testing.T) {
	s := started(t)
	_, _ = s.Tap(core.Coordinate{X: 50, Y: 50})
	_, _ = s.Select("h1")
	_, _ = s.Tap(core.Coordinate{X: 50, Y: 10})
	_, _ = s.Select("h2")

	ev, err := s.Record(core.EventThrowaway, "")
	require.NoError(t, err)
	assert.Equal(t, core.Coordinate{X: 50, Y: 10}, ev.Location)
	assert.Equal(t, core.Home, s.Engine().Snapshot().CurrentPossession)
}

func TestRecord_UsesPendingTap(t *testing.T) {
	s := started(t)
	_, _ = s.Tap(core.Coordinate{X: 20, Y: 30})

	ev, err := s.Record(core.EventDBlock, "a2")
	require.NoError(t, err)
	assert.Equal(t, core.Coordinate{X: 20, Y: 30}, ev.Location)
	assert.Equal(t, "a2", ev.ReceiverID)
	assert.False(t, s.Menu().Open)
}

func TestRecord_NeedsLocation(t *testing.T) {
	s := started(t)
	_, err := s.Record(core.EventPull, "")
	assert.True(t, errors.Is(err, ErrRejected))
}

func TestRecord_UnknownPlayer(t *testing.T) {
	s := started(t)
	_, err := s.Record(core.EventDrop, "nobody")
	assert.True(t, errors.Is(err, roster.ErrUnknownPlayer))
}

func TestUndo_ClearsPending(t *testing.T) {
	s := started(t)
	assert.False(t, s.Undo())

	_, _ = s.Tap(core.Coordinate{X: 50, Y: 50})
	_, _ = s.Select("h1")
	_, _ = s.Tap(core.Coordinate{X: 50, Y: 40})

	require.True(t, s.Undo())
	assert.Nil(t, s.Pending())
	assert.Empty(t, s.Engine().Snapshot().Events)
}

func TestReset(t *testing.T) {
	s := started(t)
	_, _ = s.Tap(core.Coordinate{X: 50, Y: 50})
	s.OpenLineup(core.Away)

	s.Reset()
	assert.Nil(t, s.Pending())
	assert.False(t, s.Menu().Open)
	assert.Equal(t, core.Home, s.LineupTab())
	assert.False(t, s.Engine().Snapshot().IsGameActive)
}

func TestLocations(t *testing.T) {
	s := started(t)
	assert.Nil(t, s.ThrowerLocation())
	assert.Nil(t, s.PreviewLocation())
	assert.Nil(t, s.LastKnownLocation())

	_, _ = s.Tap(core.Coordinate{X: 30, Y: 30})
	assert.Nil(t, s.PreviewLocation(), "thrower menu has no preview")
	assert.Equal(t, &core.Coordinate{X: 30, Y: 30}, s.LastKnownLocation())
	_, _ = s.Select("h1")

	assert.Equal(t, &core.Coordinate{X: 30, Y: 30}, s.ThrowerLocation())

	_, _ = s.Tap(core.Coordinate{X: 60, Y: 70})
	assert.Equal(t, &core.Coordinate{X: 60, Y: 70}, s.PreviewLocation())
	assert.Equal(t, &core.Coordinate{X: 30, Y: 30}, s.ThrowerLocation())

	s.Cancel()
	assert.Nil(t, s.PreviewLocation())
}

func TestToggleLineup(t *testing.T) {
	s := newSurface(t)

	active, err := s.ToggleLineup(core.Home, "h8")
	assert.True(t, errors.Is(err, ErrLineupFull))
	assert.False(t, active)

	active, err = s.ToggleLineup(core.Home, "h1")
	require.NoError(t, err)
	assert.False(t, active)
	assert.Len(t, s.Engine().Snapshot().ActiveLineup.Home, 6)

	active, err = s.ToggleLineup(core.Home, "h8")
	require.NoError(t, err)
	assert.True(t, active)
	assert.True(t, s.Engine().Snapshot().ActiveLineup.Contains(core.Home, "h8"))
}

func TestToggleLineup_WrongSide(t *testing.T) {
	s := newSurface(t)
	_, err := s.ToggleLineup(core.Home, "a1")
	assert.Error(t, err)

	_, err = s.ToggleLineup(core.Away, "zz")
	assert.True(t, errors.Is(err, roster.ErrUnknownPlayer))
}

func TestSetLineup(t *testing.T) {
	s := newSurface(t)

	require.NoError(t, s.SetLineup(core.Away, []string{"a10", "a11"}))
	assert.Equal(t, []string{"a10", "a11"}, s.Engine().Snapshot().ActiveLineup.Away)

	err := s.SetLineup(core.Away, []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8"})
	assert.True(t, errors.Is(err, ErrLineupFull))

	assert.Error(t, s.SetLineup(core.Away, []string{"h1"}))
}

func TestLineupTab(t *testing.T) {
	s := started(t)
	assert.Equal(t, core.Home, s.LineupTab())

	_, err := s.Record(core.EventThrowaway, "")
	require.NoError(t, err)
	assert.Equal(t, core.Away, s.LineupTab())

	s.OpenLineup(core.Home)
	assert.Equal(t, core.Home, s.LineupTab())
}

func TestLineupCap(t *testing.T) {
	assert.Equal(t, core.LineupCap, newSurface(t).LineupCap())

	reg, err := roster.New(roster.Default().Roster)
	require.NoError(t, err)
	assert.Equal(t, 5, New(engine.New(reg, engine.Options{}), 5).LineupCap())
}
