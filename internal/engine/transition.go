package engine

import "github.com/ultitrack/recorder/pkg/core"

// apply folds one event into s and returns the next state. The event is
// appended as given; only holder, possession and score are derived.
func apply(s core.GameState, e core.GameEvent) core.GameState {
	next := s
	next.Events = append(append(make([]core.GameEvent, 0, len(s.Events)+1), s.Events...), e)

	switch e.Type {
	case core.EventPickup, core.EventCatch:
		next.HasDisc = e.ReceiverID
	case core.EventGoal:
		next.Score = s.Score.Add(e.PossessionSide)
		next.HasDisc = ""
		next.CurrentPossession = s.PossessionOrHome().Other()
	case core.EventDrop, core.EventThrowaway, core.EventDBlock:
		next.HasDisc = ""
		next.CurrentPossession = s.PossessionOrHome().Other()
	case core.EventPull:
	default:
		// CALLAHAN, TURNOVER and END_OF_QUARTER are logged without
		// changing holder, possession or score.
	}
	return next
}

// Replay folds events over the state a freshly started game would have,
// possession going to startingSide (empty leaves it unset). Lineups and the
// active flag are not derived from the log; callers copy them over.
func Replay(startingSide core.TeamSide, events []core.GameEvent) core.GameState {
	return replay(startingSide, 0, events)
}

// replay folds events from an empty state and hands possession to
// startingSide just before events[startedAt]. A startedAt equal to
// len(events) starts the game after the last event; a negative one never
// starts it.
func replay(startingSide core.TeamSide, startedAt int, events []core.GameEvent) core.GameState {
	s := core.GameState{
		Events:       make([]core.GameEvent, 0, len(events)),
		IsGameActive: true,
	}
	for i, e := range events {
		if i == startedAt {
			s.CurrentPossession = startingSide
		}
		s = apply(s, e)
	}
	if startedAt >= len(events) {
		s.CurrentPossession = startingSide
	}
	return s
}
