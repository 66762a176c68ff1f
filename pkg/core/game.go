// pkg/core/game.go
package core

// LineupCap is the number of players a side fields at once.
const LineupCap = 7

// Score is the running tally per side.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// For returns the count for side.
func (s Score) For(side TeamSide) int {
	if side == Away {
		return s.Away
	}
	return s.Home
}

// Add returns a copy of s with one point added to side.
func (s Score) Add(side TeamSide) Score {
	if side == Away {
		s.Away++
	} else {
		s.Home++
	}
	return s
}

// Lineup is the set of active player ids per side. Order is not significant.
type Lineup struct {
	Home []string `json:"home"`
	Away []string `json:"away"`
}

// For returns the ids for side.
func (l Lineup) For(side TeamSide) []string {
	if side == Away {
		return l.Away
	}
	return l.Home
}

// With returns a copy of l where side's ids are replaced by ids.
func (l Lineup) With(side TeamSide, ids []string) Lineup {
	out := l.Clone()
	cp := append([]string(nil), ids...)
	if side == Away {
		out.Away = cp
	} else {
		out.Home = cp
	}
	return out
}

// Clone deep-copies l.
func (l Lineup) Clone() Lineup {
	return Lineup{
		Home: append([]string(nil), l.Home...),
		Away: append([]string(nil), l.Away...),
	}
}

// Contains reports whether id is active for side.
func (l Lineup) Contains(side TeamSide, id string) bool {
	for _, v := range l.For(side) {
		if v == id {
			return true
		}
	}
	return false
}

// GameState is the aggregate root of a match.
//
// CurrentPossession is empty before the game starts and HasDisc is empty when
// nobody holds the disc.
type GameState struct {
	Events            []GameEvent `json:"events"`
	Score             Score       `json:"score"`
	CurrentPossession TeamSide    `json:"currentPossession,omitempty"`
	HasDisc           string      `json:"hasDisc,omitempty"`
	IsGameActive      bool        `json:"isGameActive"`
	ActiveLineup      Lineup      `json:"activeLineup"`
}

// Clone deep-copies g so callers never alias the engine's log.
func (g GameState) Clone() GameState {
	out := g
	out.Events = append([]GameEvent(nil), g.Events...)
	out.ActiveLineup = g.ActiveLineup.Clone()
	return out
}

// LastEvent returns the most recent event, if any.
func (g GameState) LastEvent() (GameEvent, bool) {
	if len(g.Events) == 0 {
		return GameEvent{}, false
	}
	return g.Events[len(g.Events)-1], true
}

// PossessionOrHome is the side events are attributed to; home before start.
func (g GameState) PossessionOrHome() TeamSide {
	if g.CurrentPossession == "" {
		return Home
	}
	return g.CurrentPossession
}
