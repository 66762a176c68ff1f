package stats

import (
	"github.com/ultitrack/recorder/internal/geo"
	"github.com/ultitrack/recorder/pkg/core"
)

// Possession is one uninterrupted spell of a side holding the disc, from its
// first pickup or catch to the goal or turnover that ended it.
type Possession struct {
	Side    core.TeamSide     `json:"side"`
	Passes  int               `json:"passes"`
	Meters  float64           `json:"meters"` // length of the disc's path
	Outcome core.EventType    `json:"outcome,omitempty"`
	Path    []core.Coordinate `json:"path"`
}

// Possessions splits the log into possessions. An unfinished possession at
// the end of the log has an empty Outcome.
func Possessions(f geo.Field, events []core.GameEvent) []Possession {
	var out []Possession
	var cur *Possession

	flush := func(outcome core.EventType) {
		if cur == nil {
			return
		}
		cur.Outcome = outcome
		cur.Meters = round1(f.TrailLength(cur.Path))
		out = append(out, *cur)
		cur = nil
	}

	for _, e := range events {
		switch e.Type {
		case core.EventPickup, core.EventCatch:
			if cur == nil || cur.Side != e.PossessionSide {
				flush("")
				cur = &Possession{Side: e.PossessionSide}
			}
			if e.Type == core.EventCatch {
				cur.Passes++
			}
			cur.Path = append(cur.Path, e.Location)
		case core.EventGoal, core.EventDrop, core.EventThrowaway, core.EventDBlock:
			if cur == nil {
				cur = &Possession{Side: e.PossessionSide}
			}
			if e.Type == core.EventGoal {
				cur.Passes++
			}
			cur.Path = append(cur.Path, e.Location)
			flush(e.Type)
		}
	}
	flush("")
	return out
}
