package stats

import (
	"github.com/ultitrack/recorder/internal/geo"
	"github.com/ultitrack/recorder/internal/roster"
	"github.com/ultitrack/recorder/pkg/core"
)

// Throw describes the pass that ended in an event, measured from the catch
// before it.
type Throw struct {
	DistanceM float64 `json:"distanceM"`
	HoldS     float64 `json:"holdS"`
	GainM     float64 `json:"gainM"`
}

// Entry is one line of the match log.
type Entry struct {
	Index    int            `json:"index"` // position in the event log
	Event    core.GameEvent `json:"event"`
	Label    string         `json:"label"`
	Thrower  string         `json:"thrower,omitempty"`
	Receiver string         `json:"receiver,omitempty"`
	Throw    *Throw         `json:"throw,omitempty"`
}

// MatchLog renders events newest first. Throw stats are attached when the
// previous event was a catch and this one continues the flow of play.
func MatchLog(f geo.Field, reg *roster.Registry, events []core.GameEvent) []Entry {
	out := make([]Entry, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		e := events[i]
		entry := Entry{
			Index:    i,
			Event:    e,
			Label:    e.Type.Label(),
			Thrower:  reg.Name(e.ThrowerID),
			Receiver: reg.Name(e.ReceiverID),
		}
		if i > 0 && continuesFlow(events[i-1], e) {
			entry.Throw = measure(f, events[i-1], e)
		}
		out = append(out, entry)
	}
	return out
}

func continuesFlow(prev, cur core.GameEvent) bool {
	return prev.Type == core.EventCatch && cur.Type != core.EventPull && cur.Type != core.EventPickup
}

func measure(f geo.Field, prev, cur core.GameEvent) *Throw {
	return &Throw{
		DistanceM: round1(f.Distance(prev.Location, cur.Location)),
		HoldS:     round1(cur.Timestamp.Sub(prev.Timestamp).Seconds()),
		GainM:     round1(f.Gain(prev.Location, cur.Location)),
	}
}
