package stats

import (
	"github.com/ultitrack/recorder/internal/roster"
	"github.com/ultitrack/recorder/pkg/core"
)

// PlayerLine is one player's counting stats.
type PlayerLine struct {
	Player     core.Player   `json:"player"`
	Side       core.TeamSide `json:"side"`
	Pickups    int           `json:"pickups"`
	Catches    int           `json:"catches"`
	Goals      int           `json:"goals"`
	Assists    int           `json:"assists"`
	Drops      int           `json:"drops"`
	Throwaways int           `json:"throwaways"`
	Blocks     int           `json:"blocks"`
}

func (l PlayerLine) empty() bool {
	return l.Pickups+l.Catches+l.Goals+l.Assists+l.Drops+l.Throwaways+l.Blocks == 0
}

// PlayerLines attributes events to players: the selected player for
// catches, goals, pickups, drops and blocks, the holder for throwaways and
// assists. Players without any stat are omitted; order is home roster then
// away roster.
func PlayerLines(reg *roster.Registry, events []core.GameEvent) []PlayerLine {
	lines := make(map[string]*PlayerLine)
	line := func(id string) *PlayerLine {
		if id == "" {
			return nil
		}
		if l, ok := lines[id]; ok {
			return l
		}
		p, ok := reg.Get(id)
		if !ok {
			return nil
		}
		side, _ := reg.SideOf(id)
		l := &PlayerLine{Player: p, Side: side}
		lines[id] = l
		return l
	}

	for _, e := range events {
		recv, thr := line(e.ReceiverID), line(e.ThrowerID)
		switch e.Type {
		case core.EventPickup:
			if recv != nil {
				recv.Pickups++
			}
		case core.EventCatch:
			if recv != nil {
				recv.Catches++
			}
		case core.EventGoal:
			if recv != nil {
				recv.Goals++
			}
			if thr != nil {
				thr.Assists++
			}
		case core.EventDrop:
			if recv != nil {
				recv.Drops++
			}
		case core.EventThrowaway:
			if thr != nil {
				thr.Throwaways++
			}
		case core.EventDBlock:
			if recv != nil {
				recv.Blocks++
			}
		}
	}

	out := make([]PlayerLine, 0, len(lines))
	for _, side := range []core.TeamSide{core.Home, core.Away} {
		for _, p := range reg.Players(side) {
			if l, ok := lines[p.ID]; ok && !l.empty() {
				out = append(out, *l)
			}
		}
	}
	return out
}
