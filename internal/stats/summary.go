package stats

import (
	"math"

	"github.com/ultitrack/recorder/pkg/core"
)

// Summary is the match-level tally shown after (or during) a game.
type Summary struct {
	Events         int        `json:"events"`
	Completions    int        `json:"completions"`
	Drops          int        `json:"drops"`
	Throwaways     int        `json:"throwaways"`
	Turnovers      int        `json:"turnovers"`
	Goals          int        `json:"goals"`
	CompletionRate int        `json:"completionRate"` // percent
	Possession     core.Score `json:"possession"`     // events per side
}

// Summarize counts events. The completion rate is 100 until the first catch.
func Summarize(events []core.GameEvent) Summary {
	var s Summary
	s.Events = len(events)
	for _, e := range events {
		switch e.Type {
		case core.EventCatch:
			s.Completions++
		case core.EventDrop:
			s.Drops++
		case core.EventThrowaway:
			s.Throwaways++
		case core.EventGoal:
			s.Goals++
		}
		if e.Type.IsTurnover() || e.Type == core.EventTurnover {
			s.Turnovers++
		}
		s.Possession = s.Possession.Add(e.PossessionSide)
	}

	s.CompletionRate = 100
	if s.Completions > 0 {
		s.CompletionRate = int(roundHalfUp(float64(s.Completions) / float64(s.Completions+s.Drops+s.Throwaways) * 100))
	}
	return s
}

// roundHalfUp rounds .5 towards positive infinity.
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return roundHalfUp(v*10) / 10
}
