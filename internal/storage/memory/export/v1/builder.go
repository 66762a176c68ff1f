package v1

import (
	"fmt"
	"time"

	"github.com/ultitrack/recorder/internal/geo"
	"github.com/ultitrack/recorder/internal/roster"
	"github.com/ultitrack/recorder/internal/stats"
	"github.com/ultitrack/recorder/pkg/core"
)

// MatchData contains all the data needed to build an export
type MatchData struct {
	Match  core.Match
	Roster core.Roster
	Field  geo.Field
	Events []core.GameEvent
	Final  core.GameState
	Ended  time.Time
}

// Build creates an Export from the match data. Events come out oldest first.
func Build(data *MatchData) (Export, error) {
	reg, err := roster.New(data.Roster)
	if err != nil {
		return Export{}, fmt.Errorf("export roster: %w", err)
	}

	export := Export{
		FormatVersion:   FormatVersion,
		RecorderVersion: data.Match.RecorderVersion,
		MatchName:       data.Match.Name,
		StartTime:       formatTime(data.Match.StartTime),
		EndTime:         formatTime(data.Ended),
		Field: Field{
			Width:        data.Field.Width,
			Length:       data.Field.Length,
			EndzoneDepth: data.Field.EndzoneDepth,
		},
		Score: data.Final.Score,
		Teams: []Team{
			buildTeam(core.Home, data.Match.HomeTeam, data.Roster, data.Final.ActiveLineup),
			buildTeam(core.Away, data.Match.AwayTeam, data.Roster, data.Final.ActiveLineup),
		},
		Events:      make([]Event, len(data.Events)),
		Summary:     stats.Summarize(data.Events),
		Players:     stats.PlayerLines(reg, data.Events),
		Possessions: stats.Possessions(data.Field, data.Events),
	}

	for _, entry := range stats.MatchLog(data.Field, reg, data.Events) {
		e := entry.Event
		export.Events[entry.Index] = Event{
			Index:     entry.Index,
			ID:        e.ID,
			Type:      e.Type,
			Label:     entry.Label,
			Side:      e.PossessionSide,
			Thrower:   entry.Thrower,
			Receiver:  entry.Receiver,
			Defender:  reg.Name(e.DefenderID),
			X:         e.Location.X,
			Y:         e.Location.Y,
			Timestamp: formatTime(e.Timestamp),
			Throw:     entry.Throw,
		}
	}

	if export.Players == nil {
		export.Players = []stats.PlayerLine{}
	}
	if export.Possessions == nil {
		export.Possessions = []stats.Possession{}
	}

	return export, nil
}

func buildTeam(side core.TeamSide, name string, r core.Roster, lineup core.Lineup) Team {
	if name == "" {
		name = string(side)
	}
	players := r.For(side)
	if players == nil {
		players = []core.Player{}
	}
	ids := append([]string{}, lineup.For(side)...)
	return Team{Side: side, Name: name, Players: players, Lineup: ids}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
