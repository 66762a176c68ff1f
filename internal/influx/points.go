package influx

import (
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/ultitrack/recorder/pkg/core"
)

// Measurement names
const (
	MeasurementMatch = "match"
	MeasurementEvent = "game_event"
	MeasurementUndo  = "game_undo"
)

// MatchStartPoint marks the beginning of a match.
func MatchStartPoint(m core.Match) *influxdb2_write.Point {
	p := influxdb2_write.NewPointWithMeasurement(MeasurementMatch).
		AddTag("match", m.Name).
		AddTag("phase", "start").
		AddField("home_team", m.HomeTeam).
		AddField("away_team", m.AwayTeam)
	if !m.StartTime.IsZero() {
		p.SetTime(m.StartTime)
	}
	return p
}

// MatchEndPoint records the final score.
func MatchEndPoint(match string, final core.GameState, at time.Time) *influxdb2_write.Point {
	return influxdb2_write.NewPointWithMeasurement(MeasurementMatch).
		AddTag("match", match).
		AddTag("phase", "end").
		AddField("score_home", final.Score.Home).
		AddField("score_away", final.Score.Away).
		AddField("events", len(final.Events)).
		SetTime(at)
}

// EventPoint is one accepted event, timestamped when it happened.
func EventPoint(match string, e core.GameEvent, state core.GameState) *influxdb2_write.Point {
	p := influxdb2_write.NewPointWithMeasurement(MeasurementEvent).
		AddTag("match", match).
		AddTag("type", string(e.Type)).
		AddTag("side", string(e.PossessionSide)).
		AddField("id", e.ID).
		AddField("x", e.Location.X).
		AddField("y", e.Location.Y).
		AddField("score_home", state.Score.Home).
		AddField("score_away", state.Score.Away).
		SetTime(e.Timestamp)
	if e.ThrowerID != "" {
		p.AddField("thrower", e.ThrowerID)
	}
	if e.ReceiverID != "" {
		p.AddField("receiver", e.ReceiverID)
	}
	if e.DefenderID != "" {
		p.AddField("defender", e.DefenderID)
	}
	return p
}

// UndoPoint records the removal of e. It carries the event's timestamp so
// the two points line up.
func UndoPoint(match string, e core.GameEvent, state core.GameState) *influxdb2_write.Point {
	return influxdb2_write.NewPointWithMeasurement(MeasurementUndo).
		AddTag("match", match).
		AddTag("type", string(e.Type)).
		AddField("id", e.ID).
		AddField("remaining", len(state.Events)).
		SetTime(e.Timestamp)
}
