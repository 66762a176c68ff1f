// Package v1 contains the v1 export format for recorded matches.
package v1

import (
	"github.com/ultitrack/recorder/internal/stats"
	"github.com/ultitrack/recorder/pkg/core"
)

// FormatVersion is written into every export.
const FormatVersion = "1"

// Export is the root JSON structure for v1 format
type Export struct {
	FormatVersion   string             `json:"formatVersion"`
	RecorderVersion string             `json:"recorderVersion"`
	MatchName       string             `json:"matchName"`
	StartTime       string             `json:"startTime"`
	EndTime         string             `json:"endTime,omitempty"`
	Field           Field              `json:"field"`
	Score           core.Score         `json:"score"`
	Teams           []Team             `json:"teams"`
	Events          []Event            `json:"events"`
	Summary         stats.Summary      `json:"summary"`
	Players         []stats.PlayerLine `json:"players"`
	Possessions     []stats.Possession `json:"possessions"`
}

// Field is the pitch the coordinates were recorded on, in metres.
type Field struct {
	Width        float64 `json:"width"`
	Length       float64 `json:"length"`
	EndzoneDepth float64 `json:"endzoneDepth"`
}

// Team is one side with its roster and the lineup on the field at the end.
type Team struct {
	Side    core.TeamSide `json:"side"`
	Name    string        `json:"name"`
	Players []core.Player `json:"players"`
	Lineup  []string      `json:"lineup"`
}

// Event is a match log entry with player names resolved.
type Event struct {
	Index     int            `json:"index"`
	ID        string         `json:"id"`
	Type      core.EventType `json:"type"`
	Label     string         `json:"label"`
	Side      core.TeamSide  `json:"side"`
	Thrower   string         `json:"thrower,omitempty"`
	Receiver  string         `json:"receiver,omitempty"`
	Defender  string         `json:"defender,omitempty"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Timestamp string         `json:"timestamp"`
	Throw     *stats.Throw   `json:"throw,omitempty"`
}
