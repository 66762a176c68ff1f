// pkg/core/match.go
package core

import "time"

// Match describes the fixture being recorded. It carries no game state.
type Match struct {
	Name            string    `json:"name"`
	HomeTeam        string    `json:"homeTeam"`
	AwayTeam        string    `json:"awayTeam"`
	StartTime       time.Time `json:"startTime"`
	RecorderVersion string    `json:"recorderVersion"`
}

// Roster is the static player list of both sides.
type Roster struct {
	Home []Player `json:"home" yaml:"home" validate:"dive"`
	Away []Player `json:"away" yaml:"away" validate:"dive"`
}

// For returns the players of side in roster order.
func (r Roster) For(side TeamSide) []Player {
	if side == Away {
		return r.Away
	}
	return r.Home
}
