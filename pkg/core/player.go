// pkg/core/player.go
package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSide is returned when a string does not name a team side.
var ErrUnknownSide = errors.New("unknown team side")

// Gender is the gender-matching category a player is rostered under.
type Gender string

const (
	GenderMale     Gender = "M"
	GenderFemale   Gender = "F"
	GenderMatching Gender = "Matching"
)

// Player is immutable roster data. Number is a display string and may hold
// non-numeric placeholders.
type Player struct {
	ID     string `json:"id" yaml:"id" validate:"required"`
	Name   string `json:"name" yaml:"name" validate:"required"`
	Number string `json:"number" yaml:"number"`
	Gender Gender `json:"gender" yaml:"gender" validate:"oneof=M F Matching"`
}

// TeamSide tags possession and event attribution.
type TeamSide string

const (
	Home TeamSide = "home"
	Away TeamSide = "away"
)

// Other returns the opposing side.
func (s TeamSide) Other() TeamSide {
	if s == Home {
		return Away
	}
	return Home
}

// Valid reports whether s is home or away.
func (s TeamSide) Valid() bool {
	return s == Home || s == Away
}

// ParseTeamSide accepts "home"/"away" in any case.
func ParseTeamSide(s string) (TeamSide, error) {
	side := TeamSide(strings.ToLower(strings.TrimSpace(s)))
	if !side.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSide, s)
	}
	return side, nil
}
