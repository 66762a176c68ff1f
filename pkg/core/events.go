// pkg/core/events.go
package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownEventType is returned when a name does not match any EventType.
var ErrUnknownEventType = errors.New("unknown event type")

// EventType is the closed set of things that can be recorded on the field.
type EventType string

const (
	EventPull         EventType = "PULL"
	EventPickup       EventType = "PICKUP" // starts a possession
	EventCatch        EventType = "CATCH"
	EventDrop         EventType = "DROP"
	EventThrowaway    EventType = "THROWAWAY"
	EventGoal         EventType = "GOAL"
	EventDBlock       EventType = "D_BLOCK"
	EventCallahan     EventType = "CALLAHAN" // turnover-goal
	EventTurnover     EventType = "TURNOVER" // generic
	EventEndOfQuarter EventType = "END_OF_QUARTER"
)

// AllEventTypes lists every EventType in declaration order.
var AllEventTypes = []EventType{
	EventPull,
	EventPickup,
	EventCatch,
	EventDrop,
	EventThrowaway,
	EventGoal,
	EventDBlock,
	EventCallahan,
	EventTurnover,
	EventEndOfQuarter,
}

// Valid reports whether t is one of AllEventTypes.
func (t EventType) Valid() bool {
	for _, known := range AllEventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Label is the human readable form used by match logs ("D BLOCK").
func (t EventType) Label() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

// NeedsLocation reports whether recording t requires a fresh tap.
// Drops and throwaways can be recorded at the last known disc location.
func (t EventType) NeedsLocation() bool {
	return t != EventDrop && t != EventThrowaway
}

// IsTurnover reports whether t hands the disc to the other side without a score.
func (t EventType) IsTurnover() bool {
	return t == EventDrop || t == EventThrowaway || t == EventDBlock
}

// ParseEventType accepts names case-insensitively, with '-' or ' ' in place of '_'.
func ParseEventType(s string) (EventType, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	t := EventType(norm)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEventType, s)
	}
	return t, nil
}

// MarshalText implements encoding.TextMarshaler.
func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *EventType) UnmarshalText(b []byte) error {
	parsed, err := ParseEventType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Coordinate is a point in normalized field space: X is the percentage of
// field width, Y the percentage of field length. Both nominally 0-100.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FieldCenter is the fallback location when nothing better is known.
var FieldCenter = Coordinate{X: 50, Y: 50}

// GameEvent is one entry of the match log. It is never mutated once appended.
// Optional player references are empty strings.
type GameEvent struct {
	ID             string     `json:"id"`
	Type           EventType  `json:"type"`
	ThrowerID      string     `json:"throwerId,omitempty"`
	ReceiverID     string     `json:"receiverId,omitempty"`
	DefenderID     string     `json:"defenderId,omitempty"`
	Location       Coordinate `json:"location"`
	Timestamp      time.Time  `json:"timestamp"`
	PossessionSide TeamSide   `json:"possessionSide"`
}
