package roster

import (
	"errors"
	"fmt"

	"github.com/ultitrack/recorder/pkg/core"
)

// ErrUnknownPlayer is returned when an id is not on either roster.
var ErrUnknownPlayer = errors.New("unknown player")

// Registry indexes both rosters by player id. It is built once per match and
// never mutated, so lookups need no locking.
type Registry struct {
	roster core.Roster
	byID   map[string]core.Player
	sideOf map[string]core.TeamSide
}

// New validates r and builds a Registry. Ids must be unique across both sides.
func New(r core.Roster) (*Registry, error) {
	if err := NewValidator().Validate(r); err != nil {
		return nil, err
	}

	reg := &Registry{
		roster: r,
		byID:   make(map[string]core.Player, len(r.Home)+len(r.Away)),
		sideOf: make(map[string]core.TeamSide, len(r.Home)+len(r.Away)),
	}
	for _, side := range []core.TeamSide{core.Home, core.Away} {
		for _, p := range r.For(side) {
			if _, dup := reg.byID[p.ID]; dup {
				return nil, fmt.Errorf("duplicate player id %q", p.ID)
			}
			reg.byID[p.ID] = p
			reg.sideOf[p.ID] = side
		}
	}
	return reg, nil
}

// Roster returns the underlying rosters.
func (r *Registry) Roster() core.Roster {
	return r.roster
}

func (r *Registry) Get(id string) (core.Player, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// SideOf returns which roster id belongs to.
func (r *Registry) SideOf(id string) (core.TeamSide, bool) {
	s, ok := r.sideOf[id]
	return s, ok
}

// Require is Get with an error for unknown ids.
func (r *Registry) Require(id string) (core.Player, error) {
	p, ok := r.byID[id]
	if !ok {
		return core.Player{}, fmt.Errorf("%w: %q", ErrUnknownPlayer, id)
	}
	return p, nil
}

// Players returns side's roster in roster order.
func (r *Registry) Players(side core.TeamSide) []core.Player {
	return r.roster.For(side)
}

// DefaultLineup puts the first n players of each roster on the field.
func (r *Registry) DefaultLineup(n int) core.Lineup {
	take := func(ps []core.Player) []string {
		ids := make([]string, 0, n)
		for i := 0; i < len(ps) && i < n; i++ {
			ids = append(ids, ps[i].ID)
		}
		return ids
	}
	return core.Lineup{Home: take(r.roster.Home), Away: take(r.roster.Away)}
}

// Active returns the players of side whose ids are in ids, keeping roster
// order. Unknown ids are skipped.
func (r *Registry) Active(side core.TeamSide, ids []string) []core.Player {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	out := make([]core.Player, 0, len(ids))
	for _, p := range r.roster.For(side) {
		if _, ok := set[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Name renders a player for logs and the match log; unknown ids fall back to
// the raw id.
func (r *Registry) Name(id string) string {
	if id == "" {
		return ""
	}
	if p, ok := r.byID[id]; ok {
		return p.Name
	}
	return id
}
