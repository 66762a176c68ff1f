package handlers

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ultitrack/recorder/internal/dispatcher"
	"github.com/ultitrack/recorder/internal/input"
	"github.com/ultitrack/recorder/internal/roster"
	"github.com/ultitrack/recorder/internal/stats"
	"github.com/ultitrack/recorder/pkg/core"
)

func coord(c core.Coordinate) string {
	return fmt.Sprintf("%.1f,%.1f", c.X, c.Y)
}

func table(fn func(w *tabwriter.Writer)) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fn(w)
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func teamName(m core.Match, side core.TeamSide) string {
	name := m.HomeTeam
	if side == core.Away {
		name = m.AwayTeam
	}
	if name == "" {
		return string(side)
	}
	return name
}

// RenderSelection lists the players that can resolve the open selection.
func RenderSelection(pending core.Coordinate, menu input.Menu, players []core.Player) string {
	header := fmt.Sprintf("tap %s, choose %s", coord(pending), menu.Role)
	if len(players) == 0 {
		return header + "\n  (no players in the lineup)"
	}
	return header + "\n" + table(func(w *tabwriter.Writer) {
		for _, p := range players {
			fmt.Fprintf(w, "  %s\t#%s\t%s\n", p.ID, p.Number, p.Name)
		}
	})
}

// RenderScoreLine is the one-line score, possession and disc summary.
func RenderScoreLine(reg *roster.Registry, state core.GameState) string {
	disc := "loose"
	if state.HasDisc != "" {
		disc = reg.Name(state.HasDisc)
	}
	possession := string(state.CurrentPossession)
	if possession == "" {
		possession = "none"
	}
	return fmt.Sprintf("score %d-%d, possession %s, disc %s",
		state.Score.Home, state.Score.Away, possession, disc)
}

// RenderEvent describes a recorded event and the state it produced.
func RenderEvent(reg *roster.Registry, ev core.GameEvent, state core.GameState) string {
	var b strings.Builder
	b.WriteString(ev.Type.Label())
	switch {
	case ev.ThrowerID != "" && ev.ReceiverID != "":
		fmt.Fprintf(&b, " %s -> %s", reg.Name(ev.ThrowerID), reg.Name(ev.ReceiverID))
	case ev.ReceiverID != "":
		fmt.Fprintf(&b, " %s", reg.Name(ev.ReceiverID))
	case ev.ThrowerID != "":
		fmt.Fprintf(&b, " by %s", reg.Name(ev.ThrowerID))
	}
	fmt.Fprintf(&b, " @ %s\n%s", coord(ev.Location), RenderScoreLine(reg, state))
	return b.String()
}

func lineupNames(reg *roster.Registry, side core.TeamSide, ids []string) string {
	players := reg.Active(side, ids)
	if len(players) == 0 {
		return "-"
	}
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

// RenderLineup shows one side's active players against the cap.
func RenderLineup(s *input.Surface, side core.TeamSide) string {
	ids := s.Engine().Snapshot().ActiveLineup.For(side)
	return fmt.Sprintf("%s lineup (%d/%d): %s",
		side, len(ids), s.LineupCap(), lineupNames(s.Engine().Roster(), side, ids))
}

// RenderState is the full snapshot view.
func RenderState(m core.Match, s *input.Surface) string {
	eng := s.Engine()
	reg := eng.Roster()
	state := eng.Snapshot()

	status := "not started"
	if state.IsGameActive {
		status = "in play"
	}

	disc := "loose"
	if holder, ok := eng.CurrentHolder(); ok {
		disc = holder.Name
		if loc := s.ThrowerLocation(); loc != nil {
			disc += " @ " + coord(*loc)
		}
	} else if loc := s.LastKnownLocation(); loc != nil {
		disc += " @ " + coord(*loc)
	}

	possession := "none"
	if state.CurrentPossession != "" {
		possession = teamName(m, state.CurrentPossession)
	}

	return table(func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "match\t%s\n", m.Name)
		fmt.Fprintf(w, "status\t%s\n", status)
		fmt.Fprintf(w, "score\t%s %d - %d %s\n",
			teamName(m, core.Home), state.Score.Home, state.Score.Away, teamName(m, core.Away))
		fmt.Fprintf(w, "possession\t%s\n", possession)
		fmt.Fprintf(w, "disc\t%s\n", disc)
		if p := s.PreviewLocation(); p != nil {
			fmt.Fprintf(w, "pass to\t%s\n", coord(*p))
		}
		fmt.Fprintf(w, "events\t%d\n", len(state.Events))
		for _, side := range []core.TeamSide{core.Home, core.Away} {
			ids := state.ActiveLineup.For(side)
			fmt.Fprintf(w, "%s (%d)\t%s\n", side, len(ids), lineupNames(reg, side, ids))
		}
	})
}

// RenderStats prints the match summary followed by the player table.
func RenderStats(sum stats.Summary, lines []stats.PlayerLine) string {
	out := table(func(w *tabwriter.Writer) {
		fmt.Fprintf(w, "events\t%d\n", sum.Events)
		fmt.Fprintf(w, "completions\t%d\n", sum.Completions)
		fmt.Fprintf(w, "drops\t%d\n", sum.Drops)
		fmt.Fprintf(w, "throwaways\t%d\n", sum.Throwaways)
		fmt.Fprintf(w, "turnovers\t%d\n", sum.Turnovers)
		fmt.Fprintf(w, "goals\t%d\n", sum.Goals)
		fmt.Fprintf(w, "completion rate\t%d%%\n", sum.CompletionRate)
		fmt.Fprintf(w, "possession\thome %d / away %d\n", sum.Possession.Home, sum.Possession.Away)
	})
	if len(lines) == 0 {
		return out
	}
	return out + "\n\n" + table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "PLAYER\tSIDE\tPU\tC\tG\tA\tD\tT\tB")
		for _, l := range lines {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
				l.Player.Name, l.Side, l.Pickups, l.Catches, l.Goals, l.Assists, l.Drops, l.Throwaways, l.Blocks)
		}
	})
}

// RenderLog prints match log entries as they are given (newest first).
func RenderLog(entries []stats.Entry) string {
	if len(entries) == 0 {
		return "no events"
	}
	return table(func(w *tabwriter.Writer) {
		fmt.Fprintln(w, "#\tEVENT\tSIDE\tTHROWER\tRECEIVER\tAT\tDIST\tHOLD\tGAIN")
		for _, e := range entries {
			dist, hold, gain := "", "", ""
			if e.Throw != nil {
				dist = fmt.Sprintf("%.1fm", e.Throw.DistanceM)
				hold = fmt.Sprintf("%.1fs", e.Throw.HoldS)
				gain = fmt.Sprintf("%+.1fm", e.Throw.GainM)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				e.Index+1, e.Label, e.Event.PossessionSide, e.Thrower, e.Receiver,
				coord(e.Event.Location), dist, hold, gain)
		}
	})
}

// RenderHelp lists commands and their descriptions.
func RenderHelp(cmds []dispatcher.Command) string {
	return table(func(w *tabwriter.Writer) {
		for _, c := range cmds {
			fmt.Fprintf(w, "%s\t%s\n", c.Name, c.Description)
		}
	})
}
