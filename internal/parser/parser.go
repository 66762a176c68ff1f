package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ultitrack/recorder/internal/geo"
	"github.com/ultitrack/recorder/pkg/core"
)

var (
	ErrEmptyLine   = errors.New("empty input line")
	ErrMissingArgs = errors.New("missing arguments")
	ErrUnbalanced  = errors.New("unbalanced quotes")
)

// Parser provides pure []string -> domain value conversion.
// It has zero external dependencies beyond a logger.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a new parser with only a logger dependency
func NewParser(logger *slog.Logger) *Parser {
	return &Parser{logger: logger}
}

// SplitLine breaks a command line into the command and its arguments.
// Arguments are separated by whitespace; double quotes group words.
//
//	:EVENT: "end of quarter"  ->  ":EVENT:", ["end of quarter"]
func (p *Parser) SplitLine(line string) (string, []string, error) {
	var (
		fields  []string
		cur     strings.Builder
		inQuote bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && (r == ' ' || r == '\t'):
			if started {
				fields = append(fields, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if inQuote {
		return "", nil, ErrUnbalanced
	}
	if started {
		fields = append(fields, cur.String())
	}
	if len(fields) == 0 {
		return "", nil, ErrEmptyLine
	}
	return strings.ToUpper(fields[0]), fields[1:], nil
}

// clean trims whitespace and stray quotes from every argument in place.
func clean(data []string) {
	for i, v := range data {
		data[i] = strings.Trim(strings.TrimSpace(v), `"'`)
	}
}

// ParseTap accepts either "x y" as two arguments or a single "x,y".
func (p *Parser) ParseTap(data []string) (core.Coordinate, error) {
	clean(data)

	var (
		c   core.Coordinate
		err error
	)
	switch len(data) {
	case 0:
		return c, fmt.Errorf("tap: %w", ErrMissingArgs)
	case 1:
		c, err = geo.CoordinateFromString(data[0])
	default:
		c, err = geo.CoordinateFromParts(data[0], data[1])
	}
	if err != nil {
		return c, fmt.Errorf("error parsing tap %v: %w", data, err)
	}

	p.logger.Debug("Parsed tap", "x", c.X, "y", c.Y)
	return c, nil
}

// ParseSelect returns the selected player id.
func (p *Parser) ParseSelect(data []string) (string, error) {
	clean(data)
	if len(data) < 1 || data[0] == "" {
		return "", fmt.Errorf("select: %w", ErrMissingArgs)
	}
	return data[0], nil
}

// ParseEvent returns the event type and the optional player id.
func (p *Parser) ParseEvent(data []string) (core.EventType, string, error) {
	clean(data)
	if len(data) < 1 {
		return "", "", fmt.Errorf("event: %w", ErrMissingArgs)
	}

	t, err := core.ParseEventType(data[0])
	if err != nil {
		return "", "", fmt.Errorf("error parsing event type: %w", err)
	}

	var playerID string
	if len(data) > 1 {
		playerID = data[1]
	}

	p.logger.Debug("Parsed event", "type", string(t), "player", playerID)
	return t, playerID, nil
}

// ParseLineup returns the side and the ids listed after it. Ids may be given
// as separate arguments, comma separated, or both. No ids clears the lineup.
func (p *Parser) ParseLineup(data []string) (core.TeamSide, []string, error) {
	clean(data)
	if len(data) < 1 {
		return "", nil, fmt.Errorf("lineup: %w", ErrMissingArgs)
	}

	side, err := core.ParseTeamSide(data[0])
	if err != nil {
		return "", nil, fmt.Errorf("error parsing lineup side: %w", err)
	}

	ids := []string{}
	for _, arg := range data[1:] {
		for _, id := range strings.Split(arg, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}

	p.logger.Debug("Parsed lineup", "side", string(side), "count", len(ids))
	return side, ids, nil
}

// ParseToggle accepts "side id" or just "id"; the side is empty in the
// second form.
func (p *Parser) ParseToggle(data []string) (core.TeamSide, string, error) {
	clean(data)
	switch len(data) {
	case 0:
		return "", "", fmt.Errorf("toggle: %w", ErrMissingArgs)
	case 1:
		return "", data[0], nil
	}
	side, err := core.ParseTeamSide(data[0])
	if err != nil {
		return "", "", fmt.Errorf("error parsing toggle side: %w", err)
	}
	return side, data[1], nil
}
