package geo

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/ultitrack/recorder/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// FIELD GEOMETRY
// Coordinates arrive normalized (percent of width, percent of length). Anything
// that needs real distances goes through a Field, which scales them to metres
// measured from the corner where x=0,y=0.

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// Field holds the physical dimensions of the pitch in metres.
type Field struct {
	Width        float64
	Length       float64 // including both endzones
	EndzoneDepth float64
}

// WFDF is the standard field: 37 x 100 m with 18 m endzones.
var WFDF = Field{Width: 37, Length: 100, EndzoneDepth: 18}

// EndzonePercent is the endzone depth as a percentage of field length.
func (f Field) EndzonePercent() float64 {
	if f.Length <= 0 {
		return 0
	}
	return f.EndzoneDepth / f.Length * 100
}

// InEndzone reports whether c falls inside either endzone band. The boundary
// line itself belongs to the playing field.
func (f Field) InEndzone(c core.Coordinate) bool {
	p := f.EndzonePercent()
	return c.Y < p || c.Y > 100-p
}

// ToMeters converts a normalized coordinate into a point in metres.
func (f Field) ToMeters(c core.Coordinate) geom.Point {
	return geom.NewPoint(geom.Coordinates{
		XY:   geom.XY{X: c.X * f.Width / 100, Y: c.Y * f.Length / 100},
		Type: geom.DimXY,
	})
}

// Distance is the straight-line distance in metres between two coordinates.
func (f Field) Distance(from, to core.Coordinate) float64 {
	d, ok := geom.Distance(f.ToMeters(from).AsGeometry(), f.ToMeters(to).AsGeometry())
	if !ok {
		return 0
	}
	return d
}

// Gain is the signed progress in metres along the length axis.
func (f Field) Gain(from, to core.Coordinate) float64 {
	return (to.Y - from.Y) * f.Length / 100
}

// CoordinateFromString parses "x,y" into a core.Coordinate.
func CoordinateFromString(coords string) (core.Coordinate, error) {
	coordsSplit := strings.Split(coords, ",")
	if len(coordsSplit) != 2 {
		return core.Coordinate{}, ErrInvalidCoordinates
	}
	return CoordinateFromParts(coordsSplit[0], coordsSplit[1])
}

// CoordinateFromParts parses separate x and y strings. NaN and infinities are
// rejected.
func CoordinateFromParts(xs, ys string) (core.Coordinate, error) {
	x, err := parseAxis(xs)
	if err != nil {
		return core.Coordinate{}, err
	}
	y, err := parseAxis(ys)
	if err != nil {
		return core.Coordinate{}, err
	}
	return core.Coordinate{X: x, Y: y}, nil
}

func parseAxis(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidCoordinates
	}
	return v, nil
}

// Finite reports whether both axes are real numbers.
func Finite(c core.Coordinate) bool {
	return !math.IsNaN(c.X) && !math.IsInf(c.X, 0) && !math.IsNaN(c.Y) && !math.IsInf(c.Y, 0)
}

// Clamp pins c into the 0-100 range on both axes. Input surfaces use it when
// a tap lands on the field border.
func Clamp(c core.Coordinate) core.Coordinate {
	clamp := func(v float64) float64 {
		switch {
		case v < 0:
			return 0
		case v > 100:
			return 100
		}
		return v
	}
	return core.Coordinate{X: clamp(c.X), Y: clamp(c.Y)}
}
