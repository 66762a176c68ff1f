package geo

import (
	"fmt"

	"github.com/ultitrack/recorder/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
)

// Trail builds the path the disc travelled through the given coordinates as a
// LineString in metres. Renderers draw it; stats use its length.
func (f Field) Trail(coords []core.Coordinate) (geom.LineString, error) {
	if len(coords) < 2 {
		return geom.LineString{}, fmt.Errorf("trail must have at least 2 points, got %d", len(coords))
	}

	flatCoords := make([]float64, 0, len(coords)*2)
	for _, c := range coords {
		flatCoords = append(flatCoords, c.X*f.Width/100, c.Y*f.Length/100)
	}

	seq := geom.NewSequence(flatCoords, geom.DimXY)
	return geom.NewLineString(seq), nil
}

// TrailLength is the total length in metres of the path through coords.
// Fewer than two points have no length.
func (f Field) TrailLength(coords []core.Coordinate) float64 {
	ls, err := f.Trail(coords)
	if err != nil {
		return 0
	}
	return ls.Length()
}
