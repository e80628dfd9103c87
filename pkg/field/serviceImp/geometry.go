package serviceImp

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"

	"fieldwatch/pkg/apperr"
)

// normalizeRing checks a [lng, lat] ring and closes it if the caller left it open.
func normalizeRing(coords [][]float64) ([][]float64, *geom.Polygon, error) {
	if len(coords) == 0 {
		return nil, nil, nil
	}
	ring := make([]geom.Coord, 0, len(coords)+1)
	for i, c := range coords {
		if len(c) != 2 {
			return nil, nil, apperr.Invalid("coordinate %d must be [lng, lat]", i)
		}
		if c[0] < -180 || c[0] > 180 || c[1] < -90 || c[1] > 90 {
			return nil, nil, apperr.Invalid("coordinate %d out of range", i)
		}
		ring = append(ring, geom.Coord{c[0], c[1]})
	}
	first, last := ring[0], ring[len(ring)-1]
	if first[0] != last[0] || first[1] != last[1] {
		ring = append(ring, geom.Coord{first[0], first[1]})
	}
	if len(ring) < 4 {
		return nil, nil, apperr.Invalid("polygon needs at least 3 distinct points")
	}

	poly, err := geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{ring})
	if err != nil {
		return nil, nil, apperr.Invalid("polygon: %v", err)
	}
	if poly.Area() == 0 {
		return nil, nil, apperr.Invalid("polygon has no area")
	}

	out := make([][]float64, len(ring))
	for i, c := range ring {
		out[i] = []float64{c[0], c[1]}
	}
	return out, poly, nil
}

// centroid returns (lat, lng) of poly.
func centroid(poly *geom.Polygon) (float64, float64, error) {
	c, err := xy.Centroid(poly)
	if err != nil {
		return 0, 0, err
	}
	return c[1], c[0], nil
}
