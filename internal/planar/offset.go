// Package planar works with theatre-local Cartesian coordinates.
package planar

import (
	"math"

	"github.com/eytandecker/theatre-mcp/pkg/types"
)

// Offset moves (x, y) by distance along bearingDeg. Bearing 0 points along +x
// and grows counter-clockwise toward +y. Any bearing and any signed distance
// are accepted; a negative distance moves the opposite way.
func Offset(x, y, bearingDeg, distance float64) (float64, float64) {
	rad := bearingDeg * math.Pi / 180
	return x + distance*math.Cos(rad), y + distance*math.Sin(rad)
}

// OffsetPoint is Offset for a PlanarPoint.
func OffsetPoint(p types.PlanarPoint, bearingDeg, distance float64) types.PlanarPoint {
	x, y := Offset(p.X, p.Y, bearingDeg, distance)
	return types.PlanarPoint{X: x, Y: y}
}
