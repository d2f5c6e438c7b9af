package coords

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/eytandecker/theatre-mcp/pkg/types"
)

// RoutePoint is one named planar point of a route.
type RoutePoint struct {
	Name  string
	Point types.PlanarPoint
}

// ConvertedPoint pairs a route point with its geographic coordinate.
type ConvertedPoint struct {
	RoutePoint
	Coordinate types.GeoCoordinate
}

// ConvertRoute converts every point of a route in one theatre. Conversion stops
// at the first failure and no partial result is returned.
func (c *Converter) ConvertRoute(theatreID string, points []RoutePoint) ([]ConvertedPoint, error) {
	out := make([]ConvertedPoint, 0, len(points))
	for i, rp := range points {
		coord, err := c.ConvertWaypoint(rp.Point.X, rp.Point.Y, theatreID)
		if err != nil {
			return nil, fmt.Errorf("route point %d: %w", i, err)
		}
		out = append(out, ConvertedPoint{RoutePoint: rp, Coordinate: coord})
	}
	return out, nil
}

// RouteFeatureCollection renders converted points as GeoJSON: a Point feature
// per waypoint followed by a LineString through all of them when there are at
// least two. Positions are written as [lon_decimal, lat_decimal].
func RouteFeatureCollection(theatreID string, points []ConvertedPoint) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	line := make(orb.LineString, 0, len(points))

	for i, p := range points {
		pt := orb.Point{p.Coordinate.LonDecimal, p.Coordinate.LatDecimal}
		line = append(line, pt)

		f := geojson.NewFeature(pt)
		f.Properties["index"] = i
		if p.Name != "" {
			f.Properties["name"] = p.Name
		}
		f.Properties["x"] = p.Point.X
		f.Properties["y"] = p.Point.Y
		f.Properties["dms"] = Format(p.Coordinate)
		fc.Append(f)
	}

	if len(line) >= 2 {
		f := geojson.NewFeature(line)
		f.Properties["theatre"] = theatreID
		f.Properties["kind"] = "route"
		fc.Append(f)
	}
	return fc
}
