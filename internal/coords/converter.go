// Package coords converts theatre grid points into geographic coordinates.
package coords

import (
	"log"

	"github.com/eytandecker/theatre-mcp/internal/cache"
	"github.com/eytandecker/theatre-mcp/internal/dms"
	"github.com/eytandecker/theatre-mcp/internal/projection"
	"github.com/eytandecker/theatre-mcp/internal/theatre"
	"github.com/eytandecker/theatre-mcp/pkg/types"
)

// Lookup is the subset of theatre.Registry used by the Converter.
type Lookup interface {
	Lookup(id string) (theatre.Parameters, error)
}

// Option configures a Converter.
type Option func(*Converter)

// WithHandleCache reuses projection handles per theatre instead of building one
// per conversion.
func WithHandleCache(c *cache.Handles) Option {
	return func(conv *Converter) {
		conv.handles = c
	}
}

// Converter runs the lookup, build, forward and DMS steps for a theatre point.
type Converter struct {
	registry Lookup
	engine   projection.Engine
	handles  *cache.Handles
}

// NewConverter creates a Converter. Without WithHandleCache every call builds
// a fresh handle.
func NewConverter(registry Lookup, engine projection.Engine, opts ...Option) *Converter {
	c := &Converter{registry: registry, engine: engine}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConvertPoint converts planar (x, y) in the given theatre. It returns either a
// complete coordinate or an error matching types.ErrUnknownTheatre,
// types.ErrProjectionInit or types.ErrOutOfDomain.
func (c *Converter) ConvertPoint(x, y float64, theatreID string) (types.GeoCoordinate, error) {
	h, err := c.handle(theatreID)
	if err != nil {
		return types.GeoCoordinate{}, err
	}

	lat, lon, err := projection.Forward(h, x, y)
	if err != nil {
		return types.GeoCoordinate{}, err
	}

	return types.GeoCoordinate{
		LatDecimal: lat,
		LonDecimal: lon,
		LatDMS:     dms.FromDecimal(lat, true),
		LonDMS:     dms.FromDecimal(lon, false),
	}, nil
}

// ConvertBullseye converts a mission's bullseye reference point.
// It is ConvertPoint under the name used by mission parsing.
func (c *Converter) ConvertBullseye(x, y float64, theatreID string) (types.GeoCoordinate, error) {
	return c.ConvertPoint(x, y, theatreID)
}

// ConvertWaypoint converts a route waypoint. It is ConvertPoint under the name
// used by mission parsing.
func (c *Converter) ConvertWaypoint(x, y float64, theatreID string) (types.GeoCoordinate, error) {
	return c.ConvertPoint(x, y, theatreID)
}

func (c *Converter) handle(theatreID string) (projection.Handle, error) {
	params, err := c.registry.Lookup(theatreID)
	if err != nil {
		return nil, err
	}

	build := func() (projection.Handle, error) {
		h, err := projection.Build(c.engine, params)
		if err != nil {
			log.Printf("coords: projection for %s is misconfigured: %v", theatreID, err)
		}
		return h, err
	}
	if c.handles == nil {
		return build()
	}
	return c.handles.GetOrBuild(theatreID, build)
}

// Format renders a coordinate as "<lat DMS> <lon DMS>".
func Format(coord types.GeoCoordinate) string {
	return dms.Format(coord.LatDMS) + " " + dms.Format(coord.LonDMS)
}
