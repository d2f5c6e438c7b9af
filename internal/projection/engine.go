// Package projection builds transverse Mercator handles for theatre grids and
// runs planar points through them.
package projection

// Engine constructs projection handles from a PROJ-style definition string and
// a target datum name.
type Engine interface {
	Build(definition, target string) (Handle, error)
}

// Handle forward-transforms a projected point (easting, northing) into the
// target geographic system, returned in engine order (longitude, latitude).
type Handle interface {
	Forward(east, north float64) (float64, float64, error)
}

// EngineFunc adapts a plain function to the Engine interface.
type EngineFunc func(definition, target string) (Handle, error)

func (f EngineFunc) Build(definition, target string) (Handle, error) {
	return f(definition, target)
}
