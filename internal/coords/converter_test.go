package coords

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eytandecker/theatre-mcp/internal/cache"
	"github.com/eytandecker/theatre-mcp/internal/projection"
	"github.com/eytandecker/theatre-mcp/internal/theatre"
	"github.com/eytandecker/theatre-mcp/pkg/types"
)

// countingEngine wraps an engine and counts Build calls.
type countingEngine struct {
	inner  projection.Engine
	builds int
}

func (c *countingEngine) Build(definition, target string) (projection.Handle, error) {
	c.builds++
	return c.inner.Build(definition, target)
}

// fixedHandle always returns the same engine output.
type fixedHandle struct {
	a, b float64
	err  error
}

func (f fixedHandle) Forward(east, north float64) (float64, float64, error) {
	return f.a, f.b, f.err
}

func newTMConverter(opts ...Option) *Converter {
	return NewConverter(theatre.NewRegistry(), projection.NewTMEngine(), opts...)
}

func TestConvertPointPersianGulf(t *testing.T) {
	conv := newTMConverter()

	got, err := conv.ConvertPoint(-100594.371094, -88875.371094, theatre.PersianGulf)
	require.NoError(t, err)
	assert.InDelta(t, 55.3652612, got.LatDecimal, 1e-5)
	assert.InDelta(t, 25.25637587, got.LonDecimal, 1e-5)

	assert.Equal(t, 55, got.LatDMS.Degrees)
	assert.Equal(t, 21, got.LatDMS.Minutes)
	assert.Equal(t, types.North, got.LatDMS.Direction)
	assert.Equal(t, 25, got.LonDMS.Degrees)
	assert.Equal(t, 15, got.LonDMS.Minutes)
	assert.Equal(t, types.East, got.LonDMS.Direction)
}

func TestBullseyeAndWaypointMatchConvertPoint(t *testing.T) {
	conv := newTMConverter()
	x, y := -50000.0, 250000.0

	want, err := conv.ConvertPoint(x, y, theatre.Caucasus)
	require.NoError(t, err)

	bullseye, err := conv.ConvertBullseye(x, y, theatre.Caucasus)
	require.NoError(t, err)
	waypoint, err := conv.ConvertWaypoint(x, y, theatre.Caucasus)
	require.NoError(t, err)

	assert.Equal(t, want, bullseye)
	assert.Equal(t, want, waypoint)
}

func TestConvertPointUnknownTheatre(t *testing.T) {
	engine := &countingEngine{inner: projection.NewTMEngine()}
	conv := NewConverter(theatre.NewRegistry(), engine)

	got, err := conv.ConvertPoint(0, 0, "Kola")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnknownTheatre)
	assert.Equal(t, types.GeoCoordinate{}, got)
	assert.Zero(t, engine.builds, "engine must not be consulted for unknown theatres")
}

func TestConvertPointProjectionInitFailed(t *testing.T) {
	cause := errors.New("rejected")
	engine := projection.EngineFunc(func(definition, target string) (projection.Handle, error) {
		return nil, cause
	})
	conv := NewConverter(theatre.NewRegistry(), engine)

	_, err := conv.ConvertPoint(0, 0, theatre.Syria)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrProjectionInit)
	assert.ErrorIs(t, err, cause)
}

func TestConvertPointOutOfDomain(t *testing.T) {
	conv := newTMConverter()

	got, err := conv.ConvertPoint(1e9, 1e9, theatre.Nevada)
	assert.ErrorIs(t, err, types.ErrOutOfDomain)
	assert.Equal(t, types.GeoCoordinate{}, got)
}

func TestConvertPointAirbases(t *testing.T) {
	tests := []struct {
		theatre string
		name    string
		x, y    float64
		lat     float64
		lon     float64
	}{
		{theatre.PersianGulf, "Al Dhafra", -211058, -173312, 54.54699580, 24.24800374},
		{theatre.PersianGulf, "Bandar Abbas", 115801, 14163, 56.37800110, 27.21799965},
		{theatre.Falklands, "Rio Gallegos", 25693, -703456, -69.31299569, -51.60900149},
		{theatre.Falklands, "Ushuaia", -320554, -576160, -68.29599771, -54.84299789},
		{theatre.Caucasus, "Batumi", -356437, 618211, 41.60927715, 41.60328114},
		{theatre.Caucasus, "Tbilisi-Lochini", -315467, 896491, 44.95499482, 41.66900404},
		{theatre.MarianaIslands, "Saipan", 180043, 101842, 145.72899884, 15.11899868},
		{theatre.Nevada, "Nellis", -399000, -18000, -115.04170933, 36.22811414},
		{theatre.Nevada, "Tonopah", -197552, -201629, -117.08700057, 38.06000282},
		{theatre.Normandy, "Tangmere", 150394, -34033, -0.70599479, 50.84599718},
		{theatre.Syria, "Tabqa", 76885, 243564, 38.56599588, 35.75400135},
		{theatre.SinaiMap, "Ovda", -11600, 356075, 34.93600089, 29.94000150},
	}

	conv := newTMConverter()
	for _, tt := range tests {
		t.Run(tt.theatre+"/"+tt.name, func(t *testing.T) {
			got, err := conv.ConvertPoint(tt.x, tt.y, tt.theatre)
			require.NoError(t, err)
			assert.InDelta(t, tt.lat, got.LatDecimal, 1e-5)
			assert.InDelta(t, tt.lon, got.LonDecimal, 1e-5)
			assert.Less(t, got.LatDMS.Minutes, 60)
			assert.Less(t, got.LonDMS.Seconds, 60.0)
		})
	}
}

func TestConvertPointInDomainForEveryTheatre(t *testing.T) {
	conv := newTMConverter()
	for _, name := range theatre.Default().Names() {
		t.Run(name, func(t *testing.T) {
			for _, p := range []types.PlanarPoint{{X: 0, Y: 0}, {X: 700000, Y: 700000}, {X: -700000, Y: -700000}} {
				_, err := conv.ConvertPoint(p.X, p.Y, name)
				require.NoError(t, err, "x=%g y=%g", p.X, p.Y)
			}
		})
	}
}

func TestConvertPointUsesEngineOrder(t *testing.T) {
	engine := projection.EngineFunc(func(definition, target string) (projection.Handle, error) {
		return fixedHandle{a: -33.5, b: -70.25}, nil
	})
	conv := NewConverter(theatre.NewRegistry(), engine)

	got, err := conv.ConvertPoint(1, 2, theatre.Falklands)
	require.NoError(t, err)
	assert.Equal(t, -33.5, got.LatDecimal)
	assert.Equal(t, -70.25, got.LonDecimal)
	assert.Equal(t, types.South, got.LatDMS.Direction)
	assert.Equal(t, types.West, got.LonDMS.Direction)
	assert.Equal(t, "33°30'00.000\"S 70°15'00.000\"W", Format(got))
}

func TestHandleCacheBuildsOncePerTheatre(t *testing.T) {
	engine := &countingEngine{inner: projection.NewTMEngine()}
	handles := cache.NewHandles()
	conv := NewConverter(theatre.NewRegistry(), engine, WithHandleCache(handles))

	for i := 0; i < 3; i++ {
		_, err := conv.ConvertPoint(0, 0, theatre.Syria)
		require.NoError(t, err)
	}
	_, err := conv.ConvertPoint(0, 0, theatre.Normandy)
	require.NoError(t, err)

	assert.Equal(t, 2, engine.builds)
	assert.Equal(t, 2, handles.Len())
}

func TestWithoutCacheBuildsEveryCall(t *testing.T) {
	engine := &countingEngine{inner: projection.NewTMEngine()}
	conv := NewConverter(theatre.NewRegistry(), engine)

	for i := 0; i < 3; i++ {
		_, err := conv.ConvertPoint(0, 0, theatre.Syria)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, engine.builds)
}

func TestFormat(t *testing.T) {
	coord := types.GeoCoordinate{
		LatDMS: types.DMS{Degrees: 37, Minutes: 46, Seconds: 29.64, Direction: types.North},
		LonDMS: types.DMS{Degrees: 122, Minutes: 25, Seconds: 9.84, Direction: types.West},
	}
	assert.Equal(t, "37°46'29.640\"N 122°25'09.840\"W", Format(coord))
}
