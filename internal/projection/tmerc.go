package projection

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/eytandecker/theatre-mcp/pkg/types"
)

const (
	// maxMeridianOffset bounds the longitude band, in degrees either side of
	// the central meridian, that a handle accepts.
	maxMeridianOffset = 45.0

	// maxNewtonIterations caps the latitude refinement in the inverse series.
	maxNewtonIterations = 10
)

var (
	errNotTmerc      = errors.New("tmerc: only +proj=tmerc is supported")
	errBadTarget     = errors.New("tmerc: unsupported target datum")
	errBadDefinition = errors.New("tmerc: malformed definition")
)

// ellipsoid is described by its semi-major axis and flattening.
type ellipsoid struct {
	a, f float64
}

// grs80 is the ellipsoid PROJ assumes for +proj=tmerc without +ellps. It
// differs from the WGS84 ellipsoid by about 0.1 mm in the semi-minor axis.
var grs80 = ellipsoid{a: 6378137, f: 1 / 298.257222101}

// krueger holds the sixth-order Krüger series for one ellipsoid (Karney 2011).
type krueger struct {
	e     float64    // first eccentricity
	a     float64    // rectifying radius
	alpha [6]float64 // forward coefficients
	beta  [6]float64 // inverse coefficients
}

func newKrueger(el ellipsoid) krueger {
	n := el.f / (2 - el.f)
	n2, n3 := n*n, n*n*n
	n4, n5, n6 := n2*n2, n2*n3, n3*n3

	return krueger{
		e: math.Sqrt(el.f * (2 - el.f)),
		a: el.a / (1 + n) * (1 + n2/4 + n4/64 + n6/256),
		alpha: [6]float64{
			n/2 - 2*n2/3 + 5*n3/16 + 41*n4/180 - 127*n5/288 + 7891*n6/37800,
			13*n2/48 - 3*n3/5 + 557*n4/1440 + 281*n5/630 - 1983433*n6/1935360,
			61*n3/240 - 103*n4/140 + 15061*n5/26880 + 167603*n6/181440,
			49561*n4/161280 - 179*n5/168 + 6601661*n6/7257600,
			34729*n5/80640 - 3418889*n6/1995840,
			212378941 * n6 / 319334400,
		},
		beta: [6]float64{
			n/2 - 2*n2/3 + 37*n3/96 - n4/360 - 81*n5/512 + 96199*n6/604800,
			n2/48 + n3/15 - 437*n4/1440 + 46*n5/105 - 1118711*n6/3870720,
			17*n3/480 - 37*n4/840 - 209*n5/4480 + 5569*n6/90720,
			4397*n4/161280 - 11*n5/504 - 830251*n6/7257600,
			4583*n5/161280 - 108847*n6/3991680,
			20648693 * n6 / 638668800,
		},
	}
}

// toGrid projects geodetic radians (phi, lambda relative to the central
// meridian) onto the unscaled grid (xi along the meridian, eta across it).
func (k krueger) toGrid(phi, lambda float64) (xi, eta float64) {
	tau := math.Tan(phi)
	sigma := math.Sinh(k.e * math.Atanh(k.e*tau/math.Sqrt(1+tau*tau)))
	tauP := tau*math.Sqrt(1+sigma*sigma) - sigma*math.Sqrt(1+tau*tau)

	cosL := math.Cos(lambda)
	xiP := math.Atan2(tauP, cosL)
	etaP := math.Asinh(math.Sin(lambda) / math.Sqrt(tauP*tauP+cosL*cosL))

	xi, eta = xiP, etaP
	for j, a := range k.alpha {
		m := 2 * float64(j+1)
		xi += a * math.Sin(m*xiP) * math.Cosh(m*etaP)
		eta += a * math.Cos(m*xiP) * math.Sinh(m*etaP)
	}
	return xi, eta
}

// fromGrid inverts toGrid, returning (phi, lambda) in radians.
func (k krueger) fromGrid(xi, eta float64) (phi, lambda float64) {
	xiP, etaP := xi, eta
	for j, b := range k.beta {
		m := 2 * float64(j+1)
		xiP -= b * math.Sin(m*xi) * math.Cosh(m*eta)
		etaP -= b * math.Cos(m*xi) * math.Sinh(m*eta)
	}

	sinhEta := math.Sinh(etaP)
	cosXi := math.Cos(xiP)
	tauP := math.Sin(xiP) / math.Sqrt(sinhEta*sinhEta+cosXi*cosXi)

	e2 := k.e * k.e
	tau := tauP
	for i := 0; i < maxNewtonIterations; i++ {
		sigma := math.Sinh(k.e * math.Atanh(k.e*tau/math.Sqrt(1+tau*tau)))
		tauI := tau*math.Sqrt(1+sigma*sigma) - sigma*math.Sqrt(1+tau*tau)
		delta := (tauP - tauI) / math.Sqrt(1+tauI*tauI) *
			(1 + (1-e2)*tau*tau) / ((1 - e2) * math.Sqrt(1+tau*tau))
		tau += delta
		if math.Abs(delta) < 1e-14 {
			break
		}
	}
	return math.Atan(tau), math.Atan2(sinhEta, cosXi)
}

// tmerc holds the parsed numeric terms of a transverse Mercator definition.
type tmerc struct {
	lat0, lon0 float64
	k0         float64
	x0, y0     float64
}

// TMEngine implements Engine with a Krüger-series transverse Mercator on the
// GRS80 ellipsoid, accurate to well under a millimeter within a theatre.
type TMEngine struct {
	series krueger
}

// NewTMEngine returns an engine projecting onto geographic WGS84 coordinates.
func NewTMEngine() *TMEngine {
	return &TMEngine{series: newKrueger(grs80)}
}

// Build parses definition and returns a handle into target, which must be "WGS84".
func (e *TMEngine) Build(definition, target string) (Handle, error) {
	if target != TargetDatum {
		return nil, fmt.Errorf("%w: %q", errBadTarget, target)
	}
	tm, err := parseTmerc(definition)
	if err != nil {
		return nil, err
	}

	h := &tmHandle{series: e.series, tm: tm}
	xi0, _ := e.series.toGrid(tm.lat0*math.Pi/180, 0)
	h.originNorthing = tm.k0 * e.series.a * xi0
	return h, nil
}

type tmHandle struct {
	series         krueger
	tm             tmerc
	originNorthing float64
}

// Forward returns (lon, lat) in degrees. Points beyond the pole along the
// meridian, or landing outside the meridian band, are rejected.
func (h *tmHandle) Forward(east, north float64) (float64, float64, error) {
	if !finite(east) || !finite(north) {
		return 0, 0, outOfDomain(east, north)
	}

	scale := h.tm.k0 * h.series.a
	xi := (north - h.tm.y0 + h.originNorthing) / scale
	eta := (east - h.tm.x0) / scale
	if math.Abs(xi) > math.Pi/2 {
		return 0, 0, outOfDomain(east, north)
	}

	phi, lambda := h.series.fromGrid(xi, eta)
	lat := phi * 180 / math.Pi
	lon := h.tm.lon0 + lambda*180/math.Pi
	if !finite(lon) || !finite(lat) || math.Abs(lat) > 90 || meridianOffset(lon, h.tm.lon0) > maxMeridianOffset {
		return 0, 0, outOfDomain(east, north)
	}
	return normalizeLon(lon), lat, nil
}

// inverse projects (lon, lat) in degrees back onto the grid.
func (h *tmHandle) inverse(lon, lat float64) (east, north float64) {
	xi, eta := h.series.toGrid(lat*math.Pi/180, (lon-h.tm.lon0)*math.Pi/180)
	scale := h.tm.k0 * h.series.a
	return h.tm.x0 + scale*eta, h.tm.y0 + scale*xi - h.originNorthing
}

func outOfDomain(east, north float64) error {
	return fmt.Errorf("%w: easting %g northing %g", types.ErrOutOfDomain, east, north)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// meridianOffset is the absolute angular distance between two longitudes.
func meridianOffset(lon, lon0 float64) float64 {
	d := math.Mod(lon-lon0, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return math.Abs(d)
}

// normalizeLon wraps a longitude into [-180, 180].
func normalizeLon(lon float64) float64 {
	if lon > 180 {
		return lon - 360
	}
	if lon < -180 {
		return lon + 360
	}
	return lon
}

// parseTmerc reads a "+key=value" definition. Terms PROJ would default are
// optional; unknown terms are rejected.
func parseTmerc(definition string) (tmerc, error) {
	tm := tmerc{k0: 1}
	var sawProj bool

	fields := strings.Fields(definition)
	if len(fields) == 0 {
		return tmerc{}, fmt.Errorf("%w: empty", errBadDefinition)
	}
	for _, f := range fields {
		key, val, ok := strings.Cut(strings.TrimPrefix(f, "+"), "=")
		if !strings.HasPrefix(f, "+") || !ok || val == "" {
			return tmerc{}, fmt.Errorf("%w: term %q", errBadDefinition, f)
		}
		if key == "proj" {
			if val != "tmerc" {
				return tmerc{}, fmt.Errorf("%w: got %q", errNotTmerc, val)
			}
			sawProj = true
			continue
		}

		v, err := strconv.ParseFloat(val, 64)
		if err != nil || !finite(v) {
			return tmerc{}, fmt.Errorf("%w: %s=%q", errBadDefinition, key, val)
		}
		switch key {
		case "lat_0":
			tm.lat0 = v
		case "lon_0":
			tm.lon0 = v
		case "k_0", "k":
			tm.k0 = v
		case "x_0":
			tm.x0 = v
		case "y_0":
			tm.y0 = v
		default:
			return tmerc{}, fmt.Errorf("%w: unknown term %q", errBadDefinition, key)
		}
	}

	switch {
	case !sawProj:
		return tmerc{}, fmt.Errorf("%w: missing +proj", errBadDefinition)
	case tm.lat0 < -90 || tm.lat0 > 90:
		return tmerc{}, fmt.Errorf("%w: lat_0 %g out of range", errBadDefinition, tm.lat0)
	case tm.lon0 < -180 || tm.lon0 > 180:
		return tmerc{}, fmt.Errorf("%w: lon_0 %g out of range", errBadDefinition, tm.lon0)
	case tm.k0 <= 0:
		return tmerc{}, fmt.Errorf("%w: k_0 %g must be positive", errBadDefinition, tm.k0)
	}
	return tm, nil
}
