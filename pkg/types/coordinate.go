package types

import "fmt"

// Direction is the cardinal letter that carries the sign of a DMS angle.
type Direction byte

const (
	North Direction = 'N'
	South Direction = 'S'
	East  Direction = 'E'
	West  Direction = 'W'
)

// Valid reports whether d is one of the four cardinal letters.
func (d Direction) Valid() bool {
	switch d {
	case North, South, East, West:
		return true
	}
	return false
}

// String returns the cardinal letter, or "" for anything else.
func (d Direction) String() string {
	if !d.Valid() {
		return ""
	}
	return string(rune(d))
}

// MarshalText renders the direction as its letter so JSON output reads "N" rather than 78.
// The zero value marshals as an empty string.
func (d Direction) MarshalText() ([]byte, error) {
	if d == 0 {
		return []byte{}, nil
	}
	if !d.Valid() {
		return nil, fmt.Errorf("types: invalid direction %d", byte(d))
	}
	return []byte{byte(d)}, nil
}

// DMS is a degrees-minutes-seconds angle. Degrees is never negative.
type DMS struct {
	Degrees   int       `json:"degrees"`
	Minutes   int       `json:"minutes"`
	Seconds   float64   `json:"seconds"`
	Direction Direction `json:"direction"`
}

// GeoCoordinate holds one geographic point in decimal and DMS form.
type GeoCoordinate struct {
	LatDecimal float64 `json:"lat_decimal"`
	LonDecimal float64 `json:"lon_decimal"`
	LatDMS     DMS     `json:"lat_dms"`
	LonDMS     DMS     `json:"lon_dms"`
}

// PlanarPoint is a theatre-local Cartesian position in meters.
type PlanarPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
