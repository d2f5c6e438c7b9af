// Package dms converts decimal degrees to degrees-minutes-seconds.
package dms

import (
	"fmt"
	"math"

	"github.com/eytandecker/theatre-mcp/pkg/types"
)

// secondsScale fixes the display precision of Format to milliseconds of arc.
const secondsScale = 1000

// FromDecimal splits a signed decimal angle into DMS parts. The sign moves into
// Direction: N/S when isLatitude, E/W otherwise. No carrying is done here.
func FromDecimal(value float64, isLatitude bool) types.DMS {
	abs := math.Abs(value)
	degrees := math.Floor(abs)
	minutesFloat := (abs - degrees) * 60
	minutes := math.Floor(minutesFloat)
	seconds := (minutesFloat - minutes) * 60

	return types.DMS{
		Degrees:   int(degrees),
		Minutes:   int(minutes),
		Seconds:   seconds,
		Direction: direction(value, isLatitude),
	}
}

func direction(value float64, isLatitude bool) types.Direction {
	switch {
	case isLatitude && value >= 0:
		return types.North
	case isLatitude:
		return types.South
	case value >= 0:
		return types.East
	default:
		return types.West
	}
}

// Format renders d as D°MM'SS.sss"X.
//
// Seconds are rounded to the display precision first; a value that rounds to
// 60.000 carries into the minutes (and 60 minutes into the degrees) so the
// output never shows 60 seconds or 60 minutes. A DMS without a valid
// Direction renders with no trailing letter.
func Format(d types.DMS) string {
	degrees, minutes := d.Degrees, d.Minutes
	seconds := math.Round(d.Seconds*secondsScale) / secondsScale
	if seconds >= 60 {
		seconds -= 60
		minutes++
	}
	if minutes >= 60 {
		minutes -= 60
		degrees++
	}
	return fmt.Sprintf("%d°%02d'%06.3f\"%s", degrees, minutes, seconds, d.Direction)
}
