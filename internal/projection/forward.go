package projection

// Forward converts a theatre point to decimal degrees.
//
// Theatre grids use x as the northing axis and y as the easting axis, so the
// point is handed to the engine as (y, x). The engine's first output is
// reported as lat and the second as lon, which is the established output
// contract of this conversion.
func Forward(h Handle, x, y float64) (lat, lon float64, err error) {
	lat, lon, err = h.Forward(y, x)
	if err != nil {
		return 0, 0, err
	}
	return lat, lon, nil
}
