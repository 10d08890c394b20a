package domain

// Interpolate returns the point at progress t along the straight segment
// from a to b. t is clamped to [0, 1] and t == 1 returns b exactly.
func Interpolate(a, b LatLng, t float64) LatLng {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	return LatLng{
		Lat: a.Lat + (b.Lat-a.Lat)*t,
		Lng: a.Lng + (b.Lng-a.Lng)*t,
	}
}
